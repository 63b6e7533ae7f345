package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field
//
// Bidder totals (auctions won, money spent) are not stored here; they are
// derived from settled auctions by AggregateStanding.
type User struct {
	ID              string
	UserName        string
	Email           string
	Password        string
	Phone           string
	Address         string
	Role            Role
	ProfileImageURL string
	PaymentMethods  PaymentMethods

	// UnpaidCommission is owed by auctioneers to the platform.
	UnpaidCommission int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentMethods are the payout details an auctioneer registers with.
type PaymentMethods struct {
	BankAccountNumber      string `json:"bank_account_number"`
	BankAccountName        string `json:"bank_account_name"`
	BankName               string `json:"bank_name"`
	EasypaisaAccountNumber string `json:"easypaisa_account_number"`
	PaypalEmail            string `json:"paypal_email"`
}

func (u *User) IsAuctioneer() bool { return u.Role == RoleAuctioneer }
func (u *User) IsBidder() bool     { return u.Role == RoleBidder }
