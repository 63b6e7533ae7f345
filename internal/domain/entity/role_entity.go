package entity

// Role represents an authorization role
// A user holds exactly one role for its lifetime.
type Role string

const (
	RoleBidder     Role = "Bidder"
	RoleAuctioneer Role = "Auctioneer"
	RoleSuperAdmin Role = "Super Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBidder, RoleAuctioneer, RoleSuperAdmin:
		return true
	}
	return false
}
