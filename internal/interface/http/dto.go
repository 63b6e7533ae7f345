package handlers

import (
	"time"

	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
)

type userResponse struct {
	ID               string                 `json:"id"`
	UserName         string                 `json:"user_name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone,omitempty"`
	Address          string                 `json:"address,omitempty"`
	Role             entity.Role            `json:"role"`
	ProfileImageURL  string                 `json:"profile_image_url,omitempty"`
	PaymentMethods   *entity.PaymentMethods `json:"payment_methods,omitempty"`
	UnpaidCommission *int64                 `json:"unpaid_commission,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

func toUser(u *entity.User) userResponse {
	out := userResponse{
		ID:              u.ID,
		UserName:        u.UserName,
		Email:           u.Email,
		Phone:           u.Phone,
		Address:         u.Address,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
	if u.IsAuctioneer() {
		pm := u.PaymentMethods
		unpaid := u.UnpaidCommission
		out.PaymentMethods = &pm
		out.UnpaidCommission = &unpaid
	}
	return out
}

type auctionResponse struct {
	ID                   string           `json:"id"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	Category             string           `json:"category"`
	Condition            string           `json:"condition"`
	ImageURL             string           `json:"image_url,omitempty"`
	StartingBid          int64            `json:"starting_bid"`
	CurrentBid           int64            `json:"current_bid"`
	HighestBidderID      string           `json:"highest_bidder_id,omitempty"`
	StartTime            time.Time        `json:"start_time"`
	EndTime              time.Time        `json:"end_time"`
	CreatedBy            string           `json:"created_by"`
	Status               entity.Lifecycle `json:"status"`
	CommissionCalculated bool             `json:"commission_calculated"`
	CreatedAt            time.Time        `json:"created_at"`
}

func toAuction(v application.AuctionView) auctionResponse {
	a := v.Auction
	out := auctionResponse{
		ID:                   a.ID,
		Title:                a.Title,
		Description:          a.Description,
		Category:             a.Category,
		Condition:            a.Condition,
		ImageURL:             a.ImageURL,
		StartingBid:          a.StartingBid,
		StartTime:            a.StartTime,
		EndTime:              a.EndTime,
		CreatedBy:            a.CreatedBy,
		Status:               v.Status,
		CommissionCalculated: a.CommissionCalculated,
		CreatedAt:            a.CreatedAt,
	}
	if hb := a.HighestBid; hb != nil {
		out.CurrentBid = hb.Amount
		out.HighestBidderID = hb.BidderID
	}
	return out
}

func toAuctions(list []application.AuctionView) []auctionResponse {
	out := make([]auctionResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toAuction(v))
	}
	return out
}

type auctionDetailResponse struct {
	auctionResponse
	Bids []bidResponse `json:"bids"`
}

type bidResponse struct {
	ID         string    `json:"id"`
	AuctionID  string    `json:"auction_id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

func toBid(b *entity.Bid) bidResponse {
	return bidResponse{
		ID:         b.ID,
		AuctionID:  b.AuctionID,
		BidderID:   b.BidderID,
		BidderName: b.BidderName,
		Amount:     b.Amount,
		CreatedAt:  b.CreatedAt.UTC(),
	}
}

func toBids(list []*entity.Bid) []bidResponse {
	out := make([]bidResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBid(b))
	}
	return out
}

type proofResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Amount    int64              `json:"amount"`
	ProofURL  string             `json:"proof_url"`
	Comment   string             `json:"comment,omitempty"`
	Status    entity.ProofStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func toProof(p *entity.CommissionProof) proofResponse {
	return proofResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		ProofURL:  p.ProofURL,
		Comment:   p.Comment,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProofs(list []*entity.CommissionProof) []proofResponse {
	out := make([]proofResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProof(p))
	}
	return out
}
