package repository

import (
	"context"
	"time"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
)

// AuctionRepository persists auction records.
type AuctionRepository interface {
	Create(ctx context.Context, a *entity.Auction) error
	GetByID(ctx context.Context, id string) (*entity.Auction, error)
	List(ctx context.Context) ([]*entity.Auction, error)
	// ListActive returns auctions whose window contains now.
	ListActive(ctx context.Context, now time.Time) ([]*entity.Auction, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Auction, error)
	// ListEnded returns auctions whose end time is before now.
	ListEnded(ctx context.Context, now time.Time) ([]*entity.Auction, error)
	ListEndedUnsettled(ctx context.Context, now time.Time) ([]*entity.Auction, error)
	// SetHighestBid moves the highest-bid cache forward. It fails with
	// ErrConflict unless hb.Amount exceeds the currently cached amount.
	SetHighestBid(ctx context.Context, auctionID string, hb entity.HighestBid) error
	// MarkCommissionCalculated flips the settlement flag and reports whether
	// this call was the one that flipped it.
	MarkCommissionCalculated(ctx context.Context, auctionID string) (bool, error)
	Delete(ctx context.Context, id string) error
}
