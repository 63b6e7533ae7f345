package repository

import (
	"context"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
)

// BidRepository is the append-only bid ledger.
type BidRepository interface {
	Append(ctx context.Context, b *entity.Bid) error
	// ListByAuction returns bids ordered by amount descending.
	ListByAuction(ctx context.Context, auctionID string) ([]*entity.Bid, error)
	// HighestFor returns ErrNotFound when the auction has no bids.
	HighestFor(ctx context.Context, auctionID string) (*entity.Bid, error)
	CountByAuction(ctx context.Context, auctionID string) (int, error)
}
