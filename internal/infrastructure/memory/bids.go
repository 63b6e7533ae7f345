package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type bidRepo struct{ s *Store }

func (r bidRepo) Append(_ context.Context, b *entity.Bid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.auctions[b.AuctionID]; !ok {
		return fmt.Errorf("append bid to %s: %w", b.AuctionID, repo.ErrNotFound)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.s.now()
	}
	c := *b
	r.s.bids[b.AuctionID] = append(r.s.bids[b.AuctionID], &c)
	return nil
}

func (r bidRepo) ListByAuction(_ context.Context, auctionID string) ([]*entity.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored := r.s.bids[auctionID]
	out := make([]*entity.Bid, 0, len(stored))
	for _, b := range stored {
		c := *b
		out = append(out, &c)
	}
	entity.SortBids(out)
	return out, nil
}

func (r bidRepo) HighestFor(ctx context.Context, auctionID string) (*entity.Bid, error) {
	bids, _ := r.ListByAuction(ctx, auctionID)
	if len(bids) == 0 {
		return nil, fmt.Errorf("highest bid for %s: %w", auctionID, repo.ErrNotFound)
	}
	return bids[0], nil
}

func (r bidRepo) CountByAuction(_ context.Context, auctionID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.bids[auctionID]), nil
}
