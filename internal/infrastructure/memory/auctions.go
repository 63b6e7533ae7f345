package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type auctionRepo struct{ s *Store }

func (r auctionRepo) Create(_ context.Context, a *entity.Auction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.auctions[a.ID] = a.Clone()
	return nil
}

func (r auctionRepo) GetByID(_ context.Context, id string) (*entity.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.auctions[id]
	if !ok {
		return nil, fmt.Errorf("get auction %s: %w", id, repo.ErrNotFound)
	}
	return a.Clone(), nil
}

// filter returns clones of matching auctions, newest first.
func (r auctionRepo) filter(keep func(a *entity.Auction) bool) []*entity.Auction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Auction, 0)
	for _, a := range r.s.auctions {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r auctionRepo) List(_ context.Context) ([]*entity.Auction, error) {
	return r.filter(func(*entity.Auction) bool { return true }), nil
}

func (r auctionRepo) ListActive(_ context.Context, now time.Time) ([]*entity.Auction, error) {
	return r.filter(func(a *entity.Auction) bool { return a.StatusAt(now) == entity.LifecycleActive }), nil
}

func (r auctionRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Auction, error) {
	return r.filter(func(a *entity.Auction) bool { return a.CreatedBy == ownerID }), nil
}

func (r auctionRepo) ListEnded(_ context.Context, now time.Time) ([]*entity.Auction, error) {
	return r.filter(func(a *entity.Auction) bool { return a.StatusAt(now) == entity.LifecycleEnded }), nil
}

func (r auctionRepo) ListEndedUnsettled(_ context.Context, now time.Time) ([]*entity.Auction, error) {
	return r.filter(func(a *entity.Auction) bool {
		return !a.CommissionCalculated && a.StatusAt(now) == entity.LifecycleEnded
	}), nil
}

func (r auctionRepo) SetHighestBid(_ context.Context, auctionID string, hb entity.HighestBid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("set highest bid on %s: %w", auctionID, repo.ErrNotFound)
	}
	if a.HighestBid != nil && hb.Amount <= a.HighestBid.Amount {
		return fmt.Errorf("set highest bid on %s: %w", auctionID, repo.ErrConflict)
	}
	a.HighestBid = &hb
	a.UpdatedAt = r.s.now()
	return nil
}

func (r auctionRepo) MarkCommissionCalculated(_ context.Context, auctionID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.auctions[auctionID]
	if !ok {
		return false, fmt.Errorf("mark commission on %s: %w", auctionID, repo.ErrNotFound)
	}
	if a.CommissionCalculated {
		return false, nil
	}
	a.CommissionCalculated = true
	a.UpdatedAt = r.s.now()
	return true, nil
}

func (r auctionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.auctions[id]; !ok {
		return fmt.Errorf("delete auction %s: %w", id, repo.ErrNotFound)
	}
	delete(r.s.auctions, id)
	delete(r.s.bids, id)
	return nil
}
