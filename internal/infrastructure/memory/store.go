// Package memory is a concurrency-safe in-memory implementation of the
// repository contracts, used by tests and by STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

// Store keeps every table in maps guarded by one RWMutex. Writes made inside
// a unit of work are applied immediately and are not rolled back on error.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	emails   map[string]string // lower-cased email -> user ID
	auctions map[string]*entity.Auction
	bids     map[string][]*entity.Bid // auction ID -> bids in insertion order
	proofs   map[string]*entity.CommissionProof

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex // per-auction serialization
	txMu    sync.Mutex

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		emails:   make(map[string]string),
		auctions: make(map[string]*entity.Auction),
		bids:     make(map[string][]*entity.Bid),
		proofs:   make(map[string]*entity.CommissionProof),
		locks:    make(map[string]*sync.Mutex),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Repos() repo.Repositories {
	return repo.Repositories{
		Users:       userRepo{s},
		Auctions:    auctionRepo{s},
		Bids:        bidRepo{s},
		Commissions: commissionRepo{s},
	}
}

func (s *Store) auctionLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Store) WithinAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, r repo.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := s.auctionLock(auctionID)
	l.Lock()
	defer l.Unlock()
	s.mu.RLock()
	_, ok := s.auctions[auctionID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("lock auction %s: %w", auctionID, repo.ErrNotFound)
	}
	return fn(ctx, s.Repos())
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, r repo.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx, s.Repos())
}

var _ repo.Store = (*Store)(nil)
