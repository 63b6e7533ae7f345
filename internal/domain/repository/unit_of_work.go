package repository

import "context"

// Repositories bundles repositories bound to a single unit of work.
type Repositories struct {
	Users       UserRepository
	Auctions    AuctionRepository
	Bids        BidRepository
	Commissions CommissionRepository
}

// UnitOfWork runs groups of repository calls atomically.
type UnitOfWork interface {
	// WithinAuction runs fn serialized against every other WithinAuction
	// call for the same auction ID, committing only if fn returns nil.
	// When the auction does not exist fn is not called and the returned
	// error wraps ErrNotFound.
	WithinAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, r Repositories) error) error
	// Within runs fn inside a transaction.
	Within(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}

// Store exposes the non-transactional repositories and the unit of work.
type Store interface {
	UnitOfWork
	Repos() Repositories
}
