package repository

import (
	"context"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetMany returns the users that exist among ids, keyed by ID.
	GetMany(ctx context.Context, ids []string) (map[string]*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// AddUnpaidCommission adjusts an auctioneer's balance by delta, floored at zero.
	AddUnpaidCommission(ctx context.Context, userID string, delta int64) (int64, error)
}
