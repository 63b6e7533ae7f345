package repository

import (
	"context"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
)

type CommissionRepository interface {
	Create(ctx context.Context, p *entity.CommissionProof) error
	GetByID(ctx context.Context, id string) (*entity.CommissionProof, error)
	List(ctx context.Context) ([]*entity.CommissionProof, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CommissionProof, error)
	// Resolve moves a Pending proof to status with the given amount.
	// It returns ErrConflict if the proof is no longer Pending.
	Resolve(ctx context.Context, id string, status entity.ProofStatus, amount int64) (*entity.CommissionProof, error)
}
