package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type CommissionRepository struct {
	db DBTX
}

func NewCommissionRepository(db DBTX) *CommissionRepository {
	return &CommissionRepository{db: db}
}

const proofColumns = `id, user_id, amount, proof_url, comment, status, created_at, updated_at`

func scanProof(row pgx.Row) (*entity.CommissionProof, error) {
	p := &entity.CommissionProof{}
	var status string
	if err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.ProofURL, &p.Comment, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = entity.ProofStatus(status)
	return p, nil
}

func (r *CommissionRepository) Create(ctx context.Context, p *entity.CommissionProof) error {
	if p.Status == "" {
		p.Status = entity.ProofPending
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO commission_proofs (user_id, amount, proof_url, comment, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Amount, p.ProofURL, p.Comment, string(p.Status))
	return wrapErr("create proof", row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *CommissionRepository) GetByID(ctx context.Context, id string) (*entity.CommissionProof, error) {
	p, err := scanProof(r.db.QueryRow(ctx, `SELECT `+proofColumns+` FROM commission_proofs WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get proof", err)
	}
	return p, nil
}

func (r *CommissionRepository) list(ctx context.Context, where string, args ...any) ([]*entity.CommissionProof, error) {
	rows, err := r.db.Query(ctx, `SELECT `+proofColumns+` FROM commission_proofs `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, wrapErr("list proofs", err)
	}
	defer rows.Close()
	out := make([]*entity.CommissionProof, 0)
	for rows.Next() {
		p, err := scanProof(rows)
		if err != nil {
			return nil, wrapErr("scan proof", err)
		}
		out = append(out, p)
	}
	return out, wrapErr("list proofs", rows.Err())
}

func (r *CommissionRepository) List(ctx context.Context) ([]*entity.CommissionProof, error) {
	return r.list(ctx, "")
}

func (r *CommissionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CommissionProof, error) {
	return r.list(ctx, "WHERE user_id = $1", userID)
}

func (r *CommissionRepository) Resolve(ctx context.Context, id string, status entity.ProofStatus, amount int64) (*entity.CommissionProof, error) {
	p, err := scanProof(r.db.QueryRow(ctx, `
		UPDATE commission_proofs SET status = $1, amount = $2, updated_at = now()
		WHERE id = $3 AND status = 'Pending'
		RETURNING `+proofColumns, string(status), amount, id))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, wrapErr("resolve proof", err)
	}
	// distinguish a missing proof from one that was already resolved
	if _, gErr := r.GetByID(ctx, id); gErr != nil {
		return nil, gErr
	}
	return nil, fmt.Errorf("resolve proof %s: %w", id, repository.ErrConflict)
}

var _ repository.CommissionRepository = (*CommissionRepository)(nil)
