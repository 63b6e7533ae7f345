package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type commissionRepo struct{ s *Store }

func (r commissionRepo) Create(_ context.Context, p *entity.CommissionProof) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = entity.ProofPending
	}
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	c := *p
	r.s.proofs[p.ID] = &c
	return nil
}

func (r commissionRepo) GetByID(_ context.Context, id string) (*entity.CommissionProof, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.proofs[id]
	if !ok {
		return nil, fmt.Errorf("get proof %s: %w", id, repo.ErrNotFound)
	}
	c := *p
	return &c, nil
}

func (r commissionRepo) list(keep func(*entity.CommissionProof) bool) []*entity.CommissionProof {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.CommissionProof, 0)
	for _, p := range r.s.proofs {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r commissionRepo) List(_ context.Context) ([]*entity.CommissionProof, error) {
	return r.list(func(*entity.CommissionProof) bool { return true }), nil
}

func (r commissionRepo) ListByUser(_ context.Context, userID string) ([]*entity.CommissionProof, error) {
	return r.list(func(p *entity.CommissionProof) bool { return p.UserID == userID }), nil
}

func (r commissionRepo) Resolve(_ context.Context, id string, status entity.ProofStatus, amount int64) (*entity.CommissionProof, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.proofs[id]
	if !ok {
		return nil, fmt.Errorf("resolve proof %s: %w", id, repo.ErrNotFound)
	}
	if p.Status != entity.ProofPending {
		return nil, fmt.Errorf("resolve proof %s in status %s: %w", id, p.Status, repo.ErrConflict)
	}
	p.Status = status
	p.Amount = amount
	p.UpdatedAt = r.s.now()
	c := *p
	return &c, nil
}
