package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
	tpl "github.com/oksasatya/auction-marketplace/pkg/mailer/templates"
)

type CommissionService struct {
	Store  repo.Store
	Images ImageStore
	Logger *logrus.Logger
	Mail   *Mail
}

func NewCommissionService(store repo.Store, images ImageStore, logger *logrus.Logger, mail *Mail) *CommissionService {
	return &CommissionService{Store: store, Images: images, Logger: logger, Mail: mail}
}

// SubmitProof records an auctioneer's evidence of a commission payment.
func (s *CommissionService) SubmitProof(ctx context.Context, userID string, amount int64, comment string, proof *Upload) (*entity.CommissionProof, error) {
	r := s.Store.Repos()
	u, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !u.IsAuctioneer() {
		return nil, ErrForbidden
	}
	if u.UnpaidCommission == 0 {
		return nil, ErrNoUnpaidCommission
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount > u.UnpaidCommission {
		return nil, ErrProofExceedsUnpaid
	}
	if err := proof.validImage(); err != nil {
		return nil, err
	}
	if s.Images == nil {
		return nil, ErrStorageDisabled
	}
	url, err := s.Images.Upload(ctx, "commission-proofs/"+userID, *proof)
	if err != nil {
		return nil, fmt.Errorf("upload proof: %w", err)
	}

	p := &entity.CommissionProof{
		UserID:   userID,
		Amount:   amount,
		ProofURL: url,
		Comment:  strings.TrimSpace(comment),
		Status:   entity.ProofPending,
	}
	if err := r.Commissions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create proof: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"proof_id": p.ID, "user_id": userID, "amount": amount}).Info("commission proof submitted")
	}
	return p, nil
}

func (s *CommissionService) ListMine(ctx context.Context, userID string) ([]*entity.CommissionProof, error) {
	list, err := s.Store.Repos().Commissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list proofs: %w", err)
	}
	return list, nil
}

func (s *CommissionService) ListAll(ctx context.Context) ([]*entity.CommissionProof, error) {
	list, err := s.Store.Repos().Commissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list proofs: %w", err)
	}
	return list, nil
}

// UpdateProofStatus resolves a Pending proof. Approving it reduces the
// auctioneer's unpaid commission by amount, never below zero.
func (s *CommissionService) UpdateProofStatus(ctx context.Context, proofID string, status entity.ProofStatus, amount int64) (*entity.CommissionProof, error) {
	if !status.Valid() || status == entity.ProofPending {
		return nil, ErrInvalidStatus
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	var (
		resolved *entity.CommissionProof
		unpaid   int64
	)
	err := s.Store.Within(ctx, func(ctx context.Context, r repo.Repositories) error {
		p, err := r.Commissions.GetByID(ctx, proofID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrProofNotFound
			}
			return fmt.Errorf("get proof: %w", err)
		}
		if p.Status != entity.ProofPending {
			return ErrProofResolved
		}
		resolved, err = r.Commissions.Resolve(ctx, proofID, status, amount)
		if err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return ErrProofResolved
			}
			return fmt.Errorf("resolve proof: %w", err)
		}
		if status == entity.ProofApproved {
			unpaid, err = r.Users.AddUnpaidCommission(ctx, p.UserID, -amount)
			if err != nil {
				return fmt.Errorf("reduce unpaid commission: %w", err)
			}
		} else {
			u, err := r.Users.GetByID(ctx, p.UserID)
			if err != nil {
				return fmt.Errorf("get auctioneer: %w", err)
			}
			unpaid = u.UnpaidCommission
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"proof_id": resolved.ID,
			"status":   resolved.Status,
			"amount":   resolved.Amount,
			"unpaid":   unpaid,
		}).Info("commission proof resolved")
	}
	if s.Mail.enabled() {
		if u, err := s.Store.Repos().Users.GetByID(ctx, resolved.UserID); err == nil {
			s.Mail.enqueue(ctx, u.Email, tpl.ProofStatus,
				tpl.NewProofStatusData(s.Mail.Cfg, u.UserName, u.Email, resolved.ID, string(resolved.Status), resolved.Amount, unpaid))
		}
	}
	return resolved, nil
}
