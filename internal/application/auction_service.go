package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type AuctionService struct {
	Store  repo.Store
	Images ImageStore
	Index  AuctionIndex
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewAuctionService(store repo.Store, images ImageStore, index AuctionIndex, logger *logrus.Logger) *AuctionService {
	return &AuctionService{
		Store:  store,
		Images: images,
		Index:  index,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

type CreateAuctionInput struct {
	Title       string
	Description string
	Category    string
	Condition   string
	StartingBid int64
	StartTime   time.Time
	EndTime     time.Time
	Image       *Upload
}

// AuctionView is an auction with its lifecycle evaluated at read time.
type AuctionView struct {
	*entity.Auction
	Status entity.Lifecycle
}

type AuctionDetail struct {
	AuctionView
	Bids []*entity.Bid
}

func (s *AuctionService) view(a *entity.Auction, now time.Time) AuctionView {
	return AuctionView{Auction: a, Status: a.StatusAt(now)}
}

func (s *AuctionService) views(list []*entity.Auction) []AuctionView {
	now := s.Now()
	out := make([]AuctionView, 0, len(list))
	for _, a := range list {
		out = append(out, s.view(a, now))
	}
	return out
}

func validateAuctionInput(in *CreateAuctionInput, now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Condition = strings.TrimSpace(in.Condition)

	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.Category},
		{"condition", in.Condition},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime", ErrMissingField)
	}
	if !entity.ValidCondition(in.Condition) {
		return ErrInvalidCondition
	}
	if in.StartingBid <= 0 {
		return ErrInvalidAmount
	}
	if in.StartTime.Before(now) {
		return ErrStartInPast
	}
	if !in.EndTime.After(in.StartTime) {
		return ErrInvalidWindow
	}
	return in.Image.validImage()
}

// Create validates and stores a new auction owned by ownerID.
func (s *AuctionService) Create(ctx context.Context, ownerID string, in CreateAuctionInput) (*entity.Auction, error) {
	now := s.Now()
	if err := validateAuctionInput(&in, now); err != nil {
		return nil, err
	}

	var created *entity.Auction
	err := s.Store.Within(ctx, func(ctx context.Context, r repo.Repositories) error {
		owner, err := r.Users.GetByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load owner: %w", err)
		}
		if !owner.IsAuctioneer() {
			return ErrForbidden
		}
		if owner.UnpaidCommission > 0 {
			return ErrUnpaidCommission
		}
		owned, err := r.Auctions.ListByOwner(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("list owner auctions: %w", err)
		}
		for _, a := range owned {
			if a.StatusAt(now) != entity.LifecycleEnded {
				return ErrActiveAuctionExists
			}
		}

		imageURL, err := s.upload(ctx, "auctions/"+ownerID, in.Image)
		if err != nil {
			return err
		}
		a := &entity.Auction{
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			Condition:   in.Condition,
			ImageURL:    imageURL,
			StartingBid: in.StartingBid,
			StartTime:   in.StartTime.UTC(),
			EndTime:     in.EndTime.UTC(),
			CreatedBy:   ownerID,
		}
		if err := r.Auctions.Create(ctx, a); err != nil {
			return fmt.Errorf("create auction: %w", err)
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, created)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"auction_id": created.ID, "owner_id": ownerID}).Info("auction created")
	}
	return created, nil
}

func (s *AuctionService) upload(ctx context.Context, prefix string, file *Upload) (string, error) {
	if s.Images == nil {
		if s.Logger != nil {
			s.Logger.WithField("prefix", prefix).Warn("object storage not configured; image not persisted")
		}
		return "", nil
	}
	url, err := s.Images.Upload(ctx, prefix, *file)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

func (s *AuctionService) index(ctx context.Context, a *entity.Auction) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, a); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("auction_id", a.ID).Warn("auction index failed")
	}
}

// Get returns the auction with its bids, highest first.
func (s *AuctionService) Get(ctx context.Context, id string) (*AuctionDetail, error) {
	r := s.Store.Repos()
	a, err := r.Auctions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("get auction: %w", err)
	}
	bids, err := r.Bids.ListByAuction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return &AuctionDetail{AuctionView: s.view(a, s.Now()), Bids: bids}, nil
}

func (s *AuctionService) List(ctx context.Context) ([]AuctionView, error) {
	list, err := s.Store.Repos().Auctions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return s.views(list), nil
}

func (s *AuctionService) ListActive(ctx context.Context) ([]AuctionView, error) {
	list, err := s.Store.Repos().Auctions.ListActive(ctx, s.Now())
	if err != nil {
		return nil, fmt.Errorf("list active auctions: %w", err)
	}
	return s.views(list), nil
}

func (s *AuctionService) ListMine(ctx context.Context, ownerID string) ([]AuctionView, error) {
	list, err := s.Store.Repos().Auctions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list my auctions: %w", err)
	}
	return s.views(list), nil
}

// Delete removes an auction. A Super Admin may delete any auction; an
// auctioneer only their own and only while it has no bids.
func (s *AuctionService) Delete(ctx context.Context, actorID string, actorRole entity.Role, auctionID string) error {
	err := s.Store.WithinAuction(ctx, auctionID, func(ctx context.Context, r repo.Repositories) error {
		a, err := r.Auctions.GetByID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("load auction: %w", err)
		}
		if actorRole != entity.RoleSuperAdmin {
			if a.CreatedBy != actorID {
				return ErrForbidden
			}
			n, err := r.Bids.CountByAuction(ctx, auctionID)
			if err != nil {
				return fmt.Errorf("count bids: %w", err)
			}
			if n > 0 {
				return ErrAuctionHasBids
			}
		}
		if err := r.Auctions.Delete(ctx, auctionID); err != nil {
			return fmt.Errorf("delete auction: %w", err)
		}
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAuctionNotFound
	}
	if err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, auctionID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("auction_id", auctionID).Warn("auction unindex failed")
		}
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"auction_id": auctionID, "actor_id": actorID, "role": actorRole}).Info("auction deleted")
	}
	return nil
}

// Search queries the full-text index and falls back to a substring scan
// when no index is configured or the index fails.
func (s *AuctionService) Search(ctx context.Context, q string, size int) ([]AuctionView, error) {
	q = strings.TrimSpace(q)
	if size <= 0 || size > 50 {
		size = 10
	}
	if q == "" {
		return []AuctionView{}, nil
	}

	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return s.loadMany(ctx, ids)
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("q", q).Warn("auction search failed; scanning repository")
		}
	}

	all, err := s.Store.Repos().Auctions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	needle := strings.ToLower(q)
	matched := make([]*entity.Auction, 0)
	for _, a := range all {
		hay := strings.ToLower(a.Title + " " + a.Description + " " + a.Category)
		if strings.Contains(hay, needle) {
			matched = append(matched, a)
			if len(matched) == size {
				break
			}
		}
	}
	return s.views(matched), nil
}

func (s *AuctionService) loadMany(ctx context.Context, ids []string) ([]AuctionView, error) {
	r := s.Store.Repos()
	list := make([]*entity.Auction, 0, len(ids))
	for _, id := range ids {
		a, err := r.Auctions.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			// stale index entry
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load auction %s: %w", id, err)
		}
		list = append(list, a)
	}
	return s.views(list), nil
}
