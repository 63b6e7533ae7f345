package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
	tpl "github.com/oksasatya/auction-marketplace/pkg/mailer/templates"
)

// Settler charges commission on ended auctions. Each auction is settled at
// most once, even with several Settlers running against the same store.
type Settler struct {
	Store       repo.Store
	Rate        decimal.Decimal
	Leaderboard *LeaderboardService
	Logger      *logrus.Logger
	Mail        *Mail
	Now         func() time.Time
}

func NewSettler(store repo.Store, rate decimal.Decimal, leaderboard *LeaderboardService, logger *logrus.Logger, mail *Mail) *Settler {
	return &Settler{
		Store:       store,
		Rate:        rate,
		Leaderboard: leaderboard,
		Logger:      logger,
		Mail:        mail,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// ParseRate parses a commission rate such as "0.05".
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse commission rate %q: %w", s, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("commission rate %s out of range [0,1]", rate)
	}
	return rate, nil
}

// CommissionFor returns rate*amount rounded half-up to a whole unit.
func CommissionFor(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}

type settlement struct {
	auction    *entity.Auction
	commission int64
}

// SettleEnded settles every ended, unsettled auction and returns how many
// this call settled. Failures on one auction do not stop the others.
func (s *Settler) SettleEnded(ctx context.Context) (int, error) {
	now := s.Now()
	pending, err := s.Store.Repos().Auctions.ListEndedUnsettled(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list unsettled auctions: %w", err)
	}

	var (
		settled int
		errs    []error
	)
	for _, a := range pending {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := s.settle(ctx, a.ID, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("settle auction %s: %w", a.ID, err))
			continue
		}
		if res == nil {
			continue
		}
		settled++
		auctionsSettled.Add(1)
		commissionsCharged.Add(res.commission)
		s.notify(ctx, res)
	}
	if settled > 0 && s.Leaderboard != nil {
		s.Leaderboard.Invalidate(ctx)
	}
	return settled, errors.Join(errs...)
}

// settle returns nil when another caller already settled the auction.
func (s *Settler) settle(ctx context.Context, auctionID string, now time.Time) (*settlement, error) {
	var res *settlement
	err := s.Store.WithinAuction(ctx, auctionID, func(ctx context.Context, r repo.Repositories) error {
		a, err := r.Auctions.GetByID(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("load auction: %w", err)
		}
		if a.CommissionCalculated || a.StatusAt(now) != entity.LifecycleEnded {
			return nil
		}
		flipped, err := r.Auctions.MarkCommissionCalculated(ctx, auctionID)
		if err != nil || !flipped {
			return err
		}
		res = &settlement{auction: a}
		if a.HighestBid == nil {
			return nil
		}
		res.commission = CommissionFor(a.HighestBid.Amount, s.Rate)
		if res.commission > 0 {
			if _, err := r.Users.AddUnpaidCommission(ctx, a.CreatedBy, res.commission); err != nil {
				return fmt.Errorf("charge commission: %w", err)
			}
		}
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) && res == nil {
		// deleted after it was listed; nothing to charge
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if res != nil && s.Logger != nil {
		f := logrus.Fields{"auction_id": auctionID, "owner_id": res.auction.CreatedBy, "commission": res.commission}
		if hb := res.auction.HighestBid; hb != nil {
			f["winner_id"] = hb.BidderID
			f["amount"] = hb.Amount
		}
		s.Logger.WithFields(f).Info("auction settled")
	}
	return res, nil
}

func (s *Settler) notify(ctx context.Context, res *settlement) {
	if !s.Mail.enabled() {
		return
	}
	a := res.auction
	ids := []string{a.CreatedBy}
	if a.HighestBid != nil {
		ids = append(ids, a.HighestBid.BidderID)
	}
	users, err := s.Store.Repos().Users.GetMany(ctx, ids)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("auction_id", a.ID).Warn("load settlement recipients failed")
		}
		return
	}
	var amount int64
	if a.HighestBid != nil {
		amount = a.HighestBid.Amount
		if w, ok := users[a.HighestBid.BidderID]; ok {
			s.Mail.enqueue(ctx, w.Email, tpl.AuctionWon, tpl.NewAuctionWonData(s.Mail.Cfg, w.UserName, w.Email, a.ID, a.Title, amount))
		}
	}
	if o, ok := users[a.CreatedBy]; ok {
		s.Mail.enqueue(ctx, o.Email, tpl.AuctionSettled, tpl.NewAuctionSettledData(s.Mail.Cfg, o.UserName, o.Email, a.ID, a.Title, amount, res.commission))
	}
}

// Run settles on every tick until ctx is cancelled.
func (s *Settler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		n, err := s.SettleEnded(ctx)
		if s.Logger != nil {
			if err != nil && !errors.Is(err, context.Canceled) {
				s.Logger.WithError(err).Error("settlement pass failed")
			} else if n > 0 {
				s.Logger.WithField("settled", n).Info("settlement pass complete")
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
