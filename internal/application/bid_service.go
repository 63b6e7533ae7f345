package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type BidService struct {
	Store    repo.Store
	Notifier BidNotifier
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewBidService(store repo.Store, notifier BidNotifier, logger *logrus.Logger) *BidService {
	return &BidService{
		Store:    store,
		Notifier: notifier,
		Logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// validateBid applies the acceptance rules in their fixed order; the first
// failing rule decides the error.
func validateBid(a *entity.Auction, bidderID string, amount int64, now time.Time) error {
	switch a.StatusAt(now) {
	case entity.LifecycleUpcoming:
		return ErrAuctionNotStarted
	case entity.LifecycleEnded:
		return ErrAuctionEnded
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount < a.StartingBid {
		return ErrBelowStartingBid
	}
	if a.HighestBid != nil && amount <= a.HighestBid.Amount {
		return ErrBidTooLow
	}
	if a.CreatedBy == bidderID {
		return ErrSelfBidding
	}
	return nil
}

// PlaceBid validates and records a bid. Validation, the ledger append and the
// highest-bid update happen while holding the auction's serialization
// section, so no two bids are judged against the same highest amount.
func (s *BidService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (*entity.Bid, error) {
	var placed *entity.Bid
	err := s.Store.WithinAuction(ctx, auctionID, func(ctx context.Context, r repo.Repositories) error {
		a, err := r.Auctions.GetByID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("load auction: %w", err)
		}
		if err := validateBid(a, bidderID, amount, s.Now()); err != nil {
			return err
		}

		bidder, err := r.Users.GetByID(ctx, bidderID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load bidder: %w", err)
		}

		b := &entity.Bid{AuctionID: a.ID, BidderID: bidder.ID, BidderName: bidder.UserName, Amount: amount}
		if err := r.Bids.Append(ctx, b); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return ErrBidTooLow
			}
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("append bid: %w", err)
		}
		if err := r.Auctions.SetHighestBid(ctx, a.ID, entity.HighestBid{BidID: b.ID, BidderID: b.BidderID, Amount: b.Amount}); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return ErrBidTooLow
			}
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("update highest bid: %w", err)
		}
		placed = b
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		err = ErrAuctionNotFound
	}
	if err != nil {
		bidsRejected.Add(rejectReason(err), 1)
		return nil, err
	}

	bidsAccepted.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"auction_id": placed.AuctionID,
			"bid_id":     placed.ID,
			"bidder_id":  placed.BidderID,
			"amount":     placed.Amount,
		}).Info("bid placed")
	}
	if s.Notifier != nil {
		s.Notifier.BidPlaced(placed)
	}
	return placed, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrAuctionNotFound):
		return "not_found"
	case errors.Is(err, ErrAuctionNotStarted):
		return "not_started"
	case errors.Is(err, ErrAuctionEnded):
		return "ended"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrBelowStartingBid):
		return "below_starting_bid"
	case errors.Is(err, ErrBidTooLow):
		return "too_low"
	case errors.Is(err, ErrSelfBidding):
		return "self_bidding"
	}
	return "error"
}

// ListBids returns the auction's bids, highest first.
func (s *BidService) ListBids(ctx context.Context, auctionID string) ([]*entity.Bid, error) {
	r := s.Store.Repos()
	if _, err := r.Auctions.GetByID(ctx, auctionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("load auction: %w", err)
	}
	bids, err := r.Bids.ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}

// Highest returns the leading bid, or nil when the auction has none.
func (s *BidService) Highest(ctx context.Context, auctionID string) (*entity.Bid, error) {
	b, err := s.Store.Repos().Bids.HighestFor(ctx, auctionID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("highest bid: %w", err)
	}
	return b, nil
}
