package entity

import "time"

// Lifecycle is the derived phase of an auction.
type Lifecycle string

const (
	LifecycleUpcoming Lifecycle = "Upcoming"
	LifecycleActive   Lifecycle = "Active"
	LifecycleEnded    Lifecycle = "Ended"
)

// Item conditions accepted on creation.
var Conditions = []string{"New", "Used", "Like New", "Refurbished", "For Parts"}

// ValidCondition reports whether c is a known item condition.
func ValidCondition(c string) bool {
	for _, v := range Conditions {
		if v == c {
			return true
		}
	}
	return false
}

// HighestBid is the denormalized pointer to the leading bid of an auction.
type HighestBid struct {
	BidID    string
	BidderID string
	Amount   int64
}

// Auction is a timed listing owned by an auctioneer.
type Auction struct {
	ID          string
	Title       string
	Description string
	Category    string
	Condition   string
	ImageURL    string
	StartingBid int64
	StartTime   time.Time
	EndTime     time.Time
	CreatedBy   string

	// HighestBid is nil while the auction has no bids.
	HighestBid *HighestBid

	CommissionCalculated bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EvaluateLifecycle derives the auction phase from its window and the current time.
// start == end is never Active.
func EvaluateLifecycle(start, end, now time.Time) Lifecycle {
	if now.Before(start) {
		return LifecycleUpcoming
	}
	if now.After(end) || (start.Equal(end) && !now.Before(end)) {
		return LifecycleEnded
	}
	return LifecycleActive
}

func (a *Auction) StatusAt(now time.Time) Lifecycle {
	return EvaluateLifecycle(a.StartTime, a.EndTime, now)
}

// HasBids reports whether the highest-bid cache is populated.
func (a *Auction) HasBids() bool { return a.HighestBid != nil }

// Clone returns a deep copy so callers cannot mutate stored state.
func (a *Auction) Clone() *Auction {
	if a == nil {
		return nil
	}
	c := *a
	if a.HighestBid != nil {
		hb := *a.HighestBid
		c.HighestBid = &hb
	}
	return &c
}
