package entity

import (
	"sort"
	"time"
)

// Standing is a bidder's derived leaderboard totals.
type Standing struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	ImageURL    string `json:"profile_image_url,omitempty"`
	AuctionsWon int    `json:"auctions_won"`
	MoneySpent  int64  `json:"money_spent"`
}

// AggregateStanding sums the ended auctions in which userID holds the highest bid.
func AggregateStanding(userID string, auctions []*Auction, now time.Time) Standing {
	s := Standing{UserID: userID}
	for _, a := range auctions {
		if a.HighestBid == nil || a.HighestBid.BidderID != userID {
			continue
		}
		if a.StatusAt(now) != LifecycleEnded {
			continue
		}
		s.AuctionsWon++
		s.MoneySpent += a.HighestBid.Amount
	}
	return s
}

// AggregateLeaderboard groups ended auctions by winner, ordered by money spent,
// then auctions won, then user ID.
func AggregateLeaderboard(auctions []*Auction, now time.Time) []Standing {
	byUser := make(map[string]*Standing)
	for _, a := range auctions {
		if a.HighestBid == nil || a.StatusAt(now) != LifecycleEnded {
			continue
		}
		uid := a.HighestBid.BidderID
		s, ok := byUser[uid]
		if !ok {
			s = &Standing{UserID: uid}
			byUser[uid] = s
		}
		s.AuctionsWon++
		s.MoneySpent += a.HighestBid.Amount
	}
	out := make([]Standing, 0, len(byUser))
	for _, s := range byUser {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MoneySpent != out[j].MoneySpent {
			return out[i].MoneySpent > out[j].MoneySpent
		}
		if out[i].AuctionsWon != out[j].AuctionsWon {
			return out[i].AuctionsWon > out[j].AuctionsWon
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
