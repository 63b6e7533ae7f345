package entity

import (
	"sort"
	"time"
)

// Bid is an append-only ledger record; it is never mutated once accepted.
type Bid struct {
	ID         string
	AuctionID  string
	BidderID   string
	BidderName string
	Amount     int64
	CreatedAt  time.Time
}

// SortBids orders bids by amount descending, earlier bids first on ties.
func SortBids(bids []*Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		if bids[i].Amount != bids[j].Amount {
			return bids[i].Amount > bids[j].Amount
		}
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})
}
