package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func endedAuction(id, winner string, amount int64, end time.Time) *Auction {
	a := &Auction{ID: id, StartTime: end.Add(-time.Hour), EndTime: end}
	if winner != "" {
		a.HighestBid = &HighestBid{BidID: id + "-bid", BidderID: winner, Amount: amount}
	}
	return a
}

func TestAggregateStanding(t *testing.T) {
	now := time.Now().UTC()
	auctions := []*Auction{
		endedAuction("a1", "alice", 100, now.Add(-time.Hour)),
		endedAuction("a2", "alice", 250, now.Add(-time.Minute)),
		endedAuction("a3", "bob", 300, now.Add(-time.Minute)),
		endedAuction("a4", "", 0, now.Add(-time.Minute)),
		// still running: alice leads but has not won yet
		{ID: "a5", StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), HighestBid: &HighestBid{BidderID: "alice", Amount: 900}},
	}

	got := AggregateStanding("alice", auctions, now)
	require.Equal(t, Standing{UserID: "alice", AuctionsWon: 2, MoneySpent: 350}, got)

	// idempotent over unchanged input
	require.Equal(t, got, AggregateStanding("alice", auctions, now))

	require.Equal(t, Standing{UserID: "carol"}, AggregateStanding("carol", auctions, now))
}

func TestAggregateLeaderboard(t *testing.T) {
	now := time.Now().UTC()
	auctions := []*Auction{
		endedAuction("a1", "alice", 100, now.Add(-time.Hour)),
		endedAuction("a2", "bob", 100, now.Add(-time.Hour)),
		endedAuction("a3", "carol", 500, now.Add(-time.Hour)),
		endedAuction("a4", "bob", 50, now.Add(-time.Hour)),
		endedAuction("a5", "dave", 150, now.Add(-time.Hour)),
	}

	board := AggregateLeaderboard(auctions, now)
	require.Len(t, board, 4)
	require.Equal(t, "carol", board[0].UserID)
	// bob and dave both spent 150; bob won more auctions
	require.Equal(t, "bob", board[1].UserID)
	require.Equal(t, 2, board[1].AuctionsWon)
	require.Equal(t, "dave", board[2].UserID)
	require.Equal(t, "alice", board[3].UserID)
}
