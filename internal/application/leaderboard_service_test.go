package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/internal/infrastructure/memory"
)

// endedWithBids creates an auction, places the given bids while it is
// active and returns it.
func endedWithBids(t *testing.T, store *memory.Store, ownerID string, bids map[string]int64) *entity.Auction {
	t.Helper()
	a := seedAuction(t, store, ownerID, t0, t0.Add(time.Hour), 10)
	svc := NewBidService(store, nil, nil)
	svc.Now = fixedClock(t0.Add(time.Minute))
	for bidderID, amount := range bids {
		_, err := svc.PlaceBid(context.Background(), a.ID, bidderID, amount)
		require.NoError(t, err)
	}
	return a
}

func TestLeaderboard_RecomputeIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
	alice := seedUser(t, store, "Alice", entity.RoleBidder)
	bob := seedUser(t, store, "Bob", entity.RoleBidder)

	endedWithBids(t, store, owner.ID, map[string]int64{alice.ID: 100})
	endedWithBids(t, store, owner.ID, map[string]int64{alice.ID: 40})
	endedWithBids(t, store, owner.ID, map[string]int64{bob.ID: 300})

	svc := NewLeaderboardService(store, nil, time.Minute, nil)
	svc.Now = fixedClock(t0.Add(2 * time.Hour))

	first, err := svc.Recompute(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, 2, first.AuctionsWon)
	require.Equal(t, int64(140), first.MoneySpent)
	require.Equal(t, "Alice", first.UserName)

	second, err := svc.Recompute(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// nothing counts while auctions are still running
	svc.Now = fixedClock(t0.Add(30 * time.Minute))
	running, err := svc.Recompute(ctx, alice.ID)
	require.NoError(t, err)
	require.Zero(t, running.AuctionsWon)
	require.Zero(t, running.MoneySpent)

	_, err = svc.Recompute(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLeaderboard_Ordering(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
	alice := seedUser(t, store, "Alice", entity.RoleBidder)
	bob := seedUser(t, store, "Bob", entity.RoleBidder)

	endedWithBids(t, store, owner.ID, map[string]int64{alice.ID: 100})
	endedWithBids(t, store, owner.ID, map[string]int64{bob.ID: 300})

	svc := NewLeaderboardService(store, nil, time.Minute, nil)
	svc.Now = fixedClock(t0.Add(2 * time.Hour))

	board, err := svc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 2)
	require.Equal(t, bob.ID, board[0].UserID)
	require.Equal(t, "Bob", board[0].UserName)
	require.Equal(t, alice.ID, board[1].UserID)

	top, err := svc.Leaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	empty := NewLeaderboardService(memory.NewStore(), nil, 0, nil)
	board, err = empty.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, board)
	require.Empty(t, board)
}
