package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/internal/infrastructure/memory"
)

func validInput() CreateAuctionInput {
	return CreateAuctionInput{
		Title:       "  Road bike ",
		Description: "Carbon frame",
		Category:    "Sports",
		Condition:   "Like New",
		StartingBid: 500,
		StartTime:   t0.Add(time.Hour),
		EndTime:     t0.Add(25 * time.Hour),
		Image:       pngUpload(),
	}
}

type fakeIndex struct {
	indexed []string
	removed []string
	ids     []string
	err     error
}

func (f *fakeIndex) Index(_ context.Context, a *entity.Auction) error {
	f.indexed = append(f.indexed, a.ID)
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int) ([]string, error) {
	return f.ids, f.err
}

func newAuctionService(store *memory.Store, idx AuctionIndex) (*AuctionService, *fakeImages) {
	images := &fakeImages{}
	svc := NewAuctionService(store, images, idx, nil)
	svc.Now = fixedClock(t0)
	return svc, images
}

func TestAuctionCreate_Validation(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
	svc, _ := newAuctionService(store, nil)

	tests := []struct {
		name   string
		mutate func(in *CreateAuctionInput)
		want   error
	}{
		{"missing title", func(in *CreateAuctionInput) { in.Title = "  " }, ErrMissingField},
		{"missing category", func(in *CreateAuctionInput) { in.Category = "" }, ErrMissingField},
		{"missing times", func(in *CreateAuctionInput) { in.EndTime = time.Time{} }, ErrMissingField},
		{"unknown condition", func(in *CreateAuctionInput) { in.Condition = "Mint" }, ErrInvalidCondition},
		{"zero starting bid", func(in *CreateAuctionInput) { in.StartingBid = 0 }, ErrInvalidAmount},
		{"start in past", func(in *CreateAuctionInput) { in.StartTime = t0.Add(-time.Minute) }, ErrStartInPast},
		{"end equals start", func(in *CreateAuctionInput) { in.EndTime = in.StartTime }, ErrInvalidWindow},
		{"end before start", func(in *CreateAuctionInput) { in.EndTime = in.StartTime.Add(-time.Hour) }, ErrInvalidWindow},
		{"no image", func(in *CreateAuctionInput) { in.Image = nil }, ErrImageRequired},
		{"gif image", func(in *CreateAuctionInput) { in.Image.ContentType = "image/gif" }, ErrUnsupportedImage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), owner.ID, in)
			require.ErrorIs(t, err, tc.want)
		})
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAuctionCreate_Success(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
	idx := &fakeIndex{}
	svc, images := newAuctionService(store, idx)

	a, err := svc.Create(context.Background(), owner.ID, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	require.Equal(t, "Road bike", a.Title)
	require.Equal(t, owner.ID, a.CreatedBy)
	require.Contains(t, a.ImageURL, "auctions/"+owner.ID)
	require.Equal(t, []string{"auctions/" + owner.ID}, images.prefixes)
	require.Equal(t, []string{a.ID}, idx.indexed)

	d, err := svc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	require.Equal(t, entity.LifecycleUpcoming, d.Status)
	require.Empty(t, d.Bids)

	mine, err := svc.ListMine(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestAuctionCreate_OwnerRules(t *testing.T) {
	ctx := context.Background()

	t.Run("bidder cannot create", func(t *testing.T) {
		store := memory.NewStore()
		bidder := seedUser(t, store, "Bidder", entity.RoleBidder)
		svc, _ := newAuctionService(store, nil)
		_, err := svc.Create(ctx, bidder.ID, validInput())
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unpaid commission blocks", func(t *testing.T) {
		store := memory.NewStore()
		owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
		_, err := store.Repos().Users.AddUnpaidCommission(ctx, owner.ID, 25)
		require.NoError(t, err)
		svc, _ := newAuctionService(store, nil)
		_, err = svc.Create(ctx, owner.ID, validInput())
		require.ErrorIs(t, err, ErrUnpaidCommission)
	})

	t.Run("one unended auction at a time", func(t *testing.T) {
		store := memory.NewStore()
		owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
		seedAuction(t, store, owner.ID, t0.Add(-time.Hour), t0.Add(time.Hour), 10)
		svc, _ := newAuctionService(store, nil)
		_, err := svc.Create(ctx, owner.ID, validInput())
		require.ErrorIs(t, err, ErrActiveAuctionExists)
	})

	t.Run("ended auctions do not block", func(t *testing.T) {
		store := memory.NewStore()
		owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
		seedAuction(t, store, owner.ID, t0.Add(-2*time.Hour), t0.Add(-time.Hour), 10)
		svc, _ := newAuctionService(store, nil)
		_, err := svc.Create(ctx, owner.ID, validInput())
		require.NoError(t, err)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		store := memory.NewStore()
		owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
		svc, images := newAuctionService(store, nil)
		images.err = errors.New("bucket gone")
		_, err := svc.Create(ctx, owner.ID, validInput())
		require.Error(t, err)
		require.Contains(t, err.Error(), "bucket gone")
	})
}

func TestAuctionDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
	other := seedUser(t, store, "Other", entity.RoleAuctioneer)
	bidder := seedUser(t, store, "Bidder", entity.RoleBidder)
	admin := seedUser(t, store, "Admin", entity.RoleSuperAdmin)
	idx := &fakeIndex{}
	svc, _ := newAuctionService(store, idx)

	fresh := seedAuction(t, store, owner.ID, t0, t0.Add(time.Hour), 10)
	require.ErrorIs(t, svc.Delete(ctx, other.ID, other.Role, fresh.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, owner.ID, owner.Role, fresh.ID))
	require.ErrorIs(t, svc.Delete(ctx, owner.ID, owner.Role, fresh.ID), ErrAuctionNotFound)

	withBid := seedAuction(t, store, owner.ID, t0, t0.Add(time.Hour), 10)
	bids := NewBidService(store, nil, nil)
	bids.Now = fixedClock(t0.Add(time.Minute))
	_, err := bids.PlaceBid(ctx, withBid.ID, bidder.ID, 20)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, owner.ID, owner.Role, withBid.ID), ErrAuctionHasBids)
	require.NoError(t, svc.Delete(ctx, admin.ID, admin.Role, withBid.ID))
	require.Equal(t, []string{fresh.ID, withBid.ID}, idx.removed)
}

func TestAuctionListActiveAndSearch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedUser(t, store, "Owner", entity.RoleAuctioneer)
	active := seedAuction(t, store, owner.ID, t0.Add(-time.Hour), t0.Add(time.Hour), 10)
	seedAuction(t, store, owner.ID, t0.Add(time.Hour), t0.Add(2*time.Hour), 10)
	svc, _ := newAuctionService(store, nil)

	list, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, active.ID, list[0].ID)
	require.Equal(t, entity.LifecycleActive, list[0].Status)

	found, err := svc.Search(ctx, "CAMERA", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)

	found, err = svc.Search(ctx, "   ", 10)
	require.NoError(t, err)
	require.Empty(t, found)

	svc.Index = &fakeIndex{ids: []string{active.ID, "stale-id"}}
	found, err = svc.Search(ctx, "camera", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, active.ID, found[0].ID)

	svc.Index = &fakeIndex{err: errors.New("es down")}
	found, err = svc.Search(ctx, "electronics", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
}
