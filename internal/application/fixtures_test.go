package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/auction-marketplace/config"
	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
	"github.com/oksasatya/auction-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/auction-marketplace/pkg/mailer"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func pngUpload() *Upload {
	return &Upload{Reader: strings.NewReader("png-bytes"), Filename: "item.png", ContentType: "image/png"}
}

func seedUser(t *testing.T, store *memory.Store, name string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{UserName: name, Email: strings.ToLower(name) + "@example.test", Role: role}
	require.NoError(t, store.Repos().Users.Create(context.Background(), u))
	return u
}

func seedAuction(t *testing.T, store *memory.Store, ownerID string, start, end time.Time, startingBid int64) *entity.Auction {
	t.Helper()
	a := &entity.Auction{
		Title:       "Vintage camera",
		Description: "Fully working",
		Category:    "Electronics",
		Condition:   "Used",
		StartingBid: startingBid,
		StartTime:   start,
		EndTime:     end,
		CreatedBy:   ownerID,
	}
	require.NoError(t, store.Repos().Auctions.Create(context.Background(), a))
	return a
}

// racingStore runs before inside WithinAuction ahead of the real lock, so
// tests can interleave a competing write with a unit of work.
type racingStore struct {
	*memory.Store
	before func(ctx context.Context, auctionID string)
}

func (s *racingStore) WithinAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, r repo.Repositories) error) error {
	if s.before != nil {
		s.before(ctx, auctionID)
	}
	return s.Store.WithinAuction(ctx, auctionID, fn)
}

// goneBids reports the auction as missing on Append, as a foreign key
// violation would after a concurrent delete.
type goneBids struct {
	repo.BidRepository
}

func (goneBids) Append(_ context.Context, b *entity.Bid) error {
	return fmt.Errorf("append bid for %s: %w", b.AuctionID, repo.ErrNotFound)
}

type goneBidsStore struct {
	*memory.Store
}

func (s *goneBidsStore) WithinAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, r repo.Repositories) error) error {
	return s.Store.WithinAuction(ctx, auctionID, func(ctx context.Context, r repo.Repositories) error {
		r.Bids = goneBids{r.Bids}
		return fn(ctx, r)
	})
}

type fakeImages struct {
	mu       sync.Mutex
	prefixes []string
	err      error
}

func (f *fakeImages) Upload(_ context.Context, prefix string, file Upload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, file.Reader)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes = append(f.prefixes, prefix)
	return "https://storage.test/" + prefix + "/" + file.Filename, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

func (f *fakePublisher) templates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j.Template)
	}
	return out
}

func testMail(pub *fakePublisher) *Mail {
	return &Mail{Pub: pub, Cfg: &config.Config{AppName: "bids", MailSendEnabled: true, AuctionURL: "https://bids.test/a/"}}
}

type recordingNotifier struct {
	mu   sync.Mutex
	bids []*entity.Bid
}

func (n *recordingNotifier) BidPlaced(b *entity.Bid) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bids = append(n.bids, b)
}
