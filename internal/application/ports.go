package application

import (
	"context"
	"io"
	"strings"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
)

// Upload is a file received from a client.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

func (u *Upload) validImage() error {
	if u == nil || u.Reader == nil {
		return ErrImageRequired
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(u.ContentType, ";", 2)[0]))
	if !allowedImageTypes[ct] {
		return ErrUnsupportedImage
	}
	return nil
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, prefix string, file Upload) (string, error)
}

// AuctionIndex is a secondary full-text index over auctions.
type AuctionIndex interface {
	Index(ctx context.Context, a *entity.Auction) error
	Remove(ctx context.Context, auctionID string) error
	// Search returns matching auction IDs, best match first.
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// JobPublisher enqueues background jobs such as emails.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// BidNotifier is told about every committed bid.
type BidNotifier interface {
	BidPlaced(b *entity.Bid)
}
