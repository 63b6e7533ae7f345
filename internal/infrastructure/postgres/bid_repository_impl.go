package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type BidRepository struct {
	db DBTX
}

func NewBidRepository(db DBTX) *BidRepository {
	return &BidRepository{db: db}
}

const bidColumns = `id, auction_id, bidder_id, bidder_name, amount, created_at`

func scanBid(row pgx.Row) (*entity.Bid, error) {
	b := &entity.Bid{}
	if err := row.Scan(&b.ID, &b.AuctionID, &b.BidderID, &b.BidderName, &b.Amount, &b.CreatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BidRepository) Append(ctx context.Context, b *entity.Bid) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO bids (auction_id, bidder_id, bidder_name, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, b.AuctionID, b.BidderID, b.BidderName, b.Amount)
	err := row.Scan(&b.ID, &b.CreatedAt)
	if isPgCode(err, pgForeignKey) {
		// the auction was deleted underneath the bid
		return fmt.Errorf("append bid to %s: %w", b.AuctionID, repository.ErrNotFound)
	}
	return wrapErr("append bid", err)
}

func (r *BidRepository) ListByAuction(ctx context.Context, auctionID string) ([]*entity.Bid, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 ORDER BY amount DESC, created_at ASC
	`, auctionID)
	if err != nil {
		return nil, wrapErr("list bids", err)
	}
	defer rows.Close()
	out := make([]*entity.Bid, 0)
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, wrapErr("scan bid", err)
		}
		out = append(out, b)
	}
	return out, wrapErr("list bids", rows.Err())
}

func (r *BidRepository) HighestFor(ctx context.Context, auctionID string) (*entity.Bid, error) {
	b, err := scanBid(r.db.QueryRow(ctx, `
		SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 ORDER BY amount DESC, created_at ASC LIMIT 1
	`, auctionID))
	if err != nil {
		return nil, wrapErr("highest bid", err)
	}
	return b, nil
}

func (r *BidRepository) CountByAuction(ctx context.Context, auctionID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bids WHERE auction_id = $1`, auctionID).Scan(&n)
	return n, wrapErr("count bids", err)
}

var _ repository.BidRepository = (*BidRepository)(nil)
