package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type AuctionRepository struct {
	db DBTX
}

func NewAuctionRepository(db DBTX) *AuctionRepository {
	return &AuctionRepository{db: db}
}

const auctionColumns = `id, title, description, category, condition, image_url, starting_bid,
	start_time, end_time, created_by, highest_bid_id, highest_bidder_id, highest_bid_amount,
	commission_calculated, created_at, updated_at`

func scanAuction(row pgx.Row) (*entity.Auction, error) {
	a := &entity.Auction{}
	var (
		bidID, bidderID *string
		amount          *int64
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Category, &a.Condition, &a.ImageURL,
		&a.StartingBid, &a.StartTime, &a.EndTime, &a.CreatedBy, &bidID, &bidderID, &amount,
		&a.CommissionCalculated, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if bidID != nil && bidderID != nil && amount != nil {
		a.HighestBid = &entity.HighestBid{BidID: *bidID, BidderID: *bidderID, Amount: *amount}
	}
	return a, nil
}

func (r *AuctionRepository) query(ctx context.Context, op, where string, args ...any) ([]*entity.Auction, error) {
	rows, err := r.db.Query(ctx, `SELECT `+auctionColumns+` FROM auctions `+where+` ORDER BY created_at DESC, id`, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	out := make([]*entity.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, a)
	}
	return out, wrapErr(op, rows.Err())
}

func (r *AuctionRepository) Create(ctx context.Context, a *entity.Auction) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO auctions (title, description, category, condition, image_url, starting_bid, start_time, end_time, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, a.Title, a.Description, a.Category, a.Condition, a.ImageURL, a.StartingBid, a.StartTime, a.EndTime, a.CreatedBy)
	return wrapErr("create auction", row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AuctionRepository) GetByID(ctx context.Context, id string) (*entity.Auction, error) {
	a, err := scanAuction(r.db.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get auction", err)
	}
	return a, nil
}

func (r *AuctionRepository) List(ctx context.Context) ([]*entity.Auction, error) {
	return r.query(ctx, "list auctions", "")
}

func (r *AuctionRepository) ListActive(ctx context.Context, now time.Time) ([]*entity.Auction, error) {
	return r.query(ctx, "list active auctions", `WHERE start_time <= $1 AND end_time >= $1 AND start_time < end_time`, now)
}

func (r *AuctionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Auction, error) {
	return r.query(ctx, "list owner auctions", `WHERE created_by = $1`, ownerID)
}

func (r *AuctionRepository) ListEnded(ctx context.Context, now time.Time) ([]*entity.Auction, error) {
	return r.query(ctx, "list ended auctions", `WHERE end_time < $1`, now)
}

func (r *AuctionRepository) ListEndedUnsettled(ctx context.Context, now time.Time) ([]*entity.Auction, error) {
	return r.query(ctx, "list unsettled auctions", `WHERE end_time < $1 AND NOT commission_calculated`, now)
}

func (r *AuctionRepository) SetHighestBid(ctx context.Context, auctionID string, hb entity.HighestBid) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE auctions
		SET highest_bid_id = $1, highest_bidder_id = $2, highest_bid_amount = $3, updated_at = now()
		WHERE id = $4 AND (highest_bid_amount IS NULL OR highest_bid_amount < $3)
	`, hb.BidID, hb.BidderID, hb.Amount, auctionID)
	if err != nil {
		return wrapErr("set highest bid", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set highest bid on %s: %w", auctionID, repository.ErrConflict)
	}
	return nil
}

func (r *AuctionRepository) MarkCommissionCalculated(ctx context.Context, auctionID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE auctions SET commission_calculated = TRUE, updated_at = now()
		WHERE id = $1 AND NOT commission_calculated
	`, auctionID)
	if err != nil {
		return false, wrapErr("mark commission calculated", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AuctionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM auctions WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete auction", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete auction %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

var _ repository.AuctionRepository = (*AuctionRepository)(nil)
