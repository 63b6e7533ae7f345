package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

// DBTX is the subset of pgx used by the repositories.
// Both *pgxpool.Pool and pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation = "23505"
	pgForeignKey      = "23503"
	pgInvalidText     = "22P02"
)

// wrapErr translates driver errors into repository sentinels.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repo.ErrNotFound)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, repo.ErrConflict)
		case pgInvalidText:
			// malformed uuid in a lookup
			return fmt.Errorf("%s: %w", op, repo.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, repo.ErrUnavailable, err)
}

// isPgCode reports whether err is a server error with the given SQLSTATE.
func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// Store is the PostgreSQL-backed repo.Store.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func reposFor(db DBTX) repo.Repositories {
	return repo.Repositories{
		Users:       NewUserRepository(db),
		Auctions:    NewAuctionRepository(db),
		Bids:        NewBidRepository(db),
		Commissions: NewCommissionRepository(db),
	}
}

func (s *Store) Repos() repo.Repositories { return reposFor(s.pool) }

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, r repo.Repositories) error) error {
	return s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, reposFor(tx))
	})
}

// WithinAuction locks the auction row for the lifetime of the transaction so
// concurrent bids on the same auction queue behind each other.
func (s *Store) WithinAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, r repo.Repositories) error) error {
	return s.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var locked string
		err := tx.QueryRow(ctx, `SELECT id FROM auctions WHERE id = $1 FOR UPDATE`, auctionID).Scan(&locked)
		if err != nil {
			// a failed statement aborts the transaction, so fn must not run on it
			return wrapErr("lock auction", err)
		}
		return fn(ctx, reposFor(tx))
	})
}

// withTx commits on success and rolls back on error or panic. Panics are rethrown.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return wrapErr("begin tx", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = wrapErr("commit tx", tx.Commit(ctx))
	}()
	return fn(ctx, tx)
}

var _ repo.Store = (*Store)(nil)
