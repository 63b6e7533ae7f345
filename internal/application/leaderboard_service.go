package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
)

const (
	leaderboardKey          = "leaderboard:v1"
	defaultLeaderboardLimit = 100
)

// LeaderboardService derives win counts and spend from ended auctions.
// Nothing it computes is stored; the Redis copy is a short-lived cache.
type LeaderboardService struct {
	Store  repo.Store
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewLeaderboardService(store repo.Store, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *LeaderboardService {
	return &LeaderboardService{
		Store:  store,
		Redis:  rdb,
		TTL:    ttl,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// Recompute returns the user's standing from the current set of ended auctions.
func (s *LeaderboardService) Recompute(ctx context.Context, userID string) (entity.Standing, error) {
	r := s.Store.Repos()
	u, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.Standing{}, ErrUserNotFound
		}
		return entity.Standing{}, fmt.Errorf("get user: %w", err)
	}
	now := s.Now()
	ended, err := r.Auctions.ListEnded(ctx, now)
	if err != nil {
		return entity.Standing{}, fmt.Errorf("list ended auctions: %w", err)
	}
	st := entity.AggregateStanding(userID, ended, now)
	st.UserName = u.UserName
	st.ImageURL = u.ProfileImageURL
	return st, nil
}

// Leaderboard returns winners ordered by money spent, then auctions won.
func (s *LeaderboardService) Leaderboard(ctx context.Context, limit int) ([]entity.Standing, error) {
	if limit <= 0 || limit > defaultLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}

	var board []entity.Standing
	if s.Redis != nil {
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, leaderboardKey, &board)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("leaderboard cache read failed")
		}
		if ok {
			return truncate(board, limit), nil
		}
	}

	board, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil && s.TTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, leaderboardKey, board, s.TTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("leaderboard cache write failed")
		}
	}
	return truncate(board, limit), nil
}

func (s *LeaderboardService) compute(ctx context.Context) ([]entity.Standing, error) {
	r := s.Store.Repos()
	now := s.Now()
	ended, err := r.Auctions.ListEnded(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list ended auctions: %w", err)
	}
	board := entity.AggregateLeaderboard(ended, now)
	if len(board) > defaultLeaderboardLimit {
		board = board[:defaultLeaderboardLimit]
	}

	ids := make([]string, 0, len(board))
	for _, st := range board {
		ids = append(ids, st.UserID)
	}
	users, err := r.Users.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard users: %w", err)
	}
	for i := range board {
		if u, ok := users[board[i].UserID]; ok {
			board[i].UserName = u.UserName
			board[i].ImageURL = u.ProfileImageURL
		}
	}
	return board, nil
}

// Invalidate drops the cached leaderboard.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, leaderboardKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("leaderboard cache invalidate failed")
	}
}

func truncate(board []entity.Standing, limit int) []entity.Standing {
	if board == nil {
		return []entity.Standing{}
	}
	if len(board) > limit {
		return board[:limit]
	}
	return board
}
