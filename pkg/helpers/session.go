package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionKey is the Redis hash holding a user's active login session.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// StoreSession records the active session for a user, replacing any previous one.
func StoreSession(ctx context.Context, rdb *redis.Client, userID, sessionID, role string, ttl time.Duration) error {
	key := SessionKey(userID)
	pipe := rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"sid":        sessionID,
		"role":       role,
		"created_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// SessionActive reports whether sessionID is the user's current session.
func SessionActive(ctx context.Context, rdb *redis.Client, userID, sessionID string) (bool, error) {
	sid, err := rdb.HGet(ctx, SessionKey(userID), "sid").Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sid == sessionID, nil
}

func DeleteSession(ctx context.Context, rdb *redis.Client, userID string) error {
	return rdb.Del(ctx, SessionKey(userID)).Err()
}
