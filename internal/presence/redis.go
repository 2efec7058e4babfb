package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
)

var _ Tracker = (*RedisTracker)(nil)

// RedisTracker shares presence across server instances through one redis
// hash per article. The hash itself expires after TTL so abandoned
// articles leave no keys behind.
type RedisTracker struct {
	client *redis.Client
}

func NewRedisTracker(client *redis.Client) *RedisTracker {
	return &RedisTracker{client: client}
}

func presenceKey(articleID string) string {
	return "presence:" + articleID
}

func (t *RedisTracker) Heartbeat(ctx context.Context, articleID string, user models.Presence) ([]models.Presence, error) {
	key := presenceKey(articleID)
	now := time.Now()
	user.LastSeen = now

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal presence: %w", err)
	}

	pipe := t.client.Pipeline()
	pipe.HSet(ctx, key, user.UserID, data)
	pipe.Expire(ctx, key, TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record heartbeat: %w", err)
	}

	entries, err := t.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read presence: %w", err)
	}

	cutoff := now.Add(-TTL)
	others := make([]models.Presence, 0, len(entries))
	var stale []string
	for uid, raw := range entries {
		var entry models.Presence
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			stale = append(stale, uid)
			continue
		}
		if entry.LastSeen.Before(cutoff) {
			stale = append(stale, uid)
			continue
		}
		if uid != user.UserID {
			others = append(others, entry)
		}
	}

	if len(stale) > 0 {
		// Best effort sweep; expired fields would age out with the key.
		t.client.HDel(ctx, key, stale...)
	}
	return others, nil
}

func (t *RedisTracker) Leave(ctx context.Context, articleID, userID string) error {
	if err := t.client.HDel(ctx, presenceKey(articleID), userID).Err(); err != nil {
		return fmt.Errorf("failed to remove presence: %w", err)
	}
	return nil
}
