// Package redis implements message deduplication on Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const dedupKeyPrefix = "chatorder:msg:"

// Deduplicator implements ports.MessageDeduplicator on Redis keys with a TTL.
// A message id is marked only after it was handled, so failed messages stay
// unmarked and their redelivery is processed again. The TTL bounds memory:
// chat transports redeliver within minutes, not days.
type Deduplicator struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewDeduplicator creates a deduplicator storing marks for ttl.
func NewDeduplicator(client *goredis.Client, ttl time.Duration) *Deduplicator {
	return &Deduplicator{
		client: client,
		ttl:    ttl,
	}
}

// Seen reports whether messageID was already marked as processed.
func (d *Deduplicator) Seen(ctx context.Context, messageID string) (bool, error) {
	hits, err := d.client.Exists(ctx, dedupKeyPrefix+messageID).Result()
	if err != nil {
		return false, fmt.Errorf("dedup exists: %w", err)
	}

	return hits > 0, nil
}

// MarkSeen records messageID as processed for the configured TTL.
func (d *Deduplicator) MarkSeen(ctx context.Context, messageID string) error {
	if err := d.client.Set(ctx, dedupKeyPrefix+messageID, 1, d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup set: %w", err)
	}

	return nil
}
