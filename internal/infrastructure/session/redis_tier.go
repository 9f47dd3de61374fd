package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// RedisTier persists session records as Redis hashes, one hash per session
// with the two slots as fields. A single HSET keeps the write atomic.
type RedisTier struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTier(client *redis.Client, ttl time.Duration) *RedisTier {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisTier{client: client, ttl: ttl}
}

func (t *RedisTier) Read(ctx context.Context, sid string) (Record, error) {
	vals, err := t.client.HGetAll(ctx, t.key(sid)).Result()
	if err != nil {
		return Record{}, fmt.Errorf("session read: %w", err)
	}
	if len(vals) == 0 {
		return Record{}, ErrNotFound
	}
	return Record{
		Token: vals["access_token"],
		User:  []byte(vals["user"]),
	}, nil
}

func (t *RedisTier) Write(ctx context.Context, sid string, rec Record) error {
	pipe := t.client.TxPipeline()
	pipe.HSet(ctx, t.key(sid), "access_token", rec.Token, "user", string(rec.User))
	pipe.Expire(ctx, t.key(sid), t.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	return nil
}

func (t *RedisTier) Delete(ctx context.Context, sid string) error {
	if err := t.client.Del(ctx, t.key(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (t *RedisTier) key(sid string) string {
	return "session:" + sid
}
