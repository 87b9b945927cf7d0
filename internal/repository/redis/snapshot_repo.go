// internal/repository/redis/snapshot_repo.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitplan/internal/config"
	"alcyxob/fitplan/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "fitplan:"

// redisSnapshotRepository stores each snapshot as a plain string value.
type redisSnapshotRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewClient creates a go-redis client from config.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// Ping verifies the connection.
func Ping(ctx context.Context, client *goredis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// NewRedisSnapshotRepository creates a Redis-backed store. ttl <= 0 keeps
// snapshots forever.
func NewRedisSnapshotRepository(client *goredis.Client, ttl time.Duration) repository.SnapshotRepository {
	if ttl < 0 {
		ttl = 0
	}
	return &redisSnapshotRepository{client: client, ttl: ttl}
}

func (r *redisSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	doc, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return doc, nil
}

func (r *redisSnapshotRepository) Save(ctx context.Context, key string, doc []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, doc, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisSnapshotRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
