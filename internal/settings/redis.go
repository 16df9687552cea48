package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gridboard:settings:"

// RedisStore keeps one JSON value per key
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis:// URL
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, key string) (*ViewSettings, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", key, err)
	}
	return decode(data)
}

func (r *RedisStore) Save(ctx context.Context, key string, vs ViewSettings) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := encode(vs)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("save settings %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// HealthCheck pings the Redis server
func (r *RedisStore) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
