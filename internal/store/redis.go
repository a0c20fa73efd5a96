package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "slotbooking:collection:"

// Redis keeps one value per collection under a prefixed key, the same get/set
// shape as the local backends but on a shared server.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings the server so misconfiguration fails at
// startup rather than on the first booking.
func NewRedis(addr, username, password string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", errors.Join(ErrUnavailable, err))
	}

	return &Redis{client: rdb}, nil
}

func (r *Redis) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+collection).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", collection, errors.Join(ErrUnavailable, err))
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, collection string, data []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+collection, data, 0).Err(); err != nil {
		return fmt.Errorf("set collection %s: %w", collection, errors.Join(ErrUnavailable, err))
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
