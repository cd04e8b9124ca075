package slot

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores each key as a plain string value with no expiry.
type RedisSlot struct {
	client redis.Cmdable
	prefix string
}

func NewRedisSlot(client redis.Cmdable, prefix string) *RedisSlot {
	return &RedisSlot{client: client, prefix: prefix}
}

func (s *RedisSlot) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.client.Ping(ctx).Err()
	})
}

func (s *RedisSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	var v []byte
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		v, err = s.client.Get(ctx, s.prefix+key).Bytes()
		return err
	})

	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *RedisSlot) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.client.Set(ctx, s.prefix+key, value, 0).Err()
	})
}
