package database

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisSlot struct {
	client *redis.Client
}

func NewRedisSlot(client *redis.Client) Slot {
	return &redisSlot{client: client}
}

func (s *redisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return data, nil
}

func (s *redisSlot) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *redisSlot) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
