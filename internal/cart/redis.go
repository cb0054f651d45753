package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisProvider(client *redis.Client) *RedisProvider {
	return &RedisProvider{
		client: client,
		ttl:    7 * 24 * time.Hour,
	}
}

type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisProvider) CurrentOrderID(ctx context.Context, sessionID string) (string, error) {
	orderID, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoCart
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return orderID, nil
}

func (r *RedisProvider) Attach(ctx context.Context, sessionID, orderID string) error {
	if err := r.client.Set(ctx, sessionKey(sessionID), orderID, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisProvider) Forget(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
