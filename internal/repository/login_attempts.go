package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLoginAttemptPrefix = "shop:login_attempts"

// LoginAttemptStore counts attempts per client inside a fixed window.
type LoginAttemptStore struct {
	client *redis.Client
	prefix string
}

// NewLoginAttemptStore wires the counter to redis.
func NewLoginAttemptStore(client *redis.Client, keyPrefix string) *LoginAttemptStore {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultLoginAttemptPrefix
	}
	return &LoginAttemptStore{client: client, prefix: prefix}
}

// Increment records an attempt and returns the count inside the current window.
// The window starts with the first attempt and lasts for window.
func (s *LoginAttemptStore) Increment(ctx context.Context, identifier string, window time.Duration) (int64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("window must be positive")
	}
	key := s.prefix + ":" + identifier

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr login attempts: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("redis expire login attempts: %w", err)
		}
	}
	return count, nil
}

// Reset clears the counter for identifier.
func (s *LoginAttemptStore) Reset(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, s.prefix+":"+identifier).Err(); err != nil {
		return fmt.Errorf("redis del login attempts: %w", err)
	}
	return nil
}
