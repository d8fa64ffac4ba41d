package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultResetTokenPrefix = "shop:reset_token_used"

// ResetTokenLedger remembers which password reset tokens were already redeemed.
type ResetTokenLedger struct {
	client *redis.Client
	prefix string
}

// NewResetTokenLedger wires the ledger to redis.
func NewResetTokenLedger(client *redis.Client, keyPrefix string) *ResetTokenLedger {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultResetTokenPrefix
	}
	return &ResetTokenLedger{client: client, prefix: prefix}
}

// MarkUsed records jti until ttl elapses. It returns false when jti was already used.
func (l *ResetTokenLedger) MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, fmt.Errorf("token id is required")
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	ok, err := l.client.SetNX(ctx, l.prefix+":"+jti, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx reset token: %w", err)
	}
	return ok, nil
}

// MemoryResetTokenLedger keeps redeemed tokens in process memory.
type MemoryResetTokenLedger struct {
	mu   sync.Mutex
	used map[string]time.Time
	now  func() time.Time
}

// NewMemoryResetTokenLedger builds an in-process ledger.
func NewMemoryResetTokenLedger() *MemoryResetTokenLedger {
	return &MemoryResetTokenLedger{used: make(map[string]time.Time), now: time.Now}
}

// MarkUsed records jti until ttl elapses. It returns false when jti was already used.
func (l *MemoryResetTokenLedger) MarkUsed(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, fmt.Errorf("token id is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, expires := range l.used {
		if now.After(expires) {
			delete(l.used, id)
		}
	}
	if _, seen := l.used[jti]; seen {
		return false, nil
	}
	l.used[jti] = now.Add(ttl)
	return true, nil
}
