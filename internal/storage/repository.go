package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefixes
	cooldownPrefix = "blogs:cooldown:" // blogs:cooldown:{userID}
	defaultTimeout = 5 * time.Second
)

// CooldownRepository tracks when a user last changed their blog channel
type CooldownRepository interface {
	// Remaining returns how long the user must still wait, zero if they may act
	Remaining(userID string) (time.Duration, error)
	// Record starts a new cooldown window for the user
	Record(userID string) error
}

// RedisCooldownRepository implements CooldownRepository using expiring Redis keys
type RedisCooldownRepository struct {
	client   *redis.Client
	duration time.Duration
}

// NewRedisCooldownRepository creates a new Redis-based cooldown repository
func NewRedisCooldownRepository(client *redis.Client, duration time.Duration) *RedisCooldownRepository {
	return &RedisCooldownRepository{
		client:   client,
		duration: duration,
	}
}

// Remaining returns the time left on the user's cooldown
func (r *RedisCooldownRepository) Remaining(userID string) (time.Duration, error) {
	if r.duration <= 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	ttl, err := r.client.PTTL(ctx, cooldownKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get cooldown: %w", err)
	}

	// Negative TTLs mean the key is missing or has no expiry
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}

// Record starts the cooldown window for the user
func (r *RedisCooldownRepository) Record(userID string) error {
	if r.duration <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := r.client.Set(ctx, cooldownKey(userID), time.Now().Unix(), r.duration).Err(); err != nil {
		return fmt.Errorf("failed to record cooldown: %w", err)
	}

	return nil
}

func cooldownKey(userID string) string {
	return cooldownPrefix + userID
}
