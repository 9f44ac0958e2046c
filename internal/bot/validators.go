package bot

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Validation helper functions for command input validation

const (
	maxChannelNameLength = 100
	// Discord refuses timeouts longer than 28 days
	maxTimeoutDuration = 28 * 24 * time.Hour
)

// isValidChannelName validates a name before it is sent to Discord
func isValidChannelName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: channel name cannot be empty", ErrInvalidOption)
	}

	if utf8.RuneCountInString(name) > maxChannelNameLength {
		return fmt.Errorf("%w: channel name too long (max %d characters)", ErrInvalidOption, maxChannelNameLength)
	}

	return nil
}

// parseTimeoutDuration parses a Go duration string such as "10m" or "1h30m"
func parseTimeoutDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: duration cannot be empty", ErrInvalidOption)
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid duration '%s', use a format like 10m or 1h30m", ErrInvalidOption, value)
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive", ErrInvalidOption)
	}

	if d > maxTimeoutDuration {
		return 0, fmt.Errorf("%w: duration too long (max 28 days)", ErrInvalidOption)
	}

	return d, nil
}

// truncateMessage truncates a message to Discord's limit with ellipsis.
// Lengths are counted in characters, never splitting a rune.
func truncateMessage(message string, maxLength int) string {
	if utf8.RuneCountInString(message) <= maxLength {
		return message
	}

	runes := []rune(message)
	if maxLength < 3 {
		return string(runes[:maxLength])
	}

	return string(runes[:maxLength-3]) + "..."
}

// RateLimiter tracks command cooldowns per user in memory. It is used when
// no Redis server is configured.
type RateLimiter struct {
	mu        sync.Mutex
	cooldowns map[string]time.Time
	duration  time.Duration
	now       func() time.Time
}

// NewRateLimiter creates a new rate limiter with specified cooldown duration
func NewRateLimiter(cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		cooldowns: make(map[string]time.Time),
		duration:  cooldown,
		now:       time.Now,
	}
}

// Remaining returns how long the user must still wait
func (rl *RateLimiter) Remaining(userID string) (time.Duration, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if lastUse, exists := rl.cooldowns[userID]; exists {
		elapsed := rl.now().Sub(lastUse)
		if elapsed < rl.duration {
			return rl.duration - elapsed, nil
		}
	}
	return 0, nil
}

// Record records a command use for a user
func (rl *RateLimiter) Record(userID string) error {
	if rl.duration <= 0 {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanup()
	rl.cooldowns[userID] = rl.now()
	return nil
}

// cleanup removes expired cooldowns. Callers hold rl.mu.
func (rl *RateLimiter) cleanup() {
	now := rl.now()
	for userID, lastUse := range rl.cooldowns {
		if now.Sub(lastUse) >= rl.duration {
			delete(rl.cooldowns, userID)
		}
	}
}
