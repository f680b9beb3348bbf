// Package redis disponibiliza a implementação do storage baseada em Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
)

// fixedWindowScript returns {allowed, count, reset_in_ms}. The counter key
// carries the window as its PX expiry, so a missing key is a fresh window.
var fixedWindowScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local current = redis.call('GET', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if (not current) or ttl <= 0 then
  redis.call('SET', KEYS[1], 1, 'PX', window)
  return {1, 1, window}
end
current = tonumber(current)
if current >= limit then
  return {0, current, ttl}
end
current = redis.call('INCR', KEYS[1])
return {1, current, ttl}
`)

type Storage struct {
	client *redis.Client
}

var _ ports.WindowStore = (*Storage)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) (*Storage, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Storage{client: client}, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Hit(ctx context.Context, key string, maxRequests int, window time.Duration) (domain.Decision, error) {
	if key == "" {
		return domain.Decision{}, fmt.Errorf("key is required")
	}
	if maxRequests <= 0 || window <= 0 {
		return domain.Decision{}, fmt.Errorf("limit and window must be positive")
	}

	res, err := fixedWindowScript.Run(ctx, s.client, []string{key}, maxRequests, window.Milliseconds()).Int64Slice()
	if err != nil {
		return domain.Decision{}, fmt.Errorf("redis fixed window: %w", err)
	}
	if len(res) != 3 {
		return domain.Decision{}, fmt.Errorf("redis fixed window: unexpected reply %v", res)
	}

	allowed := res[0] == 1
	count := int(res[1])
	decision := domain.Decision{
		Allowed: allowed,
		ResetIn: time.Duration(res[2]) * time.Millisecond,
		Limit:   maxRequests,
	}
	if allowed {
		decision.Remaining = maxRequests - count
	}
	return decision, nil
}
