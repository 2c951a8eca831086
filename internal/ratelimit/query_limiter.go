package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/kitewave/pulse/internal/config"
)

const (
	keyAnalyticsQueryClient = "analytics:query:client:%s"
	keySeedLock             = "pulse:seed:lock"

	seedLockTTL = 5 * time.Minute
)

// QueryLimiter caps how fast a single client can pull metric bundles.
// Every bundle fans out to several aggregation queries against the
// primary store, so an unthrottled dashboard refresh loop is a real load
// hazard. Disabled deployments pass everything through.
type QueryLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker

	rate  float64
	burst int
}

func NewQueryLimiter(cfg config.Config) (*QueryLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.QueryRate <= 0 || limitCfg.QueryBurst <= 0 {
		return nil, errors.New("analytics query rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &QueryLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    limitCfg.QueryRate,
		burst:   limitCfg.QueryBurst,
	}, nil
}

func (l *QueryLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *QueryLimiter) AllowClient(ctx context.Context, clientKey string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyAnalyticsQueryClient, strings.TrimSpace(clientKey)), l.rate, l.burst)
}

// TryLockSeed serializes demo-data seeding across replicas sharing one
// store. Single-instance deployments without redis skip the lock.
func (l *QueryLimiter) TryLockSeed(ctx context.Context) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	return l.locker.TryLock(ctx, keySeedLock, seedLockTTL)
}

func (l *QueryLimiter) ReleaseSeed(ctx context.Context, token string) error {
	if !l.Enabled() || token == "" {
		return nil
	}
	return l.locker.Release(ctx, keySeedLock, token)
}
