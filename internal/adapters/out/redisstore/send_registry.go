// Package redisstore keeps the email send registry in Redis.
package redisstore

import (
	"context"
	"time"

	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "marketplace:notification:sent:"

// Settings holds the Redis connection parameters.
type Settings struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NewClient creates a Redis client. It does not connect until first use.
func NewClient(cfg Settings) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// SendRegistry records sent notification IDs with a TTL. Redis being down
// never blocks delivery: lookups then report "not sent" and marks are
// dropped, at the cost of a possible duplicate email.
type SendRegistry struct {
	rdb    redis.UniversalClient
	logger *zap.Logger
}

var _ ports.SendRegistry = (*SendRegistry)(nil)

// NewSendRegistry creates a send registry backed by rdb.
func NewSendRegistry(rdb redis.UniversalClient, logger *zap.Logger) *SendRegistry {
	return &SendRegistry{rdb: rdb, logger: logger}
}

// WasSent reports whether the notification was marked sent. Lookup errors
// are logged and reported as false.
func (r *SendRegistry) WasSent(ctx context.Context, notificationID string) bool {
	n, err := r.rdb.Exists(ctx, keyPrefix+notificationID).Result()
	if err != nil {
		r.logger.Warn("send registry lookup failed, assuming not sent",
			zap.String("notification_id", notificationID),
			zap.Error(err),
		)
		return false
	}
	return n > 0
}

// MarkSent remembers the notification as sent for ttl.
func (r *SendRegistry) MarkSent(ctx context.Context, notificationID string, ttl time.Duration) {
	if err := r.rdb.Set(ctx, keyPrefix+notificationID, 1, ttl).Err(); err != nil {
		r.logger.Warn("send registry mark failed",
			zap.String("notification_id", notificationID),
			zap.Error(err),
		)
	}
}
