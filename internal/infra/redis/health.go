package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// HealthCheck pings the Redis server holding the token blocklist.
type HealthCheck struct {
	client *redis.Client
}

func NewHealthCheck(client *redis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Name() string { return "redis" }

func (h *HealthCheck) Check(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
