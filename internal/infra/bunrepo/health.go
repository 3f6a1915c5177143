package bunrepo

import (
	"context"

	"github.com/uptrace/bun"
)

// HealthCheck pings the database behind the repositories.
type HealthCheck struct {
	db *bun.DB
}

func NewHealthCheck(db *bun.DB) *HealthCheck {
	return &HealthCheck{db: db}
}

func (h *HealthCheck) Name() string { return "database" }

func (h *HealthCheck) Check(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
