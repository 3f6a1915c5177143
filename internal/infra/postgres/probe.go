package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

const defaultProbeTimeout = 2 * time.Second

// Probe reports whether Postgres accepts queries. It holds its own small pgx
// pool so a saturated ORM pool cannot mask a healthy server.
type Probe struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// Connect opens a minimal pool dedicated to readiness checks.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 2
	return pgxpool.ConnectConfig(ctx, cfg)
}

func NewProbe(pool *pgxpool.Pool) *Probe {
	return &Probe{pool: pool, timeout: defaultProbeTimeout}
}

func (p *Probe) Name() string { return "postgres" }

func (p *Probe) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var ok int
	if err := p.pool.QueryRow(ctx, `SELECT 1`).Scan(&ok); err != nil {
		return fmt.Errorf("postgres probe: %w", err)
	}
	return nil
}

// ServerVersion is logged at startup.
func (p *Probe) ServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := p.pool.QueryRow(ctx, `SHOW server_version`).Scan(&version); err != nil {
		return "", fmt.Errorf("postgres version: %w", err)
	}
	return version, nil
}
