package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"projectboard/internal/domain/repositories"
)

const pingTimeout = 3 * time.Second

type poolPinger struct {
	pool *pgxpool.Pool
}

// NewPinger reports store connectivity for the health endpoint
func NewPinger(pool *pgxpool.Pool) repositories.Pinger {
	return &poolPinger{pool: pool}
}

func (p *poolPinger) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.pool.Ping(ctx)
}
