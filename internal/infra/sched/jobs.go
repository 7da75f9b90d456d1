package sched

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"shopping-list-bot/internal/infra/metrics"
)

// Sweeper drops expired conversation state and reports how much is left.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

func StateSweepJob(s Sweeper) Job {
	return func(ctx context.Context) error {
		metrics.SetActiveConversations(s.Sweep(ctx))
		return nil
	}
}

// PoolStatser is satisfied by *pgxpool.Pool.
type PoolStatser interface {
	Stat() *pgxpool.Stat
}

func DBPoolStatsJob(p PoolStatser) Job {
	return func(ctx context.Context) error {
		st := p.Stat()
		metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns(), st.MaxConns(), st.EmptyAcquireCount())
		return nil
	}
}
