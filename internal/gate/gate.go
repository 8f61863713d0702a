// Package gate serializes access to memory-hungry model backends. A run holds
// at most one expensive backend resident at a time: generative extraction and
// embedding classification acquire leases against a shared MiB budget sized
// so that both cannot overlap.
package gate

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Gate admits work against a fixed memory budget expressed in MiB.
type Gate struct {
	budget int64
	sem    *semaphore.Weighted
}

// New creates a gate with the given budget. Budgets below 1 MiB are rejected
// at config load, not here.
func New(budgetMiB int64) *Gate {
	return &Gate{
		budget: budgetMiB,
		sem:    semaphore.NewWeighted(budgetMiB),
	}
}

// Acquire blocks until costMiB of budget is free, then returns a lease for
// it. Requests larger than the whole budget fail immediately instead of
// deadlocking.
func (g *Gate) Acquire(ctx context.Context, name string, costMiB int64) (*Lease, error) {
	if costMiB > g.budget {
		return nil, eris.Errorf("gate: %s needs %d MiB, budget is %d MiB", name, costMiB, g.budget)
	}
	if err := g.sem.Acquire(ctx, costMiB); err != nil {
		return nil, eris.Wrapf(err, "gate: acquire %s", name)
	}
	zap.L().Debug("gate lease acquired",
		zap.String("backend", name),
		zap.Int64("cost_mib", costMiB),
	)
	return &Lease{gate: g, name: name, cost: costMiB}, nil
}

// Lease is held budget. Release is idempotent, so deferred and explicit
// releases can coexist on the alternating extract/classify path.
type Lease struct {
	gate *Gate
	name string
	cost int64

	once sync.Once
}

// Release returns the lease's budget to the gate.
func (l *Lease) Release() {
	l.once.Do(func() {
		l.gate.sem.Release(l.cost)
		zap.L().Debug("gate lease released",
			zap.String("backend", l.name),
			zap.Int64("cost_mib", l.cost),
		)
	})
}
