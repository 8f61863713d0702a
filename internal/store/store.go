// Package store persists enriched job rows. Two backends implement the same
// interface: SQLite for local runs and Postgres for shared deployments.
package store

import (
	"context"

	"github.com/hirelens/incentive-cli/internal/model"
)

// Store defines the persistence interface for the enrichment pipeline.
type Store interface {
	// UpsertJobRows inserts rows, updating in place on the
	// (url, city, time_model, seniority) identity so reruns refresh
	// instead of duplicating.
	UpsertJobRows(ctx context.Context, rows []model.JobRow) error

	// ExistsBySource reports whether any row from this source record was
	// already written, regardless of location or time-model fan-out.
	ExistsBySource(ctx context.Context, sourceID string) (bool, error)

	// CountRows returns the total number of persisted job rows.
	CountRows(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
