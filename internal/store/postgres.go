package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/hirelens/incentive-cli/internal/db"
	"github.com/hirelens/incentive-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"exists_by_source": `SELECT EXISTS(SELECT 1 FROM jobs WHERE source_id = $1)`,
	"count_rows":       `SELECT COUNT(*) FROM jobs`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need direct
// query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id                  TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	source_id           TEXT NOT NULL,
	url                 TEXT NOT NULL,
	portal              TEXT NOT NULL,
	job_title           TEXT NOT NULL,
	posted_date         TEXT NOT NULL,
	city                TEXT NOT NULL,
	state               TEXT NOT NULL,
	country             TEXT NOT NULL,
	company             TEXT NOT NULL,
	company_size        TEXT NOT NULL,
	time_model          TEXT NOT NULL,
	seniority           TEXT NOT NULL,
	employment_type     TEXT NOT NULL,
	experience_required INTEGER NOT NULL DEFAULT 0,
	industry            TEXT NOT NULL,
	incentives          JSONB NOT NULL,
	unmatched           TEXT NOT NULL DEFAULT '',
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_identity ON jobs(url, city, time_model, seniority);
CREATE INDEX IF NOT EXISTS idx_jobs_source_id ON jobs(source_id);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company);
CREATE INDEX IF NOT EXISTS idx_jobs_incentives ON jobs USING GIN (incentives);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// jobColumns is the insert column order shared by UpsertJobRows and the
// bulk-upsert temp table.
var jobColumns = []string{
	"id", "source_id", "url", "portal", "job_title", "posted_date",
	"city", "state", "country", "company", "company_size",
	"time_model", "seniority", "employment_type",
	"experience_required", "industry", "incentives", "unmatched", "updated_at",
}

func (s *PostgresStore) UpsertJobRows(ctx context.Context, rows []model.JobRow) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = uuid.New().String()
		}
		updatedAt := row.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}

		incentivesJSON, err := json.Marshal(row.Incentives)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal incentives")
		}

		values = append(values, []any{
			id, row.SourceID, row.URL, row.Portal, row.JobTitle, row.PostedDate,
			row.City, row.State, row.Country, row.Company, row.CompanySize,
			row.TimeModel, row.Seniority, row.EmploymentType,
			row.ExperienceRequired, row.Industry, incentivesJSON,
			row.Unmatched, updatedAt,
		})
	}

	_, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "jobs",
		Columns:      jobColumns,
		ConflictKeys: []string{"url", "city", "time_model", "seniority"},
		UpdateCols: []string{
			"source_id", "portal", "job_title", "posted_date", "state",
			"country", "company", "company_size", "employment_type",
			"experience_required", "industry", "incentives", "unmatched",
			"updated_at",
		},
	}, values)
	return eris.Wrap(err, "postgres: upsert job rows")
}

func (s *PostgresStore) ExistsBySource(ctx context.Context, sourceID string) (bool, error) {
	if sourceID == "" {
		return false, nil
	}
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE source_id = $1)`,
		sourceID,
	).Scan(&exists)
	return exists, eris.Wrapf(err, "postgres: exists by source %s", sourceID)
}

func (s *PostgresStore) CountRows(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, eris.Wrap(err, "postgres: count rows")
}
