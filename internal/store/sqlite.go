package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/hirelens/incentive-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id                  TEXT PRIMARY KEY,
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
	incentives          TEXT NOT NULL,
	unmatched           TEXT NOT NULL DEFAULT '',
	updated_at          DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_identity ON jobs(url, city, time_model, seniority);
CREATE INDEX IF NOT EXISTS idx_jobs_source_id ON jobs(source_id);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteUpsert = `
INSERT INTO jobs (
	id, source_id, url, portal, job_title, posted_date,
	city, state, country, company, company_size,
	time_model, seniority, employment_type,
	experience_required, industry, incentives, unmatched, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (url, city, time_model, seniority) DO UPDATE SET
	source_id           = excluded.source_id,
	portal              = excluded.portal,
	job_title           = excluded.job_title,
	posted_date         = excluded.posted_date,
	state               = excluded.state,
	country             = excluded.country,
	company             = excluded.company,
	company_size        = excluded.company_size,
	employment_type     = excluded.employment_type,
	experience_required = excluded.experience_required,
	industry            = excluded.industry,
	incentives          = excluded.incentives,
	unmatched           = excluded.unmatched,
	updated_at          = excluded.updated_at`

func (s *SQLiteStore) UpsertJobRows(ctx context.Context, rows []model.JobRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

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
			return eris.Wrap(err, "sqlite: marshal incentives")
		}

		_, err = tx.ExecContext(ctx, sqliteUpsert,
			id, row.SourceID, row.URL, row.Portal, row.JobTitle, row.PostedDate,
			row.City, row.State, row.Country, row.Company, row.CompanySize,
			row.TimeModel, row.Seniority, row.EmploymentType,
			row.ExperienceRequired, row.Industry, string(incentivesJSON),
			row.Unmatched, updatedAt,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert job %s", row.URL)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit upsert")
}

func (s *SQLiteStore) ExistsBySource(ctx context.Context, sourceID string) (bool, error) {
	if sourceID == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE source_id = ?)`,
		sourceID,
	).Scan(&exists)
	return exists, eris.Wrapf(err, "sqlite: exists by source %s", sourceID)
}

func (s *SQLiteStore) CountRows(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, eris.Wrap(err, "sqlite: count rows")
}
