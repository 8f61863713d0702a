package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/incentive-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testJobRow() model.JobRow {
	return model.JobRow{
		SourceID:           "rec-1",
		URL:                "https://www.stepstone.de/jobs/123",
		Portal:             "stepstone",
		JobTitle:           "Softwareentwickler (m/w/d)",
		PostedDate:         "15.08.2026",
		City:               "Berlin",
		State:              "Berlin",
		Country:            "Deutschland",
		Company:            "ACME GmbH",
		CompanySize:        "501-1000",
		TimeModel:          "Vollzeit",
		Seniority:          "Normaler Angestellter",
		EmploymentType:     "Feste Anstellung",
		ExperienceRequired: 1,
		Industry:           "IT",
		Incentives:         map[string]int{"Jobticket": 1, "Homeoffice": 0},
		Unmatched:          "",
		UpdatedAt:          time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_UpsertJobRows(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertJobRows(ctx, []model.JobRow{testJobRow()}))

	count, err := s.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_UpsertJobRows_UpdatesOnIdentityConflict(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	row := testJobRow()
	require.NoError(t, s.UpsertJobRows(ctx, []model.JobRow{row}))

	// Same identity, refreshed payload: must update in place.
	row.Industry = "Ingenieurwesen"
	row.Incentives = map[string]int{"Jobticket": 1, "Homeoffice": 1}
	require.NoError(t, s.UpsertJobRows(ctx, []model.JobRow{row}))

	count, err := s.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var industry, incentives string
	err = s.db.QueryRowContext(ctx,
		`SELECT industry, incentives FROM jobs WHERE url = ?`, row.URL,
	).Scan(&industry, &incentives)
	require.NoError(t, err)
	assert.Equal(t, "Ingenieurwesen", industry)
	assert.JSONEq(t, `{"Jobticket": 1, "Homeoffice": 1}`, incentives)
}

func TestSQLiteStore_UpsertJobRows_DifferentCityIsNewRow(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := testJobRow()
	second := testJobRow()
	second.City = "München"
	second.State = "Bayern"

	require.NoError(t, s.UpsertJobRows(ctx, []model.JobRow{first, second}))

	count, err := s.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteStore_UpsertJobRows_Empty(t *testing.T) {
	s := newTestSQLiteStore(t)
	require.NoError(t, s.UpsertJobRows(context.Background(), nil))
}

func TestSQLiteStore_ExistsBySource(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	exists, err := s.ExistsBySource(ctx, "rec-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.UpsertJobRows(ctx, []model.JobRow{testJobRow()}))

	exists, err = s.ExistsBySource(ctx, "rec-1")
	require.NoError(t, err)
	assert.True(t, exists)

	// Records without an id can never be duplicates.
	exists, err = s.ExistsBySource(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)
}
