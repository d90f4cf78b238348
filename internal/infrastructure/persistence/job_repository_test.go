package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bizdetails/backend/internal/domain/job"
	"github.com/bizdetails/backend/internal/domain/shared"
)

// setupJobTestDB creates an in-memory SQLite database for testing
func setupJobTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE jobs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			strategy TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			total_records INTEGER NOT NULL DEFAULT 0,
			processed_records INTEGER NOT NULL DEFAULT 0,
			internal_hits INTEGER NOT NULL DEFAULT 0,
			ai_hits INTEGER NOT NULL DEFAULT 0,
			internal_fields INTEGER NOT NULL DEFAULT 0,
			ai_fields INTEGER NOT NULL DEFAULT 0,
			failure_reason TEXT,
			finished_at DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE job_results (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL,
			input_name TEXT,
			input_domain TEXT,
			fields TEXT DEFAULT '{}',
			sources TEXT DEFAULT '{}',
			source TEXT NOT NULL DEFAULT 'unmatched',
			created_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func mustNewJob(t *testing.T, userID uuid.UUID, name string) *job.Job {
	j, err := job.NewJob(userID, name, job.StrategyInternalThenAI)
	require.NoError(t, err)
	return j
}

func TestGormJobRepository_SaveAndFindByID(t *testing.T) {
	db := setupJobTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	j := mustNewJob(t, uuid.New(), "batch-1")
	require.NoError(t, repo.Save(ctx, j))

	found, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "batch-1", found.Name)
	assert.Equal(t, job.StatusPending, found.Status)
	assert.Equal(t, job.StrategyInternalThenAI, found.Strategy)
}

func TestGormJobRepository_FindByID_NotFound(t *testing.T) {
	db := setupJobTestDB(t)
	repo := NewGormJobRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormJobRepository_FindByUser(t *testing.T) {
	db := setupJobTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	first := mustNewJob(t, userID, "first")
	second := mustNewJob(t, userID, "second")
	second.CreatedAt = second.CreatedAt.Add(time.Second) // stable newest-first ordering
	other := mustNewJob(t, uuid.New(), "other")

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	jobs, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "second", jobs[0].Name)
	assert.Equal(t, "first", jobs[1].Name)
}

func TestGormJobRepository_ResultsRoundTrip(t *testing.T) {
	db := setupJobTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	j := mustNewJob(t, uuid.New(), "batch-1")
	require.NoError(t, repo.Save(ctx, j))

	matched := job.NewResult(j.ID, "Acme", "acme.com")
	matched.Resolve(job.SourceInternal, map[string]string{
		"industry":  "Software",
		"countries": "United States",
	})
	missed := job.NewResult(j.ID, "Unknown Co", "unknown.example")
	missed.CreatedAt = matched.CreatedAt.Add(time.Second)

	require.NoError(t, repo.SaveResults(ctx, []job.Result{*matched, *missed}))

	results, err := repo.FindResults(ctx, j.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Acme", results[0].InputName)
	assert.Equal(t, job.SourceInternal, results[0].Source)
	assert.Equal(t, "Software", results[0].Fields["industry"])
	assert.Equal(t, job.SourceInternal, results[0].Sources["industry"])

	assert.Equal(t, job.SourceUnmatched, results[1].Source)
	assert.Empty(t, results[1].Fields)
}

func TestGormJobRepository_SaveResults_Empty(t *testing.T) {
	db := setupJobTestDB(t)
	repo := NewGormJobRepository(db)

	assert.NoError(t, repo.SaveResults(context.Background(), nil))
}

func TestGormJobRepository_CountByStatus(t *testing.T) {
	db := setupJobTestDB(t)
	repo := NewGormJobRepository(db)
	ctx := context.Background()

	userID := uuid.New()

	done := mustNewJob(t, userID, "done")
	require.NoError(t, done.Start(1))
	done.Complete()

	failed := mustNewJob(t, userID, "failed")
	require.NoError(t, failed.Start(1))
	failed.Fail("enrichment service unavailable")

	pending := mustNewJob(t, userID, "pending")

	for _, j := range []*job.Job{done, failed, pending} {
		require.NoError(t, repo.Save(ctx, j))
	}

	counts, err := repo.CountByStatus(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[job.StatusCompleted])
	assert.Equal(t, int64(1), counts[job.StatusFailed])
	assert.Equal(t, int64(1), counts[job.StatusPending])
}
