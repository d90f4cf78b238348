package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/domain/shared"
)

// setupUserTestDB creates an in-memory SQLite database for testing
func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			account_status TEXT NOT NULL DEFAULT 'active',
			enrichment_count INTEGER NOT NULL DEFAULT 0,
			last_login_at DATETIME,
			activity_log TEXT DEFAULT '[]',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func mustNewUser(t *testing.T, email string) *identity.User {
	u, err := identity.NewUser(email, "password123", "Test User")
	require.NoError(t, err)
	return u
}

func TestGormUserRepository_SaveAndFindByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u := mustNewUser(t, "user@example.com")
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, identity.RoleUser, found.Role)
	assert.True(t, found.VerifyPassword("password123"))
}

func TestGormUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u := mustNewUser(t, "User@Example.com")
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByEmail(ctx, "USER@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestGormUserRepository_FindByEmail_NotFound(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mustNewUser(t, "user@example.com")))

	exists, err := repo.ExistsByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormUserRepository_ActivityLogRoundTrip(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u := mustNewUser(t, "user@example.com")
	u.RecordLogin(time.Now())
	u.RecordActivity(identity.ActivityUpload, "company_updated.csv", time.Now())
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, found.ActivityLog, 2)
	assert.Equal(t, identity.ActivitySignin, found.ActivityLog[0].Type)
	assert.Equal(t, identity.ActivityUpload, found.ActivityLog[1].Type)
	assert.Equal(t, "company_updated.csv", found.ActivityLog[1].Detail)
	require.NotNil(t, found.LastLoginAt)
}

func TestGormUserRepository_Count(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.Save(ctx, mustNewUser(t, "a@example.com")))
	require.NoError(t, repo.Save(ctx, mustNewUser(t, "b@example.com")))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
