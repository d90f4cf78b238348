package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("Alice@Example.com", "password123", "Alice Smith")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice Smith", user.FullName)
		assert.Equal(t, RoleUser, user.Role)
		assert.Equal(t, AccountStatusActive, user.AccountStatus)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("password123"))
		assert.False(t, user.VerifyPassword("wrong-password"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := NewUser("bob@example.com", "short", "Bob")
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "password123", "Bob")
		assert.Error(t, err)
	})
}

func TestUserStatusTransitions(t *testing.T) {
	user, err := NewUser("carol@example.com", "password123", "Carol")
	require.NoError(t, err)

	assert.True(t, user.CanLogin())

	require.NoError(t, user.Disable())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Disable())

	require.NoError(t, user.Enable())
	assert.True(t, user.CanLogin())
}

func TestUserActivityLog(t *testing.T) {
	user, err := NewUser("dave@example.com", "password123", "Dave")
	require.NoError(t, err)

	now := time.Now()
	user.RecordLogin(now)

	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, now, *user.LastLoginAt)
	require.Len(t, user.ActivityLog, 1)
	assert.Equal(t, ActivitySignin, user.ActivityLog[0].Type)

	for i := 0; i < maxActivityEntries+5; i++ {
		user.RecordActivity(ActivityJob, "job", now)
	}
	assert.Len(t, user.ActivityLog, maxActivityEntries)
}

func TestUserEnrichmentCount(t *testing.T) {
	user, err := NewUser("erin@example.com", "password123", "Erin")
	require.NoError(t, err)

	user.IncrementEnrichmentCount(3)
	user.IncrementEnrichmentCount(0)
	user.IncrementEnrichmentCount(-2)
	assert.Equal(t, 3, user.EnrichmentCount)
}

func TestUserPromoteToAdmin(t *testing.T) {
	user, err := NewUser("frank@example.com", "password123", "Frank")
	require.NoError(t, err)

	assert.False(t, user.IsAdmin())
	user.PromoteToAdmin()
	assert.True(t, user.IsAdmin())
}
