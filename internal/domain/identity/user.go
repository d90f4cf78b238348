package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/bizdetails/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the permission level of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AccountStatus represents the status of a user account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusDisabled AccountStatus = "disabled"
)

// Activity types recorded on the user's activity log
const (
	ActivitySignin = "signin"
	ActivityUpload = "upload"
	ActivityJob    = "job"
)

// Password cost for bcrypt
const bcryptCost = 12

// Most recent activity entries kept per user
const maxActivityEntries = 20

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ActivityEntry is one event on a user's recent activity log
type ActivityEntry struct {
	Type       string    `json:"type"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// User is the aggregate root for account operations
type User struct {
	shared.BaseEntity
	Email           string
	PasswordHash    string
	FullName        string
	Role            Role
	AccountStatus   AccountStatus
	EnrichmentCount int
	LastLoginAt     *time.Time
	ActivityLog     []ActivityEntry
}

// NewUser creates an active user account with a bcrypt password hash
func NewUser(email, password, fullName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:    shared.NewBaseEntity(),
		Email:         email,
		PasswordHash:  hash,
		FullName:      strings.TrimSpace(fullName),
		Role:          RoleUser,
		AccountStatus: AccountStatusActive,
		ActivityLog:   []ActivityEntry{},
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword sets a new password without an old password check
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// CanLogin reports whether the account may sign in
func (u *User) CanLogin() bool {
	return u.AccountStatus == AccountStatusActive
}

// PromoteToAdmin grants the admin role
func (u *User) PromoteToAdmin() {
	u.Role = RoleAdmin
	u.UpdatedAt = time.Now()
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Disable blocks the account from signing in
func (u *User) Disable() error {
	if u.AccountStatus == AccountStatusDisabled {
		return shared.NewDomainError("ALREADY_DISABLED", "Account is already disabled")
	}
	u.AccountStatus = AccountStatusDisabled
	u.UpdatedAt = time.Now()
	return nil
}

// Enable re-activates a disabled account
func (u *User) Enable() error {
	if u.AccountStatus == AccountStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Account is already active")
	}
	u.AccountStatus = AccountStatusActive
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin updates the last login timestamp and logs the signin
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.RecordActivity(ActivitySignin, "", at)
}

// RecordActivity appends an entry to the activity log, keeping only the
// most recent entries.
func (u *User) RecordActivity(activityType, detail string, at time.Time) {
	u.ActivityLog = append(u.ActivityLog, ActivityEntry{
		Type:       activityType,
		Detail:     detail,
		OccurredAt: at,
	})
	if len(u.ActivityLog) > maxActivityEntries {
		u.ActivityLog = u.ActivityLog[len(u.ActivityLog)-maxActivityEntries:]
	}
	u.UpdatedAt = at
}

// IncrementEnrichmentCount bumps the per-user enrichment counter by n
func (u *User) IncrementEnrichmentCount(n int) {
	if n <= 0 {
		return
	}
	u.EnrichmentCount += n
	u.UpdatedAt = time.Now()
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
