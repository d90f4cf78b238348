package models

import (
	"encoding/json"
	"time"

	"github.com/bizdetails/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
// The activity log is stored as a JSON document.
type UserModel struct {
	BaseModel
	Email           string                 `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash    string                 `gorm:"type:varchar(255);not null"`
	FullName        string                 `gorm:"type:varchar(200)"`
	Role            identity.Role          `gorm:"type:varchar(20);not null;default:'user'"`
	AccountStatus   identity.AccountStatus `gorm:"type:varchar(20);not null;default:'active'"`
	EnrichmentCount int                    `gorm:"not null;default:0"`
	LastLoginAt     *time.Time
	ActivityLog     string `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	var activity []identity.ActivityEntry
	if m.ActivityLog != "" {
		// A corrupt log should not make the account unreadable
		_ = json.Unmarshal([]byte(m.ActivityLog), &activity)
	}
	if activity == nil {
		activity = []identity.ActivityEntry{}
	}

	return &identity.User{
		BaseEntity:      m.BaseModel.ToDomain(),
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		FullName:        m.FullName,
		Role:            m.Role,
		AccountStatus:   m.AccountStatus,
		EnrichmentCount: m.EnrichmentCount,
		LastLoginAt:     m.LastLoginAt,
		ActivityLog:     activity,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FullName = u.FullName
	m.Role = u.Role
	m.AccountStatus = u.AccountStatus
	m.EnrichmentCount = u.EnrichmentCount
	m.LastLoginAt = u.LastLoginAt

	activity := u.ActivityLog
	if activity == nil {
		activity = []identity.ActivityEntry{}
	}
	data, err := json.Marshal(activity)
	if err != nil {
		data = []byte("[]")
	}
	m.ActivityLog = string(data)
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
