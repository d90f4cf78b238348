package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/bizdetails/backend/internal/domain/identity"
)

// SignupInput contains the data needed to register an account
type SignupInput struct {
	Email    string
	Password string
	FullName string
}

// SigninInput contains the data needed to sign in
type SigninInput struct {
	Email    string
	Password string
}

// RefreshInput contains the refresh token
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput contains the access token being revoked
type LogoutInput struct {
	AccessToken string
}

// UserInfo is the account view returned to callers
type UserInfo struct {
	ID              uuid.UUID              `json:"id"`
	Email           string                 `json:"email"`
	FullName        string                 `json:"full_name"`
	Role            identity.Role          `json:"role"`
	AccountStatus   identity.AccountStatus `json:"account_status"`
	EnrichmentCount int                    `json:"enrichment_count"`
	LastLoginAt     *time.Time             `json:"last_login_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// AuthResult carries tokens plus the account view
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

func userInfoFrom(u *identity.User) UserInfo {
	return UserInfo{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		Role:            u.Role,
		AccountStatus:   u.AccountStatus,
		EnrichmentCount: u.EnrichmentCount,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}
