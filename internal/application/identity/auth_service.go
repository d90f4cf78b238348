package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/domain/shared"
	"github.com/bizdetails/backend/internal/infrastructure/auth"
	"github.com/bizdetails/backend/internal/infrastructure/cache"
)

// AuthService handles signup, signin, token refresh and logout
type AuthService struct {
	userRepo    identity.UserRepository
	jwtService  *auth.JWTService
	blacklist   cache.TokenBlacklist
	adminEmails map[string]struct{}
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service. adminEmails lists
// accounts that receive the admin role on signup.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist cache.TokenBlacklist,
	adminEmails []string,
	logger *zap.Logger,
) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		adminEmails: admins,
		logger:      logger,
	}
}

// Signup registers a new account and signs it in. The very first account
// and any bootstrap admin email become admins.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(email, input.Password, input.FullName)
	if err != nil {
		return nil, err
	}

	if _, bootstrap := s.adminEmails[email]; bootstrap {
		user.PromoteToAdmin()
	} else {
		count, err := s.userRepo.Count(ctx)
		if err != nil {
			s.logger.Error("Failed to count users", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
		}
		if count == 0 {
			user.PromoteToAdmin()
		}
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save new user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return s.issueTokens(user)
}

// Signin authenticates an account and returns tokens
func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("User not found during signin", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		s.logger.Warn("Signin attempt for disabled account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the signin over activity bookkeeping
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User signed in", zap.String("user_id", user.ID.String()))

	return s.issueTokens(user)
}

// Refresh issues a new token pair from a valid refresh token
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token revocation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh token")
	}
	if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	return s.issueTokens(user)
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	claims, err := s.jwtService.ValidateAccessToken(input.AccessToken)
	if err != nil {
		// An expired or invalid token needs no revocation
		return nil
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// VerifyAccessToken validates an access token against signature and
// revocation state, returning its claims.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth.ErrTokenBlacklisted
	}
	return claims, nil
}

// GetProfile returns the account view for a user
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*UserInfo, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid user ID")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := userInfoFrom(user)
	return &info, nil
}

func (s *AuthService) issueTokens(user *identity.User) (*AuthResult, error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  userInfoFrom(user),
	}, nil
}
