package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/bizdetails/backend/internal/application/identity"
	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/infrastructure/auth"
	"github.com/bizdetails/backend/internal/infrastructure/cache"
	"github.com/bizdetails/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAuthStack(t *testing.T) (*appidentity.AuthService, *auth.JWTService, *cache.InMemoryTokenBlacklist) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "bizdetails-test",
	})
	blacklist := cache.NewInMemoryTokenBlacklist()
	t.Cleanup(func() { blacklist.Close() })
	// token verification never touches the user repository
	authService := appidentity.NewAuthService(nil, jwtService, blacklist, nil, zap.NewNop())
	return authService, jwtService, blacklist
}

func newProtectedEngine(authService *appidentity.AuthService) *gin.Engine {
	engine := gin.New()
	engine.Use(JWTAuthMiddleware(authService))
	engine.GET("/api/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c), "role": GetJWTRole(c)})
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	engine.GET("/api/admin/only", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role identity.Role) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "mw@example.com",
		Role:   string(role),
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestJWTAuthMiddleware(t *testing.T) {
	authService, jwtService, blacklist := newTestAuthStack(t)
	engine := newProtectedEngine(authService)

	t.Run("skip path passes without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		req.Header.Set(AuthHeaderKey, "Token abc")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
	})

	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		token := issueToken(t, jwtService, identity.RoleUser)
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"user"`)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		token := issueToken(t, jwtService, identity.RoleUser)
		claims, err := jwtService.ValidateAccessToken(token)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(t.Context(), claims.ID, time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})
}

func TestAdminOnly(t *testing.T) {
	authService, jwtService, _ := newTestAuthStack(t)
	engine := newProtectedEngine(authService)

	t.Run("user role forbidden", func(t *testing.T) {
		token := issueToken(t, jwtService, identity.RoleUser)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/only", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin role allowed", func(t *testing.T) {
		token := issueToken(t, jwtService, identity.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/only", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
