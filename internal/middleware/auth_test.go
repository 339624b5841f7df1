package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
	"society_hub/internal/service"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

type stubAuthService struct {
	user *domain.User
	err  error
}

func (s *stubAuthService) Register(_ context.Context, _ service.RegisterInput) (*domain.User, error) {
	return nil, nil
}
func (s *stubAuthService) Login(_ context.Context, _, _ string) (*service.LoginResponse, error) {
	return nil, nil
}
func (s *stubAuthService) RefreshToken(_ context.Context, _ string) (*service.TokenResponse, error) {
	return nil, nil
}
func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) ValidateToken(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.err
}

func setupRouter(auth *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(auth, logger.New("error"))
	router := gin.New()
	router.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})
	router.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := setupRouter(&stubAuthService{})

	w := doRequest(router, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBadHeaderFormat(t *testing.T) {
	router := setupRouter(&stubAuthService{})

	w := doRequest(router, "/protected", "Basic abc123")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	router := setupRouter(&stubAuthService{err: apperrors.ErrInvalidToken})

	w := doRequest(router, "/protected", "Bearer bad-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthSuspendedIs403(t *testing.T) {
	router := setupRouter(&stubAuthService{err: apperrors.ErrAccountSuspended})

	w := doRequest(router, "/protected", "Bearer token")
	require.Equal(t, http.StatusForbidden, w.Code)
	// Клиент ищет маркер "suspended" для принудительного выхода
	require.Contains(t, w.Body.String(), "suspended")
}

func TestRequireAuthSuccess(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Role: domain.RoleResident}
	router := setupRouter(&stubAuthService{user: user})

	w := doRequest(router, "/protected", "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), user.ID.String())
}

func TestRequireAdmin(t *testing.T) {
	resident := &domain.User{ID: uuid.New(), Role: domain.RoleResident}
	router := setupRouter(&stubAuthService{user: resident})

	w := doRequest(router, "/admin", "Bearer token")
	require.Equal(t, http.StatusForbidden, w.Code)

	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}
	router = setupRouter(&stubAuthService{user: admin})

	w = doRequest(router, "/admin", "Bearer token")
	require.Equal(t, http.StatusOK, w.Code)
}
