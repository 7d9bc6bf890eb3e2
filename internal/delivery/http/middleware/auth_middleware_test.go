package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"identity/config"
	"identity/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, string, uuid.UUID) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := tokenSvc.Issue(userID)
	require.NoError(t, err)

	return NewAuthMiddleware(tokenSvc), token, userID
}

func invokeGuard(t *testing.T, m *AuthMiddleware, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/abc", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var continued bool
	handler := m.Authenticate(func(c echo.Context) error {
		continued = true
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, c, continued
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	rec, _, continued := invokeGuard(t, m, "")

	assert.False(t, continued)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied")
}

func TestAuthMiddleware_HeaderWithoutToken(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	rec, _, continued := invokeGuard(t, m, "Bearer")

	assert.False(t, continued)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	rec, _, continued := invokeGuard(t, m, "Bearer not-a-real-token")

	assert.False(t, continued)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "token invalid")
}

func TestAuthMiddleware_ValidTokenContinues(t *testing.T) {
	m, token, userID := newTestAuthMiddleware(t)

	rec, c, continued := invokeGuard(t, m, "Bearer "+token)

	assert.True(t, continued)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, c.Get("userID"))
}

func TestAuthMiddleware_RotatedSecret(t *testing.T) {
	m, _, _ := newTestAuthMiddleware(t)

	rotated := &config.Config{}
	rotated.SecretKey.Access = "another_secret_key_very_long_for_testing"

	otherSvc, err := auth.NewJWTService(rotated)
	require.NoError(t, err)

	foreignToken, err := otherSvc.Issue(uuid.New())
	require.NoError(t, err)

	rec, _, continued := invokeGuard(t, m, "Bearer "+foreignToken)

	assert.False(t, continued)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
