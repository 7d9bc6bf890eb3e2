package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"identity/config"
	"identity/internal/delivery/http/middleware"
	"identity/internal/delivery/http/router"
	"identity/internal/delivery/http/router/handler"
	"identity/internal/delivery/http/validator"
	"identity/internal/domain/entity"
	"identity/internal/domain/repository"
	"identity/internal/infra/auth"
	"identity/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserRepo backs the HTTP tests with the directory's unique email semantics.
type memoryUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	user.ID = uuid.New()
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone

	return nil
}

// envelope mirrors the unified response structure for assertions.
type envelope struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*echo.Echo, *memoryUserRepo) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemoryUserRepo()
	hasher := auth.NewBcryptHasher(cfg)
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:     repo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})
	profileUC := impl.NewProfileService(impl.ProfileServiceParams{
		UserRepo: repo,
		Logger:   logger,
	})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUC, logger),
		UserHandler:    handler.NewUserHandler(profileUC, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc),
	})
	r.RegisterRoutes(e)

	return e, repo
}

func doJSON(e *echo.Echo, method, path, body, authHeader string) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)

	return rec, env
}

func TestWelcomeAndHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doJSON(e, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "welcome to our API", env.Message)

	rec, _ = doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterLoginAndLookupScenario(t *testing.T) {
	e, repo := newTestServer(t)

	// Register Ann.
	rec, env := doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"pw123","confirmpassword":"pw123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	ann, err := repo.FindByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)

	// Login with the same credentials.
	rec, env = doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"pw123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := env.Data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// The issued token gates the protected lookup.
	rec, env = doJSON(e, http.MethodGet, "/user/"+ann.ID.String(), "", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ann", env.Data["name"])
	assert.Equal(t, "ann@x.com", env.Data["email"])
	assert.Equal(t, ann.ID.String(), env.Data["id"])

	// The password hash field is omitted entirely, not just emptied.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), ann.PasswordHash)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	e, _ := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantMsg  string
		wantCode int
	}{
		{
			name:     "missing name",
			body:     `{"email":"ann@x.com","password":"pw123","confirmpassword":"pw123"}`,
			wantMsg:  "name required",
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "missing email",
			body:     `{"name":"Ann","password":"pw123","confirmpassword":"pw123"}`,
			wantMsg:  "email required",
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "missing password",
			body:     `{"name":"Ann","email":"ann@x.com"}`,
			wantMsg:  "password required",
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "password confirmation mismatch",
			body:     `{"name":"Ann","email":"ann@x.com","password":"pw123","confirmpassword":"pw124"}`,
			wantMsg:  "passwords do not match",
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doJSON(e, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}

	// Duplicate email conflicts on the second attempt.
	body := `{"name":"Ann","email":"ann@x.com","password":"pw123","confirmpassword":"pw123"}`
	rec, _ := doJSON(e, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(e, http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "email already in use", env.Message)
}

func TestRegisterRejectsInvalidEmailFormat(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"not-an-email","password":"pw123","confirmpassword":"pw123"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestLoginRejectsOverlongPassword(t *testing.T) {
	e, _ := newTestServer(t)

	// bcrypt only reads the first 72 bytes, so longer passwords are rejected
	// up front instead of silently truncated.
	long := strings.Repeat("a", 73)
	rec, env := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"`+long+`"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestLoginFailures(t *testing.T) {
	e, _ := newTestServer(t)

	rec, env := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"nobody@x.com","password":"pw123"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", env.Message)

	body := `{"name":"Ann","email":"ann@x.com","password":"pw123","confirmpassword":"pw123"}`
	rec, _ = doJSON(e, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "password mismatch", env.Message)
}

func TestProtectedLookupFailures(t *testing.T) {
	e, repo := newTestServer(t)

	body := `{"name":"Ann","email":"ann@x.com","password":"pw123","confirmpassword":"pw123"}`
	rec, _ := doJSON(e, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	ann, err := repo.FindByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)

	rec, env := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"pw123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := env.Data["token"].(string)

	// No Authorization header.
	rec, env = doJSON(e, http.MethodGet, "/user/"+ann.ID.String(), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "access denied", env.Message)

	// Garbage token.
	rec, env = doJSON(e, http.MethodGet, "/user/"+ann.ID.String(), "", "Bearer garbage")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "token invalid", env.Message)

	// Valid token, unknown id.
	rec, env = doJSON(e, http.MethodGet, "/user/"+uuid.NewString(), "", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", env.Message)

	// Valid token, malformed id.
	rec, _ = doJSON(e, http.MethodGet, "/user/not-a-uuid", "", "Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
