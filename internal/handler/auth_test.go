package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parmenasoares/track-and-work/internal/config"
	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/middleware"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubUserRepo struct {
	byID map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.byID[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *stubUserRepo) ListWithRoles(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type stubRoleRepo struct {
	rows []model.UserRole
}

func (r *stubRoleRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.UserRole, error) {
	var out []model.UserRole
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubRoleRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, role string, createdBy uuid.UUID) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = append(kept, model.UserRole{ID: uuid.New(), UserID: userID, Role: role, CreatedBy: &createdBy})
	return nil
}

func (r *stubRoleRepo) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *stubRoleRepo) ListAll(_ context.Context) ([]model.UserRole, error) {
	return append([]model.UserRole(nil), r.rows...), nil
}

func (r *stubRoleRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, row := range r.rows {
		out[row.Role]++
	}
	return out, nil
}

// ── Test wiring ──────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newAuthRouter(t *testing.T) (*gin.Engine, *stubUserRepo, *stubRoleRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: testSecret, JWTExpirationHours: 8, JWTRefreshHours: 24}
	users := newStubUserRepo()
	roles := &stubRoleRepo{}
	h := NewAuthHandler(service.NewAuthService(users, roles, cfg))

	r := gin.New()
	r.POST("/v1/auth/signup", h.Signup)
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.Refresh)
	r.GET("/v1/auth/me", middleware.JWTAuth(cfg.JWTSecret), h.Me)
	return r, users, roles
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeLogin(t *testing.T, w *httptest.ResponseRecorder) dto.LoginResponse {
	t.Helper()
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestSignupEndpoint(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/auth/signup", dto.SignupRequest{
		Email: "ana@example.com", Password: "password123", FirstName: "Ana",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeLogin(t, w)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)

	// Duplicate email answers 409 with the stable code.
	w = doJSON(t, r, http.MethodPost, "/v1/auth/signup", dto.SignupRequest{
		Email: "ana@example.com", Password: "password123", FirstName: "Ana",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"email_taken"`)
}

func TestSignupEndpointValidation(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	// Short password fails the validator, not the service.
	w := doJSON(t, r, http.MethodPost, "/v1/auth/signup", dto.SignupRequest{
		Email: "ana@example.com", Password: "short", FirstName: "Ana",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Password")

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	r, _, _ := newAuthRouter(t)
	doJSON(t, r, http.MethodPost, "/v1/auth/signup", dto.SignupRequest{
		Email: "ana@example.com", Password: "password123", FirstName: "Ana",
	}, "")

	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", dto.LoginRequest{
		Email: "ana@example.com", Password: "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeLogin(t, w).RefreshToken)

	w = doJSON(t, r, http.MethodPost, "/v1/auth/login", dto.LoginRequest{
		Email: "ana@example.com", Password: "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// No hint whether the account exists.
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
	// Localized invalid-credentials message, not the generic fallback.
	assert.Contains(t, w.Body.String(), "Credenciais inválidas")
}

func TestMeEndpoint(t *testing.T) {
	r, _, roles := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/auth/signup", dto.SignupRequest{
		Email: "ana@example.com", Password: "password123", FirstName: "Ana",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	signup := decodeLogin(t, w)

	w = doJSON(t, r, http.MethodGet, "/v1/auth/me", nil, signup.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me dto.MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.False(t, me.IsAdminOrSuperAdmin)

	// Grant ADMIN, refresh, and the flags follow.
	userID := uuid.MustParse(signup.User.ID)
	require.NoError(t, roles.ReplaceForUser(context.Background(), userID, model.RoleAdmin, uuid.New()))
	w = doJSON(t, r, http.MethodPost, "/v1/auth/refresh", dto.RefreshRequest{RefreshToken: signup.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code)
	refreshed := decodeLogin(t, w)

	w = doJSON(t, r, http.MethodGet, "/v1/auth/me", nil, refreshed.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.True(t, me.IsAdminOrSuperAdmin)
	assert.False(t, me.IsSuperAdmin)

	// No token.
	w = doJSON(t, r, http.MethodGet, "/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
