package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userRepo "commit/database/repository/user"
	"commit/models"
	"commit/services/user"
	"commit/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUsers struct {
	userRepo.UserRepository
	users map[string]*models.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

type memRevoker struct {
	revoked map[string]bool
}

func (m *memRevoker) Revoke(_ context.Context, hash string, ttl time.Duration) error {
	if ttl > 0 {
		m.revoked[hash] = true
	}
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, hash string) (bool, error) {
	return m.revoked[hash], nil
}

func newAuthFixture(t *testing.T) (*user.DefaultUserService, *utils.TokenManager, *stubUsers) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()

	tokens, err := utils.NewTokenManager("test-secret", 30*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	users := &stubUsers{users: map[string]*models.User{
		"u1": {Account: models.Account{ID: "u1", Email: "mario@example.com", FullName: "Mario Rossi", UserType: models.UserTypeCustomer, IsActive: true}},
		"u2": {Account: models.Account{ID: "u2", Email: "off@example.com", FullName: "Off Line", UserType: models.UserTypeCustomer, IsActive: false}},
	}}
	svc := &user.DefaultUserService{
		Users:   users,
		Tokens:  tokens,
		Revoker: &memRevoker{revoked: map[string]bool{}},
		Logger:  zap.NewNop(),
	}
	return svc, tokens, users
}

func protectedRouter(svc Authenticator, optional bool) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(svc, optional), func(c *gin.Context) {
		caller, ok := CurrentCaller(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "id": caller.ID})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc, tokens, users := newAuthFixture(t)
	access, err := tokens.GenerateToken(users.users["u1"].Account, utils.AccessToken)
	require.NoError(t, err)

	w := get(protectedRouter(svc, false), access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	w := get(protectedRouter(svc, false), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestJWTAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	svc, tokens, users := newAuthFixture(t)
	refresh, err := tokens.GenerateToken(users.users["u1"].Account, utils.RefreshToken)
	require.NoError(t, err)

	w := get(protectedRouter(svc, false), refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_RejectsRevokedToken(t *testing.T) {
	svc, tokens, users := newAuthFixture(t)
	access, err := tokens.GenerateToken(users.users["u1"].Account, utils.AccessToken)
	require.NoError(t, err)
	r := protectedRouter(svc, false)

	require.Equal(t, http.StatusOK, get(r, access).Code)
	require.NoError(t, svc.Logout(context.Background(), access))
	assert.Equal(t, http.StatusUnauthorized, get(r, access).Code)
}

func TestJWTAuthMiddleware_DisabledAccount(t *testing.T) {
	svc, tokens, users := newAuthFixture(t)
	access, err := tokens.GenerateToken(users.users["u2"].Account, utils.AccessToken)
	require.NoError(t, err)

	w := get(protectedRouter(svc, false), access)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthMiddleware_Optional(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	r := protectedRouter(svc, true)

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = get(r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
