package middleware

import (
	"go-commerce/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func bearerToken(t *testing.T, isAdmin bool) string {
	t.Helper()
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateJWT("64f0c2e1a1b2c3d4e5f60718", "jane@example.com", isAdmin)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/users/details", nil)
	rr := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/users/details", nil)
	req.Header.Set("Authorization", "Token abc")
	rr := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/users/details", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuthMiddleware_AttachesClaims(t *testing.T) {
	var got *utils.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		require.True(t, ok)
		got = claims
	})

	req := httptest.NewRequest(http.MethodGet, "/users/details", nil)
	req.Header.Set("Authorization", bearerToken(t, false))
	rr := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rr, req)

	require.NotNil(t, got)
	assert.Equal(t, "64f0c2e1a1b2c3d4e5f60718", got.UserID)
	assert.False(t, got.IsAdmin)
}

func TestAdminMiddleware_ForbidsRegularUser(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/products/all", nil)
	req.Header.Set("Authorization", bearerToken(t, false))
	rr := httptest.NewRecorder()

	AuthMiddleware(AdminMiddleware(next)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *called)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/products/all", nil)
	req.Header.Set("Authorization", bearerToken(t, true))
	rr := httptest.NewRecorder()

	AuthMiddleware(AdminMiddleware(next)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
}

func TestCustomerMiddleware_ForbidsAdmin(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Header.Set("Authorization", bearerToken(t, true))
	rr := httptest.NewRecorder()

	AuthMiddleware(CustomerMiddleware(next)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *called)
}

func TestCustomerMiddleware_AllowsCustomer(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Header.Set("Authorization", bearerToken(t, false))
	rr := httptest.NewRecorder()

	AuthMiddleware(CustomerMiddleware(next)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
}
