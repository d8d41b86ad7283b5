package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-history-server/internal/auth"
	"medical-history-server/internal/models"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signTestToken(t *testing.T, userID int64, role string, tokenID string) string {
	t.Helper()
	claims := &auth.Claims{
		UserID: &userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(revoker auth.TokenRevoker) (*gin.Engine, *auth.Principal) {
	router := gin.New()
	var captured auth.Principal
	router.GET("/protected", AuthMiddleware(auth.NewTokenVerifier(testSecret), revoker), func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		captured = principal
		c.Status(http.StatusOK)
	})
	return router, &captured
}

func doRequest(router *gin.Engine, path string, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router, captured := newAuthRouter(auth.NewMemoryTokenRevoker())
	token := signTestToken(t, 42, "PROVIDER", "token-1")

	w := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, auth.Principal{UserID: 42, Role: models.RoleProvider}, *captured)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router, _ := newAuthRouter(auth.NewMemoryTokenRevoker())
	w := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	router, _ := newAuthRouter(auth.NewMemoryTokenRevoker())
	for _, header := range []string{"Basic abc", "Bearer", "Bearer a b"} {
		w := doRequest(router, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	router, _ := newAuthRouter(auth.NewMemoryTokenRevoker())
	w := doRequest(router, "/protected", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	revoker := auth.NewMemoryTokenRevoker()
	require.NoError(t, revoker.Revoke(context.Background(), "token-1", time.Minute))
	router, _ := newAuthRouter(revoker)
	token := signTestToken(t, 42, "PATIENT", "token-1")

	w := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/provider-only",
		AuthMiddleware(auth.NewTokenVerifier(testSecret), auth.NewMemoryTokenRevoker()),
		RoleAuthMiddleware(models.RoleProvider),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := doRequest(router, "/provider-only", "Bearer "+signTestToken(t, 42, "PROVIDER", "token-1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "/provider-only", "Bearer "+signTestToken(t, 10, "PATIENT", "token-2"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
