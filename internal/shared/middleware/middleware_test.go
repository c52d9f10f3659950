package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/shared/config"
)

const testSecret = "middleware-test-secret"

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedEngine(gate gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/admin")
	group.Use(JWTAuthWithConfig(testConfig()))
	group.Use(gate)
	group.GET("/resource", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/resource", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	engine := protectedEngine(RequireAdmin())
	token := signToken(t, jwt.MapClaims{"type": "access", "user_id": "u1", "email": "a@x.io", "role": RoleAdmin})

	assert.Equal(t, http.StatusOK, doRequest(engine, token).Code)
}

func TestRequireAdminRejectsTokenWithoutRoleClaim(t *testing.T) {
	engine := protectedEngine(RequireAdmin())

	// Validly signed access token, but no role claim at all. Must come back
	// as a forbidden response, not a panic recovered to a 500.
	token := signToken(t, jwt.MapClaims{"type": "access", "user_id": "u1", "email": "a@x.io"})

	assert.Equal(t, http.StatusForbidden, doRequest(engine, token).Code)
}

func TestRequireRolesAcceptsAnyListedRole(t *testing.T) {
	engine := protectedEngine(RequireRoles(RoleAdmin, RoleViewer))
	token := signToken(t, jwt.MapClaims{"type": "access", "user_id": "u2", "email": "v@x.io", "role": RoleViewer})

	assert.Equal(t, http.StatusOK, doRequest(engine, token).Code)
}

func TestRequireRolesRejectsMissingOrUnknownRole(t *testing.T) {
	engine := protectedEngine(RequireRoles(RoleAdmin, RoleViewer))

	noRole := signToken(t, jwt.MapClaims{"type": "access", "user_id": "u3", "email": "n@x.io"})
	assert.Equal(t, http.StatusForbidden, doRequest(engine, noRole).Code)

	badRole := signToken(t, jwt.MapClaims{"type": "access", "user_id": "u4", "email": "b@x.io", "role": "SUPPORT"})
	assert.Equal(t, http.StatusForbidden, doRequest(engine, badRole).Code)
}

func TestJWTAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	engine := protectedEngine(RequireAdmin())

	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "not-a-jwt").Code)
}
