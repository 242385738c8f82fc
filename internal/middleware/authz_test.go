package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	t.Run("no principal redirects to login", func(t *testing.T) {
		d := Authorize(nil, RoleSeller)
		assert.False(t, d.Allowed)
		assert.Equal(t, LoginPath, d.Redirect)
	})

	t.Run("wrong role redirects to dashboard", func(t *testing.T) {
		d := Authorize(&Principal{ID: 1, Role: RoleSeller}, RoleAdmin)
		assert.False(t, d.Allowed)
		assert.Equal(t, DashboardPath, d.Redirect)
	})

	t.Run("matching role allowed", func(t *testing.T) {
		d := Authorize(&Principal{ID: 1, Role: RoleAdmin}, RoleAdmin)
		assert.True(t, d.Allowed)
		assert.Empty(t, d.Redirect)
	})

	t.Run("empty required role only needs authentication", func(t *testing.T) {
		assert.True(t, Authorize(&Principal{ID: 1, Role: RoleSeller}, "").Allowed)
		assert.False(t, Authorize(nil, "").Allowed)
	})
}

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, sub uint64, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// gateRequest runs a request through JWTAuth + RequireRole into a handler
// that reports the principal it saw.
func gateRequest(t *testing.T, authHeader, requiredRole string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(RequireRole(requiredRole)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"role": c.Get("role")})
	}))
	require.NoError(t, h(c))
	return rec
}

func TestGateAcceptsMatchingRole(t *testing.T) {
	rec := gateRequest(t, "Bearer "+signToken(t, testSecret, 42, RoleSeller), RoleSeller)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), RoleSeller)
}

func TestGateMissingToken(t *testing.T) {
	rec := gateRequest(t, "", RoleSeller)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), LoginPath)
}

func TestGateBadSignature(t *testing.T) {
	rec := gateRequest(t, "Bearer "+signToken(t, "other-secret", 42, RoleSeller), RoleSeller)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateRoleDowngrade(t *testing.T) {
	rec := gateRequest(t, "Bearer "+signToken(t, testSecret, 42, RoleSeller), RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), DashboardPath)
}

func TestPrincipalFrom(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Nil(t, principalFrom(c), "no identity in context")

	// JWT numeric claims decode as float64.
	c.Set("user_id", float64(7))
	c.Set("role", RoleAdmin)
	p := principalFrom(c)
	require.NotNil(t, p)
	assert.Equal(t, uint64(7), p.ID)
	assert.Equal(t, RoleAdmin, p.Role)
}
