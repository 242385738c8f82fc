package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerapp/storefront-api/internal/config"
)

func TestParseBucketReply(t *testing.T) {
	r, ok := parseBucketReply([]interface{}{int64(1), int64(9), int64(0)})
	require.True(t, ok)
	assert.True(t, r.Allowed)
	assert.Equal(t, int64(9), r.Remaining)

	r, ok = parseBucketReply([]interface{}{int64(0), int64(0), int64(1500)})
	require.True(t, ok)
	assert.False(t, r.Allowed)
	assert.Equal(t, int64(1500), r.RetryMs)

	// String-shaped numbers decode too.
	r, ok = parseBucketReply([]interface{}{"1", "4", "0"})
	require.True(t, ok)
	assert.True(t, r.Allowed)
	assert.Equal(t, int64(4), r.Remaining)

	_, ok = parseBucketReply("garbage")
	assert.False(t, ok)
	_, ok = parseBucketReply([]interface{}{int64(1)})
	assert.False(t, ok, "truncated reply must be rejected")
}

func TestBuildRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/auth/login")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}
	assert.Equal(t, "rl:ip:203.0.113.9", buildRateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:POST /v1/auth/login", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip_route"
	assert.Equal(t, "rl:ip:203.0.113.9:route:POST /v1/auth/login", buildRateKey(cfg, c))
}

func TestTokenBucketDisabledIsPassthrough(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())

	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	require.NoError(t, err)
	assert.True(t, called, "disabled limiter must invoke the next handler")
}
