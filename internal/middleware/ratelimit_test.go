package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/movie-catalog/internal/config"
)

func rateTestContext(authorization string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/movies/1", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRateLimitUserIDPrefersResolvedUser(t *testing.T) {
	c := rateTestContext("Bearer some-token")
	id := uuid.New()
	c.Set(UserIDKey, id)

	assert.Equal(t, id.String(), rateLimitUserID(c))
}

func TestRateLimitUserIDFallsBackToBearerDigest(t *testing.T) {
	// The limiter runs before Auth, so the context carries no user id.
	// Distinct tokens must still land in distinct buckets.
	a := rateLimitUserID(rateTestContext("Bearer token-one"))
	b := rateLimitUserID(rateTestContext("Bearer token-one"))
	other := rateLimitUserID(rateTestContext("Bearer token-two"))

	assert.NotEqual(t, "anon", a)
	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
}

func TestRateLimitUserIDAnonymous(t *testing.T) {
	assert.Equal(t, "anon", rateLimitUserID(rateTestContext("")))
	assert.Equal(t, "anon", rateLimitUserID(rateTestContext("Basic abc")))
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}
	c := rateTestContext("")
	c.SetPath("/api/movies/:page")

	assert.Equal(t, "rl:route:GET /api/movies/:page", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:anon", buildRateKey(cfg, c))
}

func TestTokenBucketDisabledIsPassThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)

	called := false
	c := rateTestContext("")
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestTokenBucketNilRedisIsPassThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)

	called := false
	c := rateTestContext("")
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
}
