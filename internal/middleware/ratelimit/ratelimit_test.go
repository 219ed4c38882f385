package ratelimit

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/internal/types"
)

func loginLimit(max int) platformconfig.RateLimitConfig {
	return platformconfig.RateLimitConfig{Enabled: true, Max: max, Duration: 15 * time.Minute}
}

func TestRateLimit_LoginEndpoint_SuccessWithinLimits(t *testing.T) {
	app := fiber.New()
	app.Use(NewLoginLimiter(loginLimit(5)))
	app.Post("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("POST", "/test", strings.NewReader("{}"))
		req.Header.Set(types.HeaderContentType, "application/json")
		req.Header.Set("X-Real-IP", "192.168.1.1")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestRateLimit_LoginEndpoint_RejectsExcessiveRequests(t *testing.T) {
	app := fiber.New()
	app.Use(NewLoginLimiter(loginLimit(5)))
	app.Post("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("POST", "/test", strings.NewReader("{}"))
		req.Header.Set(types.HeaderContentType, "application/json")
		req.Header.Set("X-Real-IP", "192.168.1.1")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		resp.Body.Close()
	}

	// 6th request should be rate limited
	req := httptest.NewRequest("POST", "/test", strings.NewReader("{}"))
	req.Header.Set(types.HeaderContentType, "application/json")
	req.Header.Set("X-Real-IP", "192.168.1.1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "RATE_LIMIT_EXCEEDED")
	assert.Contains(t, string(body), "login")
	resp.Body.Close()
}

func TestRateLimit_Disabled_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(NewVoteLimiter(platformconfig.RateLimitConfig{Enabled: false, Max: 1, Duration: time.Minute}))
	app.Post("/votes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/votes", strings.NewReader("{}"))
		req.Header.Set(types.HeaderContentType, "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestRateLimit_VoteEndpoint_KeyedByVoter(t *testing.T) {
	app := fiber.New()

	// Simulate the visitor middleware resolving a voter per request.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(types.VoterCtxName, types.AnonymousVoter(c.Get("X-Visitor")))
		return c.Next()
	})
	app.Use(NewVoteLimiter(platformconfig.RateLimitConfig{Enabled: true, Max: 2, Duration: time.Minute}))
	app.Post("/votes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	send := func(visitor string) int {
		req := httptest.NewRequest("POST", "/votes", strings.NewReader("{}"))
		req.Header.Set(types.HeaderContentType, "application/json")
		req.Header.Set("X-Visitor", visitor)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, 200, send("visitor-a"))
	assert.Equal(t, 200, send("visitor-a"))
	assert.Equal(t, 429, send("visitor-a"))

	// A different voter on the same IP is not affected.
	assert.Equal(t, 200, send("visitor-b"))
}
