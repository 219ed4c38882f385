// Package ratelimit provides rate limiting middleware for abuse-prone endpoints.
package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/internal/pkg/log"
	"github.com/nuoidev/api/internal/types"
)

// EndpointType represents the endpoints protected by dedicated rate limits.
type EndpointType int

const (
	EndpointLogin EndpointType = iota
	EndpointSignup
	EndpointVote
	EndpointChatSend
)

// Config holds the configuration for rate limiting middleware.
type Config struct {
	// Endpoint type, used for logging and default key generation.
	EndpointType EndpointType

	// Limit carries max requests and window for this endpoint.
	Limit platformconfig.RateLimitConfig

	// Next defines a function to skip this middleware when returned true.
	Next func(c *fiber.Ctx) bool

	// Custom key generator (optional - uses the endpoint default if not provided).
	KeyGenerator func(c *fiber.Ctx) string

	// LimitReached defines the response when rate limit is exceeded.
	LimitReached func(c *fiber.Ctx) error
}

// New creates a new rate limiting middleware handler. Disabled limits return
// a pass-through handler so route wiring stays unconditional.
func New(config Config) fiber.Handler {
	cfg := configDefault(config)

	if !cfg.Limit.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return limiter.New(limiter.Config{
		Max:          cfg.Limit.Max,
		Expiration:   cfg.Limit.Duration,
		KeyGenerator: cfg.KeyGenerator,
		LimitReached: cfg.LimitReached,
		Next:         cfg.Next,
	})
}

// NewLoginLimiter creates a rate limiter for the login endpoint.
func NewLoginLimiter(limit platformconfig.RateLimitConfig) fiber.Handler {
	return New(Config{EndpointType: EndpointLogin, Limit: limit})
}

// NewSignupLimiter creates a rate limiter for the signup endpoint.
func NewSignupLimiter(limit platformconfig.RateLimitConfig) fiber.Handler {
	return New(Config{EndpointType: EndpointSignup, Limit: limit})
}

// NewVoteLimiter creates a rate limiter for vote casting, keyed by the
// resolved voter identity so shared IPs do not starve each other.
func NewVoteLimiter(limit platformconfig.RateLimitConfig) fiber.Handler {
	return New(Config{
		EndpointType: EndpointVote,
		Limit:        limit,
		KeyGenerator: voterKeyGenerator,
	})
}

// NewChatSendLimiter creates a rate limiter for chat message sending.
func NewChatSendLimiter(limit platformconfig.RateLimitConfig) fiber.Handler {
	return New(Config{
		EndpointType: EndpointChatSend,
		Limit:        limit,
		KeyGenerator: voterKeyGenerator,
	})
}

// configDefault sets default configuration values.
func configDefault(config Config) Config {
	if config.Limit.Max <= 0 {
		config.Limit.Max = 5
	}
	if config.Limit.Duration <= 0 {
		config.Limit.Duration = 15 * time.Minute
	}

	// Rate limit by IP + endpoint path by default.
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}

	if config.LimitReached == nil {
		config.LimitReached = func(c *fiber.Ctx) error {
			endpointName := getEndpointName(config.EndpointType)

			log.Warn("[RateLimit] Rate limit exceeded for %s from IP: %s", endpointName, c.IP())

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "Rate limit exceeded",
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    fmt.Sprintf("Too many %s attempts. Please try again later.", endpointName),
				"retryAfter": int(config.Limit.Duration.Seconds()),
			})
		}
	}

	return config
}

// voterKeyGenerator keys the limiter by voter identity, falling back to the
// client IP before the visitor middleware has run.
func voterKeyGenerator(c *fiber.Ctx) string {
	if v, ok := c.Locals(types.VoterCtxName).(types.Voter); ok && v.Valid() {
		return string(v.Kind) + ":" + v.Key()
	}
	return c.IP() + ":" + c.Path()
}

// getEndpointName returns human-readable endpoint name for logging.
func getEndpointName(endpointType EndpointType) string {
	switch endpointType {
	case EndpointLogin:
		return "login"
	case EndpointSignup:
		return "signup"
	case EndpointVote:
		return "vote"
	case EndpointChatSend:
		return "chat send"
	default:
		return "unknown"
	}
}
