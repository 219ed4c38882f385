package visitor

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"

	"github.com/nuoidev/api/internal/types"
)

// cookieMaxAge keeps the anonymous identity stable for a year so daily vote
// quotas survive browser restarts.
const cookieMaxAge = 365 * 24 * time.Hour

// Config defines the config for the visitor identity middleware.
type Config struct {
	// VoterCtxName is the context key to store the resolved Voter.
	VoterCtxName string
	// UserCtxName is the context key an upstream JWT middleware uses for the
	// authenticated UserContext. When present, the user identity wins.
	UserCtxName string
	// Secure marks the visitor cookie as HTTPS-only.
	Secure bool
}

// New creates a middleware that resolves the voter identity for the request.
// Authenticated users vote as themselves; everyone else gets a per-browser
// visitor token minted into a long-lived cookie on first contact.
func New(cfg Config) fiber.Handler {
	if cfg.VoterCtxName == "" {
		cfg.VoterCtxName = types.VoterCtxName
	}
	if cfg.UserCtxName == "" {
		cfg.UserCtxName = types.UserCtxName
	}

	return func(c *fiber.Ctx) error {
		if userCtx, ok := c.Locals(cfg.UserCtxName).(types.UserContext); ok {
			c.Locals(cfg.VoterCtxName, types.UserVoter(userCtx.UserID))
			return c.Next()
		}

		token := c.Cookies(types.VisitorCookie)
		if token == "" || !isUUID(token) {
			id, err := uuid.NewV4()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to mint visitor id")
			}
			token = id.String()
			c.Cookie(&fiber.Cookie{
				Name:     types.VisitorCookie,
				Value:    token,
				Expires:  time.Now().Add(cookieMaxAge),
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				Path:     "/",
			})
		}

		c.Locals(cfg.VoterCtxName, types.AnonymousVoter(token))
		return c.Next()
	}
}

// GetVoter retrieves the resolved Voter from the Fiber context.
func GetVoter(c *fiber.Ctx) (types.Voter, bool) {
	v, ok := c.Locals(types.VoterCtxName).(types.Voter)
	return v, ok && v.Valid()
}

func isUUID(s string) bool {
	_, err := uuid.FromString(s)
	return err == nil
}
