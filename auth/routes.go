package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuoidev/api/auth/handlers"
	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/middleware/authjwt"
	"github.com/nuoidev/api/internal/middleware/ratelimit"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
)

// AuthHandlers holds all the handlers this router needs
type AuthHandlers struct {
	AuthHandler *handlers.AuthHandler
}

// RegisterRoutes is the single entry point for setting up auth routes
func RegisterRoutes(app fiber.Router, h *AuthHandlers, cfg *platformconfig.Config, cacheService *cache.GenericCacheService) {
	optionalAuth := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		Optional:     true,
		CacheService: cacheService,
	})
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		CacheService: cacheService,
	})

	group := app.Group("/auth")

	group.Post("/signup", ratelimit.NewSignupLimiter(cfg.RateLimits.Signup), h.AuthHandler.Signup)
	group.Post("/login", ratelimit.NewLoginLimiter(cfg.RateLimits.Login), h.AuthHandler.Login)
	group.Get("/session", optionalAuth, h.AuthHandler.Session)
	group.Put("/update", requireAuth, h.AuthHandler.Update)
	group.Post("/logout", optionalAuth, h.AuthHandler.Logout)
}
