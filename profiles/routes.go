package profiles

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/middleware/authjwt"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/profiles/handlers"
)

// ProfileHandlers holds all the handlers this router needs
type ProfileHandlers struct {
	ProfileHandler *handlers.ProfileHandler
}

// RegisterRoutes is the single entry point for setting up profile routes
func RegisterRoutes(app fiber.Router, h *ProfileHandlers, cfg *platformconfig.Config, cacheService *cache.GenericCacheService) {
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		CacheService: cacheService,
	})

	group := app.Group("/profiles")

	// Leaderboard registers before :id so the path does not shadow it.
	group.Get("/leaderboard", h.ProfileHandler.Leaderboard)
	group.Get("/", h.ProfileHandler.List)
	group.Get("/:id", h.ProfileHandler.Get)

	group.Post("/", requireAuth, h.ProfileHandler.Create)
	group.Put("/:id", requireAuth, h.ProfileHandler.Update)
	group.Delete("/:id", requireAuth, h.ProfileHandler.Delete)
}
