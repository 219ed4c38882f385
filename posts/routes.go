package posts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/middleware/authjwt"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up posts routes
func RegisterRoutes(app fiber.Router, h *PostsHandlers, cfg *platformconfig.Config, cacheService *cache.GenericCacheService) {
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		CacheService: cacheService,
	})

	group := app.Group("/posts")

	group.Get("/", h.PostHandler.List)
	group.Get("/:id", h.PostHandler.Get)

	// Liking stays open to everyone, including anonymous visitors.
	group.Put("/:id/like", h.PostHandler.Like)

	group.Post("/", requireAuth, h.PostHandler.Create)
	group.Put("/:id/pin", requireAuth, h.PostHandler.Pin)
	group.Delete("/:id", requireAuth, h.PostHandler.Delete)
}
