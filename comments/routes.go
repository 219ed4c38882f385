package comments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuoidev/api/comments/handlers"
	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/middleware/authjwt"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
)

// CommentsHandlers holds all the handlers this router needs
type CommentsHandlers struct {
	CommentHandler *handlers.CommentHandler
}

// RegisterRoutes is the single entry point for setting up comment routes.
// Reading lives under the post it belongs to; deletion addresses the comment
// directly.
func RegisterRoutes(app fiber.Router, h *CommentsHandlers, cfg *platformconfig.Config, cacheService *cache.GenericCacheService) {
	requireAuth := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		CacheService: cacheService,
	})

	app.Get("/posts/:id/comments", h.CommentHandler.List)
	app.Post("/posts/:id/comments", requireAuth, h.CommentHandler.Create)
	app.Delete("/comments/:id", requireAuth, h.CommentHandler.Delete)
}
