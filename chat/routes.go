package chat

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuoidev/api/chat/handlers"
	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/middleware/authjwt"
	"github.com/nuoidev/api/internal/middleware/ratelimit"
	"github.com/nuoidev/api/internal/middleware/visitor"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
)

// ChatHandlers holds all the handlers this router needs
type ChatHandlers struct {
	ChatHandler *handlers.ChatHandler
}

// RegisterRoutes is the single entry point for setting up chat routes.
// The room is open to anonymous visitors; sending is rate limited per voter
// identity so one browser cannot flood the room.
func RegisterRoutes(app fiber.Router, h *ChatHandlers, cfg *platformconfig.Config, cacheService *cache.GenericCacheService) {
	optionalAuth := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		Optional:     true,
		CacheService: cacheService,
	})
	resolveVoter := visitor.New(visitor.Config{})

	group := app.Group("/chat", optionalAuth, resolveVoter)

	group.Get("/", h.ChatHandler.List)
	group.Post("/", ratelimit.NewChatSendLimiter(cfg.RateLimits.ChatSend), h.ChatHandler.Send)
}
