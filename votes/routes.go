package votes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/middleware/authjwt"
	"github.com/nuoidev/api/internal/middleware/ratelimit"
	"github.com/nuoidev/api/internal/middleware/visitor"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/votes/handlers"
)

// VotesHandlers holds all the handlers this router needs
type VotesHandlers struct {
	VoteHandler *handlers.VoteHandler
}

// RegisterRoutes is the single entry point for setting up votes routes.
// Voting is open to anonymous visitors; the JWT middleware runs in optional
// mode so authenticated users vote under their account identity while
// everyone else falls back to the visitor cookie.
func RegisterRoutes(app fiber.Router, h *VotesHandlers, cfg *platformconfig.Config, cacheService *cache.GenericCacheService) {
	optionalAuth := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		Optional:     true,
		CacheService: cacheService,
	})
	resolveVoter := visitor.New(visitor.Config{})

	group := app.Group("/votes", optionalAuth, resolveVoter)

	group.Post("/", ratelimit.NewVoteLimiter(cfg.RateLimits.Vote), h.VoteHandler.Vote)
	group.Get("/remaining", h.VoteHandler.Remaining)
}
