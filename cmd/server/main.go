package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/nuoidev/api/auth"
	authhandlers "github.com/nuoidev/api/auth/handlers"
	authrepository "github.com/nuoidev/api/auth/repository"
	authservices "github.com/nuoidev/api/auth/services"
	"github.com/nuoidev/api/chat"
	chathandlers "github.com/nuoidev/api/chat/handlers"
	chatrepository "github.com/nuoidev/api/chat/repository"
	chatservices "github.com/nuoidev/api/chat/services"
	"github.com/nuoidev/api/comments"
	commenthandlers "github.com/nuoidev/api/comments/handlers"
	commentrepository "github.com/nuoidev/api/comments/repository"
	commentservices "github.com/nuoidev/api/comments/services"
	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/database/postgres"
	"github.com/nuoidev/api/internal/middleware/requestid"
	"github.com/nuoidev/api/internal/pkg/log"
	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/posts"
	posthandlers "github.com/nuoidev/api/posts/handlers"
	postrepository "github.com/nuoidev/api/posts/repository"
	postservices "github.com/nuoidev/api/posts/services"
	"github.com/nuoidev/api/profiles"
	profilehandlers "github.com/nuoidev/api/profiles/handlers"
	profilerepository "github.com/nuoidev/api/profiles/repository"
	profileservices "github.com/nuoidev/api/profiles/services"
	"github.com/nuoidev/api/votes"
	votehandlers "github.com/nuoidev/api/votes/handlers"
	voterepository "github.com/nuoidev/api/votes/repository"
	voteservices "github.com/nuoidev/api/votes/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		stdlog.Fatalf("Failed to load platform config: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			// Handlers write their own JSON error bodies; don't override them.
			if len(c.Response().Body()) > 0 {
				return nil
			}

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))
	app.Use(requestid.New())

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		stdlog.Fatalf("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	cacheConfig := &cache.CacheConfig{
		Enabled:         cfg.Cache.Enabled,
		TTL:             cfg.Cache.TTL,
		Prefix:          cfg.Cache.Prefix,
		Backend:         cache.CacheType(cfg.Cache.Backend),
		MaxMemory:       cfg.Cache.MaxMemory,
		CleanupInterval: cfg.Cache.CleanupInterval,
		Redis: cache.RedisConfig{
			Address:      cfg.Cache.Redis.Address,
			Password:     cfg.Cache.Redis.Password,
			Database:     cfg.Cache.Redis.Database,
			PoolSize:     cfg.Cache.Redis.PoolSize,
			MinIdleConns: cfg.Cache.Redis.MinIdleConns,
			MaxConnAge:   cfg.Cache.Redis.MaxConnAge,
		},
	}
	backend, err := cache.NewCacheFactory().CreateCache(cacheConfig)
	if err != nil {
		stdlog.Fatalf("Failed to create cache backend: %v", err)
	}
	defer backend.Close()
	cacheService := cache.NewGenericCacheService(backend, cacheConfig)

	// Repositories share one connection pool; cross-repository transactions
	// join through the context.
	userRepo := authrepository.NewPostgresUserRepository(pgClient)
	profileRepo := profilerepository.NewPostgresProfileRepository(pgClient)
	voteRepo := voterepository.NewPostgresVoteRepository(pgClient)
	postRepo := postrepository.NewPostgresPostRepository(pgClient)
	commentRepo := commentrepository.NewPostgresCommentRepository(pgClient)
	messageRepo := chatrepository.NewPostgresMessageRepository(pgClient)

	profileService := profileservices.NewProfileService(profileRepo, cacheService)
	// Sessions carry the owner's profile id so handlers can link activity to
	// the profile without a lookup per request.
	authService := authservices.NewAuthService(userRepo, cacheService, profileService, &authservices.ServiceConfig{
		JWTConfig: cfg.JWT,
		AppName:   cfg.App.Name,
	})
	voteService := voteservices.NewVoteService(voteRepo, profileService, cfg.Votes)
	postService := postservices.NewPostService(postRepo, profileService)
	commentService := commentservices.NewCommentService(commentRepo, postRepo)
	chatService := chatservices.NewChatService(messageRepo, cacheService)

	authHandlers := &auth.AuthHandlers{
		AuthHandler: authhandlers.NewAuthHandler(authService, nil),
	}
	profileHandlers := &profiles.ProfileHandlers{
		ProfileHandler: profilehandlers.NewProfileHandler(profileService),
	}
	voteHandlers := &votes.VotesHandlers{
		VoteHandler: votehandlers.NewVoteHandler(voteService),
	}
	postHandlers := &posts.PostsHandlers{
		PostHandler: posthandlers.NewPostHandler(postService),
	}
	commentHandlers := &comments.CommentsHandlers{
		CommentHandler: commenthandlers.NewCommentHandler(commentService),
	}
	chatHandlers := &chat.ChatHandlers{
		ChatHandler: chathandlers.NewChatHandler(chatService),
	}

	api := app.Group(cfg.Server.BaseRoute)
	auth.RegisterRoutes(api, authHandlers, cfg, cacheService)
	profiles.RegisterRoutes(api, profileHandlers, cfg, cacheService)
	votes.RegisterRoutes(api, voteHandlers, cfg, cacheService)
	posts.RegisterRoutes(api, postHandlers, cfg, cacheService)
	comments.RegisterRoutes(api, commentHandlers, cfg, cacheService)
	chat.RegisterRoutes(api, chatHandlers, cfg, cacheService)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting %s API server on %s", cfg.App.Name, addr)
	stdlog.Fatal(app.Listen(addr))
}
