package authjwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/pkg/log"
	"github.com/nuoidev/api/internal/types"
)

// Config defines the config for the JWT middleware.
type Config struct {
	// The EC public key for validating ES256 tokens.
	PublicKey string
	// The claim key where the UserContext is stored.
	ClaimKey string
	// The context key to store the UserContext.
	UserCtxName string
	// Optional reports whether requests without a valid token pass through
	// without a UserContext instead of being rejected.
	Optional bool
	// Optional cache service for session allowlisting.
	CacheService *cache.GenericCacheService
}

// New creates a new middleware handler.
func New(cfg Config) fiber.Handler {
	// Parse the key once on startup.
	ecPublicKey, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.PublicKey))
	if err != nil {
		panic(fmt.Sprintf("failed to parse EC public key: %v", err))
	}

	if cfg.ClaimKey == "" {
		cfg.ClaimKey = "claim"
	}
	if cfg.UserCtxName == "" {
		cfg.UserCtxName = types.UserCtxName
	}

	// Use only the provided cache instance; do not auto-create one here.
	var sessionCache *cache.GenericCacheService
	if cfg.CacheService != nil && cfg.CacheService.IsEnabled() {
		sessionCache = cfg.CacheService
	}

	return func(c *fiber.Ctx) error {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			if cfg.Optional {
				return c.Next()
			}
			return unauthorized(c, "Missing or invalid JWT", "")
		}

		userCtx, err := validate(tokenString, ecPublicKey, cfg.ClaimKey, sessionCache)
		if err != nil {
			if cfg.Optional {
				// A broken token on an optional route degrades to anonymous.
				return c.Next()
			}
			return unauthorized(c, "Invalid token", err.Error())
		}

		c.Locals(cfg.UserCtxName, userCtx)
		return c.Next()
	}
}

// ExtractToken pulls the JWT from the Authorization header or, for browser
// clients, the access_token cookie. Returns "" when neither is present.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get(types.HeaderAuthorization)
	if authHeader != "" && strings.HasPrefix(authHeader, types.BearerPrefix) {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return c.Cookies(types.AccessTokenCookie)
}

func validate(tokenString string, publicKey interface{}, claimKey string, sessionCache *cache.GenericCacheService) (types.UserContext, error) {
	var userCtx types.UserContext

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Enforce the expected signing algorithm.
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return userCtx, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return userCtx, errors.New("invalid token")
	}

	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < time.Now().Unix() {
			return userCtx, errors.New("token has expired")
		}
	}

	claimData, ok := claims[claimKey].(map[string]interface{})
	if !ok {
		return userCtx, errors.New("invalid token claim format")
	}

	// Optional session allowlist check via cache.
	if sessionCache != nil {
		jtiStr, _ := claims["jti"].(string)
		if jtiStr == "" {
			return userCtx, errors.New("missing session ID")
		}
		uidStr, _ := claimData[types.HeaderUID].(string)
		if uidStr == "" {
			return userCtx, errors.New("missing user ID")
		}
		key := sessionCache.GenerateHashKey("sessions", map[string]interface{}{"uid": uidStr})
		isMember, err := sessionCache.SetIsMember(context.Background(), key, jtiStr)
		if err != nil {
			// Fail-closed: deny access on cache check error.
			log.Warn("Session check failed for user %s: %v", uidStr, err)
			return userCtx, fmt.Errorf("session validation failed: %w", err)
		}
		if !isMember {
			return userCtx, errors.New("session has been invalidated")
		}
	}

	return mapToUserContext(claimData)
}

// mapToUserContext converts claim data to UserContext.
func mapToUserContext(claimData map[string]interface{}) (types.UserContext, error) {
	var userCtx types.UserContext

	userIDStr, ok := claimData[types.HeaderUID].(string)
	if !ok {
		return userCtx, errors.New("missing or invalid uid in claim")
	}
	userID, err := uuid.FromString(userIDStr)
	if err != nil {
		return userCtx, fmt.Errorf("invalid user ID: %v", err)
	}
	userCtx.UserID = userID

	if username, ok := claimData["username"].(string); ok {
		userCtx.Username = username
	}
	if displayName, ok := claimData["displayName"].(string); ok {
		userCtx.DisplayName = displayName
	}
	if avatar, ok := claimData["avatar"].(string); ok {
		userCtx.Avatar = avatar
	}
	if profileIDStr, ok := claimData["profileId"].(string); ok {
		if profileID, err := uuid.FromString(profileIDStr); err == nil {
			userCtx.ProfileID = profileID
		}
	}
	if systemRole, ok := claimData["role"].(string); ok {
		userCtx.SystemRole = systemRole
	}

	return userCtx, nil
}

func unauthorized(c *fiber.Ctx, message, details string) error {
	body := fiber.Map{
		"code":    "UNAUTHORIZED",
		"message": message,
	}
	if details != "" {
		body["details"] = details
	}
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}
