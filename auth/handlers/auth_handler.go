package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nuoidev/api/auth/errors"
	"github.com/nuoidev/api/auth/services"
	"github.com/nuoidev/api/auth/validation"
	"github.com/nuoidev/api/internal/auth/tokens"
	"github.com/nuoidev/api/internal/middleware/authjwt"
	"github.com/nuoidev/api/internal/types"
)

// AuthHandler handles all auth-related HTTP requests
type AuthHandler struct {
	authService services.AuthService
	config      *HandlerConfig
}

// HandlerConfig holds handler-level settings.
type HandlerConfig struct {
	// CookieSecure marks the access_token cookie HTTPS-only.
	CookieSecure bool
}

// NewAuthHandler creates a new AuthHandler with injected dependencies
func NewAuthHandler(authService services.AuthService, config *HandlerConfig) *AuthHandler {
	if config == nil {
		config = &HandlerConfig{}
	}
	return &AuthHandler{
		authService: authService,
		config:      config,
	}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles account creation
// Endpoint: POST /auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return errors.HandleMissingFieldError(c, "username")
	}
	if req.Password == "" {
		return errors.HandleMissingFieldError(c, "password")
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}
	if err := validation.ValidatePassword(req.Password, req.Username, req.DisplayName); err != nil {
		return errors.HandleValidationError(c, "Password is not strong enough!")
	}
	if err := validation.ValidateDisplayName(req.DisplayName); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	user, err := h.authService.Signup(c.Context(), services.SignupInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
	})
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	token, err := h.authService.IssueSession(c.Context(), user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	h.setSessionCookie(c, token)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":        user.Public(),
		"accessToken": token,
	})
}

// Login handles username/password authentication
// Endpoint: POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if req.Username == "" {
		return errors.HandleMissingFieldError(c, "username")
	}
	if req.Password == "" {
		return errors.HandleMissingFieldError(c, "password")
	}

	user, err := h.authService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	token, err := h.authService.IssueSession(c.Context(), user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	h.setSessionCookie(c, token)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user":        user.Public(),
		"accessToken": token,
	})
}

// Session returns the current authenticated user, or {user: null} for
// anonymous visitors. A valid token whose user row is gone clears the cookie.
// Endpoint: GET /auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	userCtx, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusOK).JSON(fiber.Map{"user": nil})
	}

	user, err := h.authService.CurrentUser(c.Context(), userCtx.UserID)
	if err != nil {
		h.clearSessionCookie(c)
		return c.Status(http.StatusOK).JSON(fiber.Map{"user": nil})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"user": user.Public()})
}

// UpdateRequest represents the request body for account updates
type UpdateRequest struct {
	DisplayName *string `json:"displayName"`
	Avatar      *string `json:"avatar"`
	Password    string  `json:"password"`
}

// Update handles account edits by the owner. The session cookie is re-issued
// so its claim carries the new display name and avatar.
// Endpoint: PUT /auth/update
func (h *AuthHandler) Update(c *fiber.Ctx) error {
	userCtx, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}
	if req.DisplayName == nil && req.Avatar == nil && req.Password == "" {
		return errors.HandleInvalidRequestError(c, "Nothing to update")
	}
	if req.DisplayName != nil {
		if err := validation.ValidateDisplayName(*req.DisplayName); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if req.Password != "" {
		displayName := userCtx.DisplayName
		if req.DisplayName != nil {
			displayName = *req.DisplayName
		}
		if err := validation.ValidatePassword(req.Password, userCtx.Username, displayName); err != nil {
			return errors.HandleValidationError(c, "Password is not strong enough!")
		}
	}

	user, err := h.authService.UpdateAccount(c.Context(), userCtx.UserID, services.UpdateAccountInput{
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		Password:    req.Password,
	})
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	token, err := h.authService.IssueSession(c.Context(), user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	h.setSessionCookie(c, token)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user":        user.Public(),
		"accessToken": token,
	})
}

// Logout revokes the session and clears the cookie
// Endpoint: POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if userCtx, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		if token := authjwt.ExtractToken(c); token != "" {
			_ = h.authService.RevokeSession(c.Context(), userCtx.UserID, token)
		}
	}
	h.clearSessionCookie(c)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     types.AccessTokenCookie,
		Value:    token,
		Expires:  time.Now().Add(tokens.DefaultTTL),
		HTTPOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     types.AccessTokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
