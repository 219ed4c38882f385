package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/internal/types"
	"github.com/nuoidev/api/posts/errors"
	"github.com/nuoidev/api/posts/models"
	"github.com/nuoidev/api/posts/services"
	"github.com/nuoidev/api/posts/validation"
)

// PostHandler handles all post-related HTTP requests
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler with injected dependencies
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// CreatePostRequest represents the request body for post creation
type CreatePostRequest struct {
	Content         string   `json:"content"`
	Type            string   `json:"type"`
	TargetProfileID string   `json:"targetProfileId"`
	Images          []string `json:"images"`
}

// Create handles post creation
// Endpoint: POST /posts
func (h *PostHandler) Create(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}
	if req.Type == "" {
		req.Type = models.PostTypeNormal
	}

	if err := validation.ValidateContent(req.Content); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}
	if err := validation.ValidateType(req.Type); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}
	if err := validation.ValidateImages(req.Images); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	input := services.CreatePostInput{
		Content: req.Content,
		Type:    req.Type,
		Images:  req.Images,
	}
	if req.Type == models.PostTypeSupportCall {
		if req.TargetProfileID == "" {
			return errors.HandleMissingFieldError(c, "targetProfileId")
		}
		targetID, err := uuid.FromString(req.TargetProfileID)
		if err != nil {
			return errors.HandleUUIDError(c, "targetProfileId")
		}
		input.TargetProfileID = &targetID
	}

	post, err := h.postService.CreatePost(c.Context(), &user, input)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(post)
}

// List handles the board feed, pinned posts first
// Endpoint: GET /posts?limit=&offset=
func (h *PostHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	offset := c.QueryInt("offset")

	result, err := h.postService.ListPosts(c.Context(), limit, offset)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// Get handles fetching a single post
// Endpoint: GET /posts/:id
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	post, err := h.postService.GetPost(c.Context(), postID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(post)
}

// Delete handles post deletion by the owner
// Endpoint: DELETE /posts/:id
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	postID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	if err := h.postService.DeletePost(c.Context(), postID, user.UserID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// Like increments a post's like counter. No authentication required.
// Endpoint: PUT /posts/:id/like
func (h *PostHandler) Like(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	likes, err := h.postService.LikePost(c.Context(), postID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"likes": likes,
	})
}

// Pin toggles a post's pinned flag, owner only
// Endpoint: PUT /posts/:id/pin
func (h *PostHandler) Pin(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	postID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	post, err := h.postService.TogglePin(c.Context(), postID, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(post)
}
