package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/comments/errors"
	"github.com/nuoidev/api/comments/services"
	"github.com/nuoidev/api/comments/validation"
	"github.com/nuoidev/api/internal/types"
)

// CommentHandler handles all comment-related HTTP requests
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler with injected dependencies
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateCommentRequest represents the request body for comment creation
type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// Create handles comment creation on a post
// Endpoint: POST /posts/:id/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	postID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if err := validation.ValidateContent(req.Content); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	input := services.CreateCommentInput{
		PostID:  postID,
		Content: req.Content,
	}
	if req.ParentID != "" {
		parentID, err := uuid.FromString(req.ParentID)
		if err != nil {
			return errors.HandleUUIDError(c, "parentId")
		}
		input.ParentID = &parentID
	}

	comment, err := h.commentService.CreateComment(c.Context(), &user, input)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(comment)
}

// List returns the reply tree for a post
// Endpoint: GET /posts/:id/comments
func (h *CommentHandler) List(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	tree, err := h.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"comments": tree,
	})
}

// Delete handles comment deletion by the owner
// Endpoint: DELETE /comments/:id
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	commentID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	if err := h.commentService.DeleteComment(c.Context(), commentID, user.UserID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
