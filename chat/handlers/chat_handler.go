package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/chat/errors"
	"github.com/nuoidev/api/chat/services"
	"github.com/nuoidev/api/chat/validation"
	"github.com/nuoidev/api/internal/types"
)

// ChatHandler handles all chat-related HTTP requests
type ChatHandler struct {
	chatService services.ChatService
}

// NewChatHandler creates a new ChatHandler with injected dependencies
func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// SendMessageRequest represents the request body for sending a chat message
type SendMessageRequest struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	ReplyToID string `json:"replyToId"`
}

// List returns the recent chat window, oldest first
// Endpoint: GET /chat?limit=
func (h *ChatHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")

	messages, err := h.chatService.RecentMessages(c.Context(), limit)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"messages": messages,
	})
}

// Send posts a message to the shared room. Anonymous senders must provide a
// name; authenticated ones write under their account identity.
// Endpoint: POST /chat
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	var user *types.UserContext
	if u, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		user = &u
	}

	if user == nil {
		if err := validation.ValidateSenderName(req.Name); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if err := validation.ValidateMessage(req.Message); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	input := services.SendMessageInput{
		SenderName: req.Name,
		Message:    req.Message,
	}
	if req.ReplyToID != "" {
		replyTo, err := uuid.FromString(req.ReplyToID)
		if err != nil {
			return errors.HandleUUIDError(c, "replyToId")
		}
		input.ReplyToID = &replyTo
	}

	message, err := h.chatService.SendMessage(c.Context(), user, input)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(message)
}
