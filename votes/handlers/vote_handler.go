package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/internal/types"
	"github.com/nuoidev/api/votes/errors"
	"github.com/nuoidev/api/votes/services"
)

// VoteHandler handles all vote-related HTTP requests
type VoteHandler struct {
	voteService services.VoteService
}

// NewVoteHandler creates a new VoteHandler with injected dependencies
func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// VoteRequest represents the request body for voting
type VoteRequest struct {
	ProfileID string `json:"profileId"` // UUID as string
}

// Vote handles casting a vote for a profile
// Endpoint: POST /votes
// Body: {"profileId": "uuid"}
func (h *VoteHandler) Vote(c *fiber.Ctx) error {
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if req.ProfileID == "" {
		return errors.HandleValidationError(c, "profileId is required")
	}
	profileID, err := uuid.FromString(req.ProfileID)
	if err != nil {
		return errors.HandleUUIDError(c, "profileId")
	}

	voter, ok := c.Locals(types.VoterCtxName).(types.Voter)
	if !ok || !voter.Valid() {
		return errors.HandleMissingVoterError(c)
	}

	result, err := h.voteService.CastVote(c.Context(), voter, profileID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// Remaining reports the voter's quota standing for today
// Endpoint: GET /votes/remaining
func (h *VoteHandler) Remaining(c *fiber.Ctx) error {
	voter, ok := c.Locals(types.VoterCtxName).(types.Voter)
	if !ok || !voter.Valid() {
		return errors.HandleMissingVoterError(c)
	}

	status, err := h.voteService.RemainingVotes(c.Context(), voter)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(status)
}
