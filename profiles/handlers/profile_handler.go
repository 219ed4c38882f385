package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/gorilla/schema"

	"github.com/nuoidev/api/internal/types"
	"github.com/nuoidev/api/profiles/errors"
	"github.com/nuoidev/api/profiles/models"
	"github.com/nuoidev/api/profiles/services"
	"github.com/nuoidev/api/profiles/validation"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// ProfileHandler handles all profile-related HTTP requests
type ProfileHandler struct {
	profileService services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler with injected dependencies
func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// CreateProfileRequest represents the request body for profile creation
type CreateProfileRequest struct {
	Name        string   `json:"name"`
	Nickname    string   `json:"nickname"`
	Avatar      string   `json:"avatar"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	FunFacts    []string `json:"funFacts"`
	Catchphrase string   `json:"catchphrase"`
	Mood        string   `json:"mood"`
}

func validateProfileFields(name, nickname, bio, catchphrase, mood string, skills, funFacts []string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidateNickname(nickname); err != nil {
		return err
	}
	if err := validation.ValidateBio(bio); err != nil {
		return err
	}
	if err := validation.ValidateCatchphrase(catchphrase); err != nil {
		return err
	}
	if err := validation.ValidateMood(mood); err != nil {
		return err
	}
	if err := validation.ValidateSkills(skills); err != nil {
		return err
	}
	return validation.ValidateFunFacts(funFacts)
}

// Create handles profile creation
// Endpoint: POST /profiles
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	var req CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if err := validateProfileFields(req.Name, req.Nickname, req.Bio, req.Catchphrase, req.Mood, req.Skills, req.FunFacts); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	profile, err := h.profileService.CreateProfile(c.Context(), user.UserID, services.CreateProfileInput{
		Name:        req.Name,
		Nickname:    req.Nickname,
		Avatar:      req.Avatar,
		Bio:         req.Bio,
		Skills:      req.Skills,
		FunFacts:    req.FunFacts,
		Catchphrase: req.Catchphrase,
		Mood:        req.Mood,
	})
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(profile)
}

// List handles profile listing with search and pagination
// Endpoint: GET /profiles?search=&limit=&offset=
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	values := url.Values{}
	for key, vals := range c.Queries() {
		values.Set(key, vals)
	}

	var query models.ListQuery
	if err := queryDecoder.Decode(&query, values); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid query parameters")
	}

	result, err := h.profileService.ListProfiles(c.Context(), query)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// Get handles fetching a single profile
// Endpoint: GET /profiles/:id
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profileID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	profile, err := h.profileService.GetProfile(c.Context(), profileID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(profile)
}

// Update handles profile updates by the owner
// Endpoint: PUT /profiles/:id
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	profileID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if req.Name != nil {
		if err := validation.ValidateName(*req.Name); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if req.Nickname != nil {
		if err := validation.ValidateNickname(*req.Nickname); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if req.Bio != nil {
		if err := validation.ValidateBio(*req.Bio); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if req.Catchphrase != nil {
		if err := validation.ValidateCatchphrase(*req.Catchphrase); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if req.Mood != nil {
		if err := validation.ValidateMood(*req.Mood); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if req.Skills != nil {
		if err := validation.ValidateSkills(*req.Skills); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}
	if req.FunFacts != nil {
		if err := validation.ValidateFunFacts(*req.FunFacts); err != nil {
			return errors.HandleValidationError(c, err.Error())
		}
	}

	profile, err := h.profileService.UpdateProfile(c.Context(), profileID, user.UserID, &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(profile)
}

// Delete handles profile deletion by the owner
// Endpoint: DELETE /profiles/:id
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Authentication required")
	}

	profileID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return errors.HandleUUIDError(c, "id")
	}

	if err := h.profileService.DeleteProfile(c.Context(), profileID, user.UserID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Profile deleted",
	})
}

// Leaderboard returns the top profiles by votes
// Endpoint: GET /profiles/leaderboard
func (h *ProfileHandler) Leaderboard(c *fiber.Ctx) error {
	profiles, err := h.profileService.Leaderboard(c.Context())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"profiles": profiles,
	})
}
