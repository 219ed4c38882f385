package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the votes service
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidUUID         = "INVALID_UUID"
	CodeMissingVoter        = "MISSING_VOTER"
	CodeProfileNotFound     = "PROFILE_NOT_FOUND"
	CodeSelfVote            = "SELF_VOTE"
	CodeDailyQuotaExceeded  = "DAILY_QUOTA_EXCEEDED"
	CodeAlreadyVotedToday   = "ALREADY_VOTED_TODAY"
	CodeDatabaseError       = "DATABASE_ERROR"
	CodeSystemError         = "SYSTEM_ERROR"
)

// Votes service specific errors
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrSelfVote           = errors.New("cannot vote for your own profile")
	ErrDailyQuotaExceeded = errors.New("daily vote quota exceeded")
	ErrAlreadyVotedToday  = errors.New("already voted for this profile today")
	ErrDatabaseError      = errors.New("database operation failed")
)

// QuotaError decorates a quota rejection with the votes the voter still has
// for the day, so clients can render the counter without a second request.
type QuotaError struct {
	Err            error
	RemainingVotes int
}

// Error implements the error interface
func (e *QuotaError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying sentinel error
func (e *QuotaError) Unwrap() error {
	return e.Err
}

// NewQuotaError wraps a sentinel error with the remaining vote count.
func NewQuotaError(err error, remaining int) *QuotaError {
	if remaining < 0 {
		remaining = 0
	}
	return &QuotaError{Err: err, RemainingVotes: remaining}
}

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code           string      `json:"code"`
	Message        string      `json:"message"`
	RemainingVotes *int        `json:"remainingVotes,omitempty"`
	Details        interface{} `json:"details,omitempty"`
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeValidationFailed,
		Message: message,
	})
}

// HandleInvalidRequestError handles invalid request errors with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
	})
}

// HandleUUIDError handles UUID parsing errors with 400 Bad Request
func HandleUUIDError(c *fiber.Ctx, fieldName string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidUUID,
		Message: "Invalid " + fieldName + " format",
	})
}

// HandleMissingVoterError handles requests without a resolvable voter identity
func HandleMissingVoterError(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeMissingVoter,
		Message: "Voter identity could not be resolved",
	})
}

// HandleServiceError maps service errors to HTTP responses. Quota errors
// carry remainingVotes through to the response body.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var remaining *int
	var quotaErr *QuotaError
	if errors.As(err, &quotaErr) {
		remaining = &quotaErr.RemainingVotes
	}

	switch {
	case errors.Is(err, ErrProfileNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeProfileNotFound,
			Message: "Profile not found",
		})
	case errors.Is(err, ErrSelfVote):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeSelfVote,
			Message: "You cannot vote for your own profile",
		})
	case errors.Is(err, ErrDailyQuotaExceeded):
		return c.Status(http.StatusTooManyRequests).JSON(ErrorResponse{
			Code:           CodeDailyQuotaExceeded,
			Message:        "Daily vote quota exceeded",
			RemainingVotes: remaining,
		})
	case errors.Is(err, ErrAlreadyVotedToday):
		return c.Status(http.StatusTooManyRequests).JSON(ErrorResponse{
			Code:           CodeAlreadyVotedToday,
			Message:        "You already voted for this profile today",
			RemainingVotes: remaining,
		})
	case errors.Is(err, ErrDatabaseError):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeSystemError,
			Message: "An unexpected error occurred",
		})
	}
}
