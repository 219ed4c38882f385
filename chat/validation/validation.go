package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nuoidev/api/chat/models"
)

// ValidateSenderName checks the display name on a chat message
func ValidateSenderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	// Counted in runes so multi-byte text gets the full allowance.
	if utf8.RuneCountInString(name) > models.SenderNameMaxLength {
		return fmt.Errorf("name must be at most %d characters", models.SenderNameMaxLength)
	}
	return nil
}

// ValidateMessage checks the chat message body
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > models.MessageMaxLength {
		return fmt.Errorf("message must be at most %d characters", models.MessageMaxLength)
	}
	return nil
}
