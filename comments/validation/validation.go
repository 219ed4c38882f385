package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nuoidev/api/comments/models"
)

// ValidateContent checks the comment body text. Length is counted in runes so
// multi-byte text gets the full allowance.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > models.ContentMaxLength {
		return fmt.Errorf("content must be at most %d characters", models.ContentMaxLength)
	}
	return nil
}
