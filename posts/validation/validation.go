package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nuoidev/api/posts/models"
)

// Content limits
const (
	ContentMaxLength = 2000
)

// ValidateContent checks the post body text
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("content is required")
	}
	// Counted in runes so multi-byte text gets the full allowance.
	if utf8.RuneCountInString(content) > ContentMaxLength {
		return fmt.Errorf("content must be at most %d characters", ContentMaxLength)
	}
	return nil
}

// ValidateType checks the post type discriminator
func ValidateType(postType string) error {
	if !models.IsValidType(postType) {
		return fmt.Errorf("type must be %q or %q", models.PostTypeNormal, models.PostTypeSupportCall)
	}
	return nil
}

// ValidateImages checks the attached image URL list
func ValidateImages(images []string) error {
	if len(images) > models.MaxImages {
		return fmt.Errorf("at most %d images are allowed", models.MaxImages)
	}
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			return fmt.Errorf("image URLs must not be empty")
		}
	}
	return nil
}
