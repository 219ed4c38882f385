package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nuoidev/api/comments/models"
)

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("đồng ý, fix này ổn đấy"))
	assert.Error(t, ValidateContent(""))
	assert.Error(t, ValidateContent("   "))
	assert.Error(t, ValidateContent(strings.Repeat("a", models.ContentMaxLength+1)))

	// Multi-byte text counts in characters, not bytes.
	atCap := strings.Repeat("ậ", models.ContentMaxLength)
	assert.Greater(t, len(atCap), models.ContentMaxLength)
	assert.NoError(t, ValidateContent(atCap))
	assert.Error(t, ValidateContent(atCap+"!"))
}
