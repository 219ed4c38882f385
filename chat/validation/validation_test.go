package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nuoidev/api/chat/models"
)

func TestValidateSenderName(t *testing.T) {
	assert.NoError(t, ValidateSenderName("Trần Văn Dev"))
	assert.Error(t, ValidateSenderName("   "))
	assert.Error(t, ValidateSenderName(strings.Repeat("a", models.SenderNameMaxLength+1)))

	// Multi-byte names count in characters, not bytes.
	assert.NoError(t, ValidateSenderName(strings.Repeat("ữ", models.SenderNameMaxLength)))
	assert.Error(t, ValidateSenderName(strings.Repeat("ữ", models.SenderNameMaxLength+1)))
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("chào mọi người"))
	assert.Error(t, ValidateMessage(""))
	assert.Error(t, ValidateMessage("   "))

	// A Vietnamese message at the cap is several times the cap in bytes.
	atCap := strings.Repeat("ệ", models.MessageMaxLength)
	assert.Greater(t, len(atCap), models.MessageMaxLength)
	assert.NoError(t, ValidateMessage(atCap))
	assert.Error(t, ValidateMessage(atCap+"!"))
}
