package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("dev_2024"))
	assert.NoError(t, ValidateUsername("abc"))

	assert.Error(t, ValidateUsername("ab"), "too short")
	assert.Error(t, ValidateUsername(strings.Repeat("a", 21)), "too long")
	assert.Error(t, ValidateUsername("bad name"), "whitespace")
	assert.Error(t, ValidateUsername("bad-name!"), "punctuation")
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("c0rrect-horse-battery"))

	assert.Error(t, ValidatePassword("short"), "below min length")
	assert.Error(t, ValidatePassword("password"), "dictionary word")
	assert.Error(t, ValidatePassword("12345678"), "sequential digits")
}

func TestValidatePassword_UserInputsLowerScore(t *testing.T) {
	// The username feeding the dictionary should sink a password built on it.
	err := ValidatePassword("nuoidev99", "nuoidev")
	assert.Error(t, err)
}

func TestValidateDisplayName(t *testing.T) {
	assert.NoError(t, ValidateDisplayName(""))
	assert.NoError(t, ValidateDisplayName("Trùm Cuối"))
	assert.Error(t, ValidateDisplayName(strings.Repeat("x", 51)))
}
