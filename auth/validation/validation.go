package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	gopass "github.com/nbutton23/zxcvbn-go"
)

const (
	// UsernameMinLength and UsernameMaxLength bound account usernames.
	UsernameMinLength = 3
	UsernameMaxLength = 20

	// PasswordMinLength is the hard floor before strength scoring.
	PasswordMinLength = 8

	// DisplayNameMaxLength bounds the optional display name.
	DisplayNameMaxLength = 50

	// passwordMinScore is the minimum zxcvbn score (0-4) accepted at signup.
	passwordMinScore = 2
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername checks username format and length constraints.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return fmt.Errorf("username must be %d-%d characters", UsernameMinLength, UsernameMaxLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits and underscores")
	}
	return nil
}

// ValidatePassword checks password length and strength. User inputs such as
// the username feed the zxcvbn dictionary so "username123" style passwords
// score low.
func ValidatePassword(password string, userInputs ...string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	strength := gopass.PasswordStrength(password, userInputs)
	if strength.Score < passwordMinScore {
		return fmt.Errorf("password is too weak")
	}
	return nil
}

// ValidateDisplayName checks the optional display name length. Counted in
// runes so multi-byte text gets the full allowance.
func ValidateDisplayName(displayName string) error {
	if utf8.RuneCountInString(displayName) > DisplayNameMaxLength {
		return fmt.Errorf("display name must be at most %d characters", DisplayNameMaxLength)
	}
	return nil
}
