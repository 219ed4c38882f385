package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Text lengths are counted in runes so multi-byte text gets the full
// allowance.

const (
	NameMaxLength        = 50
	NicknameMaxLength    = 30
	BioMaxLength         = 500
	CatchphraseMaxLength = 100
	MoodMaxLength        = 30
	MaxSkills            = 20
	SkillMaxLength       = 30
	MaxFunFacts          = 10
	FunFactMaxLength     = 200
)

// ValidateName checks the required profile name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return fmt.Errorf("name must be at most %d characters", NameMaxLength)
	}
	return nil
}

// ValidateNickname checks the optional nickname.
func ValidateNickname(nickname string) error {
	if utf8.RuneCountInString(nickname) > NicknameMaxLength {
		return fmt.Errorf("nickname must be at most %d characters", NicknameMaxLength)
	}
	return nil
}

// ValidateBio checks the optional bio.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > BioMaxLength {
		return fmt.Errorf("bio must be at most %d characters", BioMaxLength)
	}
	return nil
}

// ValidateCatchphrase checks the optional catchphrase.
func ValidateCatchphrase(catchphrase string) error {
	if utf8.RuneCountInString(catchphrase) > CatchphraseMaxLength {
		return fmt.Errorf("catchphrase must be at most %d characters", CatchphraseMaxLength)
	}
	return nil
}

// ValidateMood checks the optional mood label.
func ValidateMood(mood string) error {
	if utf8.RuneCountInString(mood) > MoodMaxLength {
		return fmt.Errorf("mood must be at most %d characters", MoodMaxLength)
	}
	return nil
}

// ValidateSkills checks the skill list bounds.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkills {
		return fmt.Errorf("at most %d skills are allowed", MaxSkills)
	}
	for _, skill := range skills {
		if strings.TrimSpace(skill) == "" {
			return fmt.Errorf("skills must not be empty")
		}
		if utf8.RuneCountInString(skill) > SkillMaxLength {
			return fmt.Errorf("each skill must be at most %d characters", SkillMaxLength)
		}
	}
	return nil
}

// ValidateFunFacts checks the fun fact list bounds.
func ValidateFunFacts(funFacts []string) error {
	if len(funFacts) > MaxFunFacts {
		return fmt.Errorf("at most %d fun facts are allowed", MaxFunFacts)
	}
	for _, fact := range funFacts {
		if utf8.RuneCountInString(fact) > FunFactMaxLength {
			return fmt.Errorf("each fun fact must be at most %d characters", FunFactMaxLength)
		}
	}
	return nil
}
