package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// local@domain.tld shape: letters/digits/._%+- before @, dotted domain,
	// 2+ letter TLD
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// At least 10 characters drawn from digits, spaces, - + ( )
	phoneRegex = regexp.MustCompile(`^[\d\s\-\+\(\)]{10,}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("candidate_email", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "" || ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("candidate_phone", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "" || ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("candidate_name", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "" || ValidName(fl.Field().String())
	})
}

// ValidEmail validates the structural email shape.
func ValidEmail(val string) bool {
	return emailRegex.MatchString(strings.TrimSpace(val))
}

// ValidPhone validates a phone number structure.
func ValidPhone(val string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(val))
}

// ValidName requires at least 2 non-whitespace characters after trimming.
func ValidName(val string) bool {
	return len(strings.TrimSpace(val)) >= 2
}

// ValidExperience accepts any string parsing to a number >= 0.
func ValidExperience(val string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	return err == nil && f >= 0
}

// ValidExperienceValue is the numeric form of ValidExperience.
func ValidExperienceValue(years float64) bool {
	return years >= 0
}
