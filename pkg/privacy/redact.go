package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// Hash returns a one-way hex digest for a sensitive value. Empty input
// stays empty so optional fields persist as absent.
func Hash(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// RedactPhone keeps only the last four digits for display and logs.
func RedactPhone(phone string) string {
	if phone == "" {
		return phone
	}
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) >= 10 {
		return "***-***-" + digits[len(digits)-4:]
	}
	return "***"
}

// RedactEmail masks both sides of the address.
func RedactEmail(email string) string {
	if email == "" {
		return email
	}
	return "***@***"
}

// RedactName keeps the first name and stars the last.
func RedactName(name string) string {
	if name == "" {
		return name
	}
	parts := strings.Fields(name)
	if len(parts) > 1 {
		return parts[0] + " " + strings.Repeat("*", len(parts[len(parts)-1]))
	}
	return "***"
}
