package validation

// FieldLabels maps profile field names to the wording used in user-facing
// prompts and rejection warnings.
var FieldLabels = map[string]string{
	"full_name":           "full name",
	"email":               "email address",
	"phone":               "phone number",
	"years_experience":    "years of experience",
	"desired_positions":   "desired position(s)",
	"current_location":    "current location",
	"tech_stack":          "tech stack",
	"language_preference": "language preference",
}

// Label returns the user-facing name for a field, falling back to the raw
// field name.
func Label(field string) string {
	if l, ok := FieldLabels[field]; ok {
		return l
	}
	return field
}

// RejectionWarning phrases the one-line warning shown when an extracted
// field fails validation and is dropped before merge.
func RejectionWarning(field string) string {
	return "Please provide a valid " + Label(field) + "."
}
