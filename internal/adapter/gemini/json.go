package gemini

import (
	"encoding/json"
	"regexp"
	"strings"
)

var jsonBlockRegex = regexp.MustCompile(`(?s)\{.*\}`)

// decodeJSON parses a model response into v with two salvage passes:
// stripping markdown fences, then regex-extracting the outermost JSON
// block. Returns false when nothing parseable remains; callers treat that
// as "no information", not an error condition of their own.
func decodeJSON(text string, v interface{}) bool {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if json.Unmarshal([]byte(text), v) == nil {
		return true
	}

	if block := jsonBlockRegex.FindString(text); block != "" {
		if json.Unmarshal([]byte(block), v) == nil {
			return true
		}
	}
	return false
}
