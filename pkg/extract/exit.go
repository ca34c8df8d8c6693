package extract

import (
	"regexp"
	"strings"
)

// Exit keywords intentionally exclude "thanks"/"thank you" to avoid false
// positives on polite answers.
var exitKeywords = map[string]bool{
	"exit":    true,
	"quit":    true,
	"bye":     true,
	"goodbye": true,
	"stop":    true,
	"end":     true,
}

var wordRegex = regexp.MustCompile(`\b\w+\b`)

// ContainsExit reports whether the user wants to end the conversation.
// Only whole words match: "ending the call" does not trigger on "end".
func ContainsExit(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, word := range wordRegex.FindAllString(t, -1) {
		if exitKeywords[word] {
			return true
		}
	}
	return false
}
