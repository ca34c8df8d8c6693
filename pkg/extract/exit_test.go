package extract_test

import (
	"testing"

	"go-talentscout-backend/pkg/extract"

	"github.com/stretchr/testify/assert"
)

func TestContainsExit(t *testing.T) {
	triggers := []string{
		"bye",
		"BYE",
		"ok, goodbye!",
		"I quit",
		"please stop now",
		"exit",
		"this is the end.",
	}
	for _, text := range triggers {
		assert.True(t, extract.ContainsExit(text), text)
	}

	nonTriggers := []string{
		"",
		"thanks for the questions",
		"ending the call soon", // "ending" is not "end"
		"my email is quitter@example.com",
		"the bus stops here", // "stops" is not "stop"
		"goodbyes are hard",
	}
	for _, text := range nonTriggers {
		assert.False(t, extract.ContainsExit(text), text)
	}
}
