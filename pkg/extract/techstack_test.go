package extract_test

import (
	"testing"

	"go-talentscout-backend/pkg/extract"

	"github.com/stretchr/testify/assert"
)

func TestTechStackScan(t *testing.T) {
	stack := extract.TechStack("I use Go and Python with PostgreSQL and Redis, deployed on Docker and Kubernetes")

	assert.ElementsMatch(t, []string{"python", "go"}, stack["programming_languages"])
	assert.ElementsMatch(t, []string{"postgresql", "redis"}, stack["databases"])
	assert.ElementsMatch(t, []string{"docker", "kubernetes"}, stack["tools"])
	assert.Empty(t, stack["frameworks"])
}

func TestTechStackWholeWordsOnly(t *testing.T) {
	// "golang" must not match "go", "reactive" must not match "react".
	stack := extract.TechStack("reactive programming")
	assert.Empty(t, stack["frameworks"])
	assert.Empty(t, stack["programming_languages"])
}

func TestTechStackAlwaysHasAllCategories(t *testing.T) {
	stack := extract.TechStack("nothing technical here")
	for _, cat := range []string{"programming_languages", "frameworks", "databases", "tools"} {
		_, ok := stack[cat]
		assert.True(t, ok, cat)
		assert.Empty(t, stack[cat])
	}
}
