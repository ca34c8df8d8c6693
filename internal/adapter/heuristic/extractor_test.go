package heuristic_test

import (
	"context"
	"testing"

	"go-talentscout-backend/internal/adapter/heuristic"
	"go-talentscout-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContactDetails(t *testing.T) {
	e := heuristic.NewExtractor()

	u, err := e.Extract(context.Background(), "Jane Doe jane@example.com +1 415 555 0199", domain.StepCollectInfo)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.FullName)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NotEmpty(t, u.Phone)
}

func TestExtractPhoneOnlyOnContactStep(t *testing.T) {
	e := heuristic.NewExtractor()

	// A resume date range looks like a phone number to the digit regex;
	// outside collect_info it must not be read as one.
	u, err := e.Extract(context.Background(), "I worked from 2015 - 2020 at CompanyX", domain.StepCollectExperience)
	require.NoError(t, err)
	assert.Empty(t, u.Phone)

	u, err = e.Extract(context.Background(), "reach me at +1 415 555 0199", domain.StepCollectInfo)
	require.NoError(t, err)
	assert.Equal(t, "+1 415 555 0199", u.Phone)
}

func TestExtractExperience(t *testing.T) {
	e := heuristic.NewExtractor()

	u, err := e.Extract(context.Background(), "I have 6 years of experience", domain.StepCollectExperience)
	require.NoError(t, err)
	require.NotNil(t, u.YearsExperience)
	assert.Equal(t, 6.0, *u.YearsExperience)

	u, err = e.Extract(context.Background(), "quite a while", domain.StepCollectExperience)
	require.NoError(t, err)
	assert.Nil(t, u.YearsExperience)
}

func TestExtractPositionsSplitsList(t *testing.T) {
	e := heuristic.NewExtractor()

	u, err := e.Extract(context.Background(), "Backend Engineer, SRE and Platform Engineer", domain.StepCollectPositions)
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend Engineer", "SRE", "Platform Engineer"}, u.DesiredPositions)
}

func TestExtractLocationTakesWholeMessage(t *testing.T) {
	e := heuristic.NewExtractor()

	u, err := e.Extract(context.Background(), "  Jakarta, Indonesia  ", domain.StepCollectLocation)
	require.NoError(t, err)
	assert.Equal(t, "Jakarta, Indonesia", u.CurrentLocation)
}

func TestExtractTechStackAnyStep(t *testing.T) {
	e := heuristic.NewExtractor()

	u, err := e.Extract(context.Background(), "mostly go, postgresql and docker", domain.StepCollectTechStack)
	require.NoError(t, err)
	require.NotNil(t, u.TechStack)
	assert.Contains(t, u.TechStack["programming_languages"], "go")
	assert.Contains(t, u.TechStack["databases"], "postgresql")
	assert.Contains(t, u.TechStack["tools"], "docker")
}
