package jsonl_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/internal/repository/jsonl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func testCandidate(consent bool) *domain.Candidate {
	return &domain.Candidate{
		FullName:         "Jane Doe",
		Email:            "jane@example.com",
		Phone:            "+1 415 555 0199",
		YearsExperience:  f64(5),
		DesiredPositions: []string{"Backend Engineer"},
		CurrentLocation:  "Jakarta",
		TechStack:        domain.TechStack{"programming_languages": {"Go"}},
		ConsentToStore:   consent,
	}
}

func TestStoreWithoutConsentIsNoop(t *testing.T) {
	dir := t.TempDir()
	repo := jsonl.NewCandidateRepository(dir, 0)

	id, err := repo.Store(context.Background(), testCandidate(false), nil)
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = os.Stat(filepath.Join(dir, "candidates.jsonl"))
	assert.True(t, os.IsNotExist(err))
}

func TestStoreAndLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := jsonl.NewCandidateRepository(dir, 30)

	questions := &domain.QuestionSet{Topics: []domain.Topic{
		{Name: "Go", Questions: []string{"Describe your experience with Go."}},
	}}

	id, err := repo.Store(ctx, testCandidate(true), questions)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := repo.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Jane Doe", record.FullName)
	assert.Equal(t, 5.0, *record.YearsExperience)
	assert.Equal(t, []string{"Backend Engineer"}, record.DesiredPositions)
	require.Len(t, record.Questions, 1)
	assert.Equal(t, "Go", record.Questions[0].Name)

	// Contact details are hashed, never stored in the clear.
	assert.Len(t, record.EmailHash, 64)
	assert.Len(t, record.PhoneHash, 64)

	raw, err := os.ReadFile(filepath.Join(dir, "candidates.jsonl"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "jane@example.com")
	assert.NotContains(t, string(raw), "555 0199")
}

func TestLoadUnknownID(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := jsonl.NewCandidateRepository(dir, 0)

	// No file at all.
	record, err := repo.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, record)

	_, err = repo.Store(ctx, testCandidate(true), nil)
	require.NoError(t, err)

	record, err = repo.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestMultipleRecordsAppend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := jsonl.NewCandidateRepository(dir, 0)

	first, err := repo.Store(ctx, testCandidate(true), nil)
	require.NoError(t, err)
	second, err := repo.Store(ctx, testCandidate(true), nil)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	raw, err := os.ReadFile(filepath.Join(dir, "candidates.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))

	record, err := repo.Load(ctx, second)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, second, record.CandidateID)
}
