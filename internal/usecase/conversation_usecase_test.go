package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/internal/repository/memory"
	"go-talentscout-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Adapters and Repositories

type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) Store(ctx context.Context, candidate *domain.Candidate, questions *domain.QuestionSet) (string, error) {
	args := m.Called(ctx, candidate, questions)
	return args.String(0), args.Error(1)
}

func (m *MockRecordRepo) Load(ctx context.Context, candidateID string) (*domain.CandidateRecord, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateRecord), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, message string, step domain.Step) (domain.ProfileUpdate, error) {
	args := m.Called(ctx, message, step)
	return args.Get(0).(domain.ProfileUpdate), args.Error(1)
}

type MockQuestionGen struct {
	mock.Mock
}

func (m *MockQuestionGen) Generate(ctx context.Context, techStackJSON string) (*domain.QuestionSet, error) {
	args := m.Called(ctx, techStackJSON)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestionSet), args.Error(1)
}

func f64(v float64) *float64 { return &v }

// newTestUsecase wires the usecase with an in-memory session store and
// starts one session, returning its id.
func newTestUsecase(t *testing.T, extractor domain.Extractor, records domain.CandidateRepository, qgen domain.QuestionGenerator) (domain.ConversationUsecase, string) {
	t.Helper()
	uc := usecase.NewConversationUsecase(usecase.Deps{
		Sessions:    memory.NewSessionRepository(),
		Records:     records,
		Extractor:   extractor,
		QuestionGen: qgen,
	})
	res, err := uc.StartSession(context.Background())
	require.NoError(t, err)
	return uc, res.SessionID
}

func TestStartSession(t *testing.T) {
	uc, _ := newTestUsecase(t, new(MockExtractor), new(MockRecordRepo), nil)

	res, err := uc.StartSession(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, domain.StepCollectInfo, res.Step)
	assert.Equal(t, 10, res.Progress)
	assert.Equal(t, domain.StepGreeting.Prompt(), res.Reply)
}

func TestFullScreeningFlow(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	records := new(MockRecordRepo)
	uc, id := newTestUsecase(t, extractor, records, nil)

	contact := "My name is Jane Doe, email jane@example.com, phone +1 415 555 0199"
	extractor.On("Extract", mock.Anything, contact, domain.StepCollectInfo).
		Return(domain.ProfileUpdate{FullName: "Jane Doe", Email: "jane@example.com", Phone: "+1 415 555 0199"}, nil)
	extractor.On("Extract", mock.Anything, "I have about 5 years of experience", domain.StepCollectExperience).
		Return(domain.ProfileUpdate{}, nil) // regex fallback fills the years
	extractor.On("Extract", mock.Anything, "Backend Engineer", domain.StepCollectPositions).
		Return(domain.ProfileUpdate{DesiredPositions: []string{"Backend Engineer"}}, nil)
	extractor.On("Extract", mock.Anything, "Jakarta, Indonesia", domain.StepCollectLocation).
		Return(domain.ProfileUpdate{CurrentLocation: "Jakarta, Indonesia"}, nil)
	extractor.On("Extract", mock.Anything, "I work with Go and PostgreSQL", domain.StepCollectTechStack).
		Return(domain.ProfileUpdate{TechStack: domain.TechStack{
			"programming_languages": {"Go"},
			"databases":             {"PostgreSQL"},
		}}, nil)

	res, err := uc.HandleMessage(ctx, id, contact)
	require.NoError(t, err)
	assert.Equal(t, domain.StepCollectExperience, res.Step)
	assert.Equal(t, 25, res.Progress)
	assert.Equal(t, domain.StepCollectExperience.Prompt(), res.Reply)

	res, err = uc.HandleMessage(ctx, id, "I have about 5 years of experience")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCollectPositions, res.Step)

	snap, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, snap.Candidate.YearsExperience)
	assert.Equal(t, 5.0, *snap.Candidate.YearsExperience)

	res, err = uc.HandleMessage(ctx, id, "Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCollectLocation, res.Step)

	res, err = uc.HandleMessage(ctx, id, "Jakarta, Indonesia")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCollectTechStack, res.Step)

	// Tech stack completes collection: fallback questions (no generator
	// wired) and the first question in one reply.
	res, err = uc.HandleMessage(ctx, id, "I work with Go and PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, domain.StepAskQuestions, res.Step)
	assert.Equal(t, 95, res.Progress)
	assert.Contains(t, res.Reply, "Let's start with **Go**")
	assert.Contains(t, res.Reply, "Describe your experience with Go.")

	// 2 topics x 4 fallback questions. Answers 1-3 stay on Go, answer 4
	// rolls over to PostgreSQL, answer 8 concludes.
	for i := 0; i < 3; i++ {
		res, err = uc.HandleMessage(ctx, id, "an answer about Go")
		require.NoError(t, err)
		assert.Contains(t, res.Reply, "Next question about **Go**")
	}

	res, err = uc.HandleMessage(ctx, id, "last Go answer")
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "Thank you for your answer about Go!")
	assert.Contains(t, res.Reply, "**PostgreSQL**")

	for i := 0; i < 3; i++ {
		res, err = uc.HandleMessage(ctx, id, "an answer about PostgreSQL")
		require.NoError(t, err)
		assert.Contains(t, res.Reply, "**PostgreSQL**")
		assert.Equal(t, domain.StepAskQuestions, res.Step)
	}

	res, err = uc.HandleMessage(ctx, id, "final answer")
	require.NoError(t, err)
	assert.Equal(t, domain.StepConclusion, res.Step)
	assert.Equal(t, 100, res.Progress)
	assert.Equal(t, domain.StepConclusion.Prompt(), res.Reply)

	// Conclusion is terminal.
	res, err = uc.HandleMessage(ctx, id, "anything else?")
	require.NoError(t, err)
	assert.Equal(t, domain.StepConclusion, res.Step)
	assert.Equal(t, domain.StepConclusion.Prompt(), res.Reply)

	extractor.AssertExpectations(t)
}

func TestCollectInfoPartiallyMissing(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

	extractor.On("Extract", mock.Anything, "hello there", domain.StepCollectInfo).
		Return(domain.ProfileUpdate{}, nil).Once()
	extractor.On("Extract", mock.Anything, "I'm Jane, jane@example.com", domain.StepCollectInfo).
		Return(domain.ProfileUpdate{FullName: "Jane", Email: "jane@example.com"}, nil).Once()

	// Nothing extracted yet re-asks with the full step prompt.
	res, err := uc.HandleMessage(ctx, id, "hello there")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCollectInfo.Prompt(), res.Reply)

	res, err = uc.HandleMessage(ctx, id, "I'm Jane, jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCollectInfo, res.Step)
	assert.Equal(t, "Thank you! I still need your phone number. Could you please provide that?", res.Reply)
}

func TestExitKeywordOverride(t *testing.T) {
	ctx := context.Background()

	t.Run("exit word concludes from any step and stores", func(t *testing.T) {
		records := new(MockRecordRepo)
		records.On("Store", mock.Anything, mock.Anything, mock.Anything).Return("", nil).Once()
		uc, id := newTestUsecase(t, new(MockExtractor), records, nil)

		res, err := uc.HandleMessage(ctx, id, "I want to quit now")
		require.NoError(t, err)
		assert.Equal(t, domain.StepConclusion, res.Step)
		assert.Equal(t, 100, res.Progress)
		assert.Empty(t, res.SavedID) // no consent, repo stored nothing
		records.AssertExpectations(t)
	})

	t.Run("consented exit reports the saved record id", func(t *testing.T) {
		records := new(MockRecordRepo)
		records.On("Store", mock.Anything, mock.Anything, mock.Anything).Return("rec-123", nil).Once()
		uc, id := newTestUsecase(t, new(MockExtractor), records, nil)

		require.NoError(t, uc.SetConsent(ctx, id, true))
		res, err := uc.HandleMessage(ctx, id, "bye")
		require.NoError(t, err)
		assert.Equal(t, "rec-123", res.SavedID)
	})

	t.Run("keywords only match whole words", func(t *testing.T) {
		extractor := new(MockExtractor)
		extractor.On("Extract", mock.Anything, mock.Anything, domain.StepCollectInfo).
			Return(domain.ProfileUpdate{}, nil)
		uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

		res, err := uc.HandleMessage(ctx, id, "I'm quite interested, nothing is stopping me")
		require.NoError(t, err)
		assert.Equal(t, domain.StepCollectInfo, res.Step)
	})

	t.Run("repeated exit words store at most once", func(t *testing.T) {
		records := new(MockRecordRepo)
		records.On("Store", mock.Anything, mock.Anything, mock.Anything).Return("rec-7", nil).Once()
		uc, id := newTestUsecase(t, new(MockExtractor), records, nil)

		require.NoError(t, uc.SetConsent(ctx, id, true))
		res, err := uc.HandleMessage(ctx, id, "bye")
		require.NoError(t, err)
		assert.Equal(t, "rec-7", res.SavedID)

		// Another goodbye at conclusion must not append a second record.
		res, err = uc.HandleMessage(ctx, id, "bye")
		require.NoError(t, err)
		assert.Equal(t, domain.StepConclusion, res.Step)
		assert.Empty(t, res.SavedID)
		records.AssertExpectations(t)
	})

	t.Run("failed store on exit warns but still concludes", func(t *testing.T) {
		records := new(MockRecordRepo)
		records.On("Store", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("disk full")).Once()
		uc, id := newTestUsecase(t, new(MockExtractor), records, nil)

		res, err := uc.HandleMessage(ctx, id, "goodbye")
		require.NoError(t, err)
		assert.Equal(t, domain.StepConclusion, res.Step)
		assert.NotEmpty(t, res.Warnings)
	})
}

func TestExtractionErrorReset(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

	extractor.On("Extract", mock.Anything, "garbled", domain.StepCollectInfo).
		Return(domain.ProfileUpdate{}, domain.ErrExtraction)
	extractor.On("Extract", mock.Anything, "I'm Jane", domain.StepCollectInfo).
		Return(domain.ProfileUpdate{FullName: "Jane"}, nil)

	// Three consecutive failures are tolerated.
	for i := 0; i < 3; i++ {
		res, err := uc.HandleMessage(ctx, id, "garbled")
		require.NoError(t, err)
		assert.False(t, res.WasReset)
		assert.Equal(t, domain.StepCollectInfo, res.Step)
	}

	// A success resets the counter, so three more failures still pass.
	res, err := uc.HandleMessage(ctx, id, "I'm Jane")
	require.NoError(t, err)
	assert.False(t, res.WasReset)

	for i := 0; i < 3; i++ {
		res, err = uc.HandleMessage(ctx, id, "garbled")
		require.NoError(t, err)
		assert.False(t, res.WasReset)
	}

	// The fourth consecutive failure wipes the session.
	res, err = uc.HandleMessage(ctx, id, "garbled")
	require.NoError(t, err)
	assert.True(t, res.WasReset)
	assert.Equal(t, domain.StepGreeting, res.Step)
	assert.Equal(t, 0, res.Progress)
	assert.Equal(t, "Too many errors. Please start over.", res.Reply)

	snap, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, snap.Candidate.FullName)
	assert.Equal(t, 0, snap.ErrorCount)

	// The next message re-greets and resumes collection.
	res, err = uc.HandleMessage(ctx, id, "ok, starting over")
	require.NoError(t, err)
	assert.Equal(t, domain.StepGreeting.Prompt(), res.Reply)
	assert.Equal(t, domain.StepCollectInfo, res.Step)
}

func TestRateLimitedTurnLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

	extractor.On("Extract", mock.Anything, "hello", domain.StepCollectInfo).
		Return(domain.ProfileUpdate{}, domain.ErrRateLimited).Once()

	res, err := uc.HandleMessage(ctx, id, "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCollectInfo, res.Step)
	assert.Contains(t, res.Reply, "too quickly")

	snap, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.ErrorCount)
	assert.Equal(t, domain.StepCollectInfo, snap.Step)
}

func TestInvalidFieldsDroppedWithWarnings(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

	extractor.On("Extract", mock.Anything, mock.Anything, domain.StepCollectInfo).
		Return(domain.ProfileUpdate{
			FullName:        "Jane Doe",
			Email:           "not-an-email",
			Phone:           "123",
			YearsExperience: f64(-3),
		}, nil).Once()

	res, err := uc.HandleMessage(ctx, id, "contact details")
	require.NoError(t, err)
	assert.Contains(t, res.Warnings, "Please provide a valid email address.")
	assert.Contains(t, res.Warnings, "Please provide a valid phone number.")
	assert.Contains(t, res.Warnings, "Please provide a valid years of experience.")

	snap, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", snap.Candidate.FullName)
	assert.Empty(t, snap.Candidate.Email)
	assert.Nil(t, snap.Candidate.YearsExperience)
}

func TestOversizedMessageCountsAsFailure(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}

	res, err := uc.HandleMessage(ctx, id, string(long))
	require.NoError(t, err)
	assert.Contains(t, res.Warnings, "Your message was too long to process. Please keep it brief.")

	snap, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ErrorCount)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestGeneratorFailureFallsBackToTemplates(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	qgen := new(MockQuestionGen)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), qgen)

	// The first extraction fills everything except the tech stack; the
	// profile is complete, so each following turn advances one phase.
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{
			FullName:         "Jane Doe",
			Email:            "jane@example.com",
			Phone:            "+1 415 555 0199",
			YearsExperience:  f64(4),
			DesiredPositions: []string{"SRE"},
			CurrentLocation:  "Berlin",
		}, nil).Once()
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{}, nil).Times(3)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{TechStack: domain.TechStack{"tools": {"Docker"}}}, nil).Once()
	qgen.On("Generate", mock.Anything, mock.Anything).
		Return(nil, domain.ErrGeneration).Once()

	var res *domain.TurnResult
	var err error
	for _, msg := range []string{"everything at once", "ok", "ok", "ok"} {
		res, err = uc.HandleMessage(ctx, id, msg)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.StepCollectTechStack, res.Step)

	res, err = uc.HandleMessage(ctx, id, "just Docker")
	require.NoError(t, err)
	assert.Equal(t, domain.StepAskQuestions, res.Step)
	assert.Contains(t, res.Reply, "**Docker**")
	qgen.AssertExpectations(t)
}

func TestGeneratorEmptyTopicsArePruned(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	qgen := new(MockQuestionGen)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), qgen)

	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{
			FullName:         "Jane Doe",
			Email:            "jane@example.com",
			Phone:            "+1 415 555 0199",
			YearsExperience:  f64(4),
			DesiredPositions: []string{"SRE"},
			CurrentLocation:  "Berlin",
		}, nil).Once()
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{}, nil).Times(3)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{TechStack: domain.TechStack{"tools": {"Docker", "Kubernetes"}}}, nil).Once()

	// The generator hands back a topic with no questions in the middle.
	qgen.On("Generate", mock.Anything, mock.Anything).
		Return(&domain.QuestionSet{Topics: []domain.Topic{
			{Name: "Docker", Questions: []string{"How do multi-stage builds work?"}},
			{Name: "Compose"},
			{Name: "Kubernetes", Questions: []string{"What is a rolling update?"}},
		}}, nil).Once()

	var res *domain.TurnResult
	var err error
	for _, msg := range []string{"everything at once", "ok", "ok", "ok", "Docker and Kubernetes"} {
		res, err = uc.HandleMessage(ctx, id, msg)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.StepAskQuestions, res.Step)
	assert.Contains(t, res.Reply, "**Docker**")
	assert.Contains(t, res.Reply, "How do multi-stage builds work?")

	// The questionless topic never surfaces: the next reply jumps straight
	// to Kubernetes with a real question.
	res, err = uc.HandleMessage(ctx, id, "an answer about Docker")
	require.NoError(t, err)
	assert.NotContains(t, res.Reply, "Compose")
	assert.Contains(t, res.Reply, "**Kubernetes**")
	assert.Contains(t, res.Reply, "What is a rolling update?")

	res, err = uc.HandleMessage(ctx, id, "an answer about Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, domain.StepConclusion, res.Step)
}

func TestSnapshotConcurrentWithTurns(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{}, nil)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

	// Turns and snapshots of one session must serialize on the session
	// lock; run them side by side and let the race detector judge.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := uc.HandleMessage(ctx, id, "hello")
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := uc.Snapshot(ctx, id)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestSaveRequiresSessionAndWrapsStoreErrors(t *testing.T) {
	ctx := context.Background()
	records := new(MockRecordRepo)
	uc, id := newTestUsecase(t, new(MockExtractor), records, nil)

	t.Run("unknown session", func(t *testing.T) {
		_, err := uc.Save(ctx, "no-such-session")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("store failure maps to persistence error", func(t *testing.T) {
		records.On("Store", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("connection refused")).Once()
		_, err := uc.Save(ctx, id)
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})

	t.Run("successful store returns the record id", func(t *testing.T) {
		records.On("Store", mock.Anything, mock.Anything, mock.Anything).
			Return("rec-9", nil).Once()
		savedID, err := uc.Save(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "rec-9", savedID)
	})
}

func TestResetClearsProfile(t *testing.T) {
	ctx := context.Background()
	extractor := new(MockExtractor)
	uc, id := newTestUsecase(t, extractor, new(MockRecordRepo), nil)

	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfileUpdate{FullName: "Jane Doe", Email: "jane@example.com", Phone: "+1 415 555 0199"}, nil).Once()

	_, err := uc.HandleMessage(ctx, id, "my details")
	require.NoError(t, err)

	require.NoError(t, uc.Reset(ctx, id))
	snap, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepGreeting, snap.Step)
	assert.Empty(t, snap.Candidate.FullName)
	assert.False(t, snap.Candidate.ConsentToStore)
}

func TestDeleteDiscardsSession(t *testing.T) {
	ctx := context.Background()
	uc, id := newTestUsecase(t, new(MockExtractor), new(MockRecordRepo), nil)

	require.NoError(t, uc.Delete(ctx, id))

	_, err := uc.Snapshot(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, id), domain.ErrSessionNotFound)
}

func TestHandleMessageUnknownSession(t *testing.T) {
	uc, _ := newTestUsecase(t, new(MockExtractor), new(MockRecordRepo), nil)
	_, err := uc.HandleMessage(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
