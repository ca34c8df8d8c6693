package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/pkg/extract"
	"go-talentscout-backend/pkg/logger"
	"go-talentscout-backend/pkg/privacy"
	"go-talentscout-backend/pkg/validation"

	"github.com/google/uuid"
)

// maxConsecutiveErrors is how many extraction failures a session survives
// before it is reset to its initial empty state.
const maxConsecutiveErrors = 3

// historyCompactChars caps the history text handed to the reply adapter.
const historyCompactChars = 3000

const (
	replyApology      = "I'm sorry, I'm having trouble responding right now. Please try again."
	replyRateLimited  = "I'm receiving messages too quickly right now. Please wait a moment and try again."
	replyTooManyError = "Too many errors. Please start over."
	replySaveFailed   = "I couldn't save your record just now. Your session continues; you can try saving again later."
	replyNoQuestions  = "I don't have any questions to ask right now."

	replyAskExperience = "Could you please share your years of experience in the industry? You can provide a summary of your work history if that's easier."
	replyAskPositions  = "What position(s) are you interested in?"
	replyAskLocation   = "What is your current location?"

	warnMessageTooLong = "Your message was too long to process. Please keep it brief."
	warnAnswerTrimmed  = "Your answer was truncated due to length limitations."
)

// Deps wires the conversation usecase. QuestionGen, ReplyGen and Sentiment
// may be nil; their fallbacks cover the gap.
type Deps struct {
	Sessions    domain.SessionRepository
	Records     domain.CandidateRepository
	Extractor   domain.Extractor
	QuestionGen domain.QuestionGenerator
	ReplyGen    domain.ReplyGenerator
	Sentiment   domain.SentimentClassifier

	MaxMessageChars int
	MaxAnswerChars  int
}

type conversationUsecase struct {
	deps Deps
}

func NewConversationUsecase(deps Deps) domain.ConversationUsecase {
	if deps.MaxMessageChars <= 0 {
		deps.MaxMessageChars = 1000
	}
	if deps.MaxAnswerChars <= 0 {
		deps.MaxAnswerChars = 5000
	}
	return &conversationUsecase{deps: deps}
}

func (u *conversationUsecase) StartSession(ctx context.Context) (*domain.TurnResult, error) {
	sess := domain.NewSession(uuid.NewString())

	// The greeting fires once and the conversation immediately sits at
	// collect_info waiting for the first user message.
	greeting := domain.StepGreeting.Prompt()
	sess.History = append(sess.History, domain.Turn{Assistant: greeting})
	sess.Step = domain.StepCollectInfo

	if err := u.deps.Sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	return &domain.TurnResult{
		SessionID: sess.ID,
		Reply:     greeting,
		Step:      sess.Step,
		Progress:  sess.Step.Progress(),
	}, nil
}

func (u *conversationUsecase) HandleMessage(ctx context.Context, sessionID, message string) (*domain.TurnResult, error) {
	unlock := u.deps.Sessions.Lock(sessionID)
	defer unlock()

	sess, err := u.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.LastActivity = time.Now()
	res := &domain.TurnResult{SessionID: sessionID}
	res.Sentiment = u.classify(ctx, message)
	logger.Log.Debug("Turn received", "session_id", sessionID, "step", sess.Step, "sentiment", res.Sentiment)

	// Exit override wins over every step, including ask_questions. Once
	// concluded, further exit words fall through to the terminal reply
	// without storing again.
	if extract.ContainsExit(message) && sess.Step != domain.StepConclusion {
		sess.Step = domain.StepConclusion
		res.Reply = domain.StepConclusion.Prompt()
		u.storeOnExit(ctx, sess, res)
		return u.finishTurn(sess, message, res), nil
	}

	switch sess.Step {
	case domain.StepGreeting:
		// Only reachable right after a reset: re-greet and resume.
		res.Reply = domain.StepGreeting.Prompt()
		sess.Step = domain.StepCollectInfo
	case domain.StepConclusion:
		res.Reply = domain.StepConclusion.Prompt()
	case domain.StepAskQuestions:
		if len(message) > u.deps.MaxAnswerChars {
			message = truncateRunes(message, u.deps.MaxAnswerChars)
			res.Warnings = append(res.Warnings, warnAnswerTrimmed)
		}
		u.answerTurn(sess, message, res)
	default:
		if done := u.collectTurn(ctx, sess, message, res); done {
			return res, nil
		}
	}

	return u.finishTurn(sess, message, res), nil
}

// collectTurn runs extraction, validation, merge and the step transition
// for every collection phase. It returns true when the turn already ended
// (rate limit or forced reset) and nothing further should be recorded.
func (u *conversationUsecase) collectTurn(ctx context.Context, sess *domain.Session, message string, res *domain.TurnResult) bool {
	var update domain.ProfileUpdate
	extractionFailed := false

	if len(message) > u.deps.MaxMessageChars {
		extractionFailed = true
		res.Warnings = append(res.Warnings, warnMessageTooLong)
	} else {
		upd, err := u.deps.Extractor.Extract(ctx, message, sess.Step)
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			// Transient: the turn leaves profile, step and counters alone.
			res.Reply = replyRateLimited
			res.Step = sess.Step
			res.Progress = sess.Step.Progress()
			return true
		case err != nil:
			logger.Log.Error("Extraction failed", "session_id", sess.ID, "error", err)
			extractionFailed = true
		default:
			update = upd
			sess.ErrorCount = 0
		}
	}

	if extractionFailed {
		sess.ErrorCount++
		if sess.ErrorCount > maxConsecutiveErrors {
			sess.Reset()
			res.Reply = replyTooManyError
			res.Step = sess.Step
			res.Progress = sess.Step.Progress()
			res.WasReset = true
			sess.History = append(sess.History, domain.Turn{User: message, Assistant: res.Reply})
			return true
		}
	}

	// Deterministic fallback for the experience phase: the regex extractor
	// only fills the field when the adapter found nothing.
	if sess.Step == domain.StepCollectExperience && update.YearsExperience == nil {
		if years, ok := extract.YearsOfExperience(message); ok && years > 0 {
			update.YearsExperience = &years
		}
	}

	update = u.sanitizeUpdate(update, res)
	sess.Candidate = sess.Candidate.Merge(update)

	res.Reply = u.transition(ctx, sess, message)
	return false
}

// sanitizeUpdate drops fields that fail their format check before merge
// and surfaces each rejection as a one-line warning. Rejections never
// raise.
func (u *conversationUsecase) sanitizeUpdate(update domain.ProfileUpdate, res *domain.TurnResult) domain.ProfileUpdate {
	reject := func(field string) {
		res.Warnings = append(res.Warnings, validation.RejectionWarning(field))
	}

	if update.FullName != "" && !validation.ValidName(update.FullName) {
		update.FullName = ""
		reject("full_name")
	}
	if update.Email != "" && !validation.ValidEmail(update.Email) {
		update.Email = ""
		reject("email")
	}
	if update.Phone != "" && !validation.ValidPhone(update.Phone) {
		update.Phone = ""
		reject("phone")
	}
	if update.YearsExperience != nil && !validation.ValidExperienceValue(*update.YearsExperience) {
		update.YearsExperience = nil
		reject("years_experience")
	}
	return update
}

// transition evaluates the current step's completion predicate against the
// merged profile and either advances to the next phase or re-asks for what
// is still missing.
func (u *conversationUsecase) transition(ctx context.Context, sess *domain.Session, message string) string {
	cand := sess.Candidate

	switch sess.Step {
	case domain.StepCollectInfo:
		missing := missingContactParts(cand)
		if len(missing) == 0 {
			sess.Step = domain.StepCollectExperience
			return domain.StepCollectExperience.Prompt()
		}
		if len(missing) == 3 {
			return domain.StepCollectInfo.Prompt()
		}
		return fmt.Sprintf("Thank you! I still need your %s. Could you please provide that?", strings.Join(missing, ", "))

	case domain.StepCollectExperience:
		if cand.YearsExperience != nil {
			sess.Step = domain.StepCollectPositions
			return domain.StepCollectPositions.Prompt()
		}
		return replyAskExperience

	case domain.StepCollectPositions:
		if len(cand.DesiredPositions) > 0 {
			sess.Step = domain.StepCollectLocation
			return domain.StepCollectLocation.Prompt()
		}
		return replyAskPositions

	case domain.StepCollectLocation:
		if cand.CurrentLocation != "" {
			sess.Step = domain.StepCollectTechStack
			return domain.StepCollectTechStack.Prompt()
		}
		return replyAskLocation

	case domain.StepCollectTechStack:
		if cand.TechStack != nil && !cand.TechStack.Empty() {
			return u.startQuestions(ctx, sess)
		}
		return domain.StepCollectTechStack.Prompt()

	default:
		return u.offScriptReply(ctx, sess, message)
	}
}

// startQuestions fires exactly once, when collect_tech_stack completes:
// it generates the question set (deterministic fallback on any failure),
// resets the cursor and asks the first question.
func (u *conversationUsecase) startQuestions(ctx context.Context, sess *domain.Session) string {
	sess.Step = domain.StepGenerateQuestions

	sess.Questions = u.generateQuestions(ctx, sess.Candidate.TechStack)
	sess.Cursor = domain.Cursor{}
	sess.Step = domain.StepAskQuestions

	topic, question, _ := sess.Cursor.Current(sess.Questions)
	return fmt.Sprintf("I have prepared some technical questions for you. Let's start with **%s**: %s", topic, question)
}

func (u *conversationUsecase) generateQuestions(ctx context.Context, stack domain.TechStack) *domain.QuestionSet {
	payload, _ := json.Marshal(stack.Normalized())

	if u.deps.QuestionGen != nil {
		qs, err := u.deps.QuestionGen.Generate(ctx, string(payload))
		if err == nil {
			qs.Compact()
			if !qs.Empty() {
				return qs
			}
		}
		logger.Log.Warn("Question generation failed, using fallback", "error", err)
	}
	return FallbackQuestions(stack)
}

// answerTurn walks the cursor. The reply names the topic just answered
// before announcing the next question.
func (u *conversationUsecase) answerTurn(sess *domain.Session, message string, res *domain.TurnResult) {
	if sess.Questions.Empty() {
		res.Reply = replyNoQuestions
		return
	}

	answered := sess.Cursor
	answeredTopic, _, _ := answered.Current(sess.Questions)
	next := answered.Advance(sess.Questions)
	sess.Cursor = next

	switch {
	case next.Exhausted(sess.Questions):
		sess.Step = domain.StepConclusion
		res.Reply = domain.StepConclusion.Prompt()
	case next.TopicIndex != answered.TopicIndex:
		nextTopic, nextQuestion, _ := next.Current(sess.Questions)
		res.Reply = fmt.Sprintf("Thank you for your answer about %s! Now let's talk about **%s**: %s", answeredTopic, nextTopic, nextQuestion)
	default:
		_, nextQuestion, _ := next.Current(sess.Questions)
		res.Reply = fmt.Sprintf("Thank you! Next question about **%s**: %s", answeredTopic, nextQuestion)
	}
}

// offScriptReply covers turns the scripted steps do not: the reply adapter
// phrases something contextual, with a fixed apology when it cannot.
func (u *conversationUsecase) offScriptReply(ctx context.Context, sess *domain.Session, message string) string {
	if u.deps.ReplyGen == nil {
		return replyApology
	}

	candJSON, _ := json.Marshal(sess.Candidate)
	reply, err := u.deps.ReplyGen.Reply(ctx, domain.ReplyContext{
		Message:       message,
		History:       compactHistory(sess.History, historyCompactChars),
		CandidateJSON: string(candJSON),
		MissingFields: sess.Candidate.MissingFields(),
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		logger.Log.Warn("Reply generation failed", "session_id", sess.ID, "error", err)
		return replyApology
	}
	return reply
}

func (u *conversationUsecase) classify(ctx context.Context, message string) domain.Sentiment {
	if u.deps.Sentiment == nil {
		return domain.SentimentNeutral
	}
	label, err := u.deps.Sentiment.Classify(ctx, message)
	if err != nil {
		return domain.SentimentNeutral
	}
	return label
}

// storeOnExit persists the consented profile immediately when the exit
// override fires. A failed write warns the user and leaves the session
// unaffected.
func (u *conversationUsecase) storeOnExit(ctx context.Context, sess *domain.Session, res *domain.TurnResult) {
	savedID, err := u.deps.Records.Store(ctx, &sess.Candidate, sess.Questions)
	if err != nil {
		logger.Log.Error("Failed to store candidate record", "session_id", sess.ID, "error", err)
		res.Warnings = append(res.Warnings, replySaveFailed)
		return
	}
	if savedID != "" {
		logger.Log.Info("Candidate record stored",
			"session_id", sess.ID,
			"candidate_id", savedID,
			"name", privacy.RedactName(sess.Candidate.FullName),
		)
		res.SavedID = savedID
	}
}

func (u *conversationUsecase) finishTurn(sess *domain.Session, message string, res *domain.TurnResult) *domain.TurnResult {
	sess.History = append(sess.History, domain.Turn{User: message, Assistant: res.Reply})
	res.Step = sess.Step
	res.Progress = sess.Step.Progress()
	return res
}

func (u *conversationUsecase) SetConsent(ctx context.Context, sessionID string, consent bool) error {
	unlock := u.deps.Sessions.Lock(sessionID)
	defer unlock()

	sess, err := u.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.Candidate.ConsentToStore = consent
	return nil
}

func (u *conversationUsecase) Save(ctx context.Context, sessionID string) (string, error) {
	unlock := u.deps.Sessions.Lock(sessionID)
	defer unlock()

	sess, err := u.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	savedID, err := u.deps.Records.Store(ctx, &sess.Candidate, sess.Questions)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return savedID, nil
}

func (u *conversationUsecase) Reset(ctx context.Context, sessionID string) error {
	unlock := u.deps.Sessions.Lock(sessionID)
	defer unlock()

	sess, err := u.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.Reset()
	return nil
}

func (u *conversationUsecase) Delete(ctx context.Context, sessionID string) error {
	unlock := u.deps.Sessions.Lock(sessionID)
	defer unlock()

	if _, err := u.deps.Sessions.Get(ctx, sessionID); err != nil {
		return err
	}
	return u.deps.Sessions.Delete(ctx, sessionID)
}

func (u *conversationUsecase) Snapshot(ctx context.Context, sessionID string) (*domain.SessionSnapshot, error) {
	unlock := u.deps.Sessions.Lock(sessionID)
	defer unlock()

	sess, err := u.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &domain.SessionSnapshot{
		SessionID:     sess.ID,
		Candidate:     sess.Candidate,
		Step:          sess.Step,
		Progress:      sess.Step.Progress(),
		MissingFields: sess.Candidate.MissingFields(),
		ErrorCount:    sess.ErrorCount,
		LastActivity:  sess.LastActivity,
	}, nil
}

// missingContactParts lists the collect_info sub-fields still absent, in
// prompt order, using user-facing wording.
func missingContactParts(cand domain.Candidate) []string {
	var missing []string
	if cand.FullName == "" {
		missing = append(missing, validation.Label("full_name"))
	}
	if cand.Email == "" {
		missing = append(missing, validation.Label("email"))
	}
	if cand.Phone == "" {
		missing = append(missing, validation.Label("phone"))
	}
	return missing
}

// compactHistory joins the chat transcript and keeps only the trailing
// maxChars to bound the reply prompt.
func compactHistory(history []domain.Turn, maxChars int) string {
	var b strings.Builder
	for i, turn := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("User: ")
		b.WriteString(turn.User)
		b.WriteString("\nAssistant: ")
		b.WriteString(turn.Assistant)
	}
	text := b.String()
	if len(text) > maxChars {
		cut := len(text) - maxChars
		for cut < len(text) && !utf8.RuneStart(text[cut]) {
			cut++
		}
		text = text[cut:]
	}
	return text
}

// truncateRunes cuts s to at most max bytes without splitting a rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
