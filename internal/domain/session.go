package domain

import (
	"context"
	"time"
)

// Step is one conversation phase. Transitions are one-directional through
// StepOrder except for a full session reset.
type Step string

const (
	StepGreeting          Step = "greeting"
	StepCollectInfo       Step = "collect_info"
	StepCollectExperience Step = "collect_experience"
	StepCollectPositions  Step = "collect_positions"
	StepCollectLocation   Step = "collect_location"
	StepCollectTechStack  Step = "collect_tech_stack"
	StepGenerateQuestions Step = "generate_questions"
	StepAskQuestions      Step = "ask_questions"
	StepConclusion        Step = "conclusion"
)

// StepOrder is the fixed forward order of conversation phases.
var StepOrder = []Step{
	StepGreeting,
	StepCollectInfo,
	StepCollectExperience,
	StepCollectPositions,
	StepCollectLocation,
	StepCollectTechStack,
	StepGenerateQuestions,
	StepAskQuestions,
	StepConclusion,
}

var stepProgress = map[Step]int{
	StepGreeting:          0,
	StepCollectInfo:       10,
	StepCollectExperience: 25,
	StepCollectPositions:  40,
	StepCollectLocation:   55,
	StepCollectTechStack:  70,
	StepGenerateQuestions: 85,
	StepAskQuestions:      95,
	StepConclusion:        100,
}

var stepPrompts = map[Step]string{
	StepGreeting:          "Hello! I'm TalentScout's assistant. I'll collect your basic details and tech stack, then ask a few tailored technical questions. You can type 'bye' to finish anytime.",
	StepCollectInfo:       "Could you please share your full name, email address, and phone number?",
	StepCollectExperience: "Thank you! Now, could you please share your years of experience in the industry?",
	StepCollectPositions:  "Great! What position(s) are you interested in?",
	StepCollectLocation:   "Thank you! What is your current location?",
	StepCollectTechStack:  "Please list your technical stack including programming languages, frameworks, databases, and tools.",
	StepGenerateQuestions: "I'm preparing some technical questions based on your tech stack. This will take just a moment.",
	StepAskQuestions:      "I have some technical questions for you. Let's start with the first technology.",
	StepConclusion:        "Thank you for completing the screening! We'll review your details and reach out about next steps.",
}

// Progress returns the 0-100 completion percentage for the step, monotonic
// across StepOrder.
func (s Step) Progress() int {
	return stepProgress[s]
}

// Prompt returns the step's lead-in prompt text.
func (s Step) Prompt() string {
	return stepPrompts[s]
}

// Terminal reports whether no further collection happens at this step.
func (s Step) Terminal() bool {
	return s == StepConclusion
}

// Turn is one exchange: the user message and the assistant reply.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Sentiment is the per-turn label produced by the sentiment adapter.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Session owns everything one conversation mutates: the profile, the chat
// history, the current step, the question cursor and the extraction error
// counter. A session handles one turn at a time to completion; Mu guards
// against overlapping turns for the same session id.
type Session struct {
	ID           string
	Candidate    Candidate
	History      []Turn
	Questions    *QuestionSet
	Step         Step
	Cursor       Cursor
	ErrorCount   int
	CreatedAt    time.Time
	LastActivity time.Time
}

// NewSession returns a fresh session positioned at the greeting step.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Step:      StepGreeting,
		CreatedAt: now,
	}
}

// Reset returns the session to its initial empty state, keeping only the
// id and creation time. Consent does not survive a reset.
func (s *Session) Reset() {
	s.Candidate = Candidate{}
	s.History = nil
	s.Questions = nil
	s.Step = StepGreeting
	s.Cursor = Cursor{}
	s.ErrorCount = 0
	s.LastActivity = time.Time{}
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// Lock serializes turns for one session; the returned func releases it.
	Lock(id string) func()
}
