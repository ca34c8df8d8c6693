package domain

import "context"

// Extractor converts one free-text user message into a sparse profile
// update. An empty update means "no information found", not an error.
// Implementations must never guess: only fields the message clearly
// states are returned.
type Extractor interface {
	Extract(ctx context.Context, message string, step Step) (ProfileUpdate, error)
}

// QuestionGenerator produces the per-technology screening question set
// from the serialized tech stack. Failures are absorbed by the caller
// through the deterministic fallback generator.
type QuestionGenerator interface {
	Generate(ctx context.Context, techStackJSON string) (*QuestionSet, error)
}

// ReplyContext carries everything the reply adapter may use to phrase a
// conversational answer.
type ReplyContext struct {
	Message       string
	History       string
	CandidateJSON string
	MissingFields []string
}

// ReplyGenerator phrases an assistant reply for off-script turns. Callers
// substitute a fixed apology when it fails.
type ReplyGenerator interface {
	Reply(ctx context.Context, rc ReplyContext) (string, error)
}

// SentimentClassifier labels a user message. Callers substitute "neutral"
// when it fails.
type SentimentClassifier interface {
	Classify(ctx context.Context, message string) (Sentiment, error)
}

// RateLimiter gates adapter calls, keyed per adapter name.
type RateLimiter interface {
	Allow(key string) bool
}
