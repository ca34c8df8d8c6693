package domain

import (
	"context"
	"time"
)

// TurnResult is what one user turn produces at the session boundary: the
// reply text plus the updated step name and progress for the UI.
type TurnResult struct {
	SessionID string    `json:"session_id"`
	Reply     string    `json:"reply"`
	Step      Step      `json:"step"`
	Progress  int       `json:"progress"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
	SavedID   string    `json:"saved_id,omitempty"`
	WasReset  bool      `json:"was_reset,omitempty"`
}

// SessionSnapshot is the read-only dashboard view of a session.
type SessionSnapshot struct {
	SessionID     string    `json:"session_id"`
	Candidate     Candidate `json:"candidate"`
	Step          Step      `json:"step"`
	Progress      int       `json:"progress"`
	MissingFields []string  `json:"missing_fields,omitempty"`
	ErrorCount    int       `json:"error_count"`
	LastActivity  time.Time `json:"last_activity,omitempty"`
}

type ConversationUsecase interface {
	// StartSession creates a fresh session and returns the greeting turn.
	StartSession(ctx context.Context) (*TurnResult, error)
	// HandleMessage runs one full turn: extraction, merge, transition,
	// reply. Exactly one state transition per call.
	HandleMessage(ctx context.Context, sessionID, message string) (*TurnResult, error)
	// SetConsent toggles the storage consent flag on the profile.
	SetConsent(ctx context.Context, sessionID string, consent bool) error
	// Save persists the consented profile immediately ("explicit save").
	// Returns an empty id without error when consent is absent.
	Save(ctx context.Context, sessionID string) (string, error)
	// Reset returns the session to its initial empty state.
	Reset(ctx context.Context, sessionID string) error
	// Delete discards the session entirely. Nothing is persisted.
	Delete(ctx context.Context, sessionID string) error
	Snapshot(ctx context.Context, sessionID string) (*SessionSnapshot, error)
}
