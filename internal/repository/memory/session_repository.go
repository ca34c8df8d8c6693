package memory

import (
	"context"
	"sync"

	"go-talentscout-backend/internal/domain"
)

// sessionRepository keeps live sessions in process memory. Each session
// carries its own mutex so turns for one session run strictly one at a
// time while independent sessions never contend.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	session *domain.Session
	turnMu  sync.Mutex
}

func NewSessionRepository() domain.SessionRepository {
	return &sessionRepository{sessions: make(map[string]*entry)}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = &entry{session: session}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e.session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Lock serializes turns for one session. Unknown ids get a no-op release
// so callers can lock before existence checks.
func (r *sessionRepository) Lock(id string) func() {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return func() {}
	}
	e.turnMu.Lock()
	return e.turnMu.Unlock
}
