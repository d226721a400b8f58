package session

import (
	"context"
	"sync"
	"time"

	sessionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/session"
)

type RepositoryAPI interface {
	GetByID(id string) (*sessionDatamodel.ConsoleSession, error)
	Create(s *sessionDatamodel.ConsoleSession) error
	Delete(id string) error
	ListExpired(before time.Time) ([]*sessionDatamodel.ConsoleSession, error)
	Ping(ctx context.Context) error
}

// MemoryRepository keeps sessions in process; used when no database is configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]sessionDatamodel.ConsoleSession
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]sessionDatamodel.ConsoleSession)}
}

func (r *MemoryRepository) GetByID(id string) (*sessionDatamodel.ConsoleSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *MemoryRepository) Create(s *sessionDatamodel.ConsoleSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.sessions[s.ID] = *s
	return nil
}

func (r *MemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *MemoryRepository) ListExpired(before time.Time) ([]*sessionDatamodel.ConsoleSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var expired []*sessionDatamodel.ConsoleSession
	for _, s := range r.sessions {
		if !s.ExpiresAt.After(before) {
			s := s
			expired = append(expired, &s)
		}
	}
	return expired, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
