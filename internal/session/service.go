package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/core/common/validation"
	"github.com/google/uuid"
)

type Service struct {
	repo      RepositoryAPI
	inspector *TokenInspector
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu        sync.RWMutex
	onRemoved []func(id string)
}

func NewService(repo RepositoryAPI, inspector *TokenInspector, ttl time.Duration, logger *slog.Logger) *Service {
	if inspector == nil {
		inspector = NewTokenInspector("")
	}
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Service{
		repo:      repo,
		inspector: inspector,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// OnRemoved registers a callback run after a session is closed or purged.
func (s *Service) OnRemoved(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRemoved = append(s.onRemoved, fn)
}

// Open stores the hand-off and returns the new session. Role and employee id fall
// back to the token claims when the hand-off leaves them out.
func (s *Service) Open(ctx context.Context, dto HandoffDTO) (*Session, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	claims, err := s.inspector.Inspect(dto.JWTToken)
	if err != nil {
		s.logger.Warn("session hand-off rejected", "error", err)
		if errors.Is(err, ErrTokenExpired) {
			return nil, internal.ErrSessionExpired.WithCause(err)
		}
		return nil, internal.ErrInvalidToken.WithCause(err)
	}

	now := s.now()
	sess := &Session{
		ID:         uuid.NewString(),
		Token:      dto.JWTToken,
		Role:       Role(dto.UserRole),
		EmployeeID: dto.EmployeeID,
		ExpiresAt:  now.Add(s.ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if claims != nil {
		if sess.Role == "" {
			sess.Role = Role(claims.Role)
		}
		if sess.EmployeeID == "" {
			sess.EmployeeID = claims.EmployeeID
		}
		// a verified token is the authority on the role
		if s.inspector.Verifies() && claims.Role != "" {
			sess.Role = Role(claims.Role)
		}
		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(sess.ExpiresAt) {
			sess.ExpiresAt = claims.ExpiresAt.Time
		}
	}

	if err := s.repo.Create(ToDataModel(sess)); err != nil {
		s.logger.Error("failed to store session", "error", err)
		return nil, internal.NewInternalError("failed to open session", err)
	}

	s.logger.Info("session opened", "role", sess.Role, "expires_at", sess.ExpiresAt)
	return sess, nil
}

// Resolve loads a live session. A missing or empty id, an unknown id and an empty
// token all read as ErrSessionMissing.
func (s *Service) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, internal.ErrSessionMissing
	}

	data, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load session", "error", err)
		return nil, internal.NewInternalError("failed to load session", err)
	}
	if data == nil {
		return nil, internal.ErrSessionMissing
	}

	sess := FromDataModel(data)
	if sess.IsExpired(s.now()) {
		if err := s.Close(ctx, id); err != nil {
			s.logger.Warn("failed to drop expired session", "error", err)
		}
		return nil, internal.ErrSessionExpired
	}
	if !sess.HasToken() {
		return nil, internal.ErrSessionMissing
	}

	return sess, nil
}

func (s *Service) Close(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete session", "error", err)
		return err
	}
	s.notifyRemoved(id)
	return nil
}

// PurgeExpired drops every session past its expiry and reports how many went.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.ListExpired(s.now())
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, data := range expired {
		if err := ctx.Err(); err != nil {
			return purged, err
		}
		if err := s.repo.Delete(data.ID); err != nil {
			s.logger.Error("failed to purge session", "error", err)
			continue
		}
		s.notifyRemoved(data.ID)
		purged++
	}

	if purged > 0 {
		s.logger.Info("expired sessions purged", "count", purged)
	}
	return purged, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) notifyRemoved(id string) {
	s.mu.RLock()
	hooks := append([]func(string){}, s.onRemoved...)
	s.mu.RUnlock()

	for _, fn := range hooks {
		fn(id)
	}
}
