package postgres

import (
	"context"
	"errors"
	"time"

	sessionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/session"
	"github.com/frahmantamala/employee-admin/internal/session"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.RepositoryAPI {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByID(id string) (*sessionDatamodel.ConsoleSession, error) {
	var s sessionDatamodel.ConsoleSession
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Create(s *sessionDatamodel.ConsoleSession) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&sessionDatamodel.ConsoleSession{}).Error
}

func (r *SessionRepository) ListExpired(before time.Time) ([]*sessionDatamodel.ConsoleSession, error) {
	var sessions []*sessionDatamodel.ConsoleSession
	err := r.db.Where("expires_at <= ?", before).Order("expires_at ASC").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
