package session

import (
	"time"

	sessionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/session"
)

type Role string

const RoleAdmin Role = "ADMIN"

// Session is the server-side copy of what the login flow hands over: the bearer
// token for the employee service, the caller's role and their own employee id.
type Session struct {
	ID         string    `json:"-"`
	Token      string    `json:"-"`
	Role       Role      `json:"role"`
	EmployeeID string    `json:"employeeId,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s *Session) HasToken() bool {
	return s.Token != ""
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func ToDataModel(s *Session) *sessionDatamodel.ConsoleSession {
	return &sessionDatamodel.ConsoleSession{
		ID:         s.ID,
		Token:      s.Token,
		Role:       string(s.Role),
		EmployeeID: s.EmployeeID,
		ExpiresAt:  s.ExpiresAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func FromDataModel(s *sessionDatamodel.ConsoleSession) *Session {
	return &Session{
		ID:         s.ID,
		Token:      s.Token,
		Role:       Role(s.Role),
		EmployeeID: s.EmployeeID,
		ExpiresAt:  s.ExpiresAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
