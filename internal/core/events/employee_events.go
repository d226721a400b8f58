package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeAdded  = "employee.added"
	EventTypeSessionRemoved = "session.removed"
)

type EmployeeAddedEvent struct {
	BaseEvent
	Email       string `json:"email"`
	JobTitle    string `json:"job_title"`
	AddedByRole string `json:"added_by_role"`
	TraceID     string `json:"trace_id,omitempty"`
}

func NewEmployeeAddedEvent(email, jobTitle, addedByRole, traceID string) *EmployeeAddedEvent {
	return &EmployeeAddedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeAdded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"email":         email,
				"job_title":     jobTitle,
				"added_by_role": addedByRole,
				"trace_id":      traceID,
			},
		},
		Email:       email,
		JobTitle:    jobTitle,
		AddedByRole: addedByRole,
		TraceID:     traceID,
	}
}

type SessionRemovedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
}

func NewSessionRemovedEvent(sessionID string) *SessionRemovedEvent {
	return &SessionRemovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSessionRemoved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"session_id": sessionID,
			},
		},
		SessionID: sessionID,
	}
}
