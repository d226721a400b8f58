package session

import "time"

type ConsoleSession struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Token      string    `gorm:"column:token;not null"`
	Role       string    `gorm:"column:role"`
	EmployeeID string    `gorm:"column:employee_id"`
	ExpiresAt  time.Time `gorm:"column:expires_at;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ConsoleSession) TableName() string {
	return "console_sessions"
}
