package domain

import (
	"context"
	"time"
)

// LogLevel classifies error log entries.
type LogLevel string

const (
	LogLevelError LogLevel = "error"
	LogLevelWarn  LogLevel = "warn"
	LogLevelInfo  LogLevel = "info"
)

// EmailStatus records the outcome of a send attempt.
type EmailStatus string

const (
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
	EmailBounced EmailStatus = "bounced"
)

// ErrorLog is an append-only operational log entry. Rows are never mutated.
type ErrorLog struct {
	ID        string            `json:"id"`
	Level     LogLevel          `json:"level"`
	Message   string            `json:"message"`
	Context   map[string]string `json:"context"`
	UserID    *string           `json:"user_id"`
	EventID   *string           `json:"event_id"`
	CreatedAt time.Time         `json:"created_at"`
}

// EmailLog is an append-only record of one email send attempt.
type EmailLog struct {
	ID           string      `json:"id"`
	ToEmail      string      `json:"to_email"`
	Subject      string      `json:"subject"`
	Status       EmailStatus `json:"status"`
	ErrorMessage *string     `json:"error_message"`
	EventID      *string     `json:"event_id"`
	UserID       *string     `json:"user_id"`
	CreatedAt    time.Time   `json:"created_at"`
}

// LogRepository defines storage for the two append-only log collections.
// Writers must treat failures as non-fatal: a logging failure never
// propagates to the operation being logged.
type LogRepository interface {
	InsertErrorLog(ctx context.Context, entry *ErrorLog) error
	InsertEmailLog(ctx context.Context, entry *EmailLog) error
	ListErrorLogs(ctx context.Context, limit int) ([]*ErrorLog, error)
	ListEmailLogs(ctx context.Context, limit int) ([]*EmailLog, error)
}
