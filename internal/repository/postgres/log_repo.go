package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"invy/internal/domain"
)

type logRepository struct {
	DB *sql.DB
}

func NewLogRepository(db *sql.DB) domain.LogRepository {
	return &logRepository{DB: db}
}

func (r *logRepository) InsertErrorLog(ctx context.Context, entry *domain.ErrorLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	var contextJSON any
	if entry.Context != nil {
		b, err := json.Marshal(entry.Context)
		if err != nil {
			return err
		}
		contextJSON = b
	}
	query := `
		INSERT INTO error_logs (id, level, message, context, user_id, event_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID, entry.Level, entry.Message, contextJSON, entry.UserID, entry.EventID, entry.CreatedAt)
	return err
}

func (r *logRepository) InsertEmailLog(ctx context.Context, entry *domain.EmailLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := `
		INSERT INTO email_logs (id, to_email, subject, status, error_message, event_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID, entry.ToEmail, entry.Subject, entry.Status, entry.ErrorMessage,
		entry.EventID, entry.UserID, entry.CreatedAt)
	return err
}

func (r *logRepository) ListErrorLogs(ctx context.Context, limit int) ([]*domain.ErrorLog, error) {
	query := `
		SELECT id, level, message, context, user_id, event_id, created_at
		FROM error_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]*domain.ErrorLog, 0)
	for rows.Next() {
		entry := &domain.ErrorLog{}
		var contextRaw []byte
		var userNull, eventNull sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Level, &entry.Message, &contextRaw,
			&userNull, &eventNull, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(contextRaw) > 0 {
			if err := json.Unmarshal(contextRaw, &entry.Context); err != nil {
				return nil, err
			}
		}
		if userNull.Valid {
			entry.UserID = &userNull.String
		}
		if eventNull.Valid {
			entry.EventID = &eventNull.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *logRepository) ListEmailLogs(ctx context.Context, limit int) ([]*domain.EmailLog, error) {
	query := `
		SELECT id, to_email, subject, status, error_message, event_id, user_id, created_at
		FROM email_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]*domain.EmailLog, 0)
	for rows.Next() {
		entry := &domain.EmailLog{}
		var errNull, eventNull, userNull sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ToEmail, &entry.Subject, &entry.Status,
			&errNull, &eventNull, &userNull, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if errNull.Valid {
			entry.ErrorMessage = &errNull.String
		}
		if eventNull.Valid {
			entry.EventID = &eventNull.String
		}
		if userNull.Valid {
			entry.UserID = &userNull.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
