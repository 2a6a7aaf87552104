package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"invy/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	if rsvp.ID == "" {
		rsvp.ID = uuid.NewString()
	}
	query := `
		INSERT INTO rsvps (id, event_id, name, contact_info, status, plus_one, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		rsvp.ID, rsvp.EventID, rsvp.Name, rsvp.ContactInfo, rsvp.Status, rsvp.PlusOne, rsvp.CreatedAt)
	return err
}

func (r *rsvpRepository) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	query := `
		SELECT id, event_id, name, contact_info, status, plus_one, created_at
		FROM rsvps
		WHERE id = $1
	`
	rsvp := &domain.RSVP{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rsvp.ID, &rsvp.EventID, &rsvp.Name, &rsvp.ContactInfo, &rsvp.Status, &rsvp.PlusOne, &rsvp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *rsvpRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	query := `
		SELECT id, event_id, name, contact_info, status, plus_one, created_at
		FROM rsvps
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, eventID)
}

func (r *rsvpRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM rsvps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rsvpRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.RSVP, error) {
	query := `
		SELECT id, event_id, name, contact_info, status, plus_one, created_at
		FROM rsvps
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, p.PageSize, p.Offset())
}

func (r *rsvpRepository) list(ctx context.Context, query string, args ...any) ([]*domain.RSVP, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp := &domain.RSVP{}
		if err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.Name, &rsvp.ContactInfo,
			&rsvp.Status, &rsvp.PlusOne, &rsvp.CreatedAt); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}

func (r *rsvpRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM rsvps`).Scan(&n)
	return n, err
}
