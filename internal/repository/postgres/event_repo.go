package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"invy/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, slug, title, description, starts_at, location_text, location_url,
		organizer_email, theme, admin_secret, owner_user_id, notify_on_rsvp, plan_tier,
		created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `
		INSERT INTO events (id, slug, title, description, starts_at, location_text, location_url,
			organizer_email, theme, admin_secret, owner_user_id, notify_on_rsvp, plan_tier,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Slug, e.Title, e.Description, e.StartsAt, e.LocationText, e.LocationURL,
		e.OrganizerEmail, e.Theme, e.AdminSecret, e.OwnerUserID, e.NotifyOnRsvp, e.PlanTier,
		e.CreatedAt, e.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	return err
}

func scanEvent(row interface {
	Scan(dest ...any) error
}) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, urlNull, ownerNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Slug, &e.Title, &descNull, &e.StartsAt, &e.LocationText, &urlNull,
		&e.OrganizerEmail, &e.Theme, &e.AdminSecret, &ownerNull, &e.NotifyOnRsvp, &e.PlanTier,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if urlNull.Valid {
		e.LocationURL = &urlNull.String
	}
	if ownerNull.Valid {
		e.OwnerUserID = &ownerNull.String
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) GetByAdminSecret(ctx context.Context, adminSecret string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE admin_secret = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, adminSecret))
}

func (r *eventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *eventRepository) Update(ctx context.Context, eventID string, params domain.UpdateEventParams) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if params.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *params.Title)
		n++
	}
	if params.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *params.Description)
		n++
	}
	if params.StartsAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("starts_at = $%d", n))
		args = append(args, *params.StartsAt)
		n++
	}
	if params.LocationText != nil {
		setClauses = append(setClauses, fmt.Sprintf("location_text = $%d", n))
		args = append(args, *params.LocationText)
		n++
	}
	if params.LocationURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("location_url = $%d", n))
		args = append(args, *params.LocationURL)
		n++
	}
	if params.Theme != nil {
		setClauses = append(setClauses, fmt.Sprintf("theme = $%d", n))
		args = append(args, *params.Theme)
		n++
	}
	if params.NotifyOnRsvp != nil {
		setClauses = append(setClauses, fmt.Sprintf("notify_on_rsvp = $%d", n))
		args = append(args, *params.NotifyOnRsvp)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	return scanEvent(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *eventRepository) Claim(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	// The owner_user_id IS NULL guard keeps the null-to-set transition
	// one-way even under concurrent claim attempts.
	query := `
		UPDATE events SET owner_user_id = $1, updated_at = NOW()
		WHERE id = $2 AND owner_user_id IS NULL
		RETURNING ` + eventColumns
	return scanEvent(r.DB.QueryRowContext(ctx, query, userID, eventID))
}

func (r *eventRepository) listEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE owner_user_id = $1 ORDER BY starts_at DESC`
	return r.listEvents(ctx, query, ownerID)
}

func (r *eventRepository) ListClaimable(ctx context.Context, organizerEmail string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE lower(organizer_email) = lower($1) AND owner_user_id IS NULL
		ORDER BY created_at DESC`
	return r.listEvents(ctx, query, organizerEmail)
}

func (r *eventRepository) Search(ctx context.Context, query string, limit int) ([]*domain.EventRef, error) {
	q := `
		SELECT id, slug, title
		FROM events
		WHERE slug ILIKE $1 OR title ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make([]*domain.EventRef, 0)
	for rows.Next() {
		ref := &domain.EventRef{}
		if err := rows.Scan(&ref.ID, &ref.Slug, &ref.Title); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *eventRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listEvents(ctx, query, p.PageSize, p.Offset())
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}
