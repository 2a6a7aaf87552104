package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"invy/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (id, email, plan_tier, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Email, u.PlanTier, u.Role, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, plan_tier, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, plan_tier, role, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PlanTier, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	query := `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, plan_tier, role, created_at, updated_at
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, role, userID))
}

func (r *userRepository) UpdatePlanTier(ctx context.Context, userID string, tier domain.PlanTier) (*domain.User, error) {
	query := `
		UPDATE users SET plan_tier = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, plan_tier, role, created_at, updated_at
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, tier, userID))
}

func (r *userRepository) SearchByEmail(ctx context.Context, query string, limit int) ([]*domain.UserRef, error) {
	q := `
		SELECT id, email
		FROM users
		WHERE email ILIKE $1
		ORDER BY email
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make([]*domain.UserRef, 0)
	for rows.Next() {
		ref := &domain.UserRef{}
		if err := rows.Scan(&ref.ID, &ref.Email); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *userRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	query := `
		SELECT id, email, plan_tier, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.PlanTier, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
