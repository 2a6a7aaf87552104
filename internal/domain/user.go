package domain

import (
	"context"
	"time"
)

// PlanTier is a feature-gating level attached to both users and events.
type PlanTier string

const (
	TierFree     PlanTier = "free"
	TierPro      PlanTier = "pro"
	TierBusiness PlanTier = "business"
)

// tierRank orders tiers for the max-of-owner-and-event rule.
var tierRank = map[PlanTier]int{
	TierFree:     0,
	TierPro:      1,
	TierBusiness: 2,
}

// Valid reports whether t is one of the known tiers.
func (t PlanTier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// Rank returns the ordering index of t (free < pro < business).
// Unknown tiers rank as free.
func (t PlanTier) Rank() int {
	return tierRank[t]
}

// MaxTier returns the higher of a and b.
func MaxTier(a, b PlanTier) PlanTier {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// UserRole is an application role.
type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleSuperAdmin UserRole = "superadmin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleSuperAdmin
}

// User is an identity record, created lazily on first authenticated request.
// Users are never hard-deleted.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PlanTier  PlanTier  `json:"plan_tier"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser returns a User with defaults applied. ID is set by the repository on create.
func NewUser(email string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		PlanTier:  TierFree,
		Role:      RoleUser,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// UserRef is the trimmed user shape returned from search and listing endpoints.
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateRole(ctx context.Context, userID string, role UserRole) (*User, error)
	UpdatePlanTier(ctx context.Context, userID string, tier PlanTier) (*User, error)
	SearchByEmail(ctx context.Context, query string, limit int) ([]*UserRef, error)
	List(ctx context.Context, p PaginationParams) ([]*User, error)
	Count(ctx context.Context) (int, error)
}

// UserService defines identity resolution and superadmin user management.
type UserService interface {
	// GetOrCreate resolves the user record for an authenticated identity,
	// creating it on first sight and re-pinning the configured superadmin
	// email to the superadmin role on every call.
	GetOrCreate(ctx context.Context, id, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePlanTier(ctx context.Context, actor *User, userID string, tier PlanTier) (*User, error)
	UpdateRole(ctx context.Context, actor *User, userID string, role UserRole) (*User, error)
}
