package domain

import (
	"context"
	"time"
)

// Theme is the visual theme of an event page.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Event is an RSVP-collection page. Slug is the immutable public identifier;
// AdminSecret is a bearer capability token granting management rights over
// exactly this event. AdminSecret is excluded from JSON so it can never leak
// through a response body; callers that legitimately need it (creation
// response, manage links) read the field directly.
type Event struct {
	ID             string     `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	StartsAt       time.Time  `json:"starts_at"`
	LocationText   string     `json:"location_text"`
	LocationURL    *string    `json:"location_url"`
	OrganizerEmail string     `json:"organizer_email"`
	Theme          Theme      `json:"theme"`
	AdminSecret    string     `json:"-"`
	OwnerUserID    *string    `json:"owner_user_id"`
	NotifyOnRsvp   bool       `json:"notify_on_rsvp"`
	PlanTier       PlanTier   `json:"plan_tier"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateEventParams carries validated input for event creation.
// Slug and admin secret are generated by the service, never supplied.
type CreateEventParams struct {
	Title          string
	Description    *string
	StartsAt       time.Time
	LocationText   string
	LocationURL    *string
	OrganizerEmail string
	Theme          Theme
	NotifyOnRsvp   bool
}

// UpdateEventParams carries a validated partial update. Nil means unchanged.
type UpdateEventParams struct {
	Title        *string
	Description  *string
	StartsAt     *time.Time
	LocationText *string
	LocationURL  *string
	Theme        *Theme
	NotifyOnRsvp *bool
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	GetByAdminSecret(ctx context.Context, adminSecret string) (*Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, eventID string, params UpdateEventParams) (*Event, error)
	// Claim sets owner_user_id only while it is still null. Returns
	// ErrNotFound when the event is missing or already claimed, which makes
	// the null-to-set transition atomic under concurrent claim attempts.
	Claim(ctx context.Context, eventID, userID string) (*Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	ListClaimable(ctx context.Context, organizerEmail string) ([]*Event, error)
	Search(ctx context.Context, query string, limit int) ([]*EventRef, error)
	List(ctx context.Context, p PaginationParams) ([]*Event, error)
	Count(ctx context.Context) (int, error)
}

// EventRef is the trimmed event shape returned from search endpoints.
type EventRef struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// CreatedEvent is the creation result: the event plus the share links built
// from the configured app URL. The admin secret appears here exactly once.
type CreatedEvent struct {
	Event       *Event
	PublicURL   string
	ManageURL   string
	AdminSecret string
}

// EventService defines the business logic for events.
type EventService interface {
	Create(ctx context.Context, params CreateEventParams) (*CreatedEvent, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	GetByAdminSecret(ctx context.Context, adminSecret string) (*Event, error)
	// Update authorizes via the admin secret when present, otherwise via
	// ownership or the superadmin role of actor.
	Update(ctx context.Context, eventID, adminSecret string, actor *User, params UpdateEventParams) (*Event, error)
	Claim(ctx context.Context, actor *User, eventID string) (*Event, error)
	ListByOwner(ctx context.Context, actor *User) ([]*Event, error)
	ListClaimable(ctx context.Context, actor *User) ([]*Event, error)
}
