package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"invy/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func strPtr(s string) *string { return &s }

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:             "ev-1",
		Slug:           "a7x9k2m4",
		Title:          "Garden Party",
		StartsAt:       time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC),
		LocationText:   "12 Vine St",
		OrganizerEmail: "host@example.com",
		Theme:          domain.ThemeLight,
		AdminSecret:    "0123456789abcdef0123456789abcdef",
		NotifyOnRsvp:   true,
		PlanTier:       domain.TierFree,
	}
}

// fakeEventService implements domain.EventService for controller tests.
type fakeEventService struct {
	created      *domain.CreatedEvent
	createErr    error
	event        *domain.Event
	getErr       error
	updated      *domain.Event
	updateErr    error
	lastSecret   string
	lastActor    *domain.User
	lastParams   domain.UpdateEventParams
	claimed      *domain.Event
	claimErr     error
	owned        []*domain.Event
	claimable    []*domain.Event
	listErr      error
}

func (f *fakeEventService) Create(ctx context.Context, params domain.CreateEventParams) (*domain.CreatedEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeEventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEventService) GetByAdminSecret(ctx context.Context, secret string) (*domain.Event, error) {
	f.lastSecret = secret
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEventService) Update(ctx context.Context, eventID, adminSecret string, actor *domain.User, params domain.UpdateEventParams) (*domain.Event, error) {
	f.lastSecret = adminSecret
	f.lastActor = actor
	f.lastParams = params
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeEventService) Claim(ctx context.Context, actor *domain.User, eventID string) (*domain.Event, error) {
	f.lastActor = actor
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return f.claimed, nil
}

func (f *fakeEventService) ListByOwner(ctx context.Context, actor *domain.User) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.owned, nil
}

func (f *fakeEventService) ListClaimable(ctx context.Context, actor *domain.User) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.claimable, nil
}

// fakeRsvpService implements domain.RSVPService for controller tests.
type fakeRsvpService struct {
	rsvp       *domain.RSVP
	createErr  error
	lastParams domain.CreateRsvpParams
	rsvps      []*domain.RSVP
	listErr    error
	stats      domain.RsvpStats
	deleteErr  error
	deleted    []string
}

func (f *fakeRsvpService) Create(ctx context.Context, eventID string, params domain.CreateRsvpParams) (*domain.RSVP, error) {
	f.lastParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.rsvp, nil
}

func (f *fakeRsvpService) ListForEvent(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rsvps, nil
}

func (f *fakeRsvpService) StatsForEvent(ctx context.Context, eventID string) (domain.RsvpStats, error) {
	return f.stats, f.listErr
}

func (f *fakeRsvpService) Delete(ctx context.Context, adminSecret, rsvpID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, rsvpID)
	return nil
}

// fakeUserService implements domain.UserService for controller tests.
type fakeUserService struct {
	user       *domain.User
	getErr     error
	updated    *domain.User
	updateErr  error
	lastTier   domain.PlanTier
	lastRole   domain.UserRole
	lastUserID string
}

func (f *fakeUserService) GetOrCreate(ctx context.Context, id, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserService) UpdatePlanTier(ctx context.Context, actor *domain.User, userID string, tier domain.PlanTier) (*domain.User, error) {
	f.lastUserID = userID
	f.lastTier = tier
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeUserService) UpdateRole(ctx context.Context, actor *domain.User, userID string, role domain.UserRole) (*domain.User, error) {
	f.lastUserID = userID
	f.lastRole = role
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

// fakeAdminService implements domain.AdminService for controller tests.
type fakeAdminService struct {
	overview *domain.Overview
	search   *domain.SearchResult
	users    []*domain.User
	events   []*domain.Event
	rsvps    []*domain.RSVP
	total    int
	logs     *domain.LogsPage
	err      error
}

func (f *fakeAdminService) Overview(ctx context.Context, actor *domain.User) (*domain.Overview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.overview, nil
}

func (f *fakeAdminService) Search(ctx context.Context, actor *domain.User, query string) (*domain.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.search, nil
}

func (f *fakeAdminService) ListUsers(ctx context.Context, actor *domain.User, p domain.PaginationParams) ([]*domain.User, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.users, f.total, nil
}

func (f *fakeAdminService) ListEvents(ctx context.Context, actor *domain.User, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.events, f.total, nil
}

func (f *fakeAdminService) ListRsvps(ctx context.Context, actor *domain.User, p domain.PaginationParams) ([]*domain.RSVP, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.rsvps, f.total, nil
}

func (f *fakeAdminService) Logs(ctx context.Context, actor *domain.User, limit int) (*domain.LogsPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.logs, nil
}
