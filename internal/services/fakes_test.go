package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"invy/internal/domain"
)

// In-memory fakes shared by the service tests.

type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	slugsUsed map[string]bool
	// forceSlugExists makes every SlugExists call report a collision.
	forceSlugExists bool
	createErr       error
	// createErrs are consumed one per Create call before createErr applies.
	createErrs  []error
	createCalls int
	getErr      error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:      make(map[string]*domain.Event),
		slugsUsed: make(map[string]bool),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	cp := *e
	f.byID[e.ID] = &cp
	f.slugsUsed[e.Slug] = true
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByAdminSecret(ctx context.Context, secret string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.AdminSecret == secret {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if f.forceSlugExists {
		return true, nil
	}
	return f.slugsUsed[slug], nil
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, params domain.UpdateEventParams) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if params.Title != nil {
		e.Title = *params.Title
	}
	if params.Description != nil {
		e.Description = params.Description
	}
	if params.StartsAt != nil {
		e.StartsAt = *params.StartsAt
	}
	if params.LocationText != nil {
		e.LocationText = *params.LocationText
	}
	if params.LocationURL != nil {
		e.LocationURL = params.LocationURL
	}
	if params.Theme != nil {
		e.Theme = *params.Theme
	}
	if params.NotifyOnRsvp != nil {
		e.NotifyOnRsvp = *params.NotifyOnRsvp
	}
	e.UpdatedAt = time.Now()
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Claim(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok || e.OwnerUserID != nil {
		return nil, domain.ErrNotFound
	}
	e.OwnerUserID = &userID
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerUserID != nil && *e.OwnerUserID == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListClaimable(ctx context.Context, email string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerUserID == nil && strings.EqualFold(e.OrganizerEmail, email) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Search(ctx context.Context, query string, limit int) ([]*domain.EventRef, error) {
	var out []*domain.EventRef
	q := strings.ToLower(query)
	for _, e := range f.byID {
		if strings.Contains(strings.ToLower(e.Slug), q) || strings.Contains(strings.ToLower(e.Title), q) {
			out = append(out, &domain.EventRef{ID: e.ID, Slug: e.Slug, Title: e.Title})
		}
	}
	return out, nil
}

func (f *fakeEventRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int, error) { return len(f.byID), nil }

type fakeRSVPRepo struct {
	byID      map[string]*domain.RSVP
	nextID    int
	createErr error
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byID: make(map[string]*domain.RSVP)}
}

func (f *fakeRSVPRepo) Create(ctx context.Context, r *domain.RSVP) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	r.ID = fmt.Sprintf("rsvp-%d", f.nextID)
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRSVPRepo) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	out := make([]*domain.RSVP, 0)
	for _, r := range f.byID {
		if r.EventID == eventID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRSVPRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRSVPRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.RSVP, error) {
	out := make([]*domain.RSVP, 0)
	for _, r := range f.byID {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRSVPRepo) Count(ctx context.Context) (int, error) { return len(f.byID), nil }

type fakeUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
	getErr    error
	roleErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		f.nextID++
		u.ID = fmt.Sprintf("user-%d", f.nextID)
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdatePlanTier(ctx context.Context, userID string, tier domain.PlanTier) (*domain.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.PlanTier = tier
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SearchByEmail(ctx context.Context, query string, limit int) ([]*domain.UserRef, error) {
	var out []*domain.UserRef
	q := strings.ToLower(query)
	for _, u := range f.byID {
		if strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, &domain.UserRef{ID: u.ID, Email: u.Email})
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) { return len(f.byID), nil }

type fakeLogRepo struct {
	errorLogs []*domain.ErrorLog
	emailLogs []*domain.EmailLog
	insertErr error
}

func (f *fakeLogRepo) InsertErrorLog(ctx context.Context, e *domain.ErrorLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.errorLogs = append(f.errorLogs, e)
	return nil
}

func (f *fakeLogRepo) InsertEmailLog(ctx context.Context, e *domain.EmailLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.emailLogs = append(f.emailLogs, e)
	return nil
}

func (f *fakeLogRepo) ListErrorLogs(ctx context.Context, limit int) ([]*domain.ErrorLog, error) {
	return f.errorLogs, nil
}

func (f *fakeLogRepo) ListEmailLogs(ctx context.Context, limit int) ([]*domain.EmailLog, error) {
	return f.emailLogs, nil
}

// fakeEmailService records calls and optionally fails every send.
type fakeEmailService struct {
	created       []*domain.EventCreatedEmailData
	notifications []*domain.RsvpNotificationEmailData
	confirmations []*domain.RsvpConfirmationEmailData
	sendErr       error
}

func (f *fakeEmailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	f.created = append(f.created, data)
	return f.sendErr
}

func (f *fakeEmailService) SendRsvpNotification(ctx context.Context, data *domain.RsvpNotificationEmailData) error {
	f.notifications = append(f.notifications, data)
	return f.sendErr
}

func (f *fakeEmailService) SendRsvpConfirmation(ctx context.Context, data *domain.RsvpConfirmationEmailData) error {
	f.confirmations = append(f.confirmations, data)
	return f.sendErr
}

// fakeMailer implements domain.Mailer for email service tests.
type fakeMailer struct {
	sent    []string
	sendErr error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}

// fakeRenderer implements domain.EmailTemplateRenderer for email service tests.
type fakeRenderer struct {
	renderErr error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if f.renderErr != nil {
		return "", "", "", f.renderErr
	}
	return "subject: " + name, "<p>" + name + "</p>", name, nil
}
