package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"invy/internal/domain"
	"invy/internal/permissions"
)

type eventService struct {
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	appURL         string
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	appURL string,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		appURL:         appURL,
		contextTimeout: timeout,
	}
}

const (
	slugLength      = 8
	slugMaxAttempts = 10
	adminSecretLen  = 16 // bytes; rendered as 32 hex chars
)

var slugAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateSlug() (string, error) {
	b := make([]rune, slugLength)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := 0; i < slugLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugAlphabet[n.Int64()]
	}
	return string(b), nil
}

func generateAdminSecret() (string, error) {
	b := make([]byte, adminSecretLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *eventService) publicURL(e *domain.Event) string {
	return fmt.Sprintf("%s/e/%s", s.appURL, e.Slug)
}

func (s *eventService) manageURL(e *domain.Event) string {
	return fmt.Sprintf("%s/manage/%s", s.appURL, e.AdminSecret)
}

func (s *eventService) Create(ctx context.Context, params domain.CreateEventParams) (*domain.CreatedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	secret, err := generateAdminSecret()
	if err != nil {
		return nil, fmt.Errorf("generate admin secret: %w", err)
	}

	now := time.Now()
	theme := params.Theme
	if !theme.Valid() {
		theme = domain.ThemeLight
	}
	event := &domain.Event{
		Title:          params.Title,
		Description:    params.Description,
		StartsAt:       params.StartsAt,
		LocationText:   params.LocationText,
		LocationURL:    params.LocationURL,
		OrganizerEmail: params.OrganizerEmail,
		Theme:          theme,
		AdminSecret:    secret,
		OwnerUserID:    nil, // anonymous creation; claimed later
		NotifyOnRsvp:   params.NotifyOnRsvp,
		PlanTier:       domain.TierFree,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Draw random slugs until one inserts, bounded at slugMaxAttempts. The
	// check-then-insert window is closed by the slug unique constraint: a
	// losing race surfaces as ErrSlugTaken from Create and draws a new slug.
	inserted := false
	for attempt := 0; attempt < slugMaxAttempts && !inserted; attempt++ {
		slug, err := generateSlug()
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
		exists, err := s.eventRepo.SlugExists(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		if exists {
			continue
		}
		event.Slug = slug
		switch err := s.eventRepo.Create(ctx, event); {
		case err == nil:
			inserted = true
		case errors.Is(err, domain.ErrSlugTaken):
			continue
		default:
			return nil, fmt.Errorf("create event: %w", err)
		}
	}
	if !inserted {
		return nil, domain.ErrSlugExhausted
	}

	created := &domain.CreatedEvent{
		Event:       event,
		PublicURL:   s.publicURL(event),
		ManageURL:   s.manageURL(event),
		AdminSecret: event.AdminSecret,
	}

	// Best-effort: the event exists whether or not the organizer email lands.
	if err := s.emailService.SendEventCreated(ctx, &domain.EventCreatedEmailData{
		OrganizerEmail: event.OrganizerEmail,
		EventID:        event.ID,
		EventTitle:     event.Title,
		PublicURL:      created.PublicURL,
		ManageURL:      created.ManageURL,
	}); err != nil {
		s.logger.WarnContext(ctx, "event created email failed", "event_id", event.ID, "err", err)
	}

	return created, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByAdminSecret(ctx context.Context, adminSecret string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if adminSecret == "" {
		return nil, domain.ErrUnauthorized
	}
	event, err := s.eventRepo.GetByAdminSecret(ctx, adminSecret)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// An unknown secret is an invalid credential, not a missing page.
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get event by secret: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID, adminSecret string, actor *domain.User, params domain.UpdateEventParams) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Two independent gates: the bearer-secret path stays valid after the
	// event is claimed, and the identity path works without the secret.
	if adminSecret != "" {
		if event.AdminSecret != adminSecret {
			return nil, domain.ErrUnauthorized
		}
	} else if err := permissions.AssertCanManageEvent(actor, event); err != nil {
		if actor == nil {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	updated, err := s.eventRepo.Update(ctx, eventID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Claim(ctx context.Context, actor *domain.User, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := permissions.AssertCanClaimEvent(actor, event); err != nil {
		return nil, err
	}

	claimed, err := s.eventRepo.Claim(ctx, eventID, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost a concurrent claim race; the transition is one-way.
			return nil, fmt.Errorf("event already claimed: %w", domain.ErrForbidden)
		}
		return nil, fmt.Errorf("claim event: %w", err)
	}
	return claimed, nil
}

func (s *eventService) ListByOwner(ctx context.Context, actor *domain.User) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	events, err := s.eventRepo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListClaimable(ctx context.Context, actor *domain.User) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	events, err := s.eventRepo.ListClaimable(ctx, actor.Email)
	if err != nil {
		return nil, fmt.Errorf("list claimable events: %w", err)
	}
	return events, nil
}
