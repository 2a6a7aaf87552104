package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"invy/internal/domain"
)

// emailShapedRegex decides whether a freeform contact string looks like an
// email address. Used only to decide whether a guest confirmation can be
// sent; it is not a validation rule for contact_info.
var emailShapedRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isEmailShaped(contact string) bool {
	return emailShapedRegex.MatchString(contact)
}

type rsvpService struct {
	rsvpRepo       domain.RSVPRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	appURL         string
	contextTimeout time.Duration
}

func NewRSVPService(
	rsvpRepo domain.RSVPRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	appURL string,
	timeout time.Duration,
) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:       rsvpRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		appURL:         appURL,
		contextTimeout: timeout,
	}
}

func (s *rsvpService) Create(ctx context.Context, eventID string, params domain.CreateRsvpParams) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Duplicate submissions from the same guest are accepted as new rows.
	rsvp := &domain.RSVP{
		EventID:     event.ID,
		Name:        params.Name,
		ContactInfo: params.ContactInfo,
		Status:      params.Status,
		PlusOne:     params.PlusOne,
		CreatedAt:   time.Now(),
	}
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		return nil, fmt.Errorf("create rsvp: %w", err)
	}

	s.notify(ctx, event, rsvp)
	return rsvp, nil
}

// notify attempts the guest confirmation and organizer notification emails.
// Both are best-effort: a failure is logged and never fails the RSVP.
func (s *rsvpService) notify(ctx context.Context, event *domain.Event, rsvp *domain.RSVP) {
	if isEmailShaped(rsvp.ContactInfo) {
		err := s.emailService.SendRsvpConfirmation(ctx, &domain.RsvpConfirmationEmailData{
			GuestEmail: rsvp.ContactInfo,
			GuestName:  rsvp.Name,
			EventID:    event.ID,
			EventTitle: event.Title,
			Status:     rsvp.Status,
			PublicURL:  fmt.Sprintf("%s/e/%s", s.appURL, event.Slug),
		})
		if err != nil {
			s.logger.WarnContext(ctx, "rsvp confirmation email failed", "event_id", event.ID, "err", err)
		}
	}

	if event.NotifyOnRsvp {
		err := s.emailService.SendRsvpNotification(ctx, &domain.RsvpNotificationEmailData{
			OrganizerEmail: event.OrganizerEmail,
			EventID:        event.ID,
			EventTitle:     event.Title,
			GuestName:      rsvp.Name,
			Status:         rsvp.Status,
			PlusOne:        rsvp.PlusOne,
			ManageURL:      fmt.Sprintf("%s/manage/%s", s.appURL, event.AdminSecret),
		})
		if err != nil {
			s.logger.WarnContext(ctx, "rsvp notification email failed", "event_id", event.ID, "err", err)
		}
	}
}

func (s *rsvpService) ListForEvent(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvps, err := s.rsvpRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}

func (s *rsvpService) StatsForEvent(ctx context.Context, eventID string) (domain.RsvpStats, error) {
	rsvps, err := s.ListForEvent(ctx, eventID)
	if err != nil {
		return domain.RsvpStats{}, err
	}
	return domain.ComputeRsvpStats(rsvps), nil
}

func (s *rsvpService) Delete(ctx context.Context, adminSecret, rsvpID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if adminSecret == "" {
		return domain.ErrUnauthorized
	}
	event, err := s.eventRepo.GetByAdminSecret(ctx, adminSecret)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("get event by secret: %w", err)
	}
	rsvp, err := s.rsvpRepo.GetByID(ctx, rsvpID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get rsvp: %w", err)
	}
	// The secret only grants rights over its own event's RSVPs.
	if rsvp.EventID != event.ID {
		return domain.ErrForbidden
	}
	if err := s.rsvpRepo.Delete(ctx, rsvpID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete rsvp: %w", err)
	}
	return nil
}
