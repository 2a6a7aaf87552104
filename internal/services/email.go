package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"invy/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logRepo  domain.LogRepository
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that renders templates, sends via
// the given Mailer, and records every attempt in the email log.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logRepo domain.LogRepository, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logRepo: logRepo, logger: logger}
}

// send renders the named template, attempts delivery, and writes an email
// log row with status sent or failed. The log write itself is best-effort: a
// logging failure never masks or replaces the send outcome.
func (s *emailService) send(ctx context.Context, templateName, to string, data any, eventID *string) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", templateName, err)
	}

	sendErr := s.mailer.Send(to, subject, htmlBody, textBody)

	entry := &domain.EmailLog{
		ToEmail:   to,
		Subject:   subject,
		Status:    domain.EmailSent,
		EventID:   eventID,
		CreatedAt: time.Now(),
	}
	if sendErr != nil {
		entry.Status = domain.EmailFailed
		msg := sendErr.Error()
		entry.ErrorMessage = &msg
	}
	if err := s.logRepo.InsertEmailLog(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to write email log", "to", to, "err", err)
	}

	if sendErr != nil {
		return fmt.Errorf("send %s email: %w", templateName, sendErr)
	}
	return nil
}

// SendEventCreated sends the organizer the share and manage links for a new event.
func (s *emailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("event created data is nil")
	}
	return s.send(ctx, "event_created", data.OrganizerEmail, data, &data.EventID)
}

// SendRsvpNotification tells the organizer about a new guest response.
func (s *emailService) SendRsvpNotification(ctx context.Context, data *domain.RsvpNotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp notification data is nil")
	}
	return s.send(ctx, "rsvp_notification", data.OrganizerEmail, data, &data.EventID)
}

// SendRsvpConfirmation confirms a guest's response when their contact info
// is an email address.
func (s *emailService) SendRsvpConfirmation(ctx context.Context, data *domain.RsvpConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp confirmation data is nil")
	}
	return s.send(ctx, "rsvp_confirmation", data.GuestEmail, data, &data.EventID)
}
