package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventCreatedEmailData holds data for the organizer "your event is ready" email.
type EventCreatedEmailData struct {
	OrganizerEmail string
	EventID        string
	EventTitle     string
	PublicURL      string
	ManageURL      string
}

// RsvpNotificationEmailData holds data for the organizer new-RSVP email.
type RsvpNotificationEmailData struct {
	OrganizerEmail string
	EventID        string
	EventTitle     string
	GuestName      string
	Status         RSVPStatus
	PlusOne        int
	ManageURL      string
}

// RsvpConfirmationEmailData holds data for the guest confirmation email,
// sent only when the guest's contact info is email-shaped.
type RsvpConfirmationEmailData struct {
	GuestEmail string
	GuestName  string
	EventID    string
	EventTitle string
	Status     RSVPStatus
	PublicURL  string
}

// EmailService defines the contract for sending domain-level emails.
// Every send attempt, successful or not, is recorded in the email log.
type EmailService interface {
	SendEventCreated(ctx context.Context, data *EventCreatedEmailData) error
	SendRsvpNotification(ctx context.Context, data *RsvpNotificationEmailData) error
	SendRsvpConfirmation(ctx context.Context, data *RsvpConfirmationEmailData) error
}
