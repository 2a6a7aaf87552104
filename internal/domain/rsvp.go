package domain

import (
	"context"
	"math"
	"time"
)

// RSVPStatus is a guest's attendance answer.
type RSVPStatus string

const (
	RSVPYes   RSVPStatus = "yes"
	RSVPNo    RSVPStatus = "no"
	RSVPMaybe RSVPStatus = "maybe"
)

// Valid reports whether s is a known status.
func (s RSVPStatus) Valid() bool {
	return s == RSVPYes || s == RSVPNo || s == RSVPMaybe
}

// RSVP is a guest response to an event. ContactInfo is a freeform string
// (email, phone, social handle) with no format contract beyond length.
// RSVPs are append-mostly: never updated, deletable by an event admin.
// Duplicate submissions from the same guest are accepted as separate rows.
type RSVP struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Name        string     `json:"name"`
	ContactInfo string     `json:"contact_info"`
	Status      RSVPStatus `json:"status"`
	PlusOne     int        `json:"plus_one"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateRsvpParams carries validated input for RSVP creation.
type CreateRsvpParams struct {
	Name        string
	ContactInfo string
	Status      RSVPStatus
	PlusOne     int
}

// RsvpStats is the derived aggregate over an event's RSVP set. It is never
// stored; it is computed on read.
type RsvpStats struct {
	Total           int `json:"total"`
	Yes             int `json:"yes"`
	No              int `json:"no"`
	Maybe           int `json:"maybe"`
	EstimatedGuests int `json:"estimatedGuests"`
}

// ComputeRsvpStats folds an RSVP set into counts and an estimated headcount.
// A "yes" contributes 1 + plus_one; a "maybe" contributes 0.5 + plus_one*0.5
// as a conservative estimate. The sum is rounded to the nearest integer.
func ComputeRsvpStats(rsvps []*RSVP) RsvpStats {
	stats := RsvpStats{Total: len(rsvps)}
	estimated := 0.0
	for _, r := range rsvps {
		switch r.Status {
		case RSVPYes:
			stats.Yes++
			estimated += 1 + float64(r.PlusOne)
		case RSVPNo:
			stats.No++
		case RSVPMaybe:
			stats.Maybe++
			estimated += 0.5 + float64(r.PlusOne)*0.5
		}
	}
	stats.EstimatedGuests = int(math.Round(estimated))
	return stats
}

// RSVPRepository defines the interface for RSVP storage
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	GetByID(ctx context.Context, id string) (*RSVP, error)
	ListByEventID(ctx context.Context, eventID string) ([]*RSVP, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*RSVP, error)
	Count(ctx context.Context) (int, error)
}

// RSVPService defines the business logic for guest responses.
type RSVPService interface {
	// Create persists the RSVP and then attempts notifications best-effort:
	// a guest confirmation when contact_info is email-shaped, and an
	// organizer notification when the event has notify_on_rsvp enabled.
	// Notification failures never fail the creation.
	Create(ctx context.Context, eventID string, params CreateRsvpParams) (*RSVP, error)
	ListForEvent(ctx context.Context, eventID string) ([]*RSVP, error)
	StatsForEvent(ctx context.Context, eventID string) (RsvpStats, error)
	// Delete removes one RSVP belonging to the event resolved by adminSecret.
	Delete(ctx context.Context, adminSecret, rsvpID string) error
}
