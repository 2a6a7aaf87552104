package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"invy/internal/delivery/http/helpers"
	"invy/internal/domain"
)

// CreateRsvpRequest is the request body for POST /rsvps. ContactInfo is a
// freeform string; email, phone, or a social handle are all accepted as-is.
type CreateRsvpRequest struct {
	EventID     string `json:"event_id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Status      string `json:"status"`
	PlusOne     *int   `json:"plus_one"`
}

// Validate implements Validator.
func (c CreateRsvpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, "name is required")
	} else if len(name) > 200 {
		errs = append(errs, "name is too long")
	}
	contact := strings.TrimSpace(c.ContactInfo)
	if contact == "" {
		errs = append(errs, "contact info is required")
	} else if len(contact) > 500 {
		errs = append(errs, "contact info is too long")
	}
	if !domain.RSVPStatus(c.Status).Valid() {
		errs = append(errs, "status must be one of \"yes\", \"no\", \"maybe\"")
	}
	if c.PlusOne != nil && (*c.PlusOne < 0 || *c.PlusOne > 10) {
		errs = append(errs, "plus_one must be between 0 and 10")
	}
	return errs
}

// RsvpController handles guest response intake.
type RsvpController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRsvpController(logger *slog.Logger, svc domain.RSVPService) *RsvpController {
	return &RsvpController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Submit an RSVP
// @Description Record a guest response for an event. Triggers a guest confirmation email when contact_info is email-shaped and an organizer notification when the event has notify_on_rsvp enabled; email failures never fail the request.
// @Tags rsvps
// @Accept json
// @Produce json
// @Param body body CreateRsvpRequest true "RSVP data"
// @Success 201 {object} helpers.APIResponse "data contains the created RSVP"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps [post]
func (c *RsvpController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRsvpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	plusOne := 0
	if req.PlusOne != nil {
		plusOne = *req.PlusOne
	}
	rsvp, err := c.Service.Create(r.Context(), strings.TrimSpace(req.EventID), domain.CreateRsvpParams{
		Name:        strings.TrimSpace(req.Name),
		ContactInfo: strings.TrimSpace(req.ContactInfo),
		Status:      domain.RSVPStatus(req.Status),
		PlusOne:     plusOne,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rsvp)
}
