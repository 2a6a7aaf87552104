package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"invy/internal/delivery/http/helpers"
	"invy/internal/delivery/http/middleware"
	"invy/internal/domain"
	"invy/internal/ics"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Accepted layouts for the date and time form fields.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// combineDateTime merges the separate date and time fields into one UTC timestamp.
func combineDateTime(date, timeOfDay string) (time.Time, error) {
	return time.Parse(dateLayout+"T"+timeLayout, date+"T"+timeOfDay)
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CreateEventRequest is the request body for POST /events. Date and time are
// separate form fields combined server-side into starts_at.
type CreateEventRequest struct {
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	LocationText   string  `json:"location_text"`
	LocationURL    *string `json:"location_url"`
	OrganizerEmail string  `json:"organizer_email"`
	Theme          string  `json:"theme"`
	NotifyOnRsvp   *bool   `json:"notify_on_rsvp"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	title := strings.TrimSpace(c.Title)
	if title == "" {
		errs = append(errs, "title is required")
	} else if len(title) > 200 {
		errs = append(errs, "title is too long")
	}
	if c.Description != nil && len(*c.Description) > 1000 {
		errs = append(errs, "description is too long")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	}
	if c.Time == "" {
		errs = append(errs, "time is required")
	}
	if c.Date != "" && c.Time != "" {
		if _, err := combineDateTime(c.Date, c.Time); err != nil {
			errs = append(errs, "invalid date or time")
		}
	}
	location := strings.TrimSpace(c.LocationText)
	if location == "" {
		errs = append(errs, "location is required")
	} else if len(location) > 500 {
		errs = append(errs, "location is too long")
	}
	if c.LocationURL != nil && *c.LocationURL != "" && !validURL(*c.LocationURL) {
		errs = append(errs, "invalid location url")
	}
	email := strings.TrimSpace(strings.ToLower(c.OrganizerEmail))
	if email == "" {
		errs = append(errs, "organizer email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email address")
	}
	if c.Theme != "" && !domain.Theme(c.Theme).Valid() {
		errs = append(errs, "theme must be \"light\" or \"dark\"")
	}
	return errs
}

// UpdateEventRequest is the partial-update body. AdminSecret authorizes the
// request when the caller is not signed in as the owner or a superadmin.
// Date and time must be supplied together or not at all.
type UpdateEventRequest struct {
	AdminSecret  string  `json:"admin_secret"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	LocationText *string `json:"location_text"`
	LocationURL  *string `json:"location_url"`
	Theme        *string `json:"theme"`
	NotifyOnRsvp *bool   `json:"notify_on_rsvp"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			errs = append(errs, "title cannot be empty")
		} else if len(title) > 200 {
			errs = append(errs, "title is too long")
		}
	}
	if u.Description != nil && len(*u.Description) > 1000 {
		errs = append(errs, "description is too long")
	}
	if (u.Date == nil) != (u.Time == nil) {
		errs = append(errs, "date and time must be supplied together")
	} else if u.Date != nil {
		if _, err := combineDateTime(*u.Date, *u.Time); err != nil {
			errs = append(errs, "invalid date or time")
		}
	}
	if u.LocationText != nil {
		location := strings.TrimSpace(*u.LocationText)
		if location == "" {
			errs = append(errs, "location cannot be empty")
		} else if len(location) > 500 {
			errs = append(errs, "location is too long")
		}
	}
	if u.LocationURL != nil && *u.LocationURL != "" && !validURL(*u.LocationURL) {
		errs = append(errs, "invalid location url")
	}
	if u.Theme != nil && !domain.Theme(*u.Theme).Valid() {
		errs = append(errs, "theme must be \"light\" or \"dark\"")
	}
	return errs
}

func (u UpdateEventRequest) toParams() domain.UpdateEventParams {
	params := domain.UpdateEventParams{
		Description:  u.Description,
		LocationURL:  u.LocationURL,
		NotifyOnRsvp: u.NotifyOnRsvp,
	}
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		params.Title = &title
	}
	if u.Date != nil && u.Time != nil {
		if startsAt, err := combineDateTime(*u.Date, *u.Time); err == nil {
			params.StartsAt = &startsAt
		}
	}
	if u.LocationText != nil {
		location := strings.TrimSpace(*u.LocationText)
		params.LocationText = &location
	}
	if u.Theme != nil {
		theme := domain.Theme(*u.Theme)
		params.Theme = &theme
	}
	return params
}

// CreateEventResponse is the creation payload. This is the only place the
// admin secret ever appears in a response body.
type CreateEventResponse struct {
	Event       *domain.Event `json:"event"`
	PublicURL   string        `json:"public_url"`
	ManageURL   string        `json:"manage_url"`
	AdminSecret string        `json:"admin_secret"`
}

// PublicEventResponse is the guest-facing event payload with aggregate stats.
type PublicEventResponse struct {
	Event *domain.Event    `json:"event"`
	Stats domain.RsvpStats `json:"stats"`
}

// EventController handles public event pages and event mutation.
type EventController struct {
	Logger       *slog.Logger
	EventService domain.EventService
	RsvpService  domain.RSVPService
	UserService  domain.UserService
}

func NewEventController(logger *slog.Logger, events domain.EventService, rsvps domain.RSVPService, users domain.UserService) *EventController {
	return &EventController{
		Logger:       logger,
		EventService: events,
		RsvpService:  rsvps,
		UserService:  users,
	}
}

// Create godoc
// @Summary Create an event
// @Description Create an RSVP page anonymously. Returns the event with its public and manage URLs; the admin secret appears only in this response.
// @Tags events
// @Accept json
// @Produce json
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event and links"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	startsAt, err := combineDateTime(req.Date, req.Time)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid date or time")
		return
	}
	notify := true
	if req.NotifyOnRsvp != nil {
		notify = *req.NotifyOnRsvp
	}
	created, err := c.EventService.Create(r.Context(), domain.CreateEventParams{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		StartsAt:       startsAt,
		LocationText:   strings.TrimSpace(req.LocationText),
		LocationURL:    req.LocationURL,
		OrganizerEmail: strings.TrimSpace(strings.ToLower(req.OrganizerEmail)),
		Theme:          domain.Theme(req.Theme),
		NotifyOnRsvp:   notify,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{
		Event:       created.Event,
		PublicURL:   created.PublicURL,
		ManageURL:   created.ManageURL,
		AdminSecret: created.AdminSecret,
	})
}

// GetBySlug godoc
// @Summary Get an event by slug
// @Description Public event page data: the event plus aggregate RSVP stats. Raw responses and the admin secret are never included.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event and stats"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetBySlug(w http.ResponseWriter, r *http.Request) {
	event, err := c.EventService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	stats, err := c.RsvpService.StatsForEvent(r.Context(), event.ID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PublicEventResponse{Event: event, Stats: stats})
}

// Calendar godoc
// @Summary Download an event as an iCalendar file
// @Tags events
// @Produce plain
// @Param slug path string true "Event slug"
// @Success 200 {string} string "text/calendar body"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{slug}/calendar.ics [get]
func (c *EventController) Calendar(w http.ResponseWriter, r *http.Request) {
	event, err := c.EventService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+event.Slug+".ics\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics.Generate(event, time.Now())))
}

// Update godoc
// @Summary Update an event
// @Description Partial update. Authorized by the admin_secret in the body, or by the signed-in owner or a superadmin when the secret is omitted.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var actor *domain.User
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		user, err := c.UserService.GetOrCreate(r.Context(), identity.UserID, identity.Email)
		if err != nil {
			writeDomainError(c.Logger, w, r, err)
			return
		}
		actor = user
	}
	event, err := c.EventService.Update(r.Context(), r.PathValue("eventID"), req.AdminSecret, actor, req.toParams())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// writeDomainError maps domain sentinel errors onto the response envelope.
// Unknown errors are logged and surfaced as a generic internal failure so no
// storage detail or secret reaches the client.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrSelfRoleChange):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "cannot change your own role")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrSlugTaken), errors.Is(err, domain.ErrSlugExhausted):
		logger.ErrorContext(r.Context(), "slug generation failed", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeConflict, "could not allocate a unique slug")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
