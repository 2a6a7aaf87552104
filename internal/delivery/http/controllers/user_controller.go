package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"invy/internal/delivery/http/helpers"
	"invy/internal/delivery/http/middleware"
	"invy/internal/domain"
	"invy/internal/permissions"
)

// ClaimEventRequest is the request body for POST /events/claim.
type ClaimEventRequest struct {
	EventID string `json:"event_id"`
}

// Validate implements Validator.
func (c ClaimEventRequest) Validate() []string {
	if strings.TrimSpace(c.EventID) == "" {
		return []string{"event_id is required"}
	}
	return nil
}

// MeResponse is the authenticated user's profile plus derived flags.
type MeResponse struct {
	User         *domain.User `json:"user"`
	IsSuperAdmin bool         `json:"is_super_admin"`
}

// UserController handles the signed-in surface: profile, dashboard listings,
// and the one-way claim of anonymously created events.
type UserController struct {
	Logger       *slog.Logger
	UserService  domain.UserService
	EventService domain.EventService
}

func NewUserController(logger *slog.Logger, users domain.UserService, events domain.EventService) *UserController {
	return &UserController{
		Logger:       logger,
		UserService:  users,
		EventService: events,
	}
}

// currentUser resolves the request identity to a user record, creating it
// lazily on first sight. Returns nil and writes 401 when no identity is set.
func (c *UserController) currentUser(w http.ResponseWriter, r *http.Request) *domain.User {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil
	}
	user, err := c.UserService.GetOrCreate(r.Context(), identity.UserID, identity.Email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return nil
	}
	return user
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the signed-in user's record, creating it on first sight. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	user := c.currentUser(w, r)
	if user == nil {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MeResponse{
		User:         user,
		IsSuperAdmin: permissions.IsSuperAdmin(user),
	})
}

// ListMyEvents godoc
// @Summary List events owned by the current user
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /dashboard/events [get]
func (c *UserController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	user := c.currentUser(w, r)
	if user == nil {
		return
	}
	events, err := c.EventService.ListByOwner(r.Context(), user)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListClaimable godoc
// @Summary List events the current user can claim
// @Description Unclaimed events whose organizer email matches the signed-in email, case-insensitively.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /dashboard/claimable [get]
func (c *UserController) ListClaimable(w http.ResponseWriter, r *http.Request) {
	user := c.currentUser(w, r)
	if user == nil {
		return
	}
	events, err := c.EventService.ListClaimable(r.Context(), user)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Claim godoc
// @Summary Claim an anonymously created event
// @Description One-way transition: sets the owner on an unclaimed event whose organizer email matches the signed-in email. The admin secret stays valid afterwards.
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ClaimEventRequest true "Event to claim"
// @Success 200 {object} helpers.APIResponse "data contains the claimed event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/claim [post]
func (c *UserController) Claim(w http.ResponseWriter, r *http.Request) {
	user := c.currentUser(w, r)
	if user == nil {
		return
	}
	var req ClaimEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.EventService.Claim(r.Context(), user, strings.TrimSpace(req.EventID))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
