package controllers

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"invy/internal/delivery/http/helpers"
	"invy/internal/domain"
	"invy/internal/permissions"
)

// ManageViewResponse is the organizer dashboard for one event, resolved
// through the admin-secret capability.
type ManageViewResponse struct {
	Event    *domain.Event         `json:"event"`
	Rsvps    []*domain.RSVP        `json:"rsvps"`
	Stats    domain.RsvpStats      `json:"stats"`
	Features []permissions.Feature `json:"features"`
}

// ManageController serves the secret-link management surface.
type ManageController struct {
	Logger       *slog.Logger
	EventService domain.EventService
	RsvpService  domain.RSVPService
	UserService  domain.UserService
}

func NewManageController(logger *slog.Logger, events domain.EventService, rsvps domain.RSVPService, users domain.UserService) *ManageController {
	return &ManageController{
		Logger:       logger,
		EventService: events,
		RsvpService:  rsvps,
		UserService:  users,
	}
}

// resolve looks up the event behind the adminSecret path segment and the
// owner record when the event has been claimed. The owner's tier feeds the
// effective-tier computation; a missing owner row degrades to the event tier.
func (c *ManageController) resolve(w http.ResponseWriter, r *http.Request) (*domain.Event, *domain.User, bool) {
	event, err := c.EventService.GetByAdminSecret(r.Context(), r.PathValue("adminSecret"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return nil, nil, false
	}
	var owner *domain.User
	if event.OwnerUserID != nil {
		owner, err = c.UserService.GetByID(r.Context(), *event.OwnerUserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			writeDomainError(c.Logger, w, r, err)
			return nil, nil, false
		}
	}
	return event, owner, true
}

// View godoc
// @Summary Manage view for an event
// @Description Resolve the admin secret to the event, its raw responses, aggregate stats, and the features unlocked at the effective plan tier.
// @Tags manage
// @Produce json
// @Param adminSecret path string true "Admin secret"
// @Success 200 {object} helpers.APIResponse "data contains event, rsvps, stats, features"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /manage/{adminSecret} [get]
func (c *ManageController) View(w http.ResponseWriter, r *http.Request) {
	event, owner, ok := c.resolve(w, r)
	if !ok {
		return
	}
	rsvps, err := c.RsvpService.ListForEvent(r.Context(), event.ID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ManageViewResponse{
		Event:    event,
		Rsvps:    rsvps,
		Stats:    domain.ComputeRsvpStats(rsvps),
		Features: permissions.FeaturesForTier(permissions.EffectiveTier(owner, event)),
	})
}

// DeleteRsvp godoc
// @Summary Delete one RSVP
// @Tags manage
// @Produce json
// @Param adminSecret path string true "Admin secret"
// @Param rsvpID path string true "RSVP ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /manage/{adminSecret}/rsvps/{rsvpID} [delete]
func (c *ManageController) DeleteRsvp(w http.ResponseWriter, r *http.Request) {
	err := c.RsvpService.Delete(r.Context(), r.PathValue("adminSecret"), r.PathValue("rsvpID"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExportCSV godoc
// @Summary Export responses as CSV
// @Description Download the guest list as CSV. Requires the csv_export feature at the event's effective plan tier (pro or business).
// @Tags manage
// @Produce plain
// @Param adminSecret path string true "Admin secret"
// @Success 200 {string} string "text/csv body"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /manage/{adminSecret}/rsvps.csv [get]
func (c *ManageController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	event, owner, ok := c.resolve(w, r)
	if !ok {
		return
	}
	if err := permissions.AssertCanUseFeature(owner, event, permissions.FeatureCSVExport); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	rsvps, err := c.RsvpService.ListForEvent(r.Context(), event.ID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+event.Slug+"-rsvps.csv\"")
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"name", "contact_info", "status", "plus_one", "created_at"})
	for _, rsvp := range rsvps {
		_ = cw.Write([]string{
			rsvp.Name,
			rsvp.ContactInfo,
			string(rsvp.Status),
			strconv.Itoa(rsvp.PlusOne),
			rsvp.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
}
