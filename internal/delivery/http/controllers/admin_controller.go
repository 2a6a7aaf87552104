package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"invy/internal/delivery/http/helpers"
	"invy/internal/domain"
)

const defaultLogLimit = 50

// UpdatePlanRequest is the request body for PATCH /admin/users/{userID}/plan.
type UpdatePlanRequest struct {
	PlanTier string `json:"plan_tier"`
}

// Validate implements Validator.
func (u UpdatePlanRequest) Validate() []string {
	if !domain.PlanTier(u.PlanTier).Valid() {
		return []string{"plan_tier must be one of \"free\", \"pro\", \"business\""}
	}
	return nil
}

// UpdateRoleRequest is the request body for PATCH /admin/users/{userID}/role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Validate implements Validator.
func (u UpdateRoleRequest) Validate() []string {
	role := domain.UserRole(u.Role)
	if role != domain.RoleUser && role != domain.RoleSuperAdmin {
		return []string{"role must be \"user\" or \"superadmin\""}
	}
	return nil
}

// PagedResponse wraps a list payload with pagination metadata.
type PagedResponse struct {
	Items any                    `json:"items"`
	Meta  helpers.PaginationMeta `json:"meta"`
}

// AdminController handles the superadmin oversight surface. Every endpoint
// requires the superadmin role; the check lives in the admin service.
type AdminController struct {
	Logger       *slog.Logger
	AdminService domain.AdminService
	UserService  domain.UserService
	userCtrl     *UserController
}

func NewAdminController(logger *slog.Logger, admin domain.AdminService, users domain.UserService, events domain.EventService) *AdminController {
	return &AdminController{
		Logger:       logger,
		AdminService: admin,
		UserService:  users,
		userCtrl:     NewUserController(logger, users, events),
	}
}

// Overview godoc
// @Summary Platform totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains total_users, total_events, total_rsvps"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/overview [get]
func (c *AdminController) Overview(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	overview, err := c.AdminService.Overview(r.Context(), actor)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, overview)
}

// Search godoc
// @Summary Search users and events
// @Description Case-insensitive partial match over user emails and event slug/title.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} helpers.APIResponse "data contains users and events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/search [get]
func (c *AdminController) Search(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < 2 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "q must be at least 2 characters")
		return
	}
	result, err := c.AdminService.Search(r.Context(), actor, query)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and meta"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	p := helpers.ParsePagination(r)
	users, total, err := c.AdminService.ListUsers(r.Context(), actor, p)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PagedResponse{
		Items: users,
		Meta:  helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// ListEvents godoc
// @Summary List all events
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and meta"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/events [get]
func (c *AdminController) ListEvents(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	p := helpers.ParsePagination(r)
	events, total, err := c.AdminService.ListEvents(r.Context(), actor, p)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PagedResponse{
		Items: events,
		Meta:  helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// ListRsvps godoc
// @Summary List all RSVPs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and meta"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/rsvps [get]
func (c *AdminController) ListRsvps(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	p := helpers.ParsePagination(r)
	rsvps, total, err := c.AdminService.ListRsvps(r.Context(), actor, p)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PagedResponse{
		Items: rsvps,
		Meta:  helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// Logs godoc
// @Summary Recent error and email logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max rows per log (default 50)"
// @Success 200 {object} helpers.APIResponse "data contains errors and emails"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/logs [get]
func (c *AdminController) Logs(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	limit := defaultLogLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = v
		}
	}
	page, err := c.AdminService.Logs(r.Context(), actor, limit)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// UpdatePlan godoc
// @Summary Change a user's plan tier
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body UpdatePlanRequest true "New plan tier"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/users/{userID}/plan [patch]
func (c *AdminController) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	var req UpdatePlanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.UserService.UpdatePlanTier(r.Context(), actor, r.PathValue("userID"), domain.PlanTier(req.PlanTier))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Description Promote or demote a user. A superadmin cannot change their own role.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body UpdateRoleRequest true "New role"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/users/{userID}/role [patch]
func (c *AdminController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actor := c.userCtrl.currentUser(w, r)
	if actor == nil {
		return
	}
	var req UpdateRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.UserService.UpdateRole(r.Context(), actor, r.PathValue("userID"), domain.UserRole(req.Role))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
