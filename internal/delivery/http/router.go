package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"invy/internal/delivery/http/controllers"
	"invy/internal/delivery/http/middleware"
	"invy/internal/domain"
)

// Controllers bundles the controllers the router wires up.
type Controllers struct {
	Event  *controllers.EventController
	Rsvp   *controllers.RsvpController
	Manage *controllers.ManageController
	User   *controllers.UserController
	Admin  *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Public surface
	mux.HandleFunc("POST /events", c.Event.Create)
	mux.HandleFunc("GET /events/{slug}", c.Event.GetBySlug)
	mux.HandleFunc("GET /events/{slug}/calendar.ics", c.Event.Calendar)
	mux.HandleFunc("POST /rsvps", c.Rsvp.Create)

	// Secret-link management surface
	mux.HandleFunc("GET /manage/{adminSecret}", c.Manage.View)
	mux.HandleFunc("GET /manage/{adminSecret}/rsvps.csv", c.Manage.ExportCSV)
	mux.HandleFunc("DELETE /manage/{adminSecret}/rsvps/{rsvpID}", c.Manage.DeleteRsvp)

	// Event update accepts the admin secret in the body or a signed-in owner.
	mux.HandleFunc("PATCH /admin/events/{eventID}", optionalAuth(c.Event.Update))

	// Signed-in surface
	mux.HandleFunc("GET /me", requireAuth(c.User.GetMe))
	mux.HandleFunc("GET /dashboard/events", requireAuth(c.User.ListMyEvents))
	mux.HandleFunc("GET /dashboard/claimable", requireAuth(c.User.ListClaimable))
	mux.HandleFunc("POST /events/claim", requireAuth(c.User.Claim))

	// Superadmin oversight
	mux.HandleFunc("GET /admin/overview", requireAuth(c.Admin.Overview))
	mux.HandleFunc("GET /admin/search", requireAuth(c.Admin.Search))
	mux.HandleFunc("GET /admin/users", requireAuth(c.Admin.ListUsers))
	mux.HandleFunc("GET /admin/events", requireAuth(c.Admin.ListEvents))
	mux.HandleFunc("GET /admin/rsvps", requireAuth(c.Admin.ListRsvps))
	mux.HandleFunc("GET /admin/logs", requireAuth(c.Admin.Logs))
	mux.HandleFunc("PATCH /admin/users/{userID}/plan", requireAuth(c.Admin.UpdatePlan))
	mux.HandleFunc("PATCH /admin/users/{userID}/role", requireAuth(c.Admin.UpdateRole))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
