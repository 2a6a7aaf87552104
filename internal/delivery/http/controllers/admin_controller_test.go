package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"invy/internal/delivery/http/helpers"
	"invy/internal/delivery/http/middleware"
	"invy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminIdentity(req *http.Request) *http.Request {
	return req.WithContext(middleware.SetIdentity(req.Context(), &domain.Identity{
		UserID: "a-1", Email: "ops@invy.test",
	}))
}

func newAdminController(admin *fakeAdminService, users *fakeUserService) *AdminController {
	return NewAdminController(testLogger(), admin, users, &fakeEventService{})
}

func TestAdminController_Overview(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		admin := &fakeAdminService{overview: &domain.Overview{TotalUsers: 3, TotalEvents: 5, TotalRsvps: 9}}
		users := &fakeUserService{user: &domain.User{ID: "a-1", Email: "ops@invy.test", Role: domain.RoleSuperAdmin}}
		ctrl := newAdminController(admin, users)

		rr := httptest.NewRecorder()
		ctrl.Overview(rr, adminIdentity(httptest.NewRequest(http.MethodGet, "http://test/admin/overview", nil)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total_rsvps":9`)
	})

	t.Run("non-admin actor", func(t *testing.T) {
		admin := &fakeAdminService{err: domain.ErrForbidden}
		users := &fakeUserService{user: &domain.User{ID: "u-1", Email: "host@example.com", Role: domain.RoleUser}}
		ctrl := newAdminController(admin, users)

		rr := httptest.NewRecorder()
		ctrl.Overview(rr, adminIdentity(httptest.NewRequest(http.MethodGet, "http://test/admin/overview", nil)))

		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		ctrl := newAdminController(&fakeAdminService{}, &fakeUserService{})
		rr := httptest.NewRecorder()
		ctrl.Overview(rr, httptest.NewRequest(http.MethodGet, "http://test/admin/overview", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminController_Search(t *testing.T) {
	users := &fakeUserService{user: &domain.User{ID: "a-1", Email: "ops@invy.test", Role: domain.RoleSuperAdmin}}

	t.Run("missing query", func(t *testing.T) {
		ctrl := newAdminController(&fakeAdminService{}, users)
		rr := httptest.NewRecorder()
		ctrl.Search(rr, adminIdentity(httptest.NewRequest(http.MethodGet, "http://test/admin/search", nil)))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("single character query", func(t *testing.T) {
		ctrl := newAdminController(&fakeAdminService{}, users)
		rr := httptest.NewRecorder()
		ctrl.Search(rr, adminIdentity(httptest.NewRequest(http.MethodGet, "http://test/admin/search?q=g", nil)))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("success", func(t *testing.T) {
		admin := &fakeAdminService{search: &domain.SearchResult{
			Users:  []*domain.UserRef{{ID: "u-1", Email: "garden@example.com"}},
			Events: []*domain.EventRef{{ID: "ev-1", Slug: "a7x9k2m4", Title: "Garden Party"}},
		}}
		ctrl := newAdminController(admin, users)
		rr := httptest.NewRecorder()
		ctrl.Search(rr, adminIdentity(httptest.NewRequest(http.MethodGet, "http://test/admin/search?q=garden", nil)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "garden@example.com")
		assert.Contains(t, rr.Body.String(), "a7x9k2m4")
	})
}

func TestAdminController_ListUsers(t *testing.T) {
	admin := &fakeAdminService{users: []*domain.User{{ID: "u-1", Email: "host@example.com"}}, total: 41}
	users := &fakeUserService{user: &domain.User{ID: "a-1", Email: "ops@invy.test", Role: domain.RoleSuperAdmin}}
	ctrl := newAdminController(admin, users)

	rr := httptest.NewRecorder()
	ctrl.ListUsers(rr, adminIdentity(httptest.NewRequest(http.MethodGet, "http://test/admin/users?page=2&page_size=10", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"page":2`)
	assert.Contains(t, body, `"total":41`)
	assert.Contains(t, body, `"total_pages":5`)
}

func TestAdminController_UpdatePlan(t *testing.T) {
	users := &fakeUserService{
		user:    &domain.User{ID: "a-1", Email: "ops@invy.test", Role: domain.RoleSuperAdmin},
		updated: &domain.User{ID: "u-1", Email: "host@example.com", PlanTier: domain.TierPro},
	}
	ctrl := newAdminController(&fakeAdminService{}, users)

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "http://test/admin/users/u-1/plan", bytes.NewBufferString(`{"plan_tier":"pro"}`))
		req.SetPathValue("userID", "u-1")
		rr := httptest.NewRecorder()

		ctrl.UpdatePlan(rr, adminIdentity(req))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.TierPro, users.lastTier)
		assert.Equal(t, "u-1", users.lastUserID)
	})

	t.Run("invalid tier", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "http://test/admin/users/u-1/plan", bytes.NewBufferString(`{"plan_tier":"platinum"}`))
		req.SetPathValue("userID", "u-1")
		rr := httptest.NewRecorder()

		ctrl.UpdatePlan(rr, adminIdentity(req))

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAdminController_UpdateRole(t *testing.T) {
	t.Run("self role change", func(t *testing.T) {
		users := &fakeUserService{
			user:      &domain.User{ID: "a-1", Email: "ops@invy.test", Role: domain.RoleSuperAdmin},
			updateErr: domain.ErrSelfRoleChange,
		}
		ctrl := newAdminController(&fakeAdminService{}, users)

		req := httptest.NewRequest(http.MethodPatch, "http://test/admin/users/a-1/role", bytes.NewBufferString(`{"role":"user"}`))
		req.SetPathValue("userID", "a-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateRole(rr, adminIdentity(req))

		require.Equal(t, http.StatusForbidden, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeForbidden, envelope.Error.Code)
		assert.Contains(t, envelope.Error.Message, "own role")
	})

	t.Run("invalid role", func(t *testing.T) {
		users := &fakeUserService{user: &domain.User{ID: "a-1", Email: "ops@invy.test", Role: domain.RoleSuperAdmin}}
		ctrl := newAdminController(&fakeAdminService{}, users)

		req := httptest.NewRequest(http.MethodPatch, "http://test/admin/users/u-1/role", bytes.NewBufferString(`{"role":"root"}`))
		req.SetPathValue("userID", "u-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateRole(rr, adminIdentity(req))

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
