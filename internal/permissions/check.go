package permissions

import (
	"fmt"

	"invy/internal/domain"
)

// Assertion wrappers for the request-handling boundary. A failed check is
// never recoverable locally; the operation must abort with an authorization
// error, so each wrapper returns an error wrapping domain.ErrForbidden.

// AssertCanUseFeature returns an error unless (user, event) unlocks feature.
func AssertCanUseFeature(user *domain.User, event *domain.Event, feature Feature) error {
	if !CanUseFeature(user, event, feature) {
		return fmt.Errorf("feature %q requires a higher plan tier: %w", feature, domain.ErrForbidden)
	}
	return nil
}

// AssertCanManageEvent returns an error unless user may manage event.
func AssertCanManageEvent(user *domain.User, event *domain.Event) error {
	if !CanManageEvent(user, event) {
		return fmt.Errorf("no permission to manage this event: %w", domain.ErrForbidden)
	}
	return nil
}

// AssertSuperAdmin returns an error unless user is a superadmin.
func AssertSuperAdmin(user *domain.User) error {
	if !IsSuperAdmin(user) {
		return fmt.Errorf("superadmin access required: %w", domain.ErrForbidden)
	}
	return nil
}

// AssertCanClaimEvent returns an error unless user may claim event.
func AssertCanClaimEvent(user *domain.User, event *domain.Event) error {
	if !CanClaimEvent(user, event) {
		return fmt.Errorf("cannot claim this event: %w", domain.ErrForbidden)
	}
	return nil
}
