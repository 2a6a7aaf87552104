package permissions

import (
	"strings"

	"invy/internal/domain"
)

// EffectiveTier computes the tier actually used for feature-gating a
// (user, event) pair. user may be nil for anonymous callers.
//
// Superadmins always get business tier regardless of stored tiers.
// Anonymous callers get the event's own tier (default free). Everyone else
// gets the higher of their own tier and the event's tier.
func EffectiveTier(user *domain.User, event *domain.Event) domain.PlanTier {
	if IsSuperAdmin(user) {
		return domain.TierBusiness
	}

	eventTier := event.PlanTier
	if !eventTier.Valid() {
		eventTier = domain.TierFree
	}
	if user == nil {
		return eventTier
	}
	return domain.MaxTier(user.PlanTier, eventTier)
}

// CanUseFeature reports whether the effective tier of (user, event) unlocks
// feature per the requirements matrix.
func CanUseFeature(user *domain.User, event *domain.Event, feature Feature) bool {
	return TierHasFeature(EffectiveTier(user, event), feature)
}

// IsSuperAdmin reports whether user holds the superadmin role.
func IsSuperAdmin(user *domain.User) bool {
	return user != nil && user.Role == domain.RoleSuperAdmin
}

// OwnsEvent reports whether user is the claimed owner of event.
func OwnsEvent(user *domain.User, event *domain.Event) bool {
	if user == nil || event.OwnerUserID == nil {
		return false
	}
	return *event.OwnerUserID == user.ID
}

// CanManageEvent is the single gate for every mutation or view on an event's
// admin surface along the identity path: ownership or superadmin. The
// admin-secret bearer path is authorized separately by secret lookup.
func CanManageEvent(user *domain.User, event *domain.Event) bool {
	if IsSuperAdmin(user) {
		return true
	}
	return OwnsEvent(user, event)
}

// CanClaimEvent reports whether user may claim event: authenticated, event
// still unclaimed, and the user's email matching the organizer email
// case-insensitively. Claiming is one-way; once owner_user_id is set this
// returns false for everyone, including the original claimant.
func CanClaimEvent(user *domain.User, event *domain.Event) bool {
	if user == nil {
		return false
	}
	if event.OwnerUserID != nil {
		return false
	}
	return strings.EqualFold(user.Email, event.OrganizerEmail)
}
