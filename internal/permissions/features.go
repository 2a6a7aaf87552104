// Package permissions implements the plan-tier capability model: effective
// tier computation, the feature/tier matrix, and the ownership and claiming
// rules that gate an event's admin surface.
package permissions

import (
	"sort"

	"invy/internal/domain"
)

// Feature is a gated product capability.
type Feature string

const (
	FeatureCustomSlug        Feature = "custom_slug"
	FeatureAdvancedThemes    Feature = "advanced_themes"
	FeatureCSVExport         Feature = "csv_export"
	FeatureGuestListControls Feature = "guest_list_controls"
	FeatureCapacityLimits    Feature = "capacity_limits"
	FeatureLinkPreviewCards  Feature = "link_preview_cards"
	FeatureAnalytics         Feature = "analytics"
	FeatureCustomRsvpFields  Feature = "custom_rsvp_fields"
	FeatureShareControls     Feature = "share_controls"
	FeatureEmailReminders    Feature = "email_reminders"
	FeatureQRCode            Feature = "qr_code"
	FeatureWhiteLabel        Feature = "white_label"
)

// Requirements is the single source of truth for which tiers unlock which
// feature. Gating code must consult it, never re-derive tier rules ad hoc.
var Requirements = map[Feature][]domain.PlanTier{
	FeatureCustomSlug:        {domain.TierPro, domain.TierBusiness},
	FeatureAdvancedThemes:    {domain.TierPro, domain.TierBusiness},
	FeatureCSVExport:         {domain.TierPro, domain.TierBusiness},
	FeatureGuestListControls: {domain.TierPro, domain.TierBusiness},
	FeatureCapacityLimits:    {domain.TierPro, domain.TierBusiness},
	FeatureLinkPreviewCards:  {domain.TierPro, domain.TierBusiness},
	FeatureAnalytics:         {domain.TierPro, domain.TierBusiness},
	FeatureCustomRsvpFields:  {domain.TierPro, domain.TierBusiness},
	FeatureShareControls:     {domain.TierBusiness},
	FeatureEmailReminders:    {domain.TierBusiness},
	FeatureQRCode:            {domain.TierPro, domain.TierBusiness},
	FeatureWhiteLabel:        {domain.TierBusiness},
}

// TierHasFeature reports whether tier unlocks feature per the matrix.
// Unknown features are locked for every tier.
func TierHasFeature(tier domain.PlanTier, feature Feature) bool {
	for _, t := range Requirements[feature] {
		if t == tier {
			return true
		}
	}
	return false
}

// FeaturesForTier returns every feature the given tier unlocks, sorted for
// stable output. Never nil, so it serializes as an empty JSON array.
func FeaturesForTier(tier domain.PlanTier) []Feature {
	out := make([]Feature, 0, len(Requirements))
	for feature := range Requirements {
		if TierHasFeature(tier, feature) {
			out = append(out, feature)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
