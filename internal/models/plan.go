package models

import "strings"

// PlanTier is the subscription tier stored on the user record.
type PlanTier string

const (
	PlanFree   PlanTier = "FREE"
	PlanSilver PlanTier = "SILVER"
	PlanGold   PlanTier = "GOLD"
)

// PlanLimits holds the static per-tier quota parameters.
type PlanLimits struct {
	Tier              PlanTier
	DailyChatChars    int // chat input budget per calendar day
	VideoIntervalDays int // minimum days between successful video generations
}

var planCatalog = map[PlanTier]PlanLimits{
	PlanFree:   {Tier: PlanFree, DailyChatChars: 100, VideoIntervalDays: 3},
	PlanSilver: {Tier: PlanSilver, DailyChatChars: 500, VideoIntervalDays: 2},
	PlanGold:   {Tier: PlanGold, DailyChatChars: 700, VideoIntervalDays: 1},
}

// LimitsFor returns the limits for a tier. Unknown or empty tiers fail
// closed to FREE (smallest budget, longest interval) instead of erroring.
func LimitsFor(tier PlanTier) PlanLimits {
	if l, ok := planCatalog[tier]; ok {
		return l
	}
	return planCatalog[PlanFree]
}

// ParseTier normalizes a raw tier string, falling back to FREE.
func ParseTier(s string) PlanTier {
	switch PlanTier(strings.ToUpper(strings.TrimSpace(s))) {
	case PlanSilver:
		return PlanSilver
	case PlanGold:
		return PlanGold
	default:
		return PlanFree
	}
}
