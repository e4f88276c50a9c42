package models

import "time"

type PlanTier string

const (
	PlanFree PlanTier = "free"
	PlanPro  PlanTier = "pro"
	PlanPlus PlanTier = "plus"
)

// ValidPlan reports whether tier is one of the known plan tiers.
func ValidPlan(tier PlanTier) bool {
	switch tier {
	case PlanFree, PlanPro, PlanPlus:
		return true
	}
	return false
}

// Preferences holds the four user-facing toggles stored on the profile.
type Preferences struct {
	Notifications bool `json:"notifications"`
	DarkMode      bool `json:"dark_mode"`
	Biometric     bool `json:"biometric"`
	AutoBackup    bool `json:"auto_backup"`
}

// DefaultPreferences are applied when a profile is created at signup.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		DarkMode:      false,
		Biometric:     false,
		AutoBackup:    true,
	}
}

// Profile is the canonical per-user record, one row per user keyed by the
// auth provider's user ID. Balance and total points live in separate columns
// and are always updated with single-column statements so a balance edit
// cannot clobber a racing points update.
type Profile struct {
	UserID        string      `json:"user_id"`
	Email         string      `json:"email"`
	DisplayName   string      `json:"display_name"`
	Balance       float64     `json:"balance"`
	Plan          PlanTier    `json:"plan"`
	StripeID      *string     `json:"stripe_id,omitempty"`
	Preferences   Preferences `json:"preferences"`
	TotalPoints   int         `json:"total_points"`
	DailyStreak   int         `json:"daily_streak"`
	LastMilestone int         `json:"last_milestone"`
	CreatedAt     time.Time   `json:"created_at"`
	UpgradedAt    *time.Time  `json:"upgraded_at,omitempty"`
}
