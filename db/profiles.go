package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
)

// CreateProfile inserts the user's profile row at signup. Re-running the
// signup flow for an existing user is a no-op.
func CreateProfile(p *models.Profile) error {
	query := `
		INSERT INTO users (id, email, display_name, balance, plan, notifications, dark_mode, biometric, auto_backup, total_points, daily_streak, last_milestone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := DB.Exec(query,
		p.UserID, p.Email, p.DisplayName, p.Balance, p.Plan,
		p.Preferences.Notifications, p.Preferences.DarkMode, p.Preferences.Biometric, p.Preferences.AutoBackup,
		p.TotalPoints, p.DailyStreak, p.LastMilestone,
	)
	if err != nil {
		return fmt.Errorf("error creating profile for user %s: %v", p.UserID, err)
	}
	return nil
}

// GetProfileByID returns nil, nil when no profile exists: an absent profile
// is a reachable state, not an error.
func GetProfileByID(userID string) (*models.Profile, error) {
	query := `
		SELECT id, email, display_name, balance, plan, stripe_id, notifications, dark_mode, biometric, auto_backup, total_points, daily_streak, last_milestone, created_at, upgraded_at
		FROM users
		WHERE id = $1
	`
	row := DB.QueryRow(query, userID)
	p := &models.Profile{}
	err := row.Scan(
		&p.UserID, &p.Email, &p.DisplayName, &p.Balance, &p.Plan, &p.StripeID,
		&p.Preferences.Notifications, &p.Preferences.DarkMode, &p.Preferences.Biometric, &p.Preferences.AutoBackup,
		&p.TotalPoints, &p.DailyStreak, &p.LastMilestone, &p.CreatedAt, &p.UpgradedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting profile for user %s: %v", userID, err)
	}
	return p, nil
}

// UpdateBalance writes only the balance column so a balance edit cannot lose
// a racing points or streak update.
func UpdateBalance(userID string, balance float64) error {
	query := `
		UPDATE users
		SET balance = $1
		WHERE id = $2
	`
	_, err := DB.Exec(query, balance, userID)
	if err != nil {
		return fmt.Errorf("error updating balance for user %s: %v", userID, err)
	}
	return nil
}

// UpdatePreferences replaces the four preference toggles.
func UpdatePreferences(userID string, prefs models.Preferences) error {
	query := `
		UPDATE users
		SET notifications = $1, dark_mode = $2, biometric = $3, auto_backup = $4
		WHERE id = $5
	`
	_, err := DB.Exec(query, prefs.Notifications, prefs.DarkMode, prefs.Biometric, prefs.AutoBackup, userID)
	if err != nil {
		return fmt.Errorf("error updating preferences for user %s: %v", userID, err)
	}
	return nil
}

// SetTotalPoints stores the recomputed point total. The value is always the
// sum over completion entries, never an increment of the stored number.
func SetTotalPoints(userID string, points int) error {
	query := `
		UPDATE users
		SET total_points = $1
		WHERE id = $2
	`
	_, err := DB.Exec(query, points, userID)
	if err != nil {
		return fmt.Errorf("error updating points for user %s: %v", userID, err)
	}
	return nil
}

// UpdateStreak stores the latest computed daily streak.
func UpdateStreak(userID string, streak int) error {
	query := `
		UPDATE users
		SET daily_streak = $1
		WHERE id = $2
	`
	_, err := DB.Exec(query, streak, userID)
	if err != nil {
		return fmt.Errorf("error updating streak for user %s: %v", userID, err)
	}
	return nil
}

// AdvanceMilestone raises the last-notified milestone to the given threshold
// and reports whether this call was the one that raised it. The WHERE guard
// makes the notification fire exactly once per threshold even when two
// recomputations race.
func AdvanceMilestone(userID string, milestone int) (bool, error) {
	query := `
		UPDATE users
		SET last_milestone = $1
		WHERE id = $2 AND last_milestone < $1
	`
	result, err := DB.Exec(query, milestone, userID)
	if err != nil {
		return false, fmt.Errorf("error advancing milestone for user %s: %v", userID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// UpdatePlanByUserID sets the plan tier and upgrade timestamp.
func UpdatePlanByUserID(userID string, plan models.PlanTier, upgradedAt time.Time) error {
	query := `
		UPDATE users
		SET plan = $1, upgraded_at = $2
		WHERE id = $3
	`
	_, err := DB.Exec(query, plan, upgradedAt, userID)
	if err != nil {
		return fmt.Errorf("error updating plan for user %s: %v", userID, err)
	}
	return nil
}

// UpdatePlanByStripeID sets the plan tier from a Stripe webhook event, where
// only the customer ID is known.
func UpdatePlanByStripeID(stripeID string, plan models.PlanTier, upgradedAt time.Time) error {
	query := `
		UPDATE users
		SET plan = $1, upgraded_at = $2
		WHERE stripe_id = $3
	`
	_, err := DB.Exec(query, plan, upgradedAt, stripeID)
	if err != nil {
		return fmt.Errorf("error updating plan for Stripe customer %s: %v", stripeID, err)
	}
	return nil
}

// UpdateStripeIDByUserID links a profile to its Stripe customer.
func UpdateStripeIDByUserID(userID, stripeID string) error {
	query := `
		UPDATE users
		SET stripe_id = $1
		WHERE id = $2
	`
	_, err := DB.Exec(query, stripeID, userID)
	if err != nil {
		return fmt.Errorf("error updating Stripe ID for user %s: %v", userID, err)
	}
	return nil
}

// ListUserIDs returns every profile ID, for the daily streak job.
func ListUserIDs() ([]string, error) {
	rows, err := DB.Query(`SELECT id FROM users`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %v", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteProfile removes the user's row as part of account deletion.
func DeleteProfile(userID string) error {
	_, err := DB.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting profile for user %s: %v", userID, err)
	}
	return nil
}
