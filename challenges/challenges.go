package challenges

import (
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
)

// Daily is the fixed daily challenge catalog. Instances are keyed per
// calendar day.
var Daily = []models.Challenge{
	{
		ID:          "no_coffee",
		Title:       "Skip the Coffee Shop",
		Description: "Avoid spending on coffee today",
		Icon:        "coffee-off",
		Reward:      "Caffeine Saver Badge",
		Points:      10,
		Type:        models.ChallengeDaily,
	},
	{
		ID:          "under_budget",
		Title:       "Stay Under $20",
		Description: "Keep daily spending under $20",
		Icon:        "cash-multiple",
		Reward:      "Budget Master Badge",
		Points:      15,
		Type:        models.ChallengeDaily,
	},
	{
		ID:          "no_subscriptions",
		Title:       "No New Subscriptions",
		Description: "Resist signing up for new services",
		Icon:        "television-off",
		Reward:      "Subscription Stopper Badge",
		Points:      20,
		Type:        models.ChallengeDaily,
	},
}

// Weekly challenges are keyed by challenge ID alone, one instance per week.
var Weekly = []models.Challenge{
	{
		ID:          "meal_prep",
		Title:       "Meal Prep Week",
		Description: "Cook at home 5 days this week",
		Icon:        "chef-hat",
		Reward:      "Master Chef Badge",
		Points:      50,
		Type:        models.ChallengeWeekly,
	},
	{
		ID:          "transportation",
		Title:       "Eco Commuter",
		Description: "Use public transport or walk for 3 days",
		Icon:        "bus",
		Reward:      "Green Commuter Badge",
		Points:      30,
		Type:        models.ChallengeWeekly,
	},
}

// Find looks a challenge up in either catalog.
func Find(id string) (models.Challenge, bool) {
	for _, c := range Daily {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range Weekly {
		if c.ID == id {
			return c, true
		}
	}
	return models.Challenge{}, false
}

// dateKeyLayout matches the calendar-day string the progress keys were
// originally written with, e.g. "Mon Jun 16 2025".
const dateKeyLayout = "Mon Jan 02 2006"

// DateKey renders a time as the calendar-day component of a daily progress
// key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Key builds the progress-map key for a challenge instance: daily challenges
// get the given day appended, weekly challenges use the literal "weekly".
func Key(c models.Challenge, day time.Time) string {
	if c.Type == models.ChallengeWeekly {
		return c.ID + "_weekly"
	}
	return c.ID + "_" + DateKey(day)
}
