package insights

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
)

// SubscriptionBucket is the synthetic category every subscription-like
// expense is folded into, regardless of its stated category.
const SubscriptionBucket = "Subscriptions"

var subscriptionKeywords = []string{
	"netflix", "spotify", "apple", "amazon", "hulu", "disney", "youtube", "microsoft",
	"adobe", "dropbox", "google", "icloud", "subscription", "monthly", "annual",
}

var categoryIcons = map[string]string{
	"Food & Dining":  "food",
	"Entertainment":  "movie",
	"Transportation": "car",
	"Shopping":       "shopping",
	"Healthcare":     "medical-bag",
	"Utilities":      "home",
	"Groceries":      "cart",
	"Gas":            "gas-station",
	"Coffee":         "coffee",
}

var categoryColors = map[string]string{
	"Food & Dining":  "#ef4444",
	"Entertainment":  "#8b5cf6",
	"Transportation": "#06b6d4",
	"Shopping":       "#ec4899",
	"Healthcare":     "#10b981",
	"Utilities":      "#f59e0b",
	"Groceries":      "#059669",
	"Gas":            "#dc2626",
	"Coffee":         "#92400e",
}

const (
	defaultIcon       = "tag"
	defaultColor      = "#64748b"
	subscriptionIcon  = "television"
	subscriptionColor = "#8b5cf6"
)

// CategorySummary accumulates one category's spending for the breakdown view.
type CategorySummary struct {
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	IsSubscription bool    `json:"is_subscription"`
}

// DetectSubscription reports whether a description looks like a recurring
// subscription charge.
func DetectSubscription(description string) bool {
	lower := strings.ToLower(description)
	for _, keyword := range subscriptionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// CategoryIcon returns the display icon for a category label.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return defaultIcon
}

// CategoryColor returns the display color for a category label.
func CategoryColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return defaultColor
}

// Summarize folds a list of expenses into per-category summaries. An expense
// whose subscription flag is set, or whose description matches a subscription
// keyword, lands in the Subscriptions bucket instead of its stated category.
// Pure: insertion order is irrelevant and the input is never mutated.
func Summarize(expenses []models.Expense) map[string]CategorySummary {
	summary := make(map[string]CategorySummary)
	for _, e := range expenses {
		isSub := e.IsSubscription || DetectSubscription(e.Description)
		key := e.Category
		if isSub {
			key = SubscriptionBucket
		}

		entry, ok := summary[key]
		if !ok {
			entry = CategorySummary{
				Category:       key,
				Icon:           CategoryIcon(e.Category),
				Color:          CategoryColor(e.Category),
				IsSubscription: isSub,
			}
			if isSub {
				entry.Icon = subscriptionIcon
				entry.Color = subscriptionColor
			}
		}
		entry.Amount += e.Amount
		summary[key] = entry
	}
	return summary
}

// Percentage returns amount's share of total as a percentage rounded to one
// decimal. A zero total yields 0 rather than a division by zero.
func Percentage(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(amount/total*1000) / 10
}

// Total sums the amounts of all expenses.
func Total(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// Sorted flattens a summary map into rows ordered by descending amount, the
// display order for the breakdown list. Ties break alphabetically so the
// order is stable.
func Sorted(summary map[string]CategorySummary) []CategorySummary {
	rows := make([]CategorySummary, 0, len(summary))
	for _, entry := range summary {
		rows = append(rows, entry)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// FilterSince keeps expenses with timestamps in (cutoff, now]. Window
// filtering is a precondition on Summarize's input, not internal to it.
func FilterSince(expenses []models.Expense, cutoff time.Time) []models.Expense {
	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Timestamp.After(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
