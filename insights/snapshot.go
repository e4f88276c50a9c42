package insights

import (
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
)

// Window names a time filter for the breakdown view.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
	WindowAll     Window = "all"
)

// Days returns the window's lookback length and whether a cutoff applies at
// all ("all" has none).
func (w Window) Days() (int, bool) {
	switch w {
	case WindowDaily:
		return 1, true
	case WindowWeekly:
		return 7, true
	case WindowMonthly:
		return 30, true
	default:
		return 0, false
	}
}

// ParseWindow maps a query value to a window, defaulting to monthly.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowDaily, WindowWeekly, WindowMonthly, WindowAll:
		return Window(s)
	}
	return WindowMonthly
}

// Row is one category of a snapshot, with its share of the total attached.
type Row struct {
	CategorySummary
	Percentage float64 `json:"percentage"`
}

// Snapshot is the derived view a client renders: totals plus the sorted
// category rows for one time window. Recomputed from source records on every
// delivery, never stored.
type Snapshot struct {
	Window            Window    `json:"window"`
	TotalSpent        float64   `json:"total_spent"`
	SubscriptionTotal float64   `json:"subscription_total"`
	SubscriptionCount int       `json:"subscription_count"`
	AverageDaily      float64   `json:"average_daily"`
	Categories        []Row     `json:"categories"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// BuildSnapshot aggregates the given expenses (already window-filtered) into
// a snapshot for delivery.
func BuildSnapshot(expenses []models.Expense, window Window, now time.Time) Snapshot {
	summary := Summarize(expenses)
	total := Total(expenses)

	var subTotal float64
	var subCount int
	for _, e := range expenses {
		if e.IsSubscription || DetectSubscription(e.Description) {
			subTotal += e.Amount
			subCount++
		}
	}

	days, bounded := window.Days()
	if !bounded {
		days = 30
	}

	rows := make([]Row, 0, len(summary))
	for _, entry := range Sorted(summary) {
		rows = append(rows, Row{
			CategorySummary: entry,
			Percentage:      Percentage(entry.Amount, total),
		})
	}

	return Snapshot{
		Window:            window,
		TotalSpent:        total,
		SubscriptionTotal: subTotal,
		SubscriptionCount: subCount,
		AverageDaily:      total / float64(days),
		Categories:        rows,
		GeneratedAt:       now,
	}
}
