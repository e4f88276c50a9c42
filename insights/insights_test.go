package insights

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
)

func expense(amount float64, category, description string) models.Expense {
	return models.Expense{Amount: amount, Category: category, Description: description}
}

func TestSummarizeConservation(t *testing.T) {
	expenses := []models.Expense{
		expense(120, "Groceries", ""),
		expense(80, "Dining", ""),
		expense(15.99, "Entertainment", "Netflix monthly charge"),
		expense(30, "Groceries", ""),
		expense(9.5, "Coffee", "latte"),
	}

	summary := Summarize(expenses)

	var sum float64
	for _, entry := range summary {
		sum += entry.Amount
	}
	if math.Abs(sum-Total(expenses)) > 1e-9 {
		t.Errorf("category sums %.4f != input total %.4f", sum, Total(expenses))
	}
}

func TestSummarizeBreakdown(t *testing.T) {
	expenses := []models.Expense{
		expense(120, "Groceries", ""),
		expense(80, "Dining", ""),
		expense(30, "Groceries", ""),
	}

	summary := Summarize(expenses)
	total := Total(expenses)

	if total != 230 {
		t.Fatalf("total = %v, want 230", total)
	}
	if got := summary["Groceries"].Amount; got != 150 {
		t.Errorf("Groceries = %v, want 150", got)
	}
	if got := summary["Dining"].Amount; got != 80 {
		t.Errorf("Dining = %v, want 80", got)
	}
	if got := Percentage(summary["Groceries"].Amount, total); got != 65.2 {
		t.Errorf("Groceries percentage = %v, want 65.2", got)
	}
	if got := Percentage(summary["Dining"].Amount, total); got != 34.8 {
		t.Errorf("Dining percentage = %v, want 34.8", got)
	}
}

func TestPercentagesSumToHundred(t *testing.T) {
	expenses := []models.Expense{
		expense(33.33, "Groceries", ""),
		expense(33.33, "Dining", ""),
		expense(33.34, "Gas", ""),
		expense(12.49, "Coffee", ""),
	}

	summary := Summarize(expenses)
	total := Total(expenses)

	var sum float64
	for _, entry := range summary {
		sum += Percentage(entry.Amount, total)
	}
	// Each category rounds to one decimal, so allow 0.1 per category.
	if math.Abs(sum-100) > 0.1*float64(len(summary)) {
		t.Errorf("percentages sum to %v, want ~100", sum)
	}
}

func TestPercentageZeroTotal(t *testing.T) {
	if got := Percentage(0, 0); got != 0 {
		t.Errorf("Percentage(0, 0) = %v, want 0", got)
	}
	if got := Percentage(10, 0); got != 0 {
		t.Errorf("Percentage(10, 0) = %v, want 0", got)
	}
}

func TestSubscriptionInference(t *testing.T) {
	expenses := []models.Expense{
		expense(15.99, "Entertainment", "Netflix monthly charge"),
	}

	summary := Summarize(expenses)

	entry, ok := summary[SubscriptionBucket]
	if !ok {
		t.Fatalf("no %s bucket in %v", SubscriptionBucket, summary)
	}
	if entry.Amount != 15.99 {
		t.Errorf("subscription amount = %v, want 15.99", entry.Amount)
	}
	if !entry.IsSubscription {
		t.Error("subscription bucket not flagged")
	}
	if _, ok := summary["Entertainment"]; ok {
		t.Error("record also counted under its stated category")
	}
}

func TestSubscriptionFlagWins(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 5, Category: "Utilities", Description: "water bill", IsSubscription: true},
	}

	summary := Summarize(expenses)
	if _, ok := summary[SubscriptionBucket]; !ok {
		t.Error("explicitly flagged expense not reclassified")
	}
}

func TestDetectSubscription(t *testing.T) {
	cases := []struct {
		description string
		want        bool
	}{
		{"Netflix monthly charge", true},
		{"SPOTIFY premium", true},
		{"Annual gym membership", true},
		{"lunch at the deli", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := DetectSubscription(tc.description); got != tc.want {
			t.Errorf("DetectSubscription(%q) = %v, want %v", tc.description, got, tc.want)
		}
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	expenses := []models.Expense{
		expense(120, "Groceries", ""),
		expense(15.99, "Entertainment", "Spotify"),
		expense(80, "Dining", ""),
	}

	first := Summarize(expenses)
	second := Summarize(expenses)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ: %v vs %v", first, second)
	}
}

func TestSortedOrder(t *testing.T) {
	summary := Summarize([]models.Expense{
		expense(30, "Coffee", ""),
		expense(150, "Groceries", ""),
		expense(80, "Dining", ""),
	})

	rows := Sorted(summary)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Amount > rows[i-1].Amount {
			t.Errorf("rows not in descending order: %v", rows)
		}
	}
	if rows[0].Category != "Groceries" {
		t.Errorf("largest category = %s, want Groceries", rows[0].Category)
	}
}

func TestFilterSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	old := models.Expense{Amount: 10, Category: "Gas", Timestamp: now.AddDate(0, 0, -40)}
	recent := models.Expense{Amount: 20, Category: "Gas", Timestamp: now.AddDate(0, 0, -3)}

	filtered := FilterSince([]models.Expense{old, recent}, now.AddDate(0, 0, -30))
	if len(filtered) != 1 || filtered[0].Amount != 20 {
		t.Errorf("FilterSince kept %v, want only the recent expense", filtered)
	}
}

func TestBuildSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		expense(120, "Groceries", ""),
		expense(80, "Dining", ""),
		expense(15.99, "Entertainment", "Netflix monthly charge"),
	}

	snap := BuildSnapshot(expenses, WindowMonthly, now)

	if snap.TotalSpent != 215.99 {
		t.Errorf("total = %v, want 215.99", snap.TotalSpent)
	}
	if snap.SubscriptionTotal != 15.99 || snap.SubscriptionCount != 1 {
		t.Errorf("subscriptions = %v/%d, want 15.99/1", snap.SubscriptionTotal, snap.SubscriptionCount)
	}
	if len(snap.Categories) != 3 {
		t.Fatalf("got %d rows, want 3", len(snap.Categories))
	}
	if snap.Categories[0].Category != "Groceries" {
		t.Errorf("first row = %s, want Groceries", snap.Categories[0].Category)
	}
	if want := 215.99 / 30; math.Abs(snap.AverageDaily-want) > 1e-9 {
		t.Errorf("average daily = %v, want %v", snap.AverageDaily, want)
	}
}

func TestBuildSnapshotEmpty(t *testing.T) {
	snap := BuildSnapshot(nil, WindowAll, time.Now())
	if snap.TotalSpent != 0 || len(snap.Categories) != 0 {
		t.Errorf("empty input produced %+v", snap)
	}
}

func TestParseWindow(t *testing.T) {
	if got := ParseWindow("weekly"); got != WindowWeekly {
		t.Errorf("ParseWindow(weekly) = %v", got)
	}
	if got := ParseWindow("bogus"); got != WindowMonthly {
		t.Errorf("ParseWindow(bogus) = %v, want monthly default", got)
	}
}
