package challenges

import (
	"testing"
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
)

var noCoffee = Daily[0]

func completed(c models.Challenge, day time.Time, points int) (string, models.ProgressEntry) {
	key := Key(c, day)
	return key, models.ProgressEntry{
		Key:         key,
		ChallengeID: c.ID,
		Completed:   true,
		CompletedAt: day,
		Points:      points,
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	progress := ProgressMap{}
	for i := 0; i < 3; i++ {
		k, e := completed(noCoffee, now.AddDate(0, 0, -i), noCoffee.Points)
		progress[k] = e
	}
	// Three days ago stays empty.

	if got := Streak(progress, now); got != 3 {
		t.Errorf("Streak = %d, want 3", got)
	}
}

func TestStreakBrokenToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	progress := ProgressMap{}
	k, e := completed(noCoffee, now.AddDate(0, 0, -1), noCoffee.Points)
	progress[k] = e

	if got := Streak(progress, now); got != 0 {
		t.Errorf("Streak = %d, want 0 when today has no completion", got)
	}
}

func TestStreakGapStopsCount(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	progress := ProgressMap{}
	for _, offset := range []int{0, 1, 3, 4} { // gap at two days ago
		k, e := completed(noCoffee, now.AddDate(0, 0, -offset), noCoffee.Points)
		progress[k] = e
	}

	if got := Streak(progress, now); got != 2 {
		t.Errorf("Streak = %d, want 2 (count stops at the gap)", got)
	}
}

func TestStreakAnyDailyChallengeCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	progress := ProgressMap{}
	// Alternate which challenge is completed each day.
	for i := 0; i < 4; i++ {
		c := Daily[i%len(Daily)]
		k, e := completed(c, now.AddDate(0, 0, -i), c.Points)
		progress[k] = e
	}

	if got := Streak(progress, now); got != 4 {
		t.Errorf("Streak = %d, want 4", got)
	}
}

func TestStreakLookbackCap(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	progress := ProgressMap{}
	for i := 0; i < 45; i++ {
		k, e := completed(noCoffee, now.AddDate(0, 0, -i), noCoffee.Points)
		progress[k] = e
	}

	if got := Streak(progress, now); got != 30 {
		t.Errorf("Streak = %d, want 30 (scan bounded)", got)
	}
}

func TestStreakEmptyProgress(t *testing.T) {
	if got := Streak(ProgressMap{}, time.Now()); got != 0 {
		t.Errorf("Streak = %d, want 0 for empty progress", got)
	}
	if got := Streak(nil, time.Now()); got != 0 {
		t.Errorf("Streak = %d, want 0 for nil progress", got)
	}
}

func TestKeyFormats(t *testing.T) {
	day := time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC) // a Monday
	if got, want := Key(noCoffee, day), "no_coffee_Mon Jun 16 2025"; got != want {
		t.Errorf("daily key = %q, want %q", got, want)
	}
	if got, want := Key(Weekly[0], day), "meal_prep_weekly"; got != want {
		t.Errorf("weekly key = %q, want %q", got, want)
	}
}

func TestTotalPointsSumFromSource(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	progress := ProgressMap{}

	if got := TotalPoints(progress); got != 0 {
		t.Fatalf("TotalPoints = %d, want 0 before any completion", got)
	}

	k, e := completed(noCoffee, now, noCoffee.Points)
	progress[k] = e

	if got := TotalPoints(progress); got != 10 {
		t.Errorf("TotalPoints = %d, want 10", got)
	}
	if _, ok := progress["no_coffee_"+DateKey(now)]; !ok {
		t.Errorf("completion entry not keyed no_coffee_<today>: %v", progress)
	}

	// Incomplete entries contribute nothing.
	progress["under_budget_"+DateKey(now)] = models.ProgressEntry{Points: 15}
	if got := TotalPoints(progress); got != 10 {
		t.Errorf("TotalPoints = %d, want 10 (incomplete entry counted)", got)
	}
}

func TestCrossedMilestones(t *testing.T) {
	cases := []struct {
		lastNotified int
		streak       int
		want         []int
	}{
		{0, 2, nil},
		{0, 3, []int{3}},
		{3, 3, nil},
		{3, 7, []int{7}},
		{0, 8, []int{3, 7}},
		{7, 30, []int{30}},
		{30, 30, nil},
	}
	for _, tc := range cases {
		got := CrossedMilestones(tc.lastNotified, tc.streak)
		if len(got) != len(tc.want) {
			t.Errorf("CrossedMilestones(%d, %d) = %v, want %v", tc.lastNotified, tc.streak, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("CrossedMilestones(%d, %d) = %v, want %v", tc.lastNotified, tc.streak, got, tc.want)
			}
		}
	}
}

func TestFind(t *testing.T) {
	if c, ok := Find("no_coffee"); !ok || c.Points != 10 {
		t.Errorf("Find(no_coffee) = %+v, %v", c, ok)
	}
	if c, ok := Find("meal_prep"); !ok || c.Type != models.ChallengeWeekly {
		t.Errorf("Find(meal_prep) = %+v, %v", c, ok)
	}
	if _, ok := Find("nope"); ok {
		t.Error("Find(nope) should report not found")
	}
}
