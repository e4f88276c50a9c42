package challenges

import (
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
)

// ProgressMap holds a user's completion entries keyed by challenge-instance
// key. A missing key means not completed.
type ProgressMap map[string]models.ProgressEntry

// maxLookback bounds the backward walk; a streak older than this is not
// distinguished from exactly 30 in the scan.
const maxLookback = 30

// Milestones are the streak lengths that trigger a one-time notification.
var Milestones = []int{3, 7, 30}

// Streak counts consecutive calendar days, ending at now's day and walking
// backward, on which at least one daily challenge was completed. A day with
// no completion stops the count immediately, so no completion today means a
// streak of zero.
func Streak(progress ProgressMap, now time.Time) int {
	streak := 0
	for i := 0; i < maxLookback; i++ {
		day := now.AddDate(0, 0, -i)
		hit := false
		for _, c := range Daily {
			if entry, ok := progress[Key(c, day)]; ok && entry.Completed {
				hit = true
				break
			}
		}
		if !hit {
			break
		}
		streak++
	}
	return streak
}

// TotalPoints recomputes the point total from the completion entries
// themselves. The stored profile total is always set to this sum, never
// incremented, so the number stays auditable.
func TotalPoints(progress ProgressMap) int {
	total := 0
	for _, entry := range progress {
		if entry.Completed {
			total += entry.Points
		}
	}
	return total
}

// CrossedMilestones returns the milestone thresholds newly reached by streak,
// given the highest threshold the user has already been notified for. The
// caller persists the new high-water mark so each threshold fires once.
func CrossedMilestones(lastNotified, streak int) []int {
	var crossed []int
	for _, m := range Milestones {
		if m > lastNotified && streak >= m {
			crossed = append(crossed, m)
		}
	}
	return crossed
}
