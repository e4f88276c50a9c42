package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/iliketocde/Finance-Tracker/challenges"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/models"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

// RunDailyStreakCheck recomputes every profile's daily streak, persists it,
// and writes a milestone notification for thresholds crossed since the last
// one the user was told about. Scheduled from main via cron shortly after
// midnight; also safe to run ad hoc.
func RunDailyStreakCheck(ctx context.Context) {
	userIDs, err := db.ListUserIDs()
	if err != nil {
		logger.Get().Error("streak check: failed to list users", zap.Error(err))
		return
	}

	now := time.Now()
	for _, userID := range userIDs {
		if err := checkUserStreak(ctx, userID, now); err != nil {
			logger.Get().Error("streak check failed for user",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	logger.Get().Info("daily streak check complete", zap.Int("users", len(userIDs)))
}

func checkUserStreak(ctx context.Context, userID string, now time.Time) error {
	progress, err := mongodb.GetProgress(ctx, userID)
	if err != nil {
		// Unloadable progress degrades to day one, not a hard failure.
		logger.Get().Warn("streak check: progress unavailable, treating as empty",
			zap.String("user_id", userID),
			zap.Error(err))
		progress = challenges.ProgressMap{}
	}

	streak := challenges.Streak(progress, now)
	if err := db.UpdateStreak(userID, streak); err != nil {
		return err
	}

	profile, err := db.GetProfileByID(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	for _, milestone := range challenges.CrossedMilestones(profile.LastMilestone, streak) {
		advanced, err := db.AdvanceMilestone(userID, milestone)
		if err != nil {
			return err
		}
		if !advanced {
			// Another recomputation got there first.
			continue
		}

		notification := &models.Notification{
			UserID:    userID,
			Title:     "Streak Milestone!",
			Body:      fmt.Sprintf("Amazing! You've completed challenges for %d days in a row!", milestone),
			CreatedAt: now,
		}
		if err := mongodb.InsertNotification(ctx, notification); err != nil {
			return err
		}

		logger.Get().Info("streak milestone reached",
			zap.String("user_id", userID),
			zap.Int("milestone", milestone))
	}

	return nil
}
