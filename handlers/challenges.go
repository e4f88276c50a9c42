package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/challenges"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/models"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

type CompleteChallengeRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
}

// challengeView is a catalog entry with the caller's completion state for the
// current instance attached.
type challengeView struct {
	models.Challenge
	Completed bool `json:"completed"`
}

// HandleListChallenges returns both catalogs with per-instance completion
// state, plus the caller's streak and point totals recomputed from the
// completion entries.
func HandleListChallenges(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	progress, err := mongodb.GetProgress(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error loading challenge progress",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your challenges."})
		return
	}

	now := time.Now()
	daily := make([]challengeView, 0, len(challenges.Daily))
	for _, ch := range challenges.Daily {
		entry, ok := progress[challenges.Key(ch, now)]
		daily = append(daily, challengeView{Challenge: ch, Completed: ok && entry.Completed})
	}
	weekly := make([]challengeView, 0, len(challenges.Weekly))
	for _, ch := range challenges.Weekly {
		entry, ok := progress[challenges.Key(ch, now)]
		weekly = append(weekly, challengeView{Challenge: ch, Completed: ok && entry.Completed})
	}

	c.JSON(http.StatusOK, gin.H{
		"daily":        daily,
		"weekly":       weekly,
		"total_points": challenges.TotalPoints(progress),
		"daily_streak": challenges.Streak(progress, now),
	})
}

// HandleCompleteChallenge marks the current instance of a challenge done.
// Completion is append-only: a repeat call for the same instance changes
// nothing and awards nothing. The stored point total and streak are always
// recomputed from the entries, never incremented in place.
func HandleCompleteChallenge(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CompleteChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose a challenge to complete."})
		return
	}

	challenge, found := challenges.Find(req.ChallengeID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown challenge"})
		return
	}

	now := time.Now()
	entry := &models.ProgressEntry{
		UserID:      claims.Sub,
		Key:         challenges.Key(challenge, now),
		ChallengeID: challenge.ID,
		Completed:   true,
		CompletedAt: now,
		Points:      challenge.Points,
	}

	newlyCompleted, err := mongodb.MarkCompleted(c, entry)
	if err != nil {
		logger.Get().Error("error recording completion",
			zap.String("user_id", claims.Sub),
			zap.String("challenge_id", challenge.ID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record your completion."})
		return
	}

	progress, err := mongodb.GetProgress(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error reloading progress",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update your totals."})
		return
	}

	totalPoints := challenges.TotalPoints(progress)
	streak := challenges.Streak(progress, now)

	if err := db.SetTotalPoints(claims.Sub, totalPoints); err != nil {
		logger.Get().Error("error storing point total",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
	}
	if err := db.UpdateStreak(claims.Sub, streak); err != nil {
		logger.Get().Error("error storing streak",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
	}

	milestones := notifyMilestones(c, claims.Sub, streak)

	c.JSON(http.StatusOK, gin.H{
		"newly_completed": newlyCompleted,
		"points_awarded":  challenge.Points,
		"total_points":    totalPoints,
		"daily_streak":    streak,
		"milestones":      milestones,
	})
}

// notifyMilestones writes a notification for each milestone the streak newly
// crossed. The single-row guard in AdvanceMilestone makes each threshold fire
// once even under concurrent completions.
func notifyMilestones(c *gin.Context, userID string, streak int) []int {
	profile, err := db.GetProfileByID(userID)
	if err != nil || profile == nil {
		if err != nil {
			logger.Get().Error("error loading profile for milestone check",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return nil
	}

	var fired []int
	for _, m := range challenges.CrossedMilestones(profile.LastMilestone, streak) {
		advanced, err := db.AdvanceMilestone(userID, m)
		if err != nil {
			logger.Get().Error("error advancing milestone",
				zap.String("user_id", userID),
				zap.Int("milestone", m),
				zap.Error(err))
			continue
		}
		if !advanced {
			continue
		}

		notification := &models.Notification{
			UserID:    userID,
			Title:     "Streak Milestone!",
			Body:      fmt.Sprintf("Amazing! You've completed challenges for %d days in a row!", m),
			CreatedAt: time.Now(),
		}
		if err := mongodb.InsertNotification(c, notification); err != nil {
			logger.Get().Error("error writing milestone notification",
				zap.String("user_id", userID),
				zap.Int("milestone", m),
				zap.Error(err))
			continue
		}
		fired = append(fired, m)
	}
	return fired
}
