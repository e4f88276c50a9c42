package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/insights"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

// RecomputeSnapshot loads a user's expenses for the window and folds them into
// a fresh snapshot. The pull endpoint below and the event-driven worker pool
// both go through here, so the two paths can never disagree.
func RecomputeSnapshot(ctx context.Context, userID string, window insights.Window) (insights.Snapshot, error) {
	now := time.Now()
	var cutoff time.Time
	if days, bounded := window.Days(); bounded {
		cutoff = now.AddDate(0, 0, -days)
	}

	expenses, err := mongodb.ListExpenses(ctx, userID, cutoff)
	if err != nil {
		return insights.Snapshot{}, err
	}
	return insights.BuildSnapshot(expenses, window, now), nil
}

// HandleGetInsights returns the category breakdown snapshot for the requested
// window. Computed on demand from the expense records, never cached.
func HandleGetInsights(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	window := insights.ParseWindow(c.Query("window"))
	snapshot, err := RecomputeSnapshot(c, claims.Sub, window)
	if err != nil {
		logger.Get().Error("error computing insights",
			zap.String("user_id", claims.Sub),
			zap.String("window", string(window)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your spending breakdown."})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
