package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/models"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

type CreateGoalRequest struct {
	Title  string  `json:"title" binding:"required"`
	Target float64 `json:"target" binding:"required,gt=0"`
	Color  string  `json:"color"`
}

type AddFundsRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func HandleCreateGoal(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a goal name and a target above zero."})
		return
	}

	goal := models.SavingGoal{
		UserID:    claims.Sub,
		Title:     strings.TrimSpace(req.Title),
		Target:    req.Target,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}
	if goal.Color == "" {
		goal.Color = "#10b981"
	}

	if _, err := mongodb.InsertGoal(c, &goal); err != nil {
		logger.Get().Error("error creating goal",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create your goal."})
		return
	}

	logger.Get().Info("goal created",
		zap.String("user_id", claims.Sub),
		zap.String("goal_id", goal.ID))
	c.JSON(http.StatusCreated, goal)
}

func HandleListGoals(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	goals, err := mongodb.ListGoals(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error listing goals",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your goals."})
		return
	}
	if goals == nil {
		goals = []models.SavingGoal{}
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// HandleAddFunds applies an atomic increment to the goal's saved amount and
// returns the updated goal. Two concurrent deposits both land.
func HandleAddFunds(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	goalID := c.Param("goalID")
	var req AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter an amount above zero."})
		return
	}

	updated, err := mongodb.AddFunds(c, claims.Sub, goalID, req.Amount)
	if err != nil {
		logger.Get().Error("error adding funds",
			zap.String("user_id", claims.Sub),
			zap.String("goal_id", goalID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add funds to your goal."})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
