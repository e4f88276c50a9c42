package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/insights"
	"github.com/iliketocde/Finance-Tracker/kafka"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/models"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

type CreateExpenseRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Category       string  `json:"category" binding:"required"`
	Description    string  `json:"description"`
	IsSubscription *bool   `json:"is_subscription"`
}

// HandleCreateExpense records a new expense for the caller. The record is
// written first; the recompute event is published best-effort afterward, so a
// broker outage never loses the expense itself.
func HandleCreateExpense(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid amount and category."})
		return
	}

	// An explicit flag from the client wins; otherwise the description
	// decides.
	isSubscription := insights.DetectSubscription(req.Description)
	if req.IsSubscription != nil {
		isSubscription = *req.IsSubscription
	}

	expense := models.Expense{
		UserID:         claims.Sub,
		Amount:         req.Amount,
		Category:       strings.TrimSpace(req.Category),
		Description:    strings.TrimSpace(req.Description),
		Timestamp:      time.Now(),
		IsSubscription: isSubscription,
	}

	id, err := mongodb.InsertExpense(c, &expense)
	if err != nil {
		logger.Get().Error("error creating expense",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save your expense."})
		return
	}

	if kafka.EventProducer != nil {
		event := &models.ExpenseEvent{
			UserID:    claims.Sub,
			ExpenseID: id,
			Amount:    expense.Amount,
			Category:  expense.Category,
		}
		if err := kafka.ProduceExpenseEvent(event); err != nil {
			logger.Get().Warn("expense saved but event not published",
				zap.String("expense_id", id),
				zap.Error(err))
		}
	}

	logger.Get().Info("expense created",
		zap.String("user_id", claims.Sub),
		zap.String("expense_id", id))
	c.JSON(http.StatusCreated, expense)
}

// HandleListExpenses returns the caller's expenses newest-first, filtered by
// the optional window query parameter (daily, weekly, monthly, all).
func HandleListExpenses(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	window := insights.ParseWindow(c.Query("window"))
	var cutoff time.Time
	if days, bounded := window.Days(); bounded {
		cutoff = time.Now().AddDate(0, 0, -days)
	}

	expenses, err := mongodb.ListExpenses(c, claims.Sub, cutoff)
	if err != nil {
		logger.Get().Error("error listing expenses",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your expenses."})
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	c.JSON(http.StatusOK, gin.H{
		"window":   window,
		"expenses": expenses,
	})
}
