package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/models"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

func HandleListNotifications(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := mongodb.ListNotifications(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error listing notifications",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your notifications."})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func HandleMarkNotificationsRead(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := mongodb.MarkNotificationsRead(c, claims.Sub); err != nil {
		logger.Get().Error("error marking notifications read",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update your notifications."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
