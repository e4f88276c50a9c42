package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"go.uber.org/zap"
)

type UpdateBalanceRequest struct {
	Balance *float64 `json:"balance" binding:"required"`
}

type UpdatePreferencesRequest struct {
	Notifications *bool `json:"notifications"`
	DarkMode      *bool `json:"dark_mode"`
	Biometric     *bool `json:"biometric"`
	AutoBackup    *bool `json:"auto_backup"`
}

func HandleGetProfile(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := db.GetProfileByID(claims.Sub)
	if err != nil {
		logger.Get().Error("error fetching profile",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		logger.Get().Info("no profile found", zap.String("user_id", claims.Sub))
		c.JSON(http.StatusOK, gin.H{"no_profile": true})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// HandleUpdateBalance writes a validated balance. The amount is bound as a
// number so "abc" never reaches the store.
func HandleUpdateBalance(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid number for balance."})
		return
	}

	if err := db.UpdateBalance(claims.Sub, *req.Balance); err != nil {
		logger.Get().Error("error updating balance",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update your balance."})
		return
	}

	logger.Get().Info("balance updated", zap.String("user_id", claims.Sub))
	c.JSON(http.StatusOK, gin.H{"message": "Balance updated successfully."})
}

// HandleUpdatePreferences merges the provided toggles into the stored set;
// omitted fields keep their current values.
func HandleUpdatePreferences(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := db.GetProfileByID(claims.Sub)
	if err != nil {
		logger.Get().Error("error fetching profile",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	prefs := profile.Preferences
	if req.Notifications != nil {
		prefs.Notifications = *req.Notifications
	}
	if req.DarkMode != nil {
		prefs.DarkMode = *req.DarkMode
	}
	if req.Biometric != nil {
		prefs.Biometric = *req.Biometric
	}
	if req.AutoBackup != nil {
		prefs.AutoBackup = *req.AutoBackup
	}

	if err := db.UpdatePreferences(claims.Sub, prefs); err != nil {
		logger.Get().Error("error updating preferences",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
