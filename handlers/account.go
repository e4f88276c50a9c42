package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

// HandleDeleteAccount removes every trace of the caller: expenses, goals,
// challenge progress, notifications, the profile row, and finally the
// identity-provider account. Each store is attempted even if an earlier one
// fails, so a partial outage deletes as much as it can.
func HandleDeleteAccount(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var failed []string

	if err := mongodb.DeleteExpensesByUserID(c, claims.Sub); err != nil {
		logger.Get().Error("error deleting expenses",
			zap.String("user_id", claims.Sub), zap.Error(err))
		failed = append(failed, "expenses")
	}
	if err := mongodb.DeleteGoalsByUserID(c, claims.Sub); err != nil {
		logger.Get().Error("error deleting goals",
			zap.String("user_id", claims.Sub), zap.Error(err))
		failed = append(failed, "goals")
	}
	if err := mongodb.DeleteProgressByUserID(c, claims.Sub); err != nil {
		logger.Get().Error("error deleting challenge progress",
			zap.String("user_id", claims.Sub), zap.Error(err))
		failed = append(failed, "progress")
	}
	if err := mongodb.DeleteNotificationsByUserID(c, claims.Sub); err != nil {
		logger.Get().Error("error deleting notifications",
			zap.String("user_id", claims.Sub), zap.Error(err))
		failed = append(failed, "notifications")
	}
	if err := db.DeleteProfile(claims.Sub); err != nil {
		logger.Get().Error("error deleting profile",
			zap.String("user_id", claims.Sub), zap.Error(err))
		failed = append(failed, "profile")
	}
	if err := deleteAuthUser(claims.Sub); err != nil {
		logger.Get().Error("error deleting auth account",
			zap.String("user_id", claims.Sub), zap.Error(err))
		failed = append(failed, "auth")
	}

	if len(failed) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Some of your data could not be deleted. Please try again.",
			"failed": failed,
		})
		return
	}

	logger.Get().Info("account deleted", zap.String("user_id", claims.Sub))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// deleteAuthUser removes the identity-provider account via the admin API.
func deleteAuthUser(userID string) error {
	url := fmt.Sprintf("%s/auth/v1/admin/users/%s", os.Getenv("SUPABASE_URL"), userID)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("admin delete returned %d", resp.StatusCode)
	}
	return nil
}
