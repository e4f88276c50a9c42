package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"go.uber.org/zap"
)

// HandleMigrateLegacy runs the legacy transaction migration. Operator-only,
// behind the internal API key; safe to re-run because migrated rows are
// removed from the legacy collection as they convert.
func HandleMigrateLegacy(c *gin.Context) {
	migrated, err := mongodb.MigrateLegacyTransactions(c)
	if err != nil {
		logger.Get().Error("legacy migration failed",
			zap.Int("migrated_before_failure", migrated),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Migration failed partway through.",
			"migrated": migrated,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"migrated": migrated})
}
