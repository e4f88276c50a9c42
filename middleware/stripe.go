package middleware

import (
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

const StripeEventKey = "stripe_event"

// StripeWebhookVerifier checks the webhook signature before the handler sees
// the event. Unsigned or tampered payloads never reach plan updates.
func StripeWebhookVerifier(c *gin.Context) {
	if c.Request.Method != "POST" {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		c.Abort()
		return
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		logger.Get().Error("reading webhook body", zap.Error(err))
		c.Abort()
		return
	}

	event, err := webhook.ConstructEvent(b, c.Request.Header.Get("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		logger.Get().Error("verifying webhook signature", zap.Error(err))
		c.Abort()
		return
	}

	c.Set(StripeEventKey, event)
	c.Next()
}
