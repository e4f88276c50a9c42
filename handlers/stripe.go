package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/models"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"go.uber.org/zap"
)

type UpgradeRequest struct {
	Plan models.PlanTier `json:"plan" binding:"required"`
}

// priceIDFor maps a paid tier to its Stripe price. The free tier has no
// price; downgrades never go through checkout.
func priceIDFor(plan models.PlanTier) string {
	switch plan {
	case models.PlanPro:
		return os.Getenv("STRIPE_PRICE_ID_PRO")
	case models.PlanPlus:
		return os.Getenv("STRIPE_PRICE_ID_PLUS")
	}
	return ""
}

func checkoutURLs() (success, cancel string) {
	base := os.Getenv("FRONTEND_ORIGIN")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base + "/upgrade/success?session_id={CHECKOUT_SESSION_ID}", base + "/upgrade/canceled"
}

// HandleCreateCheckoutSession starts a subscription checkout for a paid tier.
// The profile's Stripe customer is created on first upgrade and reused after,
// so the webhook can find the user by customer ID alone.
func HandleCreateCheckoutSession(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidPlan(req.Plan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose a valid plan."})
		return
	}

	priceID := priceIDFor(req.Plan)
	if priceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This plan cannot be purchased."})
		return
	}

	profile, err := db.GetProfileByID(claims.Sub)
	if err != nil || profile == nil {
		logger.Get().Error("error loading profile for checkout",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout."})
		return
	}

	stripeID, err := ensureCustomer(profile)
	if err != nil {
		logger.Get().Error("error creating Stripe customer",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout."})
		return
	}

	successURL, cancelURL := checkoutURLs()
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(stripeID),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("plan", string(req.Plan))
	params.AddMetadata("user_id", claims.Sub)

	s, err := session.New(params)
	if err != nil {
		logger.Get().Error("error creating checkout session",
			zap.String("user_id", claims.Sub),
			zap.String("plan", string(req.Plan)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout."})
		return
	}

	logger.Get().Info("checkout session created",
		zap.String("user_id", claims.Sub),
		zap.String("plan", string(req.Plan)))
	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

func ensureCustomer(profile *models.Profile) (string, error) {
	if profile.StripeID != nil && *profile.StripeID != "" {
		return *profile.StripeID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(profile.Email),
	}
	params.AddMetadata("user_id", profile.UserID)
	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	if err := db.UpdateStripeIDByUserID(profile.UserID, cust.ID); err != nil {
		return "", err
	}
	return cust.ID, nil
}

// HandleStripeWebhook applies verified billing events to plan state. The
// verifier middleware has already checked the signature; an unknown or stale
// customer here is logged and acknowledged, never retried into an error loop.
func HandleStripeWebhook(c *gin.Context) {
	value, exists := c.Get(middleware.StripeEventKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook event missing"})
		return
	}
	event, ok := value.(stripe.Event)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook event malformed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			logger.Get().Error("error decoding checkout session", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
			return
		}

		plan := models.PlanTier(s.Metadata["plan"])
		if !models.ValidPlan(plan) || plan == models.PlanFree {
			logger.Get().Warn("checkout completed with unknown plan",
				zap.String("plan", s.Metadata["plan"]))
			break
		}
		if s.Customer == nil {
			logger.Get().Warn("checkout completed without customer")
			break
		}

		if err := db.UpdatePlanByStripeID(s.Customer.ID, plan, time.Now()); err != nil {
			logger.Get().Error("error applying plan upgrade",
				zap.String("stripe_id", s.Customer.ID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply upgrade"})
			return
		}
		logger.Get().Info("plan upgraded",
			zap.String("stripe_id", s.Customer.ID),
			zap.String("plan", string(plan)))

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			logger.Get().Error("error decoding invoice", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
			return
		}
		if inv.Customer == nil {
			break
		}

		if err := db.UpdatePlanByStripeID(inv.Customer.ID, models.PlanFree, time.Now()); err != nil {
			logger.Get().Error("error applying downgrade",
				zap.String("stripe_id", inv.Customer.ID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply downgrade"})
			return
		}
		logger.Get().Info("plan downgraded after failed payment",
			zap.String("stripe_id", inv.Customer.ID))

	default:
		logger.Get().Debug("unhandled webhook event",
			zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
