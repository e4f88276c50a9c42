package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/handlers"
	"github.com/iliketocde/Finance-Tracker/insights"
	"github.com/iliketocde/Finance-Tracker/kafka"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/mongodb"
	"github.com/iliketocde/Finance-Tracker/worker"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

func init() {
	// .env is optional; production config comes from the environment.
	_ = godotenv.Load()

	development := os.Getenv("ENV") != "production"
	level := logger.LogLevel(os.Getenv("LOG_LEVEL"))
	if err := logger.Init(development, level); err != nil {
		panic(err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
}

func main() {
	defer logger.Sync()

	if err := db.InitDB(); err != nil {
		logger.Get().Fatal("failed to initialize Postgres", zap.Error(err))
	}
	defer db.CloseDB()

	if err := mongodb.InitMongoDB(); err != nil {
		logger.Get().Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	defer mongodb.CloseMongoDB()

	// The live-snapshot pipeline: expense events in, recomputed monthly
	// snapshots out to whichever stream the user has open.
	pool := worker.NewWorkerPool(workerCount(), func(ctx context.Context, userID string) (insights.Snapshot, error) {
		return handlers.RecomputeSnapshot(ctx, userID, insights.WindowMonthly)
	})
	pool.Start()
	defer pool.Stop()

	if os.Getenv("KAFKA_BOOTSTRAP_SERVERS") != "" {
		if err := kafka.InitProducer(); err != nil {
			logger.Get().Fatal("failed to initialize Kafka producer", zap.Error(err))
		}
		defer kafka.EventProducer.Close()

		if err := kafka.StartConsumer(pool); err != nil {
			logger.Get().Fatal("failed to start Kafka consumer", zap.Error(err))
		}
	} else {
		logger.Get().Warn("KAFKA_BOOTSTRAP_SERVERS not set, live snapshot events disabled")
	}

	// Recompute streaks shortly after midnight so a missed day resets the
	// count before anyone opens the app.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("5 0 * * *", func() {
		worker.RunDailyStreakCheck(context.Background())
	}); err != nil {
		logger.Get().Fatal("failed to schedule streak check", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.RequestID)
	router.Use(middleware.CorsMiddleware)

	// Public routes: no session yet.
	router.POST("/auth/signup", handlers.HandleSignup)
	router.POST("/auth/login", handlers.HandleLogin)
	router.POST("/webhook", middleware.StripeWebhookVerifier, handlers.HandleStripeWebhook)

	// Streaming routes carry the token as a query parameter and verify it
	// themselves.
	router.GET("/sse/insights", handlers.HandleSSE)
	router.GET("/ws/insights", handlers.HandleLiveSnapshots)

	router.GET("/metrics", gin.WrapF(pool.MetricsHandler))

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware)
	{
		api.GET("/profile", handlers.HandleGetProfile)
		api.PUT("/profile/balance", handlers.HandleUpdateBalance)
		api.PUT("/profile/preferences", handlers.HandleUpdatePreferences)
		api.DELETE("/account", handlers.HandleDeleteAccount)

		api.POST("/expenses", handlers.HandleCreateExpense)
		api.GET("/expenses", handlers.HandleListExpenses)
		api.GET("/insights", handlers.HandleGetInsights)

		api.POST("/goals", handlers.HandleCreateGoal)
		api.GET("/goals", handlers.HandleListGoals)
		api.POST("/goals/:goalID/funds", handlers.HandleAddFunds)

		api.GET("/challenges", handlers.HandleListChallenges)
		api.POST("/challenges/complete", handlers.HandleCompleteChallenge)

		api.GET("/notifications", handlers.HandleListNotifications)
		api.POST("/notifications/read", handlers.HandleMarkNotificationsRead)

		api.POST("/chat", handlers.HandleChat)
		api.POST("/chat/title", handlers.HandleChatTitle)

		api.POST("/upgrade", handlers.HandleCreateCheckoutSession)
	}

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware)
	{
		internal.POST("/migrate-transactions", handlers.HandleMigrateLegacy)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Get().Info("server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil && err != http.ErrServerClosed {
		logger.Get().Fatal("server failed", zap.Error(err))
	}
}

func workerCount() int {
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 4
}
