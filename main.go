package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/colleco/partner_backend/config"
	"github.com/colleco/partner_backend/controllers"
	"github.com/colleco/partner_backend/middleware"
	"github.com/colleco/partner_backend/repositories"
	"github.com/colleco/partner_backend/routes"
	"github.com/colleco/partner_backend/services"
	"github.com/colleco/partner_backend/websocket"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (report caching degrades gracefully without it)
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := config.GetDatabase(client)

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "CollEco Partner Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	subscriptionRepo := repositories.NewMongoSubscriptionRepository(db)
	transactionRepo := repositories.NewMongoTransactionRepository(db)
	payoutRepo := repositories.NewMongoPayoutRepository(db)
	payoutMethodRepo := repositories.NewMongoPayoutMethodRepository(db)
	metricsRepo := repositories.NewMongoMetricsRepository(db)
	invoiceRepo := repositories.NewMongoInvoiceRepository(db)

	// Initialize services
	cache := services.NewReportCache(redisClient)
	locks := services.NewPartnerLocks()
	// Partner email addresses live in the identity service, so payout emails
	// stay off until a lookup is wired in
	notifier := services.NewNotificationService(wsHub, nil)
	tierService := services.NewTierService(metricsRepo, locks, notifier)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, invoiceRepo, cache)
	ledgerService := services.NewLedgerService(transactionRepo, subscriptionService, tierService, cache)
	payoutService := services.NewPayoutService(payoutRepo, payoutMethodRepo, ledgerService, subscriptionService, locks, notifier, cache)
	analyticsService := services.NewAnalyticsService(tierService)
	roiService := services.NewROIService(subscriptionService, tierService)

	// Initialize controllers
	planController := controllers.NewPlanController()
	subscriptionController := controllers.NewSubscriptionController(subscriptionService)
	bookingController := controllers.NewBookingController(ledgerService)
	earningsController := controllers.NewEarningsController(ledgerService)
	payoutController := controllers.NewPayoutController(payoutService)
	roiController := controllers.NewROIController(roiService)
	analyticsController := controllers.NewAnalyticsController(analyticsService, tierService)

	// Setup routes
	routes.SetupRoutes(e, wsHub,
		planController,
		subscriptionController,
		bookingController,
		earningsController,
		payoutController,
		roiController,
		analyticsController,
	)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
