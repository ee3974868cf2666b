package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"

	"paynapple-backend/checkout"
	"paynapple-backend/controllers"
	"paynapple-backend/database"
	"paynapple-backend/invoices"
	"paynapple-backend/middlewares"
	"paynapple-backend/routes"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	// ---- Persistence: remote multi-account service when DATABASE_URL is
	// set, embedded local store otherwise.
	localPath := os.Getenv("LOCAL_DB_PATH")
	if localPath == "" {
		localPath = "paynapple.db"
	}
	store, err := database.Open(os.Getenv("DATABASE_URL"), localPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	mgr := invoices.NewManager(context.Background(), store)

	// ---- Notifications: user-facing messages are an external concern; the
	// server logs them.
	notifier := checkout.NotifierFunc(func(message, level string) {
		log.Printf("notify [%s]: %s", level, message)
	})

	// ---- Checkout
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	endpoint := os.Getenv("CHECKOUT_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:" + port + "/api/create-checkout-session"
	}
	orch := checkout.NewOrchestrator(checkout.NewHTTPSessionClient(endpoint), mgr, notifier)
	if ms := envInt("DEMO_DELAY_MS", 0); ms > 0 {
		orch.Delay = time.Duration(ms) * time.Millisecond
	}

	stripeClient := controllers.NewStripeClient(os.Getenv("STRIPE_SECRET_KEY"))
	if stripeClient == nil {
		log.Println("STRIPE_SECRET_KEY not set; checkout will run in demo mode")
	}

	// ---- Limits (configurable via env)
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// ---- Global rate limiter
	rlMax := envInt("RATE_LIMIT_MAX", 60)
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
	}))

	// ---- Routes
	routes.Register(app, routes.Deps{
		Manager:      mgr,
		Orchestrator: orch,
		Notifier:     notifier,
		Stripe:       stripeClient,
		AppOrigin:    os.Getenv("APP_ORIGIN"),
	})

	// ---- Start
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
