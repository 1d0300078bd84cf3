package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"popup-registration-platform/internal/config"
	"popup-registration-platform/internal/database"
	"popup-registration-platform/internal/handlers"
	"popup-registration-platform/internal/middleware"
	"popup-registration-platform/internal/pricing"
	"popup-registration-platform/internal/repositories"
	"popup-registration-platform/internal/server"
	"popup-registration-platform/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	healthChecks := map[string]handlers.HealthCheck{
		"database": db.PingContext,
	}

	// Initialize repositories
	passRepo := repositories.NewPassRepository(db.DB)
	var passStore services.PassStore = passRepo

	if cfg.Redis.URL != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			log.Printf("Catalog cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			passStore = repositories.NewCachedPassRepository(passRepo, redisClient, cfg.Redis.CacheTTL)
			healthChecks["redis"] = func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}
			log.Printf("Catalog cache enabled (TTL %s)", cfg.Redis.CacheTTL)
		}
	} else {
		log.Println("Catalog cache disabled (REDIS_URL not set)")
	}

	attendeeRepo := repositories.NewAttendeeRepository(db.DB)
	groupRepo := repositories.NewGroupRepository(db.DB)
	couponRepo := repositories.NewCouponRepository(db.DB)
	purchaseRepo := repositories.NewPurchaseRepository(db.DB)

	// Initialize services
	paymentService, err := services.NewPaymentService(cfg.Checkout.PaymentProvider)
	if err != nil {
		log.Fatal("Failed to initialize payment service:", err)
	}

	formatter, err := pricing.NewFormatter(cfg.Checkout.Currency)
	if err != nil {
		log.Fatal("Failed to initialize formatter:", err)
	}

	checkoutService := services.NewCheckoutService(passStore, attendeeRepo, groupRepo, couponRepo, purchaseRepo, paymentService, formatter)

	// Create session store
	sessionStore := middleware.NewSessionStore(cfg.Session.Secret, cfg.Session.MaxAge, !cfg.IsDevelopment())

	router := server.NewRouter(server.Dependencies{
		Checkout:                  checkoutService,
		SessionStore:              sessionStore,
		SessionTimeout:            time.Duration(cfg.Session.MaxAge) * time.Second,
		AllowedOrigins:            cfg.Server.AllowedOrigins,
		CheckoutAttemptsPerMinute: cfg.Checkout.AttemptsPerMinute,
		HealthChecks:              healthChecks,
	})

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s (Environment: %s, currency: %s)", serverAddr, cfg.Server.Env, cfg.Checkout.Currency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
