package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	httpapi "travana-referral-dashboard/internal/api/http"
	"travana-referral-dashboard/internal/cache"
	"travana-referral-dashboard/internal/client/identity"
	"travana-referral-dashboard/internal/client/referralapi"
	"travana-referral-dashboard/internal/config"
	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/jobs"
	"travana-referral-dashboard/internal/logger"
	"travana-referral-dashboard/internal/repository/postgres"
	"travana-referral-dashboard/internal/scheduler"
	"travana-referral-dashboard/internal/security"
	"travana-referral-dashboard/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", true, "Apply the share-message schema on startup")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Travana Referral Dashboard...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "public_base_url", cfg.Server.PublicBaseURL)
	logger.Info("Upstream configuration", "referral_api", cfg.ReferralAPI.BaseURL, "identity", cfg.Identity.BaseURL, "verify_locally", cfg.Identity.VerifyLocally)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Cache and Jobs
	queryCache := cache.New(cfg.CacheTTL())
	jobRunner := jobs.NewJobRunner(queryCache, store, cfg)
	if *migrate {
		if err := jobRunner.MigrateSchema(); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}

	// Initialize Upstream Clients
	referralClient := referralapi.NewClient(cfg.ReferralAPI.BaseURL, cfg.ReferralAPITimeout())
	identityClient := identity.NewClient(cfg.Identity.BaseURL, cfg.IdentityTimeout())

	// Initialize Security
	var tokenManager security.TokenManager
	if cfg.Identity.VerifyLocally {
		tokenManager = security.NewTokenManager(cfg.Identity.JWTSecret)
	}
	verifier := security.NewSessionVerifier(tokenManager, identityClient)
	authMiddleware := httpapi.NewAuthMiddleware(verifier)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	if cfg.SendGrid.APIKey == "" {
		logger.Warn("SendGrid API key not set, share-by-email is disabled")
	}

	// Initialize Services
	referralSvc := service.NewReferralService(referralClient, queryCache, service.ReferralOptions{
		Policy:           domain.TransitionPolicy(cfg.Referrals.TransitionPolicy),
		WhatsAppGroupURL: cfg.Referrals.WhatsAppGroupURL,
	})
	shareSvc := service.NewShareService(store.ShareMessageRepository, emailSvc, cfg.Server.PublicBaseURL)
	memberSvc := service.NewMemberService(referralClient, identityClient, queryCache)
	accountSvc := service.NewAccountService(referralClient, identityClient, queryCache,
		strings.TrimRight(cfg.Server.PublicBaseURL, "/")+"/dashboard")

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Handlers{
		Referral:     httpapi.NewReferralHandler(referralSvc),
		Share:        httpapi.NewShareHandler(shareSvc),
		Organization: httpapi.NewOrganizationHandler(memberSvc),
		Auth:         httpapi.NewAuthHandler(accountSvc),
		Health:       store,
	}, authMiddleware)

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}
	cronScheduler.Start()

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.RequestLogger(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve HTTP", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	cronScheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
