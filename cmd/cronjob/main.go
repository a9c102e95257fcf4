package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"travana-referral-dashboard/internal/config"
	"travana-referral-dashboard/internal/jobs"
	"travana-referral-dashboard/internal/logger"
	"travana-referral-dashboard/internal/repository/postgres"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "migrate", "Job to run once before exiting (e.g., 'migrate')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Travana job runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// The query cache lives in the server process, so only storage jobs run here
	store := postgres.NewStore(db)
	jobRunner := jobs.NewJobRunner(nil, store, cfg)

	logger.Info("Running job once", "job", *runOnce)
	if err := runJobOnce(jobRunner, *runOnce); err != nil {
		db.Close()
		log.Fatalf("Job %s failed: %v", *runOnce, err)
	}
	logger.Info("Job execution completed", "job", *runOnce)
}

// runJobOnce runs a specific job once
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) error {
	switch jobName {
	case "migrate":
		return jobRunner.MigrateSchema()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - migrate\n")
		os.Exit(1)
	}
	return nil
}
