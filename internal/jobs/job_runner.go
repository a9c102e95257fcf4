package jobs

import (
	"context"
	"time"

	"travana-referral-dashboard/internal/config"
	"travana-referral-dashboard/internal/logger"
)

// CachePurger drops expired query cache entries.
type CachePurger interface {
	PurgeExpired() int
}

// SchemaMigrator applies the local share-message schema.
type SchemaMigrator interface {
	EnsureSchema(ctx context.Context) (int, error)
}

const migrateTimeout = 30 * time.Second

// JobRunner coordinates all scheduled and one-shot jobs
type JobRunner struct {
	cache  CachePurger
	schema SchemaMigrator
	config *config.Config
}

// NewJobRunner creates a job runner. Either dependency may be nil when the
// process has no use for the jobs that need it.
func NewJobRunner(cache CachePurger, schema SchemaMigrator, cfg *config.Config) *JobRunner {
	return &JobRunner{
		cache:  cache,
		schema: schema,
		config: cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// PurgeExpiredCache frees memory held by entries nobody has read since they
// expired. Reads already ignore expired entries.
func (jr *JobRunner) PurgeExpiredCache() {
	jr.runWithRecovery("PurgeExpiredCache", func() {
		if jr.cache == nil {
			logger.Warn("No cache configured, skipping purge")
			return
		}
		n := jr.cache.PurgeExpired()
		logger.Debug("Purged expired cache entries", "count", n)
	})
}

// MigrateSchema applies the embedded migrations. It reports failure so the
// one-shot runner can exit non-zero.
func (jr *JobRunner) MigrateSchema() error {
	var err error
	jr.runWithRecovery("MigrateSchema", func() {
		if jr.schema == nil {
			logger.Warn("No database configured, skipping migration")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
		defer cancel()

		var n int
		n, err = jr.schema.EnsureSchema(ctx)
		if err != nil {
			logger.Error("Failed to apply schema", "error", err)
			return
		}
		logger.Info("Schema applied", "files", n)
	})
	return err
}
