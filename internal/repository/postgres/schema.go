package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"travana-referral-dashboard/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// EnsureSchema applies the embedded migrations in file-name order. Every
// statement is idempotent, so it is safe to run on each deploy.
func (s *Store) EnsureSchema(ctx context.Context) (int, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return 0, err
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := migrationFiles.ReadFile(name)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", name, err)
		}
		logger.DatabaseCall("EnsureSchema", name)
		if _, err := s.db.ExecContext(ctx, string(stmt)); err != nil {
			logger.DatabaseResult("EnsureSchema", 0, err, "file", name)
			return 0, fmt.Errorf("failed to apply %s: %w", name, err)
		}
		logger.DatabaseResult("EnsureSchema", 0, nil, "file", name)
	}
	return len(names), nil
}
