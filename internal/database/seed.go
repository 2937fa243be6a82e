package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// DefaultGenres are the genres inserted once when the genres table is empty
var DefaultGenres = []string{
	"Fiction",
	"Non-Fiction",
	"Science Fiction",
	"Mystery",
	"Biography",
	"History",
	"Self-Help",
	"Business",
	"Children",
}

// SeedGenres inserts the default genres if and only if the genres table is
// empty. An already-populated table is left untouched.
func SeedGenres(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM genres`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count genres: %w", err)
	}

	if count > 0 {
		return nil
	}

	for _, name := range DefaultGenres {
		if _, err := db.ExecContext(ctx, `INSERT INTO genres (name) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("failed to seed genre %q: %w", name, err)
		}
	}

	logger.Info("Default genres added", zap.Int("count", len(DefaultGenres)))
	return nil
}
