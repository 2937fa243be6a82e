package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"bookstore/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service is an explicit handle on the connection pool. It is constructed
// once at process start and injected into the repositories; there is no
// package-level singleton.
type Service interface {
	DB() *sql.DB
	Health(ctx context.Context) map[string]string
	Close() error
}

type service struct {
	db *sql.DB
}

// New opens a pooled connection to the configured postgres database. The
// pool is bounded by cfg.MaxConns; callers beyond the limit wait in an
// unbounded queue with no timeout.
func New(cfg config.DatabaseConfig) (Service, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &service{db: db}, nil
}

// DB returns the underlying pool for injection into repositories
func (s *service) DB() *sql.DB {
	return s.db
}

// Health reports reachability and pool statistics
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["max_open_connections"] = strconv.Itoa(dbStats.MaxOpenConnections)

	return stats
}

// Close releases the pool
func (s *service) Close() error {
	return s.db.Close()
}
