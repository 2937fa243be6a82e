package database

import (
	"testing"

	"bookstore/internal/config"
)

// The pool is bounded but callers wait in an unbounded queue when it is
// saturated: database/sql applies no admission control or wait timeout, and
// neither does this service. This test pins the bound itself.
func TestNewBoundsThePool(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "bookstore_user",
		Password: "bookstore_password",
		Database: "bookstore_db",
		Schema:   "public",
		MaxConns: 10,
	}

	// sql.Open is lazy, so no server is needed to inspect pool settings
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer svc.Close()

	stats := svc.DB().Stats()
	if stats.MaxOpenConnections != cfg.MaxConns {
		t.Errorf("MaxOpenConnections = %d, want %d", stats.MaxOpenConnections, cfg.MaxConns)
	}
}
