// Package db opens and prepares the optional Postgres catalog.
package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"

	_ "github.com/lib/pq"
)

type Config struct {
	URL string
}

// NewConnection creates and verifies a new database connection
func NewConnection(cfg Config) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	conn, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	// Set reasonable defaults for connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	log.Printf("Connected to database at %s", MaskDatabaseURL(cfg.URL))
	return conn, nil
}

// EnsureSchema creates the catalog tables when they do not exist. The vector
// extension backs the embedding column used by semantic search; ada-002
// embeddings are 1536-dimensional.
func EnsureSchema(conn *sql.DB) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			original_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS video_segments (
			id BIGSERIAL PRIMARY KEY,
			video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			segment_text TEXT NOT NULL,
			start_seconds DOUBLE PRECISION NOT NULL,
			end_seconds DOUBLE PRECISION NOT NULL,
			embedding vector(1536)
		)`,
		`CREATE INDEX IF NOT EXISTS video_segments_video_id_idx
			ON video_segments (video_id)`,
	}
	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// MaskDatabaseURL masks sensitive information in database URL for logging
func MaskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[masked]"
	}
	if u.User != nil {
		u.User = url.User("masked")
	}
	return u.String()
}
