// Package store provides PostgreSQL persistence for style guides,
// generated content, blog source stats, and topic ideas.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Cache freshness windows. A stale row is treated as absent by the
// Fresh* getters; the caller regenerates and re-saves.
const (
	// DefaultStyleGuideTTL is how long a cached style guide stays usable.
	DefaultStyleGuideTTL = 30 * 24 * time.Hour
	// TopicsCacheTTL is how long a cached extracted-topics list stays usable.
	TopicsCacheTTL = 7 * 24 * time.Hour
)

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS style_guides (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			brand TEXT NOT NULL,
			domain TEXT NOT NULL,
			tone TEXT,
			heading_style TEXT,
			list_style TEXT,
			guide_text TEXT NOT NULL,
			analysis_quality TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (brand, domain)
		)`,
		`CREATE TABLE IF NOT EXISTS generated_content (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			brand TEXT NOT NULL,
			topic TEXT NOT NULL,
			source_blog TEXT,
			status TEXT NOT NULL DEFAULT 'Generated',
			final_content TEXT,
			seo_score INT,
			word_count INT,
			user_notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS blog_sources (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			brand TEXT NOT NULL,
			domain TEXT NOT NULL,
			category TEXT,
			quality_rating INT,
			success_count INT NOT NULL DEFAULT 0,
			topics_json JSONB,
			topics_updated_at TIMESTAMPTZ,
			last_analyzed TIMESTAMPTZ,
			notes TEXT,
			UNIQUE (brand, domain)
		)`,
		`CREATE TABLE IF NOT EXISTS topic_ideas (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			brand TEXT NOT NULL,
			source_blog TEXT,
			title TEXT NOT NULL,
			angle TEXT,
			keywords TEXT[],
			content_type TEXT,
			rationale TEXT,
			search_volume TEXT,
			competition TEXT,
			trend_score INT,
			trend_status TEXT,
			status TEXT NOT NULL DEFAULT 'New',
			used_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
