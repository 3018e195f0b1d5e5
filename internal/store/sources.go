package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// BlogSource tracks one external blog used for style analysis or
// topic extraction, with running quality stats.
type BlogSource struct {
	Brand        string     `json:"brand"`
	Domain       string     `json:"domain"`
	Category     string     `json:"category,omitempty"`
	SuccessCount int        `json:"success_count"`
	LastAnalyzed *time.Time `json:"last_analyzed,omitempty"`
}

// RecordSourceSuccess increments the success counter for a source blog,
// creating the row on first use.
func (s *Store) RecordSourceSuccess(ctx context.Context, brandName, domain string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO blog_sources (brand, domain, success_count, last_analyzed)
		 VALUES ($1, $2, 1, NOW())
		 ON CONFLICT (brand, domain) DO UPDATE SET
		   success_count = blog_sources.success_count + 1,
		   last_analyzed = NOW()`,
		brandName, domain,
	)
	if err != nil {
		return fmt.Errorf("failed to record source success: %w", err)
	}
	return nil
}

// SaveCachedTopics stores an extracted-topics list for a source blog.
func (s *Store) SaveCachedTopics(ctx context.Context, brandName, domain string, titles []string) error {
	payload, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO blog_sources (brand, domain, topics_json, topics_updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (brand, domain) DO UPDATE SET
		   topics_json = $3, topics_updated_at = NOW()`,
		brandName, domain, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save cached topics: %w", err)
	}
	return nil
}

// GetCachedTopics retrieves the extracted-topics list for a source blog
// when newer than TopicsCacheTTL. Returns (nil, nil) when absent or stale.
func (s *Store) GetCachedTopics(ctx context.Context, brandName, domain string) ([]string, error) {
	var payload []byte
	var updatedAt *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT topics_json, topics_updated_at FROM blog_sources WHERE brand = $1 AND domain = $2`,
		brandName, domain,
	).Scan(&payload, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached topics: %w", err)
	}
	if payload == nil || updatedAt == nil || time.Since(*updatedAt) > TopicsCacheTTL {
		return nil, nil
	}

	var titles []string
	if err := json.Unmarshal(payload, &titles); err != nil {
		return nil, fmt.Errorf("failed to decode topics: %w", err)
	}
	return titles, nil
}
