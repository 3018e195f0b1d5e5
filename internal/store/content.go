package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneratedContent is one finished (or failed) generation run's record.
type GeneratedContent struct {
	ID           uuid.UUID `json:"id"`
	Brand        string    `json:"brand"`
	Topic        string    `json:"topic"`
	SourceBlog   string    `json:"source_blog,omitempty"`
	Status       string    `json:"status"`
	FinalContent string    `json:"final_content,omitempty"`
	SEOScore     int       `json:"seo_score"`
	WordCount    int       `json:"word_count"`
	UserNotes    string    `json:"user_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// WordCount counts whitespace-separated words in a post body.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// SaveGeneratedContent inserts a content record and returns its ID.
// WordCount is derived from FinalContent when unset.
func (s *Store) SaveGeneratedContent(ctx context.Context, rec *GeneratedContent) (uuid.UUID, error) {
	if rec.WordCount == 0 && rec.FinalContent != "" {
		rec.WordCount = WordCount(rec.FinalContent)
	}
	if rec.Status == "" {
		rec.Status = "Generated"
	}

	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO generated_content (brand, topic, source_blog, status, final_content, seo_score, word_count, user_notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		rec.Brand, rec.Topic, rec.SourceBlog, rec.Status, rec.FinalContent, rec.SEOScore, rec.WordCount, rec.UserNotes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save generated content: %w", err)
	}
	rec.ID = id
	return id, nil
}

// ListGeneratedContent retrieves recent content records, optionally
// filtered by brand.
func (s *Store) ListGeneratedContent(ctx context.Context, brand string, limit int) ([]GeneratedContent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, brand, topic, COALESCE(source_blog, ''), status,
	                 COALESCE(final_content, ''), COALESCE(seo_score, 0), COALESCE(word_count, 0),
	                 COALESCE(user_notes, ''), created_at
	          FROM generated_content`
	args := []any{}
	if brand != "" {
		query += ` WHERE brand = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, brand, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated content: %w", err)
	}
	defer rows.Close()

	var records []GeneratedContent
	for rows.Next() {
		var rec GeneratedContent
		if err := rows.Scan(&rec.ID, &rec.Brand, &rec.Topic, &rec.SourceBlog, &rec.Status,
			&rec.FinalContent, &rec.SEOScore, &rec.WordCount, &rec.UserNotes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generated content: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
