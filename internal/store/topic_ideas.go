package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bertram-labs/blog-agent/internal/topics"
)

// TopicIdea is a stored topic suggestion awaiting use.
type TopicIdea struct {
	ID         uuid.UUID   `json:"id"`
	Brand      string      `json:"brand"`
	SourceBlog string      `json:"source_blog,omitempty"`
	Idea       topics.Idea `json:"idea"`
	Status     string      `json:"status"`
	UsedAt     *time.Time  `json:"used_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SaveTopicIdeas stores a batch of generated topic ideas for a brand.
func (s *Store) SaveTopicIdeas(ctx context.Context, brandName, sourceBlog string, ideas []topics.Idea) error {
	for _, idea := range ideas {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO topic_ideas (brand, source_blog, title, angle, keywords, content_type, rationale,
			                          search_volume, competition, trend_score, trend_status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			brandName, sourceBlog, idea.Title, idea.Angle, idea.Keywords, idea.ContentType, idea.Rationale,
			idea.SearchVolume, idea.Competition, idea.TrendScore, idea.TrendStatus,
		)
		if err != nil {
			return fmt.Errorf("failed to save topic idea %q: %w", idea.Title, err)
		}
	}
	return nil
}

// ListUnusedTopicIdeas retrieves stored ideas not yet used for a post,
// newest first.
func (s *Store) ListUnusedTopicIdeas(ctx context.Context, brandName string, limit int) ([]TopicIdea, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, brand, COALESCE(source_blog, ''), title, COALESCE(angle, ''), COALESCE(keywords, '{}'),
		        COALESCE(content_type, ''), COALESCE(rationale, ''), COALESCE(search_volume, ''),
		        COALESCE(competition, ''), COALESCE(trend_score, 0), COALESCE(trend_status, ''),
		        status, used_at, created_at
		 FROM topic_ideas
		 WHERE brand = $1 AND status = 'New'
		 ORDER BY created_at DESC
		 LIMIT $2`,
		brandName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list topic ideas: %w", err)
	}
	defer rows.Close()

	var records []TopicIdea
	for rows.Next() {
		var rec TopicIdea
		if err := rows.Scan(&rec.ID, &rec.Brand, &rec.SourceBlog,
			&rec.Idea.Title, &rec.Idea.Angle, &rec.Idea.Keywords,
			&rec.Idea.ContentType, &rec.Idea.Rationale, &rec.Idea.SearchVolume,
			&rec.Idea.Competition, &rec.Idea.TrendScore, &rec.Idea.TrendStatus,
			&rec.Status, &rec.UsedAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic idea: %w", err)
		}
		rec.Idea.ID = rec.ID.String()
		rec.Idea.Used = rec.Status == "Used"
		records = append(records, rec)
	}
	return records, nil
}

// MarkTopicUsed flags a stored idea as consumed by a generation run.
func (s *Store) MarkTopicUsed(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE topic_ideas SET status = 'Used', used_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark topic used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic idea %s not found", id)
	}
	return nil
}
