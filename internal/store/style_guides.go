package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StyleGuide is a cached style analysis for one brand+domain pair.
type StyleGuide struct {
	ID              uuid.UUID `json:"id"`
	Brand           string    `json:"brand"`
	Domain          string    `json:"domain"`
	Tone            string    `json:"tone,omitempty"`
	HeadingStyle    string    `json:"heading_style,omitempty"`
	ListStyle       string    `json:"list_style,omitempty"`
	GuideText       string    `json:"guide_text"`
	AnalysisQuality string    `json:"analysis_quality,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SaveStyleGuide upserts a style guide by (brand, domain).
func (s *Store) SaveStyleGuide(ctx context.Context, sg *StyleGuide) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO style_guides (brand, domain, tone, heading_style, list_style, guide_text, analysis_quality, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		 ON CONFLICT (brand, domain) DO UPDATE SET
		   tone = $3, heading_style = $4, list_style = $5, guide_text = $6, analysis_quality = $7, updated_at = NOW()`,
		sg.Brand, sg.Domain, sg.Tone, sg.HeadingStyle, sg.ListStyle, sg.GuideText, sg.AnalysisQuality,
	)
	if err != nil {
		return fmt.Errorf("failed to save style guide: %w", err)
	}
	return nil
}

// GetStyleGuide retrieves a style guide by brand and domain.
// Returns (nil, nil) when absent.
func (s *Store) GetStyleGuide(ctx context.Context, brand, domain string) (*StyleGuide, error) {
	var sg StyleGuide
	err := s.pool.QueryRow(ctx,
		`SELECT id, brand, domain, COALESCE(tone, ''), COALESCE(heading_style, ''),
		        COALESCE(list_style, ''), guide_text, COALESCE(analysis_quality, ''), updated_at
		 FROM style_guides WHERE brand = $1 AND domain = $2`,
		brand, domain,
	).Scan(&sg.ID, &sg.Brand, &sg.Domain, &sg.Tone, &sg.HeadingStyle, &sg.ListStyle, &sg.GuideText, &sg.AnalysisQuality, &sg.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get style guide: %w", err)
	}
	return &sg, nil
}

// GetFreshStyleGuide retrieves a style guide only when newer than maxAge.
// A zero maxAge uses DefaultStyleGuideTTL. Stale rows read as absent.
func (s *Store) GetFreshStyleGuide(ctx context.Context, brand, domain string, maxAge time.Duration) (*StyleGuide, error) {
	if maxAge == 0 {
		maxAge = DefaultStyleGuideTTL
	}

	sg, err := s.GetStyleGuide(ctx, brand, domain)
	if err != nil || sg == nil {
		return nil, err
	}
	if time.Since(sg.UpdatedAt) > maxAge {
		return nil, nil
	}
	return sg, nil
}
