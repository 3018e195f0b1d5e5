// Package keywords estimates keyword demand for topic ideas using the
// Google Custom Search API. Scores are rough popularity signals, not
// real search-volume data.
package keywords

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/bertram-labs/blog-agent/internal/topics"
)

// Trend score buckets.
const (
	TrendHot    = "Hot"
	TrendRising = "Rising"
	TrendSteady = "Steady"
	TrendLow    = "Low"
)

// maxRelatedQueries caps the related-query list per keyword.
const maxRelatedQueries = 10

// enrichConcurrency limits parallel Custom Search calls during a batch.
const enrichConcurrency = 3

// Enricher annotates topic ideas with keyword demand estimates.
type Enricher struct {
	svc *customsearch.Service
	cx  string
}

// NewEnricher creates an Enricher backed by the Custom Search API.
func NewEnricher(ctx context.Context, apiKey, cx string) (*Enricher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Enricher{svc: svc, cx: cx}, nil
}

// RelatedQueries returns up to 10 related search phrases for a keyword,
// drawn from result titles.
func (e *Enricher) RelatedQueries(ctx context.Context, keyword string) ([]string, error) {
	resp, err := e.svc.Cse.List().Context(ctx).Cx(e.cx).Q(keyword).Num(10).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var queries []string
	seen := make(map[string]bool)
	for _, item := range resp.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" || seen[strings.ToLower(title)] {
			continue
		}
		seen[strings.ToLower(title)] = true
		queries = append(queries, title)
		if len(queries) >= maxRelatedQueries {
			break
		}
	}
	return queries, nil
}

// TrendScore estimates demand for a keyword on a 0-100 scale from the
// total result count, with a bucket label.
func (e *Enricher) TrendScore(ctx context.Context, keyword string) (int, string, error) {
	resp, err := e.svc.Cse.List().Context(ctx).Cx(e.cx).Q(keyword).Num(1).Do()
	if err != nil {
		return 0, "", fmt.Errorf("search failed: %w", err)
	}

	var total int64
	if resp.SearchInformation != nil {
		fmt.Sscanf(resp.SearchInformation.TotalResults, "%d", &total)
	}
	score := scoreFromResultCount(total)
	return score, TrendLabel(score), nil
}

// scoreFromResultCount maps a result count onto 0-100 using a log scale.
// Roughly: 1M results scores 60, 100M scores 80, 10B caps at 100.
func scoreFromResultCount(total int64) int {
	if total <= 0 {
		return 0
	}
	score := int(math.Round(10 * math.Log10(float64(total))))
	if score > 100 {
		score = 100
	}
	return score
}

// TrendLabel buckets a 0-100 trend score.
func TrendLabel(score int) string {
	switch {
	case score >= 75:
		return TrendHot
	case score >= 50:
		return TrendRising
	case score >= 25:
		return TrendSteady
	default:
		return TrendLow
	}
}

// VolumeEstimate maps a trend bucket onto a coarse monthly-search range.
func VolumeEstimate(label string) string {
	switch label {
	case TrendHot:
		return "High (10K+/mo)"
	case TrendRising:
		return "Medium (1K-10K/mo)"
	case TrendSteady:
		return "Low (100-1K/mo)"
	default:
		return "Minimal (<100/mo)"
	}
}

// CompetitionEstimate maps a trend bucket onto a competition level.
// Popular keywords attract more competing content.
func CompetitionEstimate(label string) string {
	switch label {
	case TrendHot:
		return "High"
	case TrendRising:
		return "Medium"
	default:
		return "Low"
	}
}

// FallbackKeywords derives keywords from a title when an idea has none:
// the first three words longer than three characters.
func FallbackKeywords(title string) []string {
	var kws []string
	for _, word := range strings.Fields(title) {
		word = strings.Trim(word, `.,:;!?"'()[]`)
		if len(word) <= 3 {
			continue
		}
		kws = append(kws, strings.ToLower(word))
		if len(kws) == 3 {
			break
		}
	}
	return kws
}

// EnrichIdeas fills trend and volume fields on each idea in place.
// Enrichment is best-effort: a failed lookup leaves that idea untouched.
func (e *Enricher) EnrichIdeas(ctx context.Context, ideas []topics.Idea) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i := range ideas {
		idea := &ideas[i]
		g.Go(func() error {
			if len(idea.Keywords) == 0 {
				idea.Keywords = FallbackKeywords(idea.Title)
			}
			if len(idea.Keywords) == 0 {
				return nil
			}

			score, label, err := e.TrendScore(ctx, idea.Keywords[0])
			if err != nil {
				return nil // leave unenriched
			}
			idea.TrendScore = score
			idea.TrendStatus = label
			idea.SearchVolume = VolumeEstimate(label)
			idea.Competition = CompetitionEstimate(label)
			return nil
		})
	}
	_ = g.Wait()
}
