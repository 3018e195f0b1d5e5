package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantScore int
		wantOK    bool
	}{
		{
			name:      "canonical line",
			text:      "Summary first.\nSEO SCORE: 87/100\nGood keyword coverage.",
			wantScore: 87,
			wantOK:    true,
		},
		{
			name:      "marker mid line",
			text:      "Overall SEO SCORE: 42/100 with caveats",
			wantScore: 42,
			wantOK:    true,
		},
		{
			name:      "no denominator",
			text:      "SEO SCORE: 55",
			wantScore: 55,
			wantOK:    true,
		},
		{
			name:      "first marker line wins",
			text:      "SEO SCORE: 70/100\nSEO SCORE: 90/100",
			wantScore: 70,
			wantOK:    true,
		},
		{
			name:   "missing marker",
			text:   "The post is well optimized.",
			wantOK: false,
		},
		{
			name:   "garbage after marker",
			text:   "SEO SCORE: excellent/100",
			wantOK: false,
		},
		{
			name:   "out of range",
			text:   "SEO SCORE: 250/100",
			wantOK: false,
		},
		{
			name:   "empty input",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := ExtractScore(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestClassifyDuplication(t *testing.T) {
	tests := []struct {
		name string
		text string
		want DuplicationVerdict
	}{
		{"clear verdict", "CLEAR - no meaningful overlap", VerdictClear},
		{"warning verdict", "WARNING - partial overlap with knife guide", VerdictWarning},
		{"high risk verdict", "HIGH_RISK - already covered", VerdictHighRisk},
		{"lowercase tolerated", "clear, nothing similar found", VerdictClear},
		{"first marker wins", "WARNING though some say CLEAR", VerdictWarning},
		{"unrecognized defaults to warning", "I cannot tell.", VerdictWarning},
		{"empty defaults to warning", "", VerdictWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDuplication(tt.text))
		})
	}
}
