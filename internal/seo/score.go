// Package seo provides best-effort extraction of structured signals from
// SEO-stage prose: the numeric score line and the duplication verdict.
package seo

import (
	"strconv"
	"strings"
)

// scoreMarker is the literal line marker the scoring stage is instructed
// to emit.
const scoreMarker = "SEO SCORE:"

// ExtractScore pulls the numeric score out of scoring-stage output.
// It scans for the first line containing the marker and parses the integer
// before "/100". Absence or garbage yields (0, false), never an error.
func ExtractScore(text string) (int, bool) {
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, scoreMarker)
		if idx < 0 {
			continue
		}

		rest := strings.TrimSpace(line[idx+len(scoreMarker):])
		if slash := strings.Index(rest, "/"); slash >= 0 {
			rest = rest[:slash]
		}
		rest = strings.TrimSpace(rest)

		score, err := strconv.Atoi(rest)
		if err != nil || score < 0 || score > 100 {
			return 0, false
		}
		return score, true
	}
	return 0, false
}

// DuplicationVerdict classifies how much a candidate topic overlaps
// already-published posts.
type DuplicationVerdict string

const (
	// VerdictClear means no meaningful overlap was found
	VerdictClear DuplicationVerdict = "CLEAR"
	// VerdictWarning means partial overlap, the angle should be differentiated
	VerdictWarning DuplicationVerdict = "WARNING"
	// VerdictHighRisk means an existing post already covers the topic
	VerdictHighRisk DuplicationVerdict = "HIGH_RISK"
)

// ClassifyDuplication extracts the verdict from duplication-check output.
// The first recognized marker wins; an unrecognized response is treated as
// WARNING so a garbled check never green-lights a duplicate.
func ClassifyDuplication(text string) DuplicationVerdict {
	upper := strings.ToUpper(text)

	positions := map[DuplicationVerdict]int{
		VerdictClear:    strings.Index(upper, string(VerdictClear)),
		VerdictWarning:  strings.Index(upper, string(VerdictWarning)),
		VerdictHighRisk: strings.Index(upper, string(VerdictHighRisk)),
	}

	best := VerdictWarning
	bestPos := -1
	for verdict, pos := range positions {
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos {
			best = verdict
			bestPos = pos
		}
	}
	return best
}
