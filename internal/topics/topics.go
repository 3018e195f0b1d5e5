// Package topics provides the topic idea model and the best-effort parser
// that turns free-text LLM output into structured topic records.
package topics

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxAvoidTitles bounds how many existing titles are rendered into an
// ideation prompt before truncation.
const MaxAvoidTitles = 50

// Idea is a structured suggestion for a future blog post.
type Idea struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Angle       string   `json:"angle,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`

	// Enrichment fields, filled by the keywords collaborator.
	SearchVolume string `json:"search_volume,omitempty"`
	Competition  string `json:"competition,omitempty"`
	TrendScore   int    `json:"trend_score,omitempty"`
	TrendStatus  string `json:"trend_status,omitempty"`

	Used bool `json:"used,omitempty"`
}

// headingPattern matches a numbered markdown heading that starts a topic
// record: "1. Title", "2) Title", "### 3. **Title**".
var headingPattern = regexp.MustCompile(`^#{0,6}\s*\d+[.)]\s+(.+)$`)

// numberedPrefix matches leading list numbering on a raw title line.
var numberedPrefix = regexp.MustCompile(`^\d+[.)]\s*`)

// ParseIdeas scans LLM prose line-by-line for numbered topic blocks.
// A numbered heading starts a new record; labeled sub-field lines populate
// the current record. Records without a title are dropped. Malformed input
// yields an empty slice, never an error.
func ParseIdeas(text string) []Idea {
	var (
		ideas   []Idea
		current *Idea
	)

	flush := func() {
		if current != nil && current.Title != "" {
			ideas = append(ideas, *current)
		}
		current = nil
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			// A labeled line under a bullet can look numbered; a heading
			// never carries a field label.
			if _, _, ok := labeledField(m[1]); !ok {
				flush()
				current = &Idea{Title: cleanTitle(m[1])}
				continue
			}
		}

		if current == nil {
			continue
		}

		label, value, ok := labeledField(line)
		if !ok {
			continue
		}
		switch label {
		case "angle":
			current.Angle = value
		case "keywords", "target keywords":
			current.Keywords = splitKeywords(value)
		case "rationale", "why":
			current.Rationale = value
		case "content type", "format":
			current.ContentType = value
		}
	}
	flush()

	return ideas
}

// labeledField splits a "Label: value" line, tolerating an optional leading
// bullet marker and an optional bold wrapper around the label. Only known
// labels match.
func labeledField(line string) (label, value string, ok bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "- ")
	s = strings.TrimPrefix(s, "* ")
	s = strings.TrimSpace(s)

	idx := strings.Index(s, ":")
	if idx < 0 {
		return "", "", false
	}

	label = strings.ToLower(strings.Trim(strings.TrimSpace(s[:idx]), "*"))
	switch label {
	case "angle", "keywords", "target keywords", "rationale", "why", "content type", "format":
	default:
		return "", "", false
	}

	value = strings.TrimSpace(strings.TrimLeft(s[idx+1:], "* "))
	return label, value, true
}

// cleanTitle strips bold markers and stray quotes from a heading title.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	s = strings.Trim(s, `"“”`)
	return strings.TrimSpace(s)
}

// splitKeywords splits a comma-separated keyword list, dropping empties.
func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// BuildRequirements converts topic metadata into the requirements text fed
// to the writing pipeline. Empty fields are omitted.
func BuildRequirements(idea Idea) string {
	var parts []string

	if idea.Angle != "" {
		parts = append(parts, "Angle: "+idea.Angle)
	}
	if len(idea.Keywords) > 0 {
		parts = append(parts, "Target Keywords: "+strings.Join(idea.Keywords, ", "))
	}
	if idea.ContentType != "" {
		parts = append(parts, "Content Type: "+idea.ContentType)
	}
	if idea.Rationale != "" {
		parts = append(parts, "Rationale: "+idea.Rationale)
	}

	return strings.Join(parts, "\n")
}

// FormatAvoidList renders existing post titles for an ideation prompt.
// Only the first MaxAvoidTitles are listed; a truncation note cites the
// remainder.
func FormatAvoidList(titles []string) string {
	if len(titles) == 0 {
		return ""
	}

	shown := titles
	var note string
	if len(titles) > MaxAvoidTitles {
		shown = titles[:MaxAvoidTitles]
		note = fmt.Sprintf("\n(and %d more...)", len(titles)-MaxAvoidTitles)
	}

	var sb strings.Builder
	for _, t := range shown {
		sb.WriteString("- ")
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n") + note
}

// CleanTitleLines splits raw title-listing output into trimmed titles,
// stripping leading numbering, bullets, and quotes and discarding lines
// shorter than 10 characters.
func CleanTitleLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		title := strings.TrimSpace(line)
		title = strings.TrimLeft(title, "-*•# ")
		if m := numberedPrefix.FindString(title); m != "" {
			title = title[len(m):]
		}
		title = strings.Trim(title, `"'“”`)
		title = strings.TrimSpace(title)
		if len(title) < 10 {
			continue
		}
		out = append(out, title)
	}
	return out
}
