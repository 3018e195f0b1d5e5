// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/bertram-labs/blog-agent/internal/pipeline"
	"github.com/bertram-labs/blog-agent/internal/topics"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens a string to at most n runes of visible content.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// PrintResult outputs a summary of a finished generation run.
func (p *Printer) PrintResult(res *pipeline.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder

	if res.Failed() {
		sb.WriteString("Status:   FAILED\n")
		sb.WriteString(fmt.Sprintf("Error:    %s", truncate(res.Err, 45)))
		p.printBox("GENERATION RESULT", sb.String())
		return
	}

	sb.WriteString("Status:   complete\n")
	if res.SEOScoreOK {
		sb.WriteString(fmt.Sprintf("SEO:      %d/100\n", res.SEOScore))
	} else {
		sb.WriteString("SEO:      no score parsed\n")
	}
	if res.StyleGuideCached {
		sb.WriteString("Style:    cached guide reused\n")
	} else {
		sb.WriteString("Style:    fresh analysis\n")
	}
	sb.WriteString(fmt.Sprintf("Words:    %d\n", len(strings.Fields(res.Final))))
	sb.WriteString("\nStages:\n")
	for _, stage := range []struct {
		name string
		text string
	}{
		{"style guide", res.StyleGuide},
		{"research", res.Research},
		{"draft", res.Draft},
		{"seo advisory", res.InitialSEOAnalysis},
		{"links", res.WithLinks},
		{"final edit", res.Final},
		{"seo score", res.SEOAnalysis},
	} {
		mark := "✓"
		if stage.text == "" {
			mark = "-"
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", mark, stage.name))
	}

	p.printBox("GENERATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIdeas outputs generated topic ideas with their enrichment data.
func (p *Printer) PrintIdeas(ideas []topics.Idea) {
	if len(ideas) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d topic ideas:\n\n", len(ideas)))

	count := min(len(ideas), maxItemsToShow)
	for i := 0; i < count; i++ {
		idea := ideas[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(idea.Title, 48)))
		if idea.Angle != "" {
			sb.WriteString(fmt.Sprintf("    Angle: %s\n", truncate(idea.Angle, 42)))
		}
		if len(idea.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("    Keywords: %s\n", truncate(strings.Join(idea.Keywords, ", "), 38)))
		}
		if idea.TrendStatus != "" {
			sb.WriteString(fmt.Sprintf("    Trend: %s (%d)\n", idea.TrendStatus, idea.TrendScore))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ideas) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more ideas", len(ideas)-maxItemsToShow))
	}

	p.printBox("TOPIC IDEAS", sb.String())
}

// PrintTitles outputs extracted blog post titles.
func (p *Printer) PrintTitles(titles []string) {
	if len(titles) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d existing posts:\n\n", len(titles)))

	count := min(len(titles), 10)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", truncate(titles[i], 48)))
	}
	if len(titles) > 10 {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(titles)-10))
	}

	p.printBox("EXTRACTED TITLES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAutopilotOutcomes outputs the per-topic results of an autopilot batch.
func (p *Printer) PrintAutopilotOutcomes(outcomes []pipeline.AutopilotOutcome) {
	if len(outcomes) == 0 {
		return
	}

	succeeded := 0
	var sb strings.Builder
	for i, out := range outcomes {
		var status string
		switch {
		case out.Skipped:
			status = fmt.Sprintf("skipped (%s)", out.Verdict)
		case out.Err != "":
			status = "FAILED: " + truncate(out.Err, 30)
		default:
			status = "ok"
			if out.Result != nil && out.Result.SEOScoreOK {
				status = fmt.Sprintf("ok (SEO %d)", out.Result.SEOScore)
			}
			succeeded++
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(out.Idea.Title, 48)))
		sb.WriteString(fmt.Sprintf("    %s\n", status))
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d posts generated", succeeded, len(outcomes)))

	p.printBox("AUTOPILOT SUMMARY", sb.String())
}
