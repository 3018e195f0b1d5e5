// Package agents defines the named agent configurations used by the
// pipeline and the invocation shim that executes them: every call runs on
// a bounded worker pool with a per-call timeout, and failures come back
// tagged with the agent's name.
package agents

import (
	"time"

	"github.com/bertram-labs/blog-agent/internal/llm"
)

// Timeout ceilings. Topic ideation searches more broadly and gets longer.
const (
	DefaultTimeout = 300 * time.Second
	TopicTimeout   = 600 * time.Second
)

// PoolSize is the fixed worker count per runner.
const PoolSize = 4

// Descriptor names one agent configuration: which model tier it runs on,
// whether it may ground itself with web search, and its call ceiling.
type Descriptor struct {
	Name      string
	Tier      llm.ModelTier
	UseSearch bool
	Timeout   time.Duration
}

// The agent table. Immutable after construction; shared across requests.
var (
	StyleAnalyzer = Descriptor{
		Name:      "Blog Style Analyzer",
		Tier:      llm.TierAdvanced,
		UseSearch: true,
	}
	Researcher = Descriptor{
		Name:      "Research Specialist",
		Tier:      llm.TierStandard,
		UseSearch: true,
	}
	Writer = Descriptor{
		Name:      "Content Writer",
		Tier:      llm.TierAdvanced,
		UseSearch: true,
	}
	SEOAnalyzer = Descriptor{
		Name:      "SEO Analyzer",
		Tier:      llm.TierStandard,
		UseSearch: true,
	}
	LinkInserter = Descriptor{
		Name:      "Internal Links",
		Tier:      llm.TierStandard,
		UseSearch: true,
	}
	Editor = Descriptor{
		Name:      "Content Editor",
		Tier:      llm.TierAdvanced,
		UseSearch: true,
	}
	SEOScorer = Descriptor{
		Name: "SEO Scorer",
		Tier: llm.TierStandard,
	}
	TopicGenerator = Descriptor{
		Name:      "Topic Generator",
		Tier:      llm.TierStandard,
		UseSearch: true,
		Timeout:   TopicTimeout,
	}
	TopicExtractor = Descriptor{
		Name:      "Topic Extractor",
		Tier:      llm.TierLite,
		UseSearch: true,
	}
	DuplicationChecker = Descriptor{
		Name:      "Duplication Checker",
		Tier:      llm.TierLite,
		UseSearch: true,
	}
)

// timeout returns the descriptor's ceiling, defaulting when unset.
func (d Descriptor) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultTimeout
}
