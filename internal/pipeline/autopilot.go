package pipeline

import (
	"context"
	"fmt"

	"github.com/bertram-labs/blog-agent/internal/brand"
	"github.com/bertram-labs/blog-agent/internal/seo"
	"github.com/bertram-labs/blog-agent/internal/topics"
)

// maxConsecutiveFailures ends an autopilot batch early when runs keep
// failing, so a dead API key cannot burn through a whole queue.
const maxConsecutiveFailures = 3

// AutopilotOptions configures a batch generation run over a topic queue.
type AutopilotOptions struct {
	BlogURL string
	Brand   *brand.Config
	Ideas   []topics.Idea

	// MaxPosts caps how many queue entries are attempted; 0 means all.
	MaxPosts int

	// CachedStyleGuide seeds the style cache. When empty, the first
	// successful run's style guide is reused for the rest of the batch.
	CachedStyleGuide string

	// ExistingTitles feeds the duplication check and grows as posts
	// complete within the batch.
	ExistingTitles   []string
	CheckDuplication bool

	// Stop is polled at post boundaries only; an in-flight pipeline run
	// always completes.
	Stop       func() bool
	OnProgress ProgressFunc
}

// AutopilotOutcome records one queue entry's disposition.
type AutopilotOutcome struct {
	Idea    topics.Idea
	Result  *Result
	Verdict seo.DuplicationVerdict
	Skipped bool
	Err     string
}

// Autopilot generates posts for a queue of topic ideas, reusing one style
// guide across the batch. It stops early on a stop request or after
// maxConsecutiveFailures failed runs in a row.
func (o *Orchestrator) Autopilot(ctx context.Context, opts AutopilotOptions) []AutopilotOutcome {
	progress := func(msg string, pct int) {
		if opts.OnProgress != nil {
			opts.OnProgress(msg, pct)
		}
	}

	limit := len(opts.Ideas)
	if opts.MaxPosts > 0 && opts.MaxPosts < limit {
		limit = opts.MaxPosts
	}

	styleGuide := opts.CachedStyleGuide
	existing := append([]string(nil), opts.ExistingTitles...)
	outcomes := make([]AutopilotOutcome, 0, limit)
	consecutive := 0

	for i := 0; i < limit; i++ {
		if opts.Stop != nil && opts.Stop() {
			progress("Stop requested, ending batch", percentOf(i, limit))
			break
		}
		if consecutive >= maxConsecutiveFailures {
			progress(fmt.Sprintf("Stopping after %d consecutive failures", consecutive), percentOf(i, limit))
			break
		}

		idea := opts.Ideas[i]
		progress(fmt.Sprintf("Post %d/%d: %s", i+1, limit, idea.Title), percentOf(i, limit))

		if opts.CheckDuplication {
			verdict := o.CheckTopicDuplication(ctx, idea.Title, existing)
			if verdict == seo.VerdictHighRisk {
				outcomes = append(outcomes, AutopilotOutcome{Idea: idea, Verdict: verdict, Skipped: true})
				continue
			}
		}

		res := o.CreateBlogPost(ctx, Request{
			Topic:            idea.Title,
			BlogURL:          opts.BlogURL,
			Requirements:     topics.BuildRequirements(idea),
			CachedStyleGuide: styleGuide,
			ExistingTitles:   existing,
			Brand:            opts.Brand,
		})

		if res.Failed() {
			consecutive++
			outcomes = append(outcomes, AutopilotOutcome{Idea: idea, Result: res, Err: res.Err})
			continue
		}

		consecutive = 0
		if styleGuide == "" {
			styleGuide = res.StyleGuide
		}
		existing = append(existing, idea.Title)
		outcomes = append(outcomes, AutopilotOutcome{Idea: idea, Result: res})
	}

	progress(fmt.Sprintf("Batch complete: %d/%d attempted", len(outcomes), limit), 100)
	return outcomes
}

func percentOf(done, total int) int {
	if total <= 0 {
		return 100
	}
	return done * 100 / total
}
