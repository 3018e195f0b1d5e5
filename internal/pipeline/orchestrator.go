package pipeline

import (
	"context"
	"fmt"

	"github.com/bertram-labs/blog-agent/internal/agents"
	"github.com/bertram-labs/blog-agent/internal/brand"
	"github.com/bertram-labs/blog-agent/internal/llm"
	"github.com/bertram-labs/blog-agent/internal/seo"
	"github.com/bertram-labs/blog-agent/internal/topics"
)

// seoAdvisoryFallback replaces the advisory output when that stage fails.
// The advisory is context for later stages, not a deliverable, so its
// failure never aborts the run.
const seoAdvisoryFallback = "SEO analysis unavailable - proceed with standard on-page optimization."

// DefaultTopicCount is how many ideas one ideation call asks for.
const DefaultTopicCount = 5

// ProgressFunc receives a human-readable message and a monotonically
// nondecreasing percentage at fixed checkpoints. Advisory only.
type ProgressFunc func(message string, percent int)

// Request carries the inputs for one full-post generation run. Topic and
// BlogURL are required and assumed validated by the caller.
type Request struct {
	Topic               string
	BlogURL             string
	Requirements        string
	HighPerformingPages []string
	TargetProductURLs   []string
	ExistingTitles      []string

	// CachedStyleGuide, when non-empty, skips the style stage.
	CachedStyleGuide string

	Brand      *brand.Config
	OnProgress ProgressFunc
}

// TopicRequest carries the inputs for a topic ideation run.
type TopicRequest struct {
	BlogURL          string
	Count            int
	Preferences      string
	TrendingKeywords []string
	ProductTarget    string
	ExistingTitles   []string
	Brand            *brand.Config
	OnProgress       ProgressFunc
}

// Orchestrator sequences agent stages over one shared runner. The runner's
// worker pool lives for the orchestrator's lifetime.
type Orchestrator struct {
	runner *agents.Runner
}

// New creates an orchestrator over an LLM client.
func New(client llm.Client) *Orchestrator {
	return &Orchestrator{runner: agents.NewRunner(client)}
}

// Close drains the worker pool. In-flight calls complete first.
func (o *Orchestrator) Close() {
	o.runner.Close()
}

// CreateBlogPost runs the full generation pipeline. Stages run strictly
// sequentially; any stage failure except the SEO advisory aborts the run,
// retaining the outputs of completed stages and recording the failure text
// in the result.
func (o *Orchestrator) CreateBlogPost(ctx context.Context, req Request) *Result {
	res := &Result{}
	progress := func(msg string, pct int) {
		if req.OnProgress != nil {
			req.OnProgress(msg, pct)
		}
	}
	fail := func(err error) *Result {
		res.Err = agents.Text(err)
		progress(res.Err, 0)
		return res
	}

	var brandContext string
	if req.Brand != nil {
		brandContext = req.Brand.ContextPrompt()
	}

	// Stage 1: style analysis, skipped verbatim on a cache hit. Brands
	// without their own blog carry a hand-written guide that substitutes
	// when analysis of the borrowed style source fails.
	if req.CachedStyleGuide != "" {
		progress("Using cached style guide", 5)
		res.StyleGuide = req.CachedStyleGuide
		res.StyleGuideCached = true
	} else {
		progress(fmt.Sprintf("Analyzing %s style...", req.BlogURL), 5)
		out, err := o.runner.Run(ctx, agents.StyleAnalyzer, buildStylePrompt(req.BlogURL, req.HighPerformingPages))
		if err != nil {
			if req.Brand == nil || req.Brand.FallbackStyleGuide == "" {
				return fail(err)
			}
			progress("Style analysis failed, using brand fallback guide", 5)
			out = req.Brand.FallbackStyleGuide
			res.StyleGuideCached = true
		}
		res.StyleGuide = out
	}

	// Stage 2: research.
	progress("Researching topic...", 20)
	out, err := o.runner.Run(ctx, agents.Researcher, buildResearchPrompt(req.Topic, req.Requirements, req.TargetProductURLs))
	if err != nil {
		return fail(err)
	}
	res.Research = out

	// Stage 3: draft.
	progress("Writing in matched style...", 35)
	out, err = o.runner.Run(ctx, agents.Writer, buildDraftPrompt(req.Topic, res.StyleGuide, res.Research, req.Requirements, req.BlogURL, brandContext))
	if err != nil {
		return fail(err)
	}
	res.Draft = out

	// Stage 4: SEO advisory. Sole soft-failure stage.
	progress("Analyzing SEO opportunities...", 55)
	out, err = o.runner.Run(ctx, agents.SEOAnalyzer, buildSEOAdvisoryPrompt(res.Draft, req.Topic, req.BlogURL))
	if err != nil {
		res.InitialSEOAnalysis = seoAdvisoryFallback
	} else {
		res.InitialSEOAnalysis = out
	}

	// Stage 5: verified internal links.
	progress("Inserting verified internal links...", 70)
	out, err = o.runner.Run(ctx, agents.LinkInserter, buildLinksPrompt(res.Draft, req.BlogURL, res.InitialSEOAnalysis, req.Topic))
	if err != nil {
		return fail(err)
	}
	res.WithLinks = out

	// Stage 6: final edit, links preserved.
	progress("Editing while preserving style...", 85)
	out, err = o.runner.Run(ctx, agents.Editor, buildEditPrompt(req.BlogURL, res.StyleGuide, res.WithLinks, res.InitialSEOAnalysis))
	if err != nil {
		return fail(err)
	}
	res.Final = out

	// Stage 7: final SEO score.
	progress("Scoring final post...", 95)
	out, err = o.runner.Run(ctx, agents.SEOScorer, buildScorePrompt(res.Final, req.Topic))
	if err != nil {
		return fail(err)
	}
	res.SEOAnalysis = out
	res.SEOScore, res.SEOScoreOK = seo.ExtractScore(res.SEOAnalysis)

	progress("Blog post complete", 100)
	return res
}

// GenerateTopicIdeas runs the standalone ideation pipeline. Failures
// surface as an empty list plus a 0% progress report, never an error.
func (o *Orchestrator) GenerateTopicIdeas(ctx context.Context, req TopicRequest) []topics.Idea {
	progress := func(msg string, pct int) {
		if req.OnProgress != nil {
			req.OnProgress(msg, pct)
		}
	}

	count := req.Count
	if count <= 0 {
		count = DefaultTopicCount
	}

	var brandContext string
	if req.Brand != nil {
		brandContext = req.Brand.ContextPrompt()
	}

	progress(fmt.Sprintf("Generating %d topic ideas...", count), 10)
	prompt := buildTopicIdeasPrompt(req.BlogURL, count, brandContext, req.ExistingTitles, req.Preferences, req.TrendingKeywords, req.ProductTarget)

	out, err := o.runner.Run(ctx, agents.TopicGenerator, prompt)
	if err != nil {
		progress(agents.Text(err), 0)
		return nil
	}

	ideas := topics.ParseIdeas(out)
	progress(fmt.Sprintf("Parsed %d topic ideas", len(ideas)), 100)
	return ideas
}

// ExtractBlogTopics lists post titles published at a blog URL. Returns an
// empty list on any failure.
func (o *Orchestrator) ExtractBlogTopics(ctx context.Context, blogURL string) []string {
	out, err := o.runner.Run(ctx, agents.TopicExtractor, buildExtractTitlesPrompt(blogURL))
	if err != nil {
		return nil
	}
	return topics.CleanTitleLines(out)
}

// CheckTopicDuplication classifies how much a candidate topic overlaps
// existing posts. A failed check degrades to WARNING rather than erroring.
func (o *Orchestrator) CheckTopicDuplication(ctx context.Context, topic string, existingTitles []string) seo.DuplicationVerdict {
	out, err := o.runner.Run(ctx, agents.DuplicationChecker, buildDuplicationPrompt(topic, existingTitles))
	if err != nil {
		return seo.VerdictWarning
	}
	return seo.ClassifyDuplication(out)
}
