package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertram-labs/blog-agent/internal/brand"
	"github.com/bertram-labs/blog-agent/internal/llm"
	"github.com/bertram-labs/blog-agent/internal/seo"
)

// stubCall is one scripted agent response.
type stubCall struct {
	text string
	err  error
}

// stubClient serves scripted responses in call order and records prompts.
type stubClient struct {
	mu      sync.Mutex
	script  []stubCall
	prompts []string
}

func (s *stubClient) next(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.script) == 0 {
		return "", errors.New("stub script exhausted")
	}
	call := s.script[0]
	s.script = s.script[1:]
	return call.text, call.err
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return s.next(prompt)
}

func (s *stubClient) GenerateWithSearch(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return s.next(prompt)
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return s.next(prompt)
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }
func (s *stubClient) Close() error                  { return nil }

func (s *stubClient) recordedPrompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// progressRecorder captures progress callbacks.
type progressRecorder struct {
	mu       sync.Mutex
	messages []string
	percents []int
}

func (p *progressRecorder) record(msg string, pct int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	p.percents = append(p.percents, pct)
}

func newOrchestrator(t *testing.T, script ...stubCall) (*Orchestrator, *stubClient) {
	t.Helper()
	client := &stubClient{script: script}
	o := New(client)
	t.Cleanup(o.Close)
	return o, client
}

func fullRunScript() []stubCall {
	return []stubCall{
		{text: "STYLE_OK"},
		{text: "RESEARCH_OK"},
		{text: "DRAFT_OK"},
		{text: "SEO_OK"},
		{text: "LINKS_OK"},
		{text: "FINAL_OK"},
		{text: "SEO SCORE: 88/100\nSolid post."},
	}
}

func TestCreateBlogPost_FullRun(t *testing.T) {
	o, client := newOrchestrator(t, fullRunScript()...)
	progress := &progressRecorder{}

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:      "Electric bikes in the US",
		BlogURL:    "https://lectricebikes.com/",
		OnProgress: progress.record,
	})

	require.False(t, res.Failed())
	m := res.Map()
	assert.Equal(t, "STYLE_OK", m["style_guide"])
	assert.Equal(t, "RESEARCH_OK", m["research"])
	assert.Equal(t, "DRAFT_OK", m["draft"])
	assert.Equal(t, "SEO_OK", m["initial_seo_analysis"])
	assert.Equal(t, "LINKS_OK", m["with_links"])
	assert.Equal(t, "FINAL_OK", m["final"])
	assert.Contains(t, m["seo_analysis"], "SEO SCORE: 88/100")
	assert.NotContains(t, m, "error")

	assert.Equal(t, 88, res.SEOScore)
	assert.True(t, res.SEOScoreOK)

	// Style analysis runs exactly once, before research.
	prompts := client.recordedPrompts()
	require.Len(t, prompts, 7)
	assert.Contains(t, prompts[0], "Analyze the writing style")
	assert.Contains(t, prompts[1], "Research the topic: Electric bikes in the US")

	// Percent checkpoints are monotone and end at 100.
	require.NotEmpty(t, progress.percents)
	for i := 1; i < len(progress.percents); i++ {
		assert.GreaterOrEqual(t, progress.percents[i], progress.percents[i-1])
	}
	assert.Equal(t, 100, progress.percents[len(progress.percents)-1])
}

func TestCreateBlogPost_ResearchFailureRetainsCompletedStages(t *testing.T) {
	o, _ := newOrchestrator(t,
		stubCall{text: "STYLE_OK"},
		stubCall{err: errors.New("boom")},
	)
	progress := &progressRecorder{}

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:      "Electric bikes in the US",
		BlogURL:    "https://lectricebikes.com/",
		OnProgress: progress.record,
	})

	require.True(t, res.Failed())
	assert.Equal(t, map[string]string{
		"style_guide": "STYLE_OK",
		"error":       "boom",
	}, res.Map())

	// Failure reports the error text at 0%.
	last := len(progress.percents) - 1
	assert.Equal(t, 0, progress.percents[last])
	assert.Equal(t, "boom", progress.messages[last])
}

func TestCreateBlogPost_CachedStyleGuideSkipsStyleStage(t *testing.T) {
	o, client := newOrchestrator(t, fullRunScript()[1:]...)

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:            "Electric bikes in the US",
		BlogURL:          "https://lectricebikes.com/",
		CachedStyleGuide: "CACHED_GUIDE",
	})

	require.False(t, res.Failed())
	assert.Equal(t, "CACHED_GUIDE", res.StyleGuide)
	assert.True(t, res.StyleGuideCached)

	prompts := client.recordedPrompts()
	require.Len(t, prompts, 6)
	assert.Contains(t, prompts[0], "Research the topic")
	// The cached guide feeds the draft prompt verbatim.
	assert.Contains(t, prompts[1], "CACHED_GUIDE")
}

func TestCreateBlogPost_StyleFailureUsesBrandFallbackGuide(t *testing.T) {
	script := fullRunScript()
	script[0] = stubCall{err: errors.New("style agent down")}
	o, client := newOrchestrator(t, script...)

	cfg, err := brand.Get("klever")
	require.NoError(t, err)
	require.NotEmpty(t, cfg.FallbackStyleGuide)

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:   "Concealed blade cutters for warehouses",
		BlogURL: "https://blog.sliceproducts.com",
		Brand:   cfg,
	})

	require.False(t, res.Failed())
	assert.Equal(t, cfg.FallbackStyleGuide, res.StyleGuide)
	assert.True(t, res.StyleGuideCached)

	// The fallback guide feeds the draft prompt.
	prompts := client.recordedPrompts()
	assert.Contains(t, prompts[2], "Klever Innovations Brand Voice Guidelines")
}

func TestCreateBlogPost_StyleFailureWithoutBrandAborts(t *testing.T) {
	o, _ := newOrchestrator(t, stubCall{err: errors.New("style agent down")})

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:   "Electric bikes in the US",
		BlogURL: "https://lectricebikes.com/",
	})

	require.True(t, res.Failed())
	assert.Equal(t, "style agent down", res.Err)
}

func TestCreateBlogPost_SEOAdvisoryFailureIsSoft(t *testing.T) {
	o, _ := newOrchestrator(t,
		stubCall{text: "STYLE_OK"},
		stubCall{text: "RESEARCH_OK"},
		stubCall{text: "DRAFT_OK"},
		stubCall{err: errors.New("seo agent down")},
		stubCall{text: "LINKS_OK"},
		stubCall{text: "FINAL_OK"},
		stubCall{text: "SEO SCORE: 70/100"},
	)

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:   "Electric bikes in the US",
		BlogURL: "https://lectricebikes.com/",
	})

	require.False(t, res.Failed())
	assert.Equal(t, seoAdvisoryFallback, res.InitialSEOAnalysis)
	assert.Equal(t, "FINAL_OK", res.Final)
	assert.Equal(t, "LINKS_OK", res.WithLinks)
}

func TestCreateBlogPost_MissingScoreLineFallsBack(t *testing.T) {
	script := fullRunScript()
	script[6] = stubCall{text: "Looks good overall."}
	o, _ := newOrchestrator(t, script...)

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:   "Electric bikes in the US",
		BlogURL: "https://lectricebikes.com/",
	})

	require.False(t, res.Failed())
	assert.Equal(t, 0, res.SEOScore)
	assert.False(t, res.SEOScoreOK)
}

func TestCreateBlogPost_BrandContextInDraftPrompt(t *testing.T) {
	o, client := newOrchestrator(t, fullRunScript()...)
	cfg, err := brand.Get("slice")
	require.NoError(t, err)

	res := o.CreateBlogPost(context.Background(), Request{
		Topic:   "Safety knives for warehouses",
		BlogURL: "https://blog.sliceproducts.com",
		Brand:   cfg,
	})

	require.False(t, res.Failed())
	prompts := client.recordedPrompts()
	assert.Contains(t, prompts[2], "BRAND CONTEXT:")
	assert.Contains(t, prompts[2], "Brand: Slice")
}

func TestGenerateTopicIdeas(t *testing.T) {
	o, client := newOrchestrator(t, stubCall{text: `1. **10 Warehouse Safety Tips**
- Angle: practical checklist
- Keywords: warehouse safety
- Content Type: listicle
- Rationale: evergreen`})

	ideas := o.GenerateTopicIdeas(context.Background(), TopicRequest{
		BlogURL:        "https://blog.sliceproducts.com",
		ExistingTitles: []string{"How to Choose a Safety Knife"},
	})

	require.Len(t, ideas, 1)
	assert.Equal(t, "10 Warehouse Safety Tips", ideas[0].Title)

	prompts := client.recordedPrompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "How to Choose a Safety Knife")
	assert.Contains(t, prompts[0], "Generate 5 blog post topic ideas")
}

func TestGenerateTopicIdeas_TruncatesAvoidList(t *testing.T) {
	o, client := newOrchestrator(t, stubCall{text: "no ideas"})

	titles := make([]string, 60)
	for i := range titles {
		titles[i] = fmt.Sprintf("Existing Post Number %d", i+1)
	}

	o.GenerateTopicIdeas(context.Background(), TopicRequest{
		BlogURL:        "https://blog.sliceproducts.com",
		ExistingTitles: titles,
	})

	prompt := client.recordedPrompts()[0]
	assert.Contains(t, prompt, "Existing Post Number 50")
	assert.NotContains(t, prompt, "Existing Post Number 51")
	assert.Contains(t, prompt, "(and 10 more...)")
}

func TestGenerateTopicIdeas_FailureReturnsEmpty(t *testing.T) {
	o, _ := newOrchestrator(t, stubCall{err: errors.New("provider down")})
	progress := &progressRecorder{}

	ideas := o.GenerateTopicIdeas(context.Background(), TopicRequest{
		BlogURL:    "https://blog.sliceproducts.com",
		OnProgress: progress.record,
	})

	assert.Empty(t, ideas)
	last := len(progress.percents) - 1
	assert.Equal(t, 0, progress.percents[last])
	assert.Equal(t, "provider down", progress.messages[last])
}

func TestExtractBlogTopics(t *testing.T) {
	o, _ := newOrchestrator(t, stubCall{text: "How to Sharpen a Utility Knife\nshort\nWarehouse Ergonomics That Work"})

	got := o.ExtractBlogTopics(context.Background(), "https://blog.sliceproducts.com")
	assert.Equal(t, []string{"How to Sharpen a Utility Knife", "Warehouse Ergonomics That Work"}, got)
}

func TestExtractBlogTopics_FailureReturnsEmpty(t *testing.T) {
	o, _ := newOrchestrator(t, stubCall{err: errors.New("nope")})
	assert.Empty(t, o.ExtractBlogTopics(context.Background(), "https://blog.sliceproducts.com"))
}

func TestCheckTopicDuplication(t *testing.T) {
	o, _ := newOrchestrator(t, stubCall{text: "HIGH_RISK - already covered by 'Knife Guide'"})
	got := o.CheckTopicDuplication(context.Background(), "Knife Guide", []string{"Knife Guide"})
	assert.Equal(t, seo.VerdictHighRisk, got)
}

func TestCheckTopicDuplication_FailureDegradesToWarning(t *testing.T) {
	o, _ := newOrchestrator(t, stubCall{err: errors.New("nope")})
	got := o.CheckTopicDuplication(context.Background(), "Topic", nil)
	assert.Equal(t, seo.VerdictWarning, got)
}
