package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidRequest(t *testing.T) {
	req, err := Parse([]byte(Sample()))
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com/", req.RootBlogURL)
	assert.Equal(t, []string{"your topic here"}, req.Topics)
	assert.Len(t, req.SEOKeywords, 3)
	assert.Contains(t, req.WritingRequirement, "2000 words")
}

func TestParse_MissingTopics(t *testing.T) {
	_, err := Parse([]byte(`{"root_blog_url": "https://blog.example.com/"}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "topics")
}

func TestParse_EmptyTopicList(t *testing.T) {
	_, err := Parse([]byte(`{"root_blog_url": "https://x.com/", "topics": []}`))
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`{"root_blog_url": "https://x.com/", "topics": ["a topic"], "surprise": true}`))
	require.Error(t, err)
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
}

func TestPipelineRequests(t *testing.T) {
	req := &Request{
		RootBlogURL:        "https://blog.example.com/",
		Topics:             []string{"First topic", "Second topic"},
		SEOKeywords:        []string{"safety knife", "box cutter"},
		WritingRequirement: "include FAQ section",
		PostsToAvoid:       []string{"Old Post"},
		TargetProductURLs:  []string{"https://example.com/products/p1"},
	}

	reqs := req.PipelineRequests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "First topic", reqs[0].Topic)
	assert.Equal(t, "Second topic", reqs[1].Topic)
	for _, r := range reqs {
		assert.Equal(t, "https://blog.example.com/", r.BlogURL)
		assert.Contains(t, r.Requirements, "include FAQ section")
		assert.Contains(t, r.Requirements, "Target SEO keywords: safety knife, box cutter")
		assert.Equal(t, []string{"Old Post"}, r.ExistingTitles)
		assert.Equal(t, []string{"https://example.com/products/p1"}, r.TargetProductURLs)
	}
}

func TestPipelineRequests_NoKeywords(t *testing.T) {
	req := &Request{
		RootBlogURL:        "https://blog.example.com/",
		Topics:             []string{"Only topic"},
		WritingRequirement: "short and punchy",
	}

	reqs := req.PipelineRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "short and punchy", reqs[0].Requirements)
}
