package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertram-labs/blog-agent/internal/llm"
	"github.com/bertram-labs/blog-agent/internal/pipeline"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{name: "simple", topic: "Warehouse Safety", want: "warehouse-safety"},
		{name: "punctuation", topic: "Box Cutters: A Buyer's Guide!", want: "box-cutters-a-buyer-s-guide"},
		{name: "empty", topic: "", want: "post"},
		{name: "symbols only", topic: "???", want: "post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.topic))
		})
	}
}

func TestSlugify_CapsLength(t *testing.T) {
	long := strings.Repeat("word ", 40)
	assert.LessOrEqual(t, len(slugify(long)), 80)
}

func TestWritePost(t *testing.T) {
	dir := t.TempDir()
	res := &pipeline.Result{Final: "# Five Warehouse Safety Wins\n\nBody text."}

	path, err := writePost(dir, "fallback topic", res)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "five-warehouse-safety-wins.md"), path)

	md, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.Final, string(md))

	html, err := os.ReadFile(filepath.Join(dir, "five-warehouse-safety-wins.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Five Warehouse Safety Wins</title>")
	assert.Contains(t, string(html), "<h1>")
}

func TestWritePost_NoHeadingUsesFirstLine(t *testing.T) {
	dir := t.TempDir()
	res := &pipeline.Result{Final: "No heading here, just prose."}

	path, err := writePost(dir, "Untitled Topic", res)
	require.NoError(t, err)
	assert.Contains(t, path, "no-heading-here")
}

func TestLLMConfigFor(t *testing.T) {
	assert.Equal(t, llm.ProviderOpenAI, llmConfigFor("openai").Provider)
	assert.Equal(t, llm.ProviderGemini, llmConfigFor("gemini").Provider)
	assert.Equal(t, llm.ProviderGemini, llmConfigFor("").Provider)
}

func TestResolveBrand(t *testing.T) {
	cfg, err := resolveBrand("")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	_, err = resolveBrand("nosuch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "known brands")
}

func TestResolveAPIKey_MissingEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := resolveAPIKey("gemini", "")
	assert.Error(t, err)
}

func TestResolveAPIKey_FlagWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	key, err := resolveAPIKey("gemini", "flag-key")
	require.NoError(t, err)
	assert.Equal(t, "flag-key", key)
}
