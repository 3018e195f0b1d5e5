package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bertram-labs/blog-agent/internal/brand"
	"github.com/bertram-labs/blog-agent/internal/llm"
	"github.com/bertram-labs/blog-agent/internal/pipeline"
	"github.com/bertram-labs/blog-agent/internal/render"
	"github.com/bertram-labs/blog-agent/internal/store"
	"github.com/bertram-labs/blog-agent/internal/validation"
)

// llmConfigFor maps a provider name to its default model configuration.
func llmConfigFor(provider string) *llm.Config {
	if provider == "openai" {
		return llm.DefaultOpenAIConfig()
	}
	return llm.DefaultGeminiConfig()
}

// resolveAPIKey returns the configured key, falling back to the provider's
// conventional environment variable.
func resolveAPIKey(provider, configured string) (string, error) {
	key := configured
	if key == "" {
		envVar := "GEMINI_API_KEY"
		if provider == "openai" {
			envVar = "OPENAI_API_KEY"
		}
		key = os.Getenv(envVar)
		if key == "" {
			return "", fmt.Errorf("%s environment variable or --api-key flag is required", envVar)
		}
	}
	if err := validation.APIKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// newOrchestrator builds the LLM client and pipeline orchestrator. The
// caller owns both and must close them when done.
func newOrchestrator(ctx context.Context, provider, apiKey string) (*pipeline.Orchestrator, llm.Client, error) {
	client, err := llm.NewClient(ctx, llmConfigFor(provider), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return pipeline.New(client), client, nil
}

// openStore connects to Postgres and runs migrations. An empty URL means
// persistence is disabled; callers get a nil store.
func openStore(ctx context.Context, databaseURL string) (*store.Store, error) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, nil
	}

	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return st, nil
}

// resolveBrand looks up a brand key, or returns nil when none was given.
func resolveBrand(name string) (*brand.Config, error) {
	if name == "" {
		return nil, nil
	}
	cfg, err := brand.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (known brands: %s)", err, strings.Join(brand.Names(), ", "))
	}
	return cfg, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify converts a post topic into a filesystem-safe file stem.
func slugify(topic string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(topic), "-"), "-")
	if len(slug) > 80 {
		slug = strings.Trim(slug[:80], "-")
	}
	if slug == "" {
		slug = "post"
	}
	return slug
}

// writePost writes the finished post as Markdown plus a rendered HTML page.
// Returns the Markdown path.
func writePost(outputDir, topic string, res *pipeline.Result) (string, error) {
	if outputDir == "" {
		outputDir = "output"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	title := render.Title(res.Final)
	if title == "" {
		title = topic
	}
	slug := slugify(title)

	mdPath := filepath.Join(outputDir, slug+".md")
	if err := os.WriteFile(mdPath, []byte(res.Final), 0o644); err != nil {
		return "", fmt.Errorf("failed to write markdown: %w", err)
	}

	page, err := render.Page(title, res.Final)
	if err != nil {
		return mdPath, fmt.Errorf("failed to render HTML: %w", err)
	}
	htmlPath := filepath.Join(outputDir, slug+".html")
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		return mdPath, fmt.Errorf("failed to write HTML: %w", err)
	}

	return mdPath, nil
}

// progressPrinter returns a ProgressFunc that logs checkpoints to stdout.
func progressPrinter() pipeline.ProgressFunc {
	return func(msg string, pct int) {
		fmt.Printf("[%3d%%] %s\n", pct, msg)
	}
}
