package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bertram-labs/blog-agent/internal/config"
	"github.com/bertram-labs/blog-agent/internal/llm"
	"github.com/bertram-labs/blog-agent/internal/observability"
	"github.com/bertram-labs/blog-agent/internal/pipeline"
	"github.com/bertram-labs/blog-agent/internal/store"
	"github.com/bertram-labs/blog-agent/internal/validation"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Generate one blog post end-to-end",
	Long: `Runs the full generation pipeline for a single topic: style analysis -> research -> draft -> SEO advisory -> link insertion -> final edit -> SEO scoring.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerateCmd,
}

var (
	genConfigPath   string
	genBrand        string
	genTopic        string
	genBlogURL      string
	genRequirements string
	genProvider     string
	genAPIKey       string
	genDatabaseURL  string
	genOutputDir    string
	genVerbose      bool
)

func init() {
	generateCommand.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCommand.Flags().StringVarP(&genBrand, "brand", "b", "", "Brand key from the catalog (optional)")
	generateCommand.Flags().StringVarP(&genTopic, "topic", "t", "", "Blog post topic")
	generateCommand.Flags().StringVarP(&genBlogURL, "blog-url", "u", "", "Reference blog URL for style analysis (defaults to the brand's blog)")
	generateCommand.Flags().StringVarP(&genRequirements, "requirements", "r", "", "Extra writing requirements")
	generateCommand.Flags().StringVar(&genProvider, "provider", "", "LLM provider: gemini (default) or openai")
	generateCommand.Flags().StringVar(&genAPIKey, "api-key", "", "LLM API key (optional, defaults to GEMINI_API_KEY / OPENAI_API_KEY env var)")
	generateCommand.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	generateCommand.Flags().StringVarP(&genOutputDir, "output", "o", "", "Directory for finished posts (default \"output\")")
	generateCommand.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(generateCommand)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergeGenerateConfig(cmd)
	if err != nil {
		return err
	}

	brandCfg, err := resolveBrand(cfg.Brand)
	if err != nil {
		return err
	}
	if cfg.BlogURL == "" && brandCfg != nil {
		cfg.BlogURL = brandCfg.EffectiveStyleSource()
	}

	if err := validation.Topic(genTopic); err != nil {
		return err
	}
	if err := validation.Requirements(cfg.Requirements); err != nil {
		return err
	}
	blogURL, err := validation.BlogURL(cfg.BlogURL)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(cfg.Provider, cfg.APIKey)
	if err != nil {
		return err
	}

	o, client, err := newOrchestrator(ctx, cfg.Provider, apiKey)
	if err != nil {
		return err
	}
	defer o.Close()
	defer client.Close()

	st, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	req := pipeline.Request{
		Topic:        genTopic,
		BlogURL:      blogURL,
		Requirements: cfg.Requirements,
		Brand:        brandCfg,
		OnProgress:   progressPrinter(),
	}
	if st != nil && cfg.Brand != "" {
		if sg, err := st.GetFreshStyleGuide(ctx, cfg.Brand, blogURL, 0); err == nil && sg != nil {
			req.CachedStyleGuide = sg.GuideText
		}
	}

	res := o.CreateBlogPost(ctx, req)

	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResult(res)
	}
	if res.Failed() {
		return fmt.Errorf("generation failed: %s", res.Err)
	}

	if st != nil {
		persistGeneratedPost(ctx, st, client, cfg.Brand, genTopic, blogURL, res)
	}

	path, err := writePost(cfg.OutputDir, genTopic, res)
	if err != nil {
		return err
	}
	fmt.Printf("Post written to %s\n", path)
	return nil
}

// mergeGenerateConfig loads an optional config file and applies CLI
// overrides, following flag-wins precedence.
func mergeGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if genVerbose {
			fmt.Printf("Loaded config from: %s\n", genConfigPath)
		}
	}

	if cmd.Flags().Changed("brand") {
		cfg.Brand = genBrand
	}
	if cmd.Flags().Changed("blog-url") {
		cfg.BlogURL = genBlogURL
	}
	if cmd.Flags().Changed("requirements") {
		cfg.Requirements = genRequirements
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = genProvider
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = genOutputDir
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Provider:  "gemini",
		OutputDir: "output",
	})
	return cfg, cfg.Validate()
}

// persistGeneratedPost caches the style guide with extracted metadata and
// records the finished post. Persistence failures are logged, never fatal.
func persistGeneratedPost(ctx context.Context, st *store.Store, client llm.Client, brandName, topic, blogURL string, res *pipeline.Result) {
	if brandName != "" && !res.StyleGuideCached && res.StyleGuide != "" {
		sg := &store.StyleGuide{
			Brand:     brandName,
			Domain:    blogURL,
			GuideText: res.StyleGuide,
		}
		sg.Tone, sg.HeadingStyle, sg.ListStyle, sg.AnalysisQuality = extractStyleMetadata(ctx, client, res.StyleGuide)
		if err := st.SaveStyleGuide(ctx, sg); err != nil {
			log.Printf("Failed to cache style guide: %v", err)
		}
	}

	rec := &store.GeneratedContent{
		Brand:        brandName,
		Topic:        topic,
		SourceBlog:   blogURL,
		FinalContent: res.Final,
		SEOScore:     res.SEOScore,
	}
	if _, err := st.SaveGeneratedContent(ctx, rec); err != nil {
		log.Printf("Failed to save generated content: %v", err)
	}
	if err := st.RecordSourceSuccess(ctx, brandName, blogURL); err != nil {
		log.Printf("Failed to record source success: %v", err)
	}
}

// extractStyleMetadata asks the lite model to summarize a style guide into
// the columns stored alongside it. Best effort; failures leave the fields
// empty.
func extractStyleMetadata(ctx context.Context, client llm.Client, guide string) (tone, headingStyle, listStyle, quality string) {
	prompt := llm.BuildExtractionPrompt(llm.StyleMetadataSchema(), guide)
	out, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", "", "", ""
	}

	var meta struct {
		Tone            string `json:"tone"`
		HeadingStyle    string `json:"heading_style"`
		ListStyle       string `json:"list_style"`
		AnalysisQuality string `json:"analysis_quality"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(out)), &meta); err != nil {
		return "", "", "", ""
	}
	return meta.Tone, meta.HeadingStyle, meta.ListStyle, meta.AnalysisQuality
}
