package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/bertram-labs/blog-agent/internal/keywords"
	"github.com/bertram-labs/blog-agent/internal/observability"
	"github.com/bertram-labs/blog-agent/internal/pipeline"
	"github.com/bertram-labs/blog-agent/internal/validation"
)

var topicsCommand = &cobra.Command{
	Use:   "topics",
	Short: "Generate topic ideas for a blog",
	Long: `Generates differentiated topic ideas for a blog, avoiding overlap with its existing posts.

When Custom Search credentials are configured (--search-api-key/--search-cx or GOOGLE_SEARCH_API_KEY/GOOGLE_SEARCH_CX), ideas are enriched with trend scores and search volume estimates. With a database configured, ideas are saved to the topic queue for later autopilot runs.`,
	RunE: runTopicsCmd,
}

var (
	topicsBrand        string
	topicsBlogURL      string
	topicsCount        int
	topicsPreferences  string
	topicsProduct      string
	topicsProvider     string
	topicsAPIKey       string
	topicsSearchAPIKey string
	topicsSearchCX     string
	topicsDatabaseURL  string
)

func init() {
	topicsCommand.Flags().StringVarP(&topicsBrand, "brand", "b", "", "Brand key from the catalog (optional)")
	topicsCommand.Flags().StringVarP(&topicsBlogURL, "blog-url", "u", "", "Blog URL to ideate for (defaults to the brand's blog)")
	topicsCommand.Flags().IntVarP(&topicsCount, "count", "n", 0, "Number of ideas to generate (default 5)")
	topicsCommand.Flags().StringVar(&topicsPreferences, "preferences", "", "Free-form content preferences")
	topicsCommand.Flags().StringVar(&topicsProduct, "product", "", "Product or category the ideas should support")
	topicsCommand.Flags().StringVar(&topicsProvider, "provider", "", "LLM provider: gemini (default) or openai")
	topicsCommand.Flags().StringVar(&topicsAPIKey, "api-key", "", "LLM API key (optional, defaults to provider env var)")
	topicsCommand.Flags().StringVar(&topicsSearchAPIKey, "search-api-key", "", "Custom Search API key for trend enrichment (optional)")
	topicsCommand.Flags().StringVar(&topicsSearchCX, "search-cx", "", "Custom Search engine ID (optional)")
	topicsCommand.Flags().StringVar(&topicsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(topicsCommand)
}

func runTopicsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	brandCfg, err := resolveBrand(topicsBrand)
	if err != nil {
		return err
	}
	blogURL := topicsBlogURL
	if blogURL == "" && brandCfg != nil {
		blogURL = brandCfg.EffectiveStyleSource()
	}
	cleanURL, err := validation.BlogURL(blogURL)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(topicsProvider, topicsAPIKey)
	if err != nil {
		return err
	}

	o, client, err := newOrchestrator(ctx, topicsProvider, apiKey)
	if err != nil {
		return err
	}
	defer o.Close()
	defer client.Close()

	st, err := openStore(ctx, topicsDatabaseURL)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	// Existing titles feed the avoid-list: cached first, harvested otherwise.
	var existing []string
	if st != nil && topicsBrand != "" {
		existing, _ = st.GetCachedTopics(ctx, topicsBrand, cleanURL)
	}
	if len(existing) == 0 {
		existing = o.ExtractBlogTopics(ctx, cleanURL)
		if st != nil && topicsBrand != "" && len(existing) > 0 {
			if err := st.SaveCachedTopics(ctx, topicsBrand, cleanURL, existing); err != nil {
				log.Printf("Failed to cache extracted topics: %v", err)
			}
		}
	}

	var trending []string
	enricher := newEnricher(ctx)
	if enricher != nil && brandCfg != nil && len(brandCfg.PrimaryKeywords) > 0 {
		trending, _ = enricher.RelatedQueries(ctx, brandCfg.PrimaryKeywords[0])
	}

	ideas := o.GenerateTopicIdeas(ctx, pipeline.TopicRequest{
		BlogURL:          cleanURL,
		Count:            topicsCount,
		Preferences:      topicsPreferences,
		TrendingKeywords: trending,
		ProductTarget:    topicsProduct,
		ExistingTitles:   existing,
		Brand:            brandCfg,
		OnProgress:       progressPrinter(),
	})
	if len(ideas) == 0 {
		return fmt.Errorf("no topic ideas were generated")
	}

	if enricher != nil {
		enricher.EnrichIdeas(ctx, ideas)
	}

	if st != nil && topicsBrand != "" {
		if err := st.SaveTopicIdeas(ctx, topicsBrand, cleanURL, ideas); err != nil {
			log.Printf("Failed to save topic ideas: %v", err)
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintIdeas(ideas)
	return nil
}

// newEnricher builds a keyword enricher when Custom Search credentials are
// configured, from flags or environment. Returns nil when unconfigured.
func newEnricher(ctx context.Context) *keywords.Enricher {
	apiKey := topicsSearchAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	cx := topicsSearchCX
	if cx == "" {
		cx = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if apiKey == "" || cx == "" {
		return nil
	}

	enricher, err := keywords.NewEnricher(ctx, apiKey, cx)
	if err != nil {
		log.Printf("Keyword enrichment disabled: %v", err)
		return nil
	}
	return enricher
}
