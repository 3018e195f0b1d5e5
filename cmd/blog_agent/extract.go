package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bertram-labs/blog-agent/internal/fetch"
	"github.com/bertram-labs/blog-agent/internal/observability"
	"github.com/bertram-labs/blog-agent/internal/validation"
)

var extractCommand = &cobra.Command{
	Use:   "extract",
	Short: "List post titles published at a blog URL",
	Long: `Extracts existing post titles from a blog index page.

Titles are scraped directly from the page HTML; when scraping finds nothing (e.g. the page is a JavaScript shell and no browser is available), the LLM extractor is used as a fallback.`,
	RunE: runExtractCmd,
}

var (
	extractBlogURL     string
	extractProvider    string
	extractAPIKey      string
	extractBrand       string
	extractDatabaseURL string
	extractNoLLM       bool
)

func init() {
	extractCommand.Flags().StringVarP(&extractBlogURL, "blog-url", "u", "", "Blog index URL to extract titles from (required)")
	extractCommand.Flags().StringVarP(&extractBrand, "brand", "b", "", "Brand key to cache extracted titles under (optional)")
	extractCommand.Flags().StringVar(&extractProvider, "provider", "", "LLM provider for the fallback extractor")
	extractCommand.Flags().StringVar(&extractAPIKey, "api-key", "", "LLM API key for the fallback extractor (optional)")
	extractCommand.Flags().StringVar(&extractDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	extractCommand.Flags().BoolVar(&extractNoLLM, "no-llm", false, "Disable the LLM fallback; scrape only")
	_ = extractCommand.MarkFlagRequired("blog-url")

	rootCmd.AddCommand(extractCommand)
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cleanURL, err := validation.BlogURL(extractBlogURL)
	if err != nil {
		return err
	}

	titles, err := fetch.HarvestTitles(ctx, cleanURL, nil)
	if err != nil {
		log.Printf("Scrape failed: %v", err)
	}

	if len(titles) == 0 && !extractNoLLM {
		apiKey, err := resolveAPIKey(extractProvider, extractAPIKey)
		if err != nil {
			return err
		}
		o, client, err := newOrchestrator(ctx, extractProvider, apiKey)
		if err != nil {
			return err
		}
		defer o.Close()
		defer client.Close()

		titles = o.ExtractBlogTopics(ctx, cleanURL)
	}

	if len(titles) == 0 {
		return fmt.Errorf("no post titles found at %s", cleanURL)
	}

	if extractBrand != "" {
		st, err := openStore(ctx, extractDatabaseURL)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
			if err := st.SaveCachedTopics(ctx, extractBrand, cleanURL, titles); err != nil {
				log.Printf("Failed to cache extracted titles: %v", err)
			}
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTitles(titles)
	return nil
}
