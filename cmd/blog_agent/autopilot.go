package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bertram-labs/blog-agent/internal/brand"
	"github.com/bertram-labs/blog-agent/internal/observability"
	"github.com/bertram-labs/blog-agent/internal/pipeline"
	"github.com/bertram-labs/blog-agent/internal/store"
	"github.com/bertram-labs/blog-agent/internal/topics"
	"github.com/bertram-labs/blog-agent/internal/validation"
)

var autopilotCommand = &cobra.Command{
	Use:   "autopilot",
	Short: "Generate a batch of posts from the topic queue",
	Long: `Runs the generation pipeline for a queue of topic ideas, reusing one style guide across the batch.

With a database configured, the queue comes from stored unused topic ideas for the brand; otherwise ideas are generated first. Each candidate is checked against existing post titles and skipped when it would duplicate one. The batch stops early after 3 consecutive failures.`,
	RunE: runAutopilotCmd,
}

var (
	autoBrand       string
	autoBlogURL     string
	autoMaxPosts    int
	autoProvider    string
	autoAPIKey      string
	autoDatabaseURL string
	autoOutputDir   string
	autoNoDupCheck  bool
)

func init() {
	autopilotCommand.Flags().StringVarP(&autoBrand, "brand", "b", "", "Brand key from the catalog (optional)")
	autopilotCommand.Flags().StringVarP(&autoBlogURL, "blog-url", "u", "", "Blog URL to generate for (defaults to the brand's blog)")
	autopilotCommand.Flags().IntVarP(&autoMaxPosts, "max-posts", "m", 3, "Maximum posts to generate in this batch (1-10)")
	autopilotCommand.Flags().StringVar(&autoProvider, "provider", "", "LLM provider: gemini (default) or openai")
	autopilotCommand.Flags().StringVar(&autoAPIKey, "api-key", "", "LLM API key (optional, defaults to provider env var)")
	autopilotCommand.Flags().StringVar(&autoDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	autopilotCommand.Flags().StringVarP(&autoOutputDir, "output", "o", "output", "Directory for finished posts")
	autopilotCommand.Flags().BoolVar(&autoNoDupCheck, "no-dup-check", false, "Skip the duplication check before each post")

	rootCmd.AddCommand(autopilotCommand)
}

func runAutopilotCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if err := validation.AutopilotCount(autoMaxPosts); err != nil {
		return err
	}

	brandCfg, err := resolveBrand(autoBrand)
	if err != nil {
		return err
	}
	blogURL := autoBlogURL
	if blogURL == "" && brandCfg != nil {
		blogURL = brandCfg.EffectiveStyleSource()
	}
	cleanURL, err := validation.BlogURL(blogURL)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(autoProvider, autoAPIKey)
	if err != nil {
		return err
	}

	o, client, err := newOrchestrator(ctx, autoProvider, apiKey)
	if err != nil {
		return err
	}
	defer o.Close()
	defer client.Close()

	st, err := openStore(ctx, autoDatabaseURL)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	queue, queued, err := loadTopicQueue(ctx, o, st, brandCfg, autoBrand, cleanURL)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		return fmt.Errorf("no topic ideas available; run 'blog_agent topics' first")
	}

	var existing []string
	if st != nil && autoBrand != "" {
		existing, _ = st.GetCachedTopics(ctx, autoBrand, cleanURL)
	}
	if len(existing) == 0 {
		existing = o.ExtractBlogTopics(ctx, cleanURL)
	}

	var cachedGuide string
	if st != nil && autoBrand != "" {
		if sg, err := st.GetFreshStyleGuide(ctx, autoBrand, cleanURL, 0); err == nil && sg != nil {
			cachedGuide = sg.GuideText
		}
	}

	outcomes := o.Autopilot(ctx, pipeline.AutopilotOptions{
		BlogURL:          cleanURL,
		Brand:            brandCfg,
		Ideas:            queue,
		MaxPosts:         autoMaxPosts,
		CachedStyleGuide: cachedGuide,
		ExistingTitles:   existing,
		CheckDuplication: !autoNoDupCheck,
		OnProgress:       progressPrinter(),
	})

	for _, out := range outcomes {
		if out.Skipped || out.Result == nil || out.Result.Failed() {
			continue
		}
		if path, err := writePost(autoOutputDir, out.Idea.Title, out.Result); err != nil {
			log.Printf("Failed to write %q: %v", out.Idea.Title, err)
		} else {
			fmt.Printf("Post written to %s\n", path)
		}
		if st != nil {
			persistGeneratedPost(ctx, st, client, autoBrand, out.Idea.Title, cleanURL, out.Result)
			if id, ok := queued[out.Idea.Title]; ok {
				if err := st.MarkTopicUsed(ctx, id); err != nil {
					log.Printf("Failed to mark topic used: %v", err)
				}
			}
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintAutopilotOutcomes(outcomes)
	return nil
}

// loadTopicQueue returns the ideas to attempt plus a title-to-row-ID map
// for stored queue entries. Falls back to fresh ideation when the stored
// queue is empty.
func loadTopicQueue(ctx context.Context, o *pipeline.Orchestrator, st *store.Store, brandCfg *brand.Config, brandName, blogURL string) ([]topics.Idea, map[string]uuid.UUID, error) {
	queued := make(map[string]uuid.UUID)

	if st != nil && brandName != "" {
		rows, err := st.ListUnusedTopicIdeas(ctx, brandName, autoMaxPosts*2)
		if err != nil {
			return nil, nil, err
		}
		if len(rows) > 0 {
			ideas := make([]topics.Idea, 0, len(rows))
			for _, row := range rows {
				ideas = append(ideas, row.Idea)
				queued[row.Idea.Title] = row.ID
			}
			return ideas, queued, nil
		}
	}

	ideas := o.GenerateTopicIdeas(ctx, pipeline.TopicRequest{
		BlogURL:    blogURL,
		Count:      autoMaxPosts,
		Brand:      brandCfg,
		OnProgress: progressPrinter(),
	})
	return ideas, queued, nil
}
