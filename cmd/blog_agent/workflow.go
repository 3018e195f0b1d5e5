package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/bertram-labs/blog-agent/internal/observability"
	"github.com/bertram-labs/blog-agent/internal/validation"
	"github.com/bertram-labs/blog-agent/internal/workflow"
)

var workflowCommand = &cobra.Command{
	Use:   "workflow",
	Short: "Run a batch generation workflow from a JSON file",
	Long: `Runs the generation pipeline once per topic listed in a workflow JSON file.

The file is validated against the workflow schema before anything runs. Use --sample to print a template workflow file.`,
	RunE: runWorkflowCmd,
}

var (
	workflowFile        string
	workflowSample      bool
	workflowProvider    string
	workflowAPIKey      string
	workflowDatabaseURL string
	workflowOutputDir   string
	workflowVerbose     bool
)

func init() {
	workflowCommand.Flags().StringVarP(&workflowFile, "file", "f", "", "Path to the workflow JSON file")
	workflowCommand.Flags().BoolVar(&workflowSample, "sample", false, "Print a sample workflow file and exit")
	workflowCommand.Flags().StringVar(&workflowProvider, "provider", "", "LLM provider: gemini (default) or openai")
	workflowCommand.Flags().StringVar(&workflowAPIKey, "api-key", "", "LLM API key (optional, defaults to provider env var)")
	workflowCommand.Flags().StringVar(&workflowDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	workflowCommand.Flags().StringVarP(&workflowOutputDir, "output", "o", "output", "Directory for finished posts")
	workflowCommand.Flags().BoolVarP(&workflowVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(workflowCommand)
}

func runWorkflowCmd(cmd *cobra.Command, _ []string) error {
	if workflowSample {
		fmt.Fprintln(cmd.OutOrStdout(), workflow.Sample())
		return nil
	}
	if workflowFile == "" {
		return fmt.Errorf("--file is required (or use --sample to print a template)")
	}

	ctx := context.Background()

	data, err := os.ReadFile(workflowFile)
	if err != nil {
		return fmt.Errorf("failed to read workflow file: %w", err)
	}
	wf, err := workflow.Parse(data)
	if err != nil {
		return err
	}
	if _, err := validation.BlogURL(wf.RootBlogURL); err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(workflowProvider, workflowAPIKey)
	if err != nil {
		return err
	}

	o, client, err := newOrchestrator(ctx, workflowProvider, apiKey)
	if err != nil {
		return err
	}
	defer o.Close()
	defer client.Close()

	st, err := openStore(ctx, workflowDatabaseURL)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	requests := wf.PipelineRequests()
	failures := 0
	for i, req := range requests {
		fmt.Printf("=== Topic %d/%d: %s ===\n", i+1, len(requests), req.Topic)
		req.OnProgress = progressPrinter()

		res := o.CreateBlogPost(ctx, req)
		if workflowVerbose {
			printer.PrintResult(res)
		}
		if res.Failed() {
			failures++
			log.Printf("Topic %q failed: %s", req.Topic, res.Err)
			continue
		}

		if st != nil {
			persistGeneratedPost(ctx, st, client, "", req.Topic, req.BlogURL, res)
		}
		path, err := writePost(workflowOutputDir, req.Topic, res)
		if err != nil {
			return err
		}
		fmt.Printf("Post written to %s\n", path)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d topics failed", failures, len(requests))
	}
	return nil
}
