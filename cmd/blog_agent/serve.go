package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bertram-labs/blog-agent/internal/server"
)

var (
	servePort        int
	serveProvider    string
	serveAPIKey      string
	serveDatabaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for blog post generation, topic ideation, and run history.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "LLM provider: gemini (default) or openai")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "LLM API key (optional, defaults to provider env var)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey, err := resolveAPIKey(serveProvider, serveAPIKey)
	if err != nil {
		return err
	}

	o, client, err := newOrchestrator(ctx, serveProvider, apiKey)
	if err != nil {
		return err
	}
	defer client.Close()

	st, err := openStore(ctx, serveDatabaseURL)
	if err != nil {
		return err
	}

	scfg := server.Config{
		Port:         servePort,
		Orchestrator: o,
		Store:        st,
	}
	if enr := newEnricher(ctx); enr != nil {
		scfg.Enricher = enr
	}

	srv, err := server.New(scfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
