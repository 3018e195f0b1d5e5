// Package main provides the entry point for the blog content agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blog_agent",
	Short: "Multi-brand blog content agent",
	Long:  "blog_agent generates SEO-optimized blog posts that match an existing blog's writing style, via a multi-stage LLM pipeline with topic ideation, duplication checks, and batch autopilot.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
