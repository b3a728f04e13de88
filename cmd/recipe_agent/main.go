// Package main provides the recipe_agent command line: collect cooking videos
// from YouTube, clean their text and extract structured recipes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recipe_agent",
	Short: "YouTube cooking recipe crawler",
	Long: `recipe_agent collects cooking videos from YouTube, cleans their descriptions and
captions, and extracts structured recipes with Gemini into PostgreSQL.

Configuration is read from the environment (and .env), an optional JSON or TOML
file given with --config, and flags, in increasing order of priority.`,
	SilenceUsage: true,
}

var globals globalFlags

func init() {
	addGlobalFlags(rootCmd, &globals)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
