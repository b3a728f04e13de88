package main

import (
	"github.com/spf13/cobra"
)

var extractCommand = &cobra.Command{
	Use:   "extract",
	Short: "Extract recipes from every cleaned video with Gemini",
	Long: `Sends every cleaned video to Gemini, validates the returned recipe and stores it.

Rejected videos are recorded in skipped_videos and removed. Use 'skipped' to
list them.`,
	Args: cobra.NoArgs,
	RunE: runExtractCmd,
}

func init() {
	rootCmd.AddCommand(extractCommand)
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	runner, err := a.runner(ctx, false, false, true)
	if err != nil {
		return err
	}

	if _, err := runner.RunExtract(ctx); err != nil {
		return err
	}

	total, err := a.store.CountRecipes(ctx)
	if err != nil {
		return err
	}
	a.printer.Line("저장된 레시피: 총 %d개", total)
	return nil
}
