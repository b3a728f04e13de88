package main

import (
	"github.com/spf13/cobra"
)

var fullCommand = &cobra.Command{
	Use:   "full <keyword>",
	Short: "Run collect, clean and extract for a search keyword",
	Long: `Runs the whole pipeline for one keyword: search YouTube and collect new videos,
clean their text, then extract recipes from every cleaned video.

The run stops early when nothing was collected or nothing was cleaned. Videos
that fail extraction are recorded as skipped and do not change the exit code.`,
	Example: `  recipe_agent full "김치찌개 레시피"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runFullCmd,
}

func init() {
	rootCmd.AddCommand(fullCommand)
}

func runFullCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	runner, err := a.runner(ctx, true, true, true)
	if err != nil {
		return err
	}

	_, err = runner.RunFull(ctx, args[0])
	return err
}
