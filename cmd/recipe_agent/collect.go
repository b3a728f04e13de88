package main

import (
	"github.com/spf13/cobra"
)

var collectCommand = &cobra.Command{
	Use:     "collect <keyword>",
	Short:   "Search YouTube and store new videos with their captions",
	Example: `  recipe_agent collect "불고기 만들기" --max-results 10`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCollectCmd,
}

func init() {
	rootCmd.AddCommand(collectCommand)
}

func runCollectCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	runner, err := a.runner(ctx, true, false, false)
	if err != nil {
		return err
	}

	_, err = runner.RunCollect(ctx, args[0])
	return err
}
