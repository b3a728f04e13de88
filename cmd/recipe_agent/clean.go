package main

import (
	"github.com/spf13/cobra"
)

var cleanCommand = &cobra.Command{
	Use:   "clean",
	Short: "Clean the text of every collected video",
	Args:  cobra.NoArgs,
	RunE:  runCleanCmd,
}

func init() {
	rootCmd.AddCommand(cleanCommand)
}

func runCleanCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	runner, err := a.runner(ctx, false, true, false)
	if err != nil {
		return err
	}

	_, err = runner.RunClean(ctx)
	return err
}
