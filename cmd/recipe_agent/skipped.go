package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jonathan/recipe-crawler/internal/db"
	"github.com/jonathan/recipe-crawler/internal/types"
)

// reasonWidth caps the reason column; parse errors carry a long snippet.
const reasonWidth = 60

var skippedLimit int

var skippedCommand = &cobra.Command{
	Use:   "skipped",
	Short: "List the most recently skipped videos and why",
	Args:  cobra.NoArgs,
	RunE:  runSkippedCmd,
}

func init() {
	skippedCommand.Flags().IntVar(&skippedLimit, "limit", db.DefaultSkippedLimit, "Maximum records to show")
	rootCmd.AddCommand(skippedCommand)
}

func runSkippedCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.store.ListSkipped(cmd.Context(), skippedLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No skipped videos.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSkipped(records))
	return nil
}

func renderSkipped(records []types.SkipRecord) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"VIDEO ID", "REASON", "URL", "SKIPPED AT"})
	for _, r := range records {
		tw.AppendRow(table.Row{r.VideoID, r.Reason, r.URL, r.SkippedAt.Local().Format(time.DateTime)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: reasonWidth, WidthMaxEnforcer: text.WrapSoft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d skipped", len(records))})
	return tw.Render()
}
