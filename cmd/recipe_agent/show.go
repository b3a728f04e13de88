package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/recipe-crawler/internal/types"
)

var showCommand = &cobra.Command{
	Use:   "show <video_id>",
	Short: "Print the stored recipe for one video",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCmd,
}

func init() {
	rootCmd.AddCommand(showCommand)
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.store.GetVideo(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("video %s not found", args[0])
	}
	if !doc.IsExtracted() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", doc.VideoID, documentStage(doc))
		return nil
	}

	a.printer.PrintRecipe(doc.VideoID, recipeFromDocument(doc))
	return nil
}

// documentStage names how far a not yet extracted document got.
func documentStage(doc *types.VideoDocument) string {
	if doc.IsCleaned() {
		return "cleaned, waiting for extraction"
	}
	return "collected, waiting for cleaning"
}

func recipeFromDocument(doc *types.VideoDocument) *types.ExtractedRecipe {
	return &types.ExtractedRecipe{
		DishName:    doc.DishName,
		Category:    doc.Category,
		Ingredients: doc.Ingredients,
		Recipe:      doc.Recipe,
		Difficulty:  doc.Difficulty,
		CookingTime: doc.CookingTime,
	}
}
