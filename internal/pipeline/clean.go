package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/recipe-crawler/internal/cleaning"
	"github.com/jonathan/recipe-crawler/internal/types"
)

// CleanSummary counts the documents handled by one clean run.
type CleanSummary struct {
	Total   int
	Cleaned int
	Failed  int
}

// Cleaner runs the clean stage. The work is CPU-bound string processing,
// so documents are handled one at a time.
type Cleaner struct {
	store  CleanStore
	logger *slog.Logger
	now    func() time.Time
}

// NewCleaner creates a Cleaner.
func NewCleaner(store CleanStore, logger *slog.Logger) *Cleaner {
	return &Cleaner{store: store, logger: logger, now: time.Now}
}

// Run cleans every document pending cleaning.
func (c *Cleaner) Run(ctx context.Context) (CleanSummary, error) {
	docs, err := c.store.ListPendingForCleaning(ctx)
	if err != nil {
		return CleanSummary{}, fmt.Errorf("failed to list videos pending cleaning: %w", err)
	}

	summary := CleanSummary{Total: len(docs)}
	c.logger.Info("cleaning started", "pending", len(docs))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		CleanDocument(doc, c.now())
		if err := c.store.UpsertVideo(ctx, doc); err != nil {
			summary.Failed++
			c.logger.Error("failed to save cleaned video", "video_id", doc.VideoID, "error", err)
			continue
		}

		summary.Cleaned++
		c.logger.Info("video cleaned",
			"video_id", doc.VideoID,
			"description_quality", doc.Metadata.TextQuality.Description.QualityScore,
			"captions_quality", doc.Metadata.TextQuality.Captions.QualityScore)
	}

	c.logger.Info("cleaning finished", "cleaned", summary.Cleaned, "total", summary.Total)
	return summary, nil
}

// CleanDocument fills the clean text fields and quality metadata of doc.
// Raw fields are left in place until extraction finalizes the document.
func CleanDocument(doc *types.VideoDocument, at time.Time) {
	var rawDescription, rawCaptions string
	if doc.RawDescription != nil {
		rawDescription = *doc.RawDescription
	}
	if doc.RawCaptions != nil {
		rawCaptions = *doc.RawCaptions
	}
	if rawCaptions == "" && len(doc.CaptionsSegments) > 0 {
		rawCaptions = cleaning.JoinCaptions(doc.CaptionsSegments)
	}

	cleanDescription := cleaning.CleanDescription(rawDescription)
	cleanCaptions := cleaning.CleanCaptions(rawCaptions)

	doc.CleanDescription = types.StringPtr(cleanDescription)
	doc.CleanCaptions = types.StringPtr(cleanCaptions)

	cleanedAt := at.UTC()
	doc.Metadata.CleanedAt = &cleanedAt
	doc.Metadata.TextQuality = cleaning.Analyze(cleanDescription, cleanCaptions)
}
