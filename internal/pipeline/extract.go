package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/recipe-crawler/internal/alignment"
	"github.com/jonathan/recipe-crawler/internal/extraction"
	"github.com/jonathan/recipe-crawler/internal/llm"
	"github.com/jonathan/recipe-crawler/internal/observability"
	"github.com/jonathan/recipe-crawler/internal/retry"
	"github.com/jonathan/recipe-crawler/internal/types"
	"github.com/jonathan/recipe-crawler/internal/validation"
)

const (
	// DefaultConcurrency bounds in-flight items per stage.
	DefaultConcurrency = 5
	// DefaultTimeout is the per-item deadline.
	DefaultTimeout = 30 * time.Second

	reasonSourceEmpty      = "Source text empty after cleaning"
	reasonProcessingPrefix = "Processing error: "
)

// ExtractOptions configures an Extractor.
type ExtractOptions struct {
	Concurrency   int
	Timeout       time.Duration
	MaxInputChars int
	RetryCount    int
	RetryDelay    time.Duration
	Tier          llm.ModelTier
	Verbose       bool // print every accepted recipe
}

// DefaultExtractOptions returns the defaults used by the CLI.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Concurrency:   DefaultConcurrency,
		Timeout:       DefaultTimeout,
		MaxInputChars: extraction.DefaultMaxChars,
		RetryCount:    3,
		RetryDelay:    2 * time.Second,
		Tier:          llm.TierStandard,
	}
}

// Extractor runs the extract stage: prompt, model call, parse, validate,
// align, then persist or skip.
type Extractor struct {
	store     ExtractionStore
	client    llm.Client
	validator *validation.Validator
	printer   *observability.Printer
	logger    *slog.Logger
	opts      ExtractOptions
	policy    retry.Policy
	now       func() time.Time
	newRunID  func() string
}

// NewExtractor creates an Extractor. Zero option fields take their defaults.
func NewExtractor(store ExtractionStore, client llm.Client, printer *observability.Printer, logger *slog.Logger, opts ExtractOptions) *Extractor {
	defaults := DefaultExtractOptions()
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaults.Concurrency
	}
	if opts.MaxInputChars <= 0 {
		opts.MaxInputChars = defaults.MaxInputChars
	}
	if opts.RetryCount <= 0 {
		opts.RetryCount = 1
	}
	if opts.Tier == "" {
		opts.Tier = defaults.Tier
	}

	return &Extractor{
		store:     store,
		client:    client,
		validator: validation.New(),
		printer:   printer,
		logger:    logger,
		opts:      opts,
		policy:    retry.Fixed(opts.RetryCount, opts.RetryDelay, llm.IsTemporary),
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// Run processes every video pending extraction. Item failures are recorded
// in the summary and never returned; the error is only for a failed listing.
func (e *Extractor) Run(ctx context.Context) (Summary, error) {
	docs, err := e.store.ListPendingForExtraction(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list videos pending extraction: %w", err)
	}

	runID := e.newRunID()
	e.printer.Line("LLM 추출 시작 - 대상: %d개 비디오", len(docs))
	e.logger.Info("extraction started", "run_id", runID, "pending", len(docs))

	// Each goroutine owns one slot; no shared counters.
	outcomes := make([]Outcome, len(docs))
	var g errgroup.Group
	g.SetLimit(e.opts.Concurrency)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			outcomes[i] = e.process(ctx, runID, doc)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summarize(outcomes)
	summary.RunID = runID

	e.printer.StageSummary("추출 완료!", summary.Succeeded, summary.Failed, summary.Total)
	e.logger.Info("extraction finished",
		"run_id", runID,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"total", summary.Total)
	return summary, nil
}

// process takes one document through the state machine. It never panics.
func (e *Extractor) process(ctx context.Context, runID string, doc *types.VideoDocument) (out Outcome) {
	item := doc.WorkItem()
	out = Outcome{VideoID: item.VideoID, URL: item.URL, State: StatePending}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			out = e.reject(ctx, out, StateExtractFailed, reasonProcessingPrefix+err.Error(), err)
		}
	}()

	itemCtx := ctx
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	sourceText := extraction.BuildSourceText(item.CleanDescription, item.CleanCaptions, e.opts.MaxInputChars)
	if strings.TrimSpace(sourceText) == "" {
		return e.reject(ctx, out, StateSourceEmpty, reasonSourceEmpty, nil)
	}
	prompt := extraction.BuildPrompt(sourceText)

	raw, err := retry.DoValue(itemCtx, e.policy, func(ctx context.Context) (string, error) {
		return e.client.GenerateContent(ctx, prompt, e.opts.Tier)
	})
	if err != nil {
		return e.reject(ctx, out, StateExtractFailed, reasonProcessingPrefix+err.Error(), err)
	}

	obj, err := extraction.ParseResponse(raw)
	if err != nil {
		var parseErr *extraction.ParseError
		if errors.As(err, &parseErr) {
			return e.reject(ctx, out, StateExtractFailed, parseErr.Error(), err)
		}
		return e.reject(ctx, out, StateExtractFailed, reasonProcessingPrefix+err.Error(), err)
	}

	result := e.validator.Validate(obj)
	if !result.Accepted {
		err := result.Err()
		return e.reject(ctx, out, StateValidationFailed, err.Error(), err)
	}

	recipe := result.Recipe
	recipe.Recipe = alignment.Align(recipe.Recipe, item.CaptionSegments)
	out.State = StateAligned
	out.DishName = recipe.DishName

	doc.Finalize(recipe, runID, e.now())
	if err := e.store.UpsertVideo(itemCtx, doc); err != nil {
		// Left pending so the next run picks it up again.
		out.State = StatePersistFailed
		out.Err = err
		e.logger.Error("failed to save extracted recipe", "video_id", out.VideoID, "error", err)
		e.printer.ItemFailed(out.VideoID, err)
		return out
	}

	out.State = StateSucceeded
	e.logger.Info("recipe extracted", "video_id", out.VideoID, "dish_name", recipe.DishName)
	e.printer.ItemSucceeded(out.VideoID, recipe.DishName)
	if e.opts.Verbose {
		e.printer.PrintRecipe(out.VideoID, recipe)
	}
	return out
}

// reject records a terminal failure: a skip record, then deletion of the
// source document. Store errors here are logged only.
func (e *Extractor) reject(ctx context.Context, out Outcome, state State, reason string, cause error) Outcome {
	out.State = state
	out.Reason = reason
	out.Err = cause

	e.logger.Warn("video skipped",
		"video_id", out.VideoID,
		"state", state.String(),
		"reason", reason,
		"retries_exhausted", retry.IsExhausted(cause))
	if state == StateExtractFailed && cause != nil {
		e.printer.ItemFailed(out.VideoID, cause)
	} else {
		e.printer.ItemSkipped(out.VideoID, reason)
	}

	if err := e.store.MarkSkipped(ctx, out.VideoID, reason, out.URL); err != nil {
		e.logger.Error("failed to record skipped video", "video_id", out.VideoID, "error", err)
	}
	if _, err := e.store.DeleteVideo(ctx, out.VideoID); err != nil {
		e.logger.Error("failed to delete skipped video", "video_id", out.VideoID, "error", err)
	}
	return out
}
