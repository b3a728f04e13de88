package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/recipe-crawler/internal/cleaning"
	"github.com/jonathan/recipe-crawler/internal/types"
	"github.com/jonathan/recipe-crawler/internal/youtube"
)

// DefaultMaxResults is the search page size used by the CLI.
const DefaultMaxResults = 20

// CollectOptions configures a Collector.
type CollectOptions struct {
	MaxResults  int
	Concurrency int
	// Timeout bounds the details lookup; caption downloads get twice as long.
	Timeout time.Duration
}

// CollectSummary counts what happened to each search result.
type CollectSummary struct {
	Found     int
	Collected int
	Existing  int // already stored or previously skipped
	Failed    int
}

type collectResult int

const (
	collectFailed collectResult = iota
	collectExisting
	collectStored
)

// Collector runs the collect stage for one keyword.
type Collector struct {
	store  CollectStore
	source VideoSource
	logger *slog.Logger
	opts   CollectOptions
	now    func() time.Time
}

// NewCollector creates a Collector. Zero option fields take their defaults.
func NewCollector(store CollectStore, source VideoSource, logger *slog.Logger, opts CollectOptions) *Collector {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Collector{
		store:  store,
		source: source,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// Run searches for keyword and stores every new video found.
func (c *Collector) Run(ctx context.Context, keyword string) (CollectSummary, error) {
	c.logger.Info("collection started", "keyword", keyword)

	results, err := c.source.Search(ctx, keyword, c.opts.MaxResults)
	if err != nil {
		return CollectSummary{}, fmt.Errorf("search for %q failed: %w", keyword, err)
	}

	summary := CollectSummary{Found: len(results)}
	if len(results) == 0 {
		c.logger.Info("no videos found to process", "keyword", keyword)
		return summary, nil
	}

	outcomes := make([]collectResult, len(results))
	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)
	for i, result := range results {
		i, result := i, result
		g.Go(func() error {
			outcomes[i] = c.collect(ctx, result.VideoID)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		switch o {
		case collectStored:
			summary.Collected++
		case collectExisting:
			summary.Existing++
		default:
			summary.Failed++
		}
	}

	c.logger.Info("collection finished",
		"keyword", keyword,
		"collected", summary.Collected,
		"found", summary.Found)
	return summary, nil
}

func (c *Collector) collect(ctx context.Context, videoID string) collectResult {
	logger := c.logger.With("video_id", videoID)

	exists, err := c.store.VideoExists(ctx, videoID)
	if err != nil {
		logger.Error("failed to check stored video", "error", err)
		return collectFailed
	}
	if exists {
		logger.Info("video already exists, skipping")
		return collectExisting
	}
	skipped, err := c.store.IsSkipped(ctx, videoID)
	if err != nil {
		logger.Error("failed to check skipped videos", "error", err)
		return collectFailed
	}
	if skipped {
		logger.Info("video was skipped before, ignoring")
		return collectExisting
	}

	detailsCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	details, err := c.source.FetchDetails(detailsCtx, videoID)
	cancel()
	if err != nil || details == nil {
		logger.Warn("failed to get video details, skipping", "error", err)
		return collectFailed
	}

	captionsCtx, cancel := context.WithTimeout(ctx, 2*c.opts.Timeout)
	segments, err := c.source.FetchCaptions(captionsCtx, videoID)
	cancel()
	if err != nil {
		logger.Warn("caption download failed, collecting without captions", "error", err)
		segments = nil
	}
	if len(segments) == 0 {
		logger.Warn("no captions found")
	}

	doc := newVideoDocument(details, segments, c.now())
	if err := c.store.UpsertVideo(ctx, doc); err != nil {
		logger.Error("failed to store video", "error", err)
		return collectFailed
	}

	logger.Info("video collected", "caption_segments", len(segments))
	return collectStored
}

func newVideoDocument(details *youtube.VideoDetails, segments []types.CaptionSegment, at time.Time) *types.VideoDocument {
	collectedAt := at.UTC()
	return &types.VideoDocument{
		VideoID:          details.VideoID,
		Title:            details.Title,
		URL:              types.WatchURL(details.VideoID),
		ImageURL:         details.ThumbnailURL,
		RawDescription:   types.StringPtr(details.Description),
		RawCaptions:      types.StringPtr(cleaning.JoinCaptions(segments)),
		CaptionsSegments: segments,
		Metadata: types.Metadata{
			CollectedAt:          &collectedAt,
			CaptionMethod:        youtube.CaptionMethod,
			CaptionSegmentsCount: len(segments),
		},
	}
}
