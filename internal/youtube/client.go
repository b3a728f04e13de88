// Package youtube discovers cooking videos through the YouTube Data API and
// downloads their Korean captions with yt-dlp.
package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/jonathan/recipe-crawler/internal/retry"
	"github.com/jonathan/recipe-crawler/internal/types"
)

// DefaultCacheSize bounds the video details cache.
const DefaultCacheSize = 1024

// SearchResult is one video returned by a keyword search.
type SearchResult struct {
	VideoID      string
	Title        string
	ChannelTitle string
}

// VideoDetails is the subset of video metadata the collector stores.
type VideoDetails struct {
	VideoID         string
	Title           string
	Description     string
	ThumbnailURL    string
	DurationSeconds int
}

// Options configures a Client.
type Options struct {
	APIKey     string
	RetryCount int
	RetryDelay time.Duration
	CacheSize  int
	YtDlpPath  string
	Logger     *slog.Logger
}

// Client implements search, details and caption lookups for one API key.
type Client struct {
	service  *ytapi.Service
	captions *CaptionFetcher
	details  *lru.Cache[string, *VideoDetails]
	policy   retry.Policy
	logger   *slog.Logger
}

// New creates a Client. Extra client options are passed to the Data API
// service (tests point it at a local endpoint).
func New(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*Client, error) {
	if opts.APIKey == "" && len(clientOpts) == 0 {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}

	serviceOpts := append([]option.ClientOption{option.WithAPIKey(opts.APIKey)}, clientOpts...)
	service, err := ytapi.NewService(ctx, serviceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	cache, err := lru.New[string, *VideoDetails](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create details cache: %w", err)
	}

	return &Client{
		service:  service,
		captions: NewCaptionFetcher(opts.YtDlpPath, opts.Logger),
		details:  cache,
		policy:   retry.Fixed(opts.RetryCount, opts.RetryDelay, IsQuotaExceeded),
		logger:   opts.Logger,
	}, nil
}

// Search lists videos for keyword ordered by view count, Korean first.
func (c *Client) Search(ctx context.Context, keyword string, maxResults int) ([]SearchResult, error) {
	resp, err := retry.DoValue(ctx, c.policy, func(ctx context.Context) (*ytapi.SearchListResponse, error) {
		resp, err := c.service.Search.List([]string{"id", "snippet"}).
			Q(keyword).
			Type("video").
			Order("viewCount").
			MaxResults(int64(maxResults)).
			RelevanceLanguage("ko").
			Context(ctx).
			Do()
		if IsQuotaExceeded(err) {
			c.logger.Warn("quota exceeded, retrying", "op", "search", "keyword", keyword)
		}
		return resp, err
	})
	if err != nil {
		return nil, &APIError{Op: "search", Cause: err}
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		result := SearchResult{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			result.Title = item.Snippet.Title
			result.ChannelTitle = item.Snippet.ChannelTitle
		}
		results = append(results, result)
	}
	return results, nil
}

// FetchDetails returns title, description, thumbnail and duration for a
// video. Results are cached for the life of the client.
func (c *Client) FetchDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	if details, ok := c.details.Get(videoID); ok {
		return details, nil
	}

	resp, err := retry.DoValue(ctx, c.policy, func(ctx context.Context) (*ytapi.VideoListResponse, error) {
		resp, err := c.service.Videos.List([]string{"snippet", "contentDetails"}).
			Id(videoID).
			Context(ctx).
			Do()
		if IsQuotaExceeded(err) {
			c.logger.Warn("quota exceeded, retrying", "op", "videos", "video_id", videoID)
		}
		return resp, err
	})
	if err != nil {
		return nil, &APIError{Op: "videos", VideoID: videoID, Cause: err}
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, &APIError{Op: "videos", VideoID: videoID, Cause: ErrVideoNotFound}
	}

	video := resp.Items[0]
	details := &VideoDetails{
		VideoID:     videoID,
		Title:       video.Snippet.Title,
		Description: video.Snippet.Description,
	}
	if thumbs := video.Snippet.Thumbnails; thumbs != nil && thumbs.High != nil {
		details.ThumbnailURL = thumbs.High.Url
	}
	if video.ContentDetails != nil && video.ContentDetails.Duration != "" {
		seconds, err := ParseISODuration(video.ContentDetails.Duration)
		if err != nil {
			c.logger.Debug("unparseable duration", "video_id", videoID, "error", err)
		}
		details.DurationSeconds = seconds
	}

	c.details.Add(videoID, details)
	return details, nil
}

// FetchCaptions downloads Korean captions through yt-dlp.
func (c *Client) FetchCaptions(ctx context.Context, videoID string) ([]types.CaptionSegment, error) {
	return c.captions.Fetch(ctx, videoID)
}
