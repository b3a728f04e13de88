// Package pipeline drives the collect, clean and extract stages over the
// video store.
package pipeline

import (
	"context"

	"github.com/jonathan/recipe-crawler/internal/types"
	"github.com/jonathan/recipe-crawler/internal/youtube"
)

// ExtractionStore is the persistence the extract stage needs.
type ExtractionStore interface {
	ListPendingForExtraction(ctx context.Context) ([]*types.VideoDocument, error)
	UpsertVideo(ctx context.Context, doc *types.VideoDocument) error
	MarkSkipped(ctx context.Context, videoID, reason, url string) error
	DeleteVideo(ctx context.Context, videoID string) (bool, error)
}

// CleanStore is the persistence the clean stage needs.
type CleanStore interface {
	ListPendingForCleaning(ctx context.Context) ([]*types.VideoDocument, error)
	UpsertVideo(ctx context.Context, doc *types.VideoDocument) error
}

// CollectStore is the persistence the collect stage needs.
type CollectStore interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
	IsSkipped(ctx context.Context, videoID string) (bool, error)
	UpsertVideo(ctx context.Context, doc *types.VideoDocument) error
}

// Store is everything a full run touches. *db.DB satisfies it.
type Store interface {
	ExtractionStore
	CleanStore
	CollectStore
}

// VideoSource discovers videos and downloads their text. *youtube.Client
// satisfies it.
type VideoSource interface {
	Search(ctx context.Context, keyword string, maxResults int) ([]youtube.SearchResult, error)
	FetchDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error)
	FetchCaptions(ctx context.Context, videoID string) ([]types.CaptionSegment, error)
}
