package db

import (
	"context"
	"fmt"

	"github.com/jonathan/recipe-crawler/internal/types"
)

// DefaultSkippedLimit is used by ListSkipped when limit is not positive.
const DefaultSkippedLimit = 50

// MarkSkipped records that a video was rejected. The first reason recorded
// for an id wins; later calls are no-ops.
func (db *DB) MarkSkipped(ctx context.Context, videoID, reason, url string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO skipped_videos (video_id, reason, url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (video_id) DO NOTHING`,
		videoID, reason, url,
	)
	if err != nil {
		return &PersistError{Op: "mark skipped", VideoID: videoID, Cause: err}
	}
	return nil
}

// IsSkipped reports whether videoID has a skip record.
func (db *DB) IsSkipped(ctx context.Context, videoID string) (bool, error) {
	var skipped bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM skipped_videos WHERE video_id = $1)`, videoID,
	).Scan(&skipped)
	if err != nil {
		return false, fmt.Errorf("failed to check skip record %s: %w", videoID, err)
	}
	return skipped, nil
}

// ListSkipped returns the most recent skip records first.
func (db *DB) ListSkipped(ctx context.Context, limit int) ([]types.SkipRecord, error) {
	if limit <= 0 {
		limit = DefaultSkippedLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT video_id, COALESCE(reason, ''), COALESCE(url, ''), skipped_at
		 FROM skipped_videos
		 ORDER BY skipped_at DESC, video_id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skipped videos: %w", err)
	}
	defer rows.Close()

	var records []types.SkipRecord
	for rows.Next() {
		var r types.SkipRecord
		if err := rows.Scan(&r.VideoID, &r.Reason, &r.URL, &r.SkippedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skipped video: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skipped videos: %w", err)
	}
	return records, nil
}
