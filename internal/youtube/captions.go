package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jonathan/recipe-crawler/internal/types"
)

// CaptionMethod is recorded in document metadata for yt-dlp captions.
const CaptionMethod = "yt-dlp"

// CaptionLanguages are requested in preference order.
var CaptionLanguages = []string{"ko", "ko-orig"}

// runFunc executes a command and returns its combined output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// CaptionFetcher shells out to yt-dlp to download json3 subtitles.
type CaptionFetcher struct {
	binary string
	run    runFunc
	logger *slog.Logger
}

// NewCaptionFetcher creates a fetcher for the given yt-dlp binary.
func NewCaptionFetcher(binary string, logger *slog.Logger) *CaptionFetcher {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "yt-dlp"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CaptionFetcher{binary: binary, run: runCommand, logger: logger}
}

// Fetch downloads Korean captions for a video. yt-dlp writes a manual
// subtitle in preference to the automatic one for the same language. A
// video without Korean captions yields no segments and no error.
func (f *CaptionFetcher) Fetch(ctx context.Context, videoID string) ([]types.CaptionSegment, error) {
	tempDir, err := os.MkdirTemp("", "captions-*")
	if err != nil {
		return nil, &APIError{Op: "captions", VideoID: videoID, Cause: err}
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "json3",
		"--sub-langs", strings.Join(CaptionLanguages, ","),
		"--no-warnings",
		"--quiet",
		"-o", filepath.Join(tempDir, "%(id)s.%(ext)s"),
		"--",
		types.WatchURL(videoID),
	}

	output, err := f.run(ctx, f.binary, args...)
	if err != nil {
		return nil, &APIError{
			Op:      "captions",
			VideoID: videoID,
			Cause:   fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))),
		}
	}

	for _, lang := range CaptionLanguages {
		path := filepath.Join(tempDir, fmt.Sprintf("%s.%s.json3", videoID, lang))
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, &APIError{Op: "captions", VideoID: videoID, Cause: err}
		}

		segments, err := ParseJSON3(data)
		if err != nil {
			return nil, &APIError{Op: "captions", VideoID: videoID, Cause: err}
		}
		f.logger.Info("extracted caption segments", "video_id", videoID, "lang", lang, "segments", len(segments))
		return segments, nil
	}

	f.logger.Info("no Korean captions found", "video_id", videoID)
	return nil, nil
}

type json3File struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	TStartMs    float64        `json:"tStartMs"`
	DDurationMs float64        `json:"dDurationMs"`
	Segs        []json3Segment `json:"segs"`
}

type json3Segment struct {
	UTF8 string `json:"utf8"`
}

// ParseJSON3 converts a YouTube json3 subtitle file into caption segments.
// Events whose joined text is blank are dropped.
func ParseJSON3(data []byte) ([]types.CaptionSegment, error) {
	var file json3File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse json3 subtitles: %w", err)
	}

	segments := make([]types.CaptionSegment, 0, len(file.Events))
	for _, event := range file.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		segments = append(segments, types.CaptionSegment{
			Text:     text,
			Start:    event.TStartMs / 1000,
			Duration: event.DDurationMs / 1000,
		})
	}
	return segments, nil
}
