package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/recipe-crawler/internal/config"
	"github.com/jonathan/recipe-crawler/internal/db"
	"github.com/jonathan/recipe-crawler/internal/llm"
	"github.com/jonathan/recipe-crawler/internal/logging"
	"github.com/jonathan/recipe-crawler/internal/observability"
	"github.com/jonathan/recipe-crawler/internal/pipeline"
	"github.com/jonathan/recipe-crawler/internal/youtube"
)

// app holds the resources shared by one command invocation.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	printer *observability.Printer
	store   *db.DB

	closers []io.Closer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadSettings(cmd, globals)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := logging.NewWithFile(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		LogDir: cfg.LogDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		printer: observability.NewPrinter(os.Stdout),
		closers: []io.Closer{logFile},
	}

	databaseURL := cfg.ResolveDatabaseURL()
	if databaseURL == "" {
		a.Close()
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	ctx := cmd.Context()
	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	if err := store.EnsureSchema(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// Close releases the store, clients and log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

func (a *app) collector(ctx context.Context) (*pipeline.Collector, error) {
	if a.cfg.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY environment variable or --youtube-key flag is required")
	}

	source, err := youtube.New(ctx, youtube.Options{
		APIKey:     a.cfg.YouTubeAPIKey,
		RetryCount: a.cfg.RetryCount,
		RetryDelay: a.cfg.RetryDelay(),
		YtDlpPath:  a.cfg.YtDlpPath,
		Logger:     a.logger,
	})
	if err != nil {
		return nil, err
	}

	return pipeline.NewCollector(a.store, source, a.logger, pipeline.CollectOptions{
		MaxResults:  a.cfg.MaxResults,
		Concurrency: a.cfg.Concurrency,
		Timeout:     a.cfg.Timeout(),
	}), nil
}

func (a *app) cleaner() *pipeline.Cleaner {
	return pipeline.NewCleaner(a.store, a.logger)
}

func (a *app) extractor(ctx context.Context) (*pipeline.Extractor, error) {
	if a.cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	llmConfig := llm.DefaultConfig().WithRequestsPerSecond(a.cfg.RequestsPerSecond)
	if a.cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, a.cfg.Model)
	}
	client, err := llm.NewClient(ctx, llmConfig, a.cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.closers = append(a.closers, client)

	return pipeline.NewExtractor(a.store, client, a.printer, a.logger, pipeline.ExtractOptions{
		Concurrency:   a.cfg.Concurrency,
		Timeout:       a.cfg.Timeout(),
		MaxInputChars: a.cfg.MaxInputChars,
		RetryCount:    a.cfg.RetryCount,
		RetryDelay:    a.cfg.RetryDelay(),
		Tier:          llm.TierStandard,
		Verbose:       a.cfg.Verbose,
	}), nil
}

// runner builds a Runner with only the stages that were requested.
func (a *app) runner(ctx context.Context, collect, clean, extract bool) (*pipeline.Runner, error) {
	r := &pipeline.Runner{Printer: a.printer, Logger: a.logger}
	if collect {
		c, err := a.collector(ctx)
		if err != nil {
			return nil, err
		}
		r.Collector = c
	}
	if clean {
		r.Cleaner = a.cleaner()
	}
	if extract {
		e, err := a.extractor(ctx)
		if err != nil {
			return nil, err
		}
		r.Extractor = e
	}
	return r, nil
}
