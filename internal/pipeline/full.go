package pipeline

import (
	"context"
	"log/slog"

	"github.com/jonathan/recipe-crawler/internal/observability"
)

// Stage banners, numbered in run order.
const (
	stageCollect = "데이터 수집"
	stageClean   = "텍스트 정제"
	stageExtract = "레시피 추출"
)

// FullSummary is the per-stage count of a full run.
type FullSummary struct {
	Keyword   string
	Collected int
	Cleaned   int
	Extracted int
	// Stopped is set when a stage produced nothing and later stages did not run.
	Stopped bool
}

// SuccessRate is Extracted as a percentage of Collected.
func (s FullSummary) SuccessRate() float64 {
	if s.Collected == 0 {
		return 0
	}
	return float64(s.Extracted) / float64(s.Collected) * 100
}

// Runner wires the three stages together and prints their banners.
type Runner struct {
	Collector *Collector
	Cleaner   *Cleaner
	Extractor *Extractor
	Printer   *observability.Printer
	Logger    *slog.Logger
}

// RunCollect runs the collect stage on its own.
func (r *Runner) RunCollect(ctx context.Context, keyword string) (CollectSummary, error) {
	r.Printer.StageHeader(1, stageCollect)
	summary, err := r.Collector.Run(ctx, keyword)
	if err != nil {
		return summary, err
	}
	r.Printer.Line("수집 완료: %d개 비디오", summary.Collected)
	return summary, nil
}

// RunClean runs the clean stage on its own.
func (r *Runner) RunClean(ctx context.Context) (CleanSummary, error) {
	r.Printer.StageHeader(2, stageClean)
	summary, err := r.Cleaner.Run(ctx)
	if err != nil {
		return summary, err
	}
	r.Printer.Line("정제 완료: %d개 비디오", summary.Cleaned)
	return summary, nil
}

// RunExtract runs the extract stage on its own.
func (r *Runner) RunExtract(ctx context.Context) (Summary, error) {
	r.Printer.StageHeader(3, stageExtract)
	summary, err := r.Extractor.Run(ctx)
	if err != nil {
		return summary, err
	}
	r.Printer.Line("추출 완료: %d개 비디오", summary.Succeeded)
	return summary, nil
}

// RunFull runs collect, clean and extract for keyword, stopping early when
// collect or clean produce nothing.
func (r *Runner) RunFull(ctx context.Context, keyword string) (FullSummary, error) {
	summary := FullSummary{Keyword: keyword}
	r.Printer.Line("YouTube 요리 레시피 크롤링 파이프라인 시작")
	r.Printer.Line("키워드: %s", keyword)

	collected, err := r.RunCollect(ctx, keyword)
	if err != nil {
		return summary, err
	}
	summary.Collected = collected.Collected
	if summary.Collected == 0 {
		r.Printer.Line("수집된 데이터가 없어서 파이프라인을 중단합니다.")
		summary.Stopped = true
		return summary, nil
	}

	cleaned, err := r.RunClean(ctx)
	if err != nil {
		return summary, err
	}
	summary.Cleaned = cleaned.Cleaned
	if summary.Cleaned == 0 {
		r.Printer.Line("정제할 데이터가 없습니다.")
		summary.Stopped = true
		return summary, nil
	}

	extracted, err := r.RunExtract(ctx)
	if err != nil {
		return summary, err
	}
	summary.Extracted = extracted.Succeeded

	r.Printer.FullSummary(summary.Collected, summary.Cleaned, summary.Extracted, summary.SuccessRate())
	r.Logger.Info("full pipeline completed",
		"keyword", keyword,
		"collected", summary.Collected,
		"cleaned", summary.Cleaned,
		"extracted", summary.Extracted)
	return summary, nil
}
