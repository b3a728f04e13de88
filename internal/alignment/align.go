// Package alignment attaches caption timestamps to recipe steps.
package alignment

import (
	"log/slog"
	"math"
	"sort"

	"github.com/jonathan/recipe-crawler/internal/types"
)

// TailPadding is added to a step's start when there is no following segment
// to end it.
const TailPadding = 30.0

// Align maps step i of N onto the caption timeline by proportional index
// (floor(i*M/N) of M segments). It is a linear heuristic, not content
// matching. When either input is empty the steps are returned unchanged.
// The returned steps are copies; neither input slice is modified.
func Align(steps []types.RecipeStep, segments []types.CaptionSegment) (aligned []types.RecipeStep) {
	if len(steps) == 0 || len(segments) == 0 {
		return steps
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("caption alignment failed, keeping steps without timing", "panic", r)
			aligned = steps
		}
	}()

	sorted := make([]types.CaptionSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	totalSteps := len(steps)
	totalSegments := len(sorted)

	aligned = make([]types.RecipeStep, totalSteps)
	for i, step := range steps {
		aligned[i] = step
		aligned[i].StartTime = nil
		aligned[i].EndTime = nil

		segIdx := i * totalSegments / totalSteps
		if segIdx >= totalSegments {
			continue
		}
		start := sorted[segIdx].Start

		var end float64
		nextIdx := (i + 1) * totalSegments / totalSteps
		switch {
		case i == totalSteps-1:
			end = sorted[totalSegments-1].Start + TailPadding
		case nextIdx < totalSegments:
			end = sorted[nextIdx].Start
		default:
			end = start + TailPadding
		}

		startTime := round1(start)
		endTime := round1(end)
		aligned[i].StartTime = &startTime
		aligned[i].EndTime = &endTime
	}
	return aligned
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
