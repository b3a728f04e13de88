package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/recipe-crawler/internal/types"
)

func makeSteps(n int) []types.RecipeStep {
	steps := make([]types.RecipeStep, n)
	for i := range steps {
		steps[i] = types.RecipeStep{Step: i + 1, Instruction: "재료를 넣고 잘 섞어줍니다"}
	}
	return steps
}

func makeSegments(starts ...float64) []types.CaptionSegment {
	segments := make([]types.CaptionSegment, len(starts))
	for i, s := range starts {
		segments[i] = types.CaptionSegment{Text: "자막", Start: s, Duration: 2}
	}
	return segments
}

func TestAlign_EmptyInputs(t *testing.T) {
	steps := makeSteps(2)

	got := Align(steps, nil)
	assert.Equal(t, steps, got)
	for _, s := range got {
		assert.False(t, s.HasTiming())
	}

	assert.Empty(t, Align(nil, makeSegments(1, 2, 3)))
	assert.Empty(t, Align([]types.RecipeStep{}, makeSegments(1)))
}

func TestAlign_ThreeStepsNineSegments(t *testing.T) {
	segments := makeSegments(0, 10, 20, 30, 40, 50, 60, 70, 80)
	got := Align(makeSteps(3), segments)
	require.Len(t, got, 3)

	// Step i maps to segment floor(i*9/3): 0, 3, 6.
	assert.Equal(t, 0.0, *got[0].StartTime)
	assert.Equal(t, 30.0, *got[0].EndTime)
	assert.Equal(t, 30.0, *got[1].StartTime)
	assert.Equal(t, 60.0, *got[1].EndTime)
	assert.Equal(t, 60.0, *got[2].StartTime)
	assert.Equal(t, 110.0, *got[2].EndTime)
}

func TestAlign_SortsSegmentsWithoutTouchingInput(t *testing.T) {
	segments := makeSegments(20.04, 0.06, 10.17)
	original := append([]types.CaptionSegment(nil), segments...)

	got := Align(makeSteps(3), segments)

	assert.Equal(t, original, segments)
	assert.Equal(t, 0.1, *got[0].StartTime)
	assert.Equal(t, 10.2, *got[0].EndTime)
	assert.Equal(t, 10.2, *got[1].StartTime)
	assert.Equal(t, 20.0, *got[1].EndTime)
	assert.Equal(t, 20.0, *got[2].StartTime)
	assert.Equal(t, 50.0, *got[2].EndTime)
}

func TestAlign_MoreStepsThanSegments(t *testing.T) {
	got := Align(makeSteps(4), makeSegments(5, 15))
	require.Len(t, got, 4)

	// floor(i*2/4): 0, 0, 1, 1
	assert.Equal(t, 5.0, *got[0].StartTime)
	assert.Equal(t, 5.0, *got[0].EndTime)
	assert.Equal(t, 5.0, *got[1].StartTime)
	assert.Equal(t, 15.0, *got[1].EndTime)
	assert.Equal(t, 15.0, *got[2].StartTime)
	assert.Equal(t, 15.0, *got[2].EndTime)
	assert.Equal(t, 15.0, *got[3].StartTime)
	assert.Equal(t, 45.0, *got[3].EndTime)
}

func TestAlign_SingleStep(t *testing.T) {
	got := Align(makeSteps(1), makeSegments(3, 9, 12.34))
	require.Len(t, got, 1)
	assert.Equal(t, 3.0, *got[0].StartTime)
	assert.Equal(t, 42.3, *got[0].EndTime)
}

func TestAlign_DoesNotMutateSteps(t *testing.T) {
	steps := makeSteps(2)
	got := Align(steps, makeSegments(1, 2))

	assert.True(t, got[0].HasTiming())
	assert.False(t, steps[0].HasTiming())
	assert.Equal(t, steps[0].Instruction, got[0].Instruction)
	assert.Equal(t, steps[1].Step, got[1].Step)
}
