package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/recipe-crawler/internal/types"
)

func TestItemLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.ItemSucceeded("v1", "김치찜")
	p.ItemSkipped("v2", "Source text empty after cleaning")
	p.ItemFailed("v3", errors.New("connection reset"))

	assert.Equal(t,
		"성공: v1 - 김치찜\n스킵: v2 - Source text empty after cleaning\n오류: v3 - connection reset\n",
		buf.String())
}

func TestStageHeader(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).StageHeader(3, "레시피 추출")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "3단계: 레시피 추출", lines[1])
}

func TestStageSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).StageSummary("추출 완료!", 3, 1, 4)

	output := buf.String()
	assert.Contains(t, output, "추출 완료!")
	assert.Contains(t, output, "성공: 3개, 실패: 1개 (총 4개)")
	assert.Contains(t, output, "성공률: 75.0%")
}

func TestStageSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).StageSummary("추출 완료!", 0, 0, 0)
	assert.Contains(t, buf.String(), "성공률: 0.0%")
}

func TestFullSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).FullSummary(10, 9, 6, 60)

	output := buf.String()
	assert.Contains(t, output, "수집: 10개")
	assert.Contains(t, output, "정제: 9개")
	assert.Contains(t, output, "최종 추출: 6개")
	assert.Contains(t, output, "성공률: 60.0%")
}

func TestPrintRecipe(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{out: &buf, boxed: true}

	start, end := 12.5, 30.0
	p.PrintRecipe("v1", &types.ExtractedRecipe{
		DishName:    "오징어볶음",
		Category:    "오징어볶음",
		Ingredients: []types.Ingredient{{Name: "오징어", Quantity: "1마리"}},
		Recipe: []types.RecipeStep{
			{Step: 1, Instruction: "오징어를 손질하여 썰어둔다", StartTime: &start, EndTime: &end},
		},
		Difficulty:  types.DifficultyNormal,
		CookingTime: types.CookingTimeUnknown,
	})

	output := buf.String()
	assert.Contains(t, output, "EXTRACTED RECIPE")
	assert.Contains(t, output, "오징어 1마리")
	assert.Contains(t, output, "[12.5s-30.0s]")

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestPrintRecipe_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecipe("v1", nil)
	assert.Empty(t, buf.String())
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "가나...", pad("가나다라마바", 5))
}

func TestNewPrinter_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, NewPrinter(&buf).boxed)
}
