// Package observability provides the human-readable progress and summary
// output printed by the CLI.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-isatty"

	"github.com/jonathan/recipe-crawler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// ruleWidth is the width of the stage separator line
	ruleWidth = 50
)

// Printer writes progress lines and summaries. It is safe for concurrent
// use by the per-item goroutines of a stage.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	boxed bool
}

// NewPrinter creates a Printer. Summaries are drawn as boxes only when out
// is a terminal; redirected output gets plain lines.
func NewPrinter(out io.Writer) *Printer {
	boxed := false
	if f, ok := out.(*os.File); ok {
		boxed = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{out: out, boxed: boxed}
}

// NewPlainPrinter creates a Printer that never draws boxes.
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// StageHeader prints the banner that opens a pipeline stage.
func (p *Printer) StageHeader(number int, name string) {
	rule := strings.Repeat("=", ruleWidth)
	p.printf("%s\n%d단계: %s\n%s\n", rule, number, name, rule)
}

// Line prints a free-form progress line.
func (p *Printer) Line(format string, args ...any) {
	p.printf(format+"\n", args...)
}

// ItemSucceeded reports one extracted recipe.
func (p *Printer) ItemSucceeded(videoID, dishName string) {
	p.printf("성공: %s - %s\n", videoID, dishName)
}

// ItemSkipped reports one rejected video.
func (p *Printer) ItemSkipped(videoID, reason string) {
	p.printf("스킵: %s - %s\n", videoID, reason)
}

// ItemFailed reports an item error that did not produce a skip record.
func (p *Printer) ItemFailed(videoID string, err error) {
	p.printf("오류: %s - %v\n", videoID, err)
}

// StageSummary prints the success/failure counts of a stage.
func (p *Printer) StageSummary(title string, succeeded, failed, total int) {
	rate := 0.0
	if total > 0 {
		rate = float64(succeeded) / float64(total) * 100
	}
	p.block(title, fmt.Sprintf("성공: %d개, 실패: %d개 (총 %d개)\n성공률: %.1f%%", succeeded, failed, total, rate))
}

// FullSummary prints the per-stage counts of a full run.
func (p *Printer) FullSummary(collected, cleaned, extracted int, successRate float64) {
	content := fmt.Sprintf("수집: %d개\n정제: %d개\n최종 추출: %d개\n성공률: %.1f%%",
		collected, cleaned, extracted, successRate)
	p.block("파이프라인 완료!", content)
}

// PrintRecipe outputs a human-readable summary of an extracted recipe.
func (p *Printer) PrintRecipe(videoID string, recipe *types.ExtractedRecipe) {
	if recipe == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Video:     %s\n", videoID))
	sb.WriteString(fmt.Sprintf("Dish:      %s\n", recipe.DishName))
	sb.WriteString(fmt.Sprintf("Category:  %s\n", recipe.Category))
	sb.WriteString(fmt.Sprintf("Level:     %s / %s\n", recipe.Difficulty, recipe.CookingTime))
	sb.WriteString("\n")

	if len(recipe.Ingredients) > 0 {
		sb.WriteString("Ingredients:\n")
		count := min(len(recipe.Ingredients), maxItemsToShow)
		for i := 0; i < count; i++ {
			ing := recipe.Ingredients[i]
			sb.WriteString(fmt.Sprintf("  • %s %s\n", ing.Name, ing.Quantity))
		}
		if len(recipe.Ingredients) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(recipe.Ingredients)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(recipe.Recipe) > 0 {
		sb.WriteString("Steps:\n")
		count := min(len(recipe.Recipe), 3)
		for i := 0; i < count; i++ {
			step := recipe.Recipe[i]
			line := fmt.Sprintf("  %d. %s", step.Step, step.Instruction)
			if step.HasTiming() {
				line += fmt.Sprintf(" [%.1fs-%.1fs]", *step.StartTime, *step.EndTime)
			}
			sb.WriteString(line + "\n")
		}
		if len(recipe.Recipe) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(recipe.Recipe)-3))
		}
	}

	p.block("EXTRACTED RECIPE", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) block(title, content string) {
	if p.boxed {
		p.printBox(title, content)
		return
	}
	p.printf("%s\n%s\n%s\n", strings.Repeat("=", ruleWidth), title, content)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}
