// Package extraction turns cleaned video text into a model prompt and the
// model's raw answer back into a JSON object.
package extraction

import (
	"strings"

	"github.com/jonathan/recipe-crawler/internal/prompts"
)

// DefaultMaxChars is the source text budget used when none is configured.
const DefaultMaxChars = 8000

// Truncation markers appended when text is cut to the budget.
const (
	DescriptionTruncatedMarker = " [이후 설명 생략됨]"
	CaptionsTruncatedMarker    = " [이후 자막 생략됨]"
	SourceTruncatedMarker      = " [전체 텍스트 길이 제한으로 생략됨]"
)

// BuildSourceText combines the cleaned description and captions into the
// text sent to the model. Each field is cut to maxChars runes first; if the
// joined text is still over budget it is cut again with a distinct marker.
// An empty result means there is nothing to extract from.
func BuildSourceText(description, captions string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	description = cutRunes(strings.TrimSpace(description), maxChars, DescriptionTruncatedMarker)
	captions = cutRunes(strings.TrimSpace(captions), maxChars, CaptionsTruncatedMarker)

	source := strings.TrimSpace(description + " " + captions)
	return cutRunes(source, maxChars, SourceTruncatedMarker)
}

// BuildPrompt renders the recipe extraction prompt around sourceText.
func BuildPrompt(sourceText string) string {
	template := prompts.MustGet(prompts.ExtractionFile, prompts.ExtractRecipeKey)
	return prompts.Format(template, map[string]string{
		"SourceText": sourceText,
	})
}

// cutRunes keeps the first n runes of s and appends marker when s was longer.
func cutRunes(s string, n int, marker string) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + marker
}
