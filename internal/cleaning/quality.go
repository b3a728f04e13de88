package cleaning

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/recipe-crawler/internal/types"
)

// Preferred source names recorded in text quality metadata.
const (
	SourceDescription = "description"
	SourceCaptions    = "captions"
)

var cookingKeywords = []string{
	"레시피", "요리", "재료", "만들기", "조리", "음식", "식재료",
	"그램", "스푼", "컵", "개", "마리", "송이", "뿌리", "줄기",
	"썰기", "볶기", "끓이기", "굽기", "찌기", "튀기기", "무치기",
	"양념", "소금", "후추", "마늘", "양파", "당근", "감자",
}

// AnalyzeQuality scores how likely text is to contain a usable recipe, 0-100.
func AnalyzeQuality(text string) types.QualityReport {
	if text == "" {
		return types.QualityReport{}
	}

	report := types.QualityReport{
		Length:    utf8.RuneCountInString(text),
		WordCount: len(strings.Fields(text)),
	}
	for _, keyword := range cookingKeywords {
		if strings.Contains(text, keyword) {
			report.HasCookingKeywords = true
			break
		}
	}

	if report.HasCookingKeywords {
		report.QualityScore += 40
	}
	if report.WordCount > 50 {
		report.QualityScore += 30
	}
	if report.WordCount > 200 {
		report.QualityScore += 20
	}
	if report.Length > 500 {
		report.QualityScore += 10
	}
	return report
}

// PreferredSource picks the higher scoring text; ties go to captions.
func PreferredSource(description, captions types.QualityReport) string {
	if description.QualityScore > captions.QualityScore {
		return SourceDescription
	}
	return SourceCaptions
}

// Analyze builds the text quality metadata for a cleaned pair.
func Analyze(cleanDescription, cleanCaptions string) *types.TextQuality {
	description := AnalyzeQuality(cleanDescription)
	captions := AnalyzeQuality(cleanCaptions)
	return &types.TextQuality{
		Description:     description,
		Captions:        captions,
		PreferredSource: PreferredSource(description, captions),
	}
}
