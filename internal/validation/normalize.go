package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var parentheticalRegex = regexp.MustCompile(`\s*\(.*\)`)

// NormalizeCategory removes all whitespace so "오징어 볶음" and "오징어볶음"
// are the same category.
func NormalizeCategory(category string) string {
	return removeSpaces(category)
}

// NormalizeIngredientName strips parenthetical notes and all whitespace,
// leaving the ingredient's core name: "오징어 (손질된 것)" becomes "오징어".
func NormalizeIngredientName(name string) string {
	return removeSpaces(parentheticalRegex.ReplaceAllString(name, ""))
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
