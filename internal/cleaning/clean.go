// Package cleaning denoises raw video descriptions and captions before they
// are sent to the extraction model.
package cleaning

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/recipe-crawler/internal/types"
)

// MinSentenceLength is the rune length below which caption sentences are
// merged into the next one.
const MinSentenceLength = 10

var (
	linkRegex        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	hashtagRegex     = regexp.MustCompile(`#\S+`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	bracketRegex     = regexp.MustCompile(`\[.*?\]`)
	parenRegex       = regexp.MustCompile(`\(.*?\)`)
	musicSpanRegex   = regexp.MustCompile(`♪.*?♪`)
	musicNoteRegex   = regexp.MustCompile(`[♪♫♬♩]`)
	laughterRegex    = regexp.MustCompile(`[하호히흐][하호히흐]+`)
	groanRegex       = regexp.MustCompile(`으(?:잉|악)`)
	exclamationRegex = regexp.MustCompile(`[오아우으][오아우으]+`)
	symbolRegex      = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?:;-]`)
	sentenceEndRegex = regexp.MustCompile(`[.!?]+`)
)

// CleanDescription strips links and hashtags and collapses whitespace.
func CleanDescription(raw string) string {
	if raw == "" {
		return ""
	}
	return collapseSpaces(removeLinksAndHashtags(raw))
}

// CleanCaptions removes caption noise (sound cues, music notes, laughter,
// stray symbols), links and hashtags, then merges very short sentences.
func CleanCaptions(raw string) string {
	if raw == "" {
		return ""
	}
	text := cleanSubtitleText(raw)
	text = removeLinksAndHashtags(text)
	text = collapseSpaces(text)
	return MergeShortSentences(text, MinSentenceLength)
}

// JoinCaptions concatenates the non-blank segment texts with single spaces.
func JoinCaptions(segments []types.CaptionSegment) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// MergeShortSentences splits text on sentence punctuation and glues
// sentences together until each chunk reaches minLength runes. The result
// is re-punctuated with ". ".
func MergeShortSentences(text string, minLength int) string {
	var merged []string
	current := ""
	for _, sentence := range sentenceEndRegex.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		switch {
		case utf8.RuneCountInString(current) < minLength && current != "":
			current += " " + sentence
		case current == "":
			current = sentence
		default:
			merged = append(merged, current)
			current = sentence
		}
	}
	if current != "" {
		merged = append(merged, current)
	}
	if len(merged) == 0 {
		return ""
	}
	return strings.Join(merged, ". ") + "."
}

func removeLinksAndHashtags(text string) string {
	text = linkRegex.ReplaceAllString(text, "")
	return hashtagRegex.ReplaceAllString(text, "")
}

func collapseSpaces(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

func cleanSubtitleText(text string) string {
	for _, re := range []*regexp.Regexp{
		bracketRegex,
		parenRegex,
		musicSpanRegex,
		musicNoteRegex,
		laughterRegex,
		groanRegex,
		exclamationRegex,
		symbolRegex,
	} {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
