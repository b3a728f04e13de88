package extraction

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fencedBlockRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")

// ParseResponse extracts a JSON object from raw model text.
//
// Fenced code blocks are tried first, then the whole trimmed text, then the
// first balanced {...} span (models sometimes add a preamble without a
// fence). The span fallback is not used when the text or a fence already
// decoded to a JSON array, string or number. Only the object shape is checked here; field presence and content
// belong to the validator.
func ParseResponse(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, newParseError(raw, errors.New("empty response"))
	}

	fencedNotObject := false
	for _, match := range fencedBlockRegex.FindAllStringSubmatch(trimmed, -1) {
		obj, err := decodeObject(match[1])
		if err == nil {
			return obj, nil
		}
		if errors.Is(err, ErrNotObject) {
			fencedNotObject = true
		}
	}

	obj, firstErr := decodeObject(trimmed)
	if firstErr == nil {
		return obj, nil
	}
	// Valid JSON of the wrong shape is final; objects nested in it are not
	// the answer.
	if errors.Is(firstErr, ErrNotObject) || fencedNotObject {
		return nil, newParseError(raw, ErrNotObject)
	}

	if span, ok := firstBalancedObject(trimmed); ok {
		if obj, err := decodeObject(span); err == nil {
			return obj, nil
		}
	}

	return nil, newParseError(raw, firstErr)
}

func decodeObject(text string) (map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// firstBalancedObject returns the first {...} span whose braces balance,
// ignoring braces inside JSON strings.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
