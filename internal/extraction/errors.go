package extraction

import (
	"errors"
	"fmt"
)

// SnippetLength is the number of runes of raw model output kept in a ParseError.
const SnippetLength = 500

// ErrNotObject is the cause of a ParseError when the model output decoded to
// valid JSON that is not an object.
var ErrNotObject = errors.New("response is not a JSON object")

// ParseError represents model output that could not be decoded into a JSON object
type ParseError struct {
	Snippet string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("JSON decoding failed: %v. Raw response: %s...", e.Cause, e.Snippet)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func newParseError(raw string, cause error) *ParseError {
	return &ParseError{Snippet: truncateRunes(raw, SnippetLength), Cause: cause}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
