// Package validation screens model output before it is trusted as a recipe.
package validation

import "fmt"

// ValidationError is a terminal rejection of a model response. Its message
// is the skip reason recorded for the video.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Quality validation failed: %s", e.Reason)
}
