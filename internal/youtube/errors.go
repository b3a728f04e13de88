package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrVideoNotFound is returned when the Data API has no item for an id.
var ErrVideoNotFound = errors.New("video not found")

// APIError wraps a failed YouTube Data API or yt-dlp call.
type APIError struct {
	Op      string
	VideoID string
	Cause   error
}

func (e *APIError) Error() string {
	if e.VideoID != "" {
		return fmt.Sprintf("youtube %s [%s]: %v", e.Op, e.VideoID, e.Cause)
	}
	return fmt.Sprintf("youtube %s: %v", e.Op, e.Cause)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsQuotaExceeded reports whether err is an HTTP 429 from the Data API.
func IsQuotaExceeded(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests
}
