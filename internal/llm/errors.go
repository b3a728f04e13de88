package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"

	"google.golang.org/api/googleapi"
)

// TransportError wraps any failure talking to the model provider:
// network, auth, quota or an unusable (empty/blocked) response.
type TransportError struct {
	Model   string
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm transport error (%s): %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("llm transport error (%s): %s", e.Model, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// httpCoder is implemented by googleapi and apierror errors.
type httpCoder interface {
	HTTPCode() int
}

// StatusCode returns the HTTP status carried by the cause, or 0.
func (e *TransportError) StatusCode() int {
	var gErr *googleapi.Error
	if errors.As(e.Cause, &gErr) {
		return gErr.Code
	}
	var coder httpCoder
	if errors.As(e.Cause, &coder) {
		return coder.HTTPCode()
	}
	return 0
}

// Temporary reports whether retrying the same request may succeed: rate
// limiting, server-side failures and dropped or refused connections.
// Context errors are never temporary; the caller's deadline covers every
// attempt.
func (e *TransportError) Temporary() bool {
	if errors.Is(e.Cause, context.Canceled) || errors.Is(e.Cause, context.DeadlineExceeded) {
		return false
	}
	code := e.StatusCode()
	if code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
		return true
	}
	return isNetworkFailure(e.Cause)
}

func isNetworkFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsTemporary reports whether err is a TransportError worth retrying.
func IsTemporary(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Temporary()
}
