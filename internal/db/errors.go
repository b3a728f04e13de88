package db

import "fmt"

// PersistError represents a failed write to the store
type PersistError struct {
	Op      string
	VideoID string
	Cause   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to %s video %s: %v", e.Op, e.VideoID, e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}
