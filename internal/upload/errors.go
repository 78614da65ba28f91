package upload

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelection is returned when submit is triggered with no files
	ErrNoSelection = errors.New("no files selected")

	// ErrBusy is returned when an upload is already in flight
	ErrBusy = errors.New("upload already in progress")

	// ErrTimeout is returned when the overall or inactivity timeout expires
	ErrTimeout = errors.New("upload timed out")

	// ErrCanceled is returned when the upload was canceled by the caller
	ErrCanceled = errors.New("upload canceled")
)

// StatusError reports a response outside the 2xx range
type StatusError struct {
	Code    int
	Message string // server-provided detail, diagnostics only
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload failed with status: %d", e.Code)
}
