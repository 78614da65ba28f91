package upload

import (
	"context"
	"io"

	"github.com/deckify/deckify-uploader/internal/artifact"
	"github.com/deckify/deckify-uploader/internal/model"
)

// Uploader sends a selection to the service and returns the artifact bytes
type Uploader interface {
	Upload(ctx context.Context, selection model.Selection) (*Response, error)
}

// View is the set of UI effects the handler drives. Implementations must be
// safe to call from a background goroutine.
type View interface {
	// ShowIndicator reveals the progress indicator
	ShowIndicator()
	// HideIndicator hides the progress indicator
	HideIndicator()
	// RevealDownload shows the download section bound to a
	RevealDownload(a artifact.Artifact)
	// HideDownload hides the download section
	HideDownload()
	// Notify shows a user-facing message
	Notify(message string)
	// SetSubmitEnabled toggles the submit control
	SetSubmitEnabled(enabled bool)
}

// Submitter defines the interface the UI uses to drive uploads
type Submitter interface {
	SetUploader(uploader Uploader)
	SetMessages(m Messages)
	SetUpdateCallback(func(*model.UploadTask))
	Submit(ctx context.Context, selection model.Selection) (*model.UploadTask, error)
	Cancel() bool
	Current() (*model.UploadTask, bool)
	Save(url, dir string) (string, error)
	Export(url string, w io.Writer) (int64, error)
}
