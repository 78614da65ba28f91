package model

import (
	"fmt"
	"time"
)

// UploadTask represents one submission of the upload form
type UploadTask struct {
	ID           string
	FileNames    []string
	Status       UploadStatus
	ArtifactURL  string    // object URL of the received artifact
	ArtifactName string    // suggested filename for saving
	ArtifactSize int64     // size of the received artifact in bytes
	StatusCode   int       // HTTP status code, 0 if no response was received
	LastError    string    // last error message if any
	StartedAt    time.Time // when the upload started
	FinishedAt   time.Time // when the upload reached a terminal state
}

// Duration returns how long the upload took, or the elapsed time if still running
func (t *UploadTask) Duration() time.Duration {
	if t.StartedAt.IsZero() {
		return 0
	}
	if t.FinishedAt.IsZero() {
		return time.Since(t.StartedAt)
	}
	return t.FinishedAt.Sub(t.StartedAt)
}

// GetDisplayName returns the artifact name, or a summary of the uploaded files
func (t *UploadTask) GetDisplayName() string {
	if t.ArtifactName != "" {
		return t.ArtifactName
	}

	switch len(t.FileNames) {
	case 0:
		return t.ID
	case 1:
		return t.FileNames[0]
	default:
		return fmt.Sprintf("%s (+%d)", t.FileNames[0], len(t.FileNames)-1)
	}
}
