package model

// UploadStatus represents the status of an upload task
type UploadStatus string

const (
	// UploadStatusIdle means nothing has been submitted yet
	UploadStatusIdle UploadStatus = "Idle"

	// UploadStatusUploading means the request is in flight or the body is being read
	UploadStatusUploading UploadStatus = "Uploading"

	// UploadStatusDone means the artifact was received and a download link exists
	UploadStatusDone UploadStatus = "Done"

	// UploadStatusFailed means the server rejected the upload or the transfer broke
	UploadStatusFailed UploadStatus = "Failed"
)

// String returns the string representation of UploadStatus
func (s UploadStatus) String() string {
	return string(s)
}

// IsActive returns true if the upload is in flight
func (s UploadStatus) IsActive() bool {
	return s == UploadStatusUploading
}

// IsFinished returns true if the upload reached a terminal state (done or failed)
func (s UploadStatus) IsFinished() bool {
	return s == UploadStatusDone || s == UploadStatusFailed
}
