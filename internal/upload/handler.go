package upload

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deckify/deckify-uploader/internal/artifact"
	"github.com/deckify/deckify-uploader/internal/model"
)

// TaskIDPrefix prefixes every upload task ID
const TaskIDPrefix = "upload-"

// Messages holds the user-facing texts shown through View.Notify
type Messages struct {
	NoSelection string
	Failure     string
	Timeout     string
	Canceled    string
}

// DefaultMessages returns the English messages
func DefaultMessages() Messages {
	return Messages{
		NoSelection: "Please select at least one image to upload.",
		Failure:     "Failed to process your images. Please try again later.",
		Timeout:     "The server took too long to respond. Please try again later.",
		Canceled:    "Upload canceled.",
	}
}

// Handler runs one submission at a time: Idle -> Uploading -> Done | Failed
type Handler struct {
	uploader Uploader
	store    *artifact.Store
	view     View
	lggr     *zap.SugaredLogger
	messages Messages

	mu       sync.Mutex
	current  *model.UploadTask
	cancel   context.CancelFunc
	onUpdate func(*model.UploadTask) // callback for UI updates
}

var _ Submitter = (*Handler)(nil)

// NewHandler creates a handler. A nil logger disables diagnostics.
func NewHandler(uploader Uploader, store *artifact.Store, view View, lggr *zap.SugaredLogger) *Handler {
	if lggr == nil {
		lggr = zap.NewNop().Sugar()
	}
	return &Handler{
		uploader: uploader,
		store:    store,
		view:     view,
		lggr:     lggr,
		messages: DefaultMessages(),
	}
}

// SetMessages replaces the user-facing texts, e.g. after a language change
func (h *Handler) SetMessages(m Messages) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = m
}

// SetUploader swaps the uploader used by subsequent submissions.
// An upload already in flight keeps the old one.
func (h *Handler) SetUploader(uploader Uploader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uploader = uploader
}

// SetUpdateCallback sets the callback function for task updates
func (h *Handler) SetUpdateCallback(callback func(*model.UploadTask)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUpdate = callback
}

// Current returns a copy of the latest task, if any
func (h *Handler) Current() (*model.UploadTask, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return nil, false
	}
	t := *h.current
	t.FileNames = slices.Clone(h.current.FileNames)
	return &t, true
}

// Submit uploads the selection and blocks until it is done or failed.
// An empty selection notifies the user and returns ErrNoSelection without
// touching the network. A second Submit while one is in flight returns ErrBusy.
func (h *Handler) Submit(ctx context.Context, selection model.Selection) (*model.UploadTask, error) {
	messages := h.getMessages()

	if selection.Len() == 0 {
		h.view.Notify(messages.NoSelection)
		return nil, ErrNoSelection
	}

	h.mu.Lock()
	if h.current != nil && h.current.Status.IsActive() {
		h.mu.Unlock()
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	uploader := h.uploader
	previous := h.current
	task := &model.UploadTask{
		ID:        generateTaskID(),
		FileNames: selection.Names(),
		Status:    model.UploadStatusUploading,
		StartedAt: time.Now(),
	}
	h.current = task
	h.cancel = cancel
	h.mu.Unlock()
	defer cancel()

	h.view.SetSubmitEnabled(false)
	defer h.view.SetSubmitEnabled(true)

	h.releasePrevious(previous)
	h.view.ShowIndicator()
	h.notifyUpdate(task)

	h.lggr.Infow("Uploading images", "task", task.ID, "files", selection.Len(), "bytes", selection.TotalSize())

	resp, err := uploader.Upload(ctx, selection)
	if err != nil {
		h.fail(task, err, messages)
		return task, err
	}

	h.view.HideIndicator()
	a := h.store.Create(resp.Body, resp.ContentType, resp.Filename)
	h.view.RevealDownload(a)

	h.mu.Lock()
	task.Status = model.UploadStatusDone
	task.StatusCode = resp.StatusCode
	task.ArtifactURL = a.URL
	task.ArtifactName = a.Filename
	task.ArtifactSize = a.Size
	task.FinishedAt = time.Now()
	h.mu.Unlock()

	h.lggr.Infow("Upload completed", "task", task.ID, "artifact", a.URL, "name", a.Filename, "bytes", a.Size)
	h.notifyUpdate(task)
	return task, nil
}

// Cancel aborts the in-flight upload. It reports whether one was running.
func (h *Handler) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil || !h.current.Status.IsActive() || h.cancel == nil {
		return false
	}
	h.cancel()
	return true
}

// Save writes the artifact behind url into dir and returns the written path
func (h *Handler) Save(url, dir string) (string, error) {
	path, err := h.store.SaveToDir(url, dir)
	if err != nil {
		h.lggr.Errorw("Error saving artifact", "artifact", url, "dir", dir, "error", err)
		return "", err
	}
	h.lggr.Infow("Artifact saved", "artifact", url, "path", path)
	return path, nil
}

// Export copies the artifact behind url into w
func (h *Handler) Export(url string, w io.Writer) (int64, error) {
	n, err := h.store.Save(url, w)
	if err != nil {
		h.lggr.Errorw("Error exporting artifact", "artifact", url, "error", err)
		return n, err
	}
	h.lggr.Infow("Artifact exported", "artifact", url, "bytes", n)
	return n, nil
}

// releasePrevious revokes the last object URL and hides its download section
func (h *Handler) releasePrevious(previous *model.UploadTask) {
	h.view.HideDownload()
	if previous == nil || previous.ArtifactURL == "" {
		return
	}
	if err := h.store.Revoke(previous.ArtifactURL); err != nil && !errors.Is(err, artifact.ErrNotFound) {
		h.lggr.Warnw("Error revoking artifact", "artifact", previous.ArtifactURL, "error", err)
	}
}

// fail logs the error, notifies the user once and hides the indicator.
// The download section is left as it is.
func (h *Handler) fail(task *model.UploadTask, err error, messages Messages) {
	fields := []any{"task", task.ID, "files", len(task.FileNames), "error", err}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		fields = append(fields, "status", statusErr.Code, "serverMessage", statusErr.Message)
	}
	h.lggr.Errorw("Error during upload", fields...)

	message := messages.Failure
	switch {
	case errors.Is(err, ErrTimeout):
		message = messages.Timeout
	case errors.Is(err, ErrCanceled):
		message = messages.Canceled
	}
	h.view.Notify(message)
	h.view.HideIndicator()

	h.mu.Lock()
	task.Status = model.UploadStatusFailed
	task.LastError = err.Error()
	if statusErr != nil {
		task.StatusCode = statusErr.Code
	}
	task.FinishedAt = time.Now()
	h.mu.Unlock()

	h.notifyUpdate(task)
}

func (h *Handler) getMessages() Messages {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.messages
}

// notifyUpdate calls the update callback if set
func (h *Handler) notifyUpdate(task *model.UploadTask) {
	h.mu.Lock()
	callback := h.onUpdate
	h.mu.Unlock()
	if callback != nil {
		callback(task)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}
