package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/deckify/deckify-uploader/internal/artifact"
	"github.com/deckify/deckify-uploader/internal/upload"
)

// consoleView reports handler effects as lines on a terminal
type consoleView struct {
	mu sync.Mutex
	w  io.Writer
}

var _ upload.View = (*consoleView)(nil)

func newConsoleView(w io.Writer) *consoleView {
	return &consoleView{w: w}
}

func (v *consoleView) ShowIndicator() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.w, "Processing your images...")
}

// HideIndicator is a no-op, the outcome line follows
func (v *consoleView) HideIndicator() {}

func (v *consoleView) RevealDownload(a artifact.Artifact) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.w, "Presentation ready: %s (%d bytes)\n", a.Filename, a.Size)
}

// HideDownload is a no-op, nothing stale is left on a terminal
func (v *consoleView) HideDownload() {}

func (v *consoleView) Notify(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.w, message)
}

// SetSubmitEnabled is a no-op, the command submits once
func (v *consoleView) SetSubmitEnabled(bool) {}
