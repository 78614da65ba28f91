package upload

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// watchdog cancels its context when Kick is not called within timeout.
// A zero timeout disables it.
type watchdog struct {
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
	resumed atomic.Bool
}

func newWatchdog(parent context.Context, timeout time.Duration) (context.Context, *watchdog) {
	ctx, cancel := context.WithCancelCause(parent)
	wd := &watchdog{cancel: cancel, timeout: timeout}
	if timeout > 0 {
		wd.timer = time.AfterFunc(timeout, func() {
			cancel(os.ErrDeadlineExceeded)
		})
	}
	return ctx, wd
}

func (wd *watchdog) Kick() {
	if wd.timeout > 0 {
		wd.timer.Reset(wd.timeout)
	}
}

// Pause stops the timer until the next Kick. It has no effect after Resume.
func (wd *watchdog) Pause() {
	if wd.timeout > 0 && !wd.resumed.Load() {
		wd.timer.Stop()
	}
}

// Resume rearms the timer for good
func (wd *watchdog) Resume() {
	wd.resumed.Store(true)
	wd.Kick()
}

func (wd *watchdog) Cancel() {
	if wd.timeout > 0 {
		wd.timer.Stop()
	}
	wd.cancel(nil)
}

// kickingReader kicks the watchdog on every successful read
type kickingReader struct {
	r  io.Reader
	wd *watchdog
}

func (k *kickingReader) Read(p []byte) (int, error) {
	n, err := k.r.Read(p)
	if n > 0 {
		k.wd.Kick()
	}
	return n, err
}

// requestBody kicks the watchdog while the request is sent and pauses it once
// the last byte is handed to the transport. The server's think time before
// the response headers is covered by the overall timeout only.
type requestBody struct {
	r  *bytes.Reader
	wd *watchdog
}

func (b *requestBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if n > 0 {
		b.wd.Kick()
	}
	if b.r.Len() == 0 {
		b.wd.Pause()
	}
	return n, err
}
