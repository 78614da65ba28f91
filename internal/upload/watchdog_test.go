package upload

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchdogFires(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 20*time.Millisecond)
	defer wd.Cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("watchdog did not fire")
	}
	assert.ErrorIs(t, context.Cause(ctx), os.ErrDeadlineExceeded)
}

func TestWatchdogKick(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 200*time.Millisecond)
	defer wd.Cancel()

	for i := 0; i < 10; i++ {
		time.Sleep(30 * time.Millisecond)
		wd.Kick()
	}
	require.NoError(t, ctx.Err())
}

func TestWatchdogDisabled(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 0)
	wd.Kick()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, ctx.Err())

	wd.Cancel()
	assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

func TestKickingReader(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 200*time.Millisecond)
	defer wd.Cancel()

	r := &kickingReader{r: strings.NewReader(strings.Repeat("x", 10)), wd: wd}
	buf := make([]byte, 1)
	for i := 0; i < 10; i++ {
		time.Sleep(30 * time.Millisecond)
		_, err := r.Read(buf)
		require.NoError(t, err)
	}
	require.NoError(t, ctx.Err())
}

func TestWatchdogPause(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 30*time.Millisecond)
	defer wd.Cancel()

	wd.Pause()
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, ctx.Err())

	wd.Kick()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("watchdog did not fire after Kick")
	}
}

func TestWatchdogPauseAfterResume(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 30*time.Millisecond)
	defer wd.Cancel()

	wd.Resume()
	wd.Pause()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Pause after Resume stopped the watchdog")
	}
}

func TestRequestBodyPausesAtEnd(t *testing.T) {
	ctx, wd := newWatchdog(context.Background(), 50*time.Millisecond)
	defer wd.Cancel()

	body := &requestBody{r: bytes.NewReader([]byte("payload")), wd: wd}
	_, err := io.ReadAll(body)
	require.NoError(t, err)

	time.Sleep(150 * time.Millisecond)
	require.NoError(t, ctx.Err())
}
