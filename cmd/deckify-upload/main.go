// Command deckify-upload sends images to a Deckify server and writes the
// returned presentation to disk.
//
//	deckify-upload --server http://localhost:5000 --out slides/ a.png b.jpg
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deckify/deckify-uploader/internal/artifact"
	"github.com/deckify/deckify-uploader/internal/config"
	"github.com/deckify/deckify-uploader/internal/logging"
	"github.com/deckify/deckify-uploader/internal/model"
	"github.com/deckify/deckify-uploader/internal/platform"
	"github.com/deckify/deckify-uploader/internal/upload"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks failures caused by the command line rather than the upload
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	server            string
	out               string
	timeout           time.Duration
	inactivityTimeout time.Duration
	logLevel          string
	open              bool
}

// run executes the command and maps its outcome to an exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "invalid environment: %v\n", err)
		return exitUsage
	}

	cmd := newRootCmd(env)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err = cmd.ExecuteContext(ctx)
	var usageErr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usageErr):
		if !errors.Is(err, upload.ErrNoSelection) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return exitUsage
	default:
		return exitFailure
	}
}

var uploadExample = `  # Convert two slides, write the deck into ./decks
  deckify-upload --server http://localhost:5000 --out decks/ slide1.png slide2.jpg

  # Write to an exact file name
  deckify-upload --out talk.pptx whiteboard.jpg`

func newRootCmd(env *config.Env) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "deckify-upload [flags] image...",
		Short:         "Convert images into a presentation on a Deckify server",
		Example:       uploadExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return uploadImages(cmd, opts, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.server, "server", stringOr(env.ServerURL, config.DefaultServerURL), "Deckify server base URL")
	flags.StringVarP(&opts.out, "out", "o", stringOr(env.SaveDir, "."), "directory or file to write the presentation to")
	flags.DurationVar(&opts.timeout, "timeout", durationOr(env.Timeout, config.DefaultTimeoutSeconds*time.Second), "overall upload timeout, 0 disables")
	flags.DurationVar(&opts.inactivityTimeout, "inactivity-timeout", durationOr(env.InactivityTimeout, config.DefaultInactivitySeconds*time.Second), "abort when no bytes move for this long, 0 disables")
	flags.BoolVar(&opts.open, "open", false, "open the saved presentation with the default application")
	flags.StringVar(&opts.logLevel, "log-level", stringOr(env.LogLevel, "warn"), "diagnostic log level (debug, info, warn, error)")

	return cmd
}

func uploadImages(cmd *cobra.Command, opts *options, paths []string) error {
	stderr := cmd.ErrOrStderr()

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return usageError{err}
	}
	lggr, err := logging.NewWith(func(cfg *zap.Config) {
		cfg.Level.SetLevel(level)
		cfg.OutputPaths = []string{"stderr"}
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to create logger: %v\n", err)
		return err
	}
	defer func() { _ = lggr.Sync() }()

	client, err := upload.NewClient(upload.Config{
		Endpoint:          opts.server,
		Timeout:           opts.timeout,
		InactivityTimeout: opts.inactivityTimeout,
	})
	if err != nil {
		return usageError{fmt.Errorf("invalid --server: %w", err)}
	}

	selection, err := platform.SelectionFromPaths(paths)
	if err != nil {
		return usageError{err}
	}

	view := newConsoleView(stderr)
	handler := upload.NewHandler(client, artifact.NewStore(), view, lggr.Named("upload"))

	lggr.Debugw("Uploading", "url", client.URL(), "files", selection.Names())
	task, err := handler.Submit(cmd.Context(), selection)
	switch {
	case errors.Is(err, upload.ErrNoSelection):
		return usageError{err}
	case err != nil:
		return err
	}

	path, err := writeArtifact(handler, task, opts.out)
	if err != nil {
		fmt.Fprintf(stderr, "saving presentation: %v\n", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if opts.open {
		if err := platform.OpenFileWithDefaultApp(path); err != nil {
			lggr.Warnw("Error opening presentation", "path", path, "error", err)
		}
	}
	return nil
}

// writeArtifact saves into out when it is a directory (existing, or given with
// a trailing separator) and writes out as a file otherwise.
func writeArtifact(handler *upload.Handler, task *model.UploadTask, out string) (string, error) {
	if isDirTarget(out) {
		if err := platform.CreateDirectoryIfNotExists(out); err != nil {
			return "", err
		}
		return handler.Save(task.ArtifactURL, out)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return "", err
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if _, err := handler.Export(task.ArtifactURL, f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return out, nil
}

func isDirTarget(out string) bool {
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(out)
	return err == nil && info.IsDir()
}

func stringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func durationOr(value *time.Duration, fallback time.Duration) time.Duration {
	if value != nil {
		return *value
	}
	return fallback
}
