package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/deckify/deckify-uploader/internal/artifact"
	"github.com/deckify/deckify-uploader/internal/config"
	"github.com/deckify/deckify-uploader/internal/logging"
	"github.com/deckify/deckify-uploader/internal/ui"
	"github.com/deckify/deckify-uploader/internal/upload"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.deckify.uploader"
	AppName = "Deckify"

	WindowWidth  = 560
	WindowHeight = 520
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(env.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, using %s\n", err, level)
	}
	lggr, err := logging.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lggr.Sync() }()

	lggr.Infow("Starting", "app", AppName, "version", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)
	settings.ApplyEnv(env)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	client, err := ui.NewUploadClient(settings)
	if err != nil {
		lggr.Warnw("Saved server URL is invalid, using default", "server", settings.GetServerURL(), "error", err)
		settings.SetServerURL(config.DefaultServerURL)
		if client, err = ui.NewUploadClient(settings); err != nil {
			lggr.Fatalw("Error creating upload client", "error", err)
		}
	}
	lggr.Infow("Upload endpoint", "url", client.URL())

	root := ui.NewRootUI(myWindow, myApp, settings, lggr.Named("ui"))
	handler := upload.NewHandler(client, artifact.NewStore(), root, lggr.Named("upload"))
	root.SetSubmitter(handler)

	myWindow.ShowAndRun()
}
