package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/deckify/deckify-uploader/internal/artifact"
	"github.com/deckify/deckify-uploader/internal/config"
	"github.com/deckify/deckify-uploader/internal/model"
	"github.com/deckify/deckify-uploader/internal/platform"
	"github.com/deckify/deckify-uploader/internal/upload"
)

// RootUI is the upload form. It implements upload.View; every View method
// may be called from the upload goroutine and hops onto the UI thread.
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	submitter    upload.Submitter
	settings     *config.Settings
	localization *Localization
	lggr         *zap.SugaredLogger

	// Selection is only touched on the UI thread
	selection model.Selection
	artifact  artifact.Artifact

	// Form
	addBtn         *widget.Button
	clearBtn       *widget.Button
	uploadBtn      *widget.Button
	cancelBtn      *widget.Button
	settingsBtn    *widget.Button
	selectionLabel *widget.Label
	fileList       *widget.List

	// Progress indicator
	progressContainer *fyne.Container
	progressLabel     *widget.Label
	progressBar       *widget.ProgressBarInfinite

	// Download section
	downloadSection *fyne.Container
	downloadLabel   *widget.Label
	downloadLink    *widget.Hyperlink
	saveToFolderBtn *widget.Button
}

var _ upload.View = (*RootUI)(nil)

// NewRootUI creates the main UI. Uploads are enabled once SetSubmitter is called.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, lggr *zap.SugaredLogger) *RootUI {
	if lggr == nil {
		lggr = zap.NewNop().Sugar()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		lggr:         lggr,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// SetSubmitter connects the form to the upload handler
func (ui *RootUI) SetSubmitter(submitter upload.Submitter) {
	ui.submitter = submitter
	submitter.SetMessages(ui.messages())
	submitter.SetUpdateCallback(ui.onTaskUpdate)
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	l := ui.localization

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	title := widget.NewLabel(l.GetText(KeyAppTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}

	var header *fyne.Container
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, container.NewHBox(logoImage, title), ui.settingsBtn)
	} else {
		header = container.NewBorder(nil, nil, title, ui.settingsBtn)
	}

	// Image selection
	ui.addBtn = widget.NewButton(IconImage+" "+l.GetText(KeySelectImages), ui.onAddImages)
	ui.clearBtn = widget.NewButton(l.GetText(KeyClearSelection), ui.onClearSelection)
	ui.selectionLabel = widget.NewLabel("")
	selectionRow := container.NewBorder(nil, nil, container.NewHBox(ui.addBtn, ui.clearBtn), nil, ui.selectionLabel)

	ui.fileList = widget.NewList(
		func() int {
			return len(ui.selection)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.selection) {
				return
			}
			obj.(*widget.Label).SetText(ui.selection[id].Name)
		},
	)
	fileListBox := container.NewGridWrap(fyne.NewSize(FileListMinWidth, FileListMinHeight), ui.fileList)

	// Submit row
	ui.uploadBtn = widget.NewButton(l.GetText(KeyUpload), ui.onUploadClick)
	ui.uploadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(l.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Hide()
	submitRow := container.NewBorder(nil, nil, nil, ui.cancelBtn, ui.uploadBtn)

	// Progress indicator, hidden until an upload starts
	ui.progressLabel = widget.NewLabel(l.GetText(KeyProcessing))
	ui.progressBar = widget.NewProgressBarInfinite()
	ui.progressContainer = container.NewVBox(ui.progressLabel, ui.progressBar)
	ui.progressContainer.Hide()

	// Download section, hidden until an artifact is available
	ui.downloadLabel = widget.NewLabel(l.GetText(KeyDownloadReady))
	ui.downloadLink = widget.NewHyperlink("", nil)
	ui.downloadLink.OnTapped = ui.onSaveAs
	ui.saveToFolderBtn = widget.NewButton(IconFolder+" "+l.GetText(KeySaveToFolder), ui.onSaveToFolder)
	ui.downloadSection = container.NewVBox(
		widget.NewSeparator(),
		ui.downloadLabel,
		container.NewHBox(ui.downloadLink, ui.saveToFolderBtn),
	)
	ui.downloadSection.Hide()

	top := container.NewVBox(header, widget.NewSeparator(), selectionRow)
	bottom := container.NewVBox(submitRow, ui.progressContainer, ui.downloadSection)
	content := container.NewBorder(top, bottom, nil, nil, fileListBox)

	ui.window.SetContent(container.NewPadded(content))
	ui.window.SetOnDropped(ui.onDropped)

	ui.refreshSelection()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.addBtn.SetText(IconImage + " " + l.GetText(KeySelectImages))
	ui.clearBtn.SetText(l.GetText(KeyClearSelection))
	ui.uploadBtn.SetText(l.GetText(KeyUpload))
	ui.cancelBtn.SetText(l.GetText(KeyCancel))
	ui.progressLabel.SetText(l.GetText(KeyProcessing))
	ui.downloadLabel.SetText(l.GetText(KeyDownloadReady))
	ui.saveToFolderBtn.SetText(IconFolder + " " + l.GetText(KeySaveToFolder))
	if ui.artifact.URL != "" {
		ui.downloadLink.SetText(ui.downloadText(ui.artifact))
	}
	ui.refreshSelection()

	if ui.submitter != nil {
		ui.submitter.SetMessages(ui.messages())
	}
}

// messages returns the handler texts in the current language
func (ui *RootUI) messages() upload.Messages {
	l := ui.localization
	return upload.Messages{
		NoSelection: l.GetText(KeyNoSelection),
		Failure:     l.GetText(KeyUploadFailed),
		Timeout:     l.GetText(KeyUploadTimedOut),
		Canceled:    l.GetText(KeyUploadCanceled),
	}
}

// ShowIndicator reveals the progress indicator
func (ui *RootUI) ShowIndicator() {
	fyne.Do(func() {
		ui.progressBar.Start()
		ui.progressContainer.Show()
	})
}

// HideIndicator hides the progress indicator
func (ui *RootUI) HideIndicator() {
	fyne.Do(func() {
		ui.progressBar.Stop()
		ui.progressContainer.Hide()
	})
}

// RevealDownload points the download link at a and shows the download section
func (ui *RootUI) RevealDownload(a artifact.Artifact) {
	fyne.Do(func() {
		ui.artifact = a
		if link, err := url.Parse(a.URL); err == nil {
			ui.downloadLink.SetURL(link)
		}
		ui.downloadLink.SetText(ui.downloadText(a))
		ui.downloadSection.Show()
	})
}

// HideDownload hides the download section and forgets its artifact
func (ui *RootUI) HideDownload() {
	fyne.Do(func() {
		ui.artifact = artifact.Artifact{}
		ui.downloadSection.Hide()
	})
}

// Notify shows message in a dialog over the form
func (ui *RootUI) Notify(message string) {
	fyne.Do(func() {
		dialog.ShowInformation(ui.localization.GetText(KeyNotice), message, ui.window)
	})
}

// SetSubmitEnabled toggles the upload button. Cancel is offered while it is disabled.
func (ui *RootUI) SetSubmitEnabled(enabled bool) {
	fyne.Do(func() {
		if enabled {
			ui.uploadBtn.Enable()
			ui.cancelBtn.Hide()
			return
		}
		ui.uploadBtn.Disable()
		ui.cancelBtn.Show()
	})
}

func (ui *RootUI) downloadText(a artifact.Artifact) string {
	return fmt.Sprintf("%s %s%s%s", IconDeck, ui.localization.GetText(KeyDownloadLink), MiddleDotSeparator, a.Filename)
}

func (ui *RootUI) onAddImages() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return // canceled
		}
		uri := reader.URI()
		if err := reader.Close(); err != nil {
			ui.lggr.Debugw("Error closing picked file", "uri", uri.String(), "error", err)
		}
		ui.addURIs(uri)
	}, ui.window)
	open.SetFilter(storage.NewExtensionFileFilter(platform.ImageExtensions))
	open.Show()
}

// onDropped adds dropped images. Other files are skipped like in the picker.
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	var images []fyne.URI
	for _, uri := range uris {
		if !platform.IsImageFile(uri.Name()) {
			ui.lggr.Debugw("Skipping dropped file", "uri", uri.String())
			continue
		}
		images = append(images, uri)
	}
	ui.addURIs(images...)
}

// addURIs appends files to the selection in the given order
func (ui *RootUI) addURIs(uris ...fyne.URI) {
	for _, uri := range uris {
		ui.selection = append(ui.selection, selectedFileFromURI(uri))
	}
	ui.refreshSelection()
}

func (ui *RootUI) onClearSelection() {
	ui.selection = nil
	ui.refreshSelection()
}

func (ui *RootUI) refreshSelection() {
	if n := ui.selection.Len(); n > 0 {
		ui.selectionLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyFilesSelected), n))
		ui.clearBtn.Enable()
	} else {
		ui.selectionLabel.SetText(ui.localization.GetText(KeyNoImagesSelected))
		ui.clearBtn.Disable()
	}
	ui.fileList.Refresh()
}

// onUploadClick submits a snapshot of the selection in the background.
// The handler reports every outcome through the View methods.
func (ui *RootUI) onUploadClick() {
	if ui.submitter == nil {
		return
	}
	selection := append(model.Selection(nil), ui.selection...)

	go func() {
		task, err := ui.submitter.Submit(context.Background(), selection)
		switch {
		case errors.Is(err, upload.ErrBusy):
			ui.lggr.Debugw("Upload already in progress")
		case err != nil:
			// already logged and shown by the handler
		default:
			ui.lggr.Debugw("Upload finished", "task", task.ID, "duration", task.Duration())
		}
	}()
}

func (ui *RootUI) onCancelClick() {
	if ui.submitter == nil {
		return
	}
	if !ui.submitter.Cancel() {
		ui.lggr.Debugw("Nothing to cancel")
	}
}

// onTaskUpdate handles task updates from the upload handler
func (ui *RootUI) onTaskUpdate(task *model.UploadTask) {
	ui.lggr.Debugw("Task update received", "task", task.ID, "status", task.Status, "files", len(task.FileNames))

	if task.Status == model.UploadStatusDone && task.Duration() >= NotifyAfter {
		ui.sendCompletionNotification(task)
	}
}

// sendCompletionNotification sends a system notification for long uploads
func (ui *RootUI) sendCompletionNotification(task *model.UploadTask) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyUploadCompleted),
		Content: task.GetDisplayName(),
	})
}

// onSaveAs asks for a destination and writes the current artifact there
func (ui *RootUI) onSaveAs() {
	a := ui.artifact
	if a.URL == "" || ui.submitter == nil {
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return // canceled
		}
		_, err = ui.submitter.Export(a.URL, writer)
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			ui.showSaveError(err)
			return
		}
		ui.lggr.Infow("Artifact saved", "artifact", a.URL, "uri", writer.URI().String())
	}, ui.window)
	save.SetFileName(a.Filename)
	if dir, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetSaveDirectory())); err == nil {
		save.SetLocation(dir)
	}
	save.Show()
}

// onSaveToFolder writes the current artifact into the configured save directory
func (ui *RootUI) onSaveToFolder() {
	a := ui.artifact
	if a.URL == "" || ui.submitter == nil {
		return
	}

	dir := ui.settings.GetSaveDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		ui.showSaveError(err)
		return
	}
	path, err := ui.submitter.Save(a.URL, dir)
	if err != nil {
		ui.showSaveError(err)
		return
	}

	if ui.settings.GetAutoRevealOnSave() {
		if err := platform.OpenFileInManager(path); err != nil {
			ui.lggr.Warnw("Error revealing saved file", "path", path, "error", err)
		}
	}
	dialog.ShowInformation(ui.localization.GetText(KeyNotice), ui.localization.GetText(KeySavedTo)+": "+path, ui.window)
}

func (ui *RootUI) showSaveError(err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorSaving), err), ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved points the handler at the new endpoint and applies the language
func (ui *RootUI) onSettingsSaved() {
	if ui.submitter != nil {
		client, err := NewUploadClient(ui.settings)
		if err != nil {
			ui.lggr.Errorw("Error creating upload client", "server", ui.settings.GetServerURL(), "error", err)
			dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyInvalidServerURL), err), ui.window)
		} else {
			ui.submitter.SetUploader(client)
			ui.lggr.Infow("Upload endpoint updated", "url", client.URL())
		}
	}

	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
}

// NewUploadClient builds an upload client from the saved settings
func NewUploadClient(settings *config.Settings) (*upload.Client, error) {
	return upload.NewClient(upload.Config{
		Endpoint:          settings.GetServerURL(),
		Timeout:           settings.GetTimeout(),
		InactivityTimeout: settings.GetInactivityTimeout(),
	})
}

// selectedFileFromURI prefers local paths so the size is known up front
func selectedFileFromURI(uri fyne.URI) model.SelectedFile {
	if uri.Scheme() == "file" {
		if f, err := model.NewFileSelection(uri.Path()); err == nil {
			return f
		}
	}
	return model.NewReaderSelection(uri.Name(), -1, func() (io.ReadCloser, error) {
		return storage.Reader(uri)
	})
}
