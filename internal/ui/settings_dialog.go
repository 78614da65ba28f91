package ui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/deckify/deckify-uploader/internal/config"
	"github.com/deckify/deckify-uploader/internal/upload"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	serverURLEntry  *widget.Entry
	timeoutEntry    *widget.Entry
	inactivityEntry *widget.Entry
	saveDirEntry    *widget.Entry
	autoRevealCheck *widget.Check
	languageSelect  *widget.Select
	languageByLabel map[string]string
	languageOptions []string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog builds the dialog, fills it from settings and shows it
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(window, settings, localization, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.serverURLEntry = widget.NewEntry()
	sd.serverURLEntry.SetPlaceHolder(config.DefaultServerURL)
	sd.serverURLEntry.Validator = func(text string) error {
		_, err := upload.ResolveUploadURL(strings.TrimSpace(text))
		return err
	}

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.DefaultTimeoutSeconds))
	sd.inactivityEntry = widget.NewEntry()
	sd.inactivityEntry.SetPlaceHolder(strconv.Itoa(config.DefaultInactivitySeconds))

	sd.saveDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	saveDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.saveDirEntry)

	sd.autoRevealCheck = widget.NewCheck(l.GetText(KeyAutoReveal), nil)

	// Language select shows display names, preferences store codes
	sd.languageByLabel = make(map[string]string)
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageByLabel[label] = code
		sd.languageOptions = append(sd.languageOptions, label)
	}
	sort.Strings(sd.languageOptions)
	sd.languageSelect = widget.NewSelect(sd.languageOptions, nil)

	seconds := " (" + l.GetText(KeySeconds) + ")"
	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyServerURL)+":"),
		sd.serverURLEntry,

		widget.NewLabel(l.GetText(KeyTimeout)+seconds+":"),
		sd.timeoutEntry,

		widget.NewLabel(l.GetText(KeyInactivityTimeout)+seconds+":"),
		sd.inactivityEntry,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeySaveDirectory)+":"),
		saveDirRow,
		sd.autoRevealCheck,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.serverURLEntry.SetText(sd.settings.GetServerURL())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetTimeout() / time.Second)))
	sd.inactivityEntry.SetText(strconv.Itoa(int(sd.settings.GetInactivityTimeout() / time.Second)))
	sd.saveDirEntry.SetText(sd.settings.GetSaveDirectory())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnSave())

	current := sd.settings.GetLanguage()
	for label, code := range sd.languageByLabel {
		if code == current {
			sd.languageSelect.SetSelected(label)
			break
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.saveDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave validates the form and writes accepted values to preferences.
// Invalid fields are skipped; an invalid server URL is reported.
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	l := sd.localization

	serverURL := strings.TrimSpace(sd.serverURLEntry.Text)
	if serverURL != "" {
		if err := sd.serverURLEntry.Validator(serverURL); err != nil {
			dialog.ShowError(err, sd.window)
			return
		}
		sd.settings.SetServerURL(serverURL)
	}

	if d, err := config.ParseDuration(sd.timeoutEntry.Text); err == nil && sd.timeoutEntry.Text != "" {
		sd.settings.SetTimeout(d)
	}
	if d, err := config.ParseDuration(sd.inactivityEntry.Text); err == nil && sd.inactivityEntry.Text != "" {
		sd.settings.SetInactivityTimeout(d)
	}

	if dir := strings.TrimSpace(sd.saveDirEntry.Text); dir != "" {
		sd.settings.SetSaveDirectory(dir)
	}
	sd.settings.SetAutoRevealOnSave(sd.autoRevealCheck.Checked)

	if code, ok := sd.languageByLabel[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(l.GetText(KeySettings), l.GetText(KeySettingsSaved), sd.window)
}
