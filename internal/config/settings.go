package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/deckify/deckify-uploader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyServerURL         = "server_url"
	KeyTimeoutSeconds    = "timeout_seconds"
	KeyInactivitySeconds = "inactivity_timeout_seconds"
	KeySaveDir           = "save_directory"
	KeyLanguage          = "app_language"
	KeyAutoRevealOnSave  = "auto_reveal_on_save"
)

// Default values
const (
	DefaultServerURL         = "http://localhost:5000"
	DefaultTimeoutSeconds    = 300
	DefaultInactivitySeconds = 60
	DefaultLanguage          = "system"
	DefaultAutoRevealOnSave  = true

	// MaxTimeoutSeconds caps both timeouts; 0 disables a timeout
	MaxTimeoutSeconds = 3600
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerURL returns the configured service base URL
func (s *Settings) GetServerURL() string {
	serverURL := s.app.Preferences().String(KeyServerURL)
	if serverURL == "" {
		s.SetServerURL(DefaultServerURL)
		return DefaultServerURL
	}
	return serverURL
}

// SetServerURL sets the service base URL. An empty value restores the default.
func (s *Settings) SetServerURL(serverURL string) {
	serverURL = strings.TrimSpace(serverURL)
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	s.app.Preferences().SetString(KeyServerURL, serverURL)
}

// GetTimeout returns the overall upload timeout, 0 if disabled
func (s *Settings) GetTimeout() time.Duration {
	seconds := s.app.Preferences().IntWithFallback(KeyTimeoutSeconds, DefaultTimeoutSeconds)
	return time.Duration(seconds) * time.Second
}

// SetTimeout sets the overall upload timeout, clamped to [0, MaxTimeoutSeconds]
func (s *Settings) SetTimeout(timeout time.Duration) {
	s.app.Preferences().SetInt(KeyTimeoutSeconds, clampSeconds(timeout))
}

// GetInactivityTimeout returns how long the upload may stall, 0 if disabled
func (s *Settings) GetInactivityTimeout() time.Duration {
	seconds := s.app.Preferences().IntWithFallback(KeyInactivitySeconds, DefaultInactivitySeconds)
	return time.Duration(seconds) * time.Second
}

// SetInactivityTimeout sets the stall timeout, clamped to [0, MaxTimeoutSeconds]
func (s *Settings) SetInactivityTimeout(timeout time.Duration) {
	s.app.Preferences().SetInt(KeyInactivitySeconds, clampSeconds(timeout))
}

// GetSaveDirectory returns the directory artifacts are saved into
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetSaveDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSaveDirectory sets the directory artifacts are saved into
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnSave returns whether a saved artifact is shown in the file manager
func (s *Settings) GetAutoRevealOnSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealOnSave, DefaultAutoRevealOnSave)
}

// SetAutoRevealOnSave sets whether a saved artifact is shown in the file manager
func (s *Settings) SetAutoRevealOnSave(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealOnSave, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// ApplyEnv stores every value set in env, so environment overrides win over
// what the settings dialog saved earlier.
func (s *Settings) ApplyEnv(env *Env) {
	if env == nil {
		return
	}
	if env.ServerURL != "" {
		s.SetServerURL(env.ServerURL)
	}
	if env.Timeout != nil {
		s.SetTimeout(*env.Timeout)
	}
	if env.InactivityTimeout != nil {
		s.SetInactivityTimeout(*env.InactivityTimeout)
	}
	if env.SaveDir != "" {
		s.SetSaveDirectory(env.SaveDir)
	}
}

func clampSeconds(d time.Duration) int {
	seconds := int(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	if seconds > MaxTimeoutSeconds {
		seconds = MaxTimeoutSeconds
	}
	return seconds
}
