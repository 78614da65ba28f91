package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconImage    = "🖼"
	IconFolder   = "📁"
	IconDeck     = "📊"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Layout sizing
const (
	FileListMinWidth  float32 = 420
	FileListMinHeight float32 = 180

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420
)

// Completion notifications for uploads shorter than this are skipped,
// the download section is already in front of the user.
const (
	NotifyAfter = 10 * time.Second
)
