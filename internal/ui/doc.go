package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the upload form, implements upload.View on top of Fyne widgets,
// and hosts settings. All UI strings are localized via Localization.
