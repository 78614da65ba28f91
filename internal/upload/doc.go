package upload

// Package upload implements the submit pipeline: it bundles the selected images
// into a multipart payload, posts it to the service's /upload endpoint, and turns
// the response into a downloadable artifact. UI side effects go through the View
// boundary so the pipeline runs the same under Fyne, the CLI, and tests.
