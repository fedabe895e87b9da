package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It translates clicks into selection messages, draws the rendered paper cards,
// hands downloads to the download service and shows preview overlays.
// All UI strings are localized via Localization.
