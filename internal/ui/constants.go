package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconStop     = "⏹"
	IconPending  = "⏳"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconClose    = "×"
	IconError    = "❌"
	IconSearch   = "🔍"
	IconNotice   = "❗"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	CardWidth  float32 = 300
	CardHeight float32 = 250

	StatusLabelWidth float32 = 96
	RowMinWidth      float32 = 400
	RowMinHeight     float32 = 56

	DownloadsPanelOffset = 0.7

	PreviewImageWidth  float32 = 560
	PreviewImageHeight float32 = 620
)

// Notification behavior
const (
	NotificationAutoHide = 4 * time.Second
)
