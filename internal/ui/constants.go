package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	ConfirmDialogWidth  float32 = 420
	SettingsDialogWidth float32 = 500
	SettingsDialogH     float32 = 420
)

// Notification panel behavior
const (
	ShortNoticeDuration = 3 * time.Second
	LongNoticeDuration  = 6 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
