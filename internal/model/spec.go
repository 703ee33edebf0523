package model

import "path/filepath"

// NotificationVisibility controls whether the download manager shows
// progress or completion notices for a transfer.
type NotificationVisibility int

const (
	VisibilityVisible NotificationVisibility = iota
	VisibilityVisibleNotifyCompleted
	VisibilityHidden
)

// EnqueueSpec is what gets handed to a download manager
type EnqueueSpec struct {
	URI                string
	Title              string
	Description        string
	Visibility         NotificationVisibility
	DestinationDir     string
	DestinationName    string
	AllowedOverMetered bool
	AllowedOverRoaming bool
}

// Destination returns the full target path
func (s EnqueueSpec) Destination() string {
	return filepath.Join(s.DestinationDir, s.DestinationName)
}

// NotifiesOnCompletion reports whether a completion notice is expected
func (s EnqueueSpec) NotifiesOnCompletion() bool {
	return s.Visibility == VisibilityVisibleNotifyCompleted
}
