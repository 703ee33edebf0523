// Package ui contains the Fyne front end: the main window with the map
// selection form and the pending download list, the settings dialog and
// the dialog presenter used by the download workflow.
package ui
