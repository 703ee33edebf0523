package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// IsMobileDevice checks if the app is running on a phone or tablet
func IsMobileDevice() bool {
	device := fyne.CurrentDevice()
	return device != nil && device.IsMobile()
}

// adaptiveRow lays the objects out in one row on desktop and stacks them
// on mobile devices.
func adaptiveRow(objects ...fyne.CanvasObject) *fyne.Container {
	if IsMobileDevice() {
		return container.NewVBox(objects...)
	}
	return container.NewAdaptiveGrid(len(objects), objects...)
}
