package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/map-downloader/internal/config"
	"github.com/ytget/map-downloader/internal/l10n"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings  *config.Settings
	localizer l10n.Localizer
	window    fyne.Window
	dialog    *dialog.ConfirmDialog
	onSaved   func()

	// UI components
	downloadDirEntry *widget.Entry
	mapsDirEntry     *widget.Entry
	maxParallelEntry *widget.Entry
	languageSelect   *widget.Select
	allowMetered     *widget.Check

	languageCodes map[string]string // label -> code
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localizer l10n.Localizer, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:  settings,
		localizer: localizer,
		window:    window,
		onSaved:   onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localizer l10n.Localizer, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localizer, window, onSaved)
	sd.Show()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) text(id, fallback string) string {
	return sd.localizer.StringWithFallback(id, fallback)
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	browse := sd.text(l10n.KeyButtonBrowse, "Browse")

	sd.downloadDirEntry = widget.NewEntry()
	downloadDirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(browse, func() { sd.browseInto(sd.downloadDirEntry) }), sd.downloadDirEntry)

	sd.mapsDirEntry = widget.NewEntry()
	mapsDirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(browse, func() { sd.browseInto(sd.mapsDirEntry) }), sd.mapsDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(strconv.Itoa(config.MinParallel) + "-" + strconv.Itoa(config.MaxParallel))

	sd.languageCodes = make(map[string]string)
	labels := make([]string, 0)
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[label] = code
		labels = append(labels, label)
	}
	sort.Strings(labels)
	sd.languageSelect = widget.NewSelect(labels, nil)

	sd.allowMetered = widget.NewCheck(sd.text(l10n.KeySettingsAllowMetered, "Allow metered networks by default"), nil)

	form := container.NewVBox(
		widget.NewLabel(sd.text(l10n.KeySettingsDownloadDirectory, "Download directory")),
		downloadDirRow,

		widget.NewLabel(sd.text(l10n.KeySettingsMapsDirectory, "Offline maps directory")),
		mapsDirRow,

		widget.NewLabel(sd.text(l10n.KeySettingsMaxParallel, "Max parallel downloads")),
		sd.maxParallelEntry,

		widget.NewSeparator(),

		widget.NewLabel(sd.text(l10n.KeySettingsLanguage, "Language")),
		sd.languageSelect,
		sd.allowMetered,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.text(l10n.KeyButtonSettings, "Settings"),
		sd.text(l10n.KeyButtonSave, "Save"),
		sd.text(l10n.KeyButtonCancel, "Cancel"),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogH))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.mapsDirEntry.SetText(sd.settings.GetMapsDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.allowMetered.SetChecked(sd.settings.GetAllowMeteredDefault())
}

// browseInto lets the user pick a folder for entry
func (sd *SettingsDialog) browseInto(entry *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		entry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply writes the form values to the settings
func (sd *SettingsDialog) apply() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}
	if dir := sd.mapsDirEntry.Text; dir != "" {
		sd.settings.SetMapsDirectory(dir)
	}
	if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelDownloads(maxParallel)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetAllowMeteredDefault(sd.allowMetered.Checked)
}
