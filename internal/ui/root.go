package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/map-downloader/internal/config"
	"github.com/ytget/map-downloader/internal/download"
	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/model"
	"github.com/ytget/map-downloader/internal/permission"
	"github.com/ytget/map-downloader/internal/platform"
	"github.com/ytget/map-downloader/internal/registry"
	"github.com/ytget/map-downloader/internal/storage"
	"github.com/ytget/map-downloader/internal/workflow"
)

// RootUI represents the main UI structure
type RootUI struct {
	window      fyne.Window
	app         fyne.App
	settings    *config.Settings
	localizer   l10n.Localizer
	storage     storage.Storage
	permission  permission.Requester
	presenter   *DialogPresenter
	downloadSvc download.Downloader
	registry    registry.Registry

	urlEntry    *widget.Entry
	sizeEntry   *widget.Entry
	typeSelect  *widget.Select
	downloadBtn *widget.Button
	checkBtn    *widget.Button
	pendingList *PendingList
	lastFlow    *workflow.Flow

	// UI update debouncing
	lastUIUpdate  map[int64]time.Time
	uiUpdateMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationTimer     *time.Timer
}

// NewRootUI creates and initializes the main UI. downloadSvc and reg may
// be nil when no download manager or registry is available.
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader, reg registry.Registry) *RootUI {
	settings := config.NewSettings(app)
	opts := settings.Options()

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		storage:      storage.NewLocal(),
		permission:   permission.NewDesktop(opts.MapsDir),
		downloadSvc:  downloadSvc,
		registry:     reg,
		lastUIUpdate: make(map[int64]time.Time),
	}
	ui.localizer = ui.loadLocalizer(opts.Language)
	ui.presenter = NewDialogPresenter(window, ui.showNotification)

	window.SetTitle(ui.text(l10n.KeyAppTitle, "Offline Map Downloader"))

	if downloadSvc != nil {
		downloadSvc.SetUpdateCallback(ui.onTaskUpdate)
		downloadSvc.SetNotifier(ui.sendSystemNotification)
	}

	ui.setupUI()
	ui.reloadPending()

	logger.Info("main window ready", logger.Fields{
		"language":        opts.Language,
		"download_dir":    opts.DownloadDir,
		"maps_dir":        opts.MapsDir,
		"manager_present": downloadSvc != nil,
	})
	return ui
}

func (ui *RootUI) loadLocalizer(code string) l10n.Localizer {
	catalog, err := l10n.Load(code, ui.storage)
	if err != nil {
		logger.Error("failed to load translations", logger.Fields{"language": code, "error": err})
		return l10n.NoContext(ui.storage)
	}
	return catalog
}

func (ui *RootUI) text(id, fallback string, params ...any) string {
	return ui.localizer.StringWithFallback(id, fallback, params...)
}

// deps collects the collaborators of a workflow run from the current settings
func (ui *RootUI) deps() workflow.Deps {
	opts := ui.settings.Options()
	deps := workflow.Deps{
		Presenter:           ui.presenter,
		Permission:          ui.permission,
		Storage:             ui.storage,
		Localizer:           ui.localizer,
		Folder:              opts.MapsFolder(),
		DownloadDir:         opts.DownloadDir,
		AllowMeteredDefault: opts.AllowMeteredDefault,
	}
	if ui.downloadSvc != nil {
		deps.Manager = ui.downloadSvc
	}
	if ui.registry != nil {
		deps.Registry = ui.registry
	}
	return deps
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.Validator = validateMapURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.sizeEntry = widget.NewEntry()

	ui.typeSelect = widget.NewSelect(mapTypeOptions(), nil)
	ui.typeSelect.SetSelectedIndex(0)

	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.checkBtn = widget.NewButton("", ui.onCheckDirectory)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	urlRow := container.NewBorder(nil, nil, settingsBtn, ui.downloadBtn, ui.urlEntry)
	detailsRow := adaptiveRow(ui.sizeEntry, ui.typeSelect, ui.checkBtn)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.pendingList = NewPendingList(ui.localizer, ui.onRemovePending)

	top := container.NewVBox(urlRow, detailsRow, ui.notificationContainer)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.pendingList.Container()))

	ui.refreshUITexts()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.text(l10n.KeyButtonSettings, "Settings"), ui.onShowSettings)
	checkItem := fyne.NewMenuItem(ui.text(l10n.KeyButtonCheckDirectory, "Check map folder"), ui.onCheckDirectory)
	openItem := fyne.NewMenuItem(ui.text(l10n.KeyButtonOpenFolder, "Open downloads folder"), ui.onOpenDownloads)

	languageMenu := fyne.NewMenu(ui.text(l10n.KeySettingsLanguage, "Language"))
	current := ui.settings.GetLanguage()
	for _, code := range languageCodes() {
		langCode := code
		item := fyne.NewMenuItem(ui.settings.GetLanguageOptions()[code], func() {
			ui.onLanguageChange(langCode)
		})
		item.Checked = code == current
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.text(l10n.KeyAppTitle, "Offline Map Downloader"), checkItem, openItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(code string) {
	ui.settings.SetLanguage(code)
	ui.applyLanguage()
}

func (ui *RootUI) applyLanguage() {
	ui.localizer = ui.loadLocalizer(ui.settings.GetLanguage())
	ui.pendingList.SetLocalizer(ui.localizer)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.text(l10n.KeyAppTitle, "Offline Map Downloader"))
	ui.urlEntry.SetPlaceHolder(ui.text(l10n.KeyEnterMapURL, "Map file URL"))
	ui.sizeEntry.SetPlaceHolder(ui.text(l10n.KeySizeInfo, "Size"))
	ui.typeSelect.PlaceHolder = ui.text(l10n.KeyMapType, "Map type")
	ui.typeSelect.Refresh()
	ui.downloadBtn.SetText(ui.text(l10n.KeyButtonDownload, "Download"))
	ui.checkBtn.SetText(IconFolder + " " + ui.text(l10n.KeyButtonCheckDirectory, "Check map folder"))
}

// selection returns what the form currently describes
func (ui *RootUI) selection() model.Selection {
	return model.Selection{
		URI:      strings.TrimSpace(ui.urlEntry.Text),
		SizeInfo: strings.TrimSpace(ui.sizeEntry.Text),
		TypeID:   ui.typeSelect.SelectedIndex(),
	}
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	sel := ui.selection()
	if err := validateMapURL(sel.URI); err != nil {
		ui.showNotification(ui.text(l10n.KeyInvalidURL, "Invalid URL")+": "+err.Error(), false)
		return
	}

	if sel.TypeID < 0 {
		sel.TypeID = int(model.MapTypeDefault)
	}
	if !sel.HasChoice() {
		ui.showNotification(ui.text(l10n.KeyPleaseEnterURL, "Please enter a map URL"), false)
		return
	}

	var flow *workflow.Flow
	flow = workflow.Run(ui.deps(), model.RequestFromSelection(sel), func() {
		ui.onFlowDone(flow)
	})
	ui.lastFlow = flow
}

// onFlowDone clears the form once a download was enqueued
func (ui *RootUI) onFlowDone(flow *workflow.Flow) {
	if flow != nil && flow.EnqueuedID() != 0 {
		ui.urlEntry.SetText("")
		ui.sizeEntry.SetText("")
	}
	ui.reloadPending()
}

// onCheckDirectory runs the readiness check without a download
func (ui *RootUI) onCheckDirectory() {
	workflow.CheckDirectory(ui.deps(), false, func(folder storage.Folder, ready bool) {
		if !ready {
			return
		}
		msg := ui.localizer.Pair(l10n.KeyDownloadMapReady, "Offline maps folder is ready", l10n.Folder(folder))
		logger.Info(msg.Log)
		ui.showNotification(msg.User, true)
	})
}

// onOpenDownloads reveals the downloads folder in the file manager
func (ui *RootUI) onOpenDownloads() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.OpenFolder(dir); err != nil {
		logger.Warn("failed to open folder", logger.Fields{"path": dir, "error": err})
		ui.showNotification(err.Error(), false)
	}
}

// reloadPending reads the registry into the pending list
func (ui *RootUI) reloadPending() {
	if ui.registry == nil {
		return
	}
	records, err := ui.registry.All()
	if err != nil {
		logger.Error("failed to read pending downloads", logger.Fields{"error": err})
		return
	}
	ui.pendingList.SetRecords(records)
	if ui.downloadSvc != nil {
		for _, rec := range records {
			if task, ok := ui.downloadSvc.GetTask(rec.ID); ok {
				ui.pendingList.UpdateTask(task)
			}
		}
	}
}

// onRemovePending cancels the transfer and forgets the record
func (ui *RootUI) onRemovePending(id int64) {
	if ui.downloadSvc != nil {
		if err := ui.downloadSvc.Remove(id); err != nil && !errors.Is(err, download.ErrTaskNotFound) {
			logger.Warn("failed to cancel transfer", logger.Fields{"id": id, "error": err})
		}
	}
	ui.forgetPending(id)
}

func (ui *RootUI) forgetPending(id int64) {
	if ui.registry != nil {
		if err := ui.registry.Remove(id); err != nil && !errors.Is(err, registry.ErrNotFound) {
			logger.Error("failed to remove pending download", logger.Fields{"id": id, "error": err})
		}
	}
	ui.pendingList.Remove(id)
}

// shouldRefresh limits progress refreshes per task; state changes always pass
func (ui *RootUI) shouldRefresh(task model.DownloadTask) bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	if task.Status.IsFinished() {
		delete(ui.lastUIUpdate, task.ID)
		return true
	}
	now := time.Now()
	if last, ok := ui.lastUIUpdate[task.ID]; ok && task.Status == model.TaskStatusRunning && now.Sub(last) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate[task.ID] = now
	return true
}

// onTaskUpdate handles task updates from the download service. It runs on
// the service's goroutines.
func (ui *RootUI) onTaskUpdate(task model.DownloadTask) {
	if !ui.shouldRefresh(task) {
		return
	}

	fyne.Do(func() {
		ui.pendingList.UpdateTask(task)
		if !task.Status.IsFinished() {
			return
		}

		logger.Info("pending download finished", logger.Fields{"id": task.ID, "status": task.Status.String()})
		switch task.Status {
		case model.TaskStatusSuccessful:
			ui.showNotification(ui.text(l10n.KeyDownloadCompleted, "Download completed")+": "+task.GetDisplayTitle(), true)
		case model.TaskStatusFailed:
			ui.showNotification(ui.text(l10n.KeyDownloadFailed, "Download failed", task.GetDisplayTitle(), task.LastError), false)
		}
		ui.forgetPending(task.ID)
	})
}

// sendSystemNotification sends a system notification for completed downloads
func (ui *RootUI) sendSystemNotification(title, content string) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.text(l10n.KeyDownloadCompleted, "Download completed") + ": " + title,
		Content: content,
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	before := ui.settings.Options()
	ShowSettingsDialog(ui.window, ui.settings, ui.localizer, func() {
		after := ui.settings.Options()
		if ui.downloadSvc != nil && after.MaxParallel != before.MaxParallel {
			ui.downloadSvc.SetMaxParallelDownloads(after.MaxParallel)
		}
		if after.MapsDir != before.MapsDir {
			ui.permission = permission.NewDesktop(after.MapsDir)
		}
		if after.Language != before.Language {
			ui.applyLanguage()
		}
		ui.showNotification(ui.text(l10n.KeySettingsSaved, "Settings saved"), true)
	})
}

// showNotification displays a message in the panel under the form and hides
// it again after a while.
func (ui *RootUI) showNotification(message string, short bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}
	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()

	duration := LongNoticeDuration
	if short {
		duration = ShortNoticeDuration
	}
	if ui.notificationTimer != nil {
		ui.notificationTimer.Stop()
	}
	ui.notificationTimer = time.AfterFunc(duration, func() {
		fyne.Do(ui.hideNotification)
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	ui.notificationContainer.Hide()
}

// validateMapURL accepts empty input and absolute http(s) URLs
func validateMapURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// mapTypeOptions lists the map type names in code order
func mapTypeOptions() []string {
	types := model.MapTypes()
	options := make([]string, len(types))
	for i, mt := range types {
		options[i] = mt.String()
	}
	return options
}

func languageCodes() []string {
	return []string{l10n.LanguageSystem, "en", "de", "ru"}
}
