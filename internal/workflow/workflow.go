package workflow

import (
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/model"
	"github.com/ytget/map-downloader/internal/storage"
)

// CheckDirectory requests storage permission and checks that the offline
// maps folder accepts new files. onResult is called exactly once. When the
// folder is not usable and beforeDownload is set the user decides whether
// to continue anyway; otherwise an information dialog is shown and the
// result is false.
func CheckDirectory(deps Deps, beforeDownload bool, onResult func(folder storage.Folder, ready bool)) *Flow {
	f := newFlow(deps, modeCheck)
	f.beforeDownload = beforeDownload
	f.onResult = onResult
	f.requestPermission()
	return f
}

// ConfirmAndDownload asks the user to confirm req and enqueues it on
// acceptance. onDone, if set, runs once after the dialog was dismissed.
func ConfirmAndDownload(deps Deps, req model.DownloadRequest, onDone func()) *Flow {
	f := newFlow(deps, modeConfirm)
	f.request = req
	f.onDone = onDone
	f.showConfirmation()
	return f
}

// Run performs the complete flow for req: permission, readiness, then
// confirmation. onDone is not called when the folder turns out not ready.
func Run(deps Deps, req model.DownloadRequest, onDone func()) *Flow {
	f := newFlow(deps, modeFull)
	f.beforeDownload = true
	f.request = req
	f.onDone = onDone
	f.requestPermission()
	return f
}

// HandleSelection starts a confirmation for the selected map file. It
// returns false, and does nothing, when the selection is empty.
func HandleSelection(deps Deps, sel model.Selection, onDone func()) bool {
	if !sel.HasChoice() {
		logger.Debug("selection without map file ignored")
		return false
	}
	ConfirmAndDownload(deps, model.RequestFromSelection(sel), onDone)
	return true
}
