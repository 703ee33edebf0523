package workflow

import (
	"github.com/google/uuid"

	"github.com/ytget/map-downloader/internal/download"
	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/model"
	"github.com/ytget/map-downloader/internal/permission"
	"github.com/ytget/map-downloader/internal/storage"
)

// Recorder stores pending downloads. registry.Registry satisfies it.
type Recorder interface {
	Add(rec model.PendingDownload) error
}

// Deps are the collaborators of a flow. Manager and Registry may be nil:
// a nil Manager means no download manager is available on this device.
type Deps struct {
	Presenter  Presenter
	Permission permission.Requester
	Storage    storage.Storage
	Localizer  l10n.Localizer
	Manager    download.Manager
	Registry   Recorder

	// Folder is the offline maps folder checked for readiness
	Folder storage.Folder

	// DownloadDir receives the downloaded files
	DownloadDir string

	// AllowMeteredDefault presets the metered network checkbox
	AllowMeteredDefault bool
}

type mode int

const (
	modeCheck mode = iota
	modeConfirm
	modeFull
)

// Flow is one run of the download workflow. It is not safe for concurrent
// use; deliver all messages from the same goroutine.
type Flow struct {
	id             string
	deps           Deps
	mode           mode
	beforeDownload bool
	request        model.DownloadRequest
	state          State
	onResult       func(folder storage.Folder, ready bool)
	onDone         func()
	enqueuedID     int64
	declined       bool

	queue    []Message
	handling bool
}

func newFlow(deps Deps, m mode) *Flow {
	if deps.Localizer == nil {
		deps.Localizer = l10n.NoContext(deps.Storage)
	}
	return &Flow{
		id:   uuid.NewString(),
		deps: deps,
		mode: m,
	}
}

// ID returns the correlation id used in log records
func (f *Flow) ID() string { return f.id }

// State returns the current state
func (f *Flow) State() State { return f.state }

// EnqueuedID returns the download manager id of the enqueued transfer, or 0
// when nothing was enqueued (yet).
func (f *Flow) EnqueuedID() int64 { return f.enqueuedID }

// Declined reports whether the user cancelled the download confirmation.
func (f *Flow) Declined() bool { return f.declined }

// Send delivers a message. Messages sent while another one is being
// handled are queued.
func (f *Flow) Send(msg Message) {
	f.queue = append(f.queue, msg)
	if f.handling {
		return
	}

	f.handling = true
	defer func() { f.handling = false }()
	for len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		f.handle(next)
	}
}

func (f *Flow) handle(msg Message) {
	switch m := msg.(type) {
	case PermissionResult:
		if f.state == StateAwaitingPermission {
			f.onPermission(m.Granted)
			return
		}
	case FolderDecision:
		if f.state == StateAwaitingFolderDecision {
			f.finishReadiness(m.Continue)
			return
		}
	case ConfirmDecision:
		if f.state == StateAwaitingUserConfirmation {
			f.onConfirm(m)
			return
		}
	}
	logger.Warn("message ignored", logger.Fields{"flow": f.id, "state": f.state.String(), "message": msg})
}

func (f *Flow) setState(s State) {
	logger.Debug("flow transition", logger.Fields{"flow": f.id, "from": f.state.String(), "to": s.String()})
	f.state = s
}

func (f *Flow) requestPermission() {
	f.setState(StateAwaitingPermission)
	f.deps.Permission.RequestStorage(func(granted bool) {
		f.Send(PermissionResult{Granted: granted})
	})
}

func (f *Flow) onPermission(granted bool) {
	if !granted {
		logger.Info("storage permission denied", logger.Fields{"flow": f.id})
		f.finishReadiness(false)
		return
	}

	if f.deps.Storage.EnsureFolder(f.deps.Folder) {
		f.finishReadiness(true)
		return
	}

	l := f.deps.Localizer
	msg := l.Pair(l10n.KeyDownloadMapTargetNotWritable, "Offline maps folder is not writable", l10n.Folder(f.deps.Folder))
	logger.Warn(msg.Log, logger.Fields{"flow": f.id, "before_download": f.beforeDownload})

	f.setState(StateAwaitingFolderDecision)
	title := l.StringWithFallback(l10n.KeyDownloadMapTitle, "Download offline map")
	if f.beforeDownload {
		f.deps.Presenter.Confirm(Prompt{
			Title:        title,
			Message:      msg.User,
			ConfirmLabel: l.StringWithFallback(l10n.KeyButtonContinue, "Continue"),
			DismissLabel: l.StringWithFallback(l10n.KeyButtonCancel, "Cancel"),
		}, func(accepted bool) {
			f.Send(FolderDecision{Continue: accepted})
		})
		return
	}

	f.deps.Presenter.Inform(Prompt{
		Title:        title,
		Message:      msg.User,
		ConfirmLabel: l.StringWithFallback(l10n.KeyButtonOK, "OK"),
	}, func() {
		f.Send(FolderDecision{Continue: false})
	})
}

func (f *Flow) finishReadiness(ready bool) {
	logger.Info("directory readiness", logger.Fields{"flow": f.id, "folder": f.deps.Folder.Name, "ready": ready})

	switch f.mode {
	case modeCheck:
		f.setState(StateDone)
		if f.onResult != nil {
			f.onResult(f.deps.Folder, ready)
		}
	case modeFull:
		if !ready {
			f.setState(StateDone)
			return
		}
		f.showConfirmation()
	default:
		f.setState(StateDone)
	}
}

func (f *Flow) showConfirmation() {
	l := f.deps.Localizer
	req := f.request

	f.setState(StateAwaitingUserConfirmation)
	f.deps.Presenter.ConfirmDownload(Prompt{
		Title:        l.StringWithFallback(l10n.KeyDownloadMapTitle, "Download offline map"),
		Message:      l.StringWithFallback(l10n.KeyDownloadMapConfirmation, "Download map file", req.Filename(), req.SizeInfo()),
		ConfirmLabel: l.StringWithFallback(l10n.KeyButtonDownload, "Download"),
		DismissLabel: l.StringWithFallback(l10n.KeyButtonCancel, "Cancel"),
	},
		l.StringWithFallback(l10n.KeyAllowMeteredNetwork, "Allow metered network"),
		f.deps.AllowMeteredDefault,
		func(accepted, allowMetered bool) {
			f.Send(ConfirmDecision{Accepted: accepted, AllowMetered: allowMetered})
		})
}

func (f *Flow) onConfirm(d ConfirmDecision) {
	if d.Accepted {
		f.setState(StateEnqueuing)
		f.enqueue(d.AllowMetered)
	} else {
		f.declined = true
		logger.Info("map download cancelled", logger.Fields{"flow": f.id, "file": f.request.Filename()})
	}

	f.deps.Presenter.Dismiss()
	f.setState(StateDone)
	if f.onDone != nil {
		f.onDone()
	}
}

// enqueue hands the request to the download manager and records it
func (f *Flow) enqueue(allowMetered bool) {
	l := f.deps.Localizer
	req := f.request

	spec := model.EnqueueSpec{
		URI:                req.URI(),
		Title:              req.Filename(),
		Description:        l.StringWithFallback(l10n.KeyDownloadMapFilename, "Offline map file", req.Filename()),
		Visibility:         model.VisibilityVisibleNotifyCompleted,
		DestinationDir:     f.deps.DownloadDir,
		DestinationName:    req.Filename(),
		AllowedOverMetered: allowMetered,
		AllowedOverRoaming: allowMetered,
	}
	logger.Info("map download enqueued", logger.Fields{
		"flow":        f.id,
		"uri":         spec.URI,
		"destination": spec.Destination(),
		"metered":     allowMetered,
	})

	notAvailable := l.StringWithFallback(l10n.KeyDownloadManagerNotAvailable, "Download manager not available")
	if f.deps.Manager == nil {
		logger.Warn("no download manager", logger.Fields{"flow": f.id})
		f.deps.Presenter.Notify(notAvailable, false)
		return
	}

	id, err := f.deps.Manager.Enqueue(spec)
	if err != nil || id == 0 {
		logger.Error("enqueue failed", logger.Fields{"flow": f.id, "error": err, "id": id})
		f.deps.Presenter.Notify(notAvailable, false)
		return
	}
	f.enqueuedID = id

	if f.deps.Registry != nil {
		if err := f.deps.Registry.Add(model.NewPendingDownload(id, req)); err != nil {
			logger.Error("failed to record pending download", logger.Fields{"flow": f.id, "id": id, "error": err})
		} else {
			logger.Debug("pending download recorded", logger.Fields{"flow": f.id, "id": id})
		}
	}

	f.deps.Presenter.Notify(l.StringWithFallback(l10n.KeyDownloadStarted, "Download started"), true)
}
