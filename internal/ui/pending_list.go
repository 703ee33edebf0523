package ui

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/model"
)

// pendingRow is a registry record with the live state of its transfer
type pendingRow struct {
	record  model.PendingDownload
	task    model.DownloadTask
	hasTask bool
}

// PendingList shows the pending downloads. Call its methods from the UI
// goroutine.
type PendingList struct {
	localizer l10n.Localizer
	onRemove  func(id int64)

	rows   []pendingRow
	header *widget.Label
	empty  *widget.Label
	list   *widget.List
	box    *fyne.Container
}

// NewPendingList creates the list. onRemove is called with the record id
// when the user removes a row.
func NewPendingList(localizer l10n.Localizer, onRemove func(id int64)) *PendingList {
	pl := &PendingList{
		localizer: localizer,
		onRemove:  onRemove,
	}

	pl.header = widget.NewLabel("")
	pl.header.TextStyle = fyne.TextStyle{Bold: true}
	pl.empty = widget.NewLabel("")

	pl.list = widget.NewList(
		func() int { return len(pl.rows) },
		pl.createItem,
		pl.updateItem,
	)

	pl.box = container.NewBorder(container.NewVBox(pl.header, pl.empty), nil, nil, nil, pl.list)
	pl.refresh()
	return pl
}

// Container returns the widget tree of the list
func (pl *PendingList) Container() fyne.CanvasObject {
	return pl.box
}

// SetLocalizer switches the language of the list
func (pl *PendingList) SetLocalizer(localizer l10n.Localizer) {
	pl.localizer = localizer
	pl.refresh()
}

// SetRecords replaces the rows, keeping known transfer state
func (pl *PendingList) SetRecords(records []model.PendingDownload) {
	known := make(map[int64]pendingRow, len(pl.rows))
	for _, row := range pl.rows {
		known[row.record.ID] = row
	}

	rows := make([]pendingRow, 0, len(records))
	for _, rec := range records {
		row := pendingRow{record: rec}
		if old, ok := known[rec.ID]; ok {
			row.task, row.hasTask = old.task, old.hasTask
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].record.ID < rows[j].record.ID })

	pl.rows = rows
	pl.refresh()
}

// UpdateTask attaches transfer state to the row with the same id
func (pl *PendingList) UpdateTask(task model.DownloadTask) {
	for i := range pl.rows {
		if pl.rows[i].record.ID == task.ID {
			pl.rows[i].task = task
			pl.rows[i].hasTask = true
			pl.list.RefreshItem(i)
			return
		}
	}
}

// Remove drops the row with id
func (pl *PendingList) Remove(id int64) {
	for i := range pl.rows {
		if pl.rows[i].record.ID == id {
			pl.rows = append(pl.rows[:i], pl.rows[i+1:]...)
			pl.refresh()
			return
		}
	}
}

// Len returns the number of rows
func (pl *PendingList) Len() int {
	return len(pl.rows)
}

func (pl *PendingList) refresh() {
	pl.header.SetText(pl.localizer.StringWithFallback(l10n.KeyPendingTitle, "Pending downloads") +
		MiddleDotSeparator + pl.localizer.PluralWithFallback(l10n.KeyPendingDownloads, len(pl.rows), "pending"))
	pl.empty.SetText(pl.localizer.StringWithFallback(l10n.KeyPendingEmpty, "No pending downloads"))
	if len(pl.rows) == 0 {
		pl.empty.Show()
	} else {
		pl.empty.Hide()
	}
	pl.list.Refresh()
}

func (pl *PendingList) createItem() fyne.CanvasObject {
	title := widget.NewLabel("")
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Truncation = fyne.TextTruncateEllipsis
	detail := widget.NewLabel("")
	detail.Truncation = fyne.TextTruncateEllipsis
	progress := widget.NewProgressBar()

	remove := widget.NewButton(IconClose, nil)
	remove.Importance = widget.LowImportance

	return container.NewBorder(nil, nil, nil, remove, container.NewVBox(title, detail, progress))
}

func (pl *PendingList) updateItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(pl.rows) {
		return
	}
	row := pl.rows[id]

	border := item.(*fyne.Container)
	body := border.Objects[0].(*fyne.Container)
	remove := border.Objects[1].(*widget.Button)

	title, detail := rowText(row)
	body.Objects[0].(*widget.Label).SetText(title)
	body.Objects[1].(*widget.Label).SetText(detail)

	progress := body.Objects[2].(*widget.ProgressBar)
	if row.hasTask && row.task.Status.IsActive() {
		progress.SetValue(row.task.Progress)
		progress.Show()
	} else {
		progress.Hide()
	}

	recordID := row.record.ID
	remove.OnTapped = func() {
		if pl.onRemove != nil {
			pl.onRemove(recordID)
		}
	}
}

// rowText returns the title and the detail line of a row
func rowText(row pendingRow) (string, string) {
	parts := []string{row.record.Type.String()}
	if row.hasTask {
		parts = append(parts, row.task.Status.String())
		if row.task.Status == model.TaskStatusRunning {
			parts = append(parts, fmt.Sprintf(ProgressLabelFormat, row.task.Percent), row.task.GetSizeString())
		}
		if row.task.LastError != "" {
			parts = append(parts, row.task.LastError)
		}
	} else {
		parts = append(parts, DashPlaceholder)
	}
	return row.record.Filename, strings.Join(parts, MiddleDotSeparator)
}
