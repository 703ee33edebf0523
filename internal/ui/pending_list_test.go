package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/model"
)

func TestPendingList(t *testing.T) {
	test.NewApp()

	var removed []int64
	pl := NewPendingList(l10n.NoContext(nil), func(id int64) { removed = append(removed, id) })

	if pl.Len() != 0 {
		t.Fatalf("Expected empty list, got %d", pl.Len())
	}
	if !pl.empty.Visible() {
		t.Error("Expected empty label to be visible")
	}

	pl.SetRecords([]model.PendingDownload{
		{ID: 7, Filename: "b.map", Type: model.MapTypeMapsforge},
		{ID: 3, Filename: "a.map"},
	})
	if pl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", pl.Len())
	}
	if pl.rows[0].record.ID != 3 {
		t.Errorf("Expected rows sorted by id, first is %d", pl.rows[0].record.ID)
	}
	if pl.empty.Visible() {
		t.Error("Expected empty label to be hidden")
	}
	if !strings.Contains(pl.header.Text, "2 pending") {
		t.Errorf("Unexpected header %q", pl.header.Text)
	}

	pl.UpdateTask(model.DownloadTask{ID: 7, Status: model.TaskStatusRunning, Percent: 40, BytesDone: 40, BytesTotal: 100})
	if !pl.rows[1].hasTask {
		t.Error("Expected task state to be attached")
	}

	// transfer state survives a reload
	pl.SetRecords([]model.PendingDownload{{ID: 7, Filename: "b.map", Type: model.MapTypeMapsforge}})
	if !pl.rows[0].hasTask {
		t.Error("Expected task state to survive SetRecords")
	}

	pl.Remove(7)
	if pl.Len() != 0 {
		t.Errorf("Expected empty list after remove, got %d", pl.Len())
	}
}

func TestRowText(t *testing.T) {
	tests := []struct {
		name       string
		row        pendingRow
		wantDetail string
	}{
		{
			name:       "no transfer",
			row:        pendingRow{record: model.PendingDownload{Filename: "a.map"}},
			wantDetail: "DEFAULT · —",
		},
		{
			name: "running",
			row: pendingRow{
				record:  model.PendingDownload{Filename: "a.map", Type: model.MapTypeOpenAndroMaps},
				task:    model.DownloadTask{Status: model.TaskStatusRunning, Percent: 50, BytesDone: 512, BytesTotal: 1024},
				hasTask: true,
			},
			wantDetail: "OPENANDROMAPS · Running · 50% · 512 B / 1.0 KiB",
		},
		{
			name: "failed",
			row: pendingRow{
				record:  model.PendingDownload{Filename: "a.map"},
				task:    model.DownloadTask{Status: model.TaskStatusFailed, LastError: "unexpected status: 404 Not Found"},
				hasTask: true,
			},
			wantDetail: "DEFAULT · Failed · unexpected status: 404 Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, detail := rowText(tt.row)
			if title != "a.map" {
				t.Errorf("Expected title a.map, got %q", title)
			}
			if detail != tt.wantDetail {
				t.Errorf("Expected detail %q, got %q", tt.wantDetail, detail)
			}
		})
	}
}
