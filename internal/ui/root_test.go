package ui

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/map-downloader/internal/config"
	"github.com/ytget/map-downloader/internal/download"
	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/model"
	"github.com/ytget/map-downloader/internal/permission"
	"github.com/ytget/map-downloader/internal/registry"
	"github.com/ytget/map-downloader/internal/workflow"
)

func TestValidateMapURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"   ", false},
		{"https://download.example.org/maps/region1.map", false},
		{"http://example.org/a.map", false},
		{"ftp://example.org/a.map", true},
		{"example.org/a.map", true},
		{"https://", true},
	}

	for _, tt := range tests {
		err := validateMapURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateMapURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestMapTypeOptions(t *testing.T) {
	options := mapTypeOptions()
	if len(options) != 4 {
		t.Fatalf("Expected 4 map types, got %d", len(options))
	}
	for i, name := range options {
		if mt, ok := model.ParseMapType(name); !ok || int(mt) != i {
			t.Errorf("Option %d (%s) does not map back to its code", i, name)
		}
	}
}

func newTestRoot(t *testing.T) (*RootUI, *registry.Memory) {
	t.Helper()
	app := test.NewApp()
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	settings := config.NewSettings(app)
	settings.SetLanguage("en")
	settings.SetDownloadDirectory(t.TempDir())
	settings.SetMapsDirectory(t.TempDir())

	reg := registry.NewMemory()
	return NewRootUI(w, app, download.NewService(1), reg), reg
}

func TestRootUIEmptySelection(t *testing.T) {
	ui, _ := newTestRoot(t)

	ui.onDownloadClick()

	if !ui.notificationContainer.Visible() {
		t.Fatal("Expected notice for empty URL")
	}
	if ui.notificationLabel.Text != "Please enter a map URL" {
		t.Errorf("Unexpected notice %q", ui.notificationLabel.Text)
	}
	if ui.presenter.current != nil {
		t.Error("Expected no confirmation dialog")
	}
}

func TestRootUIInvalidURL(t *testing.T) {
	ui, _ := newTestRoot(t)

	ui.urlEntry.SetText("ftp://example.org/a.map")
	ui.onDownloadClick()

	if ui.presenter.current != nil {
		t.Error("Expected no confirmation dialog for invalid URL")
	}
	if !ui.notificationContainer.Visible() {
		t.Error("Expected notice for invalid URL")
	}
}

func TestRootUIShowsConfirmation(t *testing.T) {
	ui, _ := newTestRoot(t)

	ui.urlEntry.SetText("https://download.example.org/maps/region1.map")
	ui.sizeEntry.SetText("12 MB")
	ui.typeSelect.SetSelectedIndex(int(model.MapTypeMapsforge))

	sel := ui.selection()
	if sel.TypeID != int(model.MapTypeMapsforge) || sel.SizeInfo != "12 MB" {
		t.Errorf("Unexpected selection %+v", sel)
	}

	ui.onDownloadClick()
	if ui.presenter.current == nil {
		t.Error("Expected confirmation dialog")
	}
}

// blockMapsDir points the maps directory below a regular file so the
// folder cannot be created.
func blockMapsDir(t *testing.T, ui *RootUI) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	ui.settings.SetMapsDirectory(filepath.Join(file, "maps"))
	ui.permission = permission.Static(true)
}

func TestRootUIDownloadChecksFolderFirst(t *testing.T) {
	ui, reg := newTestRoot(t)
	blockMapsDir(t, ui)

	ui.urlEntry.SetText("https://download.example.org/maps/region1.map")
	ui.onDownloadClick()

	if ui.lastFlow == nil || ui.lastFlow.State() != workflow.StateAwaitingFolderDecision {
		t.Fatalf("Expected folder decision prompt, got %+v", ui.lastFlow)
	}
	if ui.window.Canvas().Overlays().Top() == nil {
		t.Error("Expected Continue/Cancel dialog to be shown")
	}
	if ui.presenter.current != nil {
		t.Error("Expected no download confirmation before the folder decision")
	}

	ui.lastFlow.Send(workflow.FolderDecision{Continue: false})

	if ui.lastFlow.State() != workflow.StateDone {
		t.Errorf("Expected flow to finish, got %s", ui.lastFlow.State())
	}
	if ui.presenter.current != nil {
		t.Error("Expected no download confirmation after cancel")
	}
	if records, _ := reg.All(); len(records) != 0 {
		t.Errorf("Expected no pending records, got %v", records)
	}
}

func TestRootUIDownloadContinueWithBlockedFolder(t *testing.T) {
	ui, _ := newTestRoot(t)
	blockMapsDir(t, ui)

	ui.urlEntry.SetText("https://download.example.org/maps/region1.map")
	ui.onDownloadClick()
	ui.lastFlow.Send(workflow.FolderDecision{Continue: true})

	if ui.lastFlow.State() != workflow.StateAwaitingUserConfirmation {
		t.Errorf("Expected download confirmation, got %s", ui.lastFlow.State())
	}
	if ui.presenter.current == nil {
		t.Error("Expected confirmation dialog")
	}
}

func TestRootUICancelKeepsForm(t *testing.T) {
	ui, _ := newTestRoot(t)

	ui.urlEntry.SetText("https://download.example.org/maps/region1.map")
	ui.sizeEntry.SetText("12 MB")
	ui.onDownloadClick()
	ui.lastFlow.Send(workflow.ConfirmDecision{Accepted: false})

	if !ui.lastFlow.Declined() {
		t.Fatal("Expected flow to be declined")
	}
	if ui.urlEntry.Text != "https://download.example.org/maps/region1.map" || ui.sizeEntry.Text != "12 MB" {
		t.Errorf("Expected form to be kept, got %q %q", ui.urlEntry.Text, ui.sizeEntry.Text)
	}
}

func TestRootUIAcceptClearsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("map"))
	}))
	defer server.Close()

	ui, _ := newTestRoot(t)

	ui.urlEntry.SetText(server.URL + "/maps/region1.map")
	ui.sizeEntry.SetText("12 MB")
	ui.onDownloadClick()
	ui.lastFlow.Send(workflow.ConfirmDecision{Accepted: true})

	if ui.lastFlow.EnqueuedID() == 0 {
		t.Fatal("Expected download to be enqueued")
	}
	if ui.urlEntry.Text != "" || ui.sizeEntry.Text != "" {
		t.Errorf("Expected form to be cleared, got %q %q", ui.urlEntry.Text, ui.sizeEntry.Text)
	}
}

func TestRootUIPendingRecords(t *testing.T) {
	ui, reg := newTestRoot(t)

	if err := reg.Add(model.PendingDownload{ID: 11, Filename: "region1.map"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	ui.reloadPending()
	if ui.pendingList.Len() != 1 {
		t.Fatalf("Expected one pending row, got %d", ui.pendingList.Len())
	}

	ui.onRemovePending(11)
	if ui.pendingList.Len() != 0 {
		t.Error("Expected row to be removed")
	}
	if _, err := reg.Get(11); err == nil {
		t.Error("Expected record to be removed from the registry")
	}
}

func TestRootUILanguageChange(t *testing.T) {
	ui, _ := newTestRoot(t)

	ui.onLanguageChange("de")

	if ui.settings.GetLanguage() != "de" {
		t.Errorf("Expected language de, got %s", ui.settings.GetLanguage())
	}
	if got, want := ui.downloadBtn.Text, ui.localizer.String(l10n.KeyButtonDownload); got != want {
		t.Errorf("Expected button text %q, got %q", want, got)
	}
	if !ui.localizer.HasContext() {
		t.Error("Expected catalog backed localizer")
	}
}

func TestShouldRefreshDebounce(t *testing.T) {
	ui, _ := newTestRoot(t)

	running := model.DownloadTask{ID: 1, Status: model.TaskStatusRunning}
	if !ui.shouldRefresh(running) {
		t.Error("Expected first update to pass")
	}
	if ui.shouldRefresh(running) {
		t.Error("Expected immediate second progress update to be skipped")
	}
	if !ui.shouldRefresh(model.DownloadTask{ID: 1, Status: model.TaskStatusSuccessful}) {
		t.Error("Expected final update to pass")
	}
}
