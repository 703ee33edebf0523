package download

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ytget/map-downloader/internal/model"
)

func waitForStatus(t *testing.T, service *Service, id int64, want model.TaskStatus) model.DownloadTask {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		task, ok := service.GetTask(id)
		if ok && task.Status == want {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	task, _ := service.GetTask(id)
	t.Fatalf("task %d did not reach %s, last status %s (%s)", id, want, task.Status, task.LastError)
	return task
}

func testSpec(uri, dir string) model.EnqueueSpec {
	return model.EnqueueSpec{
		URI:             uri,
		Title:           "region1.map",
		Description:     "Offline map region1.map",
		Visibility:      model.VisibilityVisibleNotifyCompleted,
		DestinationDir:  dir,
		DestinationName: "region1.map",
	}
}

func TestNewService(t *testing.T) {
	service := NewService(2)

	if service.maxParallel != 2 {
		t.Errorf("Expected maxParallel to be 2, got %d", service.maxParallel)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}

	if NewService(0).maxParallel != 1 {
		t.Error("Expected maxParallel to be clamped to 1")
	}
}

func withName(spec model.EnqueueSpec, name string) model.EnqueueSpec {
	spec.DestinationName = name
	spec.Title = name
	return spec
}

func TestEnqueueRejectsInvalidSpec(t *testing.T) {
	service := NewService(1)
	dir := t.TempDir()

	tests := []struct {
		name string
		spec model.EnqueueSpec
	}{
		{"empty uri", testSpec("", dir)},
		{"unsupported scheme", testSpec("ftp://example.org/region1.map", dir)},
		{"missing dir", testSpec("https://example.org/region1.map", "")},
		{"missing name", model.EnqueueSpec{URI: "https://example.org/region1.map", DestinationDir: dir}},
		{"parent name", withName(testSpec("https://example.org/region1.map", dir), "..")},
		{"dot name", withName(testSpec("https://example.org/region1.map", dir), ".")},
		{"nested name", withName(testSpec("https://example.org/region1.map", dir), "../region1.map")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := service.Enqueue(tt.spec)
			if !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("Expected ErrInvalidSpec, got %v", err)
			}
			if id != 0 {
				t.Errorf("Expected id 0, got %d", id)
			}
		})
	}

	if len(service.GetAllTasks()) != 0 {
		t.Error("Expected no tasks after rejected specs")
	}
}

func TestEnqueueDownloadsFile(t *testing.T) {
	payload := []byte("mapsforge binary data")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	service := NewService(1)

	var mu sync.Mutex
	var notices []string
	service.SetNotifier(func(title, content string) {
		mu.Lock()
		defer mu.Unlock()
		notices = append(notices, title)
	})

	id, err := service.Enqueue(testSpec(server.URL+"/maps/region1.map", dir))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id == 0 {
		t.Fatal("Expected non-zero id")
	}

	task := waitForStatus(t, service, id, model.TaskStatusSuccessful)

	want := filepath.Join(dir, "region1.map")
	if task.OutputPath != want {
		t.Errorf("Expected output %s, got %s", want, task.OutputPath)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Unexpected file content %q", data)
	}
	if _, err := os.Stat(want + PartialSuffix); !os.IsNotExist(err) {
		t.Error("Expected partial file to be gone")
	}
	if task.Percent != 100 {
		t.Errorf("Expected 100%%, got %d", task.Percent)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(notices) != 1 || notices[0] != "region1.map" {
		t.Errorf("Expected one completion notice, got %v", notices)
	}
}

func TestEnqueueDotSegmentStaysInDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("map"))
	}))
	defer server.Close()

	root := t.TempDir()
	dir := filepath.Join(root, "Downloads")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	uri := server.URL + "/maps/%2E%2E"
	name := model.FilenameFromURI(uri)
	if name != model.DefaultFilename {
		t.Fatalf("Expected %s for dot segment, got %q", model.DefaultFilename, name)
	}

	service := NewService(1)
	id, err := service.Enqueue(withName(testSpec(uri, dir), name))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	task := waitForStatus(t, service, id, model.TaskStatusSuccessful)

	if filepath.Dir(task.OutputPath) != dir {
		t.Errorf("Expected output inside %s, got %s", dir, task.OutputPath)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "Downloads" {
		t.Errorf("Expected only the Downloads dir in %s, got %v", root, entries)
	}
}

func TestEnqueueHTTPErrorFails(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	dir := t.TempDir()
	service := NewService(1)

	id, err := service.Enqueue(testSpec(server.URL+"/missing.map", dir))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	task := waitForStatus(t, service, id, model.TaskStatusFailed)
	if task.LastError == "" {
		t.Error("Expected LastError to be set")
	}
	if _, err := os.Stat(filepath.Join(dir, "region1.map")); !os.IsNotExist(err) {
		t.Error("Expected no file for failed transfer")
	}
}

func TestEnqueueIDsAreUnique(t *testing.T) {
	service := NewService(1)
	service.nextID()

	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		service.tasksMutex.Lock()
		id := service.nextID()
		service.tasksMutex.Unlock()
		if seen[id] {
			t.Fatalf("Duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestParallelLimitAndRemove(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	dir := t.TempDir()
	service := NewService(1)

	first, err := service.Enqueue(testSpec(server.URL+"/a.map", dir))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	spec := testSpec(server.URL+"/b.map", dir)
	spec.DestinationName = "b.map"
	second, err := service.Enqueue(spec)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	waitForStatus(t, service, first, model.TaskStatusRunning)
	if task, _ := service.GetTask(second); task.Status != model.TaskStatusPending {
		t.Errorf("Expected second task to wait, got %s", task.Status)
	}

	if err := service.Remove(second); err != nil {
		t.Fatalf("Expected no error removing pending task, got %v", err)
	}
	waitForStatus(t, service, second, model.TaskStatusCancelled)

	if err := service.Remove(first); err != nil {
		t.Fatalf("Expected no error removing running task, got %v", err)
	}
	waitForStatus(t, service, first, model.TaskStatusCancelled)

	if err := service.Remove(first); err != nil {
		t.Fatalf("Expected finished task to be forgotten, got %v", err)
	}
	if _, ok := service.GetTask(first); ok {
		t.Error("Expected finished task to be gone")
	}

	if err := service.Remove(42); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdateCallbackReceivesFinalState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	service := NewService(1)
	done := make(chan model.DownloadTask, 8)
	service.SetUpdateCallback(func(task model.DownloadTask) {
		if task.Status.IsFinished() {
			done <- task
		}
	})

	id, err := service.Enqueue(testSpec(server.URL+"/region1.map", t.TempDir()))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	select {
	case task := <-done:
		if task.ID != id || task.Status != model.TaskStatusSuccessful {
			t.Errorf("Unexpected final update %+v", task)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for final update")
	}
}
