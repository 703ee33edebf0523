package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/model"
	"github.com/ytget/map-downloader/internal/platform"
)

const (
	// PartialSuffix marks files that are still being written
	PartialSuffix = ".part"

	progressInterval = 200 * time.Millisecond
)

type taskEntry struct {
	task   model.DownloadTask
	cancel context.CancelFunc
}

var _ Downloader = (*Service)(nil)

// Service is an HTTP download manager
type Service struct {
	tasks       map[int64]*taskEntry
	queue       []int64 // pending ids in enqueue order
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	lastID      int64
	client      *http.Client
	onUpdate    func(model.DownloadTask) // callback for UI updates
	notify      func(title, content string)
}

// NewService creates a new download service
func NewService(maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		tasks:       make(map[int64]*taskEntry),
		maxParallel: maxParallel,
		client:      &http.Client{},
	}
}

// SetHTTPClient replaces the client used for transfers
func (s *Service) SetHTTPClient(client *http.Client) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.client = client
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetNotifier sets the function that shows completion notices
func (s *Service) SetNotifier(notify func(title, content string)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.notify = notify
}

// SetMaxParallelDownloads changes the number of concurrent transfers
func (s *Service) SetMaxParallelDownloads(max int) {
	if max < 1 {
		max = 1
	}
	s.tasksMutex.Lock()
	s.maxParallel = max
	s.tasksMutex.Unlock()
	s.startPending()
}

// Enqueue validates spec, registers a task and starts it when a slot is free
func (s *Service) Enqueue(spec model.EnqueueSpec) (int64, error) {
	if err := validateSpec(spec); err != nil {
		return 0, err
	}

	s.tasksMutex.Lock()
	id := s.nextID()
	s.tasks[id] = &taskEntry{task: model.DownloadTask{
		ID:         id,
		Spec:       spec,
		Status:     model.TaskStatusPending,
		BytesTotal: -1,
		StartedAt:  time.Now(),
	}}
	s.queue = append(s.queue, id)
	snapshot := s.tasks[id].task
	s.tasksMutex.Unlock()

	logger.Info("transfer enqueued", logger.Fields{
		"id":          id,
		"uri":         spec.URI,
		"destination": spec.Destination(),
		"metered":     spec.AllowedOverMetered,
		"roaming":     spec.AllowedOverRoaming,
	})

	s.notifyUpdate(snapshot)
	s.startPending()
	return id, nil
}

// GetTask returns a snapshot of a task
func (s *Service) GetTask(id int64) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	entry, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return entry.task, true
}

// GetAllTasks returns snapshots of all tasks
func (s *Service) GetAllTasks() []model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]model.DownloadTask, 0, len(s.tasks))
	for _, entry := range s.tasks {
		tasks = append(tasks, entry.task)
	}
	return tasks
}

// Remove cancels a pending or running task. Finished tasks are forgotten.
func (s *Service) Remove(id int64) error {
	s.tasksMutex.Lock()
	entry, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	switch {
	case entry.task.Status == model.TaskStatusRunning:
		cancel := entry.cancel
		s.tasksMutex.Unlock()
		if cancel != nil {
			cancel()
		}
		return nil
	case entry.task.Status == model.TaskStatusPending:
		s.dequeue(id)
		entry.task.Status = model.TaskStatusCancelled
		entry.task.FinishedAt = time.Now()
		snapshot := entry.task
		s.tasksMutex.Unlock()
		s.notifyUpdate(snapshot)
		return nil
	default:
		delete(s.tasks, id)
		s.tasksMutex.Unlock()
		return nil
	}
}

// startPending starts queued tasks while slots are free
func (s *Service) startPending() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for s.activeCount < s.maxParallel && len(s.queue) > 0 {
		id := s.queue[0]
		s.queue = s.queue[1:]
		entry, ok := s.tasks[id]
		if !ok || entry.task.Status != model.TaskStatusPending {
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		entry.cancel = cancel
		entry.task.Status = model.TaskStatusRunning
		s.activeCount++
		go s.run(ctx, id)
	}
}

// run performs one transfer and records its outcome
func (s *Service) run(ctx context.Context, id int64) {
	s.tasksMutex.RLock()
	entry := s.tasks[id]
	spec := entry.task.Spec
	snapshot := entry.task
	s.tasksMutex.RUnlock()
	s.notifyUpdate(snapshot)

	outputPath, err := s.transfer(ctx, id, spec)

	s.tasksMutex.Lock()
	entry.cancel = nil
	entry.task.FinishedAt = time.Now()
	switch {
	case err == nil:
		entry.task.Status = model.TaskStatusSuccessful
		entry.task.Progress = 1.0
		entry.task.Percent = 100
		entry.task.OutputPath = outputPath
	case errors.Is(err, context.Canceled):
		entry.task.Status = model.TaskStatusCancelled
	default:
		entry.task.Status = model.TaskStatusFailed
		entry.task.LastError = err.Error()
	}
	s.activeCount--
	snapshot = entry.task
	notify := s.notify
	s.tasksMutex.Unlock()

	if err != nil {
		logger.Warn("transfer finished without file", logger.Fields{"id": id, "status": snapshot.Status, "error": err})
	} else {
		logger.Info("transfer completed", logger.Fields{"id": id, "path": outputPath})
		if spec.NotifiesOnCompletion() && notify != nil {
			notify(spec.Title, spec.Description)
		}
	}

	s.notifyUpdate(snapshot)
	s.startPending()
}

// transfer downloads spec.URI into a partial file and renames it on success
func (s *Service) transfer(ctx context.Context, id int64, spec model.EnqueueSpec) (string, error) {
	if err := platform.CreateDirectoryIfNotExists(spec.DestinationDir); err != nil {
		return "", fmt.Errorf("failed to create destination: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec.URI, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	s.tasksMutex.RLock()
	client := s.client
	s.tasksMutex.RUnlock()

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	destination := spec.Destination()
	partial := destination + PartialSuffix
	file, err := os.Create(partial)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	pw := &progressWriter{service: s, id: id, total: resp.ContentLength}
	s.setTotal(id, resp.ContentLength)
	_, copyErr := io.Copy(io.MultiWriter(file, pw), resp.Body)
	closeErr := file.Close()

	if copyErr != nil {
		os.Remove(partial)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to write file: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(partial)
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}
	if err := os.Rename(partial, destination); err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}
	return destination, nil
}

func (s *Service) setTotal(id int64, total int64) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	if entry, ok := s.tasks[id]; ok {
		entry.task.BytesTotal = total
	}
}

// addProgress records n more bytes and returns a snapshot
func (s *Service) addProgress(id int64, n int64) model.DownloadTask {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	entry := s.tasks[id]
	entry.task.BytesDone += n
	if entry.task.BytesTotal > 0 {
		entry.task.Progress = float64(entry.task.BytesDone) / float64(entry.task.BytesTotal)
		entry.task.Percent = int(entry.task.Progress * 100)
	}
	return entry.task
}

func (s *Service) dequeue(id int64) {
	for i, queued := range s.queue {
		if queued == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// nextID returns a millisecond timestamp based id, strictly increasing.
// Must be called with tasksMutex held.
func (s *Service) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task model.DownloadTask) {
	s.tasksMutex.RLock()
	onUpdate := s.onUpdate
	s.tasksMutex.RUnlock()
	if onUpdate != nil {
		onUpdate(task)
	}
}

func validateSpec(spec model.EnqueueSpec) error {
	u, err := url.Parse(spec.URI)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidSpec, u.Scheme)
	}
	if spec.DestinationDir == "" || spec.DestinationName == "" {
		return fmt.Errorf("%w: missing destination", ErrInvalidSpec)
	}
	if !model.IsPlainFilename(spec.DestinationName) {
		return fmt.Errorf("%w: destination name %q is not a plain filename", ErrInvalidSpec, spec.DestinationName)
	}
	return nil
}

// progressWriter counts bytes and reports progress at most every progressInterval
type progressWriter struct {
	service  *Service
	id       int64
	total    int64
	lastSent time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	snapshot := pw.service.addProgress(pw.id, int64(len(p)))
	if time.Since(pw.lastSent) >= progressInterval {
		pw.lastSent = time.Now()
		pw.service.notifyUpdate(snapshot)
	}
	return len(p), nil
}
