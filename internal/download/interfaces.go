package download

import (
	"errors"

	"github.com/ytget/map-downloader/internal/model"
)

var (
	// ErrInvalidSpec is returned by Enqueue for specs it cannot act on
	ErrInvalidSpec = errors.New("invalid enqueue spec")

	// ErrTaskNotFound is returned for unknown task ids
	ErrTaskNotFound = errors.New("task not found")
)

// Manager accepts transfers and returns the identifier it assigned
type Manager interface {
	Enqueue(spec model.EnqueueSpec) (int64, error)
}

// Downloader is the full surface of a download manager the UI works with
type Downloader interface {
	Manager
	SetUpdateCallback(func(model.DownloadTask))
	SetNotifier(func(title, content string))
	GetTask(id int64) (model.DownloadTask, bool)
	GetAllTasks() []model.DownloadTask
	Remove(id int64) error
	SetMaxParallelDownloads(max int)
}
