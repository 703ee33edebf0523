package registry

import (
	"errors"

	"github.com/ytget/map-downloader/internal/model"
)

var (
	_ Registry = (*Bolt)(nil)
	_ Registry = (*Memory)(nil)
)

// ErrNotFound is returned when no pending download has the requested id
var ErrNotFound = errors.New("pending download not found")

// Registry keeps downloads that were handed to a download manager and have
// not finished yet. Implementations are safe for concurrent use.
type Registry interface {
	Add(rec model.PendingDownload) error
	Get(id int64) (model.PendingDownload, error)
	Remove(id int64) error
	All() ([]model.PendingDownload, error)
	Close() error
}
