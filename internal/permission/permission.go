package permission

import (
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/platform"
)

// Requester asks the host for storage access. onResult is called exactly
// once, possibly before RequestStorage returns.
type Requester interface {
	RequestStorage(onResult func(granted bool))
}

// Static answers every request with a fixed result
type Static bool

// RequestStorage implements Requester
func (s Static) RequestStorage(onResult func(granted bool)) {
	onResult(bool(s))
}

// Desktop grants storage access when the storage root, or the closest
// existing parent of it, is an accessible directory.
type Desktop struct {
	Root string
}

// NewDesktop returns a Requester probing root
func NewDesktop(root string) *Desktop {
	return &Desktop{Root: root}
}

// RequestStorage implements Requester
func (d *Desktop) RequestStorage(onResult func(granted bool)) {
	dir, err := platform.NearestExistingDir(d.Root)
	if err != nil {
		logger.Warn("storage permission denied", logger.Fields{"root": d.Root, "error": err})
		onResult(false)
		return
	}
	logger.Debug("storage permission granted", logger.Fields{"root": d.Root, "existing": dir})
	onResult(true)
}
