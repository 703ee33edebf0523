package storage

import (
	fynestorage "fyne.io/fyne/v2/storage"

	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/platform"
)

// Well-known folder names
const (
	FolderOfflineMaps = "OFFLINE_MAPS"
	FolderDownloads   = "DOWNLOADS"
)

// Folder is a named, configurable storage location
type Folder struct {
	Name string
	Path string
}

// String returns the folder's name; log renderings append its location
func (f Folder) String() string {
	return f.Name
}

// DisplayName is the short form shown to users
func (f Folder) DisplayName() string {
	return platform.UserDisplayPath(f.Path)
}

// Locator resolves a folder to a location string
type Locator interface {
	URIForFolder(f Folder) string
}

// Storage materializes folders and resolves their locations
type Storage interface {
	Locator
	EnsureFolder(f Folder) bool
}

// Local is the file system backed Storage
type Local struct{}

// NewLocal returns the file system storage
func NewLocal() *Local {
	return &Local{}
}

// EnsureFolder creates the folder when missing and checks it accepts new files
func (l *Local) EnsureFolder(f Folder) bool {
	if f.Path == "" {
		logger.Warn("folder has no path", logger.Fields{"folder": f.Name})
		return false
	}
	if err := platform.CreateDirectoryIfNotExists(f.Path); err != nil {
		logger.Warn("failed to create folder", logger.Fields{"folder": f.Name, "path": f.Path, "error": err})
		return false
	}
	if err := platform.IsWritableDir(f.Path); err != nil {
		logger.Warn("folder not writable", logger.Fields{"folder": f.Name, "path": f.Path, "error": err})
		return false
	}
	return true
}

// URIForFolder returns the file URI of the folder
func (l *Local) URIForFolder(f Folder) string {
	if f.Path == "" {
		return ""
	}
	return fynestorage.NewFileURI(f.Path).String()
}
