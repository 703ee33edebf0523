package config

import (
	"errors"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/map-downloader/internal/platform"
	"github.com/ytget/map-downloader/internal/storage"
)

// ErrInvalidMapType is returned when a map type name or code cannot be parsed
var ErrInvalidMapType = errors.New("invalid map type")

// Settings keys for Fyne preferences
const (
	KeyDownloadDir         = "download_directory"
	KeyMapsDir             = "offline_maps_directory"
	KeyMaxParallel         = "max_parallel_downloads"
	KeyLanguage            = "app_language"
	KeyAllowMeteredDefault = "allow_metered_default"
	KeyRegistryPath        = "registry_path"
	KeyLogLevel            = "log_level"
)

// Default values
const (
	DefaultMaxParallel         = 2
	DefaultLanguage            = "system"
	DefaultAllowMeteredDefault = false
	DefaultLogLevel            = "info"
	DefaultRegistryFile        = "pending-downloads.db"
	fallbackDownloadsDir       = "/tmp/downloads"

	MinParallel = 1
	MaxParallel = 10
)

// Options is a snapshot of the settings, shared by the GUI and the CLI
type Options struct {
	DownloadDir         string
	MapsDir             string
	MaxParallel         int
	Language            string
	AllowMeteredDefault bool
	RegistryPath        string
	LogLevel            string
}

// DefaultOptions returns the options used before anything is configured
func DefaultOptions() Options {
	downloads, err := platform.GetHomeDownloadsDir()
	if err != nil {
		downloads = fallbackDownloadsDir
	}
	maps, err := platform.GetDefaultMapsDir()
	if err != nil {
		maps = filepath.Join(downloads, platform.MapsDirName)
	}
	return Options{
		DownloadDir:         downloads,
		MapsDir:             maps,
		MaxParallel:         DefaultMaxParallel,
		Language:            DefaultLanguage,
		AllowMeteredDefault: DefaultAllowMeteredDefault,
		RegistryPath:        DefaultRegistryPath(),
		LogLevel:            DefaultLogLevel,
	}
}

// DefaultRegistryPath places the registry next to the user's config
func DefaultRegistryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || platform.IsAndroid() {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "map-downloader", DefaultRegistryFile)
}

// MapsFolder returns the offline maps storage folder
func (o Options) MapsFolder() storage.Folder {
	return storage.Folder{Name: storage.FolderOfflineMaps, Path: o.MapsDir}
}

// DownloadsFolder returns the public downloads storage folder
func (o Options) DownloadsFolder() storage.Folder {
	return storage.Folder{Name: storage.FolderDownloads, Path: o.DownloadDir}
}

// ClampParallel keeps a parallelism value within MinParallel..MaxParallel
func ClampParallel(count int) int {
	if count < MinParallel {
		return MinParallel
	}
	if count > MaxParallel {
		return MaxParallel
	}
	return count
}

// Settings manages application configuration
type Settings struct {
	app      fyne.App
	defaults Options
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app, defaults: DefaultOptions()}
}

// Options returns a snapshot of all settings
func (s *Settings) Options() Options {
	return Options{
		DownloadDir:         s.GetDownloadDirectory(),
		MapsDir:             s.GetMapsDirectory(),
		MaxParallel:         s.GetMaxParallelDownloads(),
		Language:            s.GetLanguage(),
		AllowMeteredDefault: s.GetAllowMeteredDefault(),
		RegistryPath:        s.GetRegistryPath(),
		LogLevel:            s.GetLogLevel(),
	}
}

// GetDownloadDirectory returns the public downloads directory
func (s *Settings) GetDownloadDirectory() string {
	return s.stringWithDefault(KeyDownloadDir, s.defaults.DownloadDir)
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMapsDirectory returns the offline maps directory
func (s *Settings) GetMapsDirectory() string {
	return s.stringWithDefault(KeyMapsDir, s.defaults.MapsDir)
}

// SetMapsDirectory sets the offline maps directory
func (s *Settings) SetMapsDirectory(dir string) {
	s.app.Preferences().SetString(KeyMapsDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, ClampParallel(count))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.stringWithDefault(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAllowMeteredDefault returns the initial state of the metered network checkbox
func (s *Settings) GetAllowMeteredDefault() bool {
	return s.app.Preferences().BoolWithFallback(KeyAllowMeteredDefault, DefaultAllowMeteredDefault)
}

// SetAllowMeteredDefault sets the initial state of the metered network checkbox
func (s *Settings) SetAllowMeteredDefault(allow bool) {
	s.app.Preferences().SetBool(KeyAllowMeteredDefault, allow)
}

// GetRegistryPath returns the pending download database path
func (s *Settings) GetRegistryPath() string {
	return s.stringWithDefault(KeyRegistryPath, s.defaults.RegistryPath)
}

// SetRegistryPath sets the pending download database path
func (s *Settings) SetRegistryPath(path string) {
	s.app.Preferences().SetString(KeyRegistryPath, path)
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	return s.stringWithDefault(KeyLogLevel, DefaultLogLevel)
}

// SetLogLevel sets the log level
func (s *Settings) SetLogLevel(level string) {
	s.app.Preferences().SetString(KeyLogLevel, level)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"de":     "Deutsch",
		"ru":     "Русский",
	}
}

// stringWithDefault reads key and persists def when nothing is stored yet
func (s *Settings) stringWithDefault(key, def string) string {
	value := s.app.Preferences().String(key)
	if value == "" {
		s.app.Preferences().SetString(key, def)
		return def
	}
	return value
}
