package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/map-downloader/internal/storage"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	if got := settings.GetDownloadDirectory(); got != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, got)
	}
}

func TestMapsDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetMapsDirectory() == "" {
		t.Error("Maps directory should not be empty")
	}

	settings.SetMapsDirectory("/custom/maps")
	if got := settings.GetMapsDirectory(); got != "/custom/maps" {
		t.Errorf("Expected maps directory /custom/maps, got %s", got)
	}

	folder := settings.Options().MapsFolder()
	if folder.Name != storage.FolderOfflineMaps || folder.Path != "/custom/maps" {
		t.Errorf("Unexpected maps folder %+v", folder)
	}
}

func TestMaxParallelDownloads(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetMaxParallelDownloads(); got != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, got)
	}

	settings.SetMaxParallelDownloads(5)
	if got := settings.GetMaxParallelDownloads(); got != 5 {
		t.Errorf("Expected max parallel 5, got %d", got)
	}

	settings.SetMaxParallelDownloads(0) // Should be clamped to 1
	if settings.GetMaxParallelDownloads() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallelDownloads(15) // Should be clamped to 10
	if settings.GetMaxParallelDownloads() != 10 {
		t.Error("Max parallel should be clamped to maximum 10")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("de")
	if lang := settings.GetLanguage(); lang != "de" {
		t.Errorf("Expected language 'de', got %s", lang)
	}
}

func TestAllowMeteredDefault(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAllowMeteredDefault() != DefaultAllowMeteredDefault {
		t.Error("Unexpected metered default")
	}

	settings.SetAllowMeteredDefault(true)
	if !settings.GetAllowMeteredDefault() {
		t.Error("Expected metered default to be true")
	}
}

func TestRegistryPathAndLogLevel(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetRegistryPath() == "" {
		t.Error("Registry path should not be empty")
	}
	if settings.GetLogLevel() != DefaultLogLevel {
		t.Errorf("Expected log level %s, got %s", DefaultLogLevel, settings.GetLogLevel())
	}

	settings.SetRegistryPath("/tmp/pending.db")
	settings.SetLogLevel("debug")

	opts := settings.Options()
	if opts.RegistryPath != "/tmp/pending.db" || opts.LogLevel != "debug" {
		t.Errorf("Unexpected options %+v", opts)
	}
}

func TestClampParallel(t *testing.T) {
	tests := []struct{ in, want int }{{-1, 1}, {0, 1}, {1, 1}, {4, 4}, {10, 10}, {11, 10}}
	for _, tt := range tests {
		if got := ClampParallel(tt.in); got != tt.want {
			t.Errorf("ClampParallel(%d) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "de", "ru"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
