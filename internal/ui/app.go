package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/map-downloader/internal/config"
	"github.com/ytget/map-downloader/internal/download"
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/platform"
	"github.com/ytget/map-downloader/internal/registry"
)

const (
	AppID   = "com.ytget.map-downloader"
	AppName = "Offline Map Downloader"

	WindowWidth  = 720
	WindowHeight = 560
)

// Run starts the Fyne application and blocks until its window is closed
func Run(version string) error {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(NewMapTheme())

	settings := config.NewSettings(myApp)
	opts := settings.Options()
	logger.Init(opts.LogLevel)
	logger.Info("starting", logger.Fields{"app": AppName, "version": version})

	if err := platform.CreateDirectoryIfNotExists(opts.DownloadDir); err != nil {
		logger.Warn("failed to ensure downloads dir", logger.Fields{"path": opts.DownloadDir, "error": err})
	}

	var reg registry.Registry
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(opts.RegistryPath)); err != nil {
		logger.Error("failed to create registry folder", logger.Fields{"error": err})
	} else if bolt, err := registry.OpenBolt(opts.RegistryPath); err != nil {
		logger.Error("pending downloads unavailable", logger.Fields{"path": opts.RegistryPath, "error": err})
	} else {
		reg = bolt
		defer bolt.Close()
	}

	window := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	downloadSvc := download.NewService(opts.MaxParallel)
	NewRootUI(window, myApp, downloadSvc, reg)

	window.ShowAndRun()
	return nil
}
