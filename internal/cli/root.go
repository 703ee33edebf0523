package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/map-downloader/internal/config"
	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/permission"
	"github.com/ytget/map-downloader/internal/platform"
	"github.com/ytget/map-downloader/internal/registry"
	"github.com/ytget/map-downloader/internal/storage"
)

// GUIRunner starts the graphical front end
type GUIRunner func() error

// globals holds the persistent flags shared by all commands
type globals struct {
	opts    config.Options
	noColor bool
}

// NewRootCmd creates the map-downloader command tree. runGUI backs the gui
// command and may be nil.
func NewRootCmd(runGUI GUIRunner) *cobra.Command {
	g := &globals{opts: config.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "map-downloader",
		Short: "Download offline map files",
		Long: `map-downloader fetches offline map files into the downloads folder:
- download: confirm and download a map file
- pending: list or remove downloads that did not finish
- check-dir: check that the offline maps folder is usable`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(g.opts.LogLevel)
			logger.SetOutput(cmd.ErrOrStderr())
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.opts.Language, "lang", g.opts.Language, "interface language (system, en, de, ru)")
	flags.StringVar(&g.opts.LogLevel, "log-level", g.opts.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&g.opts.RegistryPath, "registry", g.opts.RegistryPath, "pending download database")
	flags.StringVar(&g.opts.MapsDir, "maps-dir", g.opts.MapsDir, "offline maps folder")
	flags.StringVar(&g.opts.DownloadDir, "downloads-dir", g.opts.DownloadDir, "folder receiving downloaded files")
	flags.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newDownloadCmd(g),
		newPendingCmd(g),
		newCheckDirCmd(g),
		newVersionCmd(),
	)
	if runGUI != nil {
		cmd.AddCommand(newGUICmd(runGUI))
	}

	return cmd
}

// localizer loads the catalog for the configured language
func (g *globals) localizer(st storage.Storage) l10n.Localizer {
	catalog, err := l10n.Load(g.opts.Language, st)
	if err != nil {
		logger.Warn("translations unavailable", logger.Fields{"language": g.opts.Language, "error": err})
		return l10n.NoContext(st)
	}
	return catalog
}

// openRegistry opens the bolt registry, creating its folder when needed
func (g *globals) openRegistry() (*registry.Bolt, error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(g.opts.RegistryPath)); err != nil {
		return nil, fmt.Errorf("failed to create registry folder: %w", err)
	}
	return registry.OpenBolt(g.opts.RegistryPath)
}

func (g *globals) permission() permission.Requester {
	return permission.NewDesktop(g.opts.MapsDir)
}

func newGUICmd(runGUI GUIRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the graphical interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI()
		},
	}
}
