package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/storage"
	"github.com/ytget/map-downloader/internal/workflow"
)

// ErrFolderNotReady is returned by check-dir when the folder is unusable
var ErrFolderNotReady = errors.New("offline maps folder is not ready")

func newCheckDirCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check-dir",
		Short: "Check the offline maps folder",
		Long:  "Request storage access and check that the offline maps folder exists and is writable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckDir(cmd, g)
		},
	}
}

func runCheckDir(cmd *cobra.Command, g *globals) error {
	st := storage.NewLocal()
	l := g.localizer(st)
	presenter := NewTerminalPresenter(cmd.InOrStdin(), cmd.OutOrStdout())

	deps := workflow.Deps{
		Presenter:  presenter,
		Permission: g.permission(),
		Storage:    st,
		Localizer:  l,
		Folder:     g.opts.MapsFolder(),
	}

	var result error
	workflow.CheckDirectory(deps, false, func(folder storage.Folder, ready bool) {
		if !ready {
			result = fmt.Errorf("%w: %s", ErrFolderNotReady, folder.Path)
			return
		}
		msg := l.Pair(l10n.KeyDownloadMapReady, "Offline maps folder is ready", l10n.Folder(folder))
		logger.Debug(msg.Log)
		presenter.Notify(msg.User, true)
	})
	return result
}
