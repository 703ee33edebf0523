package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/map-downloader/internal/config"
	"github.com/ytget/map-downloader/internal/download"
	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/model"
	"github.com/ytget/map-downloader/internal/storage"
	"github.com/ytget/map-downloader/internal/workflow"
)

// ErrNotDownloaded is returned when the flow ended without a finished file
// for any reason other than the user declining
var ErrNotDownloaded = errors.New("map was not downloaded")

type downloadFlags struct {
	size         string
	date         int64
	mapType      string
	allowMetered bool
	yes          bool
	skipCheck    bool
}

func newDownloadCmd(g *globals) *cobra.Command {
	var f downloadFlags

	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Confirm and download a map file",
		Long: `Checks the offline maps folder, asks for confirmation and downloads the
map file into the downloads folder. The download is recorded as pending until
it finishes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, g, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.size, "size", "", "human readable size shown in the confirmation")
	cmd.Flags().Int64Var(&f.date, "date", 0, "file timestamp in milliseconds")
	cmd.Flags().StringVar(&f.mapType, "type", model.MapTypeDefault.String(), "map type name or code")
	cmd.Flags().BoolVar(&f.allowMetered, "allow-metered", false, "allow metered and roaming networks")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "answer yes to every question")
	cmd.Flags().BoolVar(&f.skipCheck, "skip-check", false, "do not check the offline maps folder first")

	return cmd
}

func runDownload(cmd *cobra.Command, g *globals, f downloadFlags, uri string) error {
	mapType, ok := model.ParseMapType(f.mapType)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrInvalidMapType, f.mapType)
	}

	reg, err := g.openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	presenter := NewTerminalPresenter(cmd.InOrStdin(), cmd.OutOrStdout())
	presenter.AssumeYes = f.yes
	if cmd.Flags().Changed("allow-metered") {
		presenter.Metered = &f.allowMetered
	}

	svc := download.NewService(g.opts.MaxParallel)
	finished := make(chan model.DownloadTask, 1)
	svc.SetUpdateCallback(func(task model.DownloadTask) {
		if task.Status.IsFinished() {
			finished <- task
		}
	})
	svc.SetNotifier(func(title, content string) {
		logger.Info("download completed", logger.Fields{"title": title})
	})

	st := storage.NewLocal()
	deps := workflow.Deps{
		Presenter:           presenter,
		Permission:          g.permission(),
		Storage:             st,
		Localizer:           g.localizer(st),
		Manager:             svc,
		Registry:            reg,
		Folder:              g.opts.MapsFolder(),
		DownloadDir:         g.opts.DownloadDir,
		AllowMeteredDefault: g.opts.AllowMeteredDefault || f.allowMetered,
	}

	req := model.NewDownloadRequest(uri, f.size, f.date, mapType)
	var flow *workflow.Flow
	if f.skipCheck {
		flow = workflow.ConfirmAndDownload(deps, req, nil)
	} else {
		flow = workflow.Run(deps, req, nil)
	}

	id := flow.EnqueuedID()
	if id == 0 {
		if flow.Declined() {
			logger.Info("download declined", logger.Fields{"uri": uri})
			return nil
		}
		return ErrNotDownloaded
	}

	var task model.DownloadTask
	select {
	case task = <-finished:
	case <-cmd.Context().Done():
		if err := svc.Remove(id); err != nil {
			logger.Warn("failed to cancel transfer", logger.Fields{"id": id, "error": err})
		}
		task = <-finished
	}

	if err := reg.Remove(id); err != nil {
		logger.Warn("failed to remove pending download", logger.Fields{"id": id, "error": err})
	}

	if task.Status != model.TaskStatusSuccessful {
		return fmt.Errorf("%w: %s %s", ErrNotDownloaded, task.Status, task.LastError)
	}
	fmt.Fprintln(cmd.OutOrStdout(), task.OutputPath)
	return nil
}
