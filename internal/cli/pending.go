package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/map-downloader/internal/l10n"
	"github.com/ytget/map-downloader/internal/model"
	"github.com/ytget/map-downloader/internal/storage"
)

// newPendingCmd creates the pending command with subcommands
func newPendingCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List pending downloads",
		Long:  "Show downloads that were handed to the download manager and did not finish",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPendingList(cmd, g)
		},
	}

	cmd.AddCommand(newPendingRemoveCmd(g))
	return cmd
}

func newPendingRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Forget a pending download",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			reg, err := g.openRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Remove(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", id)
			return nil
		},
	}
}

func runPendingList(cmd *cobra.Command, g *globals) error {
	reg, err := g.openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	records, err := reg.All()
	if err != nil {
		return err
	}

	l := g.localizer(storage.NewLocal())
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, l.StringWithFallback(l10n.KeyPendingEmpty, "No pending downloads"))
		return nil
	}

	fmt.Fprintln(out, l.PluralWithFallback(l10n.KeyPendingDownloads, len(records), "pending"))
	fmt.Fprintf(out, "%-15s %-30s %-15s %s\n", "ID", "FILE", "TYPE", "DATE")
	for _, rec := range records {
		fmt.Fprintf(out, "%-15d %-30s %-15s %s\n", rec.ID, rec.Filename, rec.Type, formatDate(rec))
	}
	return nil
}

func formatDate(rec model.PendingDownload) string {
	if rec.Date <= 0 {
		return "-"
	}
	return time.UnixMilli(rec.Date).UTC().Format(time.DateTime)
}
