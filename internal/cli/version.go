package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set during build via -ldflags "-X .../internal/cli.Version=X.Y.Z"
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "map-downloader version %s\n", Version)
		},
	}
}
