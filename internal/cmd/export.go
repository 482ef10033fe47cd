package cmd

import (
	"context"

	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/engine"
	"github.com/quantmind-br/appdex/internal/paths"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command
func NewExportCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export the index to a snapshot file",
		Long:  `Write the current index as an xz-compressed snapshot, by default into the data directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := paths.NewResolver(cfg).SnapshotPath()
			if len(args) == 1 {
				dest = args[0]
			}

			return withEngine(cmd, cfg, log, func(_ context.Context, e *engine.Engine) error {
				if err := e.Export(dest); err != nil {
					return err
				}
				ui.PrintSuccess("Exported %d applications to %s", e.Count(), dest)
				return nil
			})
		},
	}

	return cmd
}
