package cmd

import (
	"context"

	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/engine"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command
func NewImportCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import an index snapshot",
		Long:  `Load a snapshot written by export, publish it as the current index, and seed the cache with it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			// Import replaces whatever Init would have produced, so the
			// engine is used without bringing the index up first.
			e, err := engine.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer e.Close()

			n, err := e.Import(ctx, args[0])
			if err != nil {
				return err
			}
			ui.PrintSuccess("Imported %d applications from %s", n, args[0])
			return nil
		},
	}

	return cmd
}
