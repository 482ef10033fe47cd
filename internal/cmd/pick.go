package cmd

import (
	"context"
	"fmt"

	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/engine"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewPickCmd creates the pick command
func NewPickCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Interactively pick an application",
		Long:  `Open a fuzzy picker over the index and print the chosen launch target, suitable for piping into a launcher script.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, cfg, log, func(_ context.Context, e *engine.Engine) error {
				entries := e.Entries()
				if len(entries) == 0 {
					ui.PrintWarning("Index is empty, nothing to pick")
					return nil
				}

				entry, err := ui.PickEntry(entries)
				if err != nil {
					return err
				}

				// The launch target goes to stdout on its own so callers
				// can capture it.
				fmt.Fprintln(cmd.OutOrStdout(), entry.LaunchTarget)
				return nil
			})
		},
	}

	return cmd
}
