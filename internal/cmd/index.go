package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/engine"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewIndexCmd creates the index command
func NewIndexCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or refresh the application index",
		Long:  `Scan the application directories and refresh the index. Without --force a valid cache is reused instead of rescanning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			e, err := engine.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer e.Close()

			spinner := ui.NewSpinner(cmd.ErrOrStderr(), "Indexing applications")
			defer spinner.Finish()

			var stats engine.Stats
			if force {
				stats, err = e.Rebuild(ctx)
			} else {
				stats, err = e.Init(ctx)
			}
			spinner.Finish()
			if err != nil {
				return err
			}

			if stats.FromCache {
				ui.PrintSuccess("Index up to date: %d applications (cached)", stats.Entries)
			} else {
				ui.PrintSuccess("Indexed %d applications in %s", stats.Entries, stats.Duration.Round(time.Millisecond))
			}

			if n := len(stats.Warnings); n > 0 {
				ui.PrintWarning("%d paths could not be read, see the log for details", n)
			}

			if !e.CacheEnabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache disabled: the next start will rescan.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "rescan even when the cache is still valid")

	return cmd
}
