package cmd

import (
	"context"

	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/engine"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "appdex",
		Short:        "Application indexer and fuzzy launcher backend",
		Long:         `Discovers launchable applications, keeps a persistent index of them, and answers fuzzy queries over it.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			ui.InitColors(cfg.Logging.Color)
		},
	}

	// Add subcommands
	cmd.AddCommand(NewSearchCmd(cfg, log))
	cmd.AddCommand(NewListCmd(cfg, log))
	cmd.AddCommand(NewPickCmd(cfg, log))
	cmd.AddCommand(NewIndexCmd(cfg, log))
	cmd.AddCommand(NewExportCmd(cfg, log))
	cmd.AddCommand(NewImportCmd(cfg, log))
	cmd.AddCommand(NewDoctorCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}

// withEngine builds an engine, brings the index up (cache or rescan), runs
// fn against it, and tears it down.
func withEngine(cmd *cobra.Command, cfg *config.Config, log *zerolog.Logger, fn func(ctx context.Context, e *engine.Engine) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := engine.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.Init(ctx); err != nil {
		return err
	}
	return fn(ctx, e)
}
