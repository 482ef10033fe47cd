package cmd

import (
	"fmt"

	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/fsops"
	"github.com/quantmind-br/appdex/internal/paths"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, directories, and the index cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			resolver := paths.NewResolver(cfg)
			var issues int

			ui.PrintHeader("Configuration")
			ui.PrintKeyValue("max results", fmt.Sprintf("%d", cfg.Search.MaxResults))
			ui.PrintKeyValue("initial sort", cfg.Search.InitialSort)
			ui.PrintKeyValue("cache enabled", fmt.Sprintf("%t", cfg.Index.EnableCache))
			ui.PrintKeyValue("extra paths", fmt.Sprintf("%d", len(cfg.Index.ExtraIndexPaths)))
			ui.PrintKeyValue("exclude paths", fmt.Sprintf("%d", len(cfg.Index.ExcludePaths)))
			fmt.Println()

			ui.PrintHeader("Data")
			dataDir := resolver.DataDir()
			if err := fsops.EnsureDir(fs, dataDir, 0o755); err != nil {
				ui.PrintError("data dir %s: %v", dataDir, err)
				issues++
			} else if err := fsops.CheckWritable(fs, dataDir); err != nil {
				ui.PrintError("data dir %s not writable: %v", dataDir, err)
				issues++
			} else {
				ui.PrintSuccess("data dir writable: %s", dataDir)
			}

			if cfg.Index.EnableCache {
				if fsops.Exists(fs, resolver.CacheDBPath()) {
					ui.PrintSuccess("cache database present: %s", resolver.CacheDBPath())
				} else {
					ui.PrintWarning("cache database missing, first run will scan from scratch")
				}
			}

			if fsops.IsDir(fs, resolver.IconCacheDir()) {
				ui.PrintSuccess("icon cache present: %s", resolver.IconCacheDir())
			} else {
				ui.PrintWarning("icon cache missing, icons will be re-extracted")
			}
			fmt.Println()

			ui.PrintHeader("Scan roots")
			printRoots(resolver.StartMenuDirs(), core.OriginStartMenu)
			printRoots(resolver.ProgramDirs(), core.OriginProgramFiles)
			for _, dir := range resolver.ExtraDirs() {
				if fsops.IsDir(fs, dir) {
					ui.PrintKeyValue(ui.OriginLabel(core.OriginExtraPath), dir)
				} else {
					ui.PrintWarning("configured extra path missing: %s", dir)
				}
			}
			fmt.Println()

			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			ui.PrintSuccess("Everything looks good")
			return nil
		},
	}

	return cmd
}

func printRoots(dirs []string, origin core.Origin) {
	if len(dirs) == 0 {
		ui.PrintWarning("no %s directories found", origin.String())
		return
	}
	for _, dir := range dirs {
		ui.PrintKeyValue(ui.OriginLabel(origin), dir)
	}
}
