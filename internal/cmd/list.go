package cmd

import (
	"context"
	"encoding/json"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/engine"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		showIcons  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every indexed application",
		Long:  `List all indexed applications in their display order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, cfg, log, func(_ context.Context, e *engine.Engine) error {
				entries := e.Entries()

				if jsonOutput {
					return writeEntriesJSON(cmd, entries)
				}

				if len(entries) == 0 {
					ui.PrintInfo("Index is empty")
					return nil
				}

				headers := []string{"Name", "Origin", "Target"}
				cols := 3
				if showIcons {
					headers = append(headers, "Icon")
					cols = 4
				}

				table := tablewriter.NewTable(cmd.OutOrStdout(),
					tablewriter.WithHeader(headers),
					tablewriter.WithAlignment(tw.MakeAlign(cols, tw.AlignLeft)),
					tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
				)
				for _, entry := range entries {
					row := []interface{}{entry.Name, ui.OriginLabel(entry.Origin), entry.LaunchTarget}
					if showIcons {
						row = append(row, ui.IconLabel(entry))
					}
					table.Append(row...)
				}
				return table.Render()
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&showIcons, "icons", false, "include the icon column")

	return cmd
}

type entryDoc struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Origin string `json:"origin"`
	Icon   string `json:"icon,omitempty"`
}

func writeEntriesJSON(cmd *cobra.Command, entries []core.Entry) error {
	docs := make([]entryDoc, 0, len(entries))
	for _, e := range entries {
		doc := entryDoc{
			Name:   e.Name,
			Target: e.LaunchTarget,
			Origin: e.Origin.String(),
		}
		if e.Icon.Kind == core.IconFile {
			doc.Icon = e.Icon.Path
		}
		docs = append(docs, doc)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
