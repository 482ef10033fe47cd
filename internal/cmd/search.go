package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/engine"
	"github.com/quantmind-br/appdex/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command
func NewSearchCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search the application index",
		Long:  `Rank indexed applications against a query. The query matches an application when its characters appear in order anywhere in the name.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit > 0 {
				cfg.Search.MaxResults = limit
			}
			query := strings.Join(args, " ")

			return withEngine(cmd, cfg, log, func(_ context.Context, e *engine.Engine) error {
				results := e.Search(query)

				if jsonOutput {
					return writeResultsJSON(cmd, results)
				}

				if len(results) == 0 {
					ui.PrintWarning("No applications match %q", query)
					return nil
				}

				table := tablewriter.NewTable(cmd.OutOrStdout(),
					tablewriter.WithHeader([]string{"Score", "Name", "Origin", "Target"}),
					tablewriter.WithAlignment(tw.MakeAlign(4, tw.AlignLeft)),
					tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
				)
				for _, r := range results {
					table.Append(
						fmt.Sprintf("%d", r.Score),
						r.Entry.Name,
						ui.OriginLabel(r.Entry.Origin),
						r.Entry.LaunchTarget,
					)
				}
				return table.Render()
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (overrides configuration)")

	return cmd
}

type resultDoc struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Origin string `json:"origin"`
	Score  int    `json:"score"`
	Icon   string `json:"icon,omitempty"`
}

func writeResultsJSON(cmd *cobra.Command, results []core.Result) error {
	docs := make([]resultDoc, 0, len(results))
	for _, r := range results {
		doc := resultDoc{
			Name:   r.Entry.Name,
			Target: r.Entry.LaunchTarget,
			Origin: r.Entry.Origin.String(),
			Score:  r.Score,
		}
		if r.Entry.Icon.Kind == core.IconFile {
			doc.Icon = r.Entry.Icon.Path
		}
		docs = append(docs, doc)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
