package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/creditlens/internal/export"
	"github.com/ppiankov/creditlens/internal/stats"
)

var (
	statsJSON string
	statsFlow string
	statsMD   string
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <artifact>",
	Short: "Compute statistics from a saved contribution map",
	Long: `Read a contribution map artifact written by 'creditlens run' and compute
the statistics again, without touching the credits sources.

Example:
  creditlens stats processed/developer_contributions.json
  creditlens stats processed/developer_contributions.json --json stats.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsJSON, "json", "", "write the statistics as JSON")
	statsCmd.Flags().StringVar(&statsFlow, "flow", "", "write the flow diagram data as JSON")
	statsCmd.Flags().StringVar(&statsMD, "md", "", "write a Markdown report")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	order, developers, err := export.LoadSnapshotFile(args[0])
	if err != nil {
		return err
	}

	report, err := stats.NewCalculator(order, cfg.Stats).Calculate(developers)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	renderer := export.NewRenderer(order)
	renderer.RenderSummary(cmd.OutOrStdout(), report)

	outputs := []struct {
		path   string
		render func() error
	}{
		{statsJSON, func() error { return renderer.RenderJSON(report, statsJSON) }},
		{statsFlow, func() error { return renderer.RenderFlowJSON(report, statsFlow) }},
		{statsMD, func() error { return renderer.RenderMarkdown(report, statsMD) }},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := o.render(); err != nil {
			return fmt.Errorf("write %s: %w", o.path, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", o.path)
		}
	}

	return nil
}
