package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/creditlens/internal/export"
	"github.com/ppiankov/creditlens/internal/model"
	"github.com/ppiankov/creditlens/internal/pipeline"
)

const banner = "═══════════════════════════════════════════════════════════"

var (
	runSources        string
	runOut            string
	runWorkers        int
	runNoCache        bool
	runSkipExtraction bool
	runSQLite         string
	runMarkdown       string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract, aggregate and report developer contributions",
	Long: `Run the full pipeline:
- Find each game's credits file under the sources directory
- Extract (name, role) credits with the matching format adapter
- Classify roles and keep the configured cross-section
- Merge name variants into canonical developers
- Compute statistics and write the artifact and reports

Example:
  creditlens run --sources games --out processed
  creditlens run --skip-extraction --md report.md
  creditlens run --sqlite contributions.db -v`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runSources, "sources", "", "credits sources directory (default from config)")
	runCmd.Flags().StringVar(&runOut, "out", "", "output directory (default from config)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "concurrent source extractions (default from config)")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "disable the extraction cache")
	runCmd.Flags().BoolVar(&runSkipExtraction, "skip-extraction", false, "reuse the existing artifact instead of re-extracting")
	runCmd.Flags().StringVar(&runSQLite, "sqlite", "", "also export the contribution map to this SQLite file")
	runCmd.Flags().StringVar(&runMarkdown, "md", "", "also write a Markdown report to this path")
}

// applyRunFlags overrides configuration with explicitly set flags
func applyRunFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("sources") {
		cfg.Extraction.SourcesDir = runSources
	}
	if flags.Changed("out") {
		cfg.Output.Dir = runOut
	}
	if flags.Changed("workers") {
		cfg.Concurrency.Workers = runWorkers
	}
	if runNoCache {
		cfg.Cache.Enabled = false
	}
	if runSkipExtraction {
		cfg.SkipExtraction = true
	}
	if flags.Changed("sqlite") {
		cfg.Output.SQLite = runSQLite
	}
	if flags.Changed("md") {
		cfg.Output.Markdown = runMarkdown
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Sources: %s\n", cfg.Extraction.SourcesDir)
		fmt.Fprintf(os.Stderr, "Output: %s\n", cfg.Output.Dir)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	outcome, err := pipeline.NewPipeline(cfg, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	out := cmd.OutOrStdout()
	export.NewRenderer(outcome.Order).RenderSummary(out, outcome.Report)

	if len(outcome.Missing) > 0 {
		fmt.Fprintf(out, "\nNo credits source: %s\n", strings.Join(outcome.Missing, ", "))
	}
	if s := outcome.Summary; s != nil {
		fmt.Fprintf(out, "\nEntries: %d kept, %d out of scope, %d duplicates (of %d)\n", s.Kept, s.OutOfScope, s.Duplicates, s.Entries)
		if len(s.Unclassified) > 0 {
			fmt.Fprintf(out, "Unclassified roles: %d (run with -v to list them)\n", len(s.Unclassified))
			if cfg.Output.Verbose {
				for _, role := range s.Unclassified {
					fmt.Fprintf(os.Stderr, "  ? %s\n", role)
				}
			}
		}
	}

	return nil
}
