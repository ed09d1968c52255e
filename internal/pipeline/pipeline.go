package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ppiankov/creditlens/internal/aggregate"
	"github.com/ppiankov/creditlens/internal/cache"
	"github.com/ppiankov/creditlens/internal/classify"
	"github.com/ppiankov/creditlens/internal/export"
	"github.com/ppiankov/creditlens/internal/extract"
	"github.com/ppiankov/creditlens/internal/extract/adapters"
	"github.com/ppiankov/creditlens/internal/identity"
	"github.com/ppiankov/creditlens/internal/model"
	"github.com/ppiankov/creditlens/internal/stats"
	"github.com/ppiankov/creditlens/internal/worker"
)

// Output file names written next to the artifact
const (
	StatsFile = "stats.json"
	FlowFile  = "flow.json"
)

// Pipeline orchestrates a complete run: extraction, aggregation, statistics and export
type Pipeline struct {
	config   *model.Config
	logger   *zap.Logger
	progress io.Writer // Human progress lines
}

// NewPipeline creates a new pipeline with the given configuration. Progress
// lines go to stderr when output.verbose is set.
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	progress := io.Discard
	if cfg.Output.Verbose {
		progress = os.Stderr
	}
	return &Pipeline{
		config:   cfg,
		logger:   logger,
		progress: progress,
	}
}

// WithProgress redirects human progress lines
func (p *Pipeline) WithProgress(w io.Writer) *Pipeline {
	p.progress = w
	return p
}

// Outcome is everything one run produced
type Outcome struct {
	Order      *model.GameOrder
	Developers model.ContributionMap
	Summary    *aggregate.Summary // Nil when extraction was skipped
	Report     *model.Report
	Missing    []string // Games with no credits source
	Files      []string // Files written, in write order
}

// Run executes the pipeline. With skip_extraction the canonical map is read
// back from the artifact instead of being rebuilt from the sources. Any
// error aborts the run before the artifact is written.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	if err := p.config.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if p.config.SkipExtraction {
		return p.runFromArtifact(ctx)
	}

	order, err := model.NewGameOrder(p.config.GameList())
	if err != nil {
		return nil, fmt.Errorf("games: %w", err)
	}

	classifier, err := classify.FromConfig(p.config.Roles)
	if err != nil {
		return nil, fmt.Errorf("roles: %w", err)
	}

	normalizer, err := identity.NewNormalizer(identity.MergeAliases(p.config.Aliases, p.config.ReplaceAliases))
	if err != nil {
		return nil, fmt.Errorf("aliases: %w", err)
	}

	entries, missing, err := p.Extract(ctx)
	if err != nil {
		return nil, err
	}

	result, err := aggregate.NewAggregator(order, classifier, normalizer, p.logger).Aggregate(aggregate.GroupByGame(entries))
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	fmt.Fprintf(p.progress, "✓ Aggregated %d developers (%d of %d entries kept)\n",
		result.Developers.Len(), result.Summary.Kept, result.Summary.Entries)

	report, err := stats.NewCalculator(order, p.config.Stats).Calculate(result.Developers)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	outcome := &Outcome{
		Order:      order,
		Developers: result.Developers,
		Summary:    &result.Summary,
		Report:     report,
		Missing:    missing,
	}

	if err := p.export(ctx, outcome, true); err != nil {
		return nil, err
	}

	return outcome, nil
}

func (p *Pipeline) runFromArtifact(ctx context.Context) (*Outcome, error) {
	path := p.outputPath(p.config.Output.Artifact)
	order, developers, err := export.LoadSnapshotFile(path)
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	fmt.Fprintf(p.progress, "✓ Loaded %d developers from %s\n", developers.Len(), path)

	report, err := stats.NewCalculator(order, p.config.Stats).Calculate(developers)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	outcome := &Outcome{
		Order:      order,
		Developers: developers,
		Report:     report,
	}

	if err := p.export(ctx, outcome, false); err != nil {
		return nil, err
	}

	return outcome, nil
}

// Extract discovers every configured source and extracts it on the worker
// pool. Entries come back in source order; the first failing source, in
// that order, aborts the run.
func (p *Pipeline) Extract(ctx context.Context) ([]model.RawCreditEntry, []string, error) {
	cfg := p.config

	discovery, err := extract.Discover(cfg.Extraction.SourcesDir, cfg.Games, adapters.HasBuiltin)
	if err != nil {
		return nil, nil, fmt.Errorf("discover sources: %w", err)
	}
	for _, slug := range discovery.Missing {
		p.logger.Warn("no credits source", zap.String("game", slug))
		fmt.Fprintf(p.progress, "⚠ No credits source for %s\n", slug)
	}

	filter := extract.NewSectionFilter(cfg.Extraction)
	registry := adapters.NewRegistry(filter, p.logger)
	entryCache := extract.NewEntryCache(cache.New(cfg.Cache), cfg.Cache.TTL, filter)
	batch := worker.NewBatchExtractor(registry, entryCache, cfg.Concurrency.Workers, p.logger)

	var entries []model.RawCreditEntry
	for _, res := range batch.ExtractAll(ctx, discovery.Sources) {
		if res.Error != nil {
			return nil, nil, fmt.Errorf("source %s: %w", res.Source.Game, res.Error)
		}
		entries = append(entries, res.Entries...)

		cached := ""
		if res.Cached {
			cached = " (cached)"
		}
		fmt.Fprintf(p.progress, "✓ %s: %d entries%s\n", res.Source.Game, len(res.Entries), cached)
	}

	p.logger.Info("extraction finished",
		zap.Int("sources", len(discovery.Sources)),
		zap.Int("missing", len(discovery.Missing)),
		zap.Int("entries", len(entries)))

	return entries, discovery.Missing, nil
}

// export writes the artifact (unless it was the input) and the reports
func (p *Pipeline) export(ctx context.Context, outcome *Outcome, writeArtifact bool) error {
	out := p.config.Output
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	written := func(path string) {
		outcome.Files = append(outcome.Files, path)
		fmt.Fprintf(p.progress, "✓ Wrote %s\n", path)
	}

	if writeArtifact {
		path := p.outputPath(out.Artifact)
		if err := export.SaveSnapshotFile(path, outcome.Order, outcome.Developers); err != nil {
			return fmt.Errorf("write artifact: %w", err)
		}
		written(path)
	}

	renderer := export.NewRenderer(outcome.Order)

	statsPath := p.outputPath(StatsFile)
	if err := renderer.RenderJSON(outcome.Report, statsPath); err != nil {
		return fmt.Errorf("render stats: %w", err)
	}
	written(statsPath)

	flowPath := p.outputPath(FlowFile)
	if err := renderer.RenderFlowJSON(outcome.Report, flowPath); err != nil {
		return fmt.Errorf("render flow: %w", err)
	}
	written(flowPath)

	if out.Markdown != "" {
		path := p.outputPath(out.Markdown)
		if err := renderer.RenderMarkdown(outcome.Report, path); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		written(path)
	}

	if out.SQLite != "" {
		path := p.outputPath(out.SQLite)
		if err := saveSQLite(ctx, path, outcome); err != nil {
			return fmt.Errorf("sqlite export: %w", err)
		}
		written(path)
	}

	return nil
}

func saveSQLite(ctx context.Context, path string, outcome *Outcome) (err error) {
	store, err := export.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return store.SaveSnapshot(ctx, outcome.Order, outcome.Developers)
}

// outputPath resolves a configured output name against the output dir
func (p *Pipeline) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.config.Output.Dir, name)
}
