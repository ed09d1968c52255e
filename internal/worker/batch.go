package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/creditlens/internal/extract"
	"github.com/ppiankov/creditlens/internal/model"
)

// Extractor reads raw credit entries from one loaded source
type Extractor interface {
	Extract(ctx context.Context, src extract.Source) ([]model.RawCreditEntry, error)
}

// ExtractJob loads and extracts one source, consulting the entry cache first
type ExtractJob struct {
	Source    extract.Source
	Extractor Extractor
	Cache     *extract.EntryCache
}

// Execute executes the extraction job
func (j *ExtractJob) Execute(ctx context.Context) Result {
	src := j.Source
	if err := src.Load(); err != nil {
		return &ExtractResult{Source: src, Error: err}
	}

	if entries, ok := j.Cache.Get(src); ok {
		return &ExtractResult{Source: src, Entries: entries, Cached: true}
	}

	entries, err := j.Extractor.Extract(ctx, src)
	if err != nil {
		return &ExtractResult{Source: src, Error: fmt.Errorf("extract %s: %w", src.Game, err)}
	}

	return &ExtractResult{
		Source:     src,
		Entries:    entries,
		CacheError: j.Cache.Put(src, entries),
	}
}

// ExtractResult represents the result of an extraction job
type ExtractResult struct {
	Source     extract.Source
	Entries    []model.RawCreditEntry
	Cached     bool  // Entries came from the cache
	CacheError error // Entries are valid but could not be cached
	Error      error
}

// GetError returns the error from the extraction result
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchExtractor extracts many sources concurrently
type BatchExtractor struct {
	extractor   Extractor
	cache       *extract.EntryCache
	concurrency int
	logger      *zap.Logger
}

// NewBatchExtractor creates a new batch extractor. A nil cache disables caching.
func NewBatchExtractor(extractor Extractor, cache *extract.EntryCache, concurrency int, logger *zap.Logger) *BatchExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchExtractor{
		extractor:   extractor,
		cache:       cache,
		concurrency: concurrency,
		logger:      logger.Named("worker"),
	}
}

// ExtractAll extracts every source and returns one result per source, in
// the order given
func (b *BatchExtractor) ExtractAll(ctx context.Context, sources []extract.Source) []*ExtractResult {
	if len(sources) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, src := range sources {
		if !pool.Submit(&ExtractJob{Source: src, Extractor: b.extractor, Cache: b.cache}) {
			break
		}
	}

	results := pool.Wait()

	out := make([]*ExtractResult, len(sources))
	for i, src := range sources {
		var res *ExtractResult
		if i < len(results) && results[i] != nil {
			res = results[i].(*ExtractResult)
		} else {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			res = &ExtractResult{Source: src, Error: err}
		}
		out[i] = res

		switch {
		case res.Error != nil:
			b.logger.Debug("source failed", zap.String("game", src.Game), zap.Error(res.Error))
		case res.CacheError != nil:
			b.logger.Warn("could not cache extracted entries", zap.String("game", src.Game), zap.Error(res.CacheError))
		default:
			b.logger.Debug("source extracted",
				zap.String("game", src.Game),
				zap.String("format", src.Format),
				zap.Int("entries", len(res.Entries)),
				zap.Bool("cached", res.Cached))
		}
	}

	return out
}
