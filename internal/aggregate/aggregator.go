package aggregate

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/creditlens/internal/classify"
	"github.com/ppiankov/creditlens/internal/identity"
	"github.com/ppiankov/creditlens/internal/model"
)

// Summary counts what happened to the raw entries of one aggregation run
type Summary struct {
	Entries      int                        `json:"entries"`       // Raw entries seen
	Kept         int                        `json:"kept"`          // Entries that became a contribution
	OutOfScope   int                        `json:"out_of_scope"`  // Entries discarded by the scope policy
	Duplicates   int                        `json:"duplicates"`    // In-scope entries for a developer already credited on the game
	Categories   map[model.RoleCategory]int `json:"categories"`    // Entries per classified category
	Unclassified []string                   `json:"unclassified"`  // Distinct role strings that matched no rule, sorted
	Games        map[string]GameSummary     `json:"games"`         // Per-game counts, keyed by slug
	Aliased      int                        `json:"aliased_names"` // Kept entries whose name went through the alias table
	Unnamed      int                        `json:"unnamed"`       // In-scope entries whose name was only a note or nickname
}

// GameSummary counts one game's entries
type GameSummary struct {
	Entries    int `json:"entries"`
	Kept       int `json:"kept"`
	Developers int `json:"developers"`
}

// Result is the canonical contribution map plus run counts
type Result struct {
	Developers model.ContributionMap `json:"developers"`
	Summary    Summary               `json:"summary"`
}

// Aggregator merges per-game raw entries into a canonical contribution map.
// Its collaborators are fixed at construction.
type Aggregator struct {
	order      *model.GameOrder
	classifier *classify.Classifier
	normalizer *identity.Normalizer
	logger     *zap.Logger
}

// NewAggregator creates an aggregator. A nil logger discards log output.
func NewAggregator(order *model.GameOrder, classifier *classify.Classifier, normalizer *identity.Normalizer, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		order:      order,
		classifier: classifier,
		normalizer: normalizer,
		logger:     logger.Named("aggregate"),
	}
}

// GroupByGame buckets a flat entry list by each entry's game slug,
// preserving the original relative order inside each bucket.
func GroupByGame(entries []model.RawCreditEntry) map[string][]model.RawCreditEntry {
	out := make(map[string][]model.RawCreditEntry)
	for _, e := range entries {
		out[e.Game] = append(out[e.Game], e)
	}
	return out
}

// Aggregate processes the buckets strictly in configured chronological order.
// Any malformed entry or unknown game aborts the run and no map is returned.
func (a *Aggregator) Aggregate(entriesByGame map[string][]model.RawCreditEntry) (*Result, error) {
	slugs := make([]string, 0, len(entriesByGame))
	for slug := range entriesByGame {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		if !a.order.Contains(slug) {
			return nil, &model.UnknownGameReferenceError{Game: slug}
		}
	}

	developers := make(model.ContributionMap)
	summary := Summary{
		Categories: make(map[model.RoleCategory]int),
		Games:      make(map[string]GameSummary),
	}
	unclassified := make(map[string]bool)

	for _, game := range a.order.Games() {
		entries, ok := entriesByGame[game.Slug]
		if !ok {
			continue
		}

		gs := GameSummary{Entries: len(entries)}
		credited := make(map[string]bool)

		for i, entry := range entries {
			if err := a.check(game.Slug, i, entry); err != nil {
				return nil, err
			}

			summary.Entries++

			class := a.classifier.Classify(entry.Role)
			summary.Categories[class.Category]++
			if class.Category == model.RoleOther {
				unclassified[strings.TrimSpace(entry.Role)] = true
				a.logger.Debug("role matched no rule",
					zap.String("game", game.Slug),
					zap.String("role", entry.Role))
			}

			if !class.InScope {
				summary.OutOfScope++
				continue
			}

			id := a.normalizer.Resolve(entry.Name)
			if id.Key == "" {
				summary.Unnamed++
				a.logger.Debug("name empty after normalization",
					zap.String("game", game.Slug),
					zap.String("name", entry.Name))
				continue
			}

			if credited[id.Key] {
				summary.Duplicates++
				continue
			}
			credited[id.Key] = true

			dev, exists := developers[id.Key]
			if !exists {
				dev = &model.Developer{Key: id.Key, Name: id.Display}
				developers[id.Key] = dev
			}
			dev.Contributions = append(dev.Contributions, model.Contribution{
				Game:    game.Slug,
				Role:    class.Category,
				InScope: true,
			})

			if id.Aliased {
				summary.Aliased++
			}
			summary.Kept++
			gs.Kept++
		}

		gs.Developers = len(credited)
		summary.Games[game.Slug] = gs

		a.logger.Debug("game aggregated",
			zap.String("game", game.Slug),
			zap.Int("entries", gs.Entries),
			zap.Int("kept", gs.Kept),
			zap.Int("developers", gs.Developers))
	}

	summary.Unclassified = make([]string, 0, len(unclassified))
	for role := range unclassified {
		summary.Unclassified = append(summary.Unclassified, role)
	}
	sort.Strings(summary.Unclassified)

	a.logger.Info("aggregation complete",
		zap.Int("developers", developers.Len()),
		zap.Int("entries", summary.Entries),
		zap.Int("kept", summary.Kept),
		zap.Int("out_of_scope", summary.OutOfScope),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("unclassified_roles", len(summary.Unclassified)))

	return &Result{Developers: developers, Summary: summary}, nil
}

// check validates the structural fields of one entry in a game bucket
func (a *Aggregator) check(bucket string, index int, e model.RawCreditEntry) error {
	malformed := func(field, detail string) error {
		return &model.MalformedSourceRecordError{Game: bucket, Index: index, Field: field, Detail: detail}
	}

	switch {
	case strings.TrimSpace(e.Game) == "":
		return malformed("game", "missing")
	case e.Game != bucket:
		if !a.order.Contains(e.Game) {
			return &model.UnknownGameReferenceError{Game: e.Game}
		}
		return malformed("game", "entry for "+e.Game+" filed under "+bucket)
	case strings.TrimSpace(e.Name) == "":
		return malformed("name", "missing")
	case strings.TrimSpace(e.Role) == "":
		return malformed("role", "missing")
	}

	return nil
}
