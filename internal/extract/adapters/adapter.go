package adapters

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/creditlens/internal/extract"
	"github.com/ppiankov/creditlens/internal/identity"
	"github.com/ppiankov/creditlens/internal/model"
)

// Extractor turns one credits source into raw credit entries
type Extractor interface {
	// Name returns the extractor name
	Name() string

	// CanHandle checks if this extractor understands the source
	CanHandle(src extract.Source) bool

	// Extract reads every credited (name, role) pair from the source
	Extract(ctx context.Context, src extract.Source) ([]model.RawCreditEntry, error)
}

// Registry manages format extractors
type Registry struct {
	extractors []Extractor
}

// NewRegistry creates a registry with the builtin extractors
func NewRegistry(filter *extract.SectionFilter, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := BaseAdapter{filter: filter, logger: logger.Named("extract")}

	registry := &Registry{}
	registry.Register(NewTranscriptAdapter(base))
	registry.Register(NewTxtAdapter(base))
	registry.Register(NewXMLv1Adapter(base))
	registry.Register(NewXMLv2Adapter(base))

	return registry
}

// Register registers a new extractor; earlier registrations win
func (r *Registry) Register(e Extractor) {
	r.extractors = append(r.extractors, e)
}

// FindExtractor returns the first extractor that can handle the source
func (r *Registry) FindExtractor(src extract.Source) (Extractor, error) {
	for _, e := range r.extractors {
		if e.CanHandle(src) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no extractor for %s source of %s", formatName(src.Format), src.Game)
}

// Extract finds an extractor for the source and runs it
func (r *Registry) Extract(ctx context.Context, src extract.Source) ([]model.RawCreditEntry, error) {
	e, err := r.FindExtractor(src)
	if err != nil {
		return nil, err
	}
	entries, err := e.Extract(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name(), err)
	}
	return entries, nil
}

// BaseAdapter provides common functionality for extractors
type BaseAdapter struct {
	filter *extract.SectionFilter
	logger *zap.Logger
}

// credits accumulates entries for one source
type credits struct {
	base    *BaseAdapter
	entries []model.RawCreditEntry
}

func (b *BaseAdapter) newCredits() *credits {
	return &credits{base: b}
}

// add records names under a role, skipping excluded entities and names
// that are nothing but a note or nickname
func (c *credits) add(game, role, section string, names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if identity.Canonicalize(name) == "" {
			c.base.logger.Debug("skipping credited name with no name text",
				zap.String("game", game),
				zap.String("role", role),
				zap.String("name", name))
			continue
		}
		if c.base.filter != nil && c.base.filter.ExcludedEntity(name) {
			continue
		}
		c.entries = append(c.entries, model.RawCreditEntry{Game: game, Name: name, Role: role, Section: section})
	}
}

// sectionState tracks which section and role the cursor is in
type sectionState struct {
	filter  *extract.SectionFilter
	enabled bool
	section string
	role    string
}

// header applies a section header; it reports whether the header was a
// known section (and so cannot also be a role)
func (s *sectionState) header(text string) bool {
	if s.filter == nil {
		return false
	}
	switch {
	case s.filter.Includes(text):
		s.enabled = true
	case s.filter.Excludes(text):
		s.enabled = false
	default:
		return false
	}
	s.section = text
	s.role = ""
	return true
}

func formatName(format string) string {
	if format == model.FormatAuto {
		return "unknown-format"
	}
	return format
}
