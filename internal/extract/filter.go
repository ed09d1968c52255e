package extract

import (
	"sort"
	"strings"

	"github.com/ppiankov/creditlens/internal/identity"
	"github.com/ppiankov/creditlens/internal/model"
)

// SectionFilter decides which section headers open or close a run of
// credited roles, and which credited names are not people
type SectionFilter struct {
	include  map[string]bool
	exclude  map[string]bool
	entities map[string]bool
}

// NewSectionFilter builds a filter from the extraction configuration
func NewSectionFilter(cfg model.ExtractionConfig) *SectionFilter {
	f := &SectionFilter{
		include:  make(map[string]bool, len(cfg.IncludeSections)),
		exclude:  make(map[string]bool, len(cfg.ExcludeSections)),
		entities: make(map[string]bool, len(cfg.ExcludedEntities)),
	}
	for _, s := range cfg.IncludeSections {
		f.include[CollapseSpace(s)] = true
	}
	for _, s := range cfg.ExcludeSections {
		f.exclude[CollapseSpace(s)] = true
	}
	for _, e := range cfg.ExcludedEntities {
		f.entities[identity.DisplayForm(e)] = true
	}
	return f
}

// Includes reports whether the header starts a section whose roles are kept
func (f *SectionFilter) Includes(header string) bool {
	return f.include[CollapseSpace(header)]
}

// Excludes reports whether the header starts a section whose roles are dropped
func (f *SectionFilter) Excludes(header string) bool {
	return f.exclude[CollapseSpace(header)]
}

// ExcludedEntity reports whether a credited name is a company, ensemble or team label
func (f *SectionFilter) ExcludedEntity(name string) bool {
	return f.entities[identity.DisplayForm(name)]
}

// Fingerprint is a stable encoding of the filter settings. Extracted entries
// depend on it, so it is part of the entry cache key.
func (f *SectionFilter) Fingerprint() string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	for _, set := range []map[string]bool{f.include, f.exclude, f.entities} {
		keys := make([]string, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(strings.Join(keys, "\x1f"))
		b.WriteByte('\x1e')
	}
	return b.String()
}
