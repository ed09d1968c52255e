package model

import (
	"fmt"
	"time"
)

// Source formats understood by the extractor registry
const (
	FormatAuto       = ""           // Detect from the file name and content
	FormatTranscript = "transcript" // Hand-transcribed role -> names list (builtin or YAML)
	FormatTxt        = "txt"        // Underscore-header text credits (UTF-16 or UTF-8)
	FormatXML        = "xml"        // XML credits, v1 or v2 detected from the first line
	FormatXMLv1      = "xml_v1"     // Font-size driven XML credits
	FormatXMLv2      = "xml_v2"     // Style driven XML credits
	FormatDerived    = "derived"    // No own file; credits come from another game's source
)

// Config holds all runtime configuration
type Config struct {
	Games          []GameConfig      `yaml:"games" mapstructure:"games"`
	Roles          RolesConfig       `yaml:"roles" mapstructure:"roles"`
	Aliases        map[string]string `yaml:"aliases,omitempty" mapstructure:"aliases"`
	ReplaceAliases bool              `yaml:"replace_aliases" mapstructure:"replace_aliases"` // Use only Aliases, not the builtin table
	Extraction     ExtractionConfig  `yaml:"extraction" mapstructure:"extraction"`
	Stats          StatsConfig       `yaml:"stats" mapstructure:"stats"`
	Output         OutputConfig      `yaml:"output" mapstructure:"output"`
	Cache          CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency    ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	SkipExtraction bool              `yaml:"skip_extraction" mapstructure:"skip_extraction"` // Load the artifact instead of re-extracting
}

// GameConfig is a game descriptor plus where its credits come from
type GameConfig struct {
	Game   `yaml:",inline" mapstructure:",squash"`
	Source SourceConfig `yaml:"source" mapstructure:"source"`
}

// SourceConfig describes the credits file of one game
type SourceConfig struct {
	Format        string        `yaml:"format,omitempty" mapstructure:"format"`
	Path          string        `yaml:"path,omitempty" mapstructure:"path"`       // Relative to extraction.sources_dir
	StopAt        string        `yaml:"stop_at,omitempty" mapstructure:"stop_at"` // Header after which the rest of the file is ignored
	DeveloperFont string        `yaml:"developer_font,omitempty" mapstructure:"developer_font"`
	RoleFont      string        `yaml:"role_font,omitempty" mapstructure:"role_font"`
	SectionFont   string        `yaml:"section_font,omitempty" mapstructure:"section_font"`
	Splits        []SplitConfig `yaml:"splits,omitempty" mapstructure:"splits"`
}

// SplitConfig routes part of one credits file to another game (e.g., a saga bundled in its parent's file)
type SplitConfig struct {
	Font   string `yaml:"font" mapstructure:"font"`     // Font size of marker lines
	Marker string `yaml:"marker" mapstructure:"marker"` // Marker text that starts the split game
	Game   string `yaml:"game" mapstructure:"game"`     // Game slug the following lines belong to
}

// RolesConfig overrides the role taxonomy
type RolesConfig struct {
	Rules []RoleRuleConfig `yaml:"rules,omitempty" mapstructure:"rules"` // Replaces the builtin rule table when set
	Scope map[string]bool  `yaml:"scope,omitempty" mapstructure:"scope"` // Category -> in scope, merged over defaults
}

// RoleRuleConfig is one ordered classification rule
type RoleRuleConfig struct {
	Category string   `yaml:"category" mapstructure:"category"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

// ExtractionConfig configures source discovery and section filtering
type ExtractionConfig struct {
	SourcesDir       string   `yaml:"sources_dir" mapstructure:"sources_dir"`
	IncludeSections  []string `yaml:"include_sections" mapstructure:"include_sections"`
	ExcludeSections  []string `yaml:"exclude_sections" mapstructure:"exclude_sections"`
	ExcludedEntities []string `yaml:"excluded_entities" mapstructure:"excluded_entities"`
}

// StatsConfig configures the statistics cut-offs
type StatsConfig struct {
	RecentFrom       string   `yaml:"recent_from" mapstructure:"recent_from"`             // First game counted as "recent"
	VeteranUntil     string   `yaml:"veteran_until" mapstructure:"veteran_until"`         // Last game counted as "early"
	OverlapGames     []string `yaml:"overlap_games" mapstructure:"overlap_games"`         // Games compared in the overlap regions
	AttritionExclude []string `yaml:"attrition_exclude" mapstructure:"attrition_exclude"` // Too recent to judge attrition
}

// OutputConfig configures exports
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Artifact string `yaml:"artifact" mapstructure:"artifact"`           // Canonical map snapshot (JSON)
	SQLite   string `yaml:"sqlite,omitempty" mapstructure:"sqlite"`     // Optional SQLite export
	Markdown string `yaml:"markdown,omitempty" mapstructure:"markdown"` // Optional Markdown report
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
}

// CacheConfig configures the extraction cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig configures per-source extraction workers
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns the curated configuration for the Total War credits corpus
func DefaultConfig() *Config {
	return &Config{
		Games: defaultGames(),
		Roles: RolesConfig{},
		Extraction: ExtractionConfig{
			SourcesDir:       "games",
			IncludeSections:  append([]string(nil), defaultIncludeSections...),
			ExcludeSections:  append([]string(nil), defaultExcludeSections...),
			ExcludedEntities: append([]string(nil), defaultExcludedEntities...),
		},
		Stats: StatsConfig{
			RecentFrom:       "2019_three_kingdoms",
			VeteranUntil:     "2006_medieval_2",
			OverlapGames:     []string{"2019_three_kingdoms", "2022_warhammer_3", "2023_pharaoh"},
			AttritionExclude: []string{"2019_three_kingdoms", "2020_troy", "2022_warhammer_3", "2023_pharaoh"},
		},
		Output: OutputConfig{
			Dir:      "processed",
			Artifact: "developer_contributions.json",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".creditlens-cache",
			TTL:     7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}

// GameList returns the bare game descriptors in configured order
func (c *Config) GameList() []Game {
	games := make([]Game, len(c.Games))
	for i, g := range c.Games {
		games[i] = g.Game
	}
	return games
}

// Validate checks cross references inside the configuration
func (c *Config) Validate() error {
	order, err := NewGameOrder(c.GameList())
	if err != nil {
		return fmt.Errorf("games: %w", err)
	}

	for _, g := range c.Games {
		for _, split := range g.Source.Splits {
			if !order.Contains(split.Game) {
				return fmt.Errorf("games: %s: split target: %w", g.Slug, &UnknownGameReferenceError{Game: split.Game})
			}
		}
	}

	for _, ref := range []struct {
		name string
		slug string
	}{
		{"stats.recent_from", c.Stats.RecentFrom},
		{"stats.veteran_until", c.Stats.VeteranUntil},
	} {
		if ref.slug != "" && !order.Contains(ref.slug) {
			return fmt.Errorf("%s: %w", ref.name, &UnknownGameReferenceError{Game: ref.slug})
		}
	}

	for _, slug := range append(append([]string(nil), c.Stats.OverlapGames...), c.Stats.AttritionExclude...) {
		if !order.Contains(slug) {
			return fmt.Errorf("stats: %w", &UnknownGameReferenceError{Game: slug})
		}
	}

	for category := range c.Roles.Scope {
		if _, err := ParseRoleCategory(category); err != nil {
			return fmt.Errorf("roles.scope: %w", err)
		}
	}
	for i, rule := range c.Roles.Rules {
		if _, err := ParseRoleCategory(rule.Category); err != nil {
			return fmt.Errorf("roles.rules[%d]: %w", i, err)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("roles.rules[%d]: no keywords", i)
		}
	}

	if c.Concurrency.Workers < 0 {
		return fmt.Errorf("concurrency.workers must not be negative")
	}

	return nil
}
