package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/creditlens/internal/model"
)

// Source is one credits file (or builtin transcript) to extract
type Source struct {
	Game   string             // Game slug the file belongs to
	Path   string             // Empty for builtin transcripts
	Format string             // One of the model.Format* constants
	Spec   model.SourceConfig // Per-game parsing hints
	Data   []byte             // File contents, loaded by Load
}

// Builtin reports whether the source has no backing file
func (s Source) Builtin() bool {
	return s.Path == ""
}

// Load reads the source file into Data. Builtin sources are left untouched.
func (s *Source) Load() error {
	if s.Builtin() || s.Data != nil {
		return nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.Path, err)
	}
	s.Data = data
	return nil
}

// Discovery is the result of scanning a sources directory
type Discovery struct {
	Sources []Source // In game order
	Missing []string // Games with no credits file and no builtin transcript
}

var candidateFiles = []struct {
	name   string
	format string
}{
	{"credits.txt", model.FormatTxt},
	{"credits.xml", model.FormatXML},
	{"credits.yaml", model.FormatTranscript},
	{"credits.yml", model.FormatTranscript},
}

// Discover locates the credits source of every configured game, looking for
// <dir>/<slug>/credits.{txt,xml,yaml} unless the game names an explicit path.
// Derived games (split out of another game's file) have no source of their own.
// hasBuiltin reports games with a transcript compiled into the binary.
func Discover(dir string, games []model.GameConfig, hasBuiltin func(slug string) bool) (*Discovery, error) {
	out := &Discovery{}

	for _, g := range games {
		spec := g.Source
		if spec.Format == model.FormatDerived {
			continue
		}

		if spec.Path != "" {
			path := spec.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("game %s: %w", g.Slug, err)
			}
			format := spec.Format
			if format == model.FormatAuto {
				format = formatFromExt(path)
			}
			out.Sources = append(out.Sources, Source{Game: g.Slug, Path: path, Format: format, Spec: spec})
			continue
		}

		src, found, err := findCandidate(dir, g.Slug, spec)
		if err != nil {
			return nil, err
		}
		if found {
			out.Sources = append(out.Sources, src)
			continue
		}

		if (spec.Format == model.FormatAuto || spec.Format == model.FormatTranscript) && hasBuiltin != nil && hasBuiltin(g.Slug) {
			out.Sources = append(out.Sources, Source{Game: g.Slug, Format: model.FormatTranscript, Spec: spec})
			continue
		}

		out.Missing = append(out.Missing, g.Slug)
	}

	return out, nil
}

func findCandidate(dir, slug string, spec model.SourceConfig) (Source, bool, error) {
	for _, c := range candidateFiles {
		path := filepath.Join(dir, slug, c.name)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Source{}, false, fmt.Errorf("game %s: %w", slug, err)
		}
		if info.IsDir() {
			continue
		}

		format := spec.Format
		if format == model.FormatAuto || !compatible(format, c.format) {
			format = c.format
		}
		return Source{Game: slug, Path: path, Format: format, Spec: spec}, true, nil
	}
	return Source{}, false, nil
}

// compatible reports whether a configured format can read a file found by extension
func compatible(configured, found string) bool {
	if configured == found {
		return true
	}
	if found == model.FormatXML {
		return configured == model.FormatXMLv1 || configured == model.FormatXMLv2
	}
	return false
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return model.FormatTxt
	case ".xml":
		return model.FormatXML
	case ".yaml", ".yml":
		return model.FormatTranscript
	}
	return model.FormatAuto
}
