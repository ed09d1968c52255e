package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/creditlens/internal/extract"
	"github.com/ppiankov/creditlens/internal/model"
)

type transcriptRole struct {
	Role  string   `yaml:"role"`
	Names []string `yaml:"names"`
}

// transcriptFile is the YAML layout of a hand transcribed credits list
type transcriptFile struct {
	Credits []transcriptRole `yaml:"credits"`
}

// TranscriptAdapter reads hand transcribed role -> names lists, either
// compiled in or from a credits.yaml file
type TranscriptAdapter struct {
	BaseAdapter
}

// NewTranscriptAdapter creates a transcript adapter
func NewTranscriptAdapter(base BaseAdapter) *TranscriptAdapter {
	return &TranscriptAdapter{BaseAdapter: base}
}

// HasBuiltin reports whether a transcript for the game is compiled in
func HasBuiltin(slug string) bool {
	_, ok := builtinTranscripts[slug]
	return ok
}

// Name returns the adapter name
func (a *TranscriptAdapter) Name() string {
	return model.FormatTranscript
}

// CanHandle accepts transcript sources
func (a *TranscriptAdapter) CanHandle(src extract.Source) bool {
	return src.Format == model.FormatTranscript
}

// Extract emits one entry per listed name, in listing order
func (a *TranscriptAdapter) Extract(ctx context.Context, src extract.Source) ([]model.RawCreditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	roles, err := a.load(src)
	if err != nil {
		return nil, err
	}

	out := a.newCredits()
	index := 0
	for _, r := range roles {
		role := extract.CollapseSpace(r.Role)
		if role == "" {
			return nil, &model.MalformedSourceRecordError{Game: src.Game, Index: index, Field: "role", Detail: "transcript block without a role"}
		}
		for _, name := range r.Names {
			name = extract.CollapseSpace(name)
			if name == "" {
				return nil, &model.MalformedSourceRecordError{Game: src.Game, Index: index, Field: "name", Detail: "empty name under " + role}
			}
			out.add(src.Game, role, "", name)
			index++
		}
	}

	a.logger.Debug("transcript extracted",
		zap.String("game", src.Game),
		zap.Bool("builtin", src.Builtin()),
		zap.Int("entries", len(out.entries)))
	return out.entries, nil
}

func (a *TranscriptAdapter) load(src extract.Source) ([]transcriptRole, error) {
	if src.Builtin() {
		roles, ok := builtinTranscripts[src.Game]
		if !ok {
			return nil, fmt.Errorf("no builtin transcript for %s", src.Game)
		}
		return roles, nil
	}

	var file transcriptFile
	dec := yaml.NewDecoder(bytes.NewReader(src.Data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse transcript %s: %w", src.Path, err)
	}
	return file.Credits, nil
}
