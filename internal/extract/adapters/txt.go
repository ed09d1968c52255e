package adapters

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/creditlens/internal/extract"
	"github.com/ppiankov/creditlens/internal/model"
)

// TxtAdapter reads the plain-text credits layout: header lines start with
// "_", every other line is one or more "|" separated names. Roles only count
// once an included section header has been seen.
type TxtAdapter struct {
	BaseAdapter
}

// NewTxtAdapter creates a plain-text adapter
func NewTxtAdapter(base BaseAdapter) *TxtAdapter {
	return &TxtAdapter{BaseAdapter: base}
}

// Name returns the adapter name
func (a *TxtAdapter) Name() string {
	return model.FormatTxt
}

// CanHandle accepts txt sources
func (a *TxtAdapter) CanHandle(src extract.Source) bool {
	return src.Format == model.FormatTxt
}

// Extract walks the file line by line
func (a *TxtAdapter) Extract(ctx context.Context, src extract.Source) ([]model.RawCreditEntry, error) {
	text, err := extract.DecodeText(src.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	out := a.newCredits()
	state := sectionState{filter: a.filter}

	for i, line := range extract.Lines(text) {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if strings.HasPrefix(line, "_") {
			header := extract.CollapseSpace(line[1:])
			if src.Spec.StopAt != "" && header == src.Spec.StopAt {
				break
			}
			if state.header(header) {
				continue
			}
			if state.enabled {
				state.role = header
			}
			continue
		}

		if state.enabled && state.role != "" {
			out.add(src.Game, state.role, state.section, extract.SplitNames(line, "|")...)
		}
	}

	a.logger.Debug("txt credits extracted",
		zap.String("game", src.Game),
		zap.Int("entries", len(out.entries)))

	return out.entries, nil
}
