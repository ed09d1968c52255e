package adapters

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/creditlens/internal/extract"
	"github.com/ppiankov/creditlens/internal/model"
)

// XMLv1Adapter reads the older credits XML layout, where roles, sections
// and names are all <line> elements told apart only by font size
type XMLv1Adapter struct {
	BaseAdapter
}

// NewXMLv1Adapter creates an XML v1 adapter
func NewXMLv1Adapter(base BaseAdapter) *XMLv1Adapter {
	return &XMLv1Adapter{BaseAdapter: base}
}

// Name returns the adapter name
func (a *XMLv1Adapter) Name() string {
	return model.FormatXMLv1
}

// CanHandle accepts explicit v1 sources and auto-detected v1 XML
func (a *XMLv1Adapter) CanHandle(src extract.Source) bool {
	return src.Format == model.FormatXMLv1 || (src.Format == model.FormatXML && sniffXML(src.Data) == model.FormatXMLv1)
}

// Extract walks the lines in document order. A split marker line routes the
// following lines to another game until the next marker; reaching the stop
// header ends the file, or, inside a split, waits for the next marker.
func (a *XMLv1Adapter) Extract(ctx context.Context, src extract.Source) ([]model.RawCreditEntry, error) {
	spec := src.Spec
	if spec.DeveloperFont == "" || spec.RoleFont == "" || spec.SectionFont == "" {
		return nil, fmt.Errorf("%s: xml_v1 source needs developer, role and section font sizes", src.Game)
	}

	lines, err := extract.ParseCreditLines(src.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	splitFonts := make(map[string]bool, len(spec.Splits))
	for _, sp := range spec.Splits {
		splitFonts[sp.Font] = true
	}

	out := a.newCredits()
	state := sectionState{filter: a.filter, enabled: true}
	current := src.Game
	waiting := false
	stopped := false

	for i, line := range lines {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		for _, el := range line.Elements() {
			font := el.Attr("fontsize")
			text := el.Text

			if splitFonts[font] {
				current = src.Game
				for _, sp := range spec.Splits {
					if sp.Font == font && sp.Marker == text {
						current = sp.Game
					}
				}
				waiting = false
				break
			}

			if waiting {
				continue
			}

			if font == spec.SectionFont {
				if spec.StopAt != "" && text == spec.StopAt {
					if current != src.Game {
						waiting = true
					} else {
						stopped = true
					}
					break
				}
				if state.header(text) {
					break
				}
			}

			if !state.enabled {
				continue
			}
			if font == spec.RoleFont {
				state.role = text
			} else if state.role != "" && font == spec.DeveloperFont {
				out.add(current, state.role, state.section, extract.SplitNames(text, " - ")...)
			}
		}

		if stopped {
			break
		}
	}

	a.logger.Debug("xml v1 credits extracted",
		zap.String("game", src.Game),
		zap.Int("lines", len(lines)),
		zap.Int("entries", len(out.entries)),
		zap.Bool("stopped", stopped))

	return out.entries, nil
}

// XMLv2Adapter reads the newer credits XML layout, where each <line>
// carries a style: header/subheader for sections and roles, text/text_pair
// for names
type XMLv2Adapter struct {
	BaseAdapter
}

// NewXMLv2Adapter creates an XML v2 adapter
func NewXMLv2Adapter(base BaseAdapter) *XMLv2Adapter {
	return &XMLv2Adapter{BaseAdapter: base}
}

// Name returns the adapter name
func (a *XMLv2Adapter) Name() string {
	return model.FormatXMLv2
}

// CanHandle accepts explicit v2 sources and auto-detected v2 XML
func (a *XMLv2Adapter) CanHandle(src extract.Source) bool {
	return src.Format == model.FormatXMLv2 || (src.Format == model.FormatXML && sniffXML(src.Data) == model.FormatXMLv2)
}

// Extract walks the lines in document order until the stop header
func (a *XMLv2Adapter) Extract(ctx context.Context, src extract.Source) ([]model.RawCreditEntry, error) {
	lines, err := extract.ParseCreditLines(src.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	out := a.newCredits()
	state := sectionState{filter: a.filter, enabled: true}
	unknown := make(map[string]bool)

walk:
	for i, line := range lines {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

	elements:
		for _, el := range line.Elements() {
			style := el.Attr("style")
			if style == "" {
				// Columns without their own style take the line's
				style = line.Attr("style")
			}
			text := el.Text

			switch style {
			case "header", "subheader":
				if src.Spec.StopAt != "" && text == src.Spec.StopAt {
					break walk
				}
				if state.header(text) {
					break elements
				}
				// Headers double as roles when they are not a known section
				if state.enabled {
					state.role = text
				} else {
					state.role = ""
				}
			case "text", "text_pair":
				if state.role != "" {
					out.add(src.Game, state.role, state.section, text)
				}
			case "break", "image":
			default:
				if !unknown[style] {
					unknown[style] = true
					a.logger.Warn("unhandled credits line style",
						zap.String("game", src.Game),
						zap.String("style", style))
				}
			}
		}
	}

	a.logger.Debug("xml v2 credits extracted",
		zap.String("game", src.Game),
		zap.Int("lines", len(lines)),
		zap.Int("entries", len(out.entries)))

	return out.entries, nil
}

func sniffXML(data []byte) string {
	lines, err := extract.ParseCreditLines(data)
	if err != nil {
		return model.FormatAuto
	}
	return extract.DetectXMLFormat(lines)
}
