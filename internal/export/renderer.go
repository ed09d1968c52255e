package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/creditlens/internal/model"
)

const banner = "═══════════════════════════════════════════════════════════"

// Flow is the node/link data a Sankey renderer needs
type Flow struct {
	Nodes []FlowNode `json:"nodes"`
	Links []FlowLink `json:"links"`
}

// FlowNode is one game (or the terminal "none" node)
type FlowNode struct {
	Slug  string  `json:"slug"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// FlowLink connects two nodes by index
type FlowLink struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Value  int    `json:"value"`
	Color  string `json:"color,omitempty"` // Source node colour
}

// Renderer writes reports in the supported output formats
type Renderer struct {
	order *model.GameOrder
}

// NewRenderer creates a renderer that labels games using the given order
func NewRenderer(order *model.GameOrder) *Renderer {
	return &Renderer{order: order}
}

// BuildFlow converts transitions into Sankey nodes and links. The terminal
// node is appended after the games.
func (r *Renderer) BuildFlow(report *model.Report) (*Flow, error) {
	flow := &Flow{}
	games := r.order.Games()
	for _, g := range games {
		flow.Nodes = append(flow.Nodes, FlowNode{Slug: g.Slug, Label: g.DisplayLabel(), Color: g.Color, X: g.X, Y: g.Y})
	}
	none := model.NoneGameDescriptor
	flow.Nodes = append(flow.Nodes, FlowNode{Slug: none.Slug, Label: none.Label, Color: none.Color, X: none.X, Y: none.Y})
	noneIndex := len(games)

	index := func(slug string) (int, error) {
		if slug == model.NoneGame {
			return noneIndex, nil
		}
		i, ok := r.order.Index(slug)
		if !ok {
			return 0, &model.UnknownGameReferenceError{Game: slug}
		}
		return i, nil
	}

	for _, t := range report.Transitions {
		src, err := index(t.From)
		if err != nil {
			return nil, err
		}
		dst, err := index(t.To)
		if err != nil {
			return nil, err
		}
		flow.Links = append(flow.Links, FlowLink{Source: src, Target: dst, Value: t.Count, Color: flow.Nodes[src].Color})
	}

	return flow, nil
}

// RenderJSON writes the statistics report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	return writeJSON(path, report)
}

// RenderFlowJSON writes the Sankey node/link data
func (r *Renderer) RenderFlowJSON(report *model.Report, path string) error {
	flow, err := r.BuildFlow(report)
	if err != nil {
		return fmt.Errorf("build flow: %w", err)
	}
	return writeJSON(path, flow)
}

// RenderMarkdown writes a Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, []byte(r.Markdown(report)), 0644)
}

// Markdown formats the report as Markdown
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Developer Contributions\n\n")
	fmt.Fprintf(&b, "- **Games evaluated:** %d\n", len(report.Games))
	fmt.Fprintf(&b, "- **Unique developers:** %d\n", report.TotalDevelopers)
	if report.RecentFrom != "" {
		fmt.Fprintf(&b, "- **Recent contributors** (%s onward): %d\n", r.label(report.RecentFrom), report.RecentContributors)
	}
	if report.OldTimerShare != nil {
		fmt.Fprintf(&b, "- **Remaining old timers** (%s or earlier): %d (%.2f%% of recent contributors)\n",
			r.label(report.VeteranUntil), report.OldTimers, *report.OldTimerShare)
	}
	b.WriteString("\n")

	if len(report.Attrition) > 0 {
		b.WriteString("## Attrition\n\n")
		b.WriteString("| Game | Contributors | Last game for | Attrition |\n")
		b.WriteString("|---|---:|---:|---:|\n")
		for _, a := range report.Attrition {
			pct := fmt.Sprintf("%.2f%%", a.Percent)
			if a.Excluded {
				pct += " (too recent)"
			}
			fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", r.label(a.Game), a.Total, a.Final, pct)
		}
		b.WriteString("\n")
	}

	if len(report.ContributionCounts) > 0 {
		b.WriteString("## Games Contributed To\n\n")
		b.WriteString("| Games | Developers |\n")
		b.WriteString("|---:|---:|\n")
		for _, c := range report.ContributionCounts {
			fmt.Fprintf(&b, "| %d | %d |\n", c.Games, c.Count)
		}
		b.WriteString("\n")
	}

	if report.Overlap != nil {
		b.WriteString("## Overlap\n\n")
		b.WriteString("| Contributed to exactly | Developers |\n")
		b.WriteString("|---|---:|\n")
		for _, region := range report.Overlap.Regions {
			labels := make([]string, len(region.Members))
			for i, m := range region.Members {
				labels[i] = r.label(m)
			}
			fmt.Fprintf(&b, "| %s | %d |\n", strings.Join(labels, " + "), region.Count)
		}
		b.WriteString("\n")
	}

	if len(report.RoleCounts) > 0 {
		b.WriteString("## Roles\n\n")
		b.WriteString("| Role | Contributions | Developers |\n")
		b.WriteString("|---|---:|---:|\n")
		for _, rc := range report.RoleCounts {
			fmt.Fprintf(&b, "| %s | %d | %d |\n", rc.Role, rc.Contributions, rc.Developers)
		}
		b.WriteString("\n")
	}

	if len(report.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, s := range report.Signals {
			fmt.Fprintf(&b, "- **%s:** %s\n", s.Type, s.Description)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "  Developers: %d across %d games\n", report.TotalDevelopers, len(report.Games))
	fmt.Fprintln(w, banner)

	if report.RecentFrom != "" {
		fmt.Fprintf(w, "Recent contributors: %d\n", report.RecentContributors)
	}
	if report.OldTimerShare != nil {
		fmt.Fprintf(w, "Remaining old timers: %d (%.2f%% of recent contributors)\n", report.OldTimers, *report.OldTimerShare)
	}
	for _, s := range report.Signals {
		fmt.Fprintf(w, "  • %s\n", s.Description)
	}
}

func (r *Renderer) label(slug string) string {
	if g, ok := r.order.Game(slug); ok {
		return g.DisplayLabel()
	}
	return slug
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
