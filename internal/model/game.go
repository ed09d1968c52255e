package model

import (
	"fmt"
	"strings"
)

// NoneGame is the synthetic flow target used after a developer's last contribution
const NoneGame = "none"

// Game describes one title in the release chronology
type Game struct {
	Slug  string  `json:"slug" yaml:"slug"`                       // Canonical slug (e.g., "2004_rome")
	Year  int     `json:"year" yaml:"year"`                       // Release year
	Label string  `json:"label,omitempty" yaml:"label,omitempty"` // Human-readable label for reports
	Saga  bool    `json:"saga,omitempty" yaml:"saga,omitempty"`   // Standalone saga release counted as its own game
	Color string  `json:"color,omitempty" yaml:"color,omitempty"` // Flow diagram node colour
	X     float64 `json:"x,omitempty" yaml:"x,omitempty"`         // Flow diagram node position
	Y     float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// DisplayLabel returns the label, falling back to the slug
func (g Game) DisplayLabel() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Slug
}

// GameOrder is the fixed chronological order of games for a pipeline run.
// It is immutable once built.
type GameOrder struct {
	games []Game
	index map[string]int
}

// NewGameOrder builds a game order from games listed oldest first
func NewGameOrder(games []Game) (*GameOrder, error) {
	if len(games) == 0 {
		return nil, fmt.Errorf("game order is empty")
	}

	order := &GameOrder{
		games: make([]Game, 0, len(games)),
		index: make(map[string]int, len(games)),
	}

	for i, g := range games {
		slug := strings.TrimSpace(g.Slug)
		if slug == "" {
			return nil, fmt.Errorf("game %d has no slug", i)
		}
		if slug == NoneGame {
			return nil, fmt.Errorf("game slug %q is reserved", NoneGame)
		}
		if _, dup := order.index[slug]; dup {
			return nil, fmt.Errorf("duplicate game slug %q", slug)
		}
		if i > 0 && g.Year < order.games[i-1].Year {
			return nil, fmt.Errorf("game %q (%d) is listed after %q (%d)", slug, g.Year, order.games[i-1].Slug, order.games[i-1].Year)
		}
		g.Slug = slug
		order.index[slug] = i
		order.games = append(order.games, g)
	}

	return order, nil
}

// MustGameOrder is NewGameOrder for static tables; it panics on error
func MustGameOrder(games []Game) *GameOrder {
	order, err := NewGameOrder(games)
	if err != nil {
		panic(err)
	}
	return order
}

// Games returns a copy of the games in chronological order
func (o *GameOrder) Games() []Game {
	out := make([]Game, len(o.games))
	copy(out, o.games)
	return out
}

// Slugs returns the game slugs in chronological order
func (o *GameOrder) Slugs() []string {
	out := make([]string, len(o.games))
	for i, g := range o.games {
		out[i] = g.Slug
	}
	return out
}

// Len returns the number of games
func (o *GameOrder) Len() int {
	return len(o.games)
}

// Index returns the chronological position of a game
func (o *GameOrder) Index(slug string) (int, bool) {
	i, ok := o.index[slug]
	return i, ok
}

// Contains reports whether the slug is part of the order
func (o *GameOrder) Contains(slug string) bool {
	_, ok := o.index[slug]
	return ok
}

// Game returns the descriptor for a slug
func (o *GameOrder) Game(slug string) (Game, bool) {
	i, ok := o.index[slug]
	if !ok {
		return Game{}, false
	}
	return o.games[i], true
}

// AtOrBefore reports whether game a is released no later than game b.
// Unknown slugs are never ordered.
func (o *GameOrder) AtOrBefore(a, b string) bool {
	ia, okA := o.index[a]
	ib, okB := o.index[b]
	return okA && okB && ia <= ib
}
