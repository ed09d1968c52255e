package stats

import (
	"fmt"
	"sort"

	"github.com/ppiankov/creditlens/internal/model"
)

// maxOverlapGames bounds the 2^n region table
const maxOverlapGames = 6

// Calculator reduces a finished contribution map to summary statistics.
// It never mutates the map.
type Calculator struct {
	order  *model.GameOrder
	config model.StatsConfig
}

// NewCalculator creates a calculator for a game order and cut-off configuration
func NewCalculator(order *model.GameOrder, cfg model.StatsConfig) *Calculator {
	return &Calculator{order: order, config: cfg}
}

// Calculate computes the report. It fails only when the map or the
// configuration references a game outside the order.
func (c *Calculator) Calculate(developers model.ContributionMap) (*model.Report, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	keys := developers.Keys()
	for _, key := range keys {
		for _, contrib := range developers[key].Contributions {
			if !c.order.Contains(contrib.Game) {
				return nil, fmt.Errorf("developer %q: %w", key, &model.UnknownGameReferenceError{Game: contrib.Game})
			}
		}
	}

	report := &model.Report{
		Games:           c.order.Slugs(),
		TotalDevelopers: len(keys),
		RecentFrom:      c.config.RecentFrom,
		VeteranUntil:    c.config.VeteranUntil,
	}

	var signals []model.Signal

	if sig := c.calculateRetention(developers, keys, report); sig != nil {
		signals = append(signals, *sig)
	}

	report.Attrition = c.calculateAttrition(developers, keys)
	if sig := attritionPeak(report.Attrition); sig != nil {
		signals = append(signals, *sig)
	}

	report.Transitions = c.calculateTransitions(developers, keys)
	if sig := topFlow(report.Transitions); sig != nil {
		signals = append(signals, *sig)
	}

	report.ContributionCounts = c.calculateContributionCounts(developers, keys)
	if sig := oneShot(report.ContributionCounts, len(keys)); sig != nil {
		signals = append(signals, *sig)
	}

	report.Overlap = c.calculateOverlap(developers, keys)
	report.RoleCounts = calculateRoleCounts(developers, keys)
	report.Signals = signals

	return report, nil
}

func (c *Calculator) checkConfig() error {
	refs := []string{c.config.RecentFrom, c.config.VeteranUntil}
	refs = append(refs, c.config.OverlapGames...)
	refs = append(refs, c.config.AttritionExclude...)

	for _, ref := range refs {
		if ref != "" && !c.order.Contains(ref) {
			return fmt.Errorf("stats configuration: %w", &model.UnknownGameReferenceError{Game: ref})
		}
	}

	if len(c.config.OverlapGames) > maxOverlapGames {
		return fmt.Errorf("stats configuration: at most %d overlap games, got %d", maxOverlapGames, len(c.config.OverlapGames))
	}

	return nil
}

// calculateRetention counts recent contributors and old timers among them
func (c *Calculator) calculateRetention(developers model.ContributionMap, keys []string, report *model.Report) *model.Signal {
	if c.config.RecentFrom == "" {
		return nil
	}

	recent := 0
	oldTimers := 0

	for _, key := range keys {
		isRecent := false
		isEarly := false
		for _, contrib := range developers[key].Contributions {
			if c.order.AtOrBefore(c.config.RecentFrom, contrib.Game) {
				isRecent = true
			}
			if c.config.VeteranUntil != "" && c.order.AtOrBefore(contrib.Game, c.config.VeteranUntil) {
				isEarly = true
			}
		}
		if isRecent {
			recent++
			if isEarly {
				oldTimers++
			}
		}
	}

	report.RecentContributors = recent
	report.OldTimers = oldTimers

	if recent == 0 {
		return &model.Signal{
			Type:        model.SignalRetention,
			Description: fmt.Sprintf("No contributors from %s onward", c.config.RecentFrom),
			Data:        map[string]interface{}{"recent": 0},
		}
	}

	share := float64(oldTimers) / float64(recent) * 100
	report.OldTimerShare = &share

	return &model.Signal{
		Type:        model.SignalRetention,
		Description: fmt.Sprintf("Old timers: %d of %d recent contributors (%.2f%%)", oldTimers, recent, share),
		Data: map[string]interface{}{
			"old_timers":    oldTimers,
			"recent":        recent,
			"recent_from":   c.config.RecentFrom,
			"veteran_until": c.config.VeteranUntil,
			"share":         share,
			"formula":       "old_timers / recent_contributors * 100",
		},
	}
}

// calculateAttrition reports, per game with at least one contributor, the
// share of its contributors for whom it was their last game
func (c *Calculator) calculateAttrition(developers model.ContributionMap, keys []string) []model.AttritionEntry {
	total := make(map[string]int)
	final := make(map[string]int)

	for _, key := range keys {
		games := orderedGames(c.order, developers[key])
		for _, g := range games {
			total[g]++
		}
		if len(games) > 0 {
			final[games[len(games)-1]]++
		}
	}

	excluded := make(map[string]bool, len(c.config.AttritionExclude))
	for _, g := range c.config.AttritionExclude {
		excluded[g] = true
	}

	entries := make([]model.AttritionEntry, 0, len(total))
	for _, slug := range c.order.Slugs() {
		if total[slug] == 0 {
			continue
		}
		entries = append(entries, model.AttritionEntry{
			Game:     slug,
			Total:    total[slug],
			Final:    final[slug],
			Percent:  float64(final[slug]) / float64(total[slug]) * 100,
			Excluded: excluded[slug],
		})
	}

	return entries
}

// calculateTransitions counts each consecutive pair of games per developer,
// plus one terminal edge to model.NoneGame after the last game
func (c *Calculator) calculateTransitions(developers model.ContributionMap, keys []string) []model.Transition {
	type edge struct{ from, to string }
	counts := make(map[edge]int)

	for _, key := range keys {
		games := orderedGames(c.order, developers[key])
		if len(games) == 0 {
			continue
		}
		for i := 1; i < len(games); i++ {
			counts[edge{games[i-1], games[i]}]++
		}
		counts[edge{games[len(games)-1], model.NoneGame}]++
	}

	rank := func(slug string) int {
		if slug == model.NoneGame {
			return c.order.Len()
		}
		i, _ := c.order.Index(slug)
		return i
	}

	out := make([]model.Transition, 0, len(counts))
	for e, n := range counts {
		out = append(out, model.Transition{From: e.from, To: e.to, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		fi, fj := rank(out[i].From), rank(out[j].From)
		if fi != fj {
			return fi < fj
		}
		return rank(out[i].To) < rank(out[j].To)
	})

	return out
}

// calculateContributionCounts buckets developers by number of games contributed
// to; every bucket from 1 to the number of games is present
func (c *Calculator) calculateContributionCounts(developers model.ContributionMap, keys []string) []model.ContributionCount {
	buckets := make([]model.ContributionCount, c.order.Len())
	for i := range buckets {
		buckets[i] = model.ContributionCount{Games: i + 1, Developers: []string{}}
	}

	for _, key := range keys {
		n := len(orderedGames(c.order, developers[key]))
		if n == 0 || n > len(buckets) {
			continue
		}
		buckets[n-1].Count++
		buckets[n-1].Developers = append(buckets[n-1].Developers, key)
	}

	return buckets
}

// calculateOverlap counts developers by exact membership across the overlap
// games. Region i holds developers whose membership bitmask equals i+1, bit k
// standing for OverlapGames[k].
func (c *Calculator) calculateOverlap(developers model.ContributionMap, keys []string) *model.Overlap {
	games := c.config.OverlapGames
	if len(games) == 0 {
		return nil
	}

	counts := make([]int, 1<<len(games))
	for _, key := range keys {
		dev := developers[key]
		mask := 0
		for k, g := range games {
			if dev.Has(g) {
				mask |= 1 << k
			}
		}
		counts[mask]++
	}

	overlap := &model.Overlap{Games: append([]string(nil), games...)}
	for mask := 1; mask < len(counts); mask++ {
		members := make([]string, 0, len(games))
		for k, g := range games {
			if mask&(1<<k) != 0 {
				members = append(members, g)
			}
		}
		overlap.Regions = append(overlap.Regions, model.OverlapRegion{Members: members, Count: counts[mask]})
	}

	return overlap
}

// calculateRoleCounts tallies contributions per category, in taxonomy order
func calculateRoleCounts(developers model.ContributionMap, keys []string) []model.RoleCount {
	contributions := make(map[model.RoleCategory]int)
	people := make(map[model.RoleCategory]int)

	for _, key := range keys {
		seen := make(map[model.RoleCategory]bool)
		for _, contrib := range developers[key].Contributions {
			contributions[contrib.Role]++
			if !seen[contrib.Role] {
				seen[contrib.Role] = true
				people[contrib.Role]++
			}
		}
	}

	var out []model.RoleCount
	for _, role := range model.AllRoleCategories() {
		if contributions[role] == 0 {
			continue
		}
		out = append(out, model.RoleCount{Role: role, Contributions: contributions[role], Developers: people[role]})
	}

	return out
}

func attritionPeak(entries []model.AttritionEntry) *model.Signal {
	var peak *model.AttritionEntry
	for i := range entries {
		e := &entries[i]
		if e.Excluded {
			continue
		}
		if peak == nil || e.Percent > peak.Percent {
			peak = e
		}
	}
	if peak == nil {
		return nil
	}

	return &model.Signal{
		Type:        model.SignalAttritionPeak,
		Description: fmt.Sprintf("Highest attrition: %s (%d of %d, %.2f%%)", peak.Game, peak.Final, peak.Total, peak.Percent),
		Data: map[string]interface{}{
			"game":    peak.Game,
			"final":   peak.Final,
			"total":   peak.Total,
			"percent": peak.Percent,
			"formula": "final / total * 100",
		},
	}
}

func topFlow(transitions []model.Transition) *model.Signal {
	var top *model.Transition
	for i := range transitions {
		t := &transitions[i]
		if t.To == model.NoneGame {
			continue
		}
		if top == nil || t.Count > top.Count {
			top = t
		}
	}
	if top == nil {
		return nil
	}

	return &model.Signal{
		Type:        model.SignalTopFlow,
		Description: fmt.Sprintf("Largest flow: %s -> %s (%d developers)", top.From, top.To, top.Count),
		Data: map[string]interface{}{
			"from":  top.From,
			"to":    top.To,
			"count": top.Count,
		},
	}
}

func oneShot(counts []model.ContributionCount, total int) *model.Signal {
	if len(counts) == 0 || total == 0 {
		return nil
	}
	single := counts[0].Count
	share := float64(single) / float64(total) * 100

	return &model.Signal{
		Type:        model.SignalOneShot,
		Description: fmt.Sprintf("Credited on a single game: %d of %d (%.2f%%)", single, total, share),
		Data: map[string]interface{}{
			"single":  single,
			"total":   total,
			"share":   share,
			"formula": "single_game_developers / total_developers * 100",
		},
	}
}

// orderedGames returns a developer's distinct games sorted by release order.
// Contributions are already ordered in an aggregated map; reloaded maps are
// not trusted to be.
func orderedGames(order *model.GameOrder, dev *model.Developer) []string {
	seen := make(map[string]bool, len(dev.Contributions))
	games := make([]string, 0, len(dev.Contributions))
	for _, c := range dev.Contributions {
		if !seen[c.Game] {
			seen[c.Game] = true
			games = append(games, c.Game)
		}
	}
	sort.SliceStable(games, func(i, j int) bool {
		ii, _ := order.Index(games[i])
		ij, _ := order.Index(games[j])
		return ii < ij
	})
	return games
}
