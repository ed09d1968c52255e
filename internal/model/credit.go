package model

import "sort"

// RawCreditEntry is one (game, name, role) record produced by a source extractor.
// Entries are not deduplicated and are consumed immediately by normalization.
type RawCreditEntry struct {
	Game    string `json:"game"`              // Game slug the credit belongs to
	Name    string `json:"name"`              // Raw display name as printed in the credits
	Role    string `json:"role"`              // Raw job title
	Section string `json:"section,omitempty"` // Enclosing section header, if any (provenance only)
}

// Contribution is one developer's credit on one game
type Contribution struct {
	Game    string       `json:"game"`
	Role    RoleCategory `json:"role"`
	InScope bool         `json:"-"` // Always true in an aggregated map
}

// Developer is a canonical identity with contributions in chronological order
type Developer struct {
	Key           string         `json:"key"`  // Canonical name key
	Name          string         `json:"name"` // Display name
	Contributions []Contribution `json:"contributions"`
}

// First returns the earliest contribution
func (d *Developer) First() (Contribution, bool) {
	if len(d.Contributions) == 0 {
		return Contribution{}, false
	}
	return d.Contributions[0], true
}

// Last returns the latest contribution
func (d *Developer) Last() (Contribution, bool) {
	if len(d.Contributions) == 0 {
		return Contribution{}, false
	}
	return d.Contributions[len(d.Contributions)-1], true
}

// Games returns the contributed game slugs in chronological order
func (d *Developer) Games() []string {
	out := make([]string, len(d.Contributions))
	for i, c := range d.Contributions {
		out[i] = c.Game
	}
	return out
}

// Has reports whether the developer contributed to the game
func (d *Developer) Has(game string) bool {
	for _, c := range d.Contributions {
		if c.Game == game {
			return true
		}
	}
	return false
}

// ContributionMap maps canonical keys to developers.
// Consumers must not rely on map order; Keys gives a stable order for output.
type ContributionMap map[string]*Developer

// Keys returns the canonical keys sorted lexically
func (m ContributionMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of developers
func (m ContributionMap) Len() int {
	return len(m)
}
