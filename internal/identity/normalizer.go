package identity

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const memoSize = 8192

var (
	// ErrAliasCycle is returned when alias targets loop back on themselves
	ErrAliasCycle = errors.New("alias cycle")
	// ErrAliasConflict is returned when one variant is mapped to two different names
	ErrAliasConflict = errors.New("conflicting alias")
)

var (
	nicknamePattern      = regexp.MustCompile(`'[\p{L}\p{N}_]+'`)
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
)

// Typographic look-alikes seen in credits dumps
var lookAlikes = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u201b", "'", "\u2032", "'", "`", "'", "\u00b4", "'",
	"\u201c", "\"", "\u201d", "\"", "\u201e", "\"", "\u2033", "\"",
	"\u2010", "-", "\u2011", "-", "\u2012", "-", "\u2013", "-", "\u2014", "-", "\u2015", "-", "\u2212", "-",
	"\u00a0", " ", "\u2007", " ", "\u2009", " ", "\u202f", " ", "\u3000", " ",
	"\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "",
	"\u2026", "...",
)

// Letters that do not decompose into base + combining mark
var foldLetters = strings.NewReplacer(
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ß", "ss",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ı", "i",
	"þ", "th", "Þ", "TH",
)

// Identity is the resolved identity of one raw name
type Identity struct {
	Key     string `json:"key"`     // Canonical key contributions are indexed under
	Display string `json:"display"` // Human-readable name
	Aliased bool   `json:"aliased"` // Whether the alias table was consulted successfully
}

type aliasTarget struct {
	key     string
	display string
}

// Normalizer resolves raw names against a fixed alias table.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	aliases  map[string]aliasTarget
	displays map[string]string // final target key -> curated display
	memo     *lru.Cache[string, Identity]
}

// NewNormalizer builds a normalizer from variant -> canonical name pairs.
// Both sides are canonicalized once; chains (a -> b -> c) collapse to their
// final target. A cycle, or one variant mapped to two different names, is an error.
func NewNormalizer(aliases map[string]string) (*Normalizer, error) {
	raw := make([]string, 0, len(aliases))
	for k := range aliases {
		raw = append(raw, k)
	}
	sort.Strings(raw)

	edges := make(map[string]string, len(aliases))
	displays := make(map[string]string, len(aliases))

	for _, variant := range raw {
		target := aliases[variant]
		from := Canonicalize(variant)
		to := Canonicalize(target)
		if from == "" || to == "" {
			return nil, fmt.Errorf("alias %q -> %q: name is empty after canonicalization", variant, target)
		}

		if prev, ok := edges[from]; ok && prev != to {
			return nil, fmt.Errorf("%w: %q maps to both %q and %q", ErrAliasConflict, from, prev, to)
		}
		edges[from] = to

		if _, ok := displays[to]; !ok {
			displays[to] = DisplayForm(target)
		}
	}

	n := &Normalizer{
		aliases:  make(map[string]aliasTarget, len(edges)),
		displays: make(map[string]string),
	}

	for from := range edges {
		final, err := follow(edges, from)
		if err != nil {
			return nil, err
		}
		n.aliases[from] = aliasTarget{key: final, display: displays[final]}
		n.displays[final] = displays[final]
	}

	// Size is a positive constant, New cannot fail
	n.memo, _ = lru.New[string, Identity](memoSize)

	return n, nil
}

// follow walks alias edges until a name with no outgoing edge (or a self edge)
func follow(edges map[string]string, start string) (string, error) {
	seen := map[string]bool{start: true}
	current := start
	path := []string{start}

	for {
		next, ok := edges[current]
		if !ok || next == current {
			return current, nil
		}
		if seen[next] {
			return "", fmt.Errorf("%w: %s -> %s", ErrAliasCycle, strings.Join(path, " -> "), next)
		}
		seen[next] = true
		path = append(path, next)
		current = next
	}
}

// Normalize returns the canonical key for a raw name
func (n *Normalizer) Normalize(raw string) string {
	return n.Resolve(raw).Key
}

// Resolve returns the canonical key and display name for a raw name.
// It is total: any input, including the empty string, yields an Identity.
func (n *Normalizer) Resolve(raw string) Identity {
	if cached, ok := n.memo.Get(raw); ok {
		return cached
	}

	id := n.resolve(raw)
	n.memo.Add(raw, id)
	return id
}

func (n *Normalizer) resolve(raw string) Identity {
	key := Canonicalize(raw)
	if target, ok := n.aliases[key]; ok {
		return Identity{Key: target.key, Display: target.display, Aliased: true}
	}

	id := Identity{Key: key, Display: DisplayForm(raw)}

	// Names that only appear as alias targets still take the curated spelling
	if display, ok := n.displays[key]; ok {
		id.Display = display
		id.Aliased = true
	}

	return id
}

// Len returns the number of alias entries after canonicalization
func (n *Normalizer) Len() int {
	return len(n.aliases)
}

// Canonicalize reduces a raw name to its comparison key: cleaned up,
// lowercased and with diacritics removed.
func Canonicalize(raw string) string {
	s := cleanup(raw)
	s = strings.ToLower(s)
	s = foldDiacritics(s)
	return cleanup(s)
}

// DisplayForm cleans up a raw name for display without case or accent folding
func DisplayForm(raw string) string {
	return cleanup(raw)
}

// cleanup repeats the text pass until it reaches a fixpoint, so removing
// one nickname cannot leave a half-formed one behind.
func cleanup(raw string) string {
	s := raw
	for {
		next := cleanupOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func cleanupOnce(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = width.Fold.String(s)
	s = lookAlikes.Replace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = nicknamePattern.ReplaceAllString(s, "")
	s = parentheticalPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return foldLetters.Replace(out)
}
