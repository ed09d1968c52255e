package classify

import (
	"fmt"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ppiankov/creditlens/internal/model"
)

const memoSize = 4096

// Result is the classification of one raw role string
type Result struct {
	Category model.RoleCategory `json:"category"`
	InScope  bool               `json:"in_scope"`
	Keyword  string             `json:"keyword,omitempty"` // Keyword that matched; empty on fallthrough
}

// Classifier maps free-text job titles to role categories
type Classifier struct {
	rules  []compiledRule
	policy ScopePolicy
	memo   *lru.Cache[string, Result]
}

type compiledRule struct {
	category model.RoleCategory
	keywords []compiledKeyword
}

type compiledKeyword struct {
	text   string
	tokens []string
}

// NewClassifier creates a classifier. Nil rules or policy select the defaults.
func NewClassifier(rules []Rule, policy ScopePolicy) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	if policy == nil {
		policy = DefaultScopePolicy()
	}

	c := &Classifier{
		rules:  make([]compiledRule, 0, len(rules)),
		policy: copyPolicy(policy),
	}

	for _, rule := range rules {
		cr := compiledRule{category: rule.Category}
		for _, kw := range rule.Keywords {
			tokens := tokenize(kw)
			if len(tokens) == 0 {
				continue
			}
			cr.keywords = append(cr.keywords, compiledKeyword{text: strings.ToLower(strings.TrimSpace(kw)), tokens: tokens})
		}
		c.rules = append(c.rules, cr)
	}

	// Size is a positive constant, New cannot fail
	c.memo, _ = lru.New[string, Result](memoSize)

	return c
}

// FromConfig builds a classifier from the roles section of the configuration
func FromConfig(cfg model.RolesConfig) (*Classifier, error) {
	var rules []Rule
	if len(cfg.Rules) > 0 {
		rules = make([]Rule, 0, len(cfg.Rules))
		for i, rc := range cfg.Rules {
			category, err := model.ParseRoleCategory(rc.Category)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			rules = append(rules, Rule{Category: category, Keywords: rc.Keywords})
		}
	}

	policy, err := DefaultScopePolicy().With(cfg.Scope)
	if err != nil {
		return nil, fmt.Errorf("scope: %w", err)
	}

	return NewClassifier(rules, policy), nil
}

// WithPolicy returns a classifier sharing the rule table under a different scope policy
func (c *Classifier) WithPolicy(policy ScopePolicy) *Classifier {
	out := &Classifier{
		rules:  c.rules,
		policy: copyPolicy(policy),
	}
	out.memo, _ = lru.New[string, Result](memoSize)
	return out
}

// Policy returns a copy of the scope policy
func (c *Classifier) Policy() ScopePolicy {
	return copyPolicy(c.policy)
}

// Classify returns the category and scope decision for a raw role string.
// It is total: unmatched input yields model.RoleOther.
func (c *Classifier) Classify(rawRole string) Result {
	if cached, ok := c.memo.Get(rawRole); ok {
		return cached
	}

	result := c.classify(rawRole)
	c.memo.Add(rawRole, result)
	return result
}

func (c *Classifier) classify(rawRole string) Result {
	tokens := tokenize(rawRole)

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if containsPhrase(tokens, kw.tokens) {
				return Result{
					Category: rule.category,
					InScope:  c.policy.InScope(rule.category),
					Keyword:  kw.text,
				}
			}
		}
	}

	return Result{
		Category: model.RoleOther,
		InScope:  c.policy.InScope(model.RoleOther),
	}
}

// tokenize lowercases and splits on anything that is not a letter or digit
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsPhrase reports whether phrase occurs as consecutive whole tokens.
// The last token may carry a plural suffix ("tester" matches "testers").
func containsPhrase(tokens, phrase []string) bool {
	n := len(phrase)
	for i := 0; i+n <= len(tokens); i++ {
		matched := true
		for j := 0; j < n; j++ {
			if j == n-1 {
				if !pluralMatch(tokens[i+j], phrase[j]) {
					matched = false
				}
			} else if tokens[i+j] != phrase[j] {
				matched = false
			}
			if !matched {
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func pluralMatch(token, word string) bool {
	return token == word || token == word+"s" || token == word+"es"
}

func copyPolicy(p ScopePolicy) ScopePolicy {
	out := make(ScopePolicy, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
