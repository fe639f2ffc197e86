// Package classify decides which catalog columns carry translatable text.
package classify

import (
	"strings"
	"unicode"
)

// Role is the treatment a column receives during a run.
type Role int

const (
	// PassThrough columns are copied byte for byte.
	PassThrough Role = iota
	// Translatable columns have their non-blank cells translated.
	Translatable
)

func (r Role) String() string {
	if r == Translatable {
		return "translatable"
	}
	return "pass-through"
}

// Reason records which rule decided a column's role.
type Reason string

const (
	ReasonOnly       Reason = "only"
	ReasonDeny       Reason = "deny"
	ReasonAllow      Reason = "allow"
	ReasonIngredient Reason = "ingredient"
	ReasonExcluded   Reason = "ingredient-excluded"
	ReasonDefault    Reason = "default"
)

// Options adjusts classification for a run.
type Options struct {
	// Only, when non-empty, is the complete set of translatable columns.
	// Names are compared case-insensitively.
	Only []string

	// ExcludeIngredients turns ingredient columns into pass-through.
	ExcludeIngredients bool
}

// Decision is the outcome for one column.
type Decision struct {
	Column string
	Role   Role
	Markup bool // Send every cell with markup preservation
	Reason Reason
	Rule   string // Matching rule key, empty for default and only
}

// Result holds the decisions for every column in table order.
type Result struct {
	Decisions []Decision
	index     map[string]int
}

// Role returns the role of a column. Unknown columns are pass-through.
func (r *Result) Role(column string) Role {
	if i, ok := r.index[column]; ok {
		return r.Decisions[i].Role
	}
	return PassThrough
}

// Markup reports whether a column carries the markup hint.
func (r *Result) Markup(column string) bool {
	if i, ok := r.index[column]; ok {
		return r.Decisions[i].Markup
	}
	return false
}

// Translatable returns the translatable columns in table order.
func (r *Result) Translatable() []string {
	return r.columns(Translatable)
}

// PassThrough returns the pass-through columns in table order.
func (r *Result) PassThrough() []string {
	return r.columns(PassThrough)
}

func (r *Result) columns(role Role) []string {
	var out []string
	for _, d := range r.Decisions {
		if d.Role == role {
			out = append(out, d.Column)
		}
	}
	return out
}

var (
	deny        = compile(denyRules)
	allow       = compile(allowRules)
	ingredients = compile(ingredientRules)
	markup      = compile(markupRules)
)

// Classify assigns a role to every column name. The result depends only on
// the names and options.
func Classify(columns []string, opts Options) *Result {
	only := make(map[string]bool, len(opts.Only))
	for _, name := range opts.Only {
		only[strings.ToLower(strings.TrimSpace(name))] = true
	}

	res := &Result{
		Decisions: make([]Decision, len(columns)),
		index:     make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		d := decide(col, only, opts.ExcludeIngredients)
		if d.Role == Translatable {
			_, d.Markup = markup.match(tokenize(col))
		}
		res.Decisions[i] = d
		res.index[col] = i
	}
	return res
}

func decide(col string, only map[string]bool, excludeIngredients bool) Decision {
	d := Decision{Column: col, Role: PassThrough, Reason: ReasonDefault}

	if len(only) > 0 {
		if only[strings.ToLower(strings.TrimSpace(col))] {
			d.Role = Translatable
			d.Reason = ReasonOnly
		}
		return d
	}

	tokens := tokenize(col)
	if rule, ok := deny.match(tokens); ok {
		d.Reason, d.Rule = ReasonDeny, rule
		return d
	}
	if rule, ok := allow.match(tokens); ok {
		d.Role, d.Reason, d.Rule = Translatable, ReasonAllow, rule
		return d
	}
	if rule, ok := ingredients.match(tokens); ok {
		d.Rule = rule
		if excludeIngredients {
			d.Reason = ReasonExcluded
			return d
		}
		d.Role, d.Reason = Translatable, ReasonIngredient
		return d
	}
	return d
}

// ruleSet is a list of rules compiled to token sequences.
type ruleSet []rule

type rule struct {
	key    string
	tokens []string
}

func compile(keys []string) ruleSet {
	rs := make(ruleSet, len(keys))
	for i, key := range keys {
		var tokens []string
		for _, f := range strings.Fields(key) {
			if f == "*" {
				tokens = append(tokens, f)
				continue
			}
			tokens = append(tokens, tokenize(f)...)
		}
		rs[i] = rule{key: key, tokens: tokens}
	}
	return rs
}

// match returns the first rule whose tokens occur contiguously in tokens.
func (rs ruleSet) match(tokens []string) (string, bool) {
	for _, r := range rs {
		if containsSeq(tokens, r.tokens) {
			return r.key, true
		}
	}
	return "", false
}

func containsSeq(tokens, seq []string) bool {
	if len(seq) == 0 || len(seq) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(seq) <= len(tokens); i++ {
		for j, want := range seq {
			if want != "*" && tokens[i+j] != want {
				continue outer
			}
		}
		return true
	}
	return false
}

// tokenize lowercases s and splits it into runs of letters and digits.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
