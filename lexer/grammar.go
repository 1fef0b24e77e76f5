package lexer

import (
	"fmt"
	"regexp"
)

// Nesting carries the per-scan counters used to disambiguate brace matching
// inside embedded expressions. Braces counts unmatched '{' opened in the
// current mode frame; Depth is how many entered modes enclose the frame.
// One Nesting value belongs to exactly one mode frame of one Tokenize call,
// so grammars that use it stay reentrant.
type Nesting struct {
	Braces int
	Depth  int
}

// MatchState is the context handed to a match function. It is valid only for
// the duration of the call.
type MatchState struct {
	// Remaining is the unconsumed input starting at the cursor.
	Remaining string

	// Consumed is everything before the cursor.
	Consumed string

	// Tokens are the tokens produced so far in the current mode, letting a
	// function decide on context (e.g. division versus a regex literal).
	Tokens []Token

	// Nest is the current mode frame's nesting state. A function may adjust
	// its counters only when it returns a match, since a match makes the
	// function the winning rule.
	Nest *Nesting
}

// MatchResult is what a match function returns. The zero value means the
// function did not match.
type MatchResult struct {
	// Text is the non-empty prefix of Remaining that was consumed.
	Text string

	// Enter names a mode to descend into, if any.
	Enter string

	// Exit requests leaving the current mode after emitting the token.
	Exit bool

	matched bool
}

// NoMatch is returned by match functions that decline the current offset.
var NoMatch = MatchResult{}

// Matched reports a plain match of text.
func Matched(text string) MatchResult {
	return MatchResult{Text: text, matched: true}
}

// MatchedEnter reports a match that descends into mode.
func MatchedEnter(text, mode string) MatchResult {
	return MatchResult{Text: text, Enter: mode, matched: true}
}

// MatchedExit reports a match that leaves the current mode.
func MatchedExit(text string) MatchResult {
	return MatchResult{Text: text, Exit: true, matched: true}
}

// MatchFunc is a hand-written rule alternative. It must consume a non-empty
// prefix of state.Remaining when it matches.
type MatchFunc func(state *MatchState) MatchResult

type altKind int

const (
	altLiteral altKind = iota
	altPattern
	altFunc
)

// alt is one alternative of a rule: exactly one of lit, expr/re, or fn is
// meaningful, selected by kind.
type alt struct {
	kind altKind
	lit  string
	expr string
	re   *regexp.Regexp
	fn   MatchFunc
}

// Rule is a named recognizer within a mode. A rule holds one or more
// alternatives, tried in order; the first alternative that consumes a
// non-empty prefix wins. Rules are declared with Lit, Pat or Fn and may carry
// a mode directive via Enter or Exit.
type Rule struct {
	Name  string
	alts  []alt
	enter string
	exit  bool
}

// Lit declares a rule whose alternatives are literal prefixes.
func Lit(name string, texts ...string) Rule {
	r := Rule{Name: name}
	for _, t := range texts {
		r.alts = append(r.alts, alt{kind: altLiteral, lit: t})
	}
	return r
}

// Pat declares a rule whose alternatives are regular expressions, each matched
// anchored at the cursor. The expressions are compiled by NewGrammar.
func Pat(name string, exprs ...string) Rule {
	r := Rule{Name: name}
	for _, e := range exprs {
		r.alts = append(r.alts, alt{kind: altPattern, expr: e})
	}
	return r
}

// Fn declares a rule backed by match functions.
func Fn(name string, fns ...MatchFunc) Rule {
	r := Rule{Name: name}
	for _, f := range fns {
		r.alts = append(r.alts, alt{kind: altFunc, fn: f})
	}
	return r
}

// Enter returns a copy of the rule that descends into mode when it matches.
// A match function's own directive takes precedence.
func (r Rule) Enter(mode string) Rule {
	r.enter = mode
	return r
}

// Exit returns a copy of the rule that leaves the current mode when it
// matches.
func (r Rule) Exit() Rule {
	r.exit = true
	return r
}

// Mode is a named lexical context with an ordered rule list. Rule order is
// priority: earlier rules shadow later ones even when a later rule would
// match a longer prefix.
type Mode struct {
	Name  string
	Rules []Rule
}

// Grammar is an immutable set of modes. The first declared mode is the
// default starting mode. A Grammar is safe to share across goroutines.
type Grammar struct {
	modes []Mode
	index map[string]int
}

// NewGrammar validates and compiles a grammar. It fails on an empty mode
// list, a mode without rules, a rule without alternatives, an Enter directive
// naming an unknown mode, or an alternative pattern that does not compile.
// These are authoring bugs, reported eagerly and distinctly from LexError.
func NewGrammar(modes ...Mode) (*Grammar, error) {
	if len(modes) == 0 {
		return nil, fmt.Errorf("lexer: grammar has no modes")
	}
	g := &Grammar{index: make(map[string]int, len(modes))}
	for _, m := range modes {
		if m.Name == "" {
			return nil, fmt.Errorf("lexer: mode with empty name")
		}
		if _, dup := g.index[m.Name]; dup {
			return nil, fmt.Errorf("lexer: duplicate mode %q", m.Name)
		}
		if len(m.Rules) == 0 {
			return nil, fmt.Errorf("lexer: mode %q has no rules", m.Name)
		}
		// Copy the rules and their alternatives so compiling patterns below
		// never writes into storage the caller may share or reuse.
		rules := make([]Rule, len(m.Rules))
		copy(rules, m.Rules)
		for ri := range rules {
			rules[ri].alts = append([]alt(nil), rules[ri].alts...)
		}
		g.index[m.Name] = len(g.modes)
		g.modes = append(g.modes, Mode{Name: m.Name, Rules: rules})
	}
	for _, m := range g.modes {
		for ri := range m.Rules {
			r := &m.Rules[ri]
			if r.Name == "" {
				return nil, fmt.Errorf("lexer: mode %q has a rule with empty name", m.Name)
			}
			if len(r.alts) == 0 {
				return nil, fmt.Errorf("lexer: rule %q in mode %q has no alternatives", r.Name, m.Name)
			}
			if r.enter != "" {
				if _, ok := g.index[r.enter]; !ok {
					return nil, fmt.Errorf("lexer: rule %q in mode %q enters unknown mode %q", r.Name, m.Name, r.enter)
				}
			}
			for ai := range r.alts {
				a := &r.alts[ai]
				switch a.kind {
				case altLiteral:
					if a.lit == "" {
						return nil, fmt.Errorf("lexer: rule %q in mode %q has an empty literal", r.Name, m.Name)
					}
				case altPattern:
					re, err := regexp.Compile(`\A(?:` + a.expr + `)`)
					if err != nil {
						return nil, fmt.Errorf("lexer: rule %q in mode %q: %w", r.Name, m.Name, err)
					}
					a.re = re
				case altFunc:
					if a.fn == nil {
						return nil, fmt.Errorf("lexer: rule %q in mode %q has a nil match function", r.Name, m.Name)
					}
				}
			}
		}
	}
	return g, nil
}

// MustGrammar is NewGrammar that panics on error, for grammars built from
// constants.
func MustGrammar(modes ...Mode) *Grammar {
	g, err := NewGrammar(modes...)
	if err != nil {
		panic(err)
	}
	return g
}

// Start returns the name of the default starting mode.
func (g *Grammar) Start() string {
	return g.modes[0].Name
}

// Modes returns the declared mode names in order.
func (g *Grammar) Modes() []string {
	names := make([]string, len(g.modes))
	for i, m := range g.modes {
		names[i] = m.Name
	}
	return names
}

func (g *Grammar) rules(mode string) ([]Rule, bool) {
	i, ok := g.index[mode]
	if !ok {
		return nil, false
	}
	return g.modes[i].Rules, true
}
