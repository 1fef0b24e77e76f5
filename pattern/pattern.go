// Package pattern matches declarative rule trees against token sequences,
// playing the role of a regular-expression engine over tokens instead of
// characters.
//
// A rule tree is compiled once into a Matcher, a pure function over a token
// slice. Matchers hold no state and may be shared and invoked concurrently on
// any number of haystacks.
package pattern

import (
	"fmt"

	"github.com/Vorticode/expect.js/lexer"
)

// A Matcher reports how many leading tokens of ts the pattern consumes. A
// failed match is not an error, just ok == false; consumed is then 0.
type Matcher func(ts []lexer.Token) (consumed int, ok bool)

// Rule is one node of a declarative pattern tree. The concrete kinds are Lit,
// Attr, Seq, Func and the combinator constructors (Or, Not, Nor, ZeroOrOne,
// AtLeast, ZeroOrMore, OneOrMore, LookAhead, End).
type Rule interface {
	isRule()
}

// Lit matches a single token whose Text equals the literal.
type Lit string

// Attr matches a single token whose fields equal every field set here. Zero
// fields are not checked; at least one must be set. Line and Col are 1-based
// in tokens, so zero never collides with a real position.
type Attr struct {
	Text string
	Type string
	Mode string
	Line int
	Col  int
}

// Seq matches its rules one after another over the remaining slice, summing
// the consumed counts. A nested []Rule literal compiles the same way.
type Seq []Rule

// Func delegates to a hand-written Matcher. It must return a consumed count
// of at least 0 on success; 0 skips without consuming.
type Func Matcher

func (Lit) isRule()  {}
func (Attr) isRule() {}
func (Seq) isRule()  {}
func (Func) isRule() {}

type orRule struct{ alts []Rule }
type notRule struct{ seq Seq }
type norRule struct{ seq Seq }
type zeroOrOneRule struct{ seq Seq }
type atLeastRule struct {
	min int
	seq Seq
}
type lookAheadRule struct{ seq Seq }
type endRule struct{}

func (orRule) isRule()        {}
func (notRule) isRule()       {}
func (norRule) isRule()       {}
func (zeroOrOneRule) isRule() {}
func (atLeastRule) isRule()   {}
func (lookAheadRule) isRule() {}
func (endRule) isRule()       {}

// Or tries the alternatives in order and short-circuits on the first that
// matches.
func Or(alts ...Rule) Rule { return orRule{alts: alts} }

// Not is a zero-width negative lookahead: it succeeds consuming nothing iff
// the wrapped sequence fails here.
func Not(rules ...Rule) Rule { return notRule{seq: Seq(rules)} }

// Nor is a negated single-token class: it consumes exactly one token iff the
// wrapped sequence does not match a positive count here. Unlike Not it always
// consumes one token on success.
func Nor(rules ...Rule) Rule { return norRule{seq: Seq(rules)} }

// ZeroOrOne never fails: it consumes the wrapped sequence's count if it
// matches, else nothing.
func ZeroOrOne(rules ...Rule) Rule { return zeroOrOneRule{seq: Seq(rules)} }

// AtLeast greedily re-applies the wrapped sequence until it fails and
// succeeds iff it matched at least min times.
func AtLeast(min int, rules ...Rule) Rule { return atLeastRule{min: min, seq: Seq(rules)} }

// ZeroOrMore is AtLeast(0); it never fails.
func ZeroOrMore(rules ...Rule) Rule { return AtLeast(0, rules...) }

// OneOrMore is AtLeast(1).
func OneOrMore(rules ...Rule) Rule { return AtLeast(1, rules...) }

// LookAhead is a zero-width positive lookahead: it succeeds consuming nothing
// iff the wrapped sequence matches here.
func LookAhead(rules ...Rule) Rule { return lookAheadRule{seq: Seq(rules)} }

// End succeeds, consuming nothing, only when the slice is empty.
func End() Rule { return endRule{} }

// Compile builds a Matcher from the rule tree. Multiple rules compile as a
// sequence. Compilation fails fast on authoring bugs: empty sequences or
// alternative lists, a nil Func, an Attr with no fields set, or a negative
// AtLeast minimum.
func Compile(rules ...Rule) (Matcher, error) {
	return compile(Seq(rules))
}

// MustCompile is Compile that panics on error, for patterns built from
// constants.
func MustCompile(rules ...Rule) Matcher {
	m, err := Compile(rules...)
	if err != nil {
		panic(err)
	}
	return m
}

func compile(rule Rule) (Matcher, error) {
	switch r := rule.(type) {
	case Lit:
		return func(ts []lexer.Token) (int, bool) {
			if len(ts) > 0 && ts[0].Text == string(r) {
				return 1, true
			}
			return 0, false
		}, nil

	case Attr:
		if r == (Attr{}) {
			return nil, fmt.Errorf("pattern: attribute predicate with no fields set")
		}
		return func(ts []lexer.Token) (int, bool) {
			if len(ts) == 0 {
				return 0, false
			}
			t := &ts[0]
			if r.Text != "" && t.Text != r.Text {
				return 0, false
			}
			if r.Type != "" && t.Type != r.Type {
				return 0, false
			}
			if r.Mode != "" && t.Mode != r.Mode {
				return 0, false
			}
			if r.Line != 0 && t.Line != r.Line {
				return 0, false
			}
			if r.Col != 0 && t.Col != r.Col {
				return 0, false
			}
			return 1, true
		}, nil

	case Seq:
		if len(r) == 0 {
			return nil, fmt.Errorf("pattern: empty sequence")
		}
		subs := make([]Matcher, len(r))
		for i, sub := range r {
			m, err := compile(sub)
			if err != nil {
				return nil, err
			}
			subs[i] = m
		}
		if len(subs) == 1 {
			return subs[0], nil
		}
		return func(ts []lexer.Token) (int, bool) {
			pos := 0
			for _, m := range subs {
				n, ok := m(ts[pos:])
				if !ok {
					return 0, false
				}
				pos += n
			}
			return pos, true
		}, nil

	case Func:
		if r == nil {
			return nil, fmt.Errorf("pattern: nil match function")
		}
		return Matcher(r), nil

	case orRule:
		if len(r.alts) == 0 {
			return nil, fmt.Errorf("pattern: Or with no alternatives")
		}
		subs := make([]Matcher, len(r.alts))
		for i, alt := range r.alts {
			m, err := compile(alt)
			if err != nil {
				return nil, err
			}
			subs[i] = m
		}
		return func(ts []lexer.Token) (int, bool) {
			for _, m := range subs {
				if n, ok := m(ts); ok {
					return n, true
				}
			}
			return 0, false
		}, nil

	case notRule:
		m, err := compile(r.seq)
		if err != nil {
			return nil, err
		}
		return func(ts []lexer.Token) (int, bool) {
			if _, ok := m(ts); ok {
				return 0, false
			}
			return 0, true
		}, nil

	case norRule:
		m, err := compile(r.seq)
		if err != nil {
			return nil, err
		}
		return func(ts []lexer.Token) (int, bool) {
			if len(ts) == 0 {
				return 0, false
			}
			if n, ok := m(ts); ok && n > 0 {
				return 0, false
			}
			return 1, true
		}, nil

	case zeroOrOneRule:
		m, err := compile(r.seq)
		if err != nil {
			return nil, err
		}
		return func(ts []lexer.Token) (int, bool) {
			if n, ok := m(ts); ok {
				return n, true
			}
			return 0, true
		}, nil

	case atLeastRule:
		if r.min < 0 {
			return nil, fmt.Errorf("pattern: AtLeast with negative minimum %d", r.min)
		}
		m, err := compile(r.seq)
		if err != nil {
			return nil, err
		}
		return func(ts []lexer.Token) (int, bool) {
			pos, count := 0, 0
			for {
				n, ok := m(ts[pos:])
				if !ok {
					break
				}
				count++
				pos += n
				if n == 0 {
					break // zero-width match would repeat forever
				}
			}
			if count >= r.min {
				return pos, true
			}
			return 0, false
		}, nil

	case lookAheadRule:
		m, err := compile(r.seq)
		if err != nil {
			return nil, err
		}
		return func(ts []lexer.Token) (int, bool) {
			if _, ok := m(ts); ok {
				return 0, true
			}
			return 0, false
		}, nil

	case endRule:
		return func(ts []lexer.Token) (int, bool) {
			return 0, len(ts) == 0
		}, nil

	default:
		return nil, fmt.Errorf("pattern: unknown rule kind %T", rule)
	}
}
