// Package lexer implements a grammar-driven, mode-switching tokenizer.
//
// A Grammar maps lexical modes to ordered rule lists. Rules recognize a
// non-empty prefix of the input and may carry a directive to enter a nested
// mode or to leave the current one; entering a mode produces one composite
// Token owning everything lexed inside it. Tokenization is lossless: the
// token texts concatenate back to the input.
//
// The package does no I/O and keeps all scan state in the call, so a single
// Grammar may be used by any number of concurrent Tokenize calls.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxDepth bounds mode nesting. Nesting depth mirrors the structural
// embedding of the input (markup in script in markup ...), so adversarial
// input could otherwise exhaust the call stack. Exceeding the bound is
// reported as a LexError.
const DefaultMaxDepth = 500

type options struct {
	startMode string
	startLine int
	startCol  int
	maxDepth  int
	strictEOF bool
}

// Option configures a Tokenize call.
type Option func(*options)

// StartMode overrides the grammar's default starting mode.
func StartMode(mode string) Option {
	return func(o *options) { o.startMode = mode }
}

// StartAt sets the position reported for the first token, for lexing a
// fragment cut from a larger document. Line and col are 1-based.
func StartAt(line, col int) Option {
	return func(o *options) { o.startLine, o.startCol = line, col }
}

// MaxDepth replaces DefaultMaxDepth as the mode nesting ceiling.
func MaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// StrictEOF makes reaching end of input inside an entered mode a LexError.
// The default is lenient: the partial token sequence is returned without
// error, which suits scanning in-progress edits where the closing delimiter
// has not been typed yet.
func StrictEOF() Option {
	return func(o *options) { o.strictEOF = true }
}

// Tokenize scans text with g and returns the top-level token sequence.
// It returns a *LexError when no rule of the current mode matches at the
// cursor, and a plain error for misuse such as an unknown start mode.
func Tokenize(g *Grammar, text string, opts ...Option) ([]Token, error) {
	o := options{
		startLine: 1,
		startCol:  1,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	mode := o.startMode
	if mode == "" {
		mode = g.Start()
	} else if _, ok := g.rules(mode); !ok {
		return nil, fmt.Errorf("lexer: unknown start mode %q", mode)
	}
	s := &scan{g: g, text: text, line: o.startLine, col: o.startCol, opts: o}
	tokens, _, err := s.run(mode, 0)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// scan is the cursor state of one Tokenize call. It is threaded through the
// mode recursion and never shared between calls.
type scan struct {
	g    *Grammar
	text string
	pos  int // byte offset
	line int
	col  int
	opts options
}

// run lexes in mode until the input ends or, in an entered mode, a rule exits
// it. An exit rule in the start mode emits its token and scanning continues in
// place. The second result reports whether an exit rule ended the frame.
func (s *scan) run(mode string, depth int) ([]Token, bool, error) {
	rules, ok := s.g.rules(mode)
	if !ok {
		return nil, false, fmt.Errorf("lexer: match function entered unknown mode %q", mode)
	}
	nest := &Nesting{Depth: depth}
	var tokens []Token

	for s.pos < len(s.text) {
		res, name := s.matchRules(rules, tokens, nest)
		if !res.matched {
			return nil, false, s.lexError(mode)
		}
		line, col := s.line, s.col
		s.advance(res.Text)

		switch {
		case res.Enter != "":
			if depth+1 > s.opts.maxDepth {
				return nil, false, &LexError{Mode: mode, Line: line, Col: col, Context: s.context(s.pos - len(res.Text))}
			}
			children, popped, err := s.run(res.Enter, depth+1)
			if err != nil {
				return nil, false, err
			}
			trigger := Token{Text: res.Text, Type: name, Mode: mode, Line: line, Col: col}
			comp := Token{
				Type:     name,
				Mode:     mode,
				Line:     line,
				Col:      col,
				Children: append([]Token{trigger}, children...),
			}
			var b strings.Builder
			for i := range comp.Children {
				b.WriteString(comp.Children[i].Text)
			}
			comp.Text = b.String()
			tokens = append(tokens, comp)
			if !popped && s.opts.strictEOF {
				return nil, false, &LexError{Mode: res.Enter, Line: s.line, Col: s.col, Context: s.context(s.pos)}
			}
		case res.Exit:
			tokens = append(tokens, Token{Text: res.Text, Type: name, Mode: mode, Line: line, Col: col})
			if depth > 0 {
				return tokens, true, nil
			}
			// The start mode has no parent frame to return to; keep scanning
			// so the rest of the input is still consumed.
		default:
			tokens = append(tokens, Token{Text: res.Text, Type: name, Mode: mode, Line: line, Col: col})
		}
	}
	return tokens, false, nil
}

// matchRules evaluates the mode's rules in declaration order and returns the
// first match of a non-empty prefix plus the winning rule's name. Priority is
// purely positional: a shorter match from an earlier rule shadows a longer
// one from a later rule.
func (s *scan) matchRules(rules []Rule, tokens []Token, nest *Nesting) (MatchResult, string) {
	rem := s.text[s.pos:]
	for ri := range rules {
		r := &rules[ri]
		for ai := range r.alts {
			a := &r.alts[ai]
			var res MatchResult
			switch a.kind {
			case altLiteral:
				if strings.HasPrefix(rem, a.lit) {
					res = Matched(a.lit)
				}
			case altPattern:
				if loc := a.re.FindStringIndex(rem); loc != nil && loc[1] > 0 {
					res = Matched(rem[:loc[1]])
				}
			case altFunc:
				state := MatchState{
					Remaining: rem,
					Consumed:  s.text[:s.pos],
					Tokens:    tokens,
					Nest:      nest,
				}
				res = a.fn(&state)
				if res.matched && res.Text == "" {
					res = NoMatch // a match must consume input
				}
			}
			if !res.matched {
				continue
			}
			// Declared directives apply unless the function returned its own.
			if res.Enter == "" && !res.Exit {
				res.Enter = r.enter
				res.Exit = r.exit
			}
			return res, r.Name
		}
	}
	return NoMatch, ""
}

// advance moves the cursor past text, updating line and column. Columns count
// runes; after a newline the column restarts at 1.
func (s *scan) advance(text string) {
	s.pos += len(text)
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		s.line += strings.Count(text, "\n")
		s.col = utf8.RuneCountInString(text[i+1:]) + 1
	} else {
		s.col += utf8.RuneCountInString(text)
	}
}

func (s *scan) lexError(mode string) *LexError {
	return &LexError{Mode: mode, Line: s.line, Col: s.col, Context: s.context(s.pos)}
}

// context cuts a bounded window of text around pos for error reporting.
func (s *scan) context(pos int) string {
	start := pos - contextRadius
	if start < 0 {
		start = 0
	}
	end := pos + contextRadius
	if end > len(s.text) {
		end = len(s.text)
	}
	return s.text[start:end]
}
