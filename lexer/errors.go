package lexer

import "fmt"

// contextRadius bounds the window of source text captured in a LexError.
const contextRadius = 20

// LexError reports that no rule of the current mode matched at the current
// offset. It is the only error kind a scan produces; grammar construction
// problems surface earlier, from NewGrammar.
type LexError struct {
	Mode    string // mode that had no matching rule
	Line    int    // 1-based line of the offending offset
	Col     int    // 1-based column of the offending offset
	Context string // bounded window of text around the offset
}

func (e *LexError) Error() string {
	return fmt.Sprintf("no rule matched in mode %q at line %d, column %d (near %q)",
		e.Mode, e.Line, e.Col, e.Context)
}
