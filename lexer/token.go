package lexer

import "strings"

// Token is one lexical unit produced by Tokenize. A token is either plain
// (Children is nil) or composite: a rule that entered a nested mode collects
// everything lexed in that mode, and Text is the concatenation of all child
// texts. Concatenating every top-level token's Text in order reconstructs the
// scanned input exactly.
//
// Tokens are not modified by this package after they are emitted.
type Token struct {
	// Text is the exact substring of the input this token covers.
	Text string

	// Type is the name of the rule that produced the token.
	Type string

	// Mode is the lexical mode the token was recognized in. For a composite
	// token this is the enclosing mode, not the mode it entered.
	Mode string

	// Line and Col locate the token's first character, 1-based.
	Line int
	Col  int

	// Children holds the nested token sequence of a composite token: the
	// trigger text first, then every token lexed in the entered mode. The
	// last child is the token that left the mode, unless the input ended
	// before the mode was closed.
	Children []Token
}

// IsComposite reports whether the token owns a nested token sequence.
func (t *Token) IsComposite() bool {
	return len(t.Children) > 0
}

// Render reconstructs source text from a token sequence. For composite tokens
// the children are rendered instead of Text, so edits made below a composite
// (such as an import specifier rewrite) are reflected even when the parent's
// Text was not recomputed.
func Render(tokens []Token) string {
	var b strings.Builder
	renderInto(&b, tokens)
	return b.String()
}

func renderInto(b *strings.Builder, tokens []Token) {
	for i := range tokens {
		if tokens[i].IsComposite() {
			renderInto(b, tokens[i].Children)
		} else {
			b.WriteString(tokens[i].Text)
		}
	}
}
