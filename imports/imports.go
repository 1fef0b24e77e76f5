// Package imports locates import and export statement shapes in a lexed
// script token sequence and rewrites their module specifiers in place. It is
// a thin consumer of the lexer and pattern packages: tokens stay opaque typed,
// positioned strings, and the only mutation is replacing a matched string
// token's text.
package imports

import (
	"strings"

	"github.com/Vorticode/expect.js/lexer"
	"github.com/Vorticode/expect.js/pattern"
)

// lineBreak matches a whitespace token that spans a newline. Without
// semicolons that is where a statement ends.
var lineBreak = pattern.Func(func(ts []lexer.Token) (int, bool) {
	if len(ts) > 0 && ts[0].Type == "whitespace" && strings.Contains(ts[0].Text, "\n") {
		return 1, true
	}
	return 0, false
})

// statement matches an import or export keyword followed by anything up to
// the next string token, stopping at statement boundaries (`;`, a newline, or
// the next import/export keyword). Dynamic import("...") with a literal
// specifier matches too. The string token it ends on is the module specifier.
var statement = pattern.MustCompile(
	pattern.Or(pattern.Lit("import"), pattern.Lit("export")),
	pattern.ZeroOrMore(pattern.Nor(pattern.Or(
		pattern.Attr{Type: "string"},
		pattern.Lit(";"),
		lineBreak,
		pattern.Lit("import"),
		pattern.Lit("export"),
	))),
	pattern.Attr{Type: "string"},
)

// Specifier is one located module specifier.
type Specifier struct {
	Path string // unquoted module path
	Line int    // position of the string token, 1-based
	Col  int
}

// Find returns every module specifier in tokens, in source order. Script
// blocks nested in an HTML token tree are searched too.
func Find(tokens []lexer.Token) []Specifier {
	var specs []Specifier
	eachSpecifier(tokens, func(tok *lexer.Token) {
		specs = append(specs, Specifier{
			Path: Unquote(tok.Text),
			Line: tok.Line,
			Col:  tok.Col,
		})
	})
	return specs
}

// Rewrite replaces each module specifier with resolve's result, in place, and
// reports how many were changed. Specifiers for which resolve returns false
// are left alone. Rewriting changes token lengths, so positions of later
// tokens go stale; lexer.Render reconstructs the edited source.
func Rewrite(tokens []lexer.Token, resolve func(path string) (string, bool)) int {
	changed := 0
	eachSpecifier(tokens, func(tok *lexer.Token) {
		path, ok := resolve(Unquote(tok.Text))
		if !ok {
			return
		}
		setSpecifier(tok, path)
		changed++
	})
	return changed
}

func eachSpecifier(tokens []lexer.Token, fn func(tok *lexer.Token)) {
	for _, m := range pattern.FindAll(statement, tokens, 0) {
		// The matched sub-slice shares storage with tokens, so the caller
		// can mutate the specifier through the pointer.
		fn(&m.Tokens[len(m.Tokens)-1])
	}
	for i := range tokens {
		if tokens[i].Type == "script" && tokens[i].IsComposite() {
			eachSpecifier(tokens[i].Children, fn)
		}
	}
}

// setSpecifier swaps the quoted text of a string token for path, rebuilding
// the children of the composite form so Render stays consistent.
func setSpecifier(tok *lexer.Token, path string) {
	quote := `"`
	if strings.HasPrefix(tok.Text, "'") {
		quote = "'"
	}
	escaped := escape(path, quote)
	tok.Text = quote + escaped + quote
	if len(tok.Children) < 2 {
		return
	}
	open := tok.Children[0]
	last := tok.Children[len(tok.Children)-1]
	mode := lexer.ModeDquote
	if quote == "'" {
		mode = lexer.ModeSquote
	}
	body := lexer.Token{
		Text: escaped,
		Type: "text",
		Mode: mode,
		Line: open.Line,
		Col:  open.Col + 1,
	}
	if last.Type == "close" {
		tok.Children = []lexer.Token{open, body, last}
	} else {
		tok.Children = []lexer.Token{open, body}
	}
}

// Unquote strips the surrounding quotes of a lexed string token and resolves
// backslash escapes.
func Unquote(text string) string {
	if len(text) >= 2 {
		q := text[0]
		if (q == '\'' || q == '"') && text[len(text)-1] == q {
			text = text[1 : len(text)-1]
		} else if q == '\'' || q == '"' {
			text = text[1:] // unterminated string, lenient scan
		}
	}
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			i++
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

func escape(path, quote string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	return strings.ReplaceAll(path, quote, `\`+quote)
}
