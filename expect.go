// Package expectjs bundles a mode-switching tokenizer for HTML documents with
// embedded scripts and a structural pattern engine over the resulting token
// streams. The subpackages carry the real machinery: lexer (grammar and
// tokenizer), pattern (token-sequence matching), imports (import specifier
// location and rewriting). This package offers shortcuts bound to the default
// HTML/JS grammar.
package expectjs

import (
	"github.com/Vorticode/expect.js/imports"
	"github.com/Vorticode/expect.js/lexer"
)

// defaultGrammar is shared: a Grammar is immutable and safe for any number of
// concurrent Tokenize calls.
var defaultGrammar = lexer.NewHTMLJS(lexer.Config{})

// Tokenize lexes an HTML document with the default grammar.
func Tokenize(src string) ([]lexer.Token, error) {
	return lexer.Tokenize(defaultGrammar, src)
}

// TokenizeScript lexes a plain script source with the default grammar.
func TokenizeScript(src string) ([]lexer.Token, error) {
	return lexer.Tokenize(defaultGrammar, src, lexer.StartMode(lexer.ModeJS))
}

// ScriptImports returns the module specifiers imported by a script source.
func ScriptImports(src string) ([]imports.Specifier, error) {
	tokens, err := TokenizeScript(src)
	if err != nil {
		return nil, err
	}
	return imports.Find(tokens), nil
}

// DocumentImports returns the module specifiers imported by the script blocks
// of an HTML document.
func DocumentImports(src string) ([]imports.Specifier, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return imports.Find(tokens), nil
}
