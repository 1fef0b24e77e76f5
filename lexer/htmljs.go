package lexer

import (
	"regexp"
	"strings"
)

// Mode names of the built-in HTML/JS grammar.
const (
	ModeHTML        = "html"
	ModeJS          = "js"
	ModeTag         = "tag"
	ModeClose       = "close"
	ModeSquote      = "squote"
	ModeDquote      = "dquote"
	ModeTemplate    = "template"
	ModePlaceholder = "placeholder"
)

// Config selects variants of the HTML/JS grammar.
type Config struct {
	// HashPlaceholder switches template placeholders from ${expr} to #{expr}.
	HashPlaceholder bool

	// LenientTags lexes characters no tag-body rule recognizes as single
	// "unknown" tokens instead of failing the scan.
	LenientTags bool
}

// NewHTMLJS builds the grammar for HTML documents with embedded scripts.
// Scripts may contain template literals, templates contain placeholder
// expressions, and placeholders are script again, nesting arbitrarily. The
// default starting mode is html; use StartMode(ModeJS) for plain script
// sources.
func NewHTMLJS(cfg Config) *Grammar {
	opener := "${"
	if cfg.HashPlaceholder {
		opener = "#{"
	}

	tagRules := []Rule{
		Pat("whitespace", `\s+`),
		Lit("selfClose", "/>").Exit(),
		Lit("close", ">").Exit(),
		Lit("equals", "="),
		Lit("string", `"`).Enter(ModeDquote),
		Lit("string", "'").Enter(ModeSquote),
		Pat("attribute", `[^\s"'=<>/]+`),
	}
	if cfg.LenientTags {
		tagRules = append(tagRules, Pat("unknown", `[\s\S]`))
	}

	return MustGrammar(
		Mode{Name: ModeHTML, Rules: []Rule{
			Pat("comment", `<!--[\s\S]*?-->`, `<!--[\s\S]*$`),
			Pat("script", `<script\b[^>]*>`).Enter(ModeJS),
			Lit("closeTag", "</").Enter(ModeClose),
			Pat("openTag", `<[A-Za-z][\w-]*`).Enter(ModeTag),
			Pat("text", `[^<]+`, `<`),
		}},
		Mode{Name: ModeJS, Rules: jsRules(opener, true)},
		Mode{Name: ModeTag, Rules: tagRules},
		Mode{Name: ModeClose, Rules: []Rule{
			Pat("name", `[\w-]+`),
			Pat("whitespace", `\s+`),
			Lit("close", ">").Exit(),
		}},
		Mode{Name: ModeSquote, Rules: quoteRules("'")},
		Mode{Name: ModeDquote, Rules: quoteRules(`"`)},
		Mode{Name: ModeTemplate, Rules: []Rule{
			Lit("expr", opener).Enter(ModePlaceholder),
			Pat("escape", `\\[\s\S]`),
			Lit("close", "`").Exit(),
			Pat("text", "[^\\\\`"+opener[:1]+"]+"),
			Lit("text", opener[:1]),
		}},
		Mode{Name: ModePlaceholder, Rules: jsRules(opener, false)},
	)
}

// jsRules is the shared script rule list. The top-level js mode leaves on a
// closing script tag and treats braces as plain punctuation; the placeholder
// mode instead balances braces and leaves on the '}' that closes the
// placeholder.
func jsRules(opener string, top bool) []Rule {
	rules := []Rule{
		Pat("whitespace", `\s+`),
		Pat("comment", `//[^\n]*`, `/\*[\s\S]*?\*/`, `/\*[\s\S]*$`),
	}
	if top {
		rules = append(rules, Pat("scriptEnd", `</script\s*>`).Exit())
	}
	rules = append(rules,
		Fn("regex", regexLiteral),
		Lit("template", "`").Enter(ModeTemplate),
		Lit("string", `"`).Enter(ModeDquote),
		Lit("string", "'").Enter(ModeSquote),
		Pat("number", `0[xX][0-9a-fA-F]+`, `(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`),
		Pat("identifier", `[A-Za-z_$][\w$]*`),
	)
	if top {
		rules = append(rules, Lit("brace", "{", "}"))
	} else {
		rules = append(rules, Fn("brace", placeholderBrace))
	}
	rules = append(rules,
		Pat("operator", `=>|===|!==|==|!=|<=|>=|&&|\|\||\+\+|--|\*\*|[-+*/%&|^~!?:;,.<>=()\[\]]`),
	)
	return rules
}

func quoteRules(quote string) []Rule {
	return []Rule{
		Pat("escape", `\\[\s\S]`),
		Lit("close", quote).Exit(),
		Pat("text", `[^`+quote+`\\]+`),
	}
}

// placeholderBrace balances braces inside a placeholder expression. An
// unmatched '}' is the one that closes the placeholder; every '{' opened in
// the expression must be closed before that. The count lives in the scan
// frame's Nesting, so independent and recursive scans never interfere.
func placeholderBrace(s *MatchState) MatchResult {
	switch {
	case strings.HasPrefix(s.Remaining, "{"):
		s.Nest.Braces++
		return Matched("{")
	case strings.HasPrefix(s.Remaining, "}"):
		if s.Nest.Braces == 0 {
			return MatchedExit("}")
		}
		s.Nest.Braces--
		return Matched("}")
	}
	return NoMatch
}

var regexLitRe = regexp.MustCompile(`^/(?:\\.|\[(?:\\.|[^\]\\\n])*\]|[^/\\\[\n])+/[A-Za-z]*`)

// Identifiers after which a '/' still starts a regex literal rather than
// division.
var regexPrecedingKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "do": true,
	"else": true, "case": true, "throw": true, "yield": true,
}

// regexLiteral lexes a regular-expression literal, deciding against division
// by inspecting the nearest preceding non-trivial token of the current mode:
// after an operand (identifier, number, string, ')' or ']') a '/' divides.
func regexLiteral(s *MatchState) MatchResult {
	if !strings.HasPrefix(s.Remaining, "/") ||
		strings.HasPrefix(s.Remaining, "//") ||
		strings.HasPrefix(s.Remaining, "/*") {
		return NoMatch
	}
	if prev, ok := lastSignificant(s.Tokens); ok && endsOperand(prev) {
		return NoMatch
	}
	if m := regexLitRe.FindString(s.Remaining); m != "" {
		return Matched(m)
	}
	return NoMatch
}

func lastSignificant(tokens []Token) (*Token, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].Type {
		case "whitespace", "comment":
			continue
		}
		return &tokens[i], true
	}
	return nil, false
}

func endsOperand(t *Token) bool {
	switch t.Type {
	case "number", "string", "template", "regex":
		return true
	case "identifier":
		return !regexPrecedingKeywords[t.Text]
	case "operator":
		return t.Text == ")" || t.Text == "]"
	}
	return false
}
