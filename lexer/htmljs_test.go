package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(tokens []Token) []string {
	types := make([]string, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestHTMLJSTemplatePlaceholder(t *testing.T) {
	g := NewHTMLJS(Config{})
	tokens, err := Tokenize(g, "`hi ${1}`", StartMode(ModeJS))
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	tpl := tokens[0]
	assert.Equal(t, "template", tpl.Type)
	assert.Equal(t, ModeJS, tpl.Mode)
	assert.Equal(t, "`hi ${1}`", tpl.Text)

	require.Equal(t, []string{"template", "text", "expr", "close"}, typesOf(tpl.Children))
	expr := tpl.Children[2]
	assert.Equal(t, ModeTemplate, expr.Mode)
	assert.Equal(t, "${1}", expr.Text)
	require.Equal(t, []string{"expr", "number", "brace"}, typesOf(expr.Children))
	assert.Equal(t, "1", expr.Children[1].Text)
	assert.Equal(t, ModePlaceholder, expr.Children[1].Mode)
	assert.Equal(t, "}", expr.Children[2].Text)
}

func TestHTMLJSScriptEmbedding(t *testing.T) {
	g := NewHTMLJS(Config{})
	src := "<p>hi</p><script>let x = 1;</script>"
	tokens, err := Tokenize(g, src)
	require.NoError(t, err)

	require.Equal(t, []string{"openTag", "text", "closeTag", "script"}, typesOf(tokens))
	script := tokens[3]
	assert.Equal(t, ModeHTML, script.Mode)
	assert.Equal(t, "<script>", script.Children[0].Text)
	last := script.Children[len(script.Children)-1]
	assert.Equal(t, "scriptEnd", last.Type)
	assert.Equal(t, "</script>", last.Text)
	assert.Equal(t, ModeJS, last.Mode)
}

func TestHTMLJSAttributes(t *testing.T) {
	g := NewHTMLJS(Config{})
	tokens, err := Tokenize(g, `<a href="x.html" download>`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	tag := tokens[0]
	assert.Equal(t, "openTag", tag.Type)
	require.Equal(t,
		[]string{"openTag", "whitespace", "attribute", "equals", "string", "whitespace", "attribute", "close"},
		typesOf(tag.Children))
	href := tag.Children[4]
	assert.Equal(t, `"x.html"`, href.Text)
	require.Equal(t, []string{"string", "text", "close"}, typesOf(href.Children))
}

func TestHTMLJSRegexVersusDivision(t *testing.T) {
	g := NewHTMLJS(Config{})
	tests := []struct {
		name      string
		src       string
		wantRegex bool
	}{
		{"after assignment", "x = /ab/", true},
		{"after return", "return /ab/", true},
		{"after open paren", "f(/ab/)", true},
		{"after number", "6 / 2", false},
		{"after identifier", "a / b", false},
		{"after close paren", "(a) / 2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(g, tt.src, StartMode(ModeJS))
			require.NoError(t, err)
			found := false
			for _, tok := range tokens {
				if tok.Type == "regex" {
					found = true
				}
			}
			assert.Equal(t, tt.wantRegex, found)
		})
	}
}

func TestHTMLJSHashPlaceholder(t *testing.T) {
	plain := NewHTMLJS(Config{})
	hash := NewHTMLJS(Config{HashPlaceholder: true})
	src := "`a #{1} b`"

	tokens, err := Tokenize(hash, src, StartMode(ModeJS))
	require.NoError(t, err)
	require.Equal(t, []string{"template", "text", "expr", "text", "close"}, typesOf(tokens[0].Children))

	// Under the default grammar #{1} is plain template text.
	tokens, err = Tokenize(plain, src, StartMode(ModeJS))
	require.NoError(t, err)
	for _, child := range tokens[0].Children {
		assert.NotEqual(t, "expr", child.Type)
	}
}

func TestHTMLJSLenientTags(t *testing.T) {
	src := "<div < >"

	_, err := Tokenize(NewHTMLJS(Config{}), src)
	require.Error(t, err)
	lexErr, ok := err.(*LexError)
	require.True(t, ok)
	assert.Equal(t, ModeTag, lexErr.Mode)

	tokens, err := Tokenize(NewHTMLJS(Config{LenientTags: true}), src)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Contains(t, typesOf(tokens[0].Children), "unknown")
}

func TestHTMLJSNestedPlaceholderBraces(t *testing.T) {
	g := NewHTMLJS(Config{})
	src := "`${ {a: {b: 1}}.a }`"
	tokens, err := Tokenize(g, src, StartMode(ModeJS))
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, src, tokens[0].Text)

	expr := tokens[0].Children[1]
	require.Equal(t, "expr", expr.Type)
	last := expr.Children[len(expr.Children)-1]
	assert.Equal(t, "}", last.Text)
	assert.Equal(t, ModePlaceholder, last.Mode)
}

func TestHTMLJSUnterminatedComment(t *testing.T) {
	g := NewHTMLJS(Config{})
	tokens, err := Tokenize(g, "<!-- oops")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "comment", tokens[0].Type)
}
