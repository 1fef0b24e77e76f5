package internal

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorticode/expect.js/lexer"
)

func TestFormatTokens(t *testing.T) {
	color.NoColor = true

	tokens := []lexer.Token{
		{Text: "hi", Type: "text", Mode: "html", Line: 1, Col: 1},
		{
			Text: "<b>", Type: "openTag", Mode: "html", Line: 1, Col: 3,
			Children: []lexer.Token{
				{Text: "<b", Type: "openTag", Mode: "html", Line: 1, Col: 3},
				{Text: ">", Type: "close", Mode: "tag", Line: 1, Col: 5},
			},
		},
	}

	out := FormatTokens(tokens)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `1:1 html:text "hi"`, lines[0])
	assert.Equal(t, "1:3 html:openTag", lines[1])
	assert.Equal(t, `  1:3 html:openTag "<b"`, lines[2])
	assert.Equal(t, `  1:5 tag:close ">"`, lines[3])
}

func TestFormatLexError(t *testing.T) {
	color.NoColor = true

	src := "let x = 1\nlet y@ = 2\n"
	e := &lexer.LexError{Mode: "js", Line: 2, Col: 6, Context: "y@ ="}
	out := FormatLexError(e, src, "app.js")

	assert.Contains(t, out, `no rule matched in mode "js"`)
	assert.Contains(t, out, "app.js:2:6")
	assert.Contains(t, out, "2 | let y@ = 2")

	// The caret sits under column 6.
	lines := strings.Split(out, "\n")
	caretLine := lines[len(lines)-2]
	assert.Equal(t, "^", strings.TrimSpace(strings.TrimPrefix(caretLine, "  | ")))
	assert.Equal(t, 5, strings.Index(caretLine, "^")-len("  | "))
}

func TestFormatLexErrorLineOutOfRange(t *testing.T) {
	color.NoColor = true
	e := &lexer.LexError{Mode: "js", Line: 99, Col: 1}
	out := FormatLexError(e, "short", "f.js")
	assert.Contains(t, out, "f.js:99:1")
}
