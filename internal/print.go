package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/Vorticode/expect.js/lexer"
)

const tabWidth = 8

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	fileStyle  = color.New(color.FgCyan, color.Bold)
	lineStyle  = color.New(color.FgBlue, color.Bold)
	caretStyle = color.New(color.FgRed, color.Bold)
	typeStyle  = color.New(color.FgYellow)
	modeStyle  = color.New(color.FgCyan)
	posStyle   = color.New(color.FgBlue)
)

// FormatTokens renders a token sequence as an indented tree, one token per
// line: position, mode, rule name, and the text for plain tokens.
func FormatTokens(tokens []lexer.Token) string {
	var b strings.Builder
	formatTokens(&b, tokens, 0)
	return b.String()
}

func formatTokens(b *strings.Builder, tokens []lexer.Token, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range tokens {
		t := &tokens[i]
		b.WriteString(indent)
		b.WriteString(posStyle.Sprintf("%d:%d", t.Line, t.Col))
		b.WriteString(" ")
		b.WriteString(modeStyle.Sprint(t.Mode))
		b.WriteString(":")
		b.WriteString(typeStyle.Sprint(t.Type))
		if t.IsComposite() {
			b.WriteString("\n")
			formatTokens(b, t.Children, depth+1)
		} else {
			b.WriteString(" ")
			b.WriteString(strconv.Quote(t.Text))
			b.WriteString("\n")
		}
	}
}

// FormatLexError renders a LexError with the offending source line and a
// caret under the failing column.
func FormatLexError(e *lexer.LexError, src, filename string) string {
	var b strings.Builder
	b.WriteString(errorStyle.Sprint("error: "))
	b.WriteString(fmt.Sprintf("no rule matched in mode %q\n", e.Mode))
	b.WriteString(lineStyle.Sprint(" --> "))
	b.WriteString(fileStyle.Sprintf("%s:%d:%d\n", filename, e.Line, e.Col))

	lines := strings.Split(src, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return b.String()
	}
	line := expandTabs(lines[e.Line-1])
	lineNum := strconv.Itoa(e.Line)
	pad := strings.Repeat(" ", len(lineNum))

	b.WriteString(lineStyle.Sprintf("%s |\n", pad))
	b.WriteString(lineStyle.Sprintf("%s | ", lineNum))
	b.WriteString(line + "\n")
	b.WriteString(lineStyle.Sprintf("%s | ", pad))
	b.WriteString(strings.Repeat(" ", visualColumn(lines[e.Line-1], e.Col)))
	b.WriteString(caretStyle.Sprint("^\n"))
	return b.String()
}

func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaces := tabWidth - (column % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaces))
			column += spaces
		} else {
			expanded.WriteRune(ch)
			column++
		}
	}
	return expanded.String()
}

// visualColumn maps a 1-based rune column onto the tab-expanded line.
func visualColumn(line string, column int) int {
	visual := 0
	count := 0
	for _, ch := range line {
		if count+1 >= column {
			break
		}
		count++
		if ch == '\t' {
			visual += tabWidth - (visual % tabWidth)
		} else {
			visual++
		}
	}
	return visual
}
