package imports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vorticode/expect.js/lexer"
)

func lexScript(t *testing.T, src string) []lexer.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(lexer.NewHTMLJS(lexer.Config{}), src, lexer.StartMode(lexer.ModeJS))
	require.NoError(t, err)
	return tokens
}

func paths(specs []Specifier) []string {
	if len(specs) == 0 {
		return nil
	}
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Path
	}
	return out
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "default import",
			src:  `import util from "./util.js";`,
			want: []string{"./util.js"},
		},
		{
			name: "bare import",
			src:  `import "./side-effect.js";`,
			want: []string{"./side-effect.js"},
		},
		{
			name: "named imports with comment",
			src:  "import { a, b } /* pick */ from 'mod';",
			want: []string{"mod"},
		},
		{
			name: "re-export",
			src:  `export * from "other";`,
			want: []string{"other"},
		},
		{
			name: "dynamic import",
			src:  `const m = await import("./lazy.js");`,
			want: []string{"./lazy.js"},
		},
		{
			name: "two statements",
			src:  "import a from \"x\";\nimport b from \"y\";",
			want: []string{"x", "y"},
		},
		{
			name: "export without specifier",
			src:  `export const answer = 42;`,
			want: nil,
		},
		{
			name: "newline ends an unterminated statement",
			src:  "export const a = 1\nlog(\"x\")",
			want: nil,
		},
		{
			name: "string elsewhere",
			src:  `let s = "not an import";`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := Find(lexScript(t, tt.src))
			assert.Equal(t, tt.want, paths(specs))
		})
	}
}

func TestFindPositions(t *testing.T) {
	specs := Find(lexScript(t, "import a from \"x\";\nimport b from 'y';"))
	require.Len(t, specs, 2)
	assert.Equal(t, 1, specs[0].Line)
	assert.Equal(t, 15, specs[0].Col)
	assert.Equal(t, 2, specs[1].Line)
}

func TestFindInsideDocument(t *testing.T) {
	src := "<p>hi</p>\n<script>\nimport app from \"./app.js\";\n</script>\n"
	tokens, err := lexer.Tokenize(lexer.NewHTMLJS(lexer.Config{}), src)
	require.NoError(t, err)

	specs := Find(tokens)
	assert.Equal(t, []string{"./app.js"}, paths(specs))
}

func TestRewrite(t *testing.T) {
	src := `import util from "./util.js"; import fs from "fs";`
	tokens := lexScript(t, src)

	changed := Rewrite(tokens, func(path string) (string, bool) {
		if strings.HasPrefix(path, "./") {
			return "file:///srv/app/" + strings.TrimPrefix(path, "./"), true
		}
		return "", false
	})
	assert.Equal(t, 1, changed)

	out := lexer.Render(tokens)
	assert.Contains(t, out, `import util from "file:///srv/app/util.js";`)
	assert.Contains(t, out, `import fs from "fs";`, "bare specifier untouched")

	specs := Find(tokens)
	assert.Equal(t, []string{"file:///srv/app/util.js", "fs"}, paths(specs))
}

func TestRewriteSingleQuoted(t *testing.T) {
	tokens := lexScript(t, "import a from './a.js';")
	changed := Rewrite(tokens, func(string) (string, bool) { return "https://cdn/a.js", true })
	require.Equal(t, 1, changed)
	assert.Equal(t, "import a from 'https://cdn/a.js';", lexer.Render(tokens))
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"a"`, "a"},
		{`'a'`, "a"},
		{`"a\"b"`, `a"b`},
		{`'a\\b'`, `a\b`},
		{`"unterminated`, "unterminated"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Unquote(tt.in), "input %s", tt.in)
	}
}
