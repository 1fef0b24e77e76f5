package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrammarValidation(t *testing.T) {
	tests := []struct {
		name    string
		modes   []Mode
		wantErr string
	}{
		{
			name:    "no modes",
			modes:   nil,
			wantErr: "no modes",
		},
		{
			name:    "empty mode name",
			modes:   []Mode{{Name: "", Rules: []Rule{Lit("x", "x")}}},
			wantErr: "empty name",
		},
		{
			name: "duplicate mode",
			modes: []Mode{
				{Name: "a", Rules: []Rule{Lit("x", "x")}},
				{Name: "a", Rules: []Rule{Lit("y", "y")}},
			},
			wantErr: "duplicate mode",
		},
		{
			name:    "mode without rules",
			modes:   []Mode{{Name: "a"}},
			wantErr: "no rules",
		},
		{
			name:    "rule without alternatives",
			modes:   []Mode{{Name: "a", Rules: []Rule{Lit("x")}}},
			wantErr: "no alternatives",
		},
		{
			name:    "empty literal",
			modes:   []Mode{{Name: "a", Rules: []Rule{Lit("x", "")}}},
			wantErr: "empty literal",
		},
		{
			name:    "enter unknown mode",
			modes:   []Mode{{Name: "a", Rules: []Rule{Lit("x", "x").Enter("nope")}}},
			wantErr: "unknown mode",
		},
		{
			name:    "invalid pattern",
			modes:   []Mode{{Name: "a", Rules: []Rule{Pat("x", "(")}}},
			wantErr: "error parsing regexp",
		},
		{
			name:    "nil match function",
			modes:   []Mode{{Name: "a", Rules: []Rule{Fn("x", nil)}}},
			wantErr: "nil match function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrammar(tt.modes...)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewGrammarValid(t *testing.T) {
	g, err := NewGrammar(
		Mode{Name: "a", Rules: []Rule{Lit("x", "x").Enter("b")}},
		Mode{Name: "b", Rules: []Rule{Lit("y", "y").Exit()}},
	)
	require.NoError(t, err)
	assert.Equal(t, "a", g.Start())
	assert.Equal(t, []string{"a", "b"}, g.Modes())
}

func TestNewGrammarCopiesRules(t *testing.T) {
	// Construction compiles into grammar-owned storage; the caller's rule
	// values stay untouched and may be reused for another grammar.
	shared := []Rule{Pat("x", `a+`)}

	g1, err := NewGrammar(Mode{Name: "a", Rules: shared})
	require.NoError(t, err)
	assert.Nil(t, shared[0].alts[0].re)

	g2, err := NewGrammar(Mode{Name: "b", Rules: shared})
	require.NoError(t, err)

	tokens, err := Tokenize(g1, "aa")
	require.NoError(t, err)
	assert.Equal(t, "aa", tokens[0].Text)
	tokens, err = Tokenize(g2, "aa")
	require.NoError(t, err)
	assert.Equal(t, "aa", tokens[0].Text)
}

func TestMustGrammarPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustGrammar(Mode{Name: "a"})
	})
}
