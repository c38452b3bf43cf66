package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tacc/internal/token"
)

func TestTokenizeAll_Simple(t *testing.T) {
	src := `class Dog extends Animal {
		int age;
		void Bark() {
			Print("woof", age);
		}
	}`
	toks, err := TokenizeAll("test.dcl", src)
	assert.Nil(t, err)
	assert.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)

	var types []token.Type
	for _, tk := range toks {
		types = append(types, tk.Type)
	}
	assert.Contains(t, types, token.KwClass)
	assert.Contains(t, types, token.KwExtends)
	assert.Contains(t, types, token.KwPrint)
	assert.Contains(t, types, token.StringLit)
}

func TestTokenizeAll_Numbers(t *testing.T) {
	toks, err := TokenizeAll("t", "1 2.5 3.0e10 4e-2")
	assert.Nil(t, err)
	assert.Equal(t, token.IntLit, toks[0].Type)
	assert.Equal(t, token.DoubleLit, toks[1].Type)
	assert.Equal(t, token.DoubleLit, toks[2].Type)
	assert.Equal(t, token.DoubleLit, toks[3].Type)
}

func TestTokenizeAll_Operators(t *testing.T) {
	toks, err := TokenizeAll("t", "== != <= >= && || < > = + - * / %")
	assert.Nil(t, err)
	want := []token.Type{
		token.Eq, token.Ne, token.Le, token.Ge, token.And, token.Or,
		token.Lt, token.Gt, token.Assign, token.Plus, token.Minus,
		token.Star, token.Slash, token.Percent, token.EOF,
	}
	var got []token.Type
	for _, tk := range toks {
		got = append(got, tk.Type)
	}
	assert.Equal(t, want, got)
}

func TestTokenizeAll_UnterminatedString(t *testing.T) {
	_, err := TokenizeAll("t", `"unterminated`)
	assert.NotNil(t, err)
}

func TestTokenizeAll_UnrecognizedCharacter(t *testing.T) {
	_, err := TokenizeAll("t", "int x = 1 @ 2;")
	assert.NotNil(t, err)
}

func TestTokenizeAll_Comments(t *testing.T) {
	toks, err := TokenizeAll("t", "int x; // trailing comment\n/* block\ncomment */ int y;")
	assert.Nil(t, err)
	var types []token.Type
	for _, tk := range toks {
		types = append(types, tk.Type)
	}
	assert.Equal(t, []token.Type{token.KwInt, token.Ident, token.Semi, token.KwInt, token.Ident, token.Semi, token.EOF}, types)
}
