package lexer

import (
	"reflect"
	"testing"

	"lukechampine.com/oqlseq/token"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		kinds []token.Kind
		lits  []string
	}{
		{
			"it.size >= 1024 && !seen",
			[]token.Kind{token.Ident, token.Dot, token.Ident, token.GreaterEquals, token.Int, token.And, token.Bang, token.Ident, token.EOF},
			[]string{"it", ".", "size", ">=", "1024", "&&", "!", "seen", ""},
		},
		{
			"1.5 .5 2e3 7",
			[]token.Kind{token.Float, token.Float, token.Float, token.Int, token.EOF},
			[]string{"1.5", ".5", "2e3", "7", ""},
		},
		{
			`"a\"b" 'c\n' null true`,
			[]token.Kind{token.String, token.String, token.Null, token.True, token.EOF},
			[]string{`a"b`, "c\n", "null", "true", ""},
		},
		{
			"f($x, a_b)[0] ? 1 : 2",
			[]token.Kind{token.Ident, token.Lparen, token.Ident, token.Comma, token.Ident, token.Rparen, token.Lbracket, token.Int, token.Rbracket, token.Question, token.Int, token.Colon, token.Int, token.EOF},
			[]string{"f", "(", "$x", ",", "a_b", ")", "[", "0", "]", "?", "1", ":", "2", ""},
		},
		{
			"a @ 'open",
			[]token.Kind{token.Ident, token.Illegal, token.Illegal, token.EOF},
			[]string{"a", "@", "'open", ""},
		},
		{
			"",
			[]token.Kind{token.EOF},
			[]string{""},
		},
	}
	for _, test := range tests {
		var kinds []token.Kind
		var lits []string
		for _, tok := range Tokenize(test.input) {
			kinds = append(kinds, tok.Kind)
			lits = append(lits, tok.Lit)
		}
		if !reflect.DeepEqual(kinds, test.kinds) {
			t.Errorf("%q: expected kinds %v, got %v", test.input, test.kinds, kinds)
		}
		if !reflect.DeepEqual(lits, test.lits) {
			t.Errorf("%q: expected literals %q, got %q", test.input, test.lits, lits)
		}
	}
}

func TestPositions(t *testing.T) {
	ts := Tokenize("ab + 'c'")
	var pos []int
	for _, tok := range ts {
		pos = append(pos, tok.Pos)
	}
	if exp := []int{0, 3, 5, 8}; !reflect.DeepEqual(pos, exp) {
		t.Fatalf("expected positions %v, got %v", exp, pos)
	}
}
