// Package lexer ...
package lexer

import (
	"strings"

	"lukechampine.com/oqlseq/token"
)

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == '$' }
func isIdent(c byte) bool  { return isDigit(c) || isLetter(c) }

var singles = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Mod,
	',': token.Comma,
	'.': token.Dot,
	'?': token.Question,
	':': token.Colon,
	'[': token.Lbracket,
	']': token.Rbracket,
	'(': token.Lparen,
	')': token.Rparen,
	'<': token.Less,
	'>': token.Greater,
	'!': token.Bang,
}

var doubles = map[string]token.Kind{
	"==": token.Equals,
	"!=": token.NotEquals,
	"<=": token.LessEquals,
	">=": token.GreaterEquals,
	"&&": token.And,
	"||": token.Or,
}

// Tokenize splits s into tokens, always ending with an EOF token. Characters
// that start no token are returned as Illegal tokens and rejected by the
// parser.
func Tokenize(s string) (ts []token.Token) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ' ', c == '\t', c == '\n', c == '\r':
			// skip

		case i+1 < len(s) && doubles[s[i:i+2]] != token.Illegal:
			ts = append(ts, token.Token{Kind: doubles[s[i:i+2]], Lit: s[i : i+2], Pos: i})
			i++

		case c == '.' && i+1 < len(s) && isDigit(s[i+1]):
			j := scanNumber(s, i)
			ts = append(ts, token.Token{Kind: token.Float, Lit: s[i:j], Pos: i})
			i = j - 1

		case singles[c] != token.Illegal:
			ts = append(ts, token.Token{Kind: singles[c], Lit: string(c), Pos: i})

		case c == '"', c == '\'':
			str, j, ok := scanString(s, i)
			if !ok {
				ts = append(ts, token.Token{Kind: token.Illegal, Lit: s[i:], Pos: i})
				i = len(s)
				break
			}
			ts = append(ts, token.Token{Kind: token.String, Lit: str, Pos: i})
			i = j

		case isDigit(c):
			j := scanNumber(s, i)
			kind := token.Int
			if strings.ContainsAny(s[i:j], ".eE") {
				kind = token.Float
			}
			ts = append(ts, token.Token{Kind: kind, Lit: s[i:j], Pos: i})
			i = j - 1

		case isLetter(c):
			j := i
			for j < len(s) && isIdent(s[j]) {
				j++
			}
			word := s[i:j]
			ts = append(ts, token.Token{Kind: token.LookupIdent(word), Lit: word, Pos: i})
			i = j - 1

		default:
			ts = append(ts, token.Token{Kind: token.Illegal, Lit: string(c), Pos: i})
		}
	}
	return append(ts, token.Token{Kind: token.EOF, Pos: len(s)})
}

// scanNumber returns the end of the number starting at i.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		for i++; i < len(s) && isDigit(s[i]); i++ {
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for i = j; i < len(s) && isDigit(s[i]); i++ {
			}
		}
	}
	return i
}

// scanString reads the quoted string starting at i, returning its unescaped
// contents and the index of the closing quote.
func scanString(s string, i int) (string, int, bool) {
	quote := s[i]
	var b strings.Builder
	for i++; i < len(s); i++ {
		switch c := s[i]; c {
		case quote:
			return b.String(), i, true
		case '\\':
			if i++; i >= len(s) {
				return "", 0, false
			}
			switch e := s[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, false
}
