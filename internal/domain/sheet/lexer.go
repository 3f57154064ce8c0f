package sheet

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokRef
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokNumber:
		return "number"
	case tokRef:
		return "reference"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	num  float64
	ref  string
	pos  int
}

// lex splits a formula body (the text after "=") into tokens. A cell
// reference is a column letter and at most two row digits. Anything
// other than numbers, cell references, the four operators, parentheses and
// whitespace is rejected.
func lex(src string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isDigit(c) || c == '.':
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			text := src[start:i]
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q at %d", text, start)
			}
			tokens = append(tokens, token{kind: tokNumber, num: n, pos: start})

		case c >= 'A' && c <= 'H':
			start := i
			i++
			for i < len(src) && i < start+3 && isDigit(src[i]) {
				i++
			}
			if i == start+1 {
				return nil, fmt.Errorf("column %q without row at %d", c, start)
			}
			tokens = append(tokens, token{kind: tokRef, ref: src[start:i], pos: start})

		default:
			kind, ok := operators[c]
			if !ok {
				return nil, fmt.Errorf("unexpected %q at %d", c, i)
			}
			tokens = append(tokens, token{kind: kind, pos: i})
			i++
		}
	}

	return tokens, nil
}

var operators = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
