package regex

import (
	"fmt"
	"unicode"

	"github.com/liran-funaro/automata/automaton"
)

type TokenKind int

const (
	Character TokenKind = iota
	Union
	Star
	Plus
	LParen
	RParen
)

var tokenKindNames = [...]string{
	Character: "CHARACTER",
	Union:     "UNION",
	Star:      "STAR",
	Plus:      "PLUS",
	LParen:    "LPAREN",
	RParen:    "RPAREN",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

type Token struct {
	Kind  TokenKind
	Value rune
	Pos   int // Rune offset in the pattern.
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%c)", t.Kind, t.Value)
}

// isRepeat reports whether t is a postfix repetition operator.
func (t Token) isRepeat() bool {
	return t.Kind == Star || t.Kind == Plus
}

var operators = map[rune]TokenKind{
	'|': Union,
	'*': Star,
	'+': Plus,
	'(': LParen,
	')': RParen,
}

// Tokenize splits pattern into tokens. Letters and numbers, including numerics
// such as '²' and 'Ⅻ', are characters; '|', '*', '+', '(' and ')' are
// operators. Anything else is rejected.
func Tokenize(pattern string) ([]Token, error) {
	tokens := make([]Token, 0, len(pattern))
	pos := 0
	for _, r := range pattern {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			tokens = append(tokens, Token{Kind: Character, Value: r, Pos: pos})
		} else if kind, ok := operators[r]; ok {
			tokens = append(tokens, Token{Kind: kind, Value: r, Pos: pos})
		} else {
			return nil, automaton.Errorf(automaton.UnrecognizedToken, "unrecognized symbol %q at %d", r, pos)
		}
		pos++
	}
	return tokens, nil
}
