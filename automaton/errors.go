package automaton

import (
	"errors"
	"fmt"
)

// Kind classifies construction, parse and traversal failures.
// A Kind is itself an error, so errors.Is(err, EmptyStates) works on any
// *Error of that kind.
type Kind uint8

const (
	Unknown Kind = iota

	// Construction.
	EmptyStates
	EmptyAlphabet
	BadAlphabetSymbol
	EmptyTransitions
	TransitionStateUndeclared
	TransitionSymbolUndeclared
	EpsilonInDFA

	// Regular expression parsing.
	UnrecognizedToken
	MismatchedParens
	DanglingOperator
	EmptyExpression

	// Traversal.
	UndefinedTransitionSymbol
	NonTextualInput

	// Subset construction.
	AmbiguousSubsetName
)

var kindNames = map[Kind]string{
	Unknown:                    "unknown error",
	EmptyStates:                "empty set of states",
	EmptyAlphabet:              "empty alphabet",
	BadAlphabetSymbol:          "bad alphabet symbol",
	EmptyTransitions:           "no transitions",
	TransitionStateUndeclared:  "transition state undeclared",
	TransitionSymbolUndeclared: "transition symbol undeclared",
	EpsilonInDFA:               "epsilon not allowed in DFA",
	UnrecognizedToken:          "unrecognized token",
	MismatchedParens:           "mismatched parentheses",
	DanglingOperator:           "dangling operator",
	EmptyExpression:            "empty expression",
	UndefinedTransitionSymbol:  "undefined transition symbol",
	NonTextualInput:            "non-textual input",
	AmbiguousSubsetName:        "ambiguous subset name",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) Error() string {
	return k.String()
}

// IsParse reports whether k is one of the regular expression parsing failures.
func (k Kind) IsParse() bool {
	return k >= UnrecognizedToken && k <= EmptyExpression
}

type Error struct {
	Kind Kind
	Msg  string
}

func newError(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

// Errorf returns an *Error of the given kind.
func Errorf(kind Kind, format string, a ...any) error {
	return newError(kind, format, a...)
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return Unknown
}
