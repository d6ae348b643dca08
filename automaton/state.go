package automaton

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// State is a named automaton state. Two states are equal iff their names are equal.
type State string

// NewState returns a state with the given name.
func NewState(name string) (State, error) {
	if !utf8.ValidString(name) {
		return "", newError(NonTextualInput, "state name %q must be valid text", name)
	}
	return State(name), nil
}

func (s State) String() string {
	return string(s)
}

// Symbol is a single input character. Epsilon is the only symbol that is not
// exactly one rune long.
type Symbol string

// Epsilon labels NFA transitions that consume no input.
const Epsilon Symbol = ""

func (s Symbol) String() string {
	if s == Epsilon {
		return "ε"
	}
	return string(s)
}

func (s Symbol) valid() bool {
	return utf8.RuneCountInString(string(s)) == 1
}

// SortSymbols returns the symbols sorted, with Epsilon (if present) last.
func SortSymbols(symbols []Symbol) []Symbol {
	res := slices.Clone(symbols)
	slices.SortFunc(res, func(a, b Symbol) int {
		switch {
		case a == b:
			return 0
		case a == Epsilon:
			return 1
		case b == Epsilon:
			return -1
		}
		return strings.Compare(string(a), string(b))
	})
	return res
}

// StateSet is an unordered set of states.
type StateSet map[State]struct{}

func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

func (s StateSet) Add(states ...State) {
	for _, st := range states {
		s[st] = struct{}{}
	}
}

func (s StateSet) Has(st State) bool {
	_, ok := s[st]
	return ok
}

func (s StateSet) Len() int {
	return len(s)
}

func (s StateSet) Clone() StateSet {
	res := make(StateSet, len(s))
	for st := range s {
		res[st] = struct{}{}
	}
	return res
}

// Union returns a new set holding the members of s and all others.
func (s StateSet) Union(others ...StateSet) StateSet {
	res := s.Clone()
	for _, o := range others {
		for st := range o {
			res[st] = struct{}{}
		}
	}
	return res
}

func (s StateSet) Intersects(o StateSet) bool {
	small, large := s, o
	if len(small) > len(large) {
		small, large = large, small
	}
	for st := range small {
		if large.Has(st) {
			return true
		}
	}
	return false
}

func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for st := range s {
		if !o.Has(st) {
			return false
		}
	}
	return true
}

// Sorted returns the members ordered by name.
func (s StateSet) Sorted() []State {
	res := make([]State, 0, len(s))
	for st := range s {
		res = append(res, st)
	}
	slices.Sort(res)
	return res
}

// String renders the set as "{a,b,c}", members ordered by name.
func (s StateSet) String() string {
	sorted := s.Sorted()
	names := make([]string, len(sorted))
	for i, st := range sorted {
		names[i] = string(st)
	}
	return "{" + strings.Join(names, ",") + "}"
}
