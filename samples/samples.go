// Package samples provides ready-made automata used by the command line
// driver, examples and tests.
package samples

import (
	"fmt"
	"slices"

	"github.com/liran-funaro/automata/automaton"
	"github.com/liran-funaro/automata/dfa"
	"github.com/liran-funaro/automata/nfa"
)

type (
	State  = automaton.State
	Symbol = automaton.Symbol
)

const eps = automaton.Epsilon

func must[T any](a T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("samples: %v", err))
	}
	return a
}

func states(names ...string) []State {
	res := make([]State, len(names))
	for i, n := range names {
		res[i] = State(n)
	}
	return res
}

func symbols(s string) []Symbol {
	var res []Symbol
	for _, r := range s {
		res = append(res, Symbol(r))
	}
	return res
}

// EvenNumberOfZeros accepts binary strings with an even number of 0s.
func EvenNumberOfZeros() *dfa.DFA {
	return must(dfa.New(
		states("q0", "q1"),
		symbols("01"),
		dfa.Transitions{
			"q0": {"0": "q1", "1": "q0"},
			"q1": {"0": "q0", "1": "q1"},
		},
		"q0",
		states("q0"),
	))
}

// EvenOccurrenceEachChar accepts strings over {a,b,c} where every symbol
// occurs an even number of times.
func EvenOccurrenceEachChar() *dfa.DFA {
	return must(dfa.New(
		states("q_0", "q_1", "q_2", "q_3", "q_4", "q_5", "q_6", "q_7"),
		symbols("abc"),
		dfa.Transitions{
			"q_0": {"a": "q_1", "b": "q_2", "c": "q_4"},
			"q_1": {"a": "q_0", "b": "q_3", "c": "q_5"},
			"q_2": {"a": "q_3", "b": "q_0", "c": "q_6"},
			"q_3": {"a": "q_2", "b": "q_1", "c": "q_7"},
			"q_4": {"a": "q_5", "b": "q_6", "c": "q_0"},
			"q_5": {"a": "q_4", "b": "q_7", "c": "q_1"},
			"q_6": {"a": "q_7", "b": "q_4", "c": "q_2"},
			"q_7": {"a": "q_6", "b": "q_5", "c": "q_3"},
		},
		"q_0",
		states("q_0"),
	))
}

// NoMax accepts strings over {a,m,x} that do not contain "max".
func NoMax() *dfa.DFA {
	return must(dfa.New(
		states("q_0", "q_1", "q_2", "q_3"),
		symbols("amx"),
		dfa.Transitions{
			"q_0": {"a": "q_0", "m": "q_1", "x": "q_0"},
			"q_1": {"a": "q_2", "m": "q_1", "x": "q_0"},
			"q_2": {"a": "q_0", "m": "q_1", "x": "q_3"},
			"q_3": {"a": "q_3", "m": "q_3", "x": "q_3"},
		},
		"q_0",
		states("q_0", "q_1", "q_2"),
	))
}

// NoMaPlusX accepts strings over {a,m,x} that do not contain "m", one or more
// "a" and then "x".
func NoMaPlusX() *dfa.DFA {
	return must(dfa.New(
		states("q_0", "q_1", "q_2", "q_3"),
		symbols("amx"),
		dfa.Transitions{
			"q_0": {"a": "q_0", "m": "q_1", "x": "q_0"},
			"q_1": {"a": "q_2", "m": "q_1", "x": "q_0"},
			"q_2": {"a": "q_2", "m": "q_1", "x": "q_3"},
			"q_3": {"a": "q_3", "m": "q_3", "x": "q_3"},
		},
		"q_0",
		states("q_0", "q_1", "q_2"),
	))
}

// AOrBWholeStar is the Thompson NFA of (a|b)*.
func AOrBWholeStar() *nfa.NFA {
	return must(nfa.New(
		states("s0", "q0", "q1", "q2", "q3", "q4", "q5", "q6"),
		symbols("ab"),
		nfa.Transitions{
			"s0": {eps: states("q0", "q6")},
			"q0": {eps: states("q1", "q3")},
			"q1": {"a": states("q2")},
			"q2": {eps: states("q5")},
			"q3": {"b": states("q4")},
			"q4": {eps: states("q5")},
			"q5": {eps: states("q0", "q6")},
		},
		states("s0"),
		states("q6"),
	))
}

// TwoEpsilonBranches accepts exactly "0" and "1".
func TwoEpsilonBranches() *nfa.NFA {
	return must(nfa.New(
		states("q0", "q1", "q2", "q3"),
		symbols("01"),
		nfa.Transitions{
			"q0": {eps: states("q1"), "1": states("q2")},
			"q1": {"0": states("q3")},
			"q2": {eps: states("q3")},
		},
		states("q0"),
		states("q3"),
	))
}

// HW033 is a three-state NFA over {a,b} with a single epsilon edge.
func HW033() *nfa.NFA {
	return must(nfa.New(
		states("q1", "q2", "q3"),
		symbols("ab"),
		nfa.Transitions{
			"q1": {"a": states("q3"), eps: states("q2")},
			"q2": {"a": states("q1")},
			"q3": {"a": states("q2"), "b": states("q2", "q3")},
		},
		states("q1"),
		states("q2"),
	))
}

// NJCS341 accepts binary strings containing "11" or "101".
func NJCS341() *nfa.NFA {
	return must(nfa.New(
		states("q1", "q2", "q3", "q4"),
		symbols("01"),
		nfa.Transitions{
			"q1": {"0": states("q1"), "1": states("q1", "q2")},
			"q2": {"0": states("q3"), eps: states("q3")},
			"q3": {"1": states("q4")},
			"q4": {"0": states("q4"), "1": states("q4")},
		},
		states("q1"),
		states("q4"),
	))
}

var registry = map[string]func() automaton.Automaton{
	"even-zeros":     func() automaton.Automaton { return EvenNumberOfZeros() },
	"even-each-char": func() automaton.Automaton { return EvenOccurrenceEachChar() },
	"no-max":         func() automaton.Automaton { return NoMax() },
	"no-ma-plus-x":   func() automaton.Automaton { return NoMaPlusX() },
	"a-or-b-star":    func() automaton.Automaton { return AOrBWholeStar() },
	"two-epsilon":    func() automaton.Automaton { return TwoEpsilonBranches() },
	"hw03-3":         func() automaton.Automaton { return HW033() },
	"nj-cs341":       func() automaton.Automaton { return NJCS341() },
}

// Names lists the sample names accepted by Lookup.
func Names() []string {
	res := make([]string, 0, len(registry))
	for name := range registry {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Lookup builds the sample with the given name.
func Lookup(name string) (automaton.Automaton, bool) {
	f, ok := registry[name]
	if !ok {
		return nil, false
	}
	return f(), true
}
