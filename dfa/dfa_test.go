package dfa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liran-funaro/automata/automaton"
)

func singleState(t *testing.T, alphabet []Symbol, transitions Transitions) error {
	t.Helper()
	_, err := New([]State{"q0"}, alphabet, transitions, "q0", []State{"q0"})
	return err
}

func TestNewValidation(t *testing.T) {
	loop := Transitions{"q0": {"a": "q0"}}
	for _, x := range []struct {
		name        string
		states      []State
		alphabet    []Symbol
		transitions Transitions
		kind        automaton.Kind
	}{
		{"no states", nil, []Symbol{"a"}, loop, automaton.EmptyStates},
		{"no alphabet", []State{"q0"}, nil, loop, automaton.EmptyAlphabet},
		{"multi-character symbol", []State{"q0"}, []Symbol{"abc"}, loop, automaton.BadAlphabetSymbol},
		{"no transitions", []State{"q0"}, []Symbol{"a"}, Transitions{}, automaton.EmptyTransitions},
		{"undeclared symbol", []State{"q0"}, []Symbol{"a"}, Transitions{"q0": {"b": "q0"}}, automaton.TransitionSymbolUndeclared},
		{"undeclared source", []State{"q0"}, []Symbol{"a"}, Transitions{"q1": {"a": "q0"}}, automaton.TransitionStateUndeclared},
		{"undeclared destination", []State{"q0"}, []Symbol{"a"}, Transitions{"q0": {"a": "q1"}}, automaton.TransitionStateUndeclared},
		{"epsilon", []State{"q0"}, []Symbol{"a"}, Transitions{"q0": {automaton.Epsilon: "q0"}}, automaton.EpsilonInDFA},
	} {
		t.Run(x.name, func(t *testing.T) {
			_, err := New(x.states, x.alphabet, x.transitions, "q0", []State{"q0"})
			require.ErrorIs(t, err, x.kind)
		})
	}
	require.NoError(t, singleState(t, []Symbol{"a"}, loop))
}

func TestLastDefinitionWins(t *testing.T) {
	tr := Transitions{}
	tr.Set("q0", "a", "q0")
	tr.Set("q0", "a", "q1")
	d, err := New([]State{"q0", "q1"}, []Symbol{"a", "b"}, tr, "q0", []State{"q0"})
	require.NoError(t, err)
	require.Equal(t, Transitions{"q0": {"a": "q1"}}, d.Transitions())
}

func TestNewCopiesTransitions(t *testing.T) {
	tr := Transitions{"q0": {"a": "q0"}}
	d, err := New([]State{"q0", "q1"}, []Symbol{"a"}, tr, "q0", []State{"q0"})
	require.NoError(t, err)
	tr.Set("q0", "a", "q1")
	require.True(t, d.Accepts("aa"))

	got := d.Transitions()
	got.Set("q0", "a", "q1")
	require.True(t, d.Accepts("aa"))
}

func abOrB(t *testing.T) *DFA {
	d, err := New(
		[]State{"q0", "q1", "q2"},
		[]Symbol{"a", "b"},
		Transitions{
			"q0": {"a": "q1", "b": "q2"},
			"q1": {"b": "q2"},
		},
		"q0",
		[]State{"q2"},
	)
	require.NoError(t, err)
	return d
}

func TestIncompleteTransitions(t *testing.T) {
	d := abOrB(t)
	for _, x := range []struct {
		in   string
		want bool
	}{
		{"b", true},
		{"ab", true},
		{"", false},
		{"a", false},
		{"aa", false},
		{"abaaaa", false},
		{"c", false},
	} {
		require.Equal(t, x.want, d.Accepts(x.in), "input %q", x.in)
	}
}

func TestDelta(t *testing.T) {
	d := abOrB(t)

	to, ok, err := d.Delta("q0", "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, State("q1"), to)

	_, ok, err = d.Delta("q1", "a")
	require.NoError(t, err)
	require.False(t, ok, "undefined pair leads to the dead state")

	_, ok, err = d.Delta("q2", "z")
	require.NoError(t, err, "a state without transitions is dead for every symbol")
	require.False(t, ok)

	_, _, err = d.Delta("q0", "z")
	require.ErrorIs(t, err, automaton.UndefinedTransitionSymbol)

	next, err := d.Next("q0", "b")
	require.NoError(t, err)
	require.Equal(t, []State{"q2"}, next)
	next, err = d.Next("q1", "a")
	require.NoError(t, err)
	require.Empty(t, next)
}

func TestTraverse(t *testing.T) {
	d := abOrB(t)

	trace, err := d.Traverse("ab")
	require.NoError(t, err)
	require.Equal(t, automaton.Trace{Visited: []State{"q0", "q1", "q2"}, Accepted: true}, trace)

	trace, err = d.Traverse("aa")
	require.NoError(t, err)
	require.Equal(t, []State{"q0", "q1"}, trace.Visited)
	require.False(t, trace.Accepted)

	require.Equal(t, []State{"q0", "q2"}, d.StateTransitions("bz"))

	_, err = d.Traverse("a\xff")
	require.ErrorIs(t, err, automaton.NonTextualInput)
	require.False(t, d.Accepts("a\xff"))
}

func TestEmptyInput(t *testing.T) {
	d, err := New([]State{"q0", "q1"}, []Symbol{"0", "1"},
		Transitions{
			"q0": {"0": "q1", "1": "q0"},
			"q1": {"0": "q0", "1": "q1"},
		},
		"q0", []State{"q0"})
	require.NoError(t, err)
	require.True(t, d.Accepts(""))
	require.True(t, d.Accepts("00100"))
	require.False(t, d.Accepts("10"))
	require.False(t, d.Accepts("0a"))
}

func TestAccepting(t *testing.T) {
	d, err := New([]State{"q0"}, []Symbol{"a"}, Transitions{"q0": {"a": "q0"}}, "q0", nil)
	require.NoError(t, err)
	require.Empty(t, d.Accepting())
	require.False(t, d.Accepts("aaa"))

	d, err = New([]State{"q0", "q1"}, []Symbol{"a"},
		Transitions{"q0": {"a": "q0"}, "q1": {"a": "q1"}},
		"q0", []State{"q5"})
	require.NoError(t, err)
	require.Equal(t, []State{"q5"}, d.Accepting())
	require.True(t, d.IsAccepting("q5"))
	require.False(t, d.Accepts("a"))
}

func TestAccessors(t *testing.T) {
	d := abOrB(t)
	require.Equal(t, []State{"q0", "q1", "q2"}, d.States())
	require.Equal(t, []Symbol{"a", "b"}, d.Alphabet())
	require.Equal(t, State("q0"), d.Initial())
	require.Equal(t, []State{"q0"}, d.InitialStates())
}
