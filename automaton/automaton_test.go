package automaton

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamer(t *testing.T) {
	n := NewNamer("")
	require.Equal(t, BaseState, n.Base())
	require.Equal(t, State("q0"), n.Next())
	require.Equal(t, State("q1"), n.Next())

	require.NoError(t, n.SetBase("r"))
	require.Equal(t, State("r2"), n.Next())

	require.ErrorIs(t, n.SetBase(""), NonTextualInput)
	require.ErrorIs(t, n.SetBase("\xff"), NonTextualInput)
	require.Equal(t, "r", n.Base())

	n.Reset()
	require.Equal(t, BaseState, n.Base())
	require.Equal(t, State("q0"), n.Next())
}

func TestNamerFresh(t *testing.T) {
	n := NewNamer(BaseNFA)
	existing := NewStateSet("s0", "s1", "s3")
	require.Equal(t, State("s2"), n.Fresh(existing))
	require.Equal(t, State("s4"), n.Fresh(existing))
}

func TestFreeName(t *testing.T) {
	require.Equal(t, State("s0"), FreeName(BaseNFA, NewStateSet()))
	require.Equal(t, State("s1"), FreeName(BaseNFA, NewStateSet("s0", "q1")))
	require.Equal(t, State("q2"), FreeName(BaseState, NewStateSet("q0", "q1", "q3")))
}

func TestNewState(t *testing.T) {
	st, err := NewState("q0")
	require.NoError(t, err)
	require.Equal(t, "q0", st.String())

	_, err = NewState("\xc3\x28")
	require.ErrorIs(t, err, NonTextualInput)
}

func TestErrorKinds(t *testing.T) {
	err := Errorf(EmptyAlphabet, "alphabet of %s", "x")
	require.True(t, errors.Is(err, EmptyAlphabet))
	require.False(t, errors.Is(err, EmptyStates))
	require.Equal(t, EmptyAlphabet, KindOf(err))
	require.Equal(t, "empty alphabet: alphabet of x", err.Error())

	wrapped := fmt.Errorf("building: %w", err)
	require.ErrorIs(t, wrapped, EmptyAlphabet)
	require.Equal(t, EmptyAlphabet, KindOf(wrapped))

	require.Equal(t, Unknown, KindOf(errors.New("plain")))
	require.Equal(t, DanglingOperator, KindOf(DanglingOperator))
	require.Equal(t, "kind(200)", Kind(200).String())

	for _, k := range []Kind{UnrecognizedToken, MismatchedParens, DanglingOperator, EmptyExpression} {
		require.True(t, k.IsParse(), k.String())
	}
	for _, k := range []Kind{EmptyStates, EpsilonInDFA, UndefinedTransitionSymbol, NonTextualInput} {
		require.False(t, k.IsParse(), k.String())
	}
}

func TestStateSet(t *testing.T) {
	a := NewStateSet("q2", "q0")
	b := NewStateSet("q1")
	require.Equal(t, "{q0,q2}", a.String())
	require.Equal(t, "{}", NewStateSet().String())

	u := a.Union(b)
	require.Equal(t, []State{"q0", "q1", "q2"}, u.Sorted())
	require.Equal(t, 2, a.Len(), "Union must not modify its receiver")

	require.False(t, a.Intersects(b))
	require.True(t, u.Intersects(b))
	require.True(t, u.Equal(NewStateSet("q0", "q1", "q2")))
	require.False(t, u.Equal(a))

	c := a.Clone()
	c.Add("q9")
	require.False(t, a.Has("q9"))
	require.True(t, c.Has("q9"))
}

func TestSortSymbols(t *testing.T) {
	in := []Symbol{"b", Epsilon, "a", "c"}
	require.Equal(t, []Symbol{"a", "b", "c", Epsilon}, SortSymbols(in))
	require.Equal(t, Symbol("b"), in[0], "SortSymbols must not modify its input")
	require.Equal(t, "ε", Epsilon.String())
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, ValidateStates(NewStateSet()), EmptyStates)
	require.NoError(t, ValidateStates(NewStateSet("q0")))

	for _, x := range []struct {
		alphabet []Symbol
		kind     Kind
	}{
		{nil, EmptyAlphabet},
		{[]Symbol{"ab"}, BadAlphabetSymbol},
		{[]Symbol{"a", Epsilon}, BadAlphabetSymbol},
		{[]Symbol{"a", "b"}, Unknown},
		{[]Symbol{"λ"}, Unknown},
	} {
		err := ValidateAlphabet(x.alphabet)
		if x.kind == Unknown {
			require.NoError(t, err, "%q", x.alphabet)
			continue
		}
		require.ErrorIs(t, err, x.kind, "%q", x.alphabet)
	}

	states := NewStateSet("q0", "q1")
	alphabet := SymbolSet([]Symbol{"a"})
	require.NoError(t, ValidateEdge(states, alphabet, "q0", "a", "q1"))
	require.NoError(t, ValidateEdge(states, alphabet, "q0", Epsilon, "q1"))
	require.ErrorIs(t, ValidateEdge(states, alphabet, "q2", "a", "q1"), TransitionStateUndeclared)
	require.ErrorIs(t, ValidateEdge(states, alphabet, "q0", "a", "q1", "q2"), TransitionStateUndeclared)
	require.ErrorIs(t, ValidateEdge(states, alphabet, "q0", "b", "q1"), TransitionSymbolUndeclared)
}
