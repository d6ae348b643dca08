package nfa

import (
	"github.com/liran-funaro/automata/automaton"
)

// The combinators below build new automata from copies of their operands'
// transition maps. Operands are expected to use disjoint state names; shared
// names are treated as the same state.

func (n *NFA) clone() *NFA {
	alphabet := make(map[Symbol]bool, len(n.alphabet))
	for sym := range n.alphabet {
		alphabet[sym] = true
	}
	return &NFA{
		states:      n.states.Clone(),
		alphabet:    alphabet,
		transitions: n.transitions.clone(),
		initial:     n.initial.Clone(),
		accepting:   n.accepting.Clone(),
	}
}

// combine returns a copy of x holding the states, alphabet and transitions of
// both x and y. Initial and accepting sets are left to the caller.
func combine(x, y *NFA) *NFA {
	c := x.clone()
	c.states = c.states.Union(y.states)
	for sym := range y.alphabet {
		c.alphabet[sym] = true
	}
	for from, row := range y.transitions {
		for sym, to := range row {
			c.transitions.add(from, sym, to)
		}
	}
	return c
}

func fresh(namer *automaton.Namer, existing StateSet) State {
	if namer == nil {
		return automaton.FreeName(automaton.BaseNFA, existing)
	}
	return namer.Fresh(existing)
}

// mergeInitialStates adds newInitial with epsilon edges to every current
// initial state and makes it the only initial state.
func (n *NFA) mergeInitialStates(newInitial State) State {
	n.transitions.add(newInitial, automaton.Epsilon, n.initial)
	n.states.Add(newInitial)
	n.initial = automaton.NewStateSet(newInitial)
	return newInitial
}

// mergeAcceptingStates adds newAccepting, reached by epsilon edges from every
// current accepting state, and makes it the only accepting state.
func (n *NFA) mergeAcceptingStates(newAccepting State) State {
	target := automaton.NewStateSet(newAccepting)
	for _, acc := range n.accepting.Sorted() {
		n.transitions.add(acc, automaton.Epsilon, target)
	}
	n.states.Add(newAccepting)
	n.accepting = target
	return newAccepting
}

// Concat returns an NFA accepting uv for every u accepted by x and v
// accepted by y.
func Concat(x, y *NFA) *NFA {
	c := combine(x, y)
	for acc := range x.accepting {
		c.transitions.add(acc, automaton.Epsilon, y.initial)
	}
	c.initial = x.initial.Clone()
	c.accepting = y.accepting.Clone()
	return c
}

// Union returns an NFA accepting the strings accepted by x or y. Its single
// initial and single accepting states are allocated from namer; a nil namer
// picks the first free BaseNFA names.
func Union(namer *automaton.Namer, x, y *NFA) *NFA {
	c := combine(x, y)
	c.initial = x.initial.Union(y.initial)
	c.accepting = x.accepting.Union(y.accepting)
	c.mergeInitialStates(fresh(namer, c.states))
	c.mergeAcceptingStates(fresh(namer, c.states))
	return c
}

// KleeneStar returns an NFA accepting zero or more repetitions of strings
// accepted by x. With plus set, at least one repetition is required.
func KleeneStar(namer *automaton.Namer, x *NFA, plus bool) *NFA {
	c := x.clone()
	newInitial := c.mergeInitialStates(fresh(namer, c.states))
	newAccepting := c.mergeAcceptingStates(fresh(namer, c.states))
	if !plus {
		c.transitions.add(newInitial, automaton.Epsilon, automaton.NewStateSet(newAccepting))
	}
	for acc := range x.accepting {
		c.transitions.add(acc, automaton.Epsilon, x.initial)
	}
	return c
}
