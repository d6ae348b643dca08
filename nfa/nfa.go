// Package nfa implements non-deterministic finite automata with epsilon
// transitions, the Thompson composition algebra and subset construction.
package nfa

import (
	"slices"
	"unicode/utf8"

	"github.com/liran-funaro/automata/automaton"
)

type (
	State    = automaton.State
	Symbol   = automaton.Symbol
	StateSet = automaton.StateSet
)

// Transitions maps a state and a symbol (or automaton.Epsilon) to a set of
// destinations.
type Transitions map[State]map[Symbol][]State

// Set defines the destinations of from on symbol, replacing any earlier
// definition.
func (t Transitions) Set(from State, symbol Symbol, to ...State) {
	t.row(from)[symbol] = slices.Clone(to)
}

// Add appends destinations to the ones already defined for from on symbol.
func (t Transitions) Add(from State, symbol Symbol, to ...State) {
	row := t.row(from)
	row[symbol] = append(row[symbol], to...)
}

func (t Transitions) row(from State) map[Symbol][]State {
	row, ok := t[from]
	if !ok {
		row = make(map[Symbol][]State)
		t[from] = row
	}
	return row
}

type transitionMap map[State]map[Symbol]StateSet

func (t transitionMap) clone() transitionMap {
	res := make(transitionMap, len(t))
	for from, row := range t {
		newRow := make(map[Symbol]StateSet, len(row))
		for sym, to := range row {
			newRow[sym] = to.Clone()
		}
		res[from] = newRow
	}
	return res
}

// add merges to into the destinations of from on symbol.
func (t transitionMap) add(from State, symbol Symbol, to StateSet) {
	row, ok := t[from]
	if !ok {
		row = make(map[Symbol]StateSet)
		t[from] = row
	}
	dst, ok := row[symbol]
	if !ok {
		dst = make(StateSet, len(to))
		row[symbol] = dst
	}
	for st := range to {
		dst.Add(st)
	}
}

// NFA is immutable once returned by New or one of the combinators.
type NFA struct {
	states      StateSet
	alphabet    map[Symbol]bool
	transitions transitionMap
	initial     StateSet
	accepting   StateSet
}

var _ automaton.Automaton = (*NFA)(nil)

type options struct {
	namer *automaton.Namer
}

type Option func(*options)

// WithNamer names the synthetic state created when several initial states
// are given.
func WithNamer(n *automaton.Namer) Option {
	return func(o *options) {
		o.namer = n
	}
}

// New validates and builds an NFA. More than one initial state is collapsed
// into a single synthetic initial state with epsilon edges to each of them.
func New(states []State, alphabet []Symbol, transitions Transitions, initial []State, accepting []State, opts ...Option) (*NFA, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	stateSet := automaton.NewStateSet(states...)
	if err := automaton.ValidateStates(stateSet); err != nil {
		return nil, err
	}
	if err := automaton.ValidateAlphabet(alphabet); err != nil {
		return nil, err
	}
	initialSet := automaton.NewStateSet(initial...)
	if len(initialSet) == 0 {
		return nil, automaton.Errorf(automaton.EmptyStates, "an NFA must have at least one initial state")
	}

	tm := make(transitionMap, len(transitions))
	for from, row := range transitions {
		for sym, to := range row {
			tm.add(from, sym, automaton.NewStateSet(to...))
		}
	}

	n := &NFA{
		states:      stateSet,
		alphabet:    automaton.SymbolSet(alphabet),
		transitions: tm,
		initial:     initialSet,
		accepting:   automaton.NewStateSet(accepting...),
	}
	if err := n.validateTransitions(); err != nil {
		return nil, err
	}
	if len(n.initial) > 1 {
		n.mergeInitialStates(o.newState(n.states))
	}
	return n, nil
}

func (o *options) newState(existing StateSet) State {
	if o.namer != nil {
		return o.namer.Fresh(existing)
	}
	return automaton.FreeName(automaton.BaseNFA, existing)
}

func (n *NFA) validateTransitions() error {
	if len(n.transitions) == 0 {
		return automaton.Errorf(automaton.EmptyTransitions, "an NFA must define at least one transition")
	}
	for _, from := range sortedKeys(n.transitions) {
		row := n.transitions[from]
		for _, sym := range sortedSymbols(row) {
			if err := automaton.ValidateEdge(n.states, n.alphabet, from, sym, row[sym].Sorted()...); err != nil {
				return err
			}
		}
	}
	return nil
}

// EpsilonClosure returns states together with every state reachable from
// them through epsilon transitions only.
func (n *NFA) EpsilonClosure(states StateSet) StateSet {
	closure := states.Clone()
	stack := states.Sorted()
	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range n.transitions[st][automaton.Epsilon] {
			if !closure.Has(next) {
				closure.Add(next)
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// Delta returns the destinations of state on symbol. A state without
// transitions is a dead state and yields the empty set.
func (n *NFA) Delta(state State, symbol Symbol) (StateSet, error) {
	row, ok := n.transitions[state]
	if !ok {
		return StateSet{}, nil
	}
	if to, ok := row[symbol]; ok {
		return to.Clone(), nil
	}
	if symbol != automaton.Epsilon && !n.alphabet[symbol] {
		return nil, automaton.Errorf(automaton.UndefinedTransitionSymbol,
			"transition from %q undefined for symbol %q", state, string(symbol))
	}
	return StateSet{}, nil
}

// Next implements automaton.Automaton.
func (n *NFA) Next(state State, symbol Symbol) ([]State, error) {
	to, err := n.Delta(state, symbol)
	if err != nil {
		return nil, err
	}
	return to.Sorted(), nil
}

// Traverse simulates input over the epsilon closure of the active states.
// An input symbol outside the alphabet stops the simulation and rejects.
func (n *NFA) Traverse(input string) (automaton.Trace, error) {
	if !utf8.ValidString(input) {
		return automaton.Trace{}, automaton.Errorf(automaton.NonTextualInput, "NFA expects text input, got %q", input)
	}
	current := n.EpsilonClosure(n.initial)
	trace := automaton.Trace{Visited: current.Sorted()}
	for _, r := range input {
		sym := Symbol(r)
		if !n.alphabet[sym] {
			return trace, nil
		}
		next := StateSet{}
		for st := range current {
			for to := range n.transitions[st][sym] {
				next.Add(to)
			}
		}
		current = n.EpsilonClosure(next)
		trace.Visited = append(trace.Visited, current.Sorted()...)
	}
	trace.Accepted = current.Intersects(n.accepting)
	return trace, nil
}

func (n *NFA) Accepts(input string) bool {
	trace, err := n.Traverse(input)
	return err == nil && trace.Accepted
}

func (n *NFA) StateTransitions(input string) []State {
	trace, _ := n.Traverse(input)
	return trace.Visited
}

func (n *NFA) States() []State {
	return n.states.Sorted()
}

func (n *NFA) Alphabet() []Symbol {
	return sortedSymbols(n.alphabet)
}

func (n *NFA) InitialStates() []State {
	return n.initial.Sorted()
}

// Initial returns the single initial state.
func (n *NFA) Initial() State {
	for st := range n.initial {
		return st
	}
	return ""
}

func (n *NFA) Accepting() []State {
	return n.accepting.Sorted()
}

func (n *NFA) IsAccepting(state State) bool {
	return n.accepting.Has(state)
}

// Transitions returns a copy of the transition function.
func (n *NFA) Transitions() Transitions {
	res := make(Transitions, len(n.transitions))
	for from, row := range n.transitions {
		for sym, to := range row {
			res.Set(from, sym, to.Sorted()...)
		}
	}
	return res
}

func sortedKeys[V any](m map[State]V) []State {
	res := make([]State, 0, len(m))
	for st := range m {
		res = append(res, st)
	}
	slices.Sort(res)
	return res
}

func sortedSymbols[V any](m map[Symbol]V) []Symbol {
	res := make([]Symbol, 0, len(m))
	for sym := range m {
		res = append(res, sym)
	}
	return automaton.SortSymbols(res)
}
