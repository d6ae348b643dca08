// Package dfa implements deterministic finite automata with a partial
// transition function: an undefined transition leads to the dead state.
package dfa

import (
	"slices"
	"unicode/utf8"

	"github.com/liran-funaro/automata/automaton"
)

type (
	State  = automaton.State
	Symbol = automaton.Symbol
)

// Transitions maps a state and a symbol to at most one destination.
type Transitions map[State]map[Symbol]State

// Set defines from --symbol--> to, replacing any earlier definition.
func (t Transitions) Set(from State, symbol Symbol, to State) {
	row, ok := t[from]
	if !ok {
		row = make(map[Symbol]State)
		t[from] = row
	}
	row[symbol] = to
}

func (t Transitions) clone() Transitions {
	res := make(Transitions, len(t))
	for from, row := range t {
		newRow := make(map[Symbol]State, len(row))
		for sym, to := range row {
			newRow[sym] = to
		}
		res[from] = newRow
	}
	return res
}

// DFA is immutable once built by New.
type DFA struct {
	states      automaton.StateSet
	alphabet    map[Symbol]bool
	transitions Transitions
	initial     State
	accepting   automaton.StateSet
}

var _ automaton.Automaton = (*DFA)(nil)

// New validates and builds a DFA. Accepting states missing from states are
// tolerated; they can never be reached.
func New(states []State, alphabet []Symbol, transitions Transitions, initial State, accepting []State) (*DFA, error) {
	stateSet := automaton.NewStateSet(states...)
	if err := automaton.ValidateStates(stateSet); err != nil {
		return nil, err
	}
	if err := automaton.ValidateAlphabet(alphabet); err != nil {
		return nil, err
	}
	d := &DFA{
		states:      stateSet,
		alphabet:    automaton.SymbolSet(alphabet),
		transitions: transitions.clone(),
		initial:     initial,
		accepting:   automaton.NewStateSet(accepting...),
	}
	if err := d.validateTransitions(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DFA) validateTransitions() error {
	if len(d.transitions) == 0 {
		return automaton.Errorf(automaton.EmptyTransitions, "a DFA must define at least one transition")
	}
	for _, from := range sortedSources(d.transitions) {
		row := d.transitions[from]
		for _, sym := range sortedSymbols(row) {
			if sym == automaton.Epsilon {
				return automaton.Errorf(automaton.EpsilonInDFA, "transition from %q is labelled ε", from)
			}
			if err := automaton.ValidateEdge(d.states, d.alphabet, from, sym, row[sym]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delta returns the destination of state on symbol. The second result is
// false when the transition leads to the dead state.
func (d *DFA) Delta(state State, symbol Symbol) (State, bool, error) {
	row, ok := d.transitions[state]
	if !ok {
		return "", false, nil
	}
	if !d.alphabet[symbol] {
		return "", false, automaton.Errorf(automaton.UndefinedTransitionSymbol,
			"transition from %q undefined for symbol %q", state, string(symbol))
	}
	to, ok := row[symbol]
	return to, ok, nil
}

// Next implements automaton.Automaton.
func (d *DFA) Next(state State, symbol Symbol) ([]State, error) {
	to, ok, err := d.Delta(state, symbol)
	if err != nil || !ok {
		return nil, err
	}
	return []State{to}, nil
}

// Traverse walks input from the initial state. An input symbol outside the
// alphabet, or a transition into the dead state, stops the walk and rejects.
func (d *DFA) Traverse(input string) (automaton.Trace, error) {
	if !utf8.ValidString(input) {
		return automaton.Trace{}, automaton.Errorf(automaton.NonTextualInput, "DFA expects text input, got %q", input)
	}
	cur := d.initial
	trace := automaton.Trace{
		Visited:  []State{cur},
		Accepted: d.accepting.Has(cur),
	}
	for _, r := range input {
		sym := Symbol(r)
		if !d.alphabet[sym] {
			trace.Accepted = false
			return trace, nil
		}
		next, ok, err := d.Delta(cur, sym)
		if err != nil {
			return trace, err
		}
		if !ok {
			trace.Accepted = false
			return trace, nil
		}
		cur = next
		trace.Visited = append(trace.Visited, cur)
		trace.Accepted = d.accepting.Has(cur)
	}
	return trace, nil
}

func (d *DFA) Accepts(input string) bool {
	trace, err := d.Traverse(input)
	return err == nil && trace.Accepted
}

func (d *DFA) StateTransitions(input string) []State {
	trace, _ := d.Traverse(input)
	return trace.Visited
}

func (d *DFA) States() []State {
	return d.states.Sorted()
}

func (d *DFA) Alphabet() []Symbol {
	return sortedSymbols(d.alphabet)
}

func (d *DFA) Initial() State {
	return d.initial
}

func (d *DFA) InitialStates() []State {
	return []State{d.initial}
}

func (d *DFA) Accepting() []State {
	return d.accepting.Sorted()
}

func (d *DFA) IsAccepting(state State) bool {
	return d.accepting.Has(state)
}

// Transitions returns a copy of the transition function.
func (d *DFA) Transitions() Transitions {
	return d.transitions.clone()
}

func sortedSources[V any](t map[State]V) []State {
	res := make([]State, 0, len(t))
	for st := range t {
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
