// Package automaton holds the data model shared by deterministic and
// non-deterministic finite automata: states, symbols, name allocation,
// error kinds and the validation rules both kinds enforce at construction.
package automaton

// Automaton is implemented by *dfa.DFA and *nfa.NFA.
type Automaton interface {
	// Accepts reports whether the automaton accepts input.
	Accepts(input string) bool

	// StateTransitions returns every state visited while reading input.
	StateTransitions(input string) []State

	// Traverse runs input and returns the visited states and the verdict.
	// It fails only when input is not valid text.
	Traverse(input string) (Trace, error)

	// Next returns the destinations of state on symbol, sorted by name.
	// An empty result denotes the dead state.
	Next(state State, symbol Symbol) ([]State, error)

	States() []State
	Alphabet() []Symbol
	InitialStates() []State
	IsAccepting(state State) bool
}

// Trace is the outcome of running an input through an automaton.
type Trace struct {
	Visited  []State
	Accepted bool
}

// ValidateStates checks that an automaton declares at least one state.
func ValidateStates(states StateSet) error {
	if len(states) == 0 {
		return newError(EmptyStates, "an automaton must have at least one state")
	}
	return nil
}

// ValidateAlphabet checks that the alphabet is non-empty and that every
// symbol is exactly one character.
func ValidateAlphabet(alphabet []Symbol) error {
	if len(alphabet) == 0 {
		return newError(EmptyAlphabet, "an alphabet must have at least one symbol")
	}
	for _, s := range alphabet {
		if !s.valid() {
			return newError(BadAlphabetSymbol, "symbol %q must be a single character", string(s))
		}
	}
	return nil
}

// ValidateEdge checks a single transition definition against the declared
// states and alphabet. Epsilon labels are accepted; the DFA rejects them
// before calling ValidateEdge.
func ValidateEdge(states StateSet, alphabet map[Symbol]bool, from State, symbol Symbol, to ...State) error {
	if !states.Has(from) {
		return newError(TransitionStateUndeclared, "source state %q is not declared", from)
	}
	for _, st := range to {
		if !states.Has(st) {
			return newError(TransitionStateUndeclared, "destination state %q from %q is not declared", st, from)
		}
	}
	if symbol != Epsilon && !alphabet[symbol] {
		return newError(TransitionSymbolUndeclared, "symbol %q from %q is not in the alphabet", string(symbol), from)
	}
	return nil
}

// SymbolSet returns the alphabet as a lookup table.
func SymbolSet(alphabet []Symbol) map[Symbol]bool {
	res := make(map[Symbol]bool, len(alphabet))
	for _, s := range alphabet {
		res[s] = true
	}
	return res
}
