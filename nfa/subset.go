package nfa

import (
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/liran-funaro/automata/automaton"
	"github.com/liran-funaro/automata/dfa"
)

// ToDFA NFA -> DFA (subset construction)
// Every DFA state stands for the epsilon closure of a set of NFA states and is
// named by its members' names, sorted and comma-joined in braces. The empty
// set "{}" is always present as a dead state looping on every symbol, so the
// resulting transition function is total.
func (n *NFA) ToDFA() (*dfa.DFA, error) {
	b := newDfaBuilder(n)
	b.constructDeadState()

	initial, err := b.get(b.closure(b.fromStates(n.initial)))
	if err != nil {
		return nil, err
	}

	for len(b.todo) > 0 {
		x := b.nextTodo()
		from := b.tab[x.String()]
		for _, sym := range b.alphabet {
			to, err := b.get(b.step(x, sym))
			if err != nil {
				return nil, err
			}
			b.transitions.Set(from, sym, to)
		}
	}

	return dfa.New(b.states, b.alphabet, b.transitions, initial, b.accepting)
}

type dfaBuilder struct {
	nfa         *NFA
	order       []State
	index       map[State]uint
	alphabet    []Symbol
	tab         map[string]State
	owner       map[State]*bitset.BitSet
	todo        []*bitset.BitSet
	states      []State
	accepting   []State
	transitions dfa.Transitions
}

func newDfaBuilder(n *NFA) *dfaBuilder {
	// Initial and accepting states need not be declared.
	order := n.states.Union(n.initial, n.accepting).Sorted()
	index := make(map[State]uint, len(order))
	for i, st := range order {
		index[st] = uint(i)
	}
	return &dfaBuilder{
		nfa:         n,
		order:       order,
		index:       index,
		alphabet:    n.Alphabet(),
		tab:         make(map[string]State),
		owner:       make(map[State]*bitset.BitSet),
		transitions: make(dfa.Transitions),
	}
}

func (b *dfaBuilder) newEmptySet() *bitset.BitSet {
	return bitset.New(uint(len(b.order)))
}

func (b *dfaBuilder) fromStates(states StateSet) *bitset.BitSet {
	set := b.newEmptySet()
	for st := range states {
		set.Set(b.index[st])
	}
	return set
}

func (b *dfaBuilder) toStates(set *bitset.BitSet) StateSet {
	res := make(StateSet, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		res.Add(b.order[i])
	}
	return res
}

func (b *dfaBuilder) closure(set *bitset.BitSet) *bitset.BitSet {
	return b.fromStates(b.nfa.EpsilonClosure(b.toStates(set)))
}

// step returns the epsilon closure of every destination of x on sym.
func (b *dfaBuilder) step(x *bitset.BitSet, sym Symbol) *bitset.BitSet {
	u := b.newEmptySet()
	for i, ok := x.NextSet(0); ok; i, ok = x.NextSet(i + 1) {
		for to := range b.nfa.transitions[b.order[i]][sym] {
			u.Set(b.index[to])
		}
	}
	return b.closure(u)
}

// name renders the subset as "{a,b}". Indexes follow name order, so the
// members come out sorted.
func (b *dfaBuilder) name(set *bitset.BitSet) State {
	var names []string
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		names = append(names, string(b.order[i]))
	}
	return State("{" + strings.Join(names, ",") + "}")
}

// get returns the DFA state of set, registering it and queueing it for
// expansion the first time it is seen. It fails when the name of set is
// already taken by a different subset, e.g. {a,b} and a state named "a,b".
func (b *dfaBuilder) get(set *bitset.BitSet) (State, error) {
	key := set.String()
	if st, found := b.tab[key]; found {
		return st, nil
	}
	st := b.name(set)
	if other, taken := b.owner[st]; taken {
		return "", automaton.Errorf(automaton.AmbiguousSubsetName,
			"subsets %s and %s are both named %q", b.members(other), b.members(set), st)
	}
	b.register(set, st)
	if b.toStates(set).Intersects(b.nfa.accepting) {
		b.accepting = append(b.accepting, st)
	}
	b.todo = append(b.todo, set)
	return st, nil
}

func (b *dfaBuilder) register(set *bitset.BitSet, st State) {
	b.tab[set.String()] = st
	b.owner[st] = set
	b.states = append(b.states, st)
}

// members lists the quoted names of the states in set.
func (b *dfaBuilder) members(set *bitset.BitSet) string {
	var names []string
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		names = append(names, strconv.Quote(string(b.order[i])))
	}
	return "[" + strings.Join(names, " ") + "]"
}

func (b *dfaBuilder) nextTodo() *bitset.BitSet {
	x := b.todo[0]
	b.todo = slices.Delete(b.todo, 0, 1)
	return x
}

// constructDeadState registers the empty subset, from which no string is
// accepted.
func (b *dfaBuilder) constructDeadState() {
	empty := b.newEmptySet()
	dead := b.name(empty)
	b.register(empty, dead)
	for _, sym := range b.alphabet {
		b.transitions.Set(dead, sym, dead)
	}
}

// DeadState is the name ToDFA gives to the empty subset.
const DeadState = automaton.State("{}")
