// Package graph renders automata for human inspection: Graphviz DOT graphs
// and transition tables.
package graph

import (
	"fmt"
	"io"
	"strconv"

	"github.com/liran-funaro/automata/automaton"
	"github.com/liran-funaro/automata/nfa"
)

type edge struct {
	symbol automaton.Symbol
	dst    automaton.State
}

// edges returns the out-edges of st, in alphabet order followed by epsilon.
// Automata without epsilon transitions report an undefined-symbol error for
// epsilon, which is skipped.
func edges(a automaton.Automaton, st automaton.State) ([]edge, error) {
	var res []edge
	for _, sym := range append(a.Alphabet(), automaton.Epsilon) {
		dst, err := a.Next(st, sym)
		if automaton.KindOf(err) == automaton.UndefinedTransitionSymbol && sym == automaton.Epsilon {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, d := range dst {
			res = append(res, edge{symbol: sym, dst: d})
		}
	}
	return res, nil
}

// WriteDotGraph prints a in DOT format.
//
//	$ dot -Tps input.dot -o output.ps
func WriteDotGraph(out io.Writer, a automaton.Automaton, id string) error {
	b := dotGraphBuilder{
		out:  out,
		a:    a,
		done: make(map[automaton.State]bool),
	}
	b.printf("digraph %v {\n", id)
	for _, st := range a.InitialStates() {
		b.printf("  %v[shape=box];\n", nodeID(st))
	}
	for _, st := range a.InitialStates() {
		if !b.done[st] {
			b.show(st)
		}
	}
	b.printf("}\n")
	return b.err
}

type dotGraphBuilder struct {
	out  io.Writer
	a    automaton.Automaton
	done map[automaton.State]bool
	err  error
}

func (b *dotGraphBuilder) printf(format string, a ...any) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.out, format, a...)
}

func nodeID(st automaton.State) string {
	return strconv.Quote(string(st))
}

func (b *dotGraphBuilder) show(u automaton.State) {
	if b.a.IsAccepting(u) {
		b.printf("  %v[style=filled,color=green];\n", nodeID(u))
	}
	b.done[u] = true
	out, err := edges(b.a, u)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return
	}
	for _, e := range out {
		// The dead state of a subset construction only adds noise.
		if e.dst == nfa.DeadState {
			continue
		}
		label := fmt.Sprintf("[label=%q]", e.symbol.String())
		if e.symbol == automaton.Epsilon {
			label = fmt.Sprintf("[label=%q,style=dashed]", e.symbol.String())
		}
		b.printf("  %v -> %v%v;\n", nodeID(u), nodeID(e.dst), label)
	}
	for _, e := range out {
		if !b.done[e.dst] && e.dst != nfa.DeadState {
			b.show(e.dst)
		}
	}
}
