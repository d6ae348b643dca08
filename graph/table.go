package graph

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/liran-funaro/automata/automaton"
)

// Empty marks an undefined transition in a table.
const Empty = "∅"

// WriteTable renders the transition function of a as a table with one row
// per state and one column per symbol. An epsilon column is added when any
// state has epsilon transitions. Initial states are prefixed with "→" and
// accepting states with "*".
func WriteTable(out io.Writer, a automaton.Automaton) error {
	states := a.States()
	symbols := a.Alphabet()

	rows := make(map[automaton.State]map[automaton.Symbol][]automaton.State, len(states))
	hasEpsilon := false
	for _, st := range states {
		row := make(map[automaton.Symbol][]automaton.State)
		es, err := edges(a, st)
		if err != nil {
			return err
		}
		for _, e := range es {
			row[e.symbol] = append(row[e.symbol], e.dst)
			hasEpsilon = hasEpsilon || e.symbol == automaton.Epsilon
		}
		rows[st] = row
	}
	if hasEpsilon {
		symbols = append(symbols, automaton.Epsilon)
	}

	header := []string{"δ"}
	for _, sym := range symbols {
		header = append(header, sym.String())
	}

	initial := automaton.NewStateSet(a.InitialStates()...)
	table := tablewriter.NewWriter(out)
	table.Header(header)
	for _, st := range states {
		line := []string{stateLabel(st, initial.Has(st), a.IsAccepting(st))}
		for _, sym := range symbols {
			line = append(line, cell(rows[st][sym]))
		}
		if err := table.Append(line); err != nil {
			return err
		}
	}
	return table.Render()
}

func stateLabel(st automaton.State, initial, accepting bool) string {
	var b strings.Builder
	if initial {
		b.WriteString("→")
	}
	if accepting {
		b.WriteString("*")
	}
	b.WriteString(string(st))
	return b.String()
}

func cell(dst []automaton.State) string {
	switch len(dst) {
	case 0:
		return Empty
	case 1:
		return string(dst[0])
	}
	return automaton.NewStateSet(dst...).String()
}
