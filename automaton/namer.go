package automaton

import (
	"strconv"
	"unicode/utf8"
)

const (
	// BaseState is the default base name of allocated states.
	BaseState = "q"
	// BaseNFA is the base name of states synthesized by NFA merges.
	BaseNFA = "s"
)

// Namer allocates state names from a base name and a counter.
// A Namer is not safe for concurrent use; give each construction pass its own.
type Namer struct {
	initialBase string
	base        string
	next        int
}

// NewNamer returns a namer issuing base0, base1, ...
// An empty base selects BaseState.
func NewNamer(base string) *Namer {
	if base == "" {
		base = BaseState
	}
	return &Namer{initialBase: base, base: base}
}

func (n *Namer) Base() string {
	return n.base
}

// SetBase overrides the base name for subsequent names.
func (n *Namer) SetBase(base string) error {
	if base == "" || !utf8.ValidString(base) {
		return newError(NonTextualInput, "base name %q must be non-empty text", base)
	}
	n.base = base
	return nil
}

// Next issues the next name and advances the counter.
func (n *Namer) Next() State {
	st := State(n.base + strconv.Itoa(n.next))
	n.next++
	return st
}

// Fresh issues the next name that is not a member of existing.
func (n *Namer) Fresh(existing StateSet) State {
	st := n.Next()
	for existing.Has(st) {
		st = n.Next()
	}
	return st
}

// Reset restores the counter to zero and the base name given to NewNamer.
func (n *Namer) Reset() {
	n.base = n.initialBase
	n.next = 0
}

// FreeName returns base+n for the smallest n not in use by existing.
func FreeName(base string, existing StateSet) State {
	for i := 0; ; i++ {
		st := State(base + strconv.Itoa(i))
		if !existing.Has(st) {
			return st
		}
	}
}
