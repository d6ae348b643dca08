// Package writer generates Go source code that matches strings against a DFA
// without depending on this module at run time.
package writer

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"slices"

	"golang.org/x/tools/imports"

	"github.com/liran-funaro/automata/automaton"
	"github.com/liran-funaro/automata/dfa"
)

const (
	DefaultPackage  = "main"
	DefaultFuncName = "Match"
)

type MatcherBuilder struct {
	Package  string
	FuncName string
	// Source describes the automaton in the generated doc comment, e.g. the
	// regular expression it was compiled from.
	Source string

	buf bytes.Buffer
}

// DumpFormattedMatcher returns a gofmt-ed Go file declaring
// func <FuncName>(input string) bool, which accepts exactly the strings d
// accepts.
func (b *MatcherBuilder) DumpFormattedMatcher(d *dfa.DFA) ([]byte, error) {
	pkg, fn := b.Package, b.FuncName
	if pkg == "" {
		pkg = DefaultPackage
	}
	if fn == "" {
		fn = DefaultFuncName
	}
	if !token.IsIdentifier(pkg) || !token.IsIdentifier(fn) {
		return nil, fmt.Errorf("invalid package %q or function name %q", pkg, fn)
	}

	b.buf.Reset()
	b.printf("// Code generated by automata --- DO NOT EDIT.\n\n")
	b.printf("package %s\n\n", pkg)
	b.writeMatcher(d, fn)
	return formatCode(b.buf.Bytes())
}

func (b *MatcherBuilder) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(&b.buf, format, a...)
}

// numberStates gives the initial state 0 and the rest ascending numbers in
// name order.
func numberStates(d *dfa.DFA) ([]automaton.State, map[automaton.State]int) {
	order := []automaton.State{d.Initial()}
	for _, st := range d.States() {
		if st != d.Initial() {
			order = append(order, st)
		}
	}
	ids := make(map[automaton.State]int, len(order))
	for i, st := range order {
		ids[st] = i
	}
	return order, ids
}

func (b *MatcherBuilder) writeMatcher(d *dfa.DFA, fn string) {
	order, ids := numberStates(d)
	transitions := d.Transitions()

	if b.Source != "" {
		b.printf("// %s reports whether input is accepted by %s.\n", fn, b.Source)
	} else {
		b.printf("// %s reports whether input is accepted by the automaton.\n", fn)
	}
	b.printf("func %s(input string) bool {\n", fn)
	b.printf("state := 0\n")
	b.printf("for _, r := range input {\n")
	b.printf("switch state {\n")
	for _, st := range order {
		row := transitions[st]
		b.printf("case %d: // %s\n", ids[st], st)
		if len(row) == 0 {
			b.printf("return false\n")
			continue
		}
		b.printf("switch r {\n")
		for _, sym := range automaton.SortSymbols(keys(row)) {
			b.printf("case %q:\n", []rune(string(sym))[0])
			b.printf("state = %d\n", ids[row[sym]])
		}
		b.printf("default:\nreturn false\n}\n")
	}
	b.printf("default:\nreturn false\n}\n")
	b.printf("}\n")

	var accepting []int
	for _, st := range d.Accepting() {
		if id, ok := ids[st]; ok {
			accepting = append(accepting, id)
		}
	}
	slices.Sort(accepting)
	if len(accepting) == 0 {
		b.printf("return false\n}\n")
		return
	}
	b.printf("switch state {\ncase ")
	for i, id := range accepting {
		if i > 0 {
			b.printf(", ")
		}
		b.printf("%d", id)
	}
	b.printf(":\nreturn true\n}\nreturn false\n}\n")
}

func keys[V any](m map[automaton.Symbol]V) []automaton.Symbol {
	res := make([]automaton.Symbol, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	return res
}

func formatCode(src []byte) ([]byte, error) {
	src, err := format.Source(src)
	if err != nil {
		return src, err
	}
	return imports.Process("matcher.go", src, &imports.Options{
		TabWidth:  8,
		TabIndent: true,
		Comments:  true,
		Fragment:  true,
	})
}
