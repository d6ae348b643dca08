package writer

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liran-funaro/automata/dfa"
	"github.com/liran-funaro/automata/regex"
	"github.com/liran-funaro/automata/samples"
)

func parseMatcher(t *testing.T, src []byte) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "matcher.go", src, parser.ParseComments)
	require.NoError(t, err, string(src))
	return f
}

func funcNames(f *ast.File) []string {
	var res []string
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			res = append(res, fn.Name.Name)
		}
	}
	return res
}

func TestDumpFormattedMatcher(t *testing.T) {
	b := &MatcherBuilder{Source: "even zeros"}
	src, err := b.DumpFormattedMatcher(samples.EvenNumberOfZeros())
	require.NoError(t, err)

	f := parseMatcher(t, src)
	require.Equal(t, DefaultPackage, f.Name.Name)
	require.Equal(t, []string{DefaultFuncName}, funcNames(f))

	out := string(src)
	require.True(t, strings.HasPrefix(out, "// Code generated by automata --- DO NOT EDIT.\n"))
	require.Contains(t, out, "// Match reports whether input is accepted by even zeros.")
	require.Contains(t, out, "case 0: // q0")
	require.Contains(t, out, "case 1: // q1")
	require.Contains(t, out, "case '0':\n\t\t\t\tstate = 1")
	require.Contains(t, out, "switch state {\n\tcase 0:\n\t\treturn true\n\t}")
}

func TestDumpFormattedMatcherNames(t *testing.T) {
	n, err := regex.ToNFA("(a|b)*abb")
	require.NoError(t, err)
	d, err := n.ToDFA()
	require.NoError(t, err)

	b := &MatcherBuilder{Package: "lexer", FuncName: "matchABB"}
	src, err := b.DumpFormattedMatcher(d)
	require.NoError(t, err)
	f := parseMatcher(t, src)
	require.Equal(t, "lexer", f.Name.Name)
	require.Equal(t, []string{"matchABB"}, funcNames(f))
	require.Contains(t, string(src), "reports whether input is accepted by the automaton")

	again, err := b.DumpFormattedMatcher(d)
	require.NoError(t, err)
	require.Equal(t, string(src), string(again), "builder output is reproducible")
}

func TestDumpFormattedMatcherDeadEnds(t *testing.T) {
	d, err := dfa.New(
		[]dfa.State{"q0", "q1"},
		[]dfa.Symbol{"a"},
		dfa.Transitions{"q0": {"a": "q1"}},
		"q0",
		nil,
	)
	require.NoError(t, err)
	src, err := (&MatcherBuilder{}).DumpFormattedMatcher(d)
	require.NoError(t, err)
	parseMatcher(t, src)
	require.Contains(t, string(src), "case 1: // q1\n\t\t\treturn false")
	require.NotContains(t, string(src), "return true")
}

func TestDumpFormattedMatcherInvalidName(t *testing.T) {
	for _, b := range []*MatcherBuilder{
		{Package: "my-pkg"},
		{FuncName: "1match"},
		{FuncName: "func"},
	} {
		_, err := b.DumpFormattedMatcher(samples.EvenNumberOfZeros())
		require.Error(t, err)
	}
}

func TestNumberStates(t *testing.T) {
	d, err := regex.ToNFA("ab")
	require.NoError(t, err)
	m, err := d.ToDFA()
	require.NoError(t, err)
	order, ids := numberStates(m)
	require.Equal(t, m.Initial(), order[0])
	require.Len(t, ids, len(m.States()))
	for i, st := range order {
		require.Equal(t, i, ids[st])
	}
}
