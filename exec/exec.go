package exec

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/liran-funaro/automata/automaton"
	"github.com/liran-funaro/automata/dfa"
	"github.com/liran-funaro/automata/graph"
	"github.com/liran-funaro/automata/nfa"
	"github.com/liran-funaro/automata/regex"
	"github.com/liran-funaro/automata/samples"
	"github.com/liran-funaro/automata/writer"
)

const (
	EnvLogLevel = "AUTOMATA_LOG_LEVEL"
	EnvWorkers  = "AUTOMATA_WORKERS"

	defaultLogLevel = "warn"
	defaultWorkers  = 4
)

type Params struct {
	Regex             string
	Sample            string
	Determinize       bool
	Table             bool
	Trace             bool
	DotOutputFilename string
	GenOutputFilename string
	GenPackage        string
	GenFunc           string
	InputsFilename    string
	Workers           int
	LogLevel          string
	Inputs            []string
	Stdin             io.Reader
	Stdout            io.Writer
	Stderr            io.Writer
}

// loadEnv reads a .env file from the working directory, if there is one.
// Variables already set in the environment take precedence.
func loadEnv() error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "load .env")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func ParseParams(name string, args ...string) (*Params, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}
	workers := defaultWorkers
	if v := envOr(EnvWorkers, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", EnvWorkers)
		}
		workers = n
	}

	f := flag.NewFlagSet(name, flag.ContinueOnError)
	p := &Params{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	f.SetOutput(p.Stderr)
	f.StringVar(&p.Regex, "regex", "", `compile the regular expression into an NFA`)
	f.StringVar(&p.Sample, "sample", "", `use a sample automaton: `+strings.Join(samples.Names(), ", "))
	f.BoolVar(&p.Determinize, "dfa", false, `convert the NFA to a DFA before matching`)
	f.BoolVar(&p.Table, "table", false, `print the transition table`)
	f.BoolVar(&p.Trace, "trace", false, `print the visited states of every input`)
	f.StringVar(&p.DotOutputFilename, "dot", "", `write the automaton graph in DOT format`)
	f.StringVar(&p.GenOutputFilename, "gen", "", `write a Go matcher for the automaton`)
	f.StringVar(&p.GenPackage, "pkg", writer.DefaultPackage, `package name of the generated matcher`)
	f.StringVar(&p.GenFunc, "func", writer.DefaultFuncName, `function name of the generated matcher`)
	f.StringVar(&p.InputsFilename, "inputs", "", `read inputs from file, one per line ("-" for stdin)`)
	f.IntVar(&p.Workers, "workers", workers, `number of inputs evaluated concurrently`)
	f.StringVar(&p.LogLevel, "v", envOr(EnvLogLevel, defaultLogLevel), `log level`)

	if err := f.Parse(args); err != nil {
		return nil, err
	}
	p.Inputs = f.Args()
	return p, nil
}

func Execute(name string, args ...string) error {
	p, err := ParseParams(name, args...)
	if err != nil {
		return errors.Wrap(err, "parse-params")
	}
	return ExecuteWithParams(p)
}

func (p *Params) newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(p.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	l := logrus.New()
	l.Out = p.Stderr
	l.SetLevel(level)
	return l, nil
}

func ExecuteWithParams(p *Params) error {
	log, err := p.newLogger()
	if err != nil {
		return err
	}
	a, err := p.load(log)
	if err != nil {
		return err
	}

	if p.Determinize {
		if a, err = toDFA(a); err != nil {
			return err
		}
	}
	log.WithFields(logrus.Fields{
		"states":   len(a.States()),
		"alphabet": len(a.Alphabet()),
	}).Info("automaton ready")

	if p.Table {
		if err = graph.WriteTable(p.Stdout, a); err != nil {
			return errors.Wrap(err, "write table")
		}
	}
	if err = writeWithWriter(p.DotOutputFilename, func(w io.Writer) error {
		return graph.WriteDotGraph(w, a, "automaton")
	}); err != nil {
		return err
	}
	if err = p.writeMatcher(a); err != nil {
		return err
	}

	inputs, err := p.readInputs()
	if err != nil {
		return err
	}
	return p.match(a, inputs)
}

func (p *Params) load(log logrus.FieldLogger) (automaton.Automaton, error) {
	switch {
	case p.Regex != "" && p.Sample != "":
		return nil, errors.New("-regex and -sample are mutually exclusive")
	case p.Regex != "":
		n, err := regex.NewParser(regex.WithLogger(log)).ToNFA(p.Regex)
		if err != nil {
			return nil, errors.Wrapf(err, "compile %q", p.Regex)
		}
		return n, nil
	case p.Sample != "":
		a, ok := samples.Lookup(p.Sample)
		if !ok {
			return nil, errors.Errorf("unknown sample %q (available: %s)", p.Sample, strings.Join(samples.Names(), ", "))
		}
		return a, nil
	}
	return nil, errors.New("one of -regex or -sample is required")
}

func toDFA(a automaton.Automaton) (*dfa.DFA, error) {
	switch x := a.(type) {
	case *dfa.DFA:
		return x, nil
	case *nfa.NFA:
		d, err := x.ToDFA()
		return d, errors.Wrap(err, "subset construction")
	}
	return nil, errors.Errorf("unsupported automaton %T", a)
}

func (p *Params) writeMatcher(a automaton.Automaton) error {
	if p.GenOutputFilename == "" {
		return nil
	}
	d, err := toDFA(a)
	if err != nil {
		return err
	}
	b := &writer.MatcherBuilder{
		Package:  p.GenPackage,
		FuncName: p.GenFunc,
		Source:   p.describe(),
	}
	code, err := b.DumpFormattedMatcher(d)
	if err != nil {
		return errors.Wrap(err, "dump matcher")
	}
	if err := os.WriteFile(p.GenOutputFilename, code, 0666); err != nil {
		return errors.Wrap(err, "write matcher")
	}
	return nil
}

func (p *Params) describe() string {
	if p.Regex != "" {
		return fmt.Sprintf("the regular expression %q", p.Regex)
	}
	return fmt.Sprintf("the sample automaton %q", p.Sample)
}

func (p *Params) readInputs() ([]string, error) {
	inputs := append([]string(nil), p.Inputs...)
	if p.InputsFilename == "" {
		return inputs, nil
	}
	in := p.Stdin
	if p.InputsFilename != "-" {
		f, err := os.Open(p.InputsFilename)
		if err != nil {
			return nil, errors.Wrap(err, "open inputs")
		}
		defer closeFile(f)
		in = f
	}
	s := bufio.NewScanner(in)
	for s.Scan() {
		inputs = append(inputs, s.Text())
	}
	return inputs, errors.Wrap(s.Err(), "read inputs")
}

// match evaluates the inputs concurrently and prints the verdicts in input
// order. Automata are immutable, so sharing a between goroutines is safe.
func (p *Params) match(a automaton.Automaton, inputs []string) error {
	traces := make([]automaton.Trace, len(inputs))
	var g errgroup.Group
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}
	for i, input := range inputs {
		g.Go(func() error {
			t, err := a.Traverse(input)
			if err != nil {
				return errors.Wrapf(err, "input %d", i)
			}
			traces[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := bufio.NewWriter(p.Stdout)
	for i, input := range inputs {
		verdict := "reject"
		if traces[i].Accepted {
			verdict = "accept"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s", input, verdict)
		if p.Trace {
			names := make([]string, len(traces[i].Visited))
			for j, st := range traces[i].Visited {
				names[j] = string(st)
			}
			_, _ = fmt.Fprintf(w, "\t%s", strings.Join(names, " "))
		}
		_, _ = fmt.Fprintln(w)
	}
	return w.Flush()
}

func closeFile(f *os.File) {
	_ = f.Close()
}

// writeWithWriter creates filepath and fills it with writer. The error of
// closing the file is returned unless writing failed first.
func writeWithWriter(filepath string, writer func(io.Writer) error) (err error) {
	if filepath == "" {
		return nil
	}
	f, err := os.Create(filepath)
	if err != nil {
		return errors.Wrap(err, "write graph")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close graph")
		}
	}()
	return writer(f)
}
