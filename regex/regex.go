// Package regex compiles regular expressions over letters and numbers into
// NFAs: Tokenize, then Parse into postfix, then Compile with Thompson
// construction.
//
// Supported operators are union '|', Kleene star '*', positive closure '+'
// and grouping parentheses. Concatenation is implicit.
package regex

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/liran-funaro/automata/automaton"
	"github.com/liran-funaro/automata/nfa"
)

// Parser compiles patterns. Its namer is reset after every successful
// compilation, so compiling the same pattern twice yields identical state
// names. A Parser must not be used from several goroutines at once.
type Parser struct {
	namer *automaton.Namer
	log   logrus.FieldLogger
}

type Option func(*Parser)

// WithLogger sets the logger that receives debug output of each stage.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) {
		p.log = l
	}
}

// WithNamer sets the allocator for state names.
func WithNamer(n *automaton.Namer) Option {
	return func(p *Parser) {
		p.namer = n
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.namer == nil {
		p.namer = automaton.NewNamer(automaton.BaseState)
	}
	if p.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		p.log = l
	}
	return p
}

// ToNFA compiles pattern with a fresh Parser.
func ToNFA(pattern string) (*nfa.NFA, error) {
	return NewParser().ToNFA(pattern)
}

// ToNFA runs Tokenize, Parse and Compile on pattern.
func (p *Parser) ToNFA(pattern string) (*nfa.NFA, error) {
	log := p.log.WithField("pattern", pattern)
	tokens, err := p.Tokenize(pattern)
	if err != nil {
		return nil, err
	}
	log.WithField("tokens", tokens).Debug("tokenized")
	postfix, err := p.Parse(tokens)
	if err != nil {
		return nil, err
	}
	log.WithField("postfix", Postfix(postfix)).Debug("parsed")
	return p.Compile(postfix)
}

func (p *Parser) Tokenize(pattern string) ([]Token, error) {
	return Tokenize(pattern)
}

func (p *Parser) Parse(tokens []Token) ([]Token, error) {
	return Parse(tokens)
}

// Compile builds an NFA from postfix tokens. Characters push a two-state NFA;
// '*' and '+' replace the top of the stack by its closure; '|' replaces the
// two top entries by their union. Whatever remains on the stack is
// concatenated from bottom to top.
func (p *Parser) Compile(postfix []Token) (*nfa.NFA, error) {
	var stack []*nfa.NFA
	pop := func(t Token) (*nfa.NFA, error) {
		if len(stack) == 0 {
			return nil, automaton.Errorf(automaton.DanglingOperator,
				"invalid regular expression: %q at %d is missing an operand", t.Value, t.Pos)
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}

	for _, t := range postfix {
		switch t.Kind {
		case Character:
			atom, err := p.atomicNFA(automaton.Symbol(t.Value))
			if err != nil {
				return nil, err
			}
			stack = append(stack, atom)
		case Star, Plus:
			x, err := pop(t)
			if err != nil {
				return nil, err
			}
			stack = append(stack, nfa.KleeneStar(p.namer, x, t.Kind == Plus))
		case Union:
			r, err := pop(t)
			if err != nil {
				return nil, err
			}
			l, err := pop(t)
			if err != nil {
				return nil, err
			}
			stack = append(stack, nfa.Union(p.namer, l, r))
		default:
			return nil, automaton.Errorf(automaton.UnrecognizedToken, "invalid token %s in postfix expression", t)
		}
	}

	if len(stack) == 0 {
		return nil, automaton.Errorf(automaton.EmptyExpression, "invalid regular expression: nothing to match")
	}
	out := stack[0]
	for _, x := range stack[1:] {
		out = nfa.Concat(out, x)
	}
	p.namer.Reset()
	p.log.WithField("states", len(out.States())).Debug("compiled")
	return out, nil
}

func (p *Parser) atomicNFA(symbol automaton.Symbol) (*nfa.NFA, error) {
	initial := p.namer.Next()
	accepting := p.namer.Next()
	t := nfa.Transitions{}
	t.Set(initial, symbol, accepting)
	return nfa.New(
		[]automaton.State{initial, accepting},
		[]automaton.Symbol{symbol},
		t,
		[]automaton.State{initial},
		[]automaton.State{accepting},
	)
}

// Postfix renders postfix tokens as their characters, e.g. "a*bc|".
func Postfix(tokens []Token) string {
	buf := make([]rune, len(tokens))
	for i, t := range tokens {
		buf[i] = t.Value
	}
	return string(buf)
}
