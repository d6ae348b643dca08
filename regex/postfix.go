package regex

import (
	"github.com/liran-funaro/automata/automaton"
)

var precedence = map[TokenKind]int{
	Union: 1,
	Star:  2,
	Plus:  2,
}

// Parse reorders infix tokens into postfix with a shunting-yard pass.
// Repetition operators are already postfix and go straight to the output.
// Concatenation has no operator: adjacent operands stay adjacent in the
// output and are joined by Compile.
func Parse(tokens []Token) ([]Token, error) {
	var out, ops []Token
	for _, t := range tokens {
		switch t.Kind {
		case Character:
			out = append(out, t)
		case Star, Plus:
			if len(out) == 0 || out[len(out)-1].isRepeat() {
				return nil, automaton.Errorf(automaton.DanglingOperator,
					"invalid regular expression with %q at %d", t.Value, t.Pos)
			}
			out = append(out, t)
		case Union:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == LParen || precedence[top.Kind] < precedence[t.Kind] {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, t)
		case LParen:
			ops = append(ops, t)
		case RParen:
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == LParen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				return nil, automaton.Errorf(automaton.MismatchedParens, "unmatched ')' at %d", t.Pos)
			}
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.Kind == LParen {
			return nil, automaton.Errorf(automaton.MismatchedParens, "unmatched '(' at %d", top.Pos)
		}
		out = append(out, top)
		ops = ops[:len(ops)-1]
	}
	return out, nil
}
