package boolexpr

import (
	"fmt"
	"unicode"

	"github.com/randalmurphal/betree/pkg/betree"
)

// ParseError reports a token the grammar cannot accept at its position.
type ParseError struct {
	Offset int
	Token  rune
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token == 0 {
		return fmt.Sprintf("boolexpr: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("boolexpr: %s at offset %d: %q", e.Reason, e.Offset, e.Token)
}

// Parse builds a tree from a boolean expression over identifier atoms.
//
// Operators are '&', '|' and '!', grouping with parentheses, spaces
// separate atoms. Any other rune accumulates into the current atom, so
// atoms may be multi-character: "lock & (carg | conf)".
//
// Every token is validated with the tree's accept predicates before being
// pushed; the first unacceptable token aborts with a *ParseError.
func Parse(input string) (*betree.Tree[Operator, string], error) {
	tree := betree.New[Operator, string]()
	sawSpace := false
	empty := true
	for i, c := range input {
		if unicode.IsSpace(c) {
			sawSpace = true
			continue
		}
		empty = false
		switch c {
		case '&', '|':
			if !tree.AcceptBinaryOperator() {
				return nil, &ParseError{Offset: i, Token: c, Reason: "misplaced binary operator"}
			}
			if c == '&' {
				tree.PushOperator(And)
			} else {
				tree.PushOperator(Or)
			}
		case '!':
			if !tree.AcceptUnaryOperator() {
				return nil, &ParseError{Offset: i, Token: c, Reason: "misplaced unary operator"}
			}
			tree.PushOperator(Not)
		case '(':
			if !tree.AcceptOpenPar() {
				return nil, &ParseError{Offset: i, Token: c, Reason: "misplaced opening parenthesis"}
			}
			tree.OpenPar()
		case ')':
			if !tree.AcceptClosePar() {
				return nil, &ParseError{Offset: i, Token: c, Reason: "misplaced closing parenthesis"}
			}
			tree.ClosePar()
		default:
			// A rune directly after a finished atom continues that atom; a
			// space in between ends it, and the grammar must be ready for
			// a new one.
			continuing := tree.CurrentAtom() != nil && !sawSpace
			if !continuing && !tree.AcceptAtom() {
				return nil, &ParseError{Offset: i, Token: c, Reason: "misplaced atom"}
			}
			*tree.MutateOrCreateAtom(newAtom) += string(c)
		}
		sawSpace = false
	}
	if !empty && !tree.AcceptBinaryOperator() {
		// Acceptable ends are exactly the states a binary operator could
		// follow: an atom or a closing parenthesis.
		return nil, &ParseError{Offset: len(input), Reason: "unexpected end of expression"}
	}
	if tree.Openness() > 0 {
		return nil, &ParseError{Offset: len(input), Reason: "unclosed parenthesis"}
	}
	tree.Simplify()
	return tree, nil
}

func newAtom() string { return "" }

// Eval evaluates a parsed tree against a truth function for its atoms.
// An empty tree evaluates to false.
func Eval(tree *betree.Tree[Operator, string], trues func(atom string) bool) (bool, error) {
	value, ok, err := betree.EvalErr(tree,
		func(atom string) (bool, error) { return trues(atom), nil },
		Operator.Apply,
		Operator.ShortCircuit,
	)
	if err != nil || !ok {
		return false, err
	}
	return value, nil
}
