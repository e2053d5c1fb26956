package filter

import (
	"fmt"
	"unicode"

	"github.com/randalmurphal/betree/pkg/betree"
	"github.com/randalmurphal/betree/pkg/betree/boolexpr"
)

// SyntaxError reports a structural token the filter grammar cannot accept
// at its position.
type SyntaxError struct {
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("filter: %s at offset %d", e.Reason, e.Offset)
}

// Filter is a compiled filter expression. It is immutable and safe for
// concurrent matching.
type Filter struct {
	source string
	tree   *betree.Tree[boolexpr.Operator, Predicate]
}

// Compile parses a filter expression in two phases: the boolean structure
// first, with predicates as raw substrings, then every predicate at once
// through betree.TryMapAtoms.
func Compile(input string) (*Filter, error) {
	raw, err := parseSource(input)
	if err != nil {
		return nil, err
	}
	tree, err := betree.TryMapAtoms(raw, func(atom string) (Predicate, error) {
		return ParsePredicate(atom)
	})
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", input, err)
	}
	return &Filter{source: input, tree: tree}, nil
}

// parseSource builds the boolean structure with raw string atoms.
// Unlike boolexpr identifiers, a predicate atom may contain spaces and
// comparison characters ("size >= 100"), so only '&', '|', '(' and ')'
// are unconditionally structural; '!' is structural only when it does not
// continue an atom (so "a != b" stays one atom).
func parseSource(input string) (*betree.Tree[boolexpr.Operator, string], error) {
	tree := betree.New[boolexpr.Operator, string]()
	empty := true
	for i, c := range input {
		if unicode.IsSpace(c) && tree.CurrentAtom() == nil {
			continue
		}
		switch {
		case c == '&' || c == '|':
			if !tree.AcceptBinaryOperator() {
				return nil, &SyntaxError{Offset: i, Reason: "misplaced binary operator"}
			}
			if c == '&' {
				tree.PushOperator(boolexpr.And)
			} else {
				tree.PushOperator(boolexpr.Or)
			}
		case c == '!' && tree.CurrentAtom() == nil:
			if !tree.AcceptUnaryOperator() {
				return nil, &SyntaxError{Offset: i, Reason: "misplaced unary operator"}
			}
			tree.PushOperator(boolexpr.Not)
		case c == '(':
			if !tree.AcceptOpenPar() {
				return nil, &SyntaxError{Offset: i, Reason: "misplaced opening parenthesis"}
			}
			tree.OpenPar()
		case c == ')':
			if !tree.AcceptClosePar() {
				return nil, &SyntaxError{Offset: i, Reason: "misplaced closing parenthesis"}
			}
			tree.ClosePar()
		default:
			if tree.CurrentAtom() == nil && !tree.AcceptAtom() {
				return nil, &SyntaxError{Offset: i, Reason: "misplaced predicate"}
			}
			*tree.MutateOrCreateAtom(newAtom) += string(c)
		}
		if !unicode.IsSpace(c) {
			empty = false
		}
	}
	if !empty && !tree.AcceptBinaryOperator() {
		return nil, &SyntaxError{Offset: len(input), Reason: "unexpected end of expression"}
	}
	if tree.Openness() > 0 {
		return nil, &SyntaxError{Offset: len(input), Reason: "unclosed parenthesis"}
	}
	tree.Simplify()
	return tree, nil
}

func newAtom() string { return "" }

// Source returns the expression the filter was compiled from.
func (f *Filter) Source() string {
	return f.source
}

// Tree exposes the compiled predicate tree for inspection.
func (f *Filter) Tree() *betree.Tree[boolexpr.Operator, Predicate] {
	return f.tree
}

// Match evaluates the filter against one record. An empty filter matches
// nothing. Right operands are skipped whenever the left value already
// decides an And or Or.
func (f *Filter) Match(record map[string]any) (bool, error) {
	if f.tree == nil {
		return false, nil
	}
	matched, ok, err := betree.EvalErr(f.tree,
		func(p Predicate) (bool, error) { return p.Match(record) },
		boolexpr.Operator.Apply,
		boolexpr.Operator.ShortCircuit,
	)
	if err != nil || !ok {
		return false, err
	}
	return matched, nil
}
