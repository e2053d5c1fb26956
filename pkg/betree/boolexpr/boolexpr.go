// Package boolexpr is a ready-made And/Or/Not operator domain for betree.
//
// It parses expressions like "(A | B) & !(C | D | E)" into a tree whose
// atoms are the identifier substrings, and evaluates them against a
// caller-supplied truth function. Parsing is strict: every token is checked
// against the tree's accept predicates and a malformed expression is
// rejected with the offending position.
package boolexpr

import (
	"fmt"
)

// Operator is a boolean operator. And and Or are binary, Not is unary.
type Operator uint8

const (
	// And is true when both operands are true.
	And Operator = iota + 1
	// Or is true when at least one operand is true.
	Or
	// Not negates its single operand.
	Not
)

// String returns the operator's source form.
func (o Operator) String() string {
	switch o {
	case And:
		return "&"
	case Or:
		return "|"
	case Not:
		return "!"
	default:
		return "?"
	}
}

// Apply evaluates the operator. right is nil for a unary application; an
// arity mismatch (a binary operator with no right value, or Not with one)
// is an error, which only happens on trees built without grammar checking.
func (o Operator) Apply(left bool, right *bool) (bool, error) {
	switch {
	case o == And && right != nil:
		return left && *right, nil
	case o == Or && right != nil:
		return left || *right, nil
	case o == Not && right == nil:
		return !left, nil
	default:
		return false, fmt.Errorf("boolexpr: unexpected application of %s", o)
	}
}

// ShortCircuit reports whether the left value alone decides the result:
// false kills an And, true settles an Or.
func (o Operator) ShortCircuit(left bool) bool {
	return (o == And && !left) || (o == Or && left)
}
