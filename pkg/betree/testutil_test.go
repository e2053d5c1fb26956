package betree

import "strings"

// boolOp is the And/Or/Not operator domain used by the package tests,
// mirroring the classic boolean-expression use of the tree.
type boolOp uint8

const (
	opNone boolOp = iota
	opAnd
	opOr
	opNot
)

func (o boolOp) String() string {
	switch o {
	case opAnd:
		return "&"
	case opOr:
		return "|"
	case opNot:
		return "!"
	default:
		return "?"
	}
}

// apply evaluates the operator. right is nil for unary application.
func (o boolOp) apply(left bool, right *bool) bool {
	switch o {
	case opAnd:
		return left && *right
	case opOr:
		return left || *right
	case opNot:
		return !left
	default:
		panic("unexpected operator application")
	}
}

// skipRight reports whether the left value alone decides the result.
func (o boolOp) skipRight(left bool) bool {
	return (o == opAnd && !left) || (o == opOr && left)
}

// parse builds a tree from expressions like "(A | B) & !C". Atoms are
// single-character strings; spaces are ignored.
func parse(input string) *Tree[boolOp, string] {
	tree := New[boolOp, string]()
	for _, c := range input {
		switch c {
		case '&':
			tree.PushOperator(opAnd)
		case '|':
			tree.PushOperator(opOr)
		case '!':
			tree.PushOperator(opNot)
		case '(':
			tree.OpenPar()
		case ')':
			tree.ClosePar()
		case ' ':
		default:
			tree.PushAtom(string(c))
		}
	}
	return tree
}

// evalWith evaluates a parsed tree; trues lists the atoms valued true.
func evalWith(tree *Tree[boolOp, string], trues string) (bool, bool) {
	return Eval(tree,
		func(atom string) bool { return strings.Contains(trues, atom) },
		func(op boolOp, left bool, right *bool) bool { return op.apply(left, right) },
		func(op boolOp, left bool) bool { return op.skipRight(left) },
	)
}
