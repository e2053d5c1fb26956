// Package betree builds and evaluates binary/unary expression trees.
//
// An expression is built incrementally by pushing its parts left to right:
// atoms (the "variables"), operators, and parentheses. The tree takes care
// of the structure; there is no separate parser object and no operator
// precedence. Evaluation order is strictly left to right, modified only by
// parentheses.
//
// The operator and atom types are caller-supplied type parameters. The tree
// never interprets an operator itself: evaluation threads operators through
// caller callbacks, including a short-circuit decision that can skip the
// right subtree entirely.
//
// Building, transformation, and evaluation are deliberately separated so an
// expression can be built once, its atoms parsed in bulk with TryMapAtoms,
// and the result applied to many inputs.
//
// Example, a boolean expression over single-character atoms:
//
//	tree := betree.New[BoolOperator, rune]()
//	for _, c := range "(A | B) & !C" {
//	    switch c {
//	    case '&':
//	        tree.PushOperator(And)
//	    case '|':
//	        tree.PushOperator(Or)
//	    case '!':
//	        tree.PushOperator(Not)
//	    case '(':
//	        tree.OpenPar()
//	    case ')':
//	        tree.ClosePar()
//	    case ' ':
//	    default:
//	        tree.PushAtom(c)
//	    }
//	}
//	value, ok := betree.Eval(tree,
//	    func(c rune) bool { return trues[c] },
//	    func(op BoolOperator, left bool, right *bool) bool { return op.Apply(left, right) },
//	    func(op BoolOperator, left bool) bool { return op.ShortCircuit(left) },
//	)
//
// A Tree is not safe for concurrent mutation. Once building is finished it
// may be evaluated concurrently by any number of readers.
//
// Ready-made operator domains live in the subpackages: boolexpr for
// And/Or/Not expressions, filter for key/op/value predicates over records.
package betree
