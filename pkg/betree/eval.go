package betree

// Eval folds the tree into a single value of type R using three caller
// functions:
//
//   - evalAtom gives a value to a leaf atom
//   - evalOp applies an operator to a left value and an optional right
//     value (right is nil for a unary application)
//   - shortCircuit reports, from an operator and its left value alone,
//     whether the right subtree can be skipped; when it is, the node's
//     value is the left value and nothing on the right is ever evaluated
//
// The walk is post-order and read-only. The second return is false when the
// tree produced no value at all: either the tree is empty, or an operator
// node has no left value (a pathological tree built without grammar
// checking degrades to "no value" rather than failing).
//
// Eval and EvalErr are free functions rather than methods because the
// result type R is independent of the tree's type parameters.
func Eval[Op comparable, A, R any](
	t *Tree[Op, A],
	evalAtom func(A) R,
	evalOp func(op Op, left R, right *R) R,
	shortCircuit func(op Op, left R) bool,
) (R, bool) {
	r, ok, _ := EvalErr(t,
		func(atom A) (R, error) { return evalAtom(atom), nil },
		func(op Op, left R, right *R) (R, error) { return evalOp(op, left, right), nil },
		shortCircuit,
	)
	return r, ok
}

// EvalErr is the fallible variant of Eval: evalAtom and evalOp may fail,
// and the first error anywhere in the walk aborts evaluation immediately
// and is returned verbatim. There are no partial results: on error the
// value is the zero R and ok is false.
//
// An empty tree evaluates to no value (ok false), not an error.
func EvalErr[Op comparable, A, R any](
	t *Tree[Op, A],
	evalAtom func(A) (R, error),
	evalOp func(op Op, left R, right *R) (R, error),
	shortCircuit func(op Op, left R) bool,
) (R, bool, error) {
	e := evaluator[Op, A, R]{
		tree:         t,
		evalAtom:     evalAtom,
		evalOp:       evalOp,
		shortCircuit: shortCircuit,
	}
	return e.node(t.head)
}

// evaluator bundles the tree and callbacks so the recursion does not thread
// four parameters through every call.
type evaluator[Op comparable, A, R any] struct {
	tree         *Tree[Op, A]
	evalAtom     func(A) (R, error)
	evalOp       func(op Op, left R, right *R) (R, error)
	shortCircuit func(op Op, left R) bool
}

func (e *evaluator[Op, A, R]) child(c Child) (R, bool, error) {
	switch c.Kind {
	case ChildNode:
		return e.node(NodeID(c.Index))
	case ChildAtom:
		r, err := e.evalAtom(e.tree.atoms[c.Index])
		if err != nil {
			var zero R
			return zero, false, err
		}
		return r, true, nil
	default:
		var zero R
		return zero, false, nil
	}
}

func (e *evaluator[Op, A, R]) node(id NodeID) (R, bool, error) {
	n := e.tree.nodes[id]
	left, ok, err := e.child(n.Left)
	if err != nil {
		var zero R
		return zero, false, err
	}
	if !n.HasOp {
		// Pure grouping node: its value is its left value, possibly absent.
		return left, ok, nil
	}
	if !ok {
		// Operator without a left operand: degrade to no value.
		var zero R
		return zero, false, nil
	}
	if e.shortCircuit(n.Operator, left) {
		return left, true, nil
	}
	var rightPtr *R
	right, ok, err := e.child(n.Right)
	if err != nil {
		var zero R
		return zero, false, err
	}
	if ok {
		rightPtr = &right
	}
	r, err := e.evalOp(n.Operator, left, rightPtr)
	if err != nil {
		var zero R
		return zero, false, err
	}
	return r, true, nil
}
