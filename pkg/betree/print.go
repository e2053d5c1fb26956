package betree

import (
	"fmt"
	"strings"
)

// String renders the tree for debugging: atoms with %v, unary operators
// prefixed, binary nodes parenthesized, empty slots as "_". The exact
// format is not part of the package contract.
func (t *Tree[Op, A]) String() string {
	var b strings.Builder
	t.writeNode(&b, t.head)
	return b.String()
}

func (t *Tree[Op, A]) writeChild(b *strings.Builder, c Child) {
	switch c.Kind {
	case ChildNode:
		t.writeNode(b, NodeID(c.Index))
	case ChildAtom:
		fmt.Fprintf(b, "%v", t.atoms[c.Index])
	default:
		b.WriteByte('_')
	}
}

func (t *Tree[Op, A]) writeNode(b *strings.Builder, id NodeID) {
	n := t.nodes[id]
	switch {
	case n.Unary:
		fmt.Fprintf(b, "%v", n.Operator)
		t.writeChild(b, n.Left)
	case n.HasOp:
		b.WriteByte('(')
		t.writeChild(b, n.Left)
		fmt.Fprintf(b, " %v ", n.Operator)
		t.writeChild(b, n.Right)
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		t.writeChild(b, n.Left)
		b.WriteByte(')')
	}
}
