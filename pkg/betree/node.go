package betree

// Node is an internal node of an expression tree.
//
// A node may carry an operator; a node without one is a pure grouping node
// (created by an opening parenthesis) whose value is the value of its left
// child. Unary marks an operator in unary position: such a node takes a
// single operand, in its Left slot.
//
// You only need Node to inspect a tree; all mutation goes through the Tree
// builder methods.
type Node[Op comparable] struct {
	Operator Op
	HasOp    bool
	Parent   NodeID // NoParent at the head
	Left     Child
	Right    Child
	Unary    bool
}

// IsFull reports whether the node cannot accept another child: a unary node
// is full once its Left slot is occupied, a binary node once its Right slot
// is occupied.
func (n Node[Op]) IsFull() bool {
	if n.Unary {
		return n.Left.IsSome()
	}
	return n.Right.IsSome()
}

// emptyNode is the placeholder grouping node seeding every tree and every
// parenthesis.
func emptyNode[Op comparable]() Node[Op] {
	return Node[Op]{Parent: NoParent}
}
