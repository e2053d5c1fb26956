package betree

// NodeID identifies a node in a tree's node arena.
type NodeID int

// AtomID identifies an atom in a tree's atom arena.
type AtomID int

// NoParent marks a node with no parent (the head, or a detached node).
const NoParent NodeID = -1

// ChildKind discriminates the variants of a Child.
type ChildKind uint8

const (
	// ChildNone is an empty child slot.
	ChildNone ChildKind = iota
	// ChildNode references a node in the node arena.
	ChildNode
	// ChildAtom references an atom in the atom arena.
	ChildAtom
)

// Child is one of the two child slots of a node: either empty, a reference
// to another node, or a reference to an atom. Children are the only way
// nodes connect to each other or to atoms.
//
// Child is a small comparable value; you only need it to inspect a tree.
type Child struct {
	Kind  ChildKind
	Index int
}

// NodeChild returns a child referencing the given node.
func NodeChild(id NodeID) Child {
	return Child{Kind: ChildNode, Index: int(id)}
}

// AtomChild returns a child referencing the given atom.
func AtomChild(id AtomID) Child {
	return Child{Kind: ChildAtom, Index: int(id)}
}

// IsSome reports whether the child slot is occupied.
func (c Child) IsSome() bool {
	return c.Kind != ChildNone
}

// AsNode returns the referenced node id, if the child references a node.
func (c Child) AsNode() (NodeID, bool) {
	if c.Kind != ChildNode {
		return 0, false
	}
	return NodeID(c.Index), true
}

// AsAtom returns the referenced atom id, if the child references an atom.
func (c Child) AsAtom() (AtomID, bool) {
	if c.Kind != ChildAtom {
		return 0, false
	}
	return AtomID(c.Index), true
}
