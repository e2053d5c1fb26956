package betree

// lastToken is the builder's small state machine: the kind of the token
// pushed last. It decides whether the next operator is unary or binary and
// backs the Accept* predicates.
type lastToken uint8

const (
	lastNothing lastToken = iota
	lastAtom
	lastOperator
	lastOpenPar
	lastClosePar
)

// Tree is a binary/unary expression tree built incrementally from a
// left-to-right stream of tokens.
//
// Atoms and nodes live in two append-only arenas addressed by stable
// integer ids; nothing is ever freed or reused while the tree is alive.
// Two cursors drive construction: head, the node evaluation starts from,
// and tail, the node currently open to receive the next child or operator.
//
// A Tree is NOT safe for concurrent mutation. Build it from a single
// goroutine; once building is done, evaluation is read-only and may run
// concurrently from any number of goroutines.
//
// Use New to create a tree, then push tokens:
//
//	tree := betree.New[MyOp, string]()
//	tree.PushAtom("a")
//	tree.PushOperator(opAnd)
//	tree.PushAtom("b")
//
// The builder trusts the caller on token ordering. It never rejects a
// grammatically invalid sequence; callers doing strict syntax checking
// consult the Accept* predicates before each push.
type Tree[Op comparable, A any] struct {
	atoms     []A
	nodes     []Node[Op]
	head      NodeID
	tail      NodeID
	last      lastToken
	openness  int
	operators int
}

// New creates an empty tree: one placeholder grouping node, no atoms.
func New[Op comparable, A any]() *Tree[Op, A] {
	return &Tree[Op, A]{
		nodes: []Node[Op]{emptyNode[Op]()},
	}
}

// storeAtom appends an atom to the arena and returns its id.
func (t *Tree[Op, A]) storeAtom(atom A) AtomID {
	t.atoms = append(t.atoms, atom)
	return AtomID(len(t.atoms) - 1)
}

// storeNode appends a node to the arena and returns its id.
func (t *Tree[Op, A]) storeNode(node Node[Op]) NodeID {
	t.nodes = append(t.nodes, node)
	return NodeID(len(t.nodes) - 1)
}

// addChild places a child into the tail's first free slot.
func (t *Tree[Op, A]) addChild(child Child) {
	if !t.nodes[t.tail].Left.IsSome() {
		t.nodes[t.tail].Left = child
	} else {
		t.nodes[t.tail].Right = child
	}
}

// addChildNode attaches an existing node as a child of the tail and moves
// the tail to it.
func (t *Tree[Op, A]) addChildNode(id NodeID) {
	t.nodes[id].Parent = t.tail
	t.addChild(NodeChild(id))
	t.tail = id
}

// PushAtom stores the atom and places it into the tail's first free child
// slot.
func (t *Tree[Op, A]) PushAtom(atom A) {
	id := t.storeAtom(atom)
	t.addChild(AtomChild(id))
	t.last = lastAtom
}

// CurrentAtom returns a pointer to the most recently pushed atom, or nil
// when the last pushed token was not an atom.
//
// The pointer aliases the atom arena: it is valid only until the next
// mutating call on the tree.
func (t *Tree[Op, A]) CurrentAtom() *A {
	if t.last != lastAtom || len(t.atoms) == 0 {
		return nil
	}
	return &t.atoms[len(t.atoms)-1]
}

// MutateOrCreateAtom returns a mutable handle on the most recently pushed
// atom if the last pushed token was an atom; otherwise it pushes a fresh
// atom obtained from create and returns a handle on that.
//
// This lets a tokenizer accumulate a multi-character atom without knowing
// in advance where the atom ends:
//
//	tree.MutateOrCreateAtom(newBuffer).WriteRune(c)
//
// The pointer aliases the atom arena: it is valid only until the next
// mutating call on the tree.
func (t *Tree[Op, A]) MutateOrCreateAtom(create func() A) *A {
	if t.last != lastAtom {
		t.PushAtom(create())
	}
	return &t.atoms[len(t.atoms)-1]
}

// OpenPar starts a parenthesized sub-expression: a new empty grouping node
// is attached as a child of the tail and becomes the new tail.
func (t *Tree[Op, A]) OpenPar() {
	id := t.storeNode(emptyNode[Op]())
	t.addChildNode(id)
	t.openness++
	t.last = lastOpenPar
}

// ClosePar closes the current parenthesized sub-expression, moving the tail
// back to its parent. A closing parenthesis in excess of the currently open
// ones is silently absorbed: the tree is left unchanged and the openness
// count never underflows.
func (t *Tree[Op, A]) ClosePar() {
	if p := t.nodes[t.tail].Parent; p != NoParent {
		t.tail = p
		t.openness--
	}
	t.last = lastClosePar
}

// PushOperator attaches an operator to the tree. The operator is binary
// when the previous token was an atom or a closing parenthesis, and unary
// otherwise (start of expression, after another operator, or just inside an
// opening parenthesis).
//
// A binary operator always absorbs the entire sub-expression built so far
// at the current nesting level, which is what gives strict left-to-right
// evaluation: "A & B | C & D" groups as ((A & B) | C) & D.
func (t *Tree[Op, A]) PushOperator(op Op) {
	if t.last == lastAtom || t.last == lastClosePar {
		t.pushBinaryOperator(op)
	} else {
		t.pushUnaryOperator(op)
	}
	t.operators++
	t.last = lastOperator
}

// pushUnaryOperator creates a unary node under the tail; the operand is
// whatever gets pushed next.
func (t *Tree[Op, A]) pushUnaryOperator(op Op) {
	id := t.storeNode(Node[Op]{
		Operator: op,
		HasOp:    true,
		Parent:   NoParent,
		Unary:    true,
	})
	t.addChildNode(id)
}

// pushBinaryOperator attaches a binary operator. If the tail still has a
// free slot the operator simply lands on it. If the tail is full, a new
// node takes the tail's place in the tree with the whole old tail subtree
// as its left child.
func (t *Tree[Op, A]) pushBinaryOperator(op Op) {
	if !t.nodes[t.tail].IsFull() {
		t.nodes[t.tail].Operator = op
		t.nodes[t.tail].HasOp = true
		return
	}
	old := t.tail
	id := t.storeNode(Node[Op]{
		Operator: op,
		HasOp:    true,
		Parent:   t.nodes[old].Parent,
		Left:     NodeChild(old),
	})
	if p := t.nodes[id].Parent; p != NoParent {
		// Retarget the parent's link from the old tail to the new node.
		switch NodeChild(old) {
		case t.nodes[p].Left:
			t.nodes[p].Left = NodeChild(id)
		case t.nodes[p].Right:
			t.nodes[p].Right = NodeChild(id)
		default:
			panic("betree: rotated node is not a child of its parent")
		}
	} else {
		// The old tail was the head; the new node replaces it there too.
		t.head = id
	}
	t.nodes[old].Parent = id
	t.tail = id
}

// AcceptAtom reports whether pushing an atom next is grammatically
// sensible. Advisory only: the builder itself never refuses a push.
func (t *Tree[Op, A]) AcceptAtom() bool {
	return t.last == lastNothing || t.last == lastOperator || t.last == lastOpenPar
}

// AcceptUnaryOperator reports whether pushing a unary operator next is
// grammatically sensible.
func (t *Tree[Op, A]) AcceptUnaryOperator() bool {
	return t.last == lastNothing || t.last == lastOperator || t.last == lastOpenPar
}

// AcceptOpenPar reports whether pushing an opening parenthesis next is
// grammatically sensible.
func (t *Tree[Op, A]) AcceptOpenPar() bool {
	return t.last == lastNothing || t.last == lastOperator || t.last == lastOpenPar
}

// AcceptBinaryOperator reports whether pushing a binary operator next is
// grammatically sensible.
func (t *Tree[Op, A]) AcceptBinaryOperator() bool {
	return t.last == lastAtom || t.last == lastClosePar
}

// AcceptClosePar reports whether pushing a closing parenthesis next is
// grammatically sensible: there must be an unmatched opening parenthesis
// and the current sub-expression must be closable.
func (t *Tree[Op, A]) AcceptClosePar() bool {
	return (t.last == lastAtom || t.last == lastClosePar) && t.openness > 0
}

// IsEmpty reports whether no atom was ever pushed.
func (t *Tree[Op, A]) IsEmpty() bool {
	return len(t.atoms) == 0
}

// IsAtomic reports whether the tree is a bare atom: exactly one atom and no
// operator. Redundant wrapping parentheses do not break atomicity.
func (t *Tree[Op, A]) IsAtomic() bool {
	return len(t.atoms) == 1 && t.operators == 0
}

// Openness returns the count of currently unmatched opening parentheses.
func (t *Tree[Op, A]) Openness() int {
	return t.openness
}

// Len returns the number of stored atoms.
func (t *Tree[Op, A]) Len() int {
	return len(t.atoms)
}

// Head returns the id of the node evaluation starts from.
func (t *Tree[Op, A]) Head() NodeID {
	return t.head
}

// Node returns the node with the given id, if it exists.
func (t *Tree[Op, A]) Node(id NodeID) (Node[Op], bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node[Op]{}, false
	}
	return t.nodes[id], true
}

// Atom returns the atom with the given id, if it exists.
func (t *Tree[Op, A]) Atom(id AtomID) (A, bool) {
	if id < 0 || int(id) >= len(t.atoms) {
		var zero A
		return zero, false
	}
	return t.atoms[id], true
}

// IterAtoms calls fn for each stored atom in push order. Iteration stops
// early when fn returns false.
func (t *Tree[Op, A]) IterAtoms(fn func(AtomID, A) bool) {
	for i, atom := range t.atoms {
		if !fn(AtomID(i), atom) {
			return
		}
	}
}

// Atoms returns the stored atoms in push order. The returned slice is a
// copy and may be kept after the tree is discarded.
func (t *Tree[Op, A]) Atoms() []A {
	out := make([]A, len(t.atoms))
	copy(out, t.atoms)
	return out
}
