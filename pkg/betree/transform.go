package betree

// TryMapAtoms produces a new tree with the same node topology but an atom
// arena of type B, obtained by applying f to every stored atom in push
// order. The first error from f aborts the mapping and is returned.
//
// This is the designed mechanism for two-phase parsing: build the structure
// with cheap raw atoms (for example substrings), and once the grammar is
// known to be well formed, parse every atom in bulk into its validated
// form. The returned tree is fully independent of the original.
func TryMapAtoms[Op comparable, A, B any](t *Tree[Op, A], f func(A) (B, error)) (*Tree[Op, B], error) {
	atoms := make([]B, 0, len(t.atoms))
	for _, atom := range t.atoms {
		mapped, err := f(atom)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, mapped)
	}
	nodes := make([]Node[Op], len(t.nodes))
	copy(nodes, t.nodes)
	return &Tree[Op, B]{
		atoms:     atoms,
		nodes:     nodes,
		head:      t.head,
		tail:      t.tail,
		last:      t.last,
		openness:  t.openness,
		operators: t.operators,
	}, nil
}

// MapAtoms is TryMapAtoms for a mapping that cannot fail.
func MapAtoms[Op comparable, A, B any](t *Tree[Op, A], f func(A) B) *Tree[Op, B] {
	mapped, _ := TryMapAtoms(t, func(atom A) (B, error) { return f(atom), nil })
	return mapped
}

// Simplify collapses redundant wrapping nodes at the head: as long as the
// head is an operator-less, non-unary node whose only child is a single
// node, that child becomes the new head. This removes the bookkeeping
// layers left by parentheses wrapped around a sub-expression that turned
// out to carry no operator of its own, for example "(((A)))".
//
// Simplify never changes what the tree evaluates to; it only removes
// indirections. Call it after construction is finished: the insertion
// cursor is left where building put it.
func (t *Tree[Op, A]) Simplify() {
	for {
		n := t.nodes[t.head]
		if n.HasOp || n.Unary || n.Right.IsSome() {
			return
		}
		child, ok := n.Left.AsNode()
		if !ok {
			return
		}
		t.head = child
		t.nodes[child].Parent = NoParent
	}
}
