package betree

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTryMapAtoms_Identity: mapping with identity reproduces the tree:
// same topology, same atoms, same evaluation.
func TestTryMapAtoms_Identity(t *testing.T) {
	orig := parse("(A | B) & !(C | D | E)")

	mapped, err := TryMapAtoms(orig, func(atom string) (string, error) { return atom, nil })
	require.NoError(t, err)

	assert.Equal(t, orig.Head(), mapped.Head())
	assert.Equal(t, orig.Atoms(), mapped.Atoms())
	assert.Equal(t, orig.String(), mapped.String())

	for id := NodeID(0); ; id++ {
		want, ok := orig.Node(id)
		got, ok2 := mapped.Node(id)
		require.Equal(t, ok, ok2)
		if !ok {
			break
		}
		assert.Equal(t, want, got)
	}

	wantVal, wantOK := evalWith(orig, "AB")
	gotVal, gotOK := evalWith(mapped, "AB")
	assert.Equal(t, wantOK, gotOK)
	assert.Equal(t, wantVal, gotVal)
}

// TestTryMapAtoms_Independent: the mapped tree does not share atom storage
// with the original.
func TestTryMapAtoms_Independent(t *testing.T) {
	orig := parse("A & B")
	mapped, err := TryMapAtoms(orig, func(atom string) (string, error) { return atom, nil })
	require.NoError(t, err)

	*orig.MutateOrCreateAtom(func() string { return "" }) = "Z"
	assert.Equal(t, []string{"A", "B"}, mapped.Atoms())
}

// TestTryMapAtoms_Convert changes the atom type, the second build phase of
// the raw-strings-then-typed-atoms flow.
func TestTryMapAtoms_Convert(t *testing.T) {
	tree := New[boolOp, string]()
	for _, c := range "12|34" {
		if c == '|' {
			tree.PushOperator(opOr)
			continue
		}
		*tree.MutateOrCreateAtom(func() string { return "" }) += string(c)
	}

	mapped, err := TryMapAtoms(tree, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 34}, mapped.Atoms())

	got, ok := Eval(mapped,
		func(n int) int { return n },
		func(op boolOp, left int, right *int) int { return left + *right },
		func(op boolOp, left int) bool { return false },
	)
	require.True(t, ok)
	assert.Equal(t, 46, got)
}

// TestTryMapAtoms_FirstErrorAborts: mapping stops at the first failure and
// returns that error.
func TestTryMapAtoms_FirstErrorAborts(t *testing.T) {
	boom := errors.New("bad atom")
	var calls int
	mapped, err := TryMapAtoms(parse("A & B & C"), func(atom string) (string, error) {
		calls++
		if atom == "B" {
			return "", boom
		}
		return atom, nil
	})
	assert.Nil(t, mapped)
	assert.Same(t, boom, err)
	assert.Equal(t, 2, calls)
}

// TestMapAtoms: the infallible variant.
func TestMapAtoms(t *testing.T) {
	mapped := MapAtoms(parse("a | b"), func(atom string) string { return atom + atom })
	assert.Equal(t, []string{"aa", "bb"}, mapped.Atoms())
}

// TestSimplify collapses redundant wrappers: after simplifying "(((A)))"
// the head is the atom's immediate container.
func TestSimplify(t *testing.T) {
	tree := parse("(((A)))")
	require.True(t, tree.IsAtomic())
	assert.Equal(t, NodeID(0), tree.Head())

	tree.Simplify()

	head, ok := tree.Node(tree.Head())
	require.True(t, ok)
	assert.Equal(t, NoParent, head.Parent)
	assert.Equal(t, AtomChild(0), head.Left)
	assert.False(t, head.Right.IsSome())
	assert.True(t, tree.IsAtomic())

	got, ok := evalWith(tree, "A")
	require.True(t, ok)
	assert.True(t, got)
}

// TestSimplify_StopsAtOperators: a head carrying an operator, even through
// redundant parentheses below it, is left alone.
func TestSimplify_StopsAtOperators(t *testing.T) {
	for _, input := range []string{"A & B", "!A", "((A & B))"} {
		t.Run(input, func(t *testing.T) {
			tree := parse(input)
			before, _ := evalWith(tree, "AB")
			tree.Simplify()
			after, ok := evalWith(tree, "AB")
			require.True(t, ok)
			assert.Equal(t, before, after)

			head, _ := tree.Node(tree.Head())
			if input == "!A" {
				// The wrapper above the unary node collapses; the unary
				// node itself becomes the head and stops the collapse.
				assert.True(t, head.Unary)
			}
		})
	}
}

// TestSimplify_CollapsesDownToOperatorNode: wrappers above an operator node
// go away, the operator node becomes the head.
func TestSimplify_CollapsesDownToOperatorNode(t *testing.T) {
	tree := parse("((A & B))")
	tree.Simplify()
	head, _ := tree.Node(tree.Head())
	assert.True(t, head.HasOp)
	assert.Equal(t, opAnd, head.Operator)
}
