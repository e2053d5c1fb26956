package betree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEval_Bool runs the boolean regression suite: atoms are T or F, T is
// true. The mixed-operator cases pin down left-to-right grouping with no
// precedence.
func TestEval_Bool(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"T", true},
		{"(((T)))", true},
		{"F", false},
		{"!T", false},
		{"!F", true},
		{"!!F", false},
		{"!!!F", true},
		{"F | T", true},
		{"F & T", false},
		{"F | !T", false},
		{"!F | !T", true},
		{"!(F & T)", true},
		{"!(T | T)", false},
		{"T | !(T | T)", true},
		{"T & (T & F)", false},
		{"!F & !(T & F & T)", true},
		{"!((T|F)&T)", false},
		{"!(!((T|F)&(F|T)&T)) & !F & (T | (T|F))", true},
		{"(T | F) & !T", false},
		{"!(T | F | T)", false},
		{"(T | F) & !(T | F | T)", false},
		{"F | !T | !(T & T | F)", false},
		{"(T & T) | (T & F)", true},
		{"T & T | T & F", false},
		// Chained operators across rotations that promote a new head.
		{"F | F | F", false},
		{"F | F | F | F", false},
		{"F | T | F", true},
		{"F | T | F | F", true},
		{"F | F & F", false},
		{"F | F & F | F", false},
		{"F | T & F", false},
		{"F | T & F | F", false},
		{"F | F | T & F", false},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := evalWith(parse(tc.input), "T")
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestEval_TrueSets evaluates one expression against different variable
// assignments, and shows grouping with and without parentheses.
func TestEval_TrueSets(t *testing.T) {
	expr := parse("(A | B) & !(C | D | E)")

	got, ok := evalWith(expr, "ACE")
	require.True(t, ok)
	assert.False(t, got)

	got, ok = evalWith(expr, "AB")
	require.True(t, ok)
	assert.True(t, got)

	got, ok = evalWith(parse("(A & B)|(C & D)"), "ABC")
	require.True(t, ok)
	assert.True(t, got)

	got, ok = evalWith(parse("A & B | C & D"), "ABC")
	require.True(t, ok)
	assert.False(t, got)
}

// TestEval_Empty: an empty tree evaluates to no value, not an error.
func TestEval_Empty(t *testing.T) {
	_, ok := evalWith(New[boolOp, string](), "T")
	assert.False(t, ok)

	_, ok, err := EvalErr(New[boolOp, string](),
		func(atom string) (bool, error) { return atom == "T", nil },
		func(op boolOp, left bool, right *bool) (bool, error) { return op.apply(left, right), nil },
		func(op boolOp, left bool) bool { return op.skipRight(left) },
	)
	assert.False(t, ok)
	assert.NoError(t, err)
}

// TestEval_Pathological: an operator with no left operand degrades to no
// value instead of failing.
func TestEval_Pathological(t *testing.T) {
	for _, input := range []string{"!", "&", "!()", "()"} {
		t.Run(input, func(t *testing.T) {
			_, ok := evalWith(parse(input), "T")
			assert.False(t, ok)
		})
	}
}

// TestEval_ShortCircuitSkipsRight: once the left value decides the result,
// nothing in the right subtree is ever evaluated.
func TestEval_ShortCircuitSkipsRight(t *testing.T) {
	cases := []struct {
		input     string
		trues     string
		want      bool
		wantAtoms []string
	}{
		{"F & (A | B | C)", "ABC", false, []string{"F"}},
		{"T | (A & B)", "T", true, []string{"T"}},
		{"A & B | C", "", false, []string{"A", "C"}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			var seen []string
			got, ok := Eval(parse(tc.input),
				func(atom string) bool {
					seen = append(seen, atom)
					return strings.Contains(tc.trues, atom)
				},
				func(op boolOp, left bool, right *bool) bool { return op.apply(left, right) },
				func(op boolOp, left bool) bool { return op.skipRight(left) },
			)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantAtoms, seen)
		})
	}
}

// TestEvalErr_AtomError: the first atom error aborts the walk and comes
// back verbatim.
func TestEvalErr_AtomError(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	_, ok, err := EvalErr(parse("(A | B) & C"),
		func(atom string) (bool, error) {
			calls++
			if atom == "B" {
				return false, boom
			}
			return false, nil
		},
		func(op boolOp, left bool, right *bool) (bool, error) { return op.apply(left, right), nil },
		func(op boolOp, left bool) bool { return op.skipRight(left) },
	)
	assert.False(t, ok)
	assert.Same(t, boom, err)
	// A evaluated, B failed, C never reached.
	assert.Equal(t, 2, calls)
}

// TestEvalErr_OpError: operator errors propagate the same way.
func TestEvalErr_OpError(t *testing.T) {
	boom := errors.New("unexpected operation")
	_, ok, err := EvalErr(parse("A & B"),
		func(atom string) (bool, error) { return true, nil },
		func(op boolOp, left bool, right *bool) (bool, error) { return false, boom },
		func(op boolOp, left bool) bool { return false },
	)
	assert.False(t, ok)
	assert.Same(t, boom, err)
}

// TestEvalErr_UnaryPassesNilRight: a unary node applies its operator to the
// left value and a nil right.
func TestEvalErr_UnaryPassesNilRight(t *testing.T) {
	var sawNil bool
	got, ok, err := EvalErr(parse("!T"),
		func(atom string) (bool, error) { return atom == "T", nil },
		func(op boolOp, left bool, right *bool) (bool, error) {
			sawNil = right == nil
			return op.apply(left, right), nil
		},
		func(op boolOp, left bool) bool { return op.skipRight(left) },
	)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got)
	assert.True(t, sawNil)
}
