package betree

// TokenKind discriminates the variants of a Token.
type TokenKind uint8

const (
	// TokenAtom carries an atom value.
	TokenAtom TokenKind = iota
	// TokenOperator carries an operator value.
	TokenOperator
	// TokenOpenPar is an opening parenthesis.
	TokenOpenPar
	// TokenClosePar is a closing parenthesis.
	TokenClosePar
)

// Token is one element of the input stream: an atom, an operator, or a
// parenthesis. It exists for callers that already tokenize their input and
// want a single Push entry point instead of the four specific methods.
type Token[Op comparable, A any] struct {
	Kind     TokenKind
	Operator Op
	Atom     A
}

// AtomToken returns a token carrying an atom value.
func AtomToken[Op comparable, A any](atom A) Token[Op, A] {
	return Token[Op, A]{Kind: TokenAtom, Atom: atom}
}

// OperatorToken returns a token carrying an operator value.
func OperatorToken[Op comparable, A any](op Op) Token[Op, A] {
	return Token[Op, A]{Kind: TokenOperator, Operator: op}
}

// OpenParToken returns an opening parenthesis token.
func OpenParToken[Op comparable, A any]() Token[Op, A] {
	return Token[Op, A]{Kind: TokenOpenPar}
}

// CloseParToken returns a closing parenthesis token.
func CloseParToken[Op comparable, A any]() Token[Op, A] {
	return Token[Op, A]{Kind: TokenClosePar}
}

// Push feeds one token to the builder, dispatching to PushAtom,
// PushOperator, OpenPar, or ClosePar.
func (t *Tree[Op, A]) Push(tok Token[Op, A]) {
	switch tok.Kind {
	case TokenAtom:
		t.PushAtom(tok.Atom)
	case TokenOperator:
		t.PushOperator(tok.Operator)
	case TokenOpenPar:
		t.OpenPar()
	case TokenClosePar:
		t.ClosePar()
	default:
		panic("betree: invalid token kind")
	}
}
