package core

import "fmt"

// Literal is a signed reference to a variable. The least significant bit
// carries polarity (0 = positive, 1 = negated); the remaining bits identify
// the variable. Literals are never renumbered after creation.
type Literal int32

// PosLiteral returns the positive literal of variable v.
func PosLiteral(v int32) Literal {
	return Literal(v << 1)
}

// NegLiteral returns the negative literal of variable v.
func NegLiteral(v int32) Literal {
	return PosLiteral(v).Opposite()
}

// Var returns the variable referenced by l.
func (l Literal) Var() int32 {
	return int32(l) >> 1
}

// IsPositive reports whether l is the positive occurrence of its variable.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.Var()+1)
	}
	return fmt.Sprintf("-%d", l.Var()+1)
}

// LitNull is a sentinel literal used where "no literal" is needed (e.g. a
// decision's fabricated antecedent literal during analysis).
const LitNull Literal = -1
