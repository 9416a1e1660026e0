// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Type Lit is a Boolean literal: a variable together with a polarity.
//
// Lit is encoded as (v << 1) | sign, so Lit(0) is unused/null and the
// two literals of a variable are adjacent integers.
type Lit uint32

// LitNull is the zero value of Lit, used as a terminator for
// null-terminated clauses and as a sentinel "no literal" value.
const LitNull = Lit(0)

// Dimacs2Lit converts a non-zero dimacs integer (positive or negative)
// into the corresponding Lit.
func Dimacs2Lit(i int) Lit {
	if i < 0 {
		return Var(-i).Neg()
	}
	return Var(i).Pos()
}

// Dimacs returns the dimacs integer corresponding to m.
func (m Lit) Dimacs() int {
	v := int(m.Var())
	if m.IsPos() {
		return v
	}
	return -v
}

// Var returns the underlying variable of m.
func (m Lit) Var() Var {
	return Var(m >> 1)
}

// IsPos returns whether m is the positive literal of its variable.
func (m Lit) IsPos() bool {
	return m&1 == 0
}

// Sign returns 1 if m is positive, -1 if m is negative.
func (m Lit) Sign() int8 {
	if m.IsPos() {
		return 1
	}
	return -1
}

// Not returns the negation of m.
func (m Lit) Not() Lit {
	return m ^ 1
}

// Pos returns the positive literal of m's variable.
func (m Lit) Pos() Lit {
	return m.Var().Pos()
}

// Neg returns the negative literal of m's variable.
func (m Lit) Neg() Lit {
	return m.Var().Neg()
}

// String implements Stringer.
func (m Lit) String() string {
	return fmt.Sprintf("%d", m.Dimacs())
}
