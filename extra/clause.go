// Package extra collects reference ExtraConstraint implementations: a
// clause expressed two ways (eager and lazy) for conformance-testing the
// extra-constraint protocol against the engine's native clause handling,
// and the subgraph connectivity propagator the protocol exists to carry.
package extra

import (
	"fmt"

	"github.com/irifrance/ginix/internal/xo"
	"github.com/irifrance/ginix/z"
)

// EagerClause is a clause ℓ1 ∨ ... ∨ ℓk implemented on top of
// xo.ExtraConstraint. It watches only the negation of each literal (the
// assignment that can falsify it) and rescans the whole clause on every
// Propagate. It exists to exercise and conformance-test the protocol
// against the engine's native clause handling, not for performance.
type EagerClause struct {
	lits []z.Lit
}

// NewEagerClause builds a clause from external literals.
func NewEagerClause(lits []z.Lit) *EagerClause {
	c := &EagerClause{lits: append([]z.Lit(nil), lits...)}
	return c
}

func (c *EagerClause) Init(s *xo.S) bool {
	var toProp []z.Lit
	for i, m := range c.lits {
		c.lits[i] = s.Internalize(m)
	}
	for _, m := range c.lits {
		s.RequireExtraWatch(m.Not(), c)
	}
	for _, m := range c.lits {
		if s.Val(m) == -1 {
			toProp = append(toProp, m.Not())
		}
	}
	for _, m := range toProp {
		if !c.Propagate(s, m) {
			return false
		}
	}
	return true
}

func (c *EagerClause) Propagate(s *xo.S, m z.Lit) bool {
	var undet z.Lit
	for _, l := range c.lits {
		v := s.Val(l)
		if v == 1 {
			return true
		}
		if v == 0 {
			if undet != z.LitNull {
				return true
			}
			undet = l
		}
	}
	if undet != z.LitNull {
		s.SearchAssignExt(undet, c)
		return true
	}
	return false
}

func (c *EagerClause) CalcReason(s *xo.S, p z.Lit, dst []z.Lit) []z.Lit {
	for _, l := range c.lits {
		if l == p {
			continue
		}
		dst = append(dst, l.Not())
	}
	return dst
}

func (c *EagerClause) Undo(s *xo.S, m z.Lit) {}

// LazyClause is a clause implemented on top of xo.ExtraConstraint that
// maintains running counts incrementally rather than rescanning on every
// Propagate: it watches both polarities of every literal and tracks how
// many remain undetermined and how many are already satisfied.
type LazyClause struct {
	lits       []z.Lit
	nUndet     int
	nSat       int
	isAssigned []bool
	propFail   z.Lit
	stack      []z.Lit
}

// NewLazyClause builds a clause from external literals.
func NewLazyClause(lits []z.Lit) *LazyClause {
	return &LazyClause{
		lits:       append([]z.Lit(nil), lits...),
		nUndet:     len(lits),
		isAssigned: make([]bool, len(lits)),
	}
}

func (c *LazyClause) Init(s *xo.S) bool {
	for i, m := range c.lits {
		c.lits[i] = s.Internalize(m)
	}
	for _, m := range c.lits {
		s.RequireExtraWatch(m.Not(), c)
		s.RequireExtraWatch(m, c)
	}
	var toProp []z.Lit
	for _, m := range c.lits {
		switch s.Val(m) {
		case 1:
			toProp = append(toProp, m)
		case -1:
			toProp = append(toProp, m.Not())
		}
	}
	for _, m := range toProp {
		if !c.Propagate(s, m) {
			return false
		}
	}
	return true
}

// literalIndex returns (i, true) if lit is lits[i], or (i, false) if lit
// is the negation of lits[i].
func (c *LazyClause) literalIndex(lit z.Lit) (int, bool) {
	for i, l := range c.lits {
		if l == lit {
			return i, true
		}
		if l == lit.Not() {
			return i, false
		}
	}
	panic(fmt.Sprintf("xconstraint: %s is not a literal of this clause", lit))
}

func (c *LazyClause) Propagate(s *xo.S, m z.Lit) bool {
	c.stack = append(c.stack, m)
	idx, sat := c.literalIndex(m)
	if sat {
		c.nSat++
	}
	c.isAssigned[idx] = true
	c.nUndet--

	if c.nSat > 0 {
		return true
	}

	c.propFail = z.LitNull

	switch {
	case c.nUndet == 0:
		return false
	case c.nUndet == 1:
		var p z.Lit
		for i, l := range c.lits {
			if !c.isAssigned[i] {
				p = l
				break
			}
		}
		switch s.Val(p) {
		case 1:
			return true
		case 0:
			s.SearchAssignExt(p, c)
			return true
		default:
			c.propFail = p
			return false
		}
	default:
		return true
	}
}

func (c *LazyClause) CalcReason(s *xo.S, p z.Lit, dst []z.Lit) []z.Lit {
	if c.nUndet == 0 {
		if c.propFail != z.LitNull {
			panic("xconstraint: calc_reason with prop_fail set but n_undet == 0")
		}
		for _, l := range c.lits {
			dst = append(dst, l.Not())
		}
		return dst
	}
	if c.propFail != z.LitNull {
		dst = append(dst, c.propFail.Not())
	}
	for i, l := range c.lits {
		if c.isAssigned[i] {
			dst = append(dst, l.Not())
		}
	}
	return dst
}

func (c *LazyClause) Undo(s *xo.S, m z.Lit) {
	n := len(c.stack)
	if n == 0 || c.stack[n-1] != m {
		panic("xconstraint: undo called out of LIFO order")
	}
	c.stack = c.stack[:n-1]
	idx, sat := c.literalIndex(m)
	if sat {
		c.nSat--
	}
	c.isAssigned[idx] = false
	c.nUndet++
	c.propFail = z.LitNull
}
