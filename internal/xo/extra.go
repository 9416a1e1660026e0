// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import "github.com/irifrance/ginix/z"

// CExtra marks Vars.Reasons[v] as "forced by an ExtraConstraint" rather
// than by an ordinary added or learned clause.  It is chosen far outside
// the range of real z.C clause locations so it can never collide with one.
const CExtra z.C = 0xfffffffe

// ExtraConstraint is the capability implemented by every non-clausal
// constraint registered with a solver via S.AddExtra.  An xo.S holds
// owned constraints and back-pointers from watched literals' watch
// lists; a constraint never stores the *S handed to it on entry, since
// that handle is only borrowed for the duration of the call.
type ExtraConstraint interface {
	// Init translates the constraint's external literals to internal
	// ones, registers watches via s.RequireExtraWatch, and runs the
	// equivalent of Propagate for every watched literal already
	// assigned.  Init returns false iff the constraint is already
	// falsified by the current (partial) assignment.
	Init(s *S) bool

	// Propagate is invoked once per assignment event for every literal
	// m on which the constraint registered a watch, immediately after
	// val(m) becomes +1.  Propagate may call s.SearchAssignExt any
	// number of times and returns false on conflict.
	Propagate(s *S, m z.Lit) bool

	// CalcReason appends to dst a set of currently-true literals R such
	// that R implies p, or, if p is z.LitNull, such that R is
	// inconsistent (R implies false).  CalcReason returns dst.
	CalcReason(s *S, p z.Lit, dst []z.Lit) []z.Lit

	// Undo reverses the state changes Propagate made for m, in strict
	// LIFO order with respect to all Propagate calls since m was
	// assigned.  Undo does not reverse implied assignments forced via
	// SearchAssignExt; the engine undoes those independently.
	Undo(s *S, m z.Lit)
}

// AddExtra registers c with s.  Per the protocol, this must happen at
// trail level 0; if s is currently deeper, it backtracks first.  If
// c.Init reports a conflict, the empty clause is learned, establishing
// UNSAT.
//
// AddExtra is a caller error (and panics) if s is configured for
// chronological backtracking; the LIFO Undo contract this package
// relies on is incompatible with out-of-order trail invalidation.
func (s *S) AddExtra(c ExtraConstraint) bool {
	if s.chrono {
		panic("xo: AddExtra requires chrono backtracking disabled")
	}
	if s.Trail.Level != 0 {
		s.Trail.Back(0)
	}
	if c.Init(s) {
		return true
	}
	loc := s.Cdb.CDat.AddLits(MakeChd(false, 0, 0), nil)
	s.Cdb.Bot = loc
	return false
}

// RequireExtraWatch registers c to be notified via Propagate whenever m
// is assigned true, and freezes m's variable so that preprocessing (were
// any present) could not eliminate it.
func (s *S) RequireExtraWatch(m z.Lit, c ExtraConstraint) {
	s.ensureLitCap(m)
	vars := s.Vars
	vars.ExtraWatch[m] = append(vars.ExtraWatch[m], c)
	vars.Frozen[m.Var()] = true
}

// Freeze marks the external literal's variable as one preprocessing
// must not eliminate. This engine performs no variable elimination, so
// Freeze only records the intent for introspection; it still must be
// called by constraints that depend on the contract.
func (s *S) Freeze(m z.Lit) {
	s.ensureLitCap(m)
	s.Vars.Frozen[m.Var()] = true
}

// SearchAssignExt assigns q true with c recorded as the antecedent, for
// use in subsequent CalcReason calls. q must be currently unassigned;
// violating this is an internal-inconsistency error (see error kind 4
// in the design) and panics rather than silently corrupting the trail.
func (s *S) SearchAssignExt(q z.Lit, c ExtraConstraint) {
	if s.Vars.Vals[q] != 0 {
		panic("xo: SearchAssignExt on an already-assigned literal")
	}
	s.Vars.ExtraAnte[q.Var()] = c
	s.Trail.Assign(q, CExtra)
}

// Internalize and Externalize expose the caller-facing/internal literal
// namespaces. This engine does no preprocessing-driven variable
// elimination or renumbering, so the two namespaces coincide and these
// are identity maps; they are kept as explicit calls so constraints are
// written against the general protocol rather than this engine's
// specific simplicity.
func (s *S) Internalize(m z.Lit) z.Lit { return m }
func (s *S) Externalize(m z.Lit) z.Lit { return m }

// Vidx returns the variable underlying m.
func (s *S) Vidx(m z.Lit) z.Var { return m.Var() }

// Val returns the current assignment of m: +1 true, -1 false, 0
// unassigned.
func (s *S) Val(m z.Lit) int8 { return s.Vars.Vals[m] }

// ValAnalyze returns the value of m as seen during conflict analysis.
// This engine keeps a single assignment array that is valid throughout
// analysis (nothing is unassigned until backtracking after learning),
// so ValAnalyze and Val coincide.
func (s *S) ValAnalyze(m z.Lit) int8 { return s.Vars.Vals[m] }
