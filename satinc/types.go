// Package satinc provides a reference incremental SAT solver for the
// gate-level abstraction core. The core treats the solver as an
// external collaborator, but it cannot be exercised without one, so
// this package ships an integer-literal CDCL solver over int32
// variables, with assumption solving, bookmark/rollback over the clause
// database, and proof-core extraction via per-clause origin sets.
package satinc

import "fmt"

// Var is a 1-based boolean variable index.
type Var int32

// Lit packs a variable and its polarity: Lit = Var<<1 | sign, where
// sign == 1 means negated. Var 0 is reserved and never allocated.
type Lit int32

// MkLit builds the literal for v with the given polarity.
func MkLit(v Var, neg bool) Lit {
	l := Lit(v) << 1
	if neg {
		l |= 1
	}
	return l
}

// Var returns the variable underlying l.
func (l Lit) Var() Var { return Var(l >> 1) }

// Sign reports whether l is negated.
func (l Lit) Sign() bool { return l&1 == 1 }

// Neg returns the complementary literal.
func (l Lit) Neg() Lit { return l ^ 1 }

type varState struct {
	assigned bool
	value    bool
	level    int
	reason   *clause
}

type clause struct {
	id      int
	lits    []Lit
	learned bool
	// origins is the set of originally-added (non-learned) clause IDs
	// this clause's derivation depends on. For an original clause this
	// is just {id}. For a learned clause it is the union of the
	// origins of every clause resolved together to produce it, so a
	// clause's own origins field already is its proof core.
	origins map[int]bool
}

func (c *clause) mergeOriginsInto(dst map[int]bool) {
	for id := range c.origins {
		dst[id] = true
	}
}

// Stats summarizes solver activity.
type Stats struct {
	Decisions    int64
	Propagations int64
	Conflicts    int64
	Learned      int64
}

func (s Stats) String() string {
	return fmt.Sprintf("decisions: %d, propagations: %d, conflicts: %d, learned: %d",
		s.Decisions, s.Propagations, s.Conflicts, s.Learned)
}
