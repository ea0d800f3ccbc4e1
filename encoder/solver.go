package encoder

import (
	"fmt"
	"time"
)

// Lit is a solver-facing literal: a variable together with its
// polarity. Variables are solver-assigned SAT variables, not gate
// object IDs — the encoder is the only thing that knows the mapping
// between the two.
type Lit struct {
	Var int32
	Neg bool
}

// Status is the outcome of one incremental Solve call; the frame
// driver treats Undef as a resource-out event.
type Status int

const (
	StatusSAT Status = iota
	StatusUNSAT
	StatusUndef
)

func (s Status) String() string {
	switch s {
	case StatusSAT:
		return "SAT"
	case StatusUNSAT:
		return "UNSAT"
	default:
		return "UNDEF"
	}
}

// Solver is the incremental SAT collaborator this module assumes
// exists: persistent clause database across calls, assumption-based
// solving, a conflict-based resource bound, bookmark/rollback over the
// clause database, and proof-core extraction after UNSAT.
type Solver interface {
	// AddClause appends a clause and returns its ID (stable for the
	// lifetime of the database, used by the encoder's cla2obj map).
	AddClause(lits []Lit) int
	// Solve runs the solver under the given unit assumptions, bounded
	// by conflictLimit (0 = unbounded) and deadline (zero Time = no
	// deadline). Returns StatusUndef if either bound is hit first.
	Solve(assumptions []Lit, conflictLimit int64, deadline time.Time) (Status, error)
	// ProofCore returns the IDs of the originally-added clauses that
	// the most recent UNSAT result's refutation depends on. Valid only
	// immediately after a Solve call that returned StatusUNSAT.
	ProofCore() []int
	// VarValue returns the value solver variable v took in the most
	// recent SAT result.
	VarValue(v int32) bool
	// NewVar allocates and returns a fresh solver variable.
	NewVar() int32
	NVars() int32
	NClauses() int
	Stats() fmt.Stringer
	// Bookmark records the current clause-database size so a later
	// Rollback can discard every clause added since.
	Bookmark()
	Rollback()
}
