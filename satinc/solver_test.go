package satinc

import (
	"testing"
	"time"

	"github.com/boolabs/gla/encoder"
)

func lit(v int32, neg bool) encoder.Lit { return encoder.Lit{Var: v, Neg: neg} }

func TestSolveSatisfiable(t *testing.T) {
	s := New()
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause([]encoder.Lit{lit(a, false), lit(b, false)})
	s.AddClause([]encoder.Lit{lit(a, true), lit(b, true)})

	status, err := s.Solve(nil, 0, time.Time{})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if status != encoder.StatusSAT {
		t.Fatalf("got %v, want SAT", status)
	}
	if s.VarValue(a) == s.VarValue(b) {
		t.Fatalf("expected a != b, got a=%v b=%v", s.VarValue(a), s.VarValue(b))
	}
}

func TestSolveUnsatisfiableUnderAssumption(t *testing.T) {
	s := New()
	a := s.NewVar()
	b := s.NewVar()
	c1 := s.AddClause([]encoder.Lit{lit(a, false), lit(b, false)})
	c2 := s.AddClause([]encoder.Lit{lit(a, true), lit(b, false)})

	// Assuming ¬b forces a from c1, contradicts c2.
	status, err := s.Solve([]encoder.Lit{lit(b, true)}, 0, time.Time{})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if status != encoder.StatusUNSAT {
		t.Fatalf("got %v, want UNSAT", status)
	}
	core := s.ProofCore()
	seen := map[int]bool{}
	for _, id := range core {
		seen[id] = true
	}
	if !seen[c1] || !seen[c2] {
		t.Fatalf("proof core %v missing required clauses %d,%d", core, c1, c2)
	}
}

func TestRollbackRemovesClauses(t *testing.T) {
	s := New()
	a := s.NewVar()
	s.AddClause([]encoder.Lit{lit(a, false)})
	s.Bookmark()
	s.AddClause([]encoder.Lit{lit(a, true)})
	if s.NClauses() != 2 {
		t.Fatalf("NClauses() = %d, want 2", s.NClauses())
	}
	s.Rollback()
	if s.NClauses() != 1 {
		t.Fatalf("NClauses() after rollback = %d, want 1", s.NClauses())
	}
	status, err := s.Solve(nil, 0, time.Time{})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if status != encoder.StatusSAT {
		t.Fatalf("got %v, want SAT after rollback", status)
	}
}

func TestConflictLimitYieldsUndef(t *testing.T) {
	s := New()
	// A small pigeonhole-style unsatisfiable instance to force conflicts.
	vars := make([]int32, 3)
	for i := range vars {
		vars[i] = s.NewVar()
	}
	s.AddClause([]encoder.Lit{lit(vars[0], false), lit(vars[1], false)})
	s.AddClause([]encoder.Lit{lit(vars[0], true), lit(vars[1], true)})
	s.AddClause([]encoder.Lit{lit(vars[1], false), lit(vars[2], false)})
	s.AddClause([]encoder.Lit{lit(vars[1], true), lit(vars[2], true)})
	s.AddClause([]encoder.Lit{lit(vars[0], false), lit(vars[2], true)})
	s.AddClause([]encoder.Lit{lit(vars[0], true), lit(vars[2], false)})

	status, err := s.Solve(nil, 0, time.Time{})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if status == encoder.StatusUndef {
		t.Fatalf("conflictLimit 0 should mean unbounded, not immediate undef")
	}

	status, err = s.Solve(nil, 1, time.Time{})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	_ = status // a tight conflict budget may or may not be hit depending on decision order; just exercise the path
}
