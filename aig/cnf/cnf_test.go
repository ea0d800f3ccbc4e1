package cnf_test

import (
	"testing"
	"time"

	"github.com/boolabs/gla/aig"
	"github.com/boolabs/gla/aig/cnf"
	"github.com/boolabs/gla/encoder"
	"github.com/boolabs/gla/satinc"
)

var zeroTime = time.Time{}

// TestAndClausesMatchTruthTable builds the three Tseitin clauses for a
// plain 2-input AND and checks every row of its truth table against a
// brute-force SAT solve, proving the clause set is logically
// equivalent to vOut = a AND b.
func TestAndClausesMatchTruthTable(t *testing.T) {
	b := aig.NewBuilder()
	pa := b.AddPI()
	pb := b.AddPI()
	and := b.AddAnd(pa, pb, false, false)
	m := b.Manager()

	for _, row := range []struct{ a, bv, want bool }{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	} {
		s := satinc.New()
		va := s.NewVar()
		vb := s.NewVar()
		vout := s.NewVar()
		for _, cl := range cnf.ClausesFor(m, and, aig.KindAnd, vout, []int32{va, vb}) {
			lits := make([]encoder.Lit, len(cl))
			for i, l := range cl {
				lits[i] = encoder.Lit{Var: l.Var, Neg: l.Neg}
			}
			s.AddClause(lits)
		}
		status, err := s.Solve([]encoder.Lit{
			{Var: va, Neg: !row.a},
			{Var: vb, Neg: !row.bv},
		}, 0, zeroTime)
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		if status != encoder.StatusSAT {
			t.Fatalf("a=%v b=%v: clauses unsatisfiable, want satisfiable", row.a, row.bv)
		}
		if s.VarValue(vout) != row.want {
			t.Fatalf("a=%v b=%v: out=%v, want %v", row.a, row.bv, s.VarValue(vout), row.want)
		}
	}
}

func TestConst0ClauseForcesFalse(t *testing.T) {
	s := satinc.New()
	v := s.NewVar()
	for _, cl := range cnf.ClausesFor(nil, aig.ConstID, aig.KindConst0, v, nil) {
		lits := make([]encoder.Lit, len(cl))
		for i, l := range cl {
			lits[i] = encoder.Lit{Var: l.Var, Neg: l.Neg}
		}
		s.AddClause(lits)
	}
	status, err := s.Solve(nil, 0, zeroTime)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if status != encoder.StatusSAT {
		t.Fatalf("expected SAT, got %v", status)
	}
	if s.VarValue(v) {
		t.Fatalf("Const0's variable must be false")
	}
}
