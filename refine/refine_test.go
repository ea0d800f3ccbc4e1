package refine

import (
	"testing"

	"github.com/boolabs/gla/aig"
	aigcnf "github.com/boolabs/gla/aig/cnf"
	"github.com/boolabs/gla/gate"
)

// buildTwoInputAnd builds PO = PI0 AND PI1, both PIs pseudo (not yet
// abstracted), so any CEX driving PO to 1 must justify both inputs.
func buildTwoInputAnd(t *testing.T) (*gate.Store, aig.ObjID, aig.ObjID, aig.ObjID) {
	t.Helper()
	b := aig.NewBuilder()
	p0 := b.AddPI()
	p1 := b.AddPI()
	and := b.AddAnd(p0, p1, false, false)
	po := b.AddPropOut(and, false)
	m := b.Manager()
	store, err := gate.Build(m, aigcnf.NewGenerator(), []aig.ObjID{po})
	if err != nil {
		t.Fatalf("gate.Build: %v", err)
	}
	return store, p0, p1, po
}

func TestRefineSelectsBothAndInputs(t *testing.T) {
	store, p0, p1, po := buildTwoInputAnd(t)
	mgr := NewManager(store)
	cex := &CEX{
		Frontier:       []aig.ObjID{p0, p1},
		Values:         [][]bool{{true, true}},
		IsPrimaryInput: []bool{false, false},
	}
	sel := mgr.Refine(po, cex)
	if len(sel) != 2 {
		t.Fatalf("Refine = %v, want both AND inputs selected", sel)
	}
	if !mgr.Verify(po, cex, sel) {
		t.Fatalf("Verify failed for the full selection")
	}
}

func TestRefineMinimalityRejectsProperSubset(t *testing.T) {
	store, p0, p1, po := buildTwoInputAnd(t)
	mgr := NewManager(store)
	cex := &CEX{
		Frontier:       []aig.ObjID{p0, p1},
		Values:         [][]bool{{true, true}},
		IsPrimaryInput: []bool{false, false},
	}
	sel := mgr.Refine(po, cex)
	for _, drop := range sel {
		var subset []aig.ObjID
		for _, id := range sel {
			if id != drop {
				subset = append(subset, id)
			}
		}
		if mgr.Verify(po, cex, subset) {
			t.Fatalf("a strict subset %v of the selection %v still verifies; selection is not minimal", subset, sel)
		}
	}
}

func TestRefineEmptyMeansRealCEX(t *testing.T) {
	store, p0, p1, po := buildTwoInputAnd(t)
	mgr := NewManager(store)
	// Both inputs are true PIs this time: the CEX alone suffices.
	cex := &CEX{
		Frontier:       []aig.ObjID{p0, p1},
		Values:         [][]bool{{true, true}},
		IsPrimaryInput: []bool{true, true},
	}
	sel := mgr.Refine(po, cex)
	if len(sel) != 0 {
		t.Fatalf("Refine = %v, want empty for an all-true-PI CEX", sel)
	}
}
