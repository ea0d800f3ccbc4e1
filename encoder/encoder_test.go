package encoder

import (
	"reflect"
	"testing"
	"time"

	"github.com/boolabs/gla/aig"
	aigcnf "github.com/boolabs/gla/aig/cnf"
	"github.com/boolabs/gla/gate"
	"github.com/boolabs/gla/satinc"
)

func buildCounter(t *testing.T) (*gate.Store, aig.ObjID, aig.ObjID) {
	t.Helper()
	b := aig.NewBuilder()
	ro := b.NewRegister()
	notRo := b.AddAnd(ro, ro, true, true) // ¬ro AND ¬ro == ¬ro, a 1-input NOT via AND
	if _, err := b.SetRegisterDriver(ro, notRo, false); err != nil {
		t.Fatalf("SetRegisterDriver: %v", err)
	}
	po := b.AddPropOut(ro, false)
	m := b.Manager()
	store, err := gate.Build(m, aigcnf.NewGenerator(), []aig.ObjID{po, ro})
	if err != nil {
		t.Fatalf("gate.Build: %v", err)
	}
	return store, ro, po
}

func snapshot(e *Encoder) (map[aig.ObjID]bool, []int32, int) {
	abs := make(map[aig.ObjID]bool)
	for id := aig.ObjID(0); int(id) < e.store.NObjs(); id++ {
		abs[id] = e.store.IsAbstracted(id)
	}
	// The (object, frame) -> variable mapping for frames 0..2, not the
	// raw slice: Rollback clears variables but does not shrink the stride.
	var fv []int32
	for id := aig.ObjID(0); int(id) < e.store.NObjs(); id++ {
		for fr := 0; fr <= 2; fr++ {
			v, ok := e.varAt(id, fr)
			if !ok {
				v = -1
			}
			fv = append(fv, v)
		}
	}
	return abs, fv, len(e.cla2obj)
}

func TestRollbackRestoresEncoderState(t *testing.T) {
	store, ro, po := buildCounter(t)
	solver := satinc.New()
	e := New(store, aigcnf.NewGenerator(), solver)

	if err := e.EmitConeThroughFrame(0, []aig.ObjID{ro, po}); err != nil {
		t.Fatalf("seed emission: %v", err)
	}

	beforeAbs, beforeFV, beforeCla := snapshot(e)
	e.Bookmark()

	e.AddObjectsToAbstraction([]aig.ObjID{1})
	if err := e.EmitConeThroughFrame(2, []aig.ObjID{ro, po, 1}); err != nil {
		t.Fatalf("emission: %v", err)
	}
	if _, err := e.OutputLit(po, 2); err != nil {
		t.Fatalf("OutputLit: %v", err)
	}

	e.Rollback()

	afterAbs, afterFV, afterCla := snapshot(e)
	if !reflect.DeepEqual(beforeAbs, afterAbs) {
		t.Fatalf("abstraction flags not restored: before=%v after=%v", beforeAbs, afterAbs)
	}
	if !reflect.DeepEqual(beforeFV, afterFV) {
		t.Fatalf("frame vars not restored: before=%v after=%v", beforeFV, afterFV)
	}
	if beforeCla != afterCla {
		t.Fatalf("cla2obj length not restored: before=%d after=%d", beforeCla, afterCla)
	}
}

func TestGetOrAllocVarRejectsSharedVarKinds(t *testing.T) {
	store, _, po := buildCounter(t)
	e := New(store, aigcnf.NewGenerator(), satinc.New())
	if _, err := e.GetOrAllocVar(po, 0); err == nil {
		t.Fatalf("expected error allocating a variable for a PropOut")
	}
}

func TestCoreObjectsDeduplicates(t *testing.T) {
	store, ro, po := buildCounter(t)
	e := New(store, aigcnf.NewGenerator(), satinc.New())
	if err := e.EmitConeThroughFrame(0, []aig.ObjID{ro, po}); err != nil {
		t.Fatalf("emission: %v", err)
	}
	objs := e.CoreObjects([]int{0, 1, 0})
	if len(objs) != 1 {
		t.Fatalf("CoreObjects did not dedup: %v", objs)
	}
}

func TestSolveUnderPropOutLiteral(t *testing.T) {
	store, ro, po := buildCounter(t)
	solver := satinc.New()
	e := New(store, aigcnf.NewGenerator(), solver)
	if err := e.EmitConeThroughFrame(0, []aig.ObjID{ro, po}); err != nil {
		t.Fatalf("emission: %v", err)
	}
	l, err := e.OutputLit(po, 0)
	if err != nil {
		t.Fatalf("OutputLit: %v", err)
	}
	// Frame 0's register output is reset to 0, so PropOut (= ro) must
	// be unsatisfiable when assumed true.
	status, err := solver.Solve([]Lit{l}, 0, time.Time{})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if status != StatusUNSAT {
		t.Fatalf("status = %v, want UNSAT at frame 0", status)
	}
}
