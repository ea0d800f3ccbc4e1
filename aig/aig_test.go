package aig

import "testing"

// buildLatch builds PI -AND-> RegIn -> RegOut feeding a PropOut that
// fires once the register has latched a 1, a minimal circuit with
// both a temporal edge and a propagated output.
func buildLatch(t *testing.T) (*Manager, ObjID, ObjID) {
	t.Helper()
	b := NewBuilder()
	pi := b.AddPI()
	ro := b.NewRegister()
	if _, err := b.SetRegisterDriver(ro, pi, false); err != nil {
		t.Fatalf("SetRegisterDriver: %v", err)
	}
	po := b.AddPropOut(ro, false)
	return b.Manager(), pi, po
}

func TestSetRegisterDriverRejectsDoubleWiring(t *testing.T) {
	b := NewBuilder()
	ro := b.NewRegister()
	if _, err := b.SetRegisterDriver(ro, ConstID, false); err != nil {
		t.Fatalf("first SetRegisterDriver: %v", err)
	}
	if _, err := b.SetRegisterDriver(ro, ConstID, false); err == nil {
		t.Fatalf("expected error wiring a register twice")
	}
}

func TestSimulateLatchesPI(t *testing.T) {
	m, _, po := buildLatch(t)
	frames := m.Simulate([][]bool{{false}, {true}, {false}}, []bool{false})
	want := []bool{false, false, true}
	for i, w := range want {
		if frames[i][po] != w {
			t.Fatalf("frame %d PropOut = %v, want %v", i, frames[i][po], w)
		}
	}
}

func TestTernarySimulateXPropagates(t *testing.T) {
	m, _, po := buildLatch(t)
	frames := m.TernarySimulate([]TernaryFrame{{TerX}, {Ter0}}, TernaryFrame{Ter0})
	if frames[0][po] != Ter0 {
		t.Fatalf("frame 0 PropOut = %v, want Ter0 (register not yet latched)", frames[0][po])
	}
	if frames[1][po] != TerX {
		t.Fatalf("frame 1 PropOut = %v, want TerX (latched an unknown PI)", frames[1][po])
	}
}

func TestConeFromTopologicalOrder(t *testing.T) {
	m, pi, po := buildLatch(t)
	order := m.ConeFrom([]ObjID{po})
	pos := map[ObjID]int{}
	for i, id := range order {
		pos[id] = i
	}
	if _, ok := pos[pi]; !ok {
		t.Fatalf("cone from PropOut must include the PI feeding the register")
	}
	if pos[pi] >= pos[po] {
		t.Fatalf("expected PI before PropOut in topological order, got positions %d, %d", pos[pi], pos[po])
	}
}

func TestTraversalMarking(t *testing.T) {
	m := NewManager()
	a := m.alloc(KindPI)
	t1 := m.NextTraversal()
	if m.Visited(a, t1) {
		t.Fatalf("object should not be visited before Visit is called")
	}
	m.Visit(a, t1)
	if !m.Visited(a, t1) {
		t.Fatalf("object should be visited after Visit")
	}
	t2 := m.NextTraversal()
	if m.Visited(a, t2) {
		t.Fatalf("a later traversal ID must not see an earlier pass's mark")
	}
}
