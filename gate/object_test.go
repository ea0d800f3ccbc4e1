package gate

import (
	"testing"

	"github.com/boolabs/gla/aig"
	"github.com/boolabs/gla/aig/cnf"
)

func buildLatch(t *testing.T) (*aig.Manager, aig.ObjID, aig.ObjID, aig.ObjID) {
	t.Helper()
	b := aig.NewBuilder()
	pi := b.AddPI()
	ro := b.NewRegister()
	if _, err := b.SetRegisterDriver(ro, pi, true); err != nil {
		t.Fatalf("SetRegisterDriver: %v", err)
	}
	po := b.AddPropOut(ro, false)
	return b.Manager(), pi, ro, po
}

func TestBuildRejectsEmptySeed(t *testing.T) {
	m, _, _, po := buildLatch(t)
	_, err := Build(m, cnf.NewGenerator(), nil)
	if err == nil {
		t.Fatalf("expected error for empty seed")
	}
	_ = po
}

func TestBuildDerivesRegOutFaninFromRegInDriver(t *testing.T) {
	m, pi, ro, po := buildLatch(t)
	s, err := Build(m, cnf.NewGenerator(), []aig.ObjID{po})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	obj := s.Object(ro)
	if obj.NFanins != 1 || obj.Fanins[0] != int32(pi) {
		t.Fatalf("RegOut fanin = %+v, want single fanin %d (the RegIn's driver)", obj, pi)
	}
	if !obj.FaninPhase0 {
		t.Fatalf("RegOut fanin phase should mirror the RegIn's driver polarity (true)")
	}
}

func TestSeedMarksAbstracted(t *testing.T) {
	m, _, ro, po := buildLatch(t)
	s, err := Build(m, cnf.NewGenerator(), []aig.ObjID{ro})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !s.IsAbstracted(ro) {
		t.Fatalf("seeded object must be abstracted")
	}
	if s.IsAbstracted(po) {
		t.Fatalf("non-seeded object must not be abstracted")
	}
}

func TestStatsRatio(t *testing.T) {
	m, _, ro, po := buildLatch(t)
	s, err := Build(m, cnf.NewGenerator(), []aig.ObjID{ro, po})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	st := s.Stats()
	if st.Total != s.NObjs() {
		t.Fatalf("Stats.Total = %d, want %d", st.Total, s.NObjs())
	}
	if st.Abstracted != 2 {
		t.Fatalf("Stats.Abstracted = %d, want 2", st.Abstracted)
	}
	if r := st.Ratio(); r <= 0 || r > 1 {
		t.Fatalf("Ratio() = %v, want in (0,1]", r)
	}
}
