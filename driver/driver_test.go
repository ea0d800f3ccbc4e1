package driver

import (
	"testing"

	"github.com/boolabs/gla/aig"
	aigcnf "github.com/boolabs/gla/aig/cnf"
	"github.com/boolabs/gla/encoder"
	"github.com/boolabs/gla/gate"
	"github.com/boolabs/gla/satinc"
)

func newDriver(t *testing.T, m *aig.Manager, po aig.ObjID, seed []aig.ObjID, params Params) *Driver {
	t.Helper()
	store, err := gate.Build(m, aigcnf.NewGenerator(), seed)
	if err != nil {
		t.Fatalf("gate.Build: %v", err)
	}
	enc := encoder.New(store, aigcnf.NewGenerator(), satinc.New())
	return New(store, enc, po, params)
}

// Scenario 1: a register that is reset to 0 and always driven back to
// 0; PO = the register itself. The property can never be violated at
// any frame depth.
func TestScenarioRegisterAlwaysZeroIsBoundedProof(t *testing.T) {
	b := aig.NewBuilder()
	ro := b.NewRegister()
	if _, err := b.SetRegisterDriver(ro, aig.ConstID, false); err != nil {
		t.Fatalf("SetRegisterDriver: %v", err)
	}
	po := b.AddPropOut(ro, false)
	m := b.Manager()

	params := Default()
	params.FrameMax = 4
	d := newDriver(t, m, po, []aig.ObjID{ro}, params)

	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeBoundedProof {
		t.Fatalf("Outcome = %v, want BoundedProof (result: %+v)", res.Outcome, res)
	}
	if res.LastFrame != params.FrameMax {
		t.Fatalf("LastFrame = %d, want %d", res.LastFrame, params.FrameMax)
	}
}

// Scenario 3: a single PI, PO = NOT(PI) built as a self-AND (matching
// the encoder test's NOT-via-AND idiom), seeded with that AND gate.
// PI = 0 immediately falsifies the property at frame 0.
func TestScenarioSinglePIInverterIsFalsifiedAtFrameZero(t *testing.T) {
	b := aig.NewBuilder()
	pi := b.AddPI()
	notPi := b.AddAnd(pi, pi, true, true)
	po := b.AddPropOut(notPi, false)
	m := b.Manager()

	params := Default()
	params.FrameMax = 1
	d := newDriver(t, m, po, []aig.ObjID{notPi}, params)

	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeFalsified {
		t.Fatalf("Outcome = %v, want Falsified (result: %+v)", res.Outcome, res)
	}
	if res.LastFrame != 0 {
		t.Fatalf("LastFrame = %d, want 0", res.LastFrame)
	}
	if res.CEX == nil || len(res.CEX.Bits) == 0 || res.CEX.Bits[0][0] {
		t.Fatalf("CEX = %+v, want PI=0 at frame 0", res.CEX)
	}
}

// A deep AND cone (PO = pi0 & pi1 & pi2) seeded with only the outer AND
// gate in the abstraction forces a refinement round before the real
// driver of the cone's own PI alphabet is exposed: the first solve sees
// the inner AND as an opaque pseudo-PI, and refinement must pull it
// into the abstraction and grow it monotonically rather than accepting
// a CEX justified through an unexpanded pseudo-PI. All three PIs true
// falsifies the property immediately at frame 0, so the driver must
// land on that CEX well within the conflict budget, never a
// resource-out.
func TestScenarioDeepConeGrowsAbstractionMonotonically(t *testing.T) {
	b := aig.NewBuilder()
	pi0 := b.AddPI()
	pi1 := b.AddPI()
	pi2 := b.AddPI()
	a1 := b.AddAnd(pi0, pi1, false, false)
	a2 := b.AddAnd(a1, pi2, false, false)
	po := b.AddPropOut(a2, false)
	m := b.Manager()

	params := Default()
	params.FrameMax = 2
	params.ConflictLimit = 10
	d := newDriver(t, m, po, []aig.ObjID{a2}, params)

	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeFalsified {
		t.Fatalf("Outcome = %v, want Falsified (result: %+v)", res.Outcome, res)
	}
	if res.LastFrame != 0 {
		t.Fatalf("LastFrame = %d, want 0", res.LastFrame)
	}
	if res.Stats.RefinementRounds == 0 {
		t.Fatalf("RefinementRounds = 0, want at least one round growing past the seeded AND gate")
	}
	if res.CEX == nil || len(res.CEX.Bits) == 0 || len(res.CEX.Bits[0]) != 3 {
		t.Fatalf("CEX = %+v, want a 3-bit assignment at frame 0", res.CEX)
	}
	for i, bit := range res.CEX.Bits[0] {
		if !bit {
			t.Fatalf("CEX.Bits[0][%d] = false, want true (PO = pi0 & pi1 & pi2 is falsified by all PIs true)", i)
		}
	}
}
