package driver

import (
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/boolabs/gla/aig"
	"github.com/boolabs/gla/core"
	"github.com/boolabs/gla/encoder"
	"github.com/boolabs/gla/gate"
	"github.com/boolabs/gla/refine"
)

func cloneBitset(b *bitset.BitSet) *bitset.BitSet {
	if b == nil {
		return nil
	}
	return b.Clone()
}

// Driver owns the encoder, gate store, and refinement manager for one
// run of the abstraction/refinement loop.
type Driver struct {
	store   *gate.Store
	enc     *encoder.Encoder
	refiner *refine.Manager
	po      aig.ObjID
	params  Params
}

// New builds a Driver. po must be the circuit's single property
// output; callers reject AIGs with zero or multiple POs before
// construction (see the gla facade).
func New(store *gate.Store, enc *encoder.Encoder, po aig.ObjID, params Params) *Driver {
	refiner := refine.NewManager(store)
	refiner.PropagateFanout = params.PropagateFanout
	return &Driver{
		store:   store,
		enc:     enc,
		refiner: refiner,
		po:      po,
		params:  params,
	}
}

func (d *Driver) trace(msg string) {
	if d.params.Trace != nil {
		d.params.Trace(msg)
	}
}

// abstractedObjects lists every object ID currently marked abstracted.
func (d *Driver) abstractedObjects() []aig.ObjID {
	var out []aig.ObjID
	for i, e := d.store.Abstracted.NextSet(0); e; i, e = d.store.Abstracted.NextSet(i + 1) {
		out = append(out, aig.ObjID(i))
	}
	return out
}

// frontier walks the current abstraction backward from the PO and
// returns, in discovery order, every true PI and pseudo-PI it depends
// on. Earlier entries carry higher refinement priority.
func (d *Driver) frontier() (ids []aig.ObjID, isPI []bool) {
	m := d.store.AIG
	visited := make(map[aig.ObjID]bool)

	var visit func(id aig.ObjID)
	visit = func(id aig.ObjID) {
		if visited[id] {
			return
		}
		visited[id] = true
		switch m.Kind(id) {
		case aig.KindPI:
			ids = append(ids, id)
			isPI = append(isPI, true)
		case aig.KindConst0:
			// known-0, never a frontier input
		case aig.KindAnd:
			if d.store.IsAbstracted(id) {
				f0, _ := m.Fanin0(id)
				f1, _ := m.Fanin1(id)
				visit(f0)
				visit(f1)
			} else {
				ids = append(ids, id)
				isPI = append(isPI, false)
			}
		case aig.KindRegOut:
			if d.store.IsAbstracted(id) {
				if ri, ok := m.RegIn(id); ok {
					visit(ri)
				}
			} else {
				ids = append(ids, id)
				isPI = append(isPI, false)
			}
		case aig.KindRegIn, aig.KindPropOut:
			f0, _ := m.Fanin0(id)
			visit(f0)
		}
	}
	visit(d.po)
	return ids, isPI
}

// buildCEX reads the solver's most recent SAT assignment into a
// refine.CEX over frames 0..f using the frontier computed above.
func (d *Driver) buildCEX(frontierIDs []aig.ObjID, isPI []bool, f int) *refine.CEX {
	solver := d.enc.Solver()
	values := make([][]bool, f+1)
	for fr := 0; fr <= f; fr++ {
		row := make([]bool, len(frontierIDs))
		for i, id := range frontierIDs {
			if v, ok := d.enc.LookupVar(id, fr); ok {
				row[i] = solver.VarValue(v)
			}
		}
		values[fr] = row
	}
	return &refine.CEX{Frontier: frontierIDs, Values: values, IsPrimaryInput: isPI}
}

// cexRemap translates a real abstract CEX into a full-PI-alphabet
// CounterExample and verifies it by simulation. A verification
// failure is a fatal correctness violation.
func (d *Driver) cexRemap(cex *refine.CEX, f int) (*CounterExample, error) {
	m := d.store.AIG
	pis := m.PIs()
	bits := make([][]bool, f+1)

	frontierIdx := make(map[aig.ObjID]int, len(cex.Frontier))
	for i, id := range cex.Frontier {
		frontierIdx[id] = i
	}

	for fr := 0; fr <= f; fr++ {
		row := make([]bool, len(pis))
		for i, pi := range pis {
			if fi, ok := frontierIdx[pi]; ok && fr < len(cex.Values) {
				row[i] = cex.Values[fr][fi]
			}
		}
		bits[fr] = row
	}

	sim := m.Simulate(bits, make([]bool, countRegisters(m)))
	last := sim[len(sim)-1]
	if !last[d.po] {
		return nil, core.NewLogicErrorAt("driver", "cexRemap",
			"counter-example failed re-simulation against the original circuit", int(d.po), f)
	}
	return &CounterExample{Bits: bits}, nil
}

func countRegisters(m *aig.Manager) int {
	n := 0
	for id := aig.ObjID(0); int(id) < m.NObjs(); id++ {
		if m.Kind(id) == aig.KindRegOut {
			n++
		}
	}
	return n
}

// Run executes the abstraction/refinement state machine and returns
// the single external-facing Result.
func (d *Driver) Run() (*Result, error) {
	stats := Stats{}
	var lastFrame int

	for f := d.params.FrameStart; f <= d.params.FrameMax; f++ {
		lastFrame = f
		if !d.params.Deadline.IsZero() && time.Now().After(d.params.Deadline) {
			return d.resourceOut(ReasonTimeOut, f, stats), nil
		}

		// Const0 is encoded at every frame, abstracted or not, so that it
		// reads as 0 wherever it is a fanin.
		if err := d.enc.EmitConeThroughFrame(f, append([]aig.ObjID{aig.ConstID}, d.abstractedObjects()...)); err != nil {
			return nil, err
		}
		d.enc.Bookmark()

		innerRounds := 0
		for {
			lit, err := d.enc.OutputLit(d.po, f)
			if err != nil {
				return nil, err
			}
			status, err := d.enc.Solver().Solve([]encoder.Lit{lit}, d.params.ConflictLimit, d.params.Deadline)
			if err != nil {
				return nil, err
			}
			if status == encoder.StatusUndef {
				return d.resourceOut(ReasonConflictLimit, f, stats), nil
			}
			if status == encoder.StatusUNSAT {
				break
			}

			frontierIDs, isPI := d.frontier()
			cex := d.buildCEX(frontierIDs, isPI, f)
			ppis := d.refiner.Refine(d.po, cex)
			if len(ppis) == 0 {
				remapped, err := d.cexRemap(cex, f)
				if err != nil {
					return nil, err
				}
				stats.FramesCompleted = f
				return &Result{
					Outcome:          OutcomeFalsified,
					LastFrame:        f,
					CEX:              remapped,
					FinalAbstraction: cloneBitset(d.store.Abstracted),
					Stats:            d.finalStats(stats),
				}, nil
			}

			d.enc.AddObjectsToAbstraction(ppis)
			if err := d.enc.EmitConeThroughFrame(f, ppis); err != nil {
				return nil, err
			}
			innerRounds++
			stats.RefinementRounds++
		}

		if innerRounds > 0 {
			proofCore := d.enc.Solver().ProofCore()
			coreObjs := d.enc.CoreObjects(proofCore)
			d.enc.Rollback()
			d.enc.AddObjectsToAbstraction(coreObjs)
			if err := d.enc.EmitConeThroughFrame(f, coreObjs); err != nil {
				return nil, err
			}
			lit, err := d.enc.OutputLit(d.po, f)
			if err != nil {
				return nil, err
			}
			status, err := d.enc.Solver().Solve([]encoder.Lit{lit}, d.params.ConflictLimit, d.params.Deadline)
			if err != nil {
				return nil, err
			}
			if status != encoder.StatusUNSAT {
				return nil, core.NewLogicErrorAt("driver", "Run",
					"rollback-and-recommit from the proof core failed to reproduce UNSAT", int(d.po), f)
			}
			stats.RollbackCommits++
		}

		if d.params.OnAbstraction != nil && f%2 == 1 {
			d.params.OnAbstraction(f, d.store.Abstracted)
		}

		if d.store.Stats().Ratio() >= d.params.MinAbstractionRatio {
			stats.FramesCompleted = f
			return d.resourceOut(ReasonRatioExceeded, f, stats), nil
		}

		d.trace(d.store.Stats().String())
	}

	stats.FramesCompleted = lastFrame
	return &Result{
		Outcome:          OutcomeBoundedProof,
		LastFrame:        lastFrame,
		FinalAbstraction: cloneBitset(d.store.Abstracted),
		Stats:            d.finalStats(stats),
	}, nil
}

func (d *Driver) resourceOut(reason ResourceOutReason, f int, stats Stats) *Result {
	stats.FramesCompleted = f
	return &Result{
		Outcome:          OutcomeResourceOut,
		Reason:           reason,
		LastFrame:        f,
		FinalAbstraction: cloneBitset(d.store.Abstracted),
		Stats:            d.finalStats(stats),
	}
}

func (d *Driver) finalStats(s Stats) Stats {
	s.Encoder = d.enc.Stats()
	return s
}
