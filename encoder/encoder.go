// Package encoder implements the incremental encoder: it lazily emits
// CNF clauses for (object, frame) pairs into the SAT solver,
// maintains the clause→object back-map, and supports bookmarked
// rollback.
package encoder

import (
	"fmt"

	"github.com/boolabs/gla/aig"
	"github.com/boolabs/gla/aig/cnf"
	"github.com/boolabs/gla/core"
	"github.com/boolabs/gla/gate"
)

// logEntry is one change-log record: frame == newlyAbstracted means
// "object was newly abstracted"; otherwise it names the frame whose
// variable was newly allocated.
type logEntry struct {
	obj   aig.ObjID
	frame int
}

const newlyAbstracted = -1

// Encoder is the incremental encoder. It owns the frame-variable
// matrix (a flat array rather than a growable vector per object) and
// the clause→object back-map.
type Encoder struct {
	store  *gate.Store
	cnfGen *cnf.Generator
	solver Solver

	// frameVars is laid out obj*stride + frame; -1 means "not
	// allocated yet". stride grows (re-laid-out) as frames beyond the
	// current capacity are requested.
	frameVars []int32
	stride    int

	cla2obj []aig.ObjID

	changeLog []logEntry

	bmCla2objLen int
	bmChangeLen  int
}

func New(store *gate.Store, gen *cnf.Generator, solver Solver) *Encoder {
	e := &Encoder{store: store, cnfGen: gen, solver: solver, stride: 1,
		frameVars: make([]int32, store.NObjs())}
	for i := range e.frameVars {
		e.frameVars[i] = -1
	}
	return e
}

// growStride ensures the frame-var matrix covers frames 0..f.
func (e *Encoder) growStride(f int) {
	if f < e.stride {
		return
	}
	newStride := f + 1
	n := e.store.NObjs()
	nv := make([]int32, n*newStride)
	for i := range nv {
		nv[i] = -1
	}
	for obj := 0; obj < n; obj++ {
		for fr := 0; fr < e.stride; fr++ {
			nv[obj*newStride+fr] = e.frameVars[obj*e.stride+fr]
		}
	}
	e.frameVars = nv
	e.stride = newStride
}

func (e *Encoder) idx(obj aig.ObjID, frame int) int { return int(obj)*e.stride + frame }

func (e *Encoder) varAt(obj aig.ObjID, frame int) (int32, bool) {
	if frame >= e.stride {
		return 0, false
	}
	v := e.frameVars[e.idx(obj, frame)]
	if v < 0 {
		return 0, false
	}
	return v, true
}

func (e *Encoder) setVarAt(obj aig.ObjID, frame int, v int32) {
	e.growStride(frame)
	e.frameVars[e.idx(obj, frame)] = v
}

func (e *Encoder) clearVarAt(obj aig.ObjID, frame int) {
	if frame >= e.stride {
		return
	}
	e.frameVars[e.idx(obj, frame)] = -1
}

// GetOrAllocVar looks up the solver variable for (obj, frame),
// allocating a fresh one if missing. Const0 IS asked via this path (it
// needs a variable to carry its unit clause — matching
// Gla_ManGetVar's assertion in the original source, which excludes
// only PropOut and RegIn, not Const0). RegIn and PropOut instead share
// their driving fanin's variable and must never reach this function —
// callers route through their fanin object directly.
func (e *Encoder) GetOrAllocVar(obj aig.ObjID, frame int) (int32, error) {
	k := e.store.Object(obj).Kind
	if k == aig.KindPropOut || k == aig.KindRegIn {
		return 0, core.NewLogicError("encoder", "GetOrAllocVar",
			fmt.Sprintf("object %d (%s) shares its fanin's variable and has none of its own", obj, k))
	}
	if v, ok := e.varAt(obj, frame); ok {
		return v, nil
	}
	v := e.solver.NewVar()
	e.setVarAt(obj, frame, v)
	e.changeLog = append(e.changeLog, logEntry{obj: obj, frame: frame})
	return v, nil
}

// EmitClauses emits the CNF clauses for one (object, frame) pair,
// dispatching per object kind. Fails if obj.Kind is not one of
// {Const0, And, RegOut} (PI/RegOut-without-driver have no clauses of
// their own to emit; RegIn/PropOut piggyback on their driver).
func (e *Encoder) EmitClauses(obj aig.ObjID, frame int) error {
	o := e.store.Object(obj)
	switch o.Kind {
	case aig.KindConst0:
		v, err := e.GetOrAllocVar(obj, frame)
		if err != nil {
			return err
		}
		id := e.solver.AddClause([]Lit{{Var: v, Neg: true}})
		e.cla2obj = append(e.cla2obj, obj)
		_ = id
		return nil
	case aig.KindRegOut:
		v, err := e.GetOrAllocVar(obj, frame)
		if err != nil {
			return err
		}
		if frame == 0 {
			e.solver.AddClause([]Lit{{Var: v, Neg: true}})
			e.cla2obj = append(e.cla2obj, obj)
			return nil
		}
		driverObj := aig.ObjID(o.Fanins[0])
		dv, err := e.GetOrAllocVar(driverObj, frame-1)
		if err != nil {
			return err
		}
		phase := o.FaninPhase0
		// v <-> (dv XOR phase)
		e.solver.AddClause([]Lit{{Var: v, Neg: true}, {Var: dv, Neg: phase}})
		e.cla2obj = append(e.cla2obj, obj)
		e.solver.AddClause([]Lit{{Var: v, Neg: false}, {Var: dv, Neg: !phase}})
		e.cla2obj = append(e.cla2obj, obj)
		return nil
	case aig.KindAnd:
		vout, err := e.GetOrAllocVar(obj, frame)
		if err != nil {
			return err
		}
		vIns := make([]int32, o.NFanins)
		for i := 0; i < o.NFanins; i++ {
			vi, err := e.GetOrAllocVar(aig.ObjID(o.Fanins[i]), frame)
			if err != nil {
				return err
			}
			vIns[i] = vi
		}
		for _, cl := range cnf.ClausesFor(e.store.AIG, obj, o.Kind, vout, vIns) {
			lits := make([]Lit, len(cl))
			for i, l := range cl {
				lits[i] = Lit{Var: l.Var, Neg: l.Neg}
			}
			e.solver.AddClause(lits)
			e.cla2obj = append(e.cla2obj, obj)
		}
		return nil
	default:
		return core.NewLogicError("encoder", "EmitClauses",
			fmt.Sprintf("object kind %s has no clauses of its own", o.Kind))
	}
}

// AddObjectsToAbstraction marks each ID as abstracted and logs it;
// does not emit clauses.
func (e *Encoder) AddObjectsToAbstraction(ids []aig.ObjID) {
	for _, id := range ids {
		if !e.store.IsAbstracted(id) {
			e.store.SetAbstracted(id, true)
			e.changeLog = append(e.changeLog, logEntry{obj: id, frame: newlyAbstracted})
		}
	}
}

// EmitConeThroughFrame emits clauses for every id in ids across frames
// 0..f, for every emittable kind (Const0/And/RegOut); PI/RegIn/PropOut
// contribute no clauses of their own so they are skipped.
func (e *Encoder) EmitConeThroughFrame(f int, ids []aig.ObjID) error {
	for _, id := range ids {
		k := e.store.Object(id).Kind
		if k != aig.KindConst0 && k != aig.KindAnd && k != aig.KindRegOut {
			continue
		}
		for fr := 0; fr <= f; fr++ {
			if _, ok := e.varAt(id, fr); ok {
				continue
			}
			if err := e.EmitClauses(id, fr); err != nil {
				return err
			}
		}
	}
	return nil
}

// Bookmark snapshots solver state plus cla2obj length.
func (e *Encoder) Bookmark() {
	e.solver.Bookmark()
	e.bmCla2objLen = len(e.cla2obj)
	e.bmChangeLen = len(e.changeLog)
}

// Rollback reverses every change-log entry recorded since the last
// Bookmark, then truncates cla2obj and asks the solver to roll back
// its own clause database.
func (e *Encoder) Rollback() {
	for i := len(e.changeLog) - 1; i >= e.bmChangeLen; i-- {
		entry := e.changeLog[i]
		if entry.frame == newlyAbstracted {
			e.store.SetAbstracted(entry.obj, false)
		} else {
			e.clearVarAt(entry.obj, entry.frame)
		}
	}
	e.changeLog = e.changeLog[:e.bmChangeLen]
	e.cla2obj = e.cla2obj[:e.bmCla2objLen]
	e.solver.Rollback()
}

// ObjectForClause maps a solver clause ID back to the object that
// caused it, via the clause→object back-map.
func (e *Encoder) ObjectForClause(claID int) (aig.ObjID, bool) {
	if claID < 0 || claID >= len(e.cla2obj) {
		return 0, false
	}
	return e.cla2obj[claID], true
}

// CoreObjects translates a proof core (solver clause IDs) into a
// deduplicated set of object IDs.
func (e *Encoder) CoreObjects(core []int) []aig.ObjID {
	seen := make(map[aig.ObjID]bool)
	out := make([]aig.ObjID, 0, len(core))
	for _, cl := range core {
		obj, ok := e.ObjectForClause(cl)
		if !ok || seen[obj] {
			continue
		}
		seen[obj] = true
		out = append(out, obj)
	}
	return out
}

// OutputLit returns the solver literal standing for obj's value at
// frame, following through RegIn/PropOut to their fanin variable
// (matching the original source's Gla_ManGetOutLit, which reads a
// PropOut's fanin's variable, not one of its own).
func (e *Encoder) OutputLit(obj aig.ObjID, frame int) (Lit, error) {
	o := e.store.Object(obj)
	switch o.Kind {
	case aig.KindPropOut, aig.KindRegIn:
		fv, err := e.GetOrAllocVar(aig.ObjID(o.Fanins[0]), frame)
		if err != nil {
			return Lit{}, err
		}
		return Lit{Var: fv, Neg: o.FaninPhase0}, nil
	default:
		v, err := e.GetOrAllocVar(obj, frame)
		if err != nil {
			return Lit{}, err
		}
		return Lit{Var: v, Neg: false}, nil
	}
}

// LookupVar returns the solver variable for (obj, frame) without
// allocating one, for read-only callers such as the driver's CEX
// extraction.
func (e *Encoder) LookupVar(obj aig.ObjID, frame int) (int32, bool) { return e.varAt(obj, frame) }

func (e *Encoder) Solver() Solver     { return e.solver }
func (e *Encoder) Store() *gate.Store { return e.store }

// Stats summarizes encoder activity for driver.Result.
type Stats struct {
	NVars       int32
	NClauses    int
	SolverStats fmt.Stringer
}

func (s Stats) String() string {
	return fmt.Sprintf("vars: %d, clauses: %d, solver: {%s}", s.NVars, s.NClauses, s.SolverStats)
}

func (e *Encoder) Stats() Stats {
	return Stats{NVars: e.solver.NVars(), NClauses: e.solver.NClauses(), SolverStats: e.solver.Stats()}
}
