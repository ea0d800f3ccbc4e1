// Package aig is a reference And-Inverter Graph container — an
// external collaborator the rest of this module assumes exists. It is
// deliberately minimal — node kinds, fanins, traversal marking, and
// simulation — just enough for gate.Store, encoder.Encoder and
// refine.Manager to have a concrete graph to operate on and for the
// package tests to build small circuits by hand or via circuitlang.
package aig

import "github.com/boolabs/gla/core"

// Kind identifies the role of an AIG object.
type Kind uint8

const (
	KindConst0 Kind = iota
	KindPI
	KindAnd
	KindRegOut // RO: register output, a pseudo primary input each frame
	KindRegIn  // RI: register input, a pseudo primary output each frame
	KindPropOut
)

func (k Kind) String() string {
	switch k {
	case KindConst0:
		return "Const0"
	case KindPI:
		return "PI"
	case KindAnd:
		return "And"
	case KindRegOut:
		return "RegOut"
	case KindRegIn:
		return "RegIn"
	case KindPropOut:
		return "PropOut"
	default:
		return "Unknown"
	}
}

// ObjID is a 0-based index into Manager's node tables. Object 0 is
// always the constant-0 node.
type ObjID int32

const ConstID ObjID = 0

// Manager is the AIG container: parallel slices indexed by ObjID,
// avoiding pointer-chasing node structs (classical/gates.go builds
// small expression trees with struct pointers because its graphs are
// tiny; this graph is meant to scale to realistic circuit sizes, so it
// uses a flat-array layout instead).
type Manager struct {
	kinds  []Kind
	fanin0 []ObjID
	fanin1 []ObjID // unused for PI/RegOut
	compl0 []bool
	compl1 []bool

	// regPair maps a RegOut's ObjID to its companion RegIn's ObjID and
	// back, so "next state" lookups don't need a search.
	regInOf  map[ObjID]ObjID
	regOutOf map[ObjID]ObjID

	piIDs      []ObjID
	propOutIDs []ObjID

	travMark []uint32
	travID   uint32
}

// NewManager returns a Manager with only the constant-0 node.
func NewManager() *Manager {
	m := &Manager{
		kinds:    []Kind{KindConst0},
		fanin0:   []ObjID{0},
		fanin1:   []ObjID{0},
		compl0:   []bool{false},
		compl1:   []bool{false},
		regInOf:  make(map[ObjID]ObjID),
		regOutOf: make(map[ObjID]ObjID),
		travMark: []uint32{0},
	}
	return m
}

func (m *Manager) alloc(k Kind) ObjID {
	id := ObjID(len(m.kinds))
	m.kinds = append(m.kinds, k)
	m.fanin0 = append(m.fanin0, 0)
	m.fanin1 = append(m.fanin1, 0)
	m.compl0 = append(m.compl0, false)
	m.compl1 = append(m.compl1, false)
	m.travMark = append(m.travMark, 0)
	return id
}

// NObjs returns the number of allocated objects, including Const0.
func (m *Manager) NObjs() int { return len(m.kinds) }

func (m *Manager) Kind(id ObjID) Kind { return m.kinds[id] }

// Fanins returns the (possibly complemented) fanins of id. PI and
// RegOut report no fanins; And reports two; RegIn and PropOut report
// one (stored in fanin0).
func (m *Manager) Fanins(id ObjID) (f0, f1 ObjID, c0, c1 bool) {
	return m.fanin0[id], m.fanin1[id], m.compl0[id], m.compl1[id]
}

func (m *Manager) Fanin0(id ObjID) (ObjID, bool) { return m.fanin0[id], m.compl0[id] }
func (m *Manager) Fanin1(id ObjID) (ObjID, bool) { return m.fanin1[id], m.compl1[id] }

func (m *Manager) PIs() []ObjID      { return m.piIDs }
func (m *Manager) PropOuts() []ObjID { return m.propOutIDs }

// RegIn returns the RegIn object driven by the RegOut ro.
func (m *Manager) RegIn(ro ObjID) (ObjID, bool) {
	ri, ok := m.regInOf[ro]
	return ri, ok
}

// RegOut returns the RegOut object whose next-state value is driven by ri.
func (m *Manager) RegOut(ri ObjID) (ObjID, bool) {
	ro, ok := m.regOutOf[ri]
	return ro, ok
}

// NextTraversal returns a fresh monotonic traversal ID, preferred over
// a fresh bit vector per pass for hot, short-lived traversals. Marking
// is done with Visit/Visited.
func (m *Manager) NextTraversal() uint32 {
	m.travID++
	return m.travID
}

func (m *Manager) Visit(id ObjID, trav uint32)        { m.travMark[id] = trav }
func (m *Manager) Visited(id ObjID, trav uint32) bool { return m.travMark[id] == trav }

// Builder constructs a Manager. AND nodes are added directly; RegOut
// and RegIn are added in two phases (NewRegister then
// SetRegisterDriver) because a register's value is a *temporal*
// back-edge — the RegOut's value at frame f+1 is whatever the RegIn
// computed at frame f — never a structural cycle within one frame's
// combinational graph.
type Builder struct {
	m *Manager
}

func NewBuilder() *Builder { return &Builder{m: NewManager()} }

func (b *Builder) Manager() *Manager { return b.m }

func (b *Builder) AddPI() ObjID {
	id := b.m.alloc(KindPI)
	b.m.piIDs = append(b.m.piIDs, id)
	return id
}

func (b *Builder) AddAnd(f0, f1 ObjID, c0, c1 bool) ObjID {
	id := b.m.alloc(KindAnd)
	b.m.fanin0[id], b.m.fanin1[id] = f0, f1
	b.m.compl0[id], b.m.compl1[id] = c0, c1
	return id
}

// NewRegister allocates a RegOut object with no driver yet. Callers
// must follow with SetRegisterDriver before the AIG is used.
func (b *Builder) NewRegister() ObjID {
	return b.m.alloc(KindRegOut)
}

// SetRegisterDriver allocates the RegIn companion of ro and wires its
// fanin to (f, compl), completing the register.
func (b *Builder) SetRegisterDriver(ro ObjID, f ObjID, compl bool) (ObjID, error) {
	if b.m.kinds[ro] != KindRegOut {
		return 0, core.NewLogicError("aig", "SetRegisterDriver", "object is not a RegOut")
	}
	if _, exists := b.m.regInOf[ro]; exists {
		return 0, core.NewLogicError("aig", "SetRegisterDriver", "register already has a driver")
	}
	ri := b.m.alloc(KindRegIn)
	b.m.fanin0[ri] = f
	b.m.compl0[ri] = compl
	b.m.regInOf[ro] = ri
	b.m.regOutOf[ri] = ro
	return ri, nil
}

func (b *Builder) AddPropOut(f ObjID, compl bool) ObjID {
	id := b.m.alloc(KindPropOut)
	b.m.fanin0[id] = f
	b.m.compl0[id] = compl
	b.m.propOutIDs = append(b.m.propOutIDs, id)
	return id
}
