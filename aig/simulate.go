package aig

// Frame is a boolean valuation of every object for one time step,
// indexed by ObjID.
type Frame []bool

// Simulate evaluates nFrames of concrete simulation given the inputs
// for each frame (one bool per PI, in PI order) and an initial state
// (one bool per register, in register-allocation order — the RegOut's
// value at frame 0). It returns one Frame per time step.
func (m *Manager) Simulate(piInputs [][]bool, initState []bool) []Frame {
	nFrames := len(piInputs)
	frames := make([]Frame, nFrames)

	regOuts := m.regOutList()
	state := make([]bool, len(regOuts))
	copy(state, initState)

	for f := 0; f < nFrames; f++ {
		val := make(Frame, m.NObjs())
		val[ConstID] = false

		for i, pi := range m.piIDs {
			if i < len(piInputs[f]) {
				val[pi] = piInputs[f][i]
			}
		}
		for i, ro := range regOuts {
			val[ro] = state[i]
		}

		for id := ObjID(1); int(id) < m.NObjs(); id++ {
			switch m.kinds[id] {
			case KindAnd:
				a := val[m.fanin0[id]] != m.compl0[id]
				b := val[m.fanin1[id]] != m.compl1[id]
				val[id] = a && b
			case KindRegIn, KindPropOut:
				val[id] = val[m.fanin0[id]] != m.compl0[id]
			}
		}

		frames[f] = val
		for i, ro := range regOuts {
			ri := m.regInOf[ro]
			state[i] = val[ri]
		}
	}
	return frames
}

func (m *Manager) regOutList() []ObjID {
	outs := make([]ObjID, 0)
	for id := ObjID(1); int(id) < m.NObjs(); id++ {
		if m.kinds[id] == KindRegOut {
			outs = append(outs, id)
		}
	}
	return outs
}

// Ternary is a three-valued simulation lattice: {0,1,X}. X means
// "driven by at least one unabstracted/unknown input" — used by
// refine.Manager to verify whether a counter-example remains spurious
// against the current abstraction.
type Ternary uint8

const (
	Ter0 Ternary = iota
	Ter1
	TerX
)

func TernaryFromBool(b bool) Ternary {
	if b {
		return Ter1
	}
	return Ter0
}

func (t Ternary) Compl() Ternary {
	switch t {
	case Ter0:
		return Ter1
	case Ter1:
		return Ter0
	default:
		return TerX
	}
}

func ternaryAnd(a, b Ternary) Ternary {
	if a == Ter0 || b == Ter0 {
		return Ter0
	}
	if a == Ter1 && b == Ter1 {
		return Ter1
	}
	return TerX
}

// TernaryAnd is the exported form of the ternary AND lattice operation,
// for callers outside this package that need to fold ternary values one
// gate at a time instead of through TernarySimulate's whole-circuit
// sweep (refine.Manager.Verify restricts the sweep to a CEX's cone, so
// it cannot stop at the frontier using TernarySimulate directly).
func TernaryAnd(a, b Ternary) Ternary { return ternaryAnd(a, b) }

// TernaryFrame is a ternary valuation of every object, one per frame.
type TernaryFrame []Ternary

// TernarySimulate runs ternary simulation across nFrames. piValues
// supplies a ternary value per PI per frame (TerX to mark an
// abstracted-away input); initState supplies the register values at
// frame 0, also possibly TerX.
func (m *Manager) TernarySimulate(piValues []TernaryFrame, initState TernaryFrame) []TernaryFrame {
	nFrames := len(piValues)
	frames := make([]TernaryFrame, nFrames)

	regOuts := m.regOutList()
	state := make(TernaryFrame, len(regOuts))
	copy(state, initState)

	for f := 0; f < nFrames; f++ {
		val := make(TernaryFrame, m.NObjs())
		val[ConstID] = Ter0

		for i, pi := range m.piIDs {
			if i < len(piValues[f]) {
				val[pi] = piValues[f][i]
			} else {
				val[pi] = TerX
			}
		}
		for i, ro := range regOuts {
			val[ro] = state[i]
		}

		for id := ObjID(1); int(id) < m.NObjs(); id++ {
			switch m.kinds[id] {
			case KindAnd:
				a := val[m.fanin0[id]]
				if m.compl0[id] {
					a = a.Compl()
				}
				b := val[m.fanin1[id]]
				if m.compl1[id] {
					b = b.Compl()
				}
				val[id] = ternaryAnd(a, b)
			case KindRegIn, KindPropOut:
				x := val[m.fanin0[id]]
				if m.compl0[id] {
					x = x.Compl()
				}
				val[id] = x
			}
		}

		frames[f] = val
		for i, ro := range regOuts {
			ri := m.regInOf[ro]
			state[i] = val[ri]
		}
	}
	return frames
}
