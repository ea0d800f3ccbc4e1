// Package gate implements the GLA object store: a compact array of
// gate-level objects built once from an aig.Manager and a
// cnf.Generator, each holding its fanins, kind, and abstraction flag.
// Per-frame SAT variables are owned by the encoder package, not here:
// they belong conceptually to the gate object, but it is the encoder
// that allocates into them.
package gate

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/boolabs/gla/aig"
	"github.com/boolabs/gla/aig/cnf"
	"github.com/boolabs/gla/core"
)

// Object is one gate-level object: kind, fanins (object IDs, ≤4 per
// the CNF of a binary AND plus gate-output var), and the polarity bit
// of the first fanin.
type Object struct {
	Kind        aig.Kind
	Fanins      [4]int32
	NFanins     int
	FaninPhase0 bool
}

// Store is the GLA object store: object ID 0 is the AIG's Const0 node;
// IDs 1..N are the remaining gates in topological order, fanins strictly lower ID
// except RegOut, whose fanin is a temporal (not structural) reference
// to its companion RegIn's driver.
type Store struct {
	AIG *aig.Manager

	Objects []Object

	// Abstracted holds one bit per object ID (a gen/kill-style bitset
	// indexed by node ID) instead of a bool field per object.
	Abstracted *bitset.BitSet
}

// Build constructs a Store from m, deriving each object's fanins from
// the CNF generator's per-kind fanin enumeration, and seeds the
// abstraction with the caller-supplied initial gate classes. An empty
// seed is rejected as a caller error.
func Build(m *aig.Manager, gen *cnf.Generator, seed []aig.ObjID) (*Store, error) {
	if len(seed) == 0 {
		return nil, core.NewLogicError("gate", "Build", "empty initial abstraction")
	}

	objs := make([]Object, m.NObjs())
	for id := aig.ObjID(0); int(id) < m.NObjs(); id++ {
		k := m.Kind(id)
		objs[id].Kind = k

		switch k {
		case aig.KindAnd:
			fanins := cnf.FaninVars(m, id, k)
			_, c0 := m.Fanin0(id)
			objs[id].Fanins[0] = int32(fanins[0])
			objs[id].Fanins[1] = int32(fanins[1])
			objs[id].NFanins = 2
			objs[id].FaninPhase0 = c0
		case aig.KindRegIn, aig.KindPropOut:
			fanins := cnf.FaninVars(m, id, k)
			_, c0 := m.Fanin0(id)
			objs[id].Fanins[0] = int32(fanins[0])
			objs[id].NFanins = 1
			objs[id].FaninPhase0 = c0
		case aig.KindRegOut:
			ri, ok := m.RegIn(id)
			if !ok {
				return nil, core.NewLogicErrorAt("gate", "Build", "register has no driver", int(id), 0)
			}
			driver, phase := m.Fanin0(ri)
			objs[id].Fanins[0] = int32(driver)
			objs[id].NFanins = 1
			objs[id].FaninPhase0 = phase
		}
	}

	s := &Store{
		AIG:        m,
		Objects:    objs,
		Abstracted: bitset.New(uint(len(objs))),
	}
	for _, id := range seed {
		if int(id) >= len(objs) {
			return nil, core.NewLogicErrorAt("gate", "Build", "seed object out of range", int(id), 0)
		}
		s.Abstracted.Set(uint(id))
	}
	return s, nil
}

func (s *Store) NObjs() int { return len(s.Objects) }

func (s *Store) Object(id aig.ObjID) Object { return s.Objects[id] }

func (s *Store) IsAbstracted(id aig.ObjID) bool { return s.Abstracted.Test(uint(id)) }

func (s *Store) SetAbstracted(id aig.ObjID, v bool) {
	if v {
		s.Abstracted.Set(uint(id))
	} else {
		s.Abstracted.Clear(uint(id))
	}
}

// AbstractionStats reports the size and composition of the current
// abstraction.
type AbstractionStats struct {
	Total      int
	Abstracted int
	Ands       int
	Registers  int
}

func (s *Store) Stats() AbstractionStats {
	st := AbstractionStats{Total: s.NObjs()}
	for id := aig.ObjID(0); int(id) < s.NObjs(); id++ {
		if !s.IsAbstracted(id) {
			continue
		}
		st.Abstracted++
		switch s.Objects[id].Kind {
		case aig.KindAnd:
			st.Ands++
		case aig.KindRegOut, aig.KindRegIn:
			st.Registers++
		}
	}
	return st
}

func (s AbstractionStats) String() string {
	return fmt.Sprintf("total: %d, abstracted: %d, ands: %d, registers: %d",
		s.Total, s.Abstracted, s.Ands, s.Registers)
}

// Ratio returns the fraction of all objects currently abstracted, used
// by the driver's ratio-exceeded termination check.
func (st AbstractionStats) Ratio() float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Abstracted) / float64(st.Total)
}
