// Package cnf derives Tseitin-style CNF clauses for AIG objects — an
// external CNF-generator collaborator the rest of this module assumes
// exists. It applies the Tseitin transform directly to aig.Manager
// objects.
package cnf

import "github.com/boolabs/gla/aig"

// Generator produces the clause template for one object at a time,
// given the SAT variables already allocated for it and its fanins. It
// has no state of its own: the caller (encoder.Encoder) owns variable
// allocation and clause storage, matching giaAbsGla.c's
// Gla_ManAddClauses, which reads variables out of the encoder's map
// rather than owning them.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Lit is a CNF literal over an opaque solver variable plus polarity,
// independent of encoder.Lit so this package has no dependency on the
// encoder.
type Lit struct {
	Var int32
	Neg bool
}

func lit(v int32, neg bool) Lit { return Lit{Var: v, Neg: neg} }

// FaninVars identifies which fanins of k the caller must have
// variables allocated for before calling ClausesFor. Matches
// Gla_ManCollectFanins's per-kind fanin enumeration.
func FaninVars(m *aig.Manager, id aig.ObjID, k aig.Kind) []aig.ObjID {
	switch k {
	case aig.KindAnd:
		f0id, _ := m.Fanin0(id)
		f1id, _ := m.Fanin1(id)
		return []aig.ObjID{f0id, f1id}
	case aig.KindRegIn, aig.KindPropOut:
		f0id, _ := m.Fanin0(id)
		return []aig.ObjID{f0id}
	default:
		return nil
	}
}

// ClausesFor returns the Tseitin clauses for object id of kind k, given
// the solver variable assigned to id (vOut) and, for And/RegIn/PropOut,
// the variables assigned to its fanins in the same order FaninVars
// returns them (vIns).
//
// Const0 gets a single unit clause forcing it false. PI and RegOut
// objects are free variables with no clauses of their own. RegIn and
// PropOut are plain buffers (optionally inverting); And gets the usual
// three-clause Tseitin encoding.
func ClausesFor(m *aig.Manager, id aig.ObjID, k aig.Kind, vOut int32, vIns []int32) [][]Lit {
	switch k {
	case aig.KindConst0:
		return [][]Lit{{lit(vOut, true)}}
	case aig.KindPI, aig.KindRegOut:
		return nil
	case aig.KindRegIn, aig.KindPropOut:
		_, c0 := m.Fanin0(id)
		a := vIns[0]
		// vOut <-> (a XOR c0)
		if !c0 {
			return [][]Lit{
				{lit(vOut, true), lit(a, false)},
				{lit(vOut, false), lit(a, true)},
			}
		}
		return [][]Lit{
			{lit(vOut, true), lit(a, true)},
			{lit(vOut, false), lit(a, false)},
		}
	case aig.KindAnd:
		_, c0 := m.Fanin0(id)
		_, c1 := m.Fanin1(id)
		a, b := vIns[0], vIns[1]
		la := lit(a, c0)
		lb := lit(b, c1)
		// vOut <-> (la AND lb)
		return [][]Lit{
			{lit(vOut, true), la},
			{lit(vOut, true), lb},
			{lit(vOut, false), la.negated(), lb.negated()},
		}
	default:
		return nil
	}
}

func (l Lit) negated() Lit { return Lit{Var: l.Var, Neg: !l.Neg} }
