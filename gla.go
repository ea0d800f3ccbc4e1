// Package gla wires the gate-level abstraction/refinement core's
// collaborators into a single entry point: given an AIG with exactly
// one property output and an initial abstraction seed, prove the
// property bounded up to some frame depth or return a concrete
// counter-example.
package gla

import (
	"github.com/boolabs/gla/aig"
	aigcnf "github.com/boolabs/gla/aig/cnf"
	"github.com/boolabs/gla/core"
	"github.com/boolabs/gla/driver"
	"github.com/boolabs/gla/encoder"
	"github.com/boolabs/gla/gate"
	"github.com/boolabs/gla/satinc"
)

// Run builds the object store, encoder, and driver for m and executes
// the abstraction/refinement loop, returning the single external
// result type.
//
// m must carry exactly one property output; inputs violating this are
// rejected before any solver work begins. seed must be non-empty,
// enforced by gate.Build.
func Run(m *aig.Manager, seed []aig.ObjID, params driver.Params) (*driver.Result, error) {
	pos := m.PropOuts()
	if len(pos) != 1 {
		return nil, core.NewLogicError("gla", "Run", "exactly one property output is required")
	}

	gen := aigcnf.NewGenerator()
	store, err := gate.Build(m, gen, seed)
	if err != nil {
		return nil, err
	}

	enc := encoder.New(store, gen, satinc.New())
	d := driver.New(store, enc, pos[0], params)
	return d.Run()
}

// Prove is a convenience wrapper around Run using driver.Default
// parameters overridden with the given frame bound.
func Prove(m *aig.Manager, seed []aig.ObjID, frameMax int) (*driver.Result, error) {
	params := driver.Default()
	params.FrameMax = frameMax
	return Run(m, seed, params)
}
