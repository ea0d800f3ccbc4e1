// Package driver implements the abstraction/refinement driver: the
// frame-by-frame state machine with an inner refinement loop that
// interleaves incremental SAT solving, UNSAT-core extraction,
// spurious-CEX refinement, and rollback-capable state updates.
package driver

import (
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Params are the driver's tunable parameters, a plain struct with a
// Default constructor.
type Params struct {
	FrameStart int
	FrameMax   int

	ConflictLimit int64
	Deadline      time.Time

	// MinAbstractionRatio stops the run once the abstraction covers at
	// least this fraction of all objects.
	MinAbstractionRatio float64

	// Trace, if set, receives one line per frame of progress, the
	// same role as ABC's Gia_GlaPerform verbose print lines, without
	// pulling in a logging dependency.
	Trace func(string)

	// OnAbstraction, if set, is called on every odd frame with the
	// current abstraction bitmap — a side observation mirroring
	// Gia_GlaDumpAbsracted's periodic abstraction dump.
	OnAbstraction func(frame int, abs *bitset.BitSet)

	// PropagateFanout is forwarded to refine.Manager.
	PropagateFanout bool
}

// Default returns conservative defaults: no conflict limit, no
// deadline, and a generous 0.95 abstraction-ratio ceiling.
func Default() Params {
	return Params{
		FrameStart:          0,
		FrameMax:            100,
		ConflictLimit:       0,
		MinAbstractionRatio: 0.95,
	}
}
