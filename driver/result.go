package driver

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/boolabs/gla/encoder"
)

// Outcome classifies the driver's termination.
type Outcome int

const (
	OutcomeBoundedProof Outcome = iota
	OutcomeFalsified
	OutcomeResourceOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBoundedProof:
		return "BoundedProof"
	case OutcomeFalsified:
		return "Falsified"
	default:
		return "ResourceOut"
	}
}

// ResourceOutReason further classifies an OutcomeResourceOut result.
type ResourceOutReason int

const (
	ReasonNone ResourceOutReason = iota
	ReasonTimeOut
	ReasonConflictLimit
	ReasonRatioExceeded
)

func (r ResourceOutReason) String() string {
	switch r {
	case ReasonTimeOut:
		return "TimeOut"
	case ReasonConflictLimit:
		return "ConflictLimit"
	case ReasonRatioExceeded:
		return "RatioExceeded"
	default:
		return "None"
	}
}

// CounterExample assigns each PI at each frame a 0/1 value.
// Bits[f][i] is PI i's value at frame f.
type CounterExample struct {
	Bits [][]bool
}

// Result is the single external-facing result type.
type Result struct {
	Outcome Outcome
	Reason  ResourceOutReason

	LastFrame int

	CEX *CounterExample

	FinalAbstraction *bitset.BitSet

	Stats Stats
}

// Stats aggregates driver-level counters plus the encoder's.
type Stats struct {
	FramesCompleted  int
	RefinementRounds int
	RollbackCommits  int
	Encoder          encoder.Stats
}

func (s Stats) String() string {
	return fmt.Sprintf("frames: %d, refinements: %d, rollbacks: %d, encoder: {%s}",
		s.FramesCompleted, s.RefinementRounds, s.RollbackCommits, s.Encoder)
}
