// Package main demonstrates end-to-end usage of the gate-level
// abstraction/refinement core, plus the classical propositional engine
// it is built alongside of.
package main

import (
	"fmt"

	"github.com/boolabs/gla"
	"github.com/boolabs/gla/aig"
	"github.com/boolabs/gla/circuitlang"
	"github.com/boolabs/gla/classical"
	"github.com/boolabs/gla/core"
	"github.com/boolabs/gla/driver"
)

// allObjects returns every non-const object ID, for examples that want
// to seed the abstraction with the whole circuit.
func allObjects(m *aig.Manager) []aig.ObjID {
	ids := make([]aig.ObjID, 0, m.NObjs()-1)
	for id := aig.ObjID(1); int(id) < m.NObjs(); id++ {
		ids = append(ids, id)
	}
	return ids
}

// ExampleBoundedProof builds a 1-bit register reset to 0 whose
// next-state value is itself, so it can never go high. The driver
// should exhaust frame_max without a counter-example.
func ExampleBoundedProof() {
	fmt.Println("=== Bounded proof: a register that latches at reset ===")

	m, err := circuitlang.Build(`
		reg r
		r.next = r
		po = r
	`)
	if err != nil {
		fmt.Printf("build error: %v\n", err)
		return
	}

	result, err := gla.Prove(m, allObjects(m), 5)
	if err != nil {
		fmt.Printf("prove error: %v\n", err)
		return
	}
	fmt.Printf("outcome: %s, last frame: %d\n", result.Outcome, result.LastFrame)
	fmt.Printf("stats: %s\n", result.Stats)
	fmt.Println()
}

// ExampleFalsified builds a single-PI circuit whose property output is
// the negation of that PI: a counter-example exists at frame 0
// whenever the PI is driven false.
func ExampleFalsified() {
	fmt.Println("=== Falsified: PO = !PI is trivially reachable ===")

	m, err := circuitlang.Build(`
		pi x
		po = !x
	`)
	if err != nil {
		fmt.Printf("build error: %v\n", err)
		return
	}

	params := driver.Default()
	params.FrameMax = 1
	result, err := gla.Run(m, allObjects(m), params)
	if err != nil {
		fmt.Printf("run error: %v\n", err)
		return
	}
	fmt.Printf("outcome: %s\n", result.Outcome)
	if result.CEX != nil {
		fmt.Printf("counter-example PI bits, frame 0: %v\n", result.CEX.Bits[0])
	}
	fmt.Println()
}

// ExampleClassicalEngine demonstrates the classical propositional
// system registered against core.Engine — orthogonal to the hardware
// model above, kept here as reference/demo material.
func ExampleClassicalEngine() {
	fmt.Println("=== Classical propositional engine ===")

	engine := core.NewLogicEngine()
	engine.RegisterSystem("classical", classical.NewClassicalSystem())

	sys, ok := engine.GetSystem("classical")
	if !ok {
		fmt.Println("classical system not registered")
		return
	}

	ctx := core.NewEvaluationContext()
	ctx.Set("A", true)
	ctx.Set("B", false)

	result, err := sys.Evaluate("A & !B", ctx)
	if err != nil {
		fmt.Printf("evaluate error: %v\n", err)
		return
	}
	fmt.Printf("A & !B with A=true, B=false: %v\n", result)

	variables := []string{"A", "B"}
	deMorgan := func(inputs ...bool) bool {
		return classical.DeMorganLaw(inputs[0], inputs[1])
	}
	fmt.Printf("De Morgan's law is a tautology: %v\n", classical.Tautology(variables, deMorgan))
	fmt.Println()
}

func main() {
	fmt.Println("GLA Core — Worked Examples")
	fmt.Println("==========================")
	fmt.Println()

	ExampleBoundedProof()
	ExampleFalsified()
	ExampleClassicalEngine()

	fmt.Println("All examples completed successfully!")
}
