package pllsim_test

import (
	"fmt"

	"github.com/db47h/pllsim"
)

func ExampleSimulateDelay() {
	r, err := pllsim.SimulateDelay(pllsim.DelayConfig{Delay: 2, Steps: 5})
	if err != nil {
		panic(err)
	}
	fmt.Printf("input:   %.3f\n", []float64(r.Input))
	fmt.Printf("delayed: %.3f\n", []float64(r.Delayed))

	// Output:
	// input:   [0.000 -0.544 0.913 -0.988 0.745]
	// delayed: [-0.988 0.745 0.000 -0.544 0.913]
}

func ExampleSimulateLoop() {
	c := pllsim.DefaultLoopConfig()
	c.NoiseLevel = 0
	r, err := pllsim.SimulateLoop(c, pllsim.NewSource(1))
	if err != nil {
		panic(err)
	}
	// without noise the loop never leaves lock.
	fmt.Println(r.Len(), r.LockStep(1e-9), r.Overflow())

	c.Steps = 0
	_, err = pllsim.SimulateLoop(c, pllsim.NewSource(1))
	fmt.Println(err)

	// Output:
	// 2000 0 <nil>
	// loop: invalid parameter steps = 0: must be > 0
}

func ExampleLoop() {
	l, err := pllsim.NewLoop(pllsim.DefaultLoopParameters(), pllsim.DefaultDT, pllsim.NewSource(1))
	if err != nil {
		panic(err)
	}
	for l.Steps() < 10 {
		l.Step()
	}
	fmt.Println(l.Steps(), l.State().PhaseRef > 0)

	// Output:
	// 10 true
}
