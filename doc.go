/*
Package pllsim provides discrete-time numerical models of the feedback
circuits used in timing recovery: an analog phase-locked loop (phase detector,
loop filter and voltage-controlled oscillator), a simplified digital PLL
(a quantized delay line) and a clock-and-data-recovery sampler.

Each model is a pure function of its configuration and of an explicit random
Source. Nothing is retained between calls, so an orchestrator (a GUI, the
pllsim command, a notebook) can rerun a whole simulation every time a
parameter changes:

	res, err := pllsim.SimulateLoop(pllsim.DefaultLoopConfig(), pllsim.NewSource(1))
	if err != nil {
		// err is a *ParamError naming the offending field.
	}
	if err := res.Overflow(); err != nil {
		// the loop diverged. This is a valid outcome, res can still be plotted.
	}

The analog loop can also be driven one step at a time with a Loop, and a
parameter can be swept across a worker pool with Sweep.

The building blocks the models are made of live in the siglib package.

*/
package pllsim
