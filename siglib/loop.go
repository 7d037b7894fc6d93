// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package siglib

import "math"

// PhaseDetector is a multiplying (sine) phase detector.
//
//	Inputs: ref, vco (radians)
//	Function: out = Gain·sin(ref - vco)
//
type PhaseDetector struct {
	Gain float64
}

// Output returns the detector output for the given phases.
//
func (pd PhaseDetector) Output(ref, vco float64) float64 {
	return pd.Gain * math.Sin(ref-vco)
}

// Integrator is a pure integrator loop filter.
//
//	Function: acc(t) = acc(t-1) + Gain·in(t)
//
type Integrator struct {
	Gain float64
}

// Next returns the new accumulator value.
//
func (f Integrator) Next(acc, in float64) float64 {
	return acc + f.Gain*in
}

// VCO is a linear voltage controlled oscillator.
//
//	Function: freq = Center + Gain·control
//
type VCO struct {
	Center float64
	Gain   float64
}

// Frequency returns the oscillator frequency for the given control input.
//
func (v VCO) Frequency(control float64) float64 {
	return v.Center + v.Gain*control
}
