// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package siglib provides a library of reusable signal blocks for pllsim.
//
// Blocks are small value types or pure functions. They hold no state between
// calls: any state (accumulator, phase) is passed in and returned by the
// caller so that a simulation can be expressed as a fold over steps.
//
package siglib

import "math"

// TwoPi is 2π.
const TwoPi = 2 * math.Pi

// Linspace returns n evenly spaced samples over the closed interval
// [start, stop].
//
//	Linspace(0, 1, 5) // []float64{0, 0.25, 0.5, 0.75, 1}
//
// Linspace returns nil if n <= 0 and []float64{start} if n == 1.
//
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Roll returns a copy of x circularly shifted forward by k samples: the last k
// samples wrap around to the front. k may be negative or larger than len(x).
//
//	Roll([]float64{1, 2, 3, 4}, 1) // []float64{4, 1, 2, 3}
//
func Roll(x []float64, k int) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	k %= n
	if k < 0 {
		k += n
	}
	copy(out[k:], x[:n-k])
	copy(out[:k], x[n-k:])
	return out
}

// Slice is a zero-threshold slicer.
//
//	Function: out = 1 if in > 0, else 0
//
func Slice(in float64) float64 {
	if in > 0 {
		return 1
	}
	return 0
}

// SliceSin returns Slice(sin(phase)) for every phase sample.
//
func SliceSin(phase []float64) []float64 {
	out := make([]float64, len(phase))
	for i, p := range phase {
		out[i] = Slice(math.Sin(p))
	}
	return out
}

// AdvancePhase integrates an oscillator running at freq over one step of
// length dt (explicit Euler).
//
//	Function: out = phase + 2π·freq·dt
//
func AdvancePhase(phase, freq, dt float64) float64 {
	return phase + TwoPi*freq*dt
}
