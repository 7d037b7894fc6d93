// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pllsim

import (
	"math"

	"github.com/db47h/pllsim/siglib"
)

// Digital delay defaults.
const (
	DefaultDelay      = 20
	DefaultDelaySteps = 1000
)

// delaySpan is the phase span of the delay line input sin(linspace(0, 40, n)).
const delaySpan = 40

// DelayConfig is the configuration of a SimulateDelay run.
//
type DelayConfig struct {
	Delay int // shift in samples, >= 0
	Steps int // number of samples, > 0
}

// DefaultDelayConfig returns the default delay line configuration.
//
func DefaultDelayConfig() DelayConfig {
	return DelayConfig{Delay: DefaultDelay, Steps: DefaultDelaySteps}
}

// Validate checks the configuration and returns a *ParamError naming the first
// offending field.
//
func (c DelayConfig) Validate() error {
	v := validator{model: "delay"}
	v.steps(c.Steps)
	if c.Delay < 0 {
		v.fail("delay", float64(c.Delay), "must be >= 0")
	}
	return v.err
}

// DelayFromFloat converts a delay expressed as a float to a sample count by
// truncating toward zero.
//
func DelayFromFloat(f float64) (int, error) {
	v := validator{model: "delay"}
	if v.finite("delay", f) {
		f = math.Trunc(f)
		if f < 0 || f > math.MaxInt32 {
			v.fail("delay", f, "out of range")
		}
	}
	if v.err != nil {
		return 0, v.err
	}
	return int(f), nil
}

// DelayResult holds the delay line input and its delayed copy.
//
type DelayResult struct {
	Config  DelayConfig
	Input   Sequence
	Delayed Sequence
}

// SimulateDelay samples a reference sine wave and shifts it circularly by
// c.Delay samples. A delay of 0 or of any multiple of c.Steps returns a copy of
// the input.
//
func SimulateDelay(c DelayConfig) (*DelayResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	in := Sequence(siglib.Linspace(0, delaySpan, c.Steps))
	for i, x := range in {
		in[i] = math.Sin(x)
	}
	return &DelayResult{
		Config:  c,
		Input:   in,
		Delayed: siglib.Roll(in, c.Delay),
	}, nil
}

// Len returns the number of samples.
//
func (r *DelayResult) Len() int { return len(r.Input) }
