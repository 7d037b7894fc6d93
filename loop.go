// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pllsim

import (
	"math"

	"github.com/db47h/pllsim/siglib"
	"github.com/pkg/errors"
)

// Analog loop defaults.
const (
	DefaultDT        = 1e-4
	DefaultLoopSteps = 2000
)

// LoopParameters configures the analog PLL. Values are immutable for the
// duration of a run.
//
type LoopParameters struct {
	Kpd            float64 // phase detector gain
	Kvco           float64 // VCO gain
	Fref           float64 // reference frequency
	LoopFilterGain float64 // integrator gain
	NoiseLevel     float64 // stddev of the noise added to the detector output
}

// DefaultLoopParameters returns the default analog loop parameters.
//
func DefaultLoopParameters() LoopParameters {
	return LoopParameters{
		Kpd:            3,
		Kvco:           10,
		Fref:           5,
		LoopFilterGain: 0.01,
		NoiseLevel:     0.05,
	}
}

// Loop parameter names as accepted by LoopParameters.With.
const (
	FieldKpd            = "kpd"
	FieldKvco           = "kvco"
	FieldFref           = "fref"
	FieldLoopFilterGain = "loop_filter"
	FieldNoiseLevel     = "noise"
)

// With returns a copy of p with the named field set to v.
//
func (p LoopParameters) With(field string, v float64) (LoopParameters, error) {
	switch field {
	case FieldKpd:
		p.Kpd = v
	case FieldKvco:
		p.Kvco = v
	case FieldFref:
		p.Fref = v
	case FieldLoopFilterGain:
		p.LoopFilterGain = v
	case FieldNoiseLevel:
		p.NoiseLevel = v
	default:
		return p, errors.Errorf("unknown loop parameter %q", field)
	}
	return p, nil
}

func (p LoopParameters) validate(v *validator) {
	v.nonNegative(FieldKpd, p.Kpd)
	v.nonNegative(FieldKvco, p.Kvco)
	v.positive(FieldFref, p.Fref)
	v.nonNegative(FieldLoopFilterGain, p.LoopFilterGain)
	v.nonNegative(FieldNoiseLevel, p.NoiseLevel)
}

// LoopConfig is the configuration of a SimulateLoop run.
//
type LoopConfig struct {
	LoopParameters
	Steps int     // number of steps, > 0
	DT    float64 // step length, > 0
}

// DefaultLoopConfig returns a configuration with the default parameters,
// step count and step length.
//
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		LoopParameters: DefaultLoopParameters(),
		Steps:          DefaultLoopSteps,
		DT:             DefaultDT,
	}
}

// Validate checks the configuration and returns a *ParamError naming the first
// offending field.
//
func (c LoopConfig) Validate() error {
	v := validator{model: "loop"}
	v.steps(c.Steps)
	v.positive("dt", c.DT)
	c.LoopParameters.validate(&v)
	return v.err
}

// LoopState is the state of the analog loop between two steps.
//
type LoopState struct {
	PhaseRef float64 // reference phase (radians)
	PhaseVCO float64 // VCO phase (radians)
	FreqVCO  float64 // VCO frequency
	Filter   float64 // loop filter accumulator
}

// InitialLoopState returns the state of a loop before its first step: all
// zero, with the VCO running at the reference frequency.
//
func InitialLoopState(p LoopParameters) LoopState {
	return LoopState{FreqVCO: p.Fref}
}

// LoopSample is the output of one step of the analog loop.
//
type LoopSample struct {
	PD     float64 // phase detector output, noise included
	Filter float64 // loop filter state
	Freq   float64 // new VCO frequency
}

// Next advances s by one step of length dt. noise is a standard normal sample,
// scaled by p.NoiseLevel and added to the phase detector output.
//
// The update order is significant: reference phase, VCO phase (at the previous
// VCO frequency), phase detector, loop filter and finally VCO frequency.
//
func (s LoopState) Next(p LoopParameters, dt, noise float64) (LoopState, LoopSample) {
	s.PhaseRef = siglib.AdvancePhase(s.PhaseRef, p.Fref, dt)
	s.PhaseVCO = siglib.AdvancePhase(s.PhaseVCO, s.FreqVCO, dt)

	pd := siglib.PhaseDetector{Gain: p.Kpd}.Output(s.PhaseRef, s.PhaseVCO)
	pd += p.NoiseLevel * noise

	s.Filter = siglib.Integrator{Gain: p.LoopFilterGain}.Next(s.Filter, pd)
	s.FreqVCO = siglib.VCO{Center: p.Fref, Gain: p.Kvco}.Frequency(s.Filter)

	return s, LoopSample{PD: pd, Filter: s.Filter, Freq: s.FreqVCO}
}

// Loop is an analog PLL that can be advanced one step at a time.
//
type Loop struct {
	p     LoopParameters
	dt    float64
	src   Source
	s     LoopState
	steps int
}

// NewLoop returns a new Loop in its initial state.
//
func NewLoop(p LoopParameters, dt float64, src Source) (*Loop, error) {
	v := validator{model: "loop"}
	v.positive("dt", dt)
	p.validate(&v)
	v.source(src)
	if v.err != nil {
		return nil, v.err
	}
	return &Loop{p: p, dt: dt, src: src, s: InitialLoopState(p)}, nil
}

// Step advances the loop by one step and returns its output.
//
func (l *Loop) Step() LoopSample {
	var smp LoopSample
	l.s, smp = l.s.Next(l.p, l.dt, l.src.NormFloat64())
	l.steps++
	return smp
}

// State returns the current loop state.
//
func (l *Loop) State() LoopState { return l.s }

// Steps returns the value of the step counter.
//
func (l *Loop) Steps() int { return l.steps }

// LoopResult holds the time-aligned output sequences of an analog loop run.
//
type LoopResult struct {
	Config LoopConfig
	PD     Sequence // phase detector output
	Filter Sequence // loop filter state
	Freq   Sequence // VCO frequency
	Final  LoopState
}

// SimulateLoop runs the analog loop for c.Steps steps.
//
// A diverging loop is not an error: the returned result holds the non-finite
// samples and its Overflow method reports them.
//
func SimulateLoop(c LoopConfig, src Source) (*LoopResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	l, err := NewLoop(c.LoopParameters, c.DT, src)
	if err != nil {
		return nil, err
	}
	r := &LoopResult{
		Config: c,
		PD:     make(Sequence, c.Steps),
		Filter: make(Sequence, c.Steps),
		Freq:   make(Sequence, c.Steps),
	}
	for i := 0; i < c.Steps; i++ {
		smp := l.Step()
		r.PD[i], r.Filter[i], r.Freq[i] = smp.PD, smp.Filter, smp.Freq
	}
	r.Final = l.State()
	return r, nil
}

// Len returns the number of simulated steps.
//
func (r *LoopResult) Len() int { return len(r.Freq) }

// Overflow returns an *OverflowError if any output sample is not finite.
//
func (r *LoopResult) Overflow() error {
	return overflow([]string{"pd", "filter", "freq"}, r.PD, r.Filter, r.Freq)
}

// LockStep returns the first step from which the VCO frequency stays within tol
// of the reference frequency until the end of the run, or -1 if the loop never
// settles.
//
func (r *LoopResult) LockStep(tol float64) int {
	lock := -1
	for i := len(r.Freq) - 1; i >= 0; i-- {
		if !(math.Abs(r.Freq[i]-r.Config.Fref) <= tol) {
			break
		}
		lock = i
	}
	return lock
}
