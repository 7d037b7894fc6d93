// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pllsim

import (
	"github.com/db47h/pllsim/siglib"
)

// CDR defaults.
const (
	DefaultJitter   = 0.2
	DefaultCDRSteps = 1000
)

// cdrSpan is the phase span of the sampling clock sin(linspace(0, 50, n)).
const cdrSpan = 50

// CDRConfig is the configuration of a SimulateCDR run.
//
type CDRConfig struct {
	Jitter float64 // stddev of the phase jitter, >= 0
	Steps  int     // number of samples, > 0
}

// DefaultCDRConfig returns the default CDR configuration.
//
func DefaultCDRConfig() CDRConfig {
	return CDRConfig{Jitter: DefaultJitter, Steps: DefaultCDRSteps}
}

// Validate checks the configuration and returns a *ParamError naming the first
// offending field.
//
func (c CDRConfig) Validate() error {
	v := validator{model: "cdr"}
	v.steps(c.Steps)
	v.nonNegative("jitter", c.Jitter)
	return v.err
}

// CDRResult holds the data bits, the ideal sampling clock and the recovered
// clock. All samples are 0 or 1.
//
type CDRResult struct {
	Config    CDRConfig
	Data      Sequence
	Clock     Sequence
	Recovered Sequence
}

// SimulateCDR draws a random bit stream and samples it with an ideal clock and
// with a jittered one. The jitter is applied to the clock phase before
// slicing.
//
// The source is consumed in a fixed order: c.Steps bits, then c.Steps normal
// samples, regardless of c.Jitter. For a given seed the data bits do not depend
// on the jitter amplitude.
//
func SimulateCDR(c CDRConfig, src Source) (*CDRResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	v := validator{model: "cdr"}
	if v.source(src); v.err != nil {
		return nil, v.err
	}

	data := make(Sequence, c.Steps)
	for i := range data {
		data[i] = float64(src.Intn(2))
	}

	phase := siglib.Linspace(0, cdrSpan, c.Steps)
	jittered := make([]float64, c.Steps)
	for i, p := range phase {
		j := src.NormFloat64()
		if c.Jitter > 0 {
			p += c.Jitter * j
		}
		jittered[i] = p
	}

	return &CDRResult{
		Config:    c,
		Data:      data,
		Clock:     siglib.SliceSin(phase),
		Recovered: siglib.SliceSin(jittered),
	}, nil
}

// Len returns the number of samples.
//
func (r *CDRResult) Len() int { return len(r.Clock) }

// Mismatches returns the number of samples where the recovered clock differs
// from the ideal clock.
//
func (r *CDRResult) Mismatches() int {
	n := 0
	for i := range r.Clock {
		if r.Clock[i] != r.Recovered[i] {
			n++
		}
	}
	return n
}

// Edges returns the number of transitions of the ideal clock.
//
func (r *CDRResult) Edges() int {
	return edges(r.Clock)
}

// RecoveredEdges returns the number of transitions of the recovered clock.
//
func (r *CDRResult) RecoveredEdges() int {
	return edges(r.Recovered)
}

func edges(s Sequence) int {
	n := 0
	for i := 1; i < len(s); i++ {
		if s[i] != s[i-1] {
			n++
		}
	}
	return n
}
