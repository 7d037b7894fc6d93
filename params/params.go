// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package params provides the range-bounded, defaulted parameters that user
// interfaces feed into the pllsim models.
//
// A Registry holds one value per parameter. Values are checked against the
// parameter range when set; the models still validate their own domain.
//
package params

import (
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/db47h/pllsim"
	"github.com/pkg/errors"
)

// Parameter names.
const (
	Kpd            = pllsim.FieldKpd
	Kvco           = pllsim.FieldKvco
	Fref           = pllsim.FieldFref
	LoopFilterGain = pllsim.FieldLoopFilterGain
	NoiseLevel     = pllsim.FieldNoiseLevel
	Delay          = "delay"
	Jitter         = "jitter"
)

// A Param describes a range-bounded parameter.
//
type Param struct {
	Name    string
	Label   string
	Model   string // model consuming the parameter
	Min     float64
	Max     float64
	Default float64
	Integer bool // value is truncated to an integer
}

// Format returns v formatted for display.
//
func (p *Param) Format(v float64) string {
	if p.Integer {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RangeError reports a value outside of a parameter range.
//
type RangeError struct {
	Param *Param
	Value float64
}

func (e *RangeError) Error() string {
	return e.Param.Name + " = " + strconv.FormatFloat(e.Value, 'g', -1, 64) +
		" out of range [" + e.Param.Format(e.Param.Min) + ", " + e.Param.Format(e.Param.Max) + "]"
}

// Cause returns pllsim.ErrInvalidParameter.
//
func (e *RangeError) Cause() error { return pllsim.ErrInvalidParameter }

// Unwrap returns pllsim.ErrInvalidParameter.
//
func (e *RangeError) Unwrap() error { return pllsim.ErrInvalidParameter }

// Defaults returns the parameter set of the simulator.
//
func Defaults() []Param {
	return []Param{
		{Name: Kpd, Label: "Phase Detector Gain (Kpd)", Model: "loop", Min: 0.1, Max: 10, Default: 3},
		{Name: Kvco, Label: "VCO Gain (Kvco)", Model: "loop", Min: 0.1, Max: 30, Default: 10},
		{Name: Fref, Label: "Reference Frequency", Model: "loop", Min: 1, Max: 20, Default: 5},
		{Name: LoopFilterGain, Label: "Loop Filter Constant", Model: "loop", Min: 0.001, Max: 0.1, Default: 0.01},
		{Name: NoiseLevel, Label: "Noise Level", Model: "loop", Min: 0, Max: 0.5, Default: 0.05},
		{Name: Delay, Label: "Digital Delay (samples)", Model: "delay", Min: 1, Max: 100, Default: 20, Integer: true},
		{Name: Jitter, Label: "Jitter Amplitude", Model: "cdr", Min: 0, Max: 1, Default: 0.2},
	}
}

// Registry holds the current value of a set of parameters.
//
type Registry struct {
	mu     sync.RWMutex
	params map[string]*Param
	order  []string
	values map[string]float64
}

// NewRegistry returns a new registry for the given parameters, each set to its
// default value. It panics if a name is duplicated or if a default value is
// out of range.
//
func NewRegistry(ps ...Param) *Registry {
	r := &Registry{
		params: make(map[string]*Param, len(ps)),
		values: make(map[string]float64, len(ps)),
	}
	for i := range ps {
		p := ps[i]
		if _, ok := r.params[p.Name]; ok {
			panic("duplicate parameter " + p.Name)
		}
		if !p.inRange(p.Default) {
			panic("default value out of range for parameter " + p.Name)
		}
		r.params[p.Name] = &p
		r.order = append(r.order, p.Name)
		r.values[p.Name] = p.Default
	}
	return r
}

// Default returns a registry with the simulator parameters set to their
// defaults.
//
func Default() *Registry {
	return NewRegistry(Defaults()...)
}

func (p *Param) inRange(v float64) bool {
	return !math.IsNaN(v) && v >= p.Min && v <= p.Max
}

// Params returns the registered parameters in registration order.
//
func (r *Registry) Params() []*Param {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Param, len(r.order))
	for i, n := range r.order {
		out[i] = r.params[n]
	}
	return out
}

// Param returns the named parameter or nil.
//
func (r *Registry) Param(name string) *Param {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.params[name]
}

// Get returns the value of the named parameter. It panics if there is no such
// parameter.
//
func (r *Registry) Get(name string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[name]
	if !ok {
		panic("parameter " + name + " does not exist")
	}
	return v
}

// Set sets the value of the named parameter. Integer parameters are truncated
// toward zero before the range check.
//
func (r *Registry) Set(name string, v float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.params[name]
	if !ok {
		return errors.Errorf("unknown parameter %q", name)
	}
	if p.Integer {
		v = math.Trunc(v)
	}
	if !p.inRange(v) {
		return &RangeError{Param: p, Value: v}
	}
	r.values[name] = v
	return nil
}

// Apply parses an assignment list (see ParseAssignments) and sets every value.
// No value is changed if any assignment fails.
//
func (r *Registry) Apply(s string) error {
	as, err := ParseAssignments(s)
	if err != nil {
		return err
	}
	saved := r.Snapshot()
	for _, a := range as {
		if err := r.Set(a.Name, a.Value); err != nil {
			r.restore(saved)
			return err
		}
	}
	return nil
}

// Reset sets all parameters back to their default value.
//
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n, p := range r.params {
		r.values[n] = p.Default
	}
}

// Snapshot returns a copy of the current values.
//
func (r *Registry) Snapshot() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

func (r *Registry) restore(m map[string]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range m {
		r.values[k] = v
	}
}

// Names returns the sorted parameter names.
//
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}

// LoopParameters returns the analog loop parameters.
//
func (r *Registry) LoopParameters() pllsim.LoopParameters {
	return pllsim.LoopParameters{
		Kpd:            r.Get(Kpd),
		Kvco:           r.Get(Kvco),
		Fref:           r.Get(Fref),
		LoopFilterGain: r.Get(LoopFilterGain),
		NoiseLevel:     r.Get(NoiseLevel),
	}
}

// LoopConfig returns a loop configuration for the given step count.
//
func (r *Registry) LoopConfig(steps int) pllsim.LoopConfig {
	return pllsim.LoopConfig{LoopParameters: r.LoopParameters(), Steps: steps, DT: pllsim.DefaultDT}
}

// DelayConfig returns a delay line configuration for the given step count.
//
func (r *Registry) DelayConfig(steps int) (pllsim.DelayConfig, error) {
	d, err := pllsim.DelayFromFloat(r.Get(Delay))
	if err != nil {
		return pllsim.DelayConfig{}, err
	}
	return pllsim.DelayConfig{Delay: d, Steps: steps}, nil
}

// CDRConfig returns a CDR configuration for the given step count.
//
func (r *Registry) CDRConfig(steps int) pllsim.CDRConfig {
	return pllsim.CDRConfig{Jitter: r.Get(Jitter), Steps: steps}
}
