// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pllsim

import "math"

// Sequence is an ordered list of samples, one per simulation step.
//
type Sequence []float64

// Len returns the sample count.
//
func (s Sequence) Len() int { return len(s) }

// Head returns the first n samples of s, or s if it is shorter.
//
func (s Sequence) Head(n int) Sequence {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n:n]
}

// Finite returns the index of the first NaN or infinite sample, or -1 if all
// samples are finite.
//
func (s Sequence) Finite() int {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}

// Equal returns true if s and o have the same length and bit-identical samples.
//
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if math.Float64bits(s[i]) != math.Float64bits(o[i]) {
			return false
		}
	}
	return true
}

// overflow returns an *OverflowError for the earliest non-finite sample across
// the named sequences. On a tie, the first sequence wins.
func overflow(names []string, seqs ...Sequence) error {
	var e *OverflowError
	for i, s := range seqs {
		if n := s.Finite(); n >= 0 && (e == nil || n < e.Step) {
			e = &OverflowError{Sequence: names[i], Step: n, Value: s[n]}
		}
	}
	if e == nil {
		return nil
	}
	return e
}
