// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing simulation models.
//
package simtest

import (
	"math"
	"testing"

	"github.com/db47h/pllsim"
	"github.com/stretchr/testify/require"
)

// Run is a simulation under test. It must run the model with the given source
// and return all the sequences it produced.
//
type Run func(src pllsim.Source) ([]pllsim.Sequence, error)

// EqualSequence fails the test if got is not bit-identical to want.
//
func EqualSequence(t testing.TB, name string, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want), "%s: length mismatch", name)
	for i := range want {
		if math.Float64bits(want[i]) != math.Float64bits(got[i]) {
			t.Fatalf("%s[%d]: expected %v, got %v", name, i, want[i], got[i])
		}
	}
}

// SameLength fails the test unless every sequence has n samples.
//
func SameLength(t testing.TB, n int, seqs ...pllsim.Sequence) {
	t.Helper()
	for i, s := range seqs {
		require.Equal(t, n, len(s), "sequence #%d", i)
	}
}

// Finite fails the test if s holds a NaN or infinite sample.
//
func Finite(t testing.TB, name string, s pllsim.Sequence) {
	t.Helper()
	if i := s.Finite(); i >= 0 {
		t.Fatalf("%s[%d] = %v is not finite", name, i, s[i])
	}
}

// Binary fails the test if s holds a sample other than 0 or 1.
//
func Binary(t testing.TB, name string, s pllsim.Sequence) {
	t.Helper()
	for i, v := range s {
		if v != 0 && v != 1 {
			t.Fatalf("%s[%d] = %v, expected 0 or 1", name, i, v)
		}
	}
}

// Deterministic runs the simulation twice with sources seeded with the same
// value and fails the test if the outputs differ.
//
func Deterministic(t testing.TB, seed int64, run Run) {
	t.Helper()
	a, err := run(pllsim.NewSource(seed))
	require.NoError(t, err)
	b, err := run(pllsim.NewSource(seed))
	require.NoError(t, err)
	require.Len(t, b, len(a), "sequence count")
	for i := range a {
		EqualSequence(t, "run", a[i], b[i])
	}
}

// Script is a Source replaying fixed values. It panics once a list is
// exhausted.
//
type Script struct {
	Normals []float64
	Ints    []int
	n, i    int
}

// NormFloat64 returns the next value of s.Normals.
//
func (s *Script) NormFloat64() float64 {
	if s.n >= len(s.Normals) {
		panic("simtest: normal samples exhausted")
	}
	v := s.Normals[s.n]
	s.n++
	return v
}

// Intn returns the next value of s.Ints modulo n.
//
func (s *Script) Intn(n int) int {
	if s.i >= len(s.Ints) {
		panic("simtest: integer samples exhausted")
	}
	v := s.Ints[s.i]
	s.i++
	return v % n
}

// Zero is a Source that always returns 0.
//
type Zero struct{}

// NormFloat64 returns 0.
//
func (Zero) NormFloat64() float64 { return 0 }

// Intn returns 0.
//
func (Zero) Intn(int) int { return 0 }
