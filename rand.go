// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pllsim

import "math/rand"

// Source is the random source consumed by the models. *rand.Rand implements
// Source.
//
// A Source is owned by a single simulation call; concurrent simulations must
// each use their own Source.
//
type Source interface {
	// NormFloat64 returns a standard normal sample (mean 0, stddev 1).
	NormFloat64() float64
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// NewSource returns a new Source seeded with the given value.
//
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
