package simtest_test

import (
	"testing"

	"github.com/db47h/pllsim"
	"github.com/db47h/pllsim/simtest"
	"github.com/stretchr/testify/assert"
)

func TestDeterministic(t *testing.T) {
	simtest.Deterministic(t, 42, func(src pllsim.Source) ([]pllsim.Sequence, error) {
		s := make(pllsim.Sequence, 16)
		for i := range s {
			s[i] = src.NormFloat64() + float64(src.Intn(10))
		}
		return []pllsim.Sequence{s}, nil
	})
}

func TestScript(t *testing.T) {
	s := &simtest.Script{Normals: []float64{0.5, -1}, Ints: []int{3, 4}}
	assert.Equal(t, 0.5, s.NormFloat64())
	assert.Equal(t, -1.0, s.NormFloat64())
	assert.Equal(t, 1, s.Intn(2))
	assert.Equal(t, 0, s.Intn(2))
	assert.Panics(t, func() { s.NormFloat64() })
	assert.Panics(t, func() { s.Intn(2) })
}

func TestHelpers(t *testing.T) {
	simtest.EqualSequence(t, "seq", []float64{1, 2}, []float64{1, 2})
	simtest.SameLength(t, 2, pllsim.Sequence{1, 2}, pllsim.Sequence{3, 4})
	simtest.Finite(t, "seq", pllsim.Sequence{0, 1e300})
	simtest.Binary(t, "bits", pllsim.Sequence{0, 1, 1, 0})
}
