package pllsim_test

import (
	"math"
	"sort"
	"testing"

	"github.com/db47h/pllsim"
	"github.com/db47h/pllsim/simtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateDelay_default(t *testing.T) {
	r, err := pllsim.SimulateDelay(pllsim.DefaultDelayConfig())
	require.NoError(t, err)
	simtest.SameLength(t, pllsim.DefaultDelaySteps, r.Input, r.Delayed)
	assert.Equal(t, 0.0, r.Input[0])
	assert.Equal(t, math.Sin(40), r.Input[r.Len()-1])

	d := pllsim.DefaultDelay
	for i := range r.Input {
		if r.Delayed[(i+d)%r.Len()] != r.Input[i] {
			t.Fatalf("delayed[%d] != input[%d]", (i+d)%r.Len(), i)
		}
	}
}

func TestSimulateDelay_identity(t *testing.T) {
	for _, d := range []int{0, 250, 500} {
		r, err := pllsim.SimulateDelay(pllsim.DelayConfig{Delay: d, Steps: 250})
		require.NoError(t, err)
		simtest.EqualSequence(t, "delayed", r.Input, r.Delayed)
	}
}

func TestSimulateDelay_shift(t *testing.T) {
	r, err := pllsim.SimulateDelay(pllsim.DelayConfig{Delay: 2, Steps: 5})
	require.NoError(t, err)
	want := pllsim.Sequence{r.Input[3], r.Input[4], r.Input[0], r.Input[1], r.Input[2]}
	simtest.EqualSequence(t, "delayed", want, r.Delayed)

	// only order changes
	a := append([]float64(nil), r.Input...)
	b := append([]float64(nil), r.Delayed...)
	sort.Float64s(a)
	sort.Float64s(b)
	simtest.EqualSequence(t, "sorted", a, b)
}

func TestSimulateDelay_invalid(t *testing.T) {
	td := []struct {
		cfg   pllsim.DelayConfig
		field string
	}{
		{pllsim.DelayConfig{Delay: -1, Steps: 1000}, "delay"},
		{pllsim.DelayConfig{Delay: 20, Steps: 0}, "steps"},
		{pllsim.DelayConfig{Delay: 20, Steps: -5}, "steps"},
	}
	for _, d := range td {
		r, err := pllsim.SimulateDelay(d.cfg)
		assert.Nil(t, r)
		require.True(t, pllsim.IsInvalidParameter(err), "%+v: %v", d.cfg, err)
		assert.Equal(t, d.field, err.(*pllsim.ParamError).Field)
	}
}

func TestDelayFromFloat(t *testing.T) {
	td := []struct {
		in   float64
		want int
		ok   bool
	}{
		{20, 20, true},
		{20.9, 20, true},
		{0.4, 0, true},
		{-0.5, 0, true},
		{-1.5, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{1e12, 0, false},
	}
	for _, d := range td {
		got, err := pllsim.DelayFromFloat(d.in)
		if d.ok {
			assert.NoError(t, err, "%v", d.in)
			assert.Equal(t, d.want, got, "%v", d.in)
		} else {
			assert.True(t, pllsim.IsInvalidParameter(err), "%v", d.in)
		}
	}
}
