package params_test

import (
	"strings"
	"testing"

	"github.com/db47h/pllsim"
	"github.com/db47h/pllsim/params"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := params.Default()
	assert.Equal(t, pllsim.DefaultLoopParameters(), r.LoopParameters())

	dc, err := r.DelayConfig(pllsim.DefaultDelaySteps)
	require.NoError(t, err)
	assert.Equal(t, pllsim.DefaultDelayConfig(), dc)
	assert.Equal(t, pllsim.DefaultCDRConfig(), r.CDRConfig(pllsim.DefaultCDRSteps))
	assert.Equal(t, pllsim.DefaultLoopConfig(), r.LoopConfig(pllsim.DefaultLoopSteps))

	ps := r.Params()
	require.Len(t, ps, 7)
	assert.Equal(t, params.Kpd, ps[0].Name)
	assert.Equal(t, params.Jitter, ps[6].Name)
}

func TestRegistry_Set(t *testing.T) {
	r := params.Default()
	require.NoError(t, r.Set(params.Kvco, 30))
	assert.Equal(t, 30.0, r.Get(params.Kvco))

	// integer parameters are truncated
	require.NoError(t, r.Set(params.Delay, 42.9))
	assert.Equal(t, 42.0, r.Get(params.Delay))

	td := []struct {
		name string
		v    float64
	}{
		{params.Kpd, 0.05},
		{params.Kpd, 10.5},
		{params.Fref, 0},
		{params.Delay, 0},
		{params.Delay, 101},
		{params.Jitter, -0.1},
		{params.NoiseLevel, 0.51},
	}
	for _, d := range td {
		err := r.Set(d.name, d.v)
		require.Error(t, err, "%s=%v", d.name, d.v)
		assert.True(t, pllsim.IsInvalidParameter(err), "%v", err)
		var re *params.RangeError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, d.name, re.Param.Name)
	}

	err := r.Set("bogus", 1)
	assert.Error(t, err)
	assert.False(t, pllsim.IsInvalidParameter(err))

	r.Reset()
	assert.Equal(t, 10.0, r.Get(params.Kvco))
	assert.Panics(t, func() { r.Get("bogus") })
}

func TestRegistry_Apply(t *testing.T) {
	r := params.Default()
	require.NoError(t, r.Apply("kpd=1, KVCO = 25, jitter=0"))
	assert.Equal(t, 1.0, r.Get(params.Kpd))
	assert.Equal(t, 25.0, r.Get(params.Kvco))
	assert.Equal(t, 0.0, r.Get(params.Jitter))

	// all or nothing
	err := r.Apply("kpd=2, fref=100")
	require.Error(t, err)
	assert.Equal(t, 1.0, r.Get(params.Kpd))
	assert.Equal(t, 5.0, r.Get(params.Fref))

	require.NoError(t, r.Apply(""))
}

func TestRangeError(t *testing.T) {
	err := params.Default().Set(params.Delay, 250)
	require.Error(t, err)
	assert.Equal(t, "delay = 250 out of range [1, 100]", err.Error())
}

func TestNewRegistry_panics(t *testing.T) {
	assert.Panics(t, func() {
		params.NewRegistry(params.Param{Name: "a", Max: 1}, params.Param{Name: "a", Max: 1})
	})
	assert.Panics(t, func() {
		params.NewRegistry(params.Param{Name: "a", Min: 1, Max: 2, Default: 3})
	})
}

func TestParseAssignments(t *testing.T) {
	td := []struct {
		in   string
		want []params.Assignment
		err  string
	}{
		{"", nil, ""},
		{"   ", nil, ""},
		{"kpd=3", []params.Assignment{{"kpd", 3}}, ""},
		{"kpd = 3, loop_filter=1e-2 ,noise=.5", []params.Assignment{{"kpd", 3}, {"loop_filter", 0.01}, {"noise", 0.5}}, ""},
		{"Fref=-2.5E+1", []params.Assignment{{"fref", -25}}, ""},
		{"=3", nil, `in "=3" at pos 1: expected parameter name`},
		{"kpd 3", nil, `in "kpd 3" at pos 5: expected '='`},
		{"kpd=", nil, `in "kpd=" at pos 5: expected number`},
		{"kpd=3 kvco=2", nil, `in "kpd=3 kvco=2" at pos 7: expected comma or end of input`},
		{"kpd=1.2.3", nil, `in "kpd=1.2.3" at pos 5: invalid number "1.2.3"`},
		{"kpd=3,", nil, `in "kpd=3," at pos 7: expected parameter name`},
		{"kpd=3;", nil, `in "kpd=3;" at pos 6: expected comma or end of input`},
	}
	for _, d := range td {
		got, err := params.ParseAssignments(d.in)
		if d.err != "" {
			if err == nil || err.Error() != d.err {
				t.Errorf("ParseAssignments(%q): expected error %q, got %v", d.in, d.err, err)
			}
			continue
		}
		require.NoError(t, err, d.in)
		assert.Equal(t, d.want, got, d.in)
	}
}

func TestParseRange(t *testing.T) {
	name, vs, err := params.ParseRange("KVCO=0..30:4")
	require.NoError(t, err)
	assert.Equal(t, "kvco", name)
	assert.Equal(t, []float64{0, 10, 20, 30}, vs)

	_, vs, err = params.ParseRange("noise = 0.1 .. 0.5 : 1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1}, vs)

	for _, s := range []string{"kvco", "=1..2:3", "kvco=1:3", "kvco=a..2:3", "kvco=1..b:3", "kvco=1..2:x", "kvco=1..2:0"} {
		_, _, err := params.ParseRange(s)
		assert.Error(t, err, s)
		assert.True(t, strings.Contains(err.Error(), "in "), s)
	}
}
