package render_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/db47h/pllsim"
	"github.com/db47h/pllsim/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestWriteCSV(t *testing.T) {
	var b bytes.Buffer
	err := render.WriteCSV(&b,
		render.Column{Name: "a", Data: pllsim.Sequence{1, 0.5}},
		render.Column{Name: "b", Data: pllsim.Sequence{math.Inf(1), -2}},
	)
	require.NoError(t, err)
	assert.Equal(t, "step,a,b\n0,1,+Inf\n1,0.5,-2\n", b.String())

	err = render.WriteCSV(&b,
		render.Column{Name: "a", Data: pllsim.Sequence{1}},
		render.Column{Name: "b", Data: pllsim.Sequence{1, 2}},
	)
	assert.Error(t, err)
	assert.Error(t, render.WriteCSV(&b))
}

func TestResultColumns(t *testing.T) {
	c := pllsim.DefaultLoopConfig()
	c.Steps = 10
	lr, err := pllsim.SimulateLoop(c, pllsim.NewSource(1))
	require.NoError(t, err)
	dr, err := pllsim.SimulateDelay(pllsim.DelayConfig{Delay: 3, Steps: 10})
	require.NoError(t, err)
	cr, err := pllsim.SimulateCDR(pllsim.CDRConfig{Jitter: 0.2, Steps: 10}, pllsim.NewSource(1))
	require.NoError(t, err)

	for _, cols := range [][]render.Column{render.LoopColumns(lr), render.DelayColumns(dr), render.CDRColumns(cr)} {
		var b bytes.Buffer
		require.NoError(t, render.WriteCSV(&b, cols...))
		assert.Equal(t, 11, strings.Count(b.String(), "\n"))
	}
}

func TestWritePNG(t *testing.T) {
	c := pllsim.DefaultLoopConfig()
	c.Steps = 200
	lr, err := pllsim.SimulateLoop(c, pllsim.NewSource(1))
	require.NoError(t, err)
	dr, err := pllsim.SimulateDelay(pllsim.DelayConfig{Delay: 20, Steps: 200})
	require.NoError(t, err)
	cr, err := pllsim.SimulateCDR(pllsim.CDRConfig{Jitter: 0.2, Steps: 400}, pllsim.NewSource(1))
	require.NoError(t, err)

	for name, panels := range map[string][]render.Panel{
		"loop":  render.LoopPanels(lr),
		"delay": render.DelayPanels(dr),
		"cdr":   render.CDRPanels(cr),
	} {
		t.Run(name, func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, render.WritePNG(&b, panels...))
			assert.True(t, bytes.HasPrefix(b.Bytes(), pngMagic))
		})
	}

	assert.Len(t, render.CDRPanels(cr)[0].Lines[0].Data, render.CDRWindow)
	assert.Error(t, render.WritePNG(&bytes.Buffer{}))
}

// Diverging results are plotted up to their first non-finite sample.
func TestWritePNG_overflow(t *testing.T) {
	r := &pllsim.LoopResult{
		PD:     pllsim.Sequence{0.5, math.NaN()},
		Filter: pllsim.Sequence{2, math.NaN()},
		Freq:   pllsim.Sequence{math.Inf(1), math.NaN()},
	}
	var b bytes.Buffer
	require.NoError(t, render.WritePNG(&b, render.LoopPanels(r)...))
	assert.True(t, bytes.HasPrefix(b.Bytes(), pngMagic))
}
