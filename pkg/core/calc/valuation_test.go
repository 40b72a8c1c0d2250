package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentValue(t *testing.T) {
	pv := PresentValue(110, 0.10, 1)
	if math.Abs(pv-100) > 0.001 {
		t.Errorf("PresentValue() = %v, want 100", pv)
	}
	assert.Equal(t, 0.0, PresentValue(100, 0.1, -1))
}

func TestNPV(t *testing.T) {
	flows := []float64{-1000, 300, 400, 500}
	expected := -1000/1.06 + 300/math.Pow(1.06, 2) + 400/math.Pow(1.06, 3) + 500/math.Pow(1.06, 4)
	assert.InDelta(t, expected, NPV(flows, 0.06), 1e-9)
	assert.InDelta(t, 200, NPV(flows, 0), 1e-9)

	discounted := Discount(flows, 0.06)
	var sum float64
	for _, d := range discounted {
		sum += d
	}
	assert.InDelta(t, expected, sum, 1e-9)
}

func TestIRR(t *testing.T) {
	tests := []struct {
		name  string
		flows []float64
		want  float64
	}{
		{"single period", []float64{-100, 110}, 0.10},
		{"annuity", []float64{-1000, 300, 300, 300, 300, 300}, 0.152382},
		{"construction years", []float64{-500, -500, 200, 300, 400, 500, 600}, 0.196679},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IRR(tt.flows)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-3)
			assert.InDelta(t, 0, NPV(tt.flows, got), 1e-4)
		})
	}
}

func TestIRRNotConverged(t *testing.T) {
	_, err := IRR([]float64{100, 200, 300})
	assert.True(t, errors.Is(err, ErrNotConverged))

	_, err = IRR([]float64{-100, -50})
	assert.ErrorIs(t, err, ErrNotConverged)

	_, err = IRR(nil)
	assert.ErrorIs(t, err, ErrNotConverged)
}

func TestIRRFallsBackToBisection(t *testing.T) {
	// Newton from 0.1 overshoots on very high returns.
	flows := []float64{-1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1000}
	got, err := IRR(flows)
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(1000, 0.1)-1, got, 1e-4)
}

func TestPaybackPeriod(t *testing.T) {
	tests := []struct {
		name  string
		flows []float64
		want  Payback
	}{
		{"interpolated", []float64{-1000, -500, 600, 600, 600}, Payback{Years: 4 + 300.0/600, Recovered: true}},
		{"exact", []float64{-100, 100}, Payback{Years: 2, Recovered: true}},
		{"dip after early inflow", []float64{50, -100, 100}, Payback{Years: 2.5, Recovered: true}},
		{"never", []float64{-100, 10, 10}, Payback{Years: 4, Recovered: false}},
		{"no outlay", []float64{50, 100}, Payback{}},
		{"all zero", []float64{0, 0, 0}, Payback{}},
		{"empty", nil, Payback{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaybackPeriod(tt.flows)
			assert.InDelta(t, tt.want.Years, got.Years, 1e-9)
			assert.Equal(t, tt.want.Recovered, got.Recovered)
		})
	}
}
