package tax

import (
	"testing"

	"project_feasibility/pkg/core/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateCreditGreedyForward(t *testing.T) {
	output := period.Series{40, 50, 30, 60, 70}
	input := period.Series{0, 0, 0, 0, 0}

	credit, remaining := AllocateCredit(output, input, 100)

	assert.Equal(t, period.Series{40, 50, 10, 0, 0}, credit)
	assert.Equal(t, 0.0, remaining)
}

func TestAllocateCreditSkipsNegativeNeed(t *testing.T) {
	output := period.Series{10, 50}
	input := period.Series{30, 20}

	credit, remaining := AllocateCredit(output, input, 100)

	assert.Equal(t, period.Series{0, 30}, credit)
	assert.Equal(t, 70.0, remaining)
}

func TestComputeNeverNegativeAndBoundedByPool(t *testing.T) {
	output := period.Series{13, 20, 5, 80}
	input := period.Series{20, 5, 1, 10}
	pool := 30.0

	s := Compute(output, input, pool, Rates{UrbanMaintenance: 0.07, EducationSurcharge: 0.05})

	require.LessOrEqual(t, s.FixedAssetCredit.Sum(), pool+1e-9)
	for i, v := range s.VAT {
		require.GreaterOrEqual(t, v, 0.0, "year %d", i+1)
	}
	// year 4: need 70, pool left 30 - 15 - 4 = 11
	assert.InDelta(t, 59, s.VAT[3], 1e-9)
	assert.InDelta(t, 59*0.12, s.Surcharges[3], 1e-9)
	assert.InDelta(t, 59*0.07, s.UrbanMaintenance[3], 1e-9)
	assert.InDelta(t, 0, s.CreditRemaining, 1e-9)
}

func TestComputeWithoutPool(t *testing.T) {
	s := Compute(period.Series{13}, period.Series{3}, 0, Rates{UrbanMaintenance: 0.07, EducationSurcharge: 0.05})
	assert.InDelta(t, 10, s.VAT[0], 1e-9)
	assert.InDelta(t, 1.2, s.Surcharges[0], 1e-9)
	assert.InDelta(t, 11.2, s.VATAndSurcharges()[0], 1e-9)
}
