package cashflow

import (
	"testing"

	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInputs() Inputs {
	return Inputs{
		Revenue:                period.Series{0, 0, 500, 600, 700},
		Subsidy:                period.Series{0, 0, 10, 10, 10},
		WorkingCapitalRecovery: period.Series{0, 0, 0, 0, 50},
		ResidualValue:          40,
		ConstructionInvestment: period.Series{600, 400, 0, 0, 0},
		WorkingCapital:         period.Series{0, 0, 50, 0, 0},
		OperatingCost:          period.Series{0, 0, 200, 220, 240},
		VATAndSurcharges:       period.Series{0, 0, 30, 35, 40},
		Maintenance:            period.Series{0, 0, 5, 5, 5},
		EBIT:                   period.Series{0, 0, -20, 200, 300},
		IncomeTaxRate:          0.25,
		DiscountRate:           0.06,
	}
}

func TestComputeRows(t *testing.T) {
	st := Compute(sampleInputs())

	// construction years have no inflow
	assert.Equal(t, 0.0, st.Inflow[0])
	assert.Equal(t, 0.0, st.Inflow[1])
	assert.InDelta(t, -600, st.PreTaxNet[0], 1e-9)

	// final year carries residual and working capital recovery
	assert.InDelta(t, 700+10+40+50, st.Inflow[4], 1e-9)
	assert.InDelta(t, 240+40+5, st.Outflow[4], 1e-9)

	// loss years pay no adjusted income tax
	assert.Equal(t, 0.0, st.AdjustedIncomeTax[2])
	assert.InDelta(t, 50, st.AdjustedIncomeTax[3], 1e-9)
	assert.InDelta(t, st.PreTaxNet[3]-50, st.PostTaxNet[3], 1e-9)
}

func TestCumulativeIsRunningSum(t *testing.T) {
	st := Compute(sampleInputs())
	var running float64
	for i := range st.PreTaxNet {
		running += st.PreTaxNet[i]
		require.InDelta(t, running, st.PreTaxCumulative[i], 1e-9)
	}
	assert.InDelta(t, st.PostTaxNet.Sum(), st.PostTaxCumulative[4], 1e-9)
	assert.InDelta(t, st.PreTaxNet[0]/1.06, st.PreTaxDiscounted[0], 1e-9)
	assert.InDelta(t, st.PostTaxDiscounted.Sum(), st.PostTaxDiscountedCum[4], 1e-9)
}

func TestResidualValue(t *testing.T) {
	v := ResidualValue(models.AssetsConfig{
		Construction: models.DepreciableAsset{OriginalValue: 2000, ResidualRatePercent: 5},
		Equipment:    models.DepreciableAsset{OriginalValue: 800, ResidualRatePercent: 3},
		Intangible:   models.DepreciableAsset{OriginalValue: 100, ResidualRatePercent: 50},
	})
	assert.InDelta(t, 124, v, 1e-9)
}

func TestEquityShare(t *testing.T) {
	assert.InDelta(t, 0.6, EquityShare(1000, 400), 1e-9)
	assert.Equal(t, 0.0, EquityShare(1000, 1500))
	assert.Equal(t, 0.0, EquityShare(0, 0))
	assert.Equal(t, 1.0, EquityShare(1000, 0))
}

func TestComputeEquity(t *testing.T) {
	st := ComputeEquity(EquityInputs{
		Revenue:          period.Series{0, 500},
		EquityInvestment: period.Series{300, 0},
		Principal:        period.Series{0, 100},
		Interest:         period.Series{0, 20},
		OperatingCost:    period.Series{0, 200},
		IncomeTax:        period.Series{0, 30},
		ResidualValue:    10,
		DiscountRate:     0.06,
	})
	assert.InDelta(t, -300, st.Net[0], 1e-9)
	assert.InDelta(t, 510-350, st.Net[1], 1e-9)
	assert.InDelta(t, -140, st.Cumulative[1], 1e-9)
}
