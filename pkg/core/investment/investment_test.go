package investment

import (
	"testing"

	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestAllocateEstimate(t *testing.T) {
	est := models.InvestmentEstimate{BuildingInstallation: 900, Equipment: 400, OtherEngineering: 100, Land: 50, Reserves: 30}

	out := AllocateEstimate(est, 3)
	assert.Equal(t, period.Series{450, 300, 730}, out)
	assert.InDelta(t, 1480, out.Sum(), 1e-9)

	single := AllocateEstimate(est, 1)
	assert.Equal(t, period.Series{1480}, single)

	assert.Empty(t, AllocateEstimate(est, 0))
}

func TestBuildExplicitConstruction(t *testing.T) {
	p := period.Period{ConstructionYears: 2, OperationYears: 3}
	plan := Build(models.InvestmentConfig{
		ConstructionInvestment: []models.Num{600, 400},
		WorkingCapital:         models.WorkingCapital{Amount: 80},
		MaintenanceInvestment:  5,
		SubsidyIncome:          10,
	}, models.LoanTerms{}, p)

	assert.Equal(t, period.Series{600, 400, 0, 0, 0}, plan.Construction)
	assert.Equal(t, period.Series{0, 0, 80, 0, 0}, plan.WorkingCapital)
	assert.Equal(t, period.Series{0, 0, 0, 0, 80}, plan.WorkingCapitalRecovery)
	assert.Equal(t, period.Series{0, 0, 5, 5, 5}, plan.Maintenance)
	assert.Equal(t, period.Series{0, 0, 10, 10, 10}, plan.Subsidy)
	assert.Equal(t, period.Series{0, 0, 0, 0, 0}, plan.ConstructionInterest)
	assert.InDelta(t, 1080, plan.TotalInvestment(), 1e-9)
}

func TestBuildWorkingCapitalYear(t *testing.T) {
	p := period.Period{ConstructionYears: 1, OperationYears: 2}
	plan := Build(models.InvestmentConfig{WorkingCapital: models.WorkingCapital{Amount: 50, Year: 1}}, models.LoanTerms{}, p)
	assert.Equal(t, period.Series{50, 0, 0}, plan.WorkingCapital)

	// A huge year lands in the final year instead of indexing past the horizon.
	plan = Build(models.InvestmentConfig{WorkingCapital: models.WorkingCapital{Amount: 50, Year: 1e20}}, models.LoanTerms{}, p)
	assert.Equal(t, period.Series{0, 0, 50}, plan.WorkingCapital)
}

func TestConstructionInterest(t *testing.T) {
	// Year 1: 600/2 × 5% = 15; year 2: (600 + 400/2) × 5% = 40
	out := ConstructionInterest([]float64{600, 400}, 0.05, 2)
	assert.InDelta(t, 15, out[0], 1e-9)
	assert.InDelta(t, 40, out[1], 1e-9)

	// Years without a draw borrow nothing but still accrue on the drawn balance.
	out = ConstructionInterest([]float64{1000}, 0.06, 3)
	assert.InDelta(t, 30, out[0], 1e-9)
	assert.InDelta(t, 60, out[1], 1e-9)
	assert.InDelta(t, 60, out[2], 1e-9)

	assert.Empty(t, ConstructionInterest([]float64{100}, 0.05, 0))
}

func TestBuildConstructionInterest(t *testing.T) {
	p := period.Period{ConstructionYears: 2, OperationYears: 3}
	cfg := models.InvestmentConfig{
		ConstructionInvestment: []models.Num{600, 400},
		WorkingCapital:         models.WorkingCapital{Amount: 80},
	}
	loan := models.LoanTerms{Principal: 1000, AnnualRate: 0.05, TermYears: 3, ConstructionDraws: []models.Num{600, 400}}

	plan := Build(cfg, loan, p)
	assert.InDeltaSlice(t, period.Series{15, 40, 0, 0, 0}, plan.ConstructionInterest, 1e-9)
	assert.InDelta(t, 55, plan.InterestTotal(), 1e-9)
	assert.InDelta(t, 1135, plan.TotalInvestment(), 1e-9)

	// An explicit amount overrides the draws and is spread evenly.
	explicit := models.Num(30)
	cfg.ConstructionInterest = &explicit
	plan = Build(cfg, loan, p)
	assert.Equal(t, period.Series{15, 15, 0, 0, 0}, plan.ConstructionInterest)
	assert.InDelta(t, 1110, plan.TotalInvestment(), 1e-9)

	// No construction years means nothing to capitalize.
	plan = Build(cfg, loan, period.Period{OperationYears: 3})
	assert.InDelta(t, 0, plan.InterestTotal(), 1e-9)
}

