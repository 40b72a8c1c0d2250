// Package depreciation computes straight-line depreciation and amortization
// for the project's construction, equipment and intangible assets.
package depreciation

import (
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"
)

// Asset keys, matching the depreciation table rows.
const (
	AssetConstruction = "A"
	AssetEquipment    = "D"
	AssetIntangible   = "E"
)

// Line is one asset's schedule over the operation horizon.
type Line struct {
	Key           string
	OriginalValue float64
	Annual        float64
	Charge        period.Series
	NetValue      period.Series // original value less accumulated charge
	// Invalid is set when the asset has value but no usable life.
	Invalid bool
}

// AnnualCharge returns the straight-line annual charge.
//
// FORMULA: originalValue × (1 - residualRate/100) / usefulLifeYears
//
// Returns 0 when the useful life is not positive.
func AnnualCharge(originalValue, usefulLifeYears, residualRatePercent float64) float64 {
	if usefulLifeYears <= 0 {
		return 0
	}
	return originalValue * (1 - residualRatePercent/100) / usefulLifeYears
}

// Schedule depreciates one asset over operationYears. Year i (0-based)
// carries the annual charge while i < usefulLifeYears.
func Schedule(key string, asset models.DepreciableAsset, operationYears int) Line {
	ov := asset.OriginalValue.F()
	life := asset.UsefulLifeYears.F()
	annual := AnnualCharge(ov, life, asset.ResidualRatePercent.F())

	line := Line{
		Key:           key,
		OriginalValue: ov,
		Annual:        annual,
		Charge:        period.NewSeries(operationYears),
		NetValue:      period.NewSeries(operationYears),
		Invalid:       ov != 0 && life <= 0,
	}

	var accumulated float64
	for i := 0; i < operationYears; i++ {
		if float64(i) < life {
			line.Charge[i] = annual
		}
		accumulated += line.Charge[i]
		line.NetValue[i] = ov - accumulated
	}
	return line
}

// Result holds the three asset schedules.
type Result struct {
	Construction Line
	Equipment    Line
	Intangible   Line
}

// Compute schedules all three assets.
func Compute(assets models.AssetsConfig, operationYears int) Result {
	return Result{
		Construction: Schedule(AssetConstruction, assets.Construction, operationYears),
		Equipment:    Schedule(AssetEquipment, assets.Equipment, operationYears),
		Intangible:   Schedule(AssetIntangible, assets.Intangible, operationYears),
	}
}

// Lines returns the schedules in table order.
func (r Result) Lines() []Line {
	return []Line{r.Construction, r.Equipment, r.Intangible}
}

// Depreciation returns the fixed-asset charge (construction + equipment).
func (r Result) Depreciation() period.Series {
	return r.Construction.Charge.Add(r.Equipment.Charge)
}

// Amortization returns the intangible charge.
func (r Result) Amortization() period.Series {
	return r.Intangible.Charge.Clone()
}
