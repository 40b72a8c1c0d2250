// Package tax derives VAT payable and the surcharges levied on it, including
// the one-pass allocation of the fixed-asset input VAT credit pool.
package tax

import (
	"math"

	"project_feasibility/pkg/core/period"
)

// Rates are the surcharge rates levied on VAT payable, as decimals.
type Rates struct {
	UrbanMaintenance   float64
	EducationSurcharge float64
}

// Schedule is the VAT and surcharge result per operation year.
type Schedule struct {
	OutputVAT          period.Series
	InputVAT           period.Series
	FixedAssetCredit   period.Series
	VAT                period.Series
	UrbanMaintenance   period.Series
	EducationSurcharge period.Series
	Surcharges         period.Series
	// CreditRemaining is the pool left unused after the horizon.
	CreditRemaining float64
}

// AllocateCredit consumes a fixed-asset credit pool front to back.
//
// FORMULA (per year, in order):
//
//	need     = outputVAT - inputVAT
//	consumed = min(max(need, 0), remaining)
//	remaining -= consumed
//
// Earlier years are never revisited; consumption never exceeds the pool.
func AllocateCredit(outputVAT, inputVAT period.Series, pool float64) (period.Series, float64) {
	credit := period.NewSeries(len(outputVAT))
	remaining := math.Max(pool, 0)
	for i := range outputVAT {
		if remaining <= 0 {
			break
		}
		need := outputVAT[i]
		if i < len(inputVAT) {
			need -= inputVAT[i]
		}
		consumed := math.Min(math.Max(need, 0), remaining)
		credit[i] = consumed
		remaining -= consumed
	}
	return credit, remaining
}

// VATPayable returns the VAT due after input VAT and credit.
//
// FORMULA: max(0, outputVAT - inputVAT - credit)
func VATPayable(outputVAT, inputVAT, credit float64) float64 {
	return math.Max(0, outputVAT-inputVAT-credit)
}

// Compute builds the full VAT and surcharge schedule.
func Compute(outputVAT, inputVAT period.Series, creditPool float64, rates Rates) Schedule {
	n := len(outputVAT)
	credit, remaining := AllocateCredit(outputVAT, inputVAT, creditPool)

	s := Schedule{
		OutputVAT:          outputVAT.Clone(),
		InputVAT:           period.NewSeries(n),
		FixedAssetCredit:   credit,
		VAT:                period.NewSeries(n),
		UrbanMaintenance:   period.NewSeries(n),
		EducationSurcharge: period.NewSeries(n),
		Surcharges:         period.NewSeries(n),
		CreditRemaining:    remaining,
	}
	copy(s.InputVAT, inputVAT)

	for i := 0; i < n; i++ {
		vat := VATPayable(s.OutputVAT[i], s.InputVAT[i], credit[i])
		s.VAT[i] = vat
		s.UrbanMaintenance[i] = vat * rates.UrbanMaintenance
		s.EducationSurcharge[i] = vat * rates.EducationSurcharge
		s.Surcharges[i] = s.UrbanMaintenance[i] + s.EducationSurcharge[i]
	}
	return s
}

// VATAndSurcharges returns VAT + surcharges per year.
func (s Schedule) VATAndSurcharges() period.Series {
	return s.VAT.Add(s.Surcharges)
}
