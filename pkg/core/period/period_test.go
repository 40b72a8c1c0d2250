package period

import (
	"testing"

	"project_feasibility/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCurve(t *testing.T) {
	c := DefaultCurve(5)
	assert.Equal(t, 0.75, c.Rate(1))
	assert.Equal(t, 0.85, c.Rate(2))
	assert.Equal(t, 1.0, c.Rate(3))
	assert.Equal(t, 1.0, c.Rate(5))
}

func TestCurveMissingYearIsFullRate(t *testing.T) {
	c := CurveFromConfig([]models.ProductionRate{{YearIndex: 1, Rate: 0.5}}, 3)
	assert.Equal(t, 0.5, c.Rate(1))
	assert.Equal(t, 1.0, c.Rate(2))
	assert.Equal(t, 1.0, c.Rate(99))
}

func TestPeriodFromConfig(t *testing.T) {
	p := FromConfig(models.Period{ConstructionYears: 2, OperationYears: -1})
	assert.Equal(t, 2, p.ConstructionYears)
	assert.Equal(t, 0, p.OperationYears)
	assert.Equal(t, 2, p.TotalYears())
}

func TestExpand(t *testing.T) {
	p := Period{ConstructionYears: 2, OperationYears: 3}
	full := p.Expand(Series{1, 2, 3})
	assert.Equal(t, Series{0, 0, 1, 2, 3}, full)
	assert.Equal(t, 3, p.AbsoluteYear(1))
	assert.True(t, p.IsConstruction(2))
	assert.False(t, p.IsConstruction(3))

	assert.Equal(t, Series{7, 8, 0, 0, 0}, p.ExpandConstruction(Series{7, 8}))
}

func TestSeriesHelpers(t *testing.T) {
	s := Series{1, -2, 3}
	assert.Equal(t, 2.0, s.Sum())
	assert.Equal(t, Series{1, -1, 2}, s.Cumulative())
	assert.Equal(t, 0.0, s.At(0))
	assert.Equal(t, 3.0, s.At(3))
	assert.Equal(t, 0.0, s.At(4))
	assert.Equal(t, Series{2, 0, 6}, s.Add(Series{1, 2, 3}))
	assert.Equal(t, Series{2, 0, 6}, Sum(3, s, Series{1, 2, 3}))
	assert.Empty(t, YearRange(0))
	assert.Equal(t, []int{1, 2, 3}, YearRange(3))
}

func TestOperationSlice(t *testing.T) {
	p := Period{ConstructionYears: 2, OperationYears: 2}
	assert.Equal(t, Series{3, 4}, p.OperationSlice(Series{1, 2, 3, 4}))
	assert.Equal(t, Series{3, 0}, p.OperationSlice(Series{1, 2, 3}))
}
