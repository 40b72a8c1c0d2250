package period

// Series is a value per year, index 0 being year 1 of whatever horizon it
// describes.
type Series []float64

// NewSeries returns a zero-filled series of n years.
func NewSeries(n int) Series {
	if n < 0 {
		n = 0
	}
	return make(Series, n)
}

// At returns the value of the 1-based year, or 0 outside the series.
func (s Series) At(year int) float64 {
	if year < 1 || year > len(s) {
		return 0
	}
	return s[year-1]
}

// Sum returns Σ s.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Clone returns an independent copy.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Add returns s + other element-wise over the length of s.
func (s Series) Add(other Series) Series {
	out := s.Clone()
	for i := range out {
		if i < len(other) {
			out[i] += other[i]
		}
	}
	return out
}

// Sub returns s - other element-wise over the length of s.
func (s Series) Sub(other Series) Series {
	out := s.Clone()
	for i := range out {
		if i < len(other) {
			out[i] -= other[i]
		}
	}
	return out
}

// Cumulative returns the running total of s.
func (s Series) Cumulative() Series {
	out := make(Series, len(s))
	var running float64
	for i, v := range s {
		running += v
		out[i] = running
	}
	return out
}

// Average returns the mean of s, or 0 when empty.
func (s Series) Average() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Sum() / float64(len(s))
}

// Sum adds any number of series of the same length n.
func Sum(n int, parts ...Series) Series {
	out := NewSeries(n)
	for _, p := range parts {
		for i := 0; i < n && i < len(p); i++ {
			out[i] += p[i]
		}
	}
	return out
}
