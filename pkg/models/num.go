package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Num is a numeric input field. It decodes from JSON numbers, numeric
// strings, null or anything else; whatever cannot be read as a finite
// number becomes 0.
type Num float64

// F returns the value as float64, with NaN and ±Inf read as 0.
func (n Num) F() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Ptr returns a pointer to a Num holding f.
func Ptr(f float64) *Num {
	n := Num(f)
	return &n
}

// UnmarshalJSON implements lenient numeric decoding.
func (n *Num) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Num(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		s = strings.TrimSuffix(s, "%")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Num(v)
			return nil
		}
	}

	// Booleans, objects and unreadable strings coerce to zero.
	*n = 0
	return nil
}

// MarshalJSON writes non-finite values as 0 so encoding never fails.
func (n Num) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.F())
}

// maxInt bounds Int so that huge inputs cannot overflow.
const maxInt = 1 << 30

// Int returns the value truncated toward zero, clamped to ±2^30.
func (n Num) Int() int {
	f := n.F()
	switch {
	case f > maxInt:
		return maxInt
	case f < -maxInt:
		return -maxInt
	}
	return int(f)
}

// Value returns the pointed-to number, or def when p is nil.
func Value(p *Num, def float64) float64 {
	if p == nil {
		return def
	}
	return p.F()
}
