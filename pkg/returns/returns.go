// Package returns derives projected earnings from a plan's advertised
// rate, its duration and a principal amount. Every function here is
// pure and never fails: incomplete input degrades to a zero projection
// so callers always have a renderable value.
package returns

import (
	"math"
	"regexp"
	"strconv"
)

// Projection is the derived earnings triple for one investment. Values
// are unrounded; presentation rounding is the caller's job.
type Projection struct {
	Monthly    float64 `json:"monthly"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// EffectiveRate reduces an advertised rate string to a single annual
// percentage. "10%" yields 10; a range such as "8-12% annually" yields
// the midpoint of its first two numbers; a string with no digits
// yields 0 rather than an error.
func EffectiveRate(rate string) float64 {
	numbers := numberPattern.FindAllString(rate, -1)
	if len(numbers) == 0 {
		return 0
	}
	first, err := strconv.ParseFloat(numbers[0], 64)
	if err != nil {
		return 0
	}
	if len(numbers) == 1 {
		return first
	}
	second, err := strconv.ParseFloat(numbers[1], 64)
	if err != nil {
		return first
	}
	return (first + second) / 2
}

// Project computes the earnings triple for amount held over
// durationDays at the advertised rate. The monthly figure spreads the
// total evenly across ~30-day months; there is no compounding.
func Project(rate string, durationDays int, amount float64) Projection {
	if durationDays <= 0 || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Projection{}
	}
	effRate := EffectiveRate(rate)
	years := float64(durationDays) / 365
	total := amount * effRate * years / 100
	monthly := total / (float64(durationDays) / 30)
	return Projection{
		Monthly:    monthly,
		Total:      total,
		Percentage: effRate * years,
	}
}
