package returns

import (
	"math"
	"testing"
)

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name string
		rate string
		want float64
	}{
		{name: "single percentage", rate: "10%", want: 10},
		{name: "bare number", rate: "12", want: 12},
		{name: "decimal", rate: "7.5% annually", want: 7.5},
		{name: "range midpoint", rate: "8-12% annually", want: 10},
		{name: "range with extra numbers uses first two", rate: "5-9% over 365 days", want: 7},
		{name: "no digits degrades to zero", rate: "no data", want: 0},
		{name: "empty string", rate: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveRate(tt.rate); got != tt.want {
				t.Errorf("EffectiveRate(%q) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestProject(t *testing.T) {
	// Plan advertising 8-12% over 180 days, principal 5000:
	// effective rate 10, years = 180/365, total ≈ 246.58,
	// monthly ≈ 246.58/6 ≈ 41.10, percentage ≈ 4.93.
	p := Project("8-12%", 180, 5000)
	if !almostEqual(p.Total, 246.58) {
		t.Errorf("Total = %v, want ≈246.58", p.Total)
	}
	if !almostEqual(p.Monthly, 41.10) {
		t.Errorf("Monthly = %v, want ≈41.10", p.Monthly)
	}
	if !almostEqual(p.Percentage, 4.93) {
		t.Errorf("Percentage = %v, want ≈4.93", p.Percentage)
	}
}

func TestProjectDegradesToZero(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		duration int
		amount   float64
	}{
		{name: "zero amount", rate: "10%", duration: 180, amount: 0},
		{name: "negative amount", rate: "10%", duration: 180, amount: -50},
		{name: "zero duration", rate: "10%", duration: 0, amount: 5000},
		{name: "negative duration", rate: "10%", duration: -10, amount: 5000},
		{name: "NaN amount", rate: "10%", duration: 180, amount: math.NaN()},
		{name: "infinite amount", rate: "10%", duration: 180, amount: math.Inf(1)},
		{name: "rate without digits", rate: "coming soon", duration: 180, amount: 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project(tt.rate, tt.duration, tt.amount)
			if p != (Projection{}) {
				t.Errorf("Project(%q, %d, %v) = %+v, want zero projection", tt.rate, tt.duration, tt.amount, p)
			}
		})
	}
}

func TestProjectIsPure(t *testing.T) {
	a := Project("8-12% annually", 365, 10000)
	b := Project("8-12% annually", 365, 10000)
	if a != b {
		t.Errorf("identical inputs produced different projections: %+v vs %+v", a, b)
	}
}

func TestProjectFullYearFlatRate(t *testing.T) {
	p := Project("10", 365, 1000)
	if !almostEqual(p.Total, 100) {
		t.Errorf("Total = %v, want ≈100", p.Total)
	}
	if !almostEqual(p.Percentage, 10) {
		t.Errorf("Percentage = %v, want ≈10", p.Percentage)
	}
}
