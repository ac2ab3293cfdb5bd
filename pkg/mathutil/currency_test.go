package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"Binary midpoint below half", 1.005, 1.01},
		{"Eighth midpoint", 0.125, 0.13},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round away", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"One third", 10000.0 / 12.0, 833.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Round(tt.input), 1e-9, "Round(%v)", tt.input)
		})
	}
}

func TestRoundNeverNegativeZero(t *testing.T) {
	result := Round(-0.001)
	assert.False(t, math.Signbit(result), "Round(-0.001) returned negative zero")
}

func TestRoundNonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(Round(math.NaN())))
	assert.True(t, math.IsInf(Round(math.Inf(1)), 1))
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Cents that drift in binary", []float64{0.1, 0.2}, 0.3},
		{"Twelve equal installments", []float64{833.33, 833.33, 833.33, 833.33, 833.33, 833.33,
			833.33, 833.33, 833.33, 833.33, 833.33, 833.37}, 10000.00},
		{"Mixed signs", []float64{10.50, -0.25}, 10.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sum(tt.values...))
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsZero(tt.input))
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(100.00, 100.01, 0.01))
	assert.False(t, WithinTolerance(100.00, 100.02, 0.01))
	assert.True(t, WithinTolerance(-5, -5, 0))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 2.0, Max(1, 2))
	assert.Equal(t, 0.0, Max(0, -1e-12))
}

func TestIsWholeAndFinite(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		whole  bool
		finite bool
	}{
		{"Integer", 12, true, true},
		{"Fraction", 1.5, false, true},
		{"Negative integer", -3, true, true},
		{"NaN", math.NaN(), false, false},
		{"Positive infinity", math.Inf(1), false, false},
		{"Negative infinity", math.Inf(-1), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.whole, IsWhole(tt.input))
			assert.Equal(t, tt.finite, IsFinite(tt.input))
		})
	}
}
