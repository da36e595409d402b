package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Identical values", 10.0, 10.0, 0.01, true},
		{"Within tolerance", 10.0, 10.005, 0.01, true},
		{"Exactly at tolerance", 10.0, 10.01, 0.01, true},
		{"Outside tolerance", 10.0, 10.02, 0.01, false},
		{"Negative values within", -5.0, -5.005, 0.01, true},
		{"Opposite signs outside", 1.0, -1.0, 0.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name        string
		a           float64
		b           float64
		expectedMin float64
		expectedMax float64
	}{
		{"Ascending pair", 1.0, 2.0, 1.0, 2.0},
		{"Descending pair", 2.0, 1.0, 1.0, 2.0},
		{"Equal values", 3.0, 3.0, 3.0, 3.0},
		{"Negative values", -2.0, -7.0, -7.0, -2.0},
		{"Mixed signs", -1.0, 1.0, -1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Min(tt.a, tt.b); result != tt.expectedMin {
				t.Errorf("Min(%v, %v) = %v, expected %v", tt.a, tt.b, result, tt.expectedMin)
			}
			if result := Max(tt.a, tt.b); result != tt.expectedMax {
				t.Errorf("Max(%v, %v) = %v, expected %v", tt.a, tt.b, result, tt.expectedMax)
			}
		})
	}
}
