package services

import (
	"math"
	"testing"
)

func TestComputePercentage(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"two subjects", []float64{80, 60}, 70},
		{"single subject", []float64{90}, 90},
		{"zero score counts", []float64{0, 100}, 50},
		{"fractional", []float64{72.5, 77.5}, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePercentage(tt.scores)
			if got == nil {
				t.Fatal("expected a percentage, got nil")
			}
			if math.Abs(*got-tt.want) > 1e-9 {
				t.Errorf("percentage = %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestComputePercentage_NoMarks(t *testing.T) {
	if got := ComputePercentage(nil); got != nil {
		t.Errorf("percentage = %v, want nil for zero marks", *got)
	}
	if got := ComputePercentage([]float64{}); got != nil {
		t.Errorf("percentage = %v, want nil for zero marks", *got)
	}
}
