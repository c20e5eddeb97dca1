package grades

import (
	"math"
	"testing"

	"github.com/renzmontano/grade-tracker/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAverage_TableTests(t *testing.T) {
	tests := []struct {
		name     string
		subjects []models.Subject
		want     float64
	}{
		{
			name:     "empty list",
			subjects: nil,
			want:     0,
		},
		{
			name: "single subject equals its grade",
			subjects: []models.Subject{
				{Grade: 2.25, Units: 3},
			},
			want: 2.25,
		},
		{
			name: "two subjects equal units",
			subjects: []models.Subject{
				{Name: "Math", Grade: 1.00, Units: 3},
				{Name: "Eng", Grade: 1.50, Units: 3},
			},
			want: 1.25,
		},
		{
			name: "weighting by units",
			subjects: []models.Subject{
				{Grade: 1.00, Units: 5},
				{Grade: 3.00, Units: 1},
			},
			want: (1.00*5 + 3.00*1) / 6,
		},
		{
			name: "fractional units",
			subjects: []models.Subject{
				{Grade: 2.00, Units: 0.5},
				{Grade: 4.00, Units: 1.5},
			},
			want: (2.00*0.5 + 4.00*1.5) / 2.0,
		},
		{
			name: "zero total units",
			subjects: []models.Subject{
				{Grade: 1.00, Units: 0},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Average(tt.subjects)
			if !almostEqual(got, tt.want) {
				t.Errorf("Average() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalUnits(t *testing.T) {
	subjects := []models.Subject{
		{Units: 3},
		{Units: 1.5},
		{Units: 0.5},
	}
	if got := TotalUnits(subjects); !almostEqual(got, 5.0) {
		t.Errorf("TotalUnits() = %v, want 5.0", got)
	}
	if got := TotalUnits(nil); got != 0 {
		t.Errorf("TotalUnits(nil) = %v, want 0", got)
	}
}

func TestHonorFor_TableTests(t *testing.T) {
	tests := []struct {
		name string
		gwa  float64
		want string
	}{
		{name: "summa at lower bound", gwa: 1.00, want: SummaCumLaude},
		{name: "summa boundary inclusive", gwa: 1.20, want: SummaCumLaude},
		{name: "just above summa", gwa: 1.2001, want: MagnaCumLaude},
		{name: "magna boundary inclusive", gwa: 1.45, want: MagnaCumLaude},
		{name: "just above magna", gwa: 1.4501, want: CumLaude},
		{name: "cum laude boundary inclusive", gwa: 1.75, want: CumLaude},
		{name: "just above cum laude", gwa: 1.7501, want: NoHonors},
		{name: "mid scale", gwa: 3.00, want: NoHonors},
		{name: "worst grade", gwa: 5.00, want: NoHonors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HonorFor(tt.gwa); got != tt.want {
				t.Errorf("HonorFor(%v) = %q, want %q", tt.gwa, got, tt.want)
			}
		})
	}
}

func TestAverageThenHonor_Scenario(t *testing.T) {
	subjects := []models.Subject{
		{Name: "Math", Grade: 1.00, Units: 3},
		{Name: "Eng", Grade: 1.50, Units: 3},
	}
	gwa := Average(subjects)
	if !almostEqual(gwa, 1.25) {
		t.Fatalf("Average() = %v, want 1.25", gwa)
	}
	if got := HonorFor(gwa); got != MagnaCumLaude {
		t.Errorf("HonorFor(%v) = %q, want %q", gwa, got, MagnaCumLaude)
	}
}
