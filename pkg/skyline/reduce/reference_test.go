package reduce

import (
	"errors"
	"testing"

	"github.com/skylinelab/watertower/pkg/skyline"
)

func TestReference_Scenarios(t *testing.T) {
	tests := []struct {
		heights []int
		want    int
	}{
		{[]int{}, 0},
		{[]int{5}, 0},
		{[]int{5, 5}, 0},
		{[]int{5, 2, 2, 5}, 6},
		{[]int{5, 2, 5, 2, 5}, 6},
		{[]int{5, 2, 5, 2, 5, 10}, 6},
		{[]int{1, 5, 2, 5, 2, 5, 10, 3, 5}, 8},
		{[]int{1, 5, 2, 5, 2, 5, 10, 3, 3, 3, 5}, 12},
		{[]int{5, 4, 4, 3, 3, 2, 2, 1, 1, 5}, 20},
		{[]int{5, 1, 1, 2, 2, 3, 3, 4, 4, 5}, 20},
	}

	for _, tt := range tests {
		got, err := Reference(tt.heights)
		if err != nil {
			t.Fatalf("Reference(%v) error = %v", tt.heights, err)
		}
		if got != tt.want {
			t.Errorf("Reference(%v) = %d, want %d", tt.heights, got, tt.want)
		}
	}
}

func TestReference_NegativeHeight(t *testing.T) {
	_, err := Reference([]int{1, -2})
	if !errors.Is(err, skyline.ErrNegativeHeight) {
		t.Errorf("Reference() error = %v, want ErrNegativeHeight", err)
	}
}

func TestWaterColumns_Bowl(t *testing.T) {
	cols, err := WaterColumns([]int{5, 2, 2, 5})
	if err != nil {
		t.Fatalf("WaterColumns() error = %v", err)
	}

	want := []int{0, 3, 3, 0}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("WaterColumns()[%d] = %d, want %d", i, cols[i], want[i])
		}
	}
}

func TestWaterColumns_NoBasin(t *testing.T) {
	cols, err := WaterColumns([]int{1, 2})
	if err != nil {
		t.Fatalf("WaterColumns() error = %v", err)
	}
	for i, c := range cols {
		if c != 0 {
			t.Errorf("WaterColumns()[%d] = %d, want 0", i, c)
		}
	}
}
