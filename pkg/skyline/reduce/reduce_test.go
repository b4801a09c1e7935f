package reduce

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/skylinelab/watertower/pkg/skyline"
)

func TestTotalWater_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		heights []int
		want    int
	}{
		{"empty", []int{}, 0},
		{"single", []int{5}, 0},
		{"equal pair", []int{5, 5}, 0},
		{"simple basin", []int{5, 2, 2, 5}, 6},
		{"two basins", []int{5, 2, 5, 2, 5}, 6},
		{"rising tail", []int{5, 2, 5, 2, 5, 10}, 6},
		{"mixed", []int{1, 5, 2, 5, 2, 5, 10, 3, 5}, 8},
		{"wide basin", []int{1, 5, 2, 5, 2, 5, 10, 3, 3, 3, 5}, 12},
		{"staircase down", []int{5, 4, 4, 3, 3, 2, 2, 1, 1, 5}, 20},
		{"staircase up", []int{5, 1, 1, 2, 2, 3, 3, 4, 4, 5}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalWater(tt.heights)
			if err != nil {
				t.Fatalf("TotalWater(%v) error = %v", tt.heights, err)
			}
			if got != tt.want {
				t.Errorf("TotalWater(%v) = %d, want %d", tt.heights, got, tt.want)
			}
		})
	}
}

func TestTotalWater_Monotonic(t *testing.T) {
	increasing := []int{1, 2, 3, 4, 5, 6}
	decreasing := []int{9, 7, 5, 3, 1}

	if got, _ := TotalWater(increasing); got != 0 {
		t.Errorf("TotalWater(%v) = %d, want 0", increasing, got)
	}
	if got, _ := TotalWater(decreasing); got != 0 {
		t.Errorf("TotalWater(%v) = %d, want 0", decreasing, got)
	}
}

func TestTotalWater_AllZero(t *testing.T) {
	if got, _ := TotalWater([]int{0, 0, 0, 0}); got != 0 {
		t.Errorf("TotalWater(zeros) = %d, want 0", got)
	}
}

func TestTotalWater_NegativeHeight(t *testing.T) {
	_, err := TotalWater([]int{3, -1, 3})
	if !errors.Is(err, skyline.ErrNegativeHeight) {
		t.Errorf("TotalWater() error = %v, want ErrNegativeHeight", err)
	}
}

// TestTotalWater_MatchesReference cross-checks the rewrite engine against the
// independent prefix-maximum formula on deterministic pseudo-random profiles.
func TestTotalWater_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(40)
		heights := make([]int, n)
		for i := range heights {
			heights[i] = rng.Intn(12)
		}

		got, err := TotalWater(heights)
		if err != nil {
			t.Fatalf("TotalWater(%v) error = %v", heights, err)
		}
		want, err := Reference(heights)
		if err != nil {
			t.Fatalf("Reference(%v) error = %v", heights, err)
		}
		if got != want {
			t.Fatalf("TotalWater(%v) = %d, reference = %d", heights, got, want)
		}
	}
}

func TestReduce_ConsumesSkyline(t *testing.T) {
	s, _ := skyline.FromHeights(5, 2, 2, 5)

	water := Reduce(s)

	if water != 6 {
		t.Errorf("Reduce() = %d, want 6", water)
	}
	if s.Len() > 1 {
		t.Errorf("Len() after reduce = %d, want <= 1", s.Len())
	}
}

func TestReduceTrace_StepsAccountForWater(t *testing.T) {
	s, _ := skyline.FromHeights(1, 5, 2, 5, 2, 5, 10, 3, 5)

	var steps []Step
	total := ReduceTrace(s, func(st Step, _ *skyline.Skyline) {
		steps = append(steps, st)
	})

	if total != 8 {
		t.Fatalf("ReduceTrace() = %d, want 8", total)
	}
	if len(steps) == 0 {
		t.Fatal("ReduceTrace() recorded no steps")
	}

	sum := 0
	for _, st := range steps {
		if st.Water != 0 && st.Rule != RuleLocalMin {
			t.Errorf("step %s collected %d water, only %s may collect", st.Rule, st.Water, RuleLocalMin)
		}
		sum += st.Water
	}
	if sum != total {
		t.Errorf("step water sums to %d, want %d", sum, total)
	}
}

// TestReduceTrace_InvariantsHold checks the core invariants after every
// rewrite: widths always sum to the original column count, heights stay
// non-negative, and the chain remains intact.
func TestReduceTrace_InvariantsHold(t *testing.T) {
	heights := []int{5, 4, 4, 3, 3, 2, 2, 1, 1, 5}
	s, _ := skyline.FromHeights(heights...)

	ReduceTrace(s, func(st Step, snap *skyline.Skyline) {
		if err := snap.Validate(); err != nil {
			t.Fatalf("after %s: %v", st.Rule, err)
		}
		widths := 0
		for _, b := range snap.Buildings() {
			if b.Height < 0 {
				t.Fatalf("after %s: negative height %d", st.Rule, b.Height)
			}
			if b.Width < 1 {
				t.Fatalf("after %s: width %d below 1", st.Rule, b.Width)
			}
			widths += b.Width
		}
		if widths != len(heights) {
			t.Fatalf("after %s: widths sum to %d, want %d", st.Rule, widths, len(heights))
		}
	})
}

func TestReduceTrace_NilCallbackMatchesReduce(t *testing.T) {
	a, _ := skyline.FromHeights(5, 2, 5, 2, 5, 10)
	b, _ := skyline.FromHeights(5, 2, 5, 2, 5, 10)

	if got, want := ReduceTrace(a, nil), Reduce(b); got != want {
		t.Errorf("ReduceTrace(nil) = %d, Reduce() = %d", got, want)
	}
}
