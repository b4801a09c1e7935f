package reduce

import "github.com/skylinelab/watertower/pkg/skyline"

// Reference computes trapped water with the classic prefix-maximum formula:
// every column holds min(max-to-left, max-to-right) - height units. It is an
// independent implementation used to cross-check the rewrite engine and to
// mark which columns hold water when rendering.
//
// Like [TotalWater] it rejects negative heights.
func Reference(heights []int) (int, error) {
	cols, err := WaterColumns(heights)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, w := range cols {
		total += w
	}
	return total, nil
}

// WaterColumns returns the units of water standing on each column.
// The result has the same length as heights; columns that hold no water
// are zero.
func WaterColumns(heights []int) ([]int, error) {
	for _, h := range heights {
		if h < 0 {
			return nil, skyline.ErrNegativeHeight
		}
	}

	n := len(heights)
	cols := make([]int, n)
	if n < 3 {
		return cols, nil
	}

	maxLeft := make([]int, n)
	running := 0
	for i, h := range heights {
		maxLeft[i] = running
		running = max(running, h)
	}

	maxRight := 0
	for i := n - 1; i >= 0; i-- {
		level := min(maxLeft[i], maxRight)
		if level > heights[i] {
			cols[i] = level - heights[i]
		}
		maxRight = max(maxRight, heights[i])
	}
	return cols, nil
}
