package errors

// MaxBuildings caps the number of buildings in a single height profile.
// The solver is linear, but trace output grows with the profile and the
// API should not serialize unbounded responses.
const MaxBuildings = 1_000_000

// ValidateHeights validates a height profile for the solver.
// Heights must be non-negative, and the profile may not exceed
// [MaxBuildings] entries.
//
// The reducer itself treats negative heights as undefined input, so the
// validation here is the single fail-fast gate shared by CLI and API.
func ValidateHeights(heights []int) error {
	if len(heights) > MaxBuildings {
		return New(ErrCodeInvalidInput, "too many buildings: %d (max %d)", len(heights), MaxBuildings)
	}
	for i, h := range heights {
		if h < 0 {
			return New(ErrCodeInvalidHeight, "height %d at position %d is negative", h, i)
		}
	}
	return nil
}
