// Package reduce computes trapped rain water over a skyline with a rule-based
// rewrite engine.
//
// The reducer walks a [skyline.Skyline] left to right with a cursor and
// applies, at each position, the first matching rule from an ordered set of
// six simplification rules. Each application either removes a building,
// merges two equal-height buildings into a wider one, raises a local minimum
// to its shorter flanking neighbor (collecting the water above it), or moves
// the cursor. The sequence shrinks until at most one building remains; the
// accumulated water is the answer.
//
// # Rules
//
// In strict priority order:
//
//  1. terminal: zero or one building left - stop.
//  2. min-left: boundary building shorter than its successor - it can never
//     hold water or bound a basin, remove it.
//  3. min-right: the mirror case at the right boundary.
//  4. collapse: the predecessor has exactly the cursor's height - merge them
//     into one wider building.
//  5. local-min: the cursor is strictly shorter than both neighbors - collect
//     (min(neighbors) - height) * width units of water and raise the cursor
//     to the shorter neighbor. The cursor does not move, so the collapse rule
//     can fuse the newly equal pair on the next iteration.
//  6. advance: nothing else applies - move right.
//
// Rule order matters: the boundary rules must run before local-min so a
// missing neighbor is never mistaken for a shorter one, and collapse must run
// before local-min re-entry so plateaus are fused before minimum detection.
//
// Use [TotalWater] for the end-to-end computation and [Reference] for the
// independent prefix-maximum formula the engine is cross-checked against.
package reduce

import (
	"fmt"

	"github.com/skylinelab/watertower/pkg/skyline"
)

// Step describes one rule application during a reduction.
type Step struct {
	Rule     string // rule name, one of the Rule* constants
	Index    int    // arena index of the cursor building
	Absorbed int    // arena index of a removed/merged building, or skyline.None
	Water    int    // water collected by this step (local-min only)
	Height   int    // cursor height after the step
	Width    int    // cursor width after the step
}

// StepFunc observes rule applications. The skyline argument reflects the
// state after the step; callbacks must not mutate it.
type StepFunc func(Step, *skyline.Skyline)

// TotalWater returns the total units of rain water retained between the
// given building heights. It returns skyline.ErrNegativeHeight for negative
// input; any non-negative input succeeds.
func TotalWater(heights []int) (int, error) {
	s, err := skyline.FromHeights(heights...)
	if err != nil {
		return 0, err
	}
	return Reduce(s), nil
}

// Reduce runs the rewrite engine on s until at most one building remains and
// returns the collected water. The skyline is destructively consumed.
func Reduce(s *skyline.Skyline) int {
	return ReduceTrace(s, nil)
}

// ReduceTrace is [Reduce] with a step callback for tracing. A nil callback
// behaves exactly like Reduce; tracing never changes the reduction.
func ReduceTrace(s *skyline.Skyline, fn StepFunc) int {
	water := 0
	cur := s.First()

	for s.Len() > 1 {
		if cur == skyline.None {
			// The cursor ran off the chain while buildings remain. The rule
			// set is exhaustive over reachable states, so this is a defect.
			panic(fmt.Sprintf("reduce: cursor lost with %d buildings remaining", s.Len()))
		}

		applied := false
		for _, r := range rules {
			if !r.match(s, cur) {
				continue
			}
			eff := r.apply(s, cur)
			water += eff.water
			if fn != nil {
				// The boundary rules remove the cursor itself; everything
				// else leaves it alive. Report the surviving building.
				ref := cur
				if eff.absorbed == cur {
					ref = eff.next
				}
				b := s.Building(ref)
				fn(Step{
					Rule:     r.name,
					Index:    ref,
					Absorbed: eff.absorbed,
					Water:    eff.water,
					Height:   b.Height,
					Width:    b.Width,
				}, s)
			}
			cur = eff.next
			applied = true
			break
		}

		if !applied {
			b := s.Building(cur)
			panic(fmt.Sprintf("reduce: no rule matches building at index %d (height=%d width=%d prev=%d next=%d)",
				cur, b.Height, b.Width, s.Prev(cur), s.Next(cur)))
		}
	}
	return water
}
