package reduce

import "github.com/skylinelab/watertower/pkg/skyline"

// Rule names as they appear in [Step] records and trace output.
const (
	RuleMinLeft  = "min-left"
	RuleMinRight = "min-right"
	RuleCollapse = "collapse"
	RuleLocalMin = "local-min"
	RuleAdvance  = "advance"
)

// effect is the outcome of applying a rule: the next cursor position, the
// water collected, and the arena index of a building that was removed or
// merged away (skyline.None if the step removed nothing).
type effect struct {
	next     int
	water    int
	absorbed int
}

// rule pairs a side-effect-free predicate with the transform it guards.
// Predicates inspect the skyline around the cursor without mutating it, so
// each rule is testable in isolation.
type rule struct {
	name  string
	match func(s *skyline.Skyline, cur int) bool
	apply func(s *skyline.Skyline, cur int) effect
}

// rules is the ordered rule set. The terminal rule is implicit: the reducer
// loop stops before dispatch once at most one building remains.
var rules = []rule{
	{name: RuleMinLeft, match: matchMinLeft, apply: applyMinLeft},
	{name: RuleMinRight, match: matchMinRight, apply: applyMinRight},
	{name: RuleCollapse, match: matchCollapse, apply: applyCollapse},
	{name: RuleLocalMin, match: matchLocalMin, apply: applyLocalMin},
	{name: RuleAdvance, match: matchAdvance, apply: applyAdvance},
}

// matchMinLeft: the cursor sits at the left boundary and is strictly shorter
// than its successor. With nothing to its left it can never hold water, and
// being shorter than its neighbor it can never bound a basin either.
func matchMinLeft(s *skyline.Skyline, cur int) bool {
	next := s.Next(cur)
	return s.Prev(cur) == skyline.None && next != skyline.None &&
		s.Height(cur) < s.Height(next)
}

func applyMinLeft(s *skyline.Skyline, cur int) effect {
	next := s.Next(cur)
	s.Remove(cur)
	return effect{next: next, absorbed: cur}
}

// matchMinRight mirrors matchMinLeft at the right boundary.
func matchMinRight(s *skyline.Skyline, cur int) bool {
	prev := s.Prev(cur)
	return s.Next(cur) == skyline.None && prev != skyline.None &&
		s.Height(cur) < s.Height(prev)
}

func applyMinRight(s *skyline.Skyline, cur int) effect {
	prev := s.Prev(cur)
	s.Remove(cur)
	return effect{next: prev, absorbed: cur}
}

// matchCollapse: the predecessor has exactly the cursor's height. Two
// adjacent equal-height buildings behave identically to one wider building
// under every other rule, and fusing them is what lets a plateau flank a
// later local minimum.
func matchCollapse(s *skyline.Skyline, cur int) bool {
	prev := s.Prev(cur)
	return prev != skyline.None && s.Height(prev) == s.Height(cur)
}

func applyCollapse(s *skyline.Skyline, cur int) effect {
	return effect{next: cur, absorbed: s.AbsorbLeft(cur)}
}

// matchLocalMin: the cursor is strictly shorter than both neighbors, so it
// traps water up to the shorter of the two.
func matchLocalMin(s *skyline.Skyline, cur int) bool {
	prev, next := s.Prev(cur), s.Next(cur)
	if prev == skyline.None || next == skyline.None {
		return false
	}
	h := s.Height(cur)
	return h < s.Height(prev) && h < s.Height(next)
}

// applyLocalMin collects (m - height) * width water, where m is the shorter
// flanking height, and raises the cursor to m. The cursor stays put: on the
// next iteration the collapse rule fuses it with the neighbor it now equals.
func applyLocalMin(s *skyline.Skyline, cur int) effect {
	m := min(s.Height(s.Prev(cur)), s.Height(s.Next(cur)))
	collected := (m - s.Height(cur)) * s.Width(cur)
	s.SetHeight(cur, m)
	return effect{next: cur, water: collected, absorbed: skyline.None}
}

// matchAdvance: the default rule - nothing simplifies here, move right.
// A cursor with no successor never reaches this rule: every tail state is
// claimed by min-right, collapse, or the terminal condition.
func matchAdvance(s *skyline.Skyline, cur int) bool {
	return s.Next(cur) != skyline.None
}

func applyAdvance(s *skyline.Skyline, cur int) effect {
	return effect{next: s.Next(cur), absorbed: skyline.None}
}
