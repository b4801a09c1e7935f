package reduce

import (
	"testing"

	"github.com/skylinelab/watertower/pkg/skyline"
)

func TestMatchMinLeft(t *testing.T) {
	s, _ := skyline.FromHeights(2, 5, 1)
	head := s.First()

	if !matchMinLeft(s, head) {
		t.Errorf("matchMinLeft(head 2 < 5) = false, want true")
	}
	if matchMinLeft(s, s.Next(head)) {
		t.Errorf("matchMinLeft(interior node) = true, want false")
	}
	if matchMinLeft(s, s.Last()) {
		t.Errorf("matchMinLeft(tail) = true, want false")
	}
}

func TestMatchMinLeft_EqualHeights(t *testing.T) {
	s, _ := skyline.FromHeights(5, 5)
	if matchMinLeft(s, s.First()) {
		t.Errorf("matchMinLeft(5, 5) = true, want false (strict comparison)")
	}
}

func TestApplyMinLeft(t *testing.T) {
	s, _ := skyline.FromHeights(2, 5)
	head := s.First()
	succ := s.Next(head)

	eff := applyMinLeft(s, head)

	if eff.next != succ {
		t.Errorf("next = %d, want %d", eff.next, succ)
	}
	if eff.absorbed != head {
		t.Errorf("absorbed = %d, want %d", eff.absorbed, head)
	}
	if s.Len() != 1 || s.First() != succ {
		t.Errorf("skyline after apply: len %d, head %d", s.Len(), s.First())
	}
	if eff.water != 0 {
		t.Errorf("water = %d, want 0", eff.water)
	}
}

func TestMatchMinRight(t *testing.T) {
	s, _ := skyline.FromHeights(1, 5, 2)
	tail := s.Last()

	if !matchMinRight(s, tail) {
		t.Errorf("matchMinRight(tail 2 < 5) = false, want true")
	}
	if matchMinRight(s, s.First()) {
		t.Errorf("matchMinRight(head) = true, want false")
	}
}

func TestApplyMinRight(t *testing.T) {
	s, _ := skyline.FromHeights(5, 2)
	head := s.First()
	tail := s.Last()

	eff := applyMinRight(s, tail)

	if eff.next != head {
		t.Errorf("next = %d, want %d (the predecessor)", eff.next, head)
	}
	if eff.absorbed != tail {
		t.Errorf("absorbed = %d, want %d", eff.absorbed, tail)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestMatchCollapse(t *testing.T) {
	s, _ := skyline.FromHeights(3, 3, 4)
	second := s.Next(s.First())

	if !matchCollapse(s, second) {
		t.Errorf("matchCollapse(equal predecessor) = false, want true")
	}
	if matchCollapse(s, s.First()) {
		t.Errorf("matchCollapse(head) = true, want false")
	}
	if matchCollapse(s, s.Last()) {
		t.Errorf("matchCollapse(4 after 3) = true, want false")
	}
}

func TestApplyCollapse(t *testing.T) {
	s, _ := skyline.FromHeights(3, 3)
	second := s.Next(s.First())

	eff := applyCollapse(s, second)

	if eff.next != second {
		t.Errorf("next = %d, want %d (cursor stays)", eff.next, second)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if got := s.Width(second); got != 2 {
		t.Errorf("Width() = %d, want 2", got)
	}
	if got := s.Height(second); got != 3 {
		t.Errorf("Height() = %d, want 3", got)
	}
}

func TestMatchLocalMin(t *testing.T) {
	s, _ := skyline.FromHeights(5, 2, 4)
	mid := s.Next(s.First())

	if !matchLocalMin(s, mid) {
		t.Errorf("matchLocalMin(2 between 5 and 4) = false, want true")
	}
	if matchLocalMin(s, s.First()) {
		t.Errorf("matchLocalMin(boundary) = true, want false")
	}
}

func TestMatchLocalMin_EqualNeighbor(t *testing.T) {
	// 2 is not *strictly* below its right neighbor.
	s, _ := skyline.FromHeights(5, 2, 2)
	mid := s.Next(s.First())
	if matchLocalMin(s, mid) {
		t.Errorf("matchLocalMin(5, 2, 2) = true, want false")
	}
}

func TestApplyLocalMin(t *testing.T) {
	s, _ := skyline.New(
		skyline.Building{Height: 5, Width: 1},
		skyline.Building{Height: 2, Width: 3},
		skyline.Building{Height: 4, Width: 1},
	)
	mid := s.Next(s.First())

	eff := applyLocalMin(s, mid)

	// Raised to the shorter neighbor (4), collecting (4-2)*3 = 6 units.
	if eff.water != 6 {
		t.Errorf("water = %d, want 6", eff.water)
	}
	if eff.next != mid {
		t.Errorf("next = %d, want %d (cursor stays)", eff.next, mid)
	}
	if got := s.Height(mid); got != 4 {
		t.Errorf("Height() = %d, want 4", got)
	}
	if got := s.Width(mid); got != 3 {
		t.Errorf("Width() = %d, want 3 (unchanged)", got)
	}
}

func TestApplyLocalMin_ThenCollapses(t *testing.T) {
	// After leveling, the raised building equals its right neighbor and the
	// collapse rule must claim it before local-min is re-evaluated.
	s, _ := skyline.FromHeights(5, 2, 4)
	mid := s.Next(s.First())

	applyLocalMin(s, mid)

	if !matchCollapse(s, s.Next(mid)) {
		t.Errorf("collapse does not match the neighbor after leveling")
	}
	if matchLocalMin(s, mid) {
		t.Errorf("local-min still matches after leveling")
	}
}

func TestMatchAdvance(t *testing.T) {
	s, _ := skyline.FromHeights(4, 1)
	if !matchAdvance(s, s.First()) {
		t.Errorf("matchAdvance(non-tail) = false, want true")
	}
	if matchAdvance(s, s.Last()) {
		t.Errorf("matchAdvance(tail) = true, want false")
	}
}

func TestRuleOrder(t *testing.T) {
	want := []string{RuleMinLeft, RuleMinRight, RuleCollapse, RuleLocalMin, RuleAdvance}
	if len(rules) != len(want) {
		t.Fatalf("len(rules) = %d, want %d", len(rules), len(want))
	}
	for i, r := range rules {
		if r.name != want[i] {
			t.Errorf("rules[%d] = %s, want %s", i, r.name, want[i])
		}
	}
}
