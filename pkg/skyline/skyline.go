// Package skyline provides the data model for 1D water-trapping problems.
//
// A Skyline is an ordered, mutable sequence of Buildings. Each Building is a
// segment of one or more unit-width columns that were merged into a single
// (height, width) record. The sequence is backed by an arena of records
// addressed by stable integer indices with explicit prev/next links, so
// removal and merging are O(1) index relinks rather than pointer surgery.
//
// The reducer in [github.com/skylinelab/watertower/pkg/skyline/reduce]
// destructively shrinks a Skyline until the remaining water-trapping problem
// is trivial. A Skyline is owned by a single reduction at a time and is not
// safe for concurrent use.
package skyline

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeHeight is returned by [FromHeights] when an input height is
	// negative. Negative heights have no physical meaning for a skyline, so
	// construction fails fast instead of producing a silently wrong answer.
	ErrNegativeHeight = errors.New("height must not be negative")

	// ErrInvalidWidth is returned by [New] when a building width is below 1.
	// Every building represents at least one original unit-width column.
	ErrInvalidWidth = errors.New("width must be at least 1")
)

// None is the sentinel index marking "no predecessor" or "no successor"
// at the boundaries of the chain.
const None = -1

// Building is a segment of one or more adjacent unit-width columns collapsed
// into a single record. Height may have been raised during reduction and then
// no longer equals the original column height; Width always equals the number
// of original columns merged into the segment.
type Building struct {
	Height int // current (possibly raised) height, >= 0
	Width  int // number of merged unit columns, >= 1
}

// node is one arena slot: a building plus its chain links.
// Removed slots stay in the arena with dead=true so indices remain stable.
type node struct {
	b    Building
	prev int
	next int
	dead bool
}

// Skyline is a doubly-linked sequence of Buildings backed by an index arena.
//
// The zero value is not usable - use [New] or [FromHeights].
type Skyline struct {
	arena []node
	head  int
	tail  int
	live  int
}

// New creates a Skyline from pre-built buildings, preserving order.
// Returns ErrNegativeHeight or ErrInvalidWidth if a building is malformed.
func New(buildings ...Building) (*Skyline, error) {
	s := &Skyline{head: None, tail: None}
	for _, b := range buildings {
		if b.Height < 0 {
			return nil, fmt.Errorf("building %d: %w", len(s.arena), ErrNegativeHeight)
		}
		if b.Width < 1 {
			return nil, fmt.Errorf("building %d: %w", len(s.arena), ErrInvalidWidth)
		}
		s.push(b)
	}
	return s, nil
}

// FromHeights creates a Skyline with one width-1 Building per height,
// preserving input order. Returns ErrNegativeHeight if any height is
// negative.
func FromHeights(heights ...int) (*Skyline, error) {
	s := &Skyline{head: None, tail: None}
	for i, h := range heights {
		if h < 0 {
			return nil, fmt.Errorf("height %d at position %d: %w", h, i, ErrNegativeHeight)
		}
		s.push(Building{Height: h, Width: 1})
	}
	return s, nil
}

// push appends a building to the tail of the chain.
func (s *Skyline) push(b Building) {
	idx := len(s.arena)
	s.arena = append(s.arena, node{b: b, prev: s.tail, next: None})
	if s.tail != None {
		s.arena[s.tail].next = idx
	} else {
		s.head = idx
	}
	s.tail = idx
	s.live++
}

// Len returns the number of live buildings in the sequence.
func (s *Skyline) Len() int { return s.live }

// First returns the index of the left-most building, or None if empty.
func (s *Skyline) First() int { return s.head }

// Last returns the index of the right-most building, or None if empty.
func (s *Skyline) Last() int { return s.tail }

// Prev returns the index of the predecessor of i, or None at the left
// boundary.
func (s *Skyline) Prev(i int) int { return s.arena[i].prev }

// Next returns the index of the successor of i, or None at the right
// boundary.
func (s *Skyline) Next(i int) int { return s.arena[i].next }

// Building returns a copy of the building at index i.
// The index must refer to a live node.
func (s *Skyline) Building(i int) Building { return s.arena[i].b }

// Height returns the height of the building at index i.
func (s *Skyline) Height(i int) int { return s.arena[i].b.Height }

// Width returns the width of the building at index i.
func (s *Skyline) Width(i int) int { return s.arena[i].b.Width }

// SetHeight raises or lowers the height of the building at index i.
// The reducer uses this to level a local minimum up to its shorter
// flanking neighbor.
func (s *Skyline) SetHeight(i, h int) { s.arena[i].b.Height = h }

// Remove unlinks the building at index i from the chain in O(1).
// The arena slot is retained (marked dead) so other indices stay valid.
func (s *Skyline) Remove(i int) {
	n := &s.arena[i]
	if n.prev != None {
		s.arena[n.prev].next = n.next
	} else {
		s.head = n.next
	}
	if n.next != None {
		s.arena[n.next].prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.dead = true
	n.prev, n.next = None, None
	s.live--
}

// AbsorbLeft merges the predecessor of i into the building at i: the
// predecessor's width is added to i's width and the predecessor is removed.
// The two buildings must have equal heights - absorbing a building of a
// different height would change the trapped-water total.
// Returns the predecessor's former index.
func (s *Skyline) AbsorbLeft(i int) int {
	p := s.arena[i].prev
	s.arena[i].b.Width += s.arena[p].b.Width
	s.Remove(p)
	return p
}

// Buildings returns the live buildings in left-to-right order.
func (s *Skyline) Buildings() []Building {
	out := make([]Building, 0, s.live)
	for i := s.head; i != None; i = s.arena[i].next {
		out = append(out, s.arena[i].b)
	}
	return out
}

// Heights expands the sequence back into unit-width column heights,
// repeating each building's height Width times. Useful for rendering
// intermediate reduction states.
func (s *Skyline) Heights() []int {
	var out []int
	for i := s.head; i != None; i = s.arena[i].next {
		b := s.arena[i].b
		for range b.Width {
			out = append(out, b.Height)
		}
	}
	return out
}

// Validate checks chain integrity: the live chain must be linear, acyclic,
// consistent in both directions, and its length must match Len. It returns
// nil for a valid skyline. This is a debugging aid for the reducer's tests.
func (s *Skyline) Validate() error {
	seen := 0
	prev := None
	for i := s.head; i != None; i = s.arena[i].next {
		if s.arena[i].dead {
			return fmt.Errorf("dead node %d linked into chain", i)
		}
		if s.arena[i].prev != prev {
			return fmt.Errorf("node %d: prev link is %d, want %d", i, s.arena[i].prev, prev)
		}
		if seen++; seen > s.live {
			return fmt.Errorf("chain longer than %d live nodes (cycle?)", s.live)
		}
		prev = i
	}
	if prev != s.tail {
		return fmt.Errorf("tail is %d, want %d", s.tail, prev)
	}
	if seen != s.live {
		return fmt.Errorf("chain has %d nodes, want %d", seen, s.live)
	}
	return nil
}
