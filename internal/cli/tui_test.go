package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewTraceModel_Frames(t *testing.T) {
	m, err := NewTraceModel([]int{5, 2, 5})
	if err != nil {
		t.Fatalf("NewTraceModel() error = %v", err)
	}

	// One initial frame plus one per step.
	if len(m.frames) < 2 {
		t.Fatalf("frames = %d, want at least 2", len(m.frames))
	}
	if m.frames[0].step != nil {
		t.Error("first frame is not the initial skyline")
	}
	if m.total != 3 {
		t.Errorf("total = %d, want 3", m.total)
	}
	last := m.frames[len(m.frames)-1]
	if last.water != m.total {
		t.Errorf("final frame water = %d, want %d", last.water, m.total)
	}
}

func TestTraceModel_Navigation(t *testing.T) {
	m, err := NewTraceModel([]int{5, 2, 5})
	if err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(key("l"))
	m = next.(TraceModel)
	if m.cursor != 1 {
		t.Errorf("cursor after right = %d, want 1", m.cursor)
	}

	next, _ = m.Update(key("h"))
	m = next.(TraceModel)
	if m.cursor != 0 {
		t.Errorf("cursor after left = %d, want 0", m.cursor)
	}

	// Left at the first frame stays put.
	next, _ = m.Update(key("h"))
	m = next.(TraceModel)
	if m.cursor != 0 {
		t.Errorf("cursor underflowed to %d", m.cursor)
	}

	next, _ = m.Update(key("G"))
	m = next.(TraceModel)
	if m.cursor != len(m.frames)-1 {
		t.Errorf("cursor after end = %d, want %d", m.cursor, len(m.frames)-1)
	}

	// Right at the last frame stays put.
	next, _ = m.Update(key("l"))
	m = next.(TraceModel)
	if m.cursor != len(m.frames)-1 {
		t.Errorf("cursor overflowed to %d", m.cursor)
	}
}

func TestTraceModel_View(t *testing.T) {
	m, err := NewTraceModel([]int{5, 2, 5})
	if err != nil {
		t.Fatal(err)
	}

	view := m.View()
	if !strings.Contains(view, "initial skyline") {
		t.Errorf("initial view missing label:\n%s", view)
	}

	next, _ := m.Update(key("G"))
	m = next.(TraceModel)
	view = m.View()
	if !strings.Contains(view, "collected 3 / 3") {
		t.Errorf("final view missing water total:\n%s", view)
	}
}

func TestTraceModel_Quit(t *testing.T) {
	m, err := NewTraceModel([]int{1, 2})
	if err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("quit key produced %v, want tea.Quit", msg)
	}
}
