package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skylinelab/watertower/pkg/render"
	"github.com/skylinelab/watertower/pkg/skyline"
	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

// newTUICmd creates the tui command, an interactive stepper through the
// reduction.
func newTUICmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tui [heights...]",
		Short: "Step through the reduction interactively",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile(args, file)
			if err != nil {
				return err
			}
			if len(profile.Heights) == 0 {
				printWarning("Profile is empty, nothing to show")
				return nil
			}

			model, err := NewTraceModel(profile.Heights)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read heights from a file (json, toml, csv, or text)")
	return cmd
}

// traceFrame is one snapshot of the skyline during reduction.
type traceFrame struct {
	step    *reduce.Step // nil for the initial frame
	heights []int        // per-column heights after the step
	water   int          // running water total after the step
}

// TraceModel is the bubbletea model for stepping through a reduction.
type TraceModel struct {
	frames []traceFrame
	cursor int
	total  int
}

// NewTraceModel solves the profile and captures one frame per rewrite step.
func NewTraceModel(heights []int) (TraceModel, error) {
	s, err := skyline.FromHeights(heights...)
	if err != nil {
		return TraceModel{}, err
	}

	initial := make([]int, len(heights))
	copy(initial, heights)
	frames := []traceFrame{{heights: initial}}

	running := 0
	total := reduce.ReduceTrace(s, func(st reduce.Step, s *skyline.Skyline) {
		running += st.Water
		step := st
		frames = append(frames, traceFrame{
			step:    &step,
			heights: s.Heights(),
			water:   running,
		})
	})

	return TraceModel{frames: frames, total: total}, nil
}

func (m TraceModel) Init() tea.Cmd {
	return nil
}

func (m TraceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l", " ", "enter":
			if m.cursor < len(m.frames)-1 {
				m.cursor++
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.frames) - 1
		}
	}
	return m, nil
}

func (m TraceModel) View() string {
	frame := m.frames[m.cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Watertower reduction"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step  g/G first/last  q quit"))
	b.WriteString("\n\n")

	b.WriteString(render.Text(frame.heights))
	b.WriteString("\n\n")

	if frame.step == nil {
		b.WriteString(StyleDim.Render("initial skyline"))
	} else {
		info := fmt.Sprintf("step %d/%d  %s at #%d", m.cursor, len(m.frames)-1, frame.step.Rule, frame.step.Index)
		b.WriteString(StyleValue.Render(info))
		if frame.step.Water > 0 {
			b.WriteString(StyleNumber.Render(fmt.Sprintf("  +%d water", frame.step.Water)))
		}
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("collected %d / %d", frame.water, m.total)))
	b.WriteString("\n")

	return b.String()
}
