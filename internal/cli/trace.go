package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/skylinelab/watertower/pkg/errors"
	"github.com/skylinelab/watertower/pkg/pipeline"
	"github.com/skylinelab/watertower/pkg/render"
	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	file    string // input profile file
	dot     string // write the reduction lineage as DOT to this path
	image   string // render the lineage via graphviz (.svg or .png)
	noCache bool
}

// newTraceCmd creates the trace command, which prints every rewrite rule
// application the solver performs.
func newTraceCmd(configPath *string) *cobra.Command {
	var opts traceOpts

	cmd := &cobra.Command{
		Use:   "trace [heights...]",
		Short: "Show every rewrite step of the solver",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, args, &opts, *configPath)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read heights from a file (json, toml, csv, or text)")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the reduction lineage as a DOT file")
	cmd.Flags().StringVar(&opts.image, "image", "", "render the lineage with graphviz (.svg or .png)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func runTrace(cmd *cobra.Command, args []string, opts *traceOpts, configPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	profile, err := resolveProfile(args, opts.file)
	if err != nil {
		return err
	}
	if len(profile.Heights) == 0 {
		printWarning("Profile is empty, nothing to trace")
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	runner, err := newRunner(ctx, cfg, opts.noCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Heights: profile.Heights,
		Name:    profile.Name,
		Trace:   true,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Reduction trace"))
	fmt.Println(renderStepTable(result.Steps))
	printNewline()
	printSuccess("Water trapped: %s", StyleNumber.Render(fmt.Sprintf("%d", result.Water)))
	printStats(result.Stats.Buildings, result.Stats.StepCount, result.CacheInfo.Hit)

	if opts.dot != "" || opts.image != "" {
		dot, err := render.ToDOT(profile.Heights)
		if err != nil {
			return err
		}
		if opts.dot != "" {
			if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
				return err
			}
			printFile(opts.dot)
		}
		if opts.image != "" {
			if err := writeLineageImage(dot, opts.image); err != nil {
				return err
			}
			printFile(opts.image)
		}
	}
	return nil
}

// renderStepTable formats the trace as a bordered table.
func renderStepTable(steps []reduce.Step) string {
	rows := make([][]string, 0, len(steps))
	for i, st := range steps {
		water := ""
		if st.Water > 0 {
			water = fmt.Sprintf("+%d", st.Water)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			st.Rule,
			fmt.Sprintf("%d", st.Index),
			water,
			fmt.Sprintf("%d", st.Height),
			fmt.Sprintf("%d", st.Width),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	waterStyle := lipgloss.NewStyle().Foreground(colorCyan)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "Rule", "At", "Water", "H", "W").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return waterStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// writeLineageImage renders DOT to SVG or PNG based on the file extension.
func writeLineageImage(dot, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		data, err = render.DOTSVG(dot)
	case ".png":
		data, err = render.DOTPNG(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "image path %s must end in .svg or .png", path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
