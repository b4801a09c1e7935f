package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skylinelab/watertower/pkg/pipeline"
	"github.com/skylinelab/watertower/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	file   string // input profile file
	style  string // output style: "text" or "svg"
	output string // output file path (stdout if empty and style is text)
	unit   float64
}

// newRenderCmd creates the render command for drawing flooded skylines.
func newRenderCmd(configPath *string) *cobra.Command {
	opts := renderOpts{unit: 20}

	cmd := &cobra.Command{
		Use:   "render [heights...]",
		Short: "Draw the flooded skyline as text or SVG",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &opts, *configPath)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read heights from a file (json, toml, csv, or text)")
	cmd.Flags().StringVar(&opts.style, "style", "", "output style: text (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout for text, skyline.svg for svg)")
	cmd.Flags().Float64Var(&opts.unit, "unit", opts.unit, "pixels per height unit (svg only)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *renderOpts, configPath string) error {
	profile, err := resolveProfile(args, opts.file)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	style := opts.style
	if style == "" {
		style = cfg.Render.Style
	}
	if err := pipeline.ValidateStyle(style); err != nil {
		return err
	}

	switch style {
	case pipeline.StyleSVG:
		svg, err := render.SVG(profile.Heights, render.SVGOptions{Unit: opts.unit})
		if err != nil {
			return err
		}
		out := opts.output
		if out == "" {
			out = "skyline.svg"
		}
		if err := os.WriteFile(out, svg, 0o644); err != nil {
			return err
		}
		printSuccess("Rendered %d buildings", len(profile.Heights))
		printFile(out)
		return nil

	case pipeline.StyleDOT:
		dot, err := render.ToDOT(profile.Heights)
		if err != nil {
			return err
		}
		if opts.output != "" {
			if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
				return err
			}
			printFile(opts.output)
			return nil
		}
		fmt.Print(dot)
		return nil

	default:
		text := render.Text(profile.Heights)
		if opts.output != "" {
			if err := os.WriteFile(opts.output, []byte(text+"\n"), 0o644); err != nil {
				return err
			}
			printFile(opts.output)
			return nil
		}
		fmt.Println(text)
		return nil
	}
}
