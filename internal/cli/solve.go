package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wio "github.com/skylinelab/watertower/pkg/io"
	"github.com/skylinelab/watertower/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	file    string // input profile file (json, toml, csv, or plain text)
	output  string // write the full result as JSON to this path
	asJSON  bool   // print the full result as JSON to stdout
	noCache bool   // disable the result cache
	refresh bool   // recompute even if cached
}

// newSolveCmd creates the solve command.
//
// Heights can be passed as positional arguments or read from a file:
//
//	watertower solve 5 2 2 5
//	watertower solve --file skyline.toml
func newSolveCmd(configPath *string) *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [heights...]",
		Short: "Compute the water trapped by a skyline",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, &opts, *configPath)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read heights from a file (json, toml, csv, or text)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result as JSON to a file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

func runSolve(cmd *cobra.Command, args []string, opts *solveOpts, configPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	profile, err := resolveProfile(args, opts.file)
	if err != nil {
		return err
	}
	if len(profile.Heights) == 0 {
		printWarning("Profile is empty, nothing to solve")
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

	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Heights: profile.Heights,
		Name:    profile.Name,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Solved %d buildings", result.Stats.Buildings))

	if opts.output != "" {
		if err := wio.ExportJSON(result, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	if opts.asJSON {
		return wio.WriteJSON(result, os.Stdout)
	}

	printSuccess("Water trapped: %s", StyleNumber.Render(fmt.Sprintf("%d", result.Water)))
	printStats(result.Stats.Buildings, result.Stats.StepCount, result.CacheInfo.Hit)
	printDetail("profile %s", result.ProfileHash[:12])
	return nil
}
