package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skylinelab/watertower/pkg/cache"
	"github.com/skylinelab/watertower/pkg/errors"
	"github.com/skylinelab/watertower/pkg/observability"
	"github.com/skylinelab/watertower/pkg/render"
	"github.com/skylinelab/watertower/pkg/skyline"
	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the expiry applied to cache entries when Options.TTL is zero.
	// Zero falls back to cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// solveEntry is the cached form of a solve result. Artifacts are not
// cached; they render deterministically from the profile in microseconds.
type solveEntry struct {
	Water int           `json:"water"`
	Steps []reduce.Step `json:"steps,omitempty"`
}

// Execute runs the complete validate → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	hash := cache.HashHeights(opts.Heights)
	key := r.Keyer.SolveKey(hash, cache.SolveKeyOpts{Trace: opts.Trace})

	result := &Result{ProfileHash: hash}
	result.Stats.Buildings = len(opts.Heights)

	// Stage 1: solve, serving from cache when possible.
	solveStart := time.Now()
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var entry solveEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				observability.Cache().OnCacheHit(ctx, "solve")
				result.Water = entry.Water
				result.Steps = entry.Steps
				result.CacheInfo.Hit = true
			}
		}
	}
	if !result.CacheInfo.Hit {
		observability.Cache().OnCacheMiss(ctx, "solve")

		water, steps, err := r.solve(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.Water = water
		result.Steps = steps

		entry := solveEntry{Water: water, Steps: steps}
		if data, err := json.Marshal(entry); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.entryTTL(opts)); err == nil {
				observability.Cache().OnCacheSet(ctx, "solve", len(data))
			}
		}
	}
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.StepCount = len(result.Steps)

	logger.Info("solved profile",
		"name", opts.Name,
		"buildings", result.Stats.Buildings,
		"water", result.Water,
		"cached", result.CacheInfo.Hit,
		"duration", result.Stats.SolveTime)

	// Stage 2: render requested artifacts.
	if len(opts.Styles) > 0 {
		renderStart := time.Now()
		artifacts, err := r.renderArtifacts(opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)

		logger.Info("rendered artifacts",
			"styles", opts.Styles,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// entryTTL resolves the cache expiry for a run: per-request TTL first, then
// the runner's configured TTL, then the package default.
func (r *Runner) entryTTL(opts Options) time.Duration {
	if opts.TTL != 0 {
		return opts.TTL
	}
	if r.TTL != 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}

// Solve is a convenience wrapper that runs the pipeline without artifacts
// and returns just the water total.
func (r *Runner) Solve(ctx context.Context, heights []int) (int, error) {
	result, err := r.Execute(ctx, Options{Heights: heights, Logger: r.Logger})
	if err != nil {
		return 0, err
	}
	return result.Water, nil
}

// solve runs the rewrite engine, recording steps when tracing is on.
func (r *Runner) solve(ctx context.Context, opts Options) (int, []reduce.Step, error) {
	s, err := skyline.FromHeights(opts.Heights...)
	if err != nil {
		return 0, nil, err
	}

	observability.Solver().OnSolveStart(ctx, len(opts.Heights))
	start := time.Now()

	var water int
	var steps []reduce.Step
	if opts.Trace {
		water = reduce.ReduceTrace(s, func(st reduce.Step, _ *skyline.Skyline) {
			steps = append(steps, st)
			observability.Solver().OnRuleApplied(ctx, st.Rule, st.Water)
		})
	} else {
		water = reduce.Reduce(s)
	}

	observability.Solver().OnSolveComplete(ctx, len(opts.Heights), water, time.Since(start), nil)
	return water, steps, nil
}

// renderArtifacts produces one artifact per requested style.
func (r *Runner) renderArtifacts(opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Styles))
	for _, style := range opts.Styles {
		switch style {
		case StyleText:
			artifacts[style] = []byte(render.Text(opts.Heights))
		case StyleSVG:
			svg, err := render.SVG(opts.Heights, render.SVGOptions{})
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
			artifacts[style] = svg
		case StyleDOT:
			dot, err := render.ToDOT(opts.Heights)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render dot")
			}
			artifacts[style] = []byte(dot)
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
