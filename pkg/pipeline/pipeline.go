// Package pipeline provides the core solve pipeline for Watertower.
//
// This package implements the complete validate → solve → render pipeline
// that is shared by the CLI and the HTTP API. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: Check the height profile and apply option defaults
//  2. Solve: Run the rewrite engine to compute trapped water
//  3. Render: Generate optional output artifacts (text, SVG, DOT)
//
// Solve results are cached by profile content hash, so repeated requests
// for the same skyline skip the solver entirely.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Heights: []int{5, 2, 5},
//	    Trace:   true,
//	    Styles:  []string{"text"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Water)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skylinelab/watertower/pkg/errors"
	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

// Style constants for output artifacts.
const (
	StyleText = "text"
	StyleSVG  = "svg"
	StyleDOT  = "dot"
)

// ValidStyles is the set of supported artifact styles.
var ValidStyles = map[string]bool{
	StyleText: true,
	StyleSVG:  true,
	StyleDOT:  true,
}

// Options contains all configuration for the solve pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Heights is the skyline profile to solve. Each entry is a building of
	// width one; negative heights are rejected.
	Heights []int `json:"heights"`

	// Name is an optional label for the profile, used in logs only.
	Name string `json:"name,omitempty"`

	// Trace records every rule application in Result.Steps.
	Trace bool `json:"trace,omitempty"`

	// Styles selects the artifacts to render (text, svg, dot). Empty means
	// no artifacts, just the water total.
	Styles []string `json:"styles,omitempty"`

	// Refresh bypasses the cache lookup and overwrites the stored entry.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides the cache entry expiry. Zero uses cache.DefaultTTL.
	TTL time.Duration `json:"-"`

	// Logger receives per-stage progress. Defaults to a discarding logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Water is the total units of trapped water.
	Water int `json:"water"`

	// Steps is the rule application trace, present only when Options.Trace
	// was set.
	Steps []reduce.Step `json:"steps,omitempty"`

	// Artifacts contains rendered outputs keyed by style.
	Artifacts map[string][]byte `json:"artifacts,omitempty"`

	// ProfileHash is the content hash of the height profile.
	ProfileHash string `json:"profile_hash"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the result came from the cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Buildings  int           `json:"buildings"`
	StepCount  int           `json:"step_count"`
	SolveTime  time.Duration `json:"solve_time"`
	RenderTime time.Duration `json:"render_time"`
}

// CacheInfo tracks cache usage for a pipeline run.
type CacheInfo struct {
	Hit bool `json:"hit"` // whether the solve result came from cache
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: text, svg, dot)", style)
	}
	return nil
}

// ValidateStyles checks that all styles are valid.
func ValidateStyles(styles []string) error {
	for _, s := range styles {
		if err := ValidateStyle(s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the profile and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateHeights(o.Heights); err != nil {
		return err
	}
	if err := ValidateStyles(o.Styles); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
