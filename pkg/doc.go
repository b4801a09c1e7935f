// Package pkg provides the core libraries for Watertower skyline solving.
//
// # Overview
//
// Watertower computes how much rain water a skyline traps, using a
// rule-based rewrite engine instead of the usual prefix-maximum formula so
// every unit of water can be traced back to the rule that collected it.
// The pkg directory is organized into these areas:
//
//  1. [skyline] - The building sequence and its arena-backed links
//  2. [skyline/reduce] - The rewrite rules and the reduction loop
//  3. [pipeline] - Orchestration (validate → solve → render) with caching
//  4. [render] - Text, SVG, and Graphviz lineage output
//  5. [cache] - File, Redis, MongoDB, and null cache backends
//  6. [api] - The HTTP JSON API
//
// # Architecture
//
// The typical data flow through Watertower:
//
//	Height profile (args, file, or HTTP request)
//	         ↓
//	    [skyline] package (build the linked building sequence)
//	         ↓
//	    [skyline/reduce] package (apply rewrite rules, collect water)
//	         ↓
//	    [render] package (text / SVG / DOT output)
//	         ↓
//	    CLI output, files, or JSON response
//
// # Quick Start
//
// Solve a profile directly:
//
//	import (
//	    "github.com/skylinelab/watertower/pkg/skyline/reduce"
//	)
//
//	water, err := reduce.TotalWater([]int{5, 2, 2, 5})
//	// water == 6
//
// Or run the full pipeline with caching and artifacts:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Heights: []int{5, 2, 2, 5},
//	    Styles:  []string{"text"},
//	})
package pkg
