// Package render draws skylines and their trapped water.
//
// Three output forms are supported:
//
//   - ASCII art ([Text]): buildings as solid blocks, water as tildes.
//     This is what the CLI prints and what the TUI animates.
//   - SVG ([SVG]): building and water rectangles, for documents.
//   - Reduction lineage ([ToDOT], [DOT]): a Graphviz view of how the
//     rewrite engine merged and removed buildings, for debugging the
//     rule set.
package render
