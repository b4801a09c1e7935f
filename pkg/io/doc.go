// Package io reads height profiles and writes solve results.
//
// A height profile is the list of building heights handed to the solver.
// Profiles can be read from four formats, detected by file extension:
//
//   - .txt (and unknown extensions): whitespace-separated integers
//   - .csv: comma-separated integers, rows flattened in order
//   - .json: either a bare array [5, 2, 2, 5] or an object
//     {"name": "...", "heights": [5, 2, 2, 5]}
//   - .toml: a scene file with a heights key and optional name
//
// Results are exported as indented JSON via [WriteJSON] and [ExportJSON].
package io
