// Package batch converts every document of a directory to the unified shape.
//
// Each document's shape is detected from its keys (record.Detect), converted
// with the matching converter and saved to the output store under the same
// base name. Documents are processed concurrently, bounded by
// Options.Workers. A failing document never stops the run; it is reported as
// a diagnostic in the Result.
package batch
