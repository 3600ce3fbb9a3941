// Package convert turns nested and flattened records into the unified shape.
//
// NestedToUnified deep-copies its input and marks metadata.format as
// "unified". FlattenedToUnified rebuilds the "user" and "metadata"
// sub-objects from prefixed keys and decodes "id:title:active" item
// strings.
//
// Both functions are pure: they never modify their input, return values that
// share no containers with it, and are safe for concurrent use.
//
// # Item policy
//
// An item string that does not have exactly three segments is skipped
// silently. An item whose id segment is not an integer aborts the
// conversion with a *FormatError.
package convert
