// Package compare decides structural equality of records.
//
// Objects are compared as unordered key sets, arrays element by element in
// order. Numbers are compared by value, so an int64 id read from one
// document equals an int parsed from another. Values exposing a
// Record() record.Record method (record.Unified) are compared through that
// rendering.
package compare
