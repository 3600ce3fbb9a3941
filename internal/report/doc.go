// Package report renders records for people: pretty-printed JSON, structural
// summaries and verbose value dumps.
package report
