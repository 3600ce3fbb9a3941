package report

import (
	"unify-data-model/internal/common"
	"unify-data-model/internal/record"
)

// Structure summarizes the top level of a record.
type Structure struct {
	Keys    []string // all top-level keys
	Objects []string // keys holding an object
	Arrays  []string // keys holding an array
}

// Summarize computes the Structure of r. All lists are sorted.
func Summarize(r record.Record) Structure {
	s := Structure{Keys: common.SortedKeys(r)}

	for _, k := range s.Keys {
		if _, ok := record.AsObject(r[k]); ok {
			s.Objects = append(s.Objects, k)
		}

		if _, ok := r[k].([]any); ok {
			s.Arrays = append(s.Arrays, k)
		}
	}

	return s
}
