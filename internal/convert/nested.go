package convert

import "unify-data-model/internal/record"

// NestedToUnified returns a deep copy of in with metadata.format set to
// "unified".
//
// When "metadata" is absent or not an object the copy is returned unchanged;
// no metadata is created.
func NestedToUnified(in record.Record) record.Record {
	out := in.Clone()

	if md, ok := out.Object(record.KeyMetadata); ok {
		md[record.KeyFormat] = record.UnifiedFormat
	}

	return out
}
