package record

//go:generate go tool stringer -type=Format -linecomment -output=format_string.go

// Format identifies which shape a document is in.
type Format int

const (
	FormatUnknown   Format = iota // unknown
	FormatNested                  // nested
	FormatFlattened               // flattened
	FormatUnified                 // unified
)

// Detect guesses the shape of r from its keys.
//
// A record whose metadata object already says "unified" is Unified; a record
// with a "user" or "metadata" object is Nested; a record with any "user_" or
// "metadata_" prefixed key is Flattened.
func Detect(r Record) Format {
	if md, ok := r.Object(KeyMetadata); ok {
		if f, _ := md[KeyFormat].(string); f == UnifiedFormat {
			return FormatUnified
		}

		return FormatNested
	}

	if _, ok := r.Object(KeyUser); ok {
		return FormatNested
	}

	for k := range r {
		if IsFlatKey(GroupUser, k) || IsFlatKey(GroupMetadata, k) {
			return FormatFlattened
		}
	}

	return FormatUnknown
}
