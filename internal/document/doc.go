// Package document loads and saves JSON documents under a root directory.
//
// Documents are parsed with fastjson into record.Record values: objects
// become map[string]any, arrays []any, integral numbers int64 and other
// numbers float64. The top-level value must be an object.
//
// Names ending in ".zst" are zstd-compressed on disk; Load and Save handle
// the compression transparently.
//
// Load reports two failure kinds: ErrNotFound (matched with errors.Is) when
// the document does not exist, and *ParseError when it is not valid JSON.
package document
