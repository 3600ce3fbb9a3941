package record

// Top-level and sub-object keys of the record shape.
const (
	KeyMessage   = "message"
	KeyTimestamp = "timestamp"
	KeyUser      = "user"
	KeyMetadata  = "metadata"
	KeyItems     = "items"

	KeyID       = "id"
	KeyName     = "name"
	KeyEmail    = "email"
	KeyVersion  = "version"
	KeyFormat   = "format"
	KeyEncoding = "encoding"
	KeyTitle    = "title"
	KeyActive   = "active"
)

// UnifiedFormat is the metadata.format value carried by every unified record.
const UnifiedFormat = "unified"

// Record is a generic JSON object.
//
// Values are string, int64, float64, bool, nil, map[string]any (or Record)
// and []any, as produced by the document loader.
type Record map[string]any

// Clone returns a structurally independent copy of r. Nested objects and
// arrays are copied recursively; scalars are shared by value.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for k, v := range r {
		out[k] = CloneValue(v)
	}

	return out
}

// Object returns the value under key as an object, if it is one.
func (r Record) Object(key string) (map[string]any, bool) {
	return AsObject(r[key])
}

// String returns the string under key, or "" when the key is absent or holds
// another type.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// CloneValue deep-copies a JSON value.
func CloneValue(v any) any {
	switch v := v.(type) {
	case Record:
		return v.Clone()
	case map[string]any:
		if v == nil {
			return v
		}

		return map[string]any(Record(v).Clone())
	case []any:
		if v == nil {
			return v
		}

		out := make([]any, len(v))
		for i, e := range v {
			out[i] = CloneValue(e)
		}

		return out
	default:
		return v
	}
}

// AsObject unwraps Record and map[string]any values.
func AsObject(v any) (map[string]any, bool) {
	switch v := v.(type) {
	case Record:
		return v, true
	case map[string]any:
		return v, true
	default:
		return nil, false
	}
}
