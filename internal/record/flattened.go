package record

import "strings"

// Group prefixes used by the flattened shape.
const (
	GroupUser     = KeyUser
	GroupMetadata = KeyMetadata

	flatSeparator = "_"
)

// FlatKey returns the flattened key of field in group, e.g. "user_id".
func FlatKey(group, field string) string {
	return group + flatSeparator + field
}

// IsFlatKey reports whether key carries the prefix of group.
func IsFlatKey(group, key string) bool {
	return strings.HasPrefix(key, group+flatSeparator)
}

// Flattened is a record in the flattened shape.
//
// Every field is optional in the source document; absent (or wrongly typed)
// scalars are "", an absent user id is nil and absent items are empty.
type Flattened struct {
	Message          string
	Timestamp        string
	UserID           any
	UserName         string
	UserEmail        string
	MetadataVersion  string
	MetadataEncoding string
	// Items holds the raw elements of the "items" array. Elements are
	// normally item strings but are kept as-is so the converter decides
	// what to skip.
	Items []any
}

// FlattenedFromRecord reads a Flattened out of a generic record. The result
// shares no containers with r.
func FlattenedFromRecord(r Record) Flattened {
	f := Flattened{
		Message:          r.String(KeyMessage),
		Timestamp:        r.String(KeyTimestamp),
		UserID:           CloneValue(r[FlatKey(GroupUser, KeyID)]),
		UserName:         r.String(FlatKey(GroupUser, KeyName)),
		UserEmail:        r.String(FlatKey(GroupUser, KeyEmail)),
		MetadataVersion:  r.String(FlatKey(GroupMetadata, KeyVersion)),
		MetadataEncoding: r.String(FlatKey(GroupMetadata, KeyEncoding)),
	}

	if items, ok := r[KeyItems].([]any); ok {
		f.Items, _ = CloneValue(items).([]any)
	}

	return f
}
