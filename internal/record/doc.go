// Package record defines the in-memory shapes of the documents handled by the
// converters.
//
// Three shapes share one logical record (message, timestamp, user, metadata,
// items):
//
//   - Nested: a generic Record with "user" and "metadata" sub-objects and
//     structured items.
//   - Flattened: sub-object fields hoisted to the top level with a group
//     prefix ("user_id", "metadata_version") and items serialized as
//     "id:title:active" strings.
//   - Unified: the nested shape with metadata.format set to "unified".
//
// # Flattened key convention
//
// A field F of group G is stored under FlatKey(G, F), that is "G_F".
//
// # Item encoding
//
// A flattened item is one string of exactly three colon-separated segments:
//
//	"1:Task A:true"
//
// The first segment is a base-10 integer id, the second the title, the third
// the active flag ("true" in any letter case means active).
package record
