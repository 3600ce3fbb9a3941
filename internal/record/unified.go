package record

// Unified is a record in the canonical unified shape. Field order matches the
// order documents are printed in.
type Unified struct {
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	User      User     `json:"user"`
	Metadata  Metadata `json:"metadata"`
	Items     []Item   `json:"items"`
}

// User is the "user" sub-object. ID keeps whatever JSON value the source
// carried; nil when absent.
type User struct {
	ID    any    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Metadata is the "metadata" sub-object.
type Metadata struct {
	Version  string `json:"version"`
	Format   string `json:"format"`
	Encoding string `json:"encoding"`
}

// Item is one element of "items".
type Item struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// Clone returns a deep copy of u.
func (u Unified) Clone() Unified {
	out := u
	out.User.ID = CloneValue(u.User.ID)

	if u.Items != nil {
		out.Items = make([]Item, len(u.Items))
		copy(out.Items, u.Items)
	}

	return out
}

// Record renders u as a generic record. Items is never nil in the result.
func (u Unified) Record() Record {
	items := make([]any, 0, len(u.Items))
	for _, it := range u.Items {
		items = append(items, map[string]any{
			KeyID:     it.ID,
			KeyTitle:  it.Title,
			KeyActive: it.Active,
		})
	}

	return Record{
		KeyMessage:   u.Message,
		KeyTimestamp: u.Timestamp,
		KeyUser: map[string]any{
			KeyID:    CloneValue(u.User.ID),
			KeyName:  u.User.Name,
			KeyEmail: u.User.Email,
		},
		KeyMetadata: map[string]any{
			KeyVersion:  u.Metadata.Version,
			KeyFormat:   u.Metadata.Format,
			KeyEncoding: u.Metadata.Encoding,
		},
		KeyItems: items,
	}
}
