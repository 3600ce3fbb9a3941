package convert

import "unify-data-model/internal/record"

// FlattenedToUnified rebuilds a unified record from the flattened shape.
func FlattenedToUnified(in record.Flattened) (record.Unified, error) {
	items, err := decodeItems(in.Items)
	if err != nil {
		return record.Unified{}, err
	}

	return record.Unified{
		Message:   in.Message,
		Timestamp: in.Timestamp,
		User: record.User{
			ID:    record.CloneValue(in.UserID),
			Name:  in.UserName,
			Email: in.UserEmail,
		},
		Metadata: record.Metadata{
			Version:  in.MetadataVersion,
			Format:   record.UnifiedFormat,
			Encoding: in.MetadataEncoding,
		},
		Items: items,
	}, nil
}

// FlattenedRecordToUnified reads a flattened record out of a generic one and
// converts it.
func FlattenedRecordToUnified(in record.Record) (record.Unified, error) {
	return FlattenedToUnified(record.FlattenedFromRecord(in))
}

// decodeItems keeps input order; non-string elements and strings without
// exactly three segments contribute nothing.
func decodeItems(raw []any) ([]record.Item, error) {
	items := make([]record.Item, 0, len(raw))

	for i, el := range raw {
		s, ok := el.(string)
		if !ok {
			continue
		}

		it, ok, err := record.DecodeItem(s)
		if err != nil {
			return nil, &FormatError{Index: i, Item: s, Err: err}
		}

		if !ok {
			continue
		}

		items = append(items, it)
	}

	return items, nil
}
