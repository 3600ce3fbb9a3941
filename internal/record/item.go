package record

import (
	"strconv"
	"strings"
)

// ItemSeparator delimits the segments of a flattened item string.
const ItemSeparator = ":"

const itemSegments = 3

// DecodeItem parses a flattened item string "id:title:active".
//
// ok is false when s does not split into exactly three segments; such
// strings carry no item and are not an error. err is non-nil when the id
// segment is not a base-10 integer that fits in an int64.
func DecodeItem(s string) (item Item, ok bool, err error) {
	parts := strings.Split(s, ItemSeparator)
	if len(parts) != itemSegments {
		return Item{}, false, nil
	}

	id, err := parseID(parts[0])
	if err != nil {
		return Item{}, true, err
	}

	return Item{
		ID:     id,
		Title:  parts[1],
		Active: strings.ToLower(parts[2]) == "true",
	}, true, nil
}

// EncodeItem is the inverse of DecodeItem.
func EncodeItem(it Item) string {
	return strings.Join([]string{
		strconv.FormatInt(it.ID, 10),
		it.Title,
		strconv.FormatBool(it.Active),
	}, ItemSeparator)
}

// parseID ignores surrounding whitespace and accepts single underscores
// between digits, as in "1_000".
func parseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "_") && groupedDigits(s) {
		s = strings.ReplaceAll(s, "_", "")
	}

	return strconv.ParseInt(s, 10, 64)
}

func groupedDigits(s string) bool {
	for i := range len(s) {
		if s[i] != '_' {
			continue
		}

		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}

	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
