package convert

import "fmt"

// FormatError reports a flattened item whose id segment is not an integer.
type FormatError struct {
	Index int    // position of the item in the input "items" array
	Item  string // raw item string
	Err   error  // underlying parse error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("item %d %q: invalid id: %v", e.Index, e.Item, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
