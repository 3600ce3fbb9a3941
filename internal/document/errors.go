package document

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by Store.Load for missing documents.
var ErrNotFound = errors.New("document not found")

// ParseError reports a document that exists but is not a JSON object.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON in %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
