package fits

import "fmt"

// MissingKeyError indicates a keyword absent from a header.
type MissingKeyError struct {
	// Key is the keyword that was looked up
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("keyword %q not found in FITS header", e.Key)
}

// ValueError indicates a keyword whose value has the wrong type.
type ValueError struct {
	// Key is the keyword
	Key string

	// Value is the raw header value
	Value any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("keyword %q has a non-numeric value %v", e.Key, e.Value)
}
