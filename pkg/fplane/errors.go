package fplane

import "fmt"

// ParseError indicates a malformed focal-plane file.
type ParseError struct {
	// Path is the file being parsed
	Path string

	// Line is the 1-based offending line number
	Line int

	// Reason describes what was wrong
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// UnknownIDError indicates a lookup of an identifier that is not present
// in the focal plane.
type UnknownIDError struct {
	// ID is the identifier that was looked up
	ID string

	// Space is the identifier space searched
	Space IDSpace
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("no IFU with %s %q in the focal plane", e.Space, e.ID)
}

// UnknownIDSpaceError indicates a lookup with an identifier space other
// than ifuslot, ifuid or specid.
type UnknownIDSpaceError struct {
	// Space is the unsupported identifier space
	Space IDSpace
}

func (e *UnknownIDSpaceError) Error() string {
	return fmt.Sprintf("unknown identifier space %q; valid spaces are %q, %q and %q",
		e.Space, IFUSlot, IFUID, SpecID)
}
