package dither

import "fmt"

// ParseError indicates a malformed dither or dither-position file.
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

// KeyMatchError indicates a basename whose distinct matches of D
// followed by one digit do not identify exactly one dither.
type KeyMatchError struct {
	// Path and Line locate the offending row
	Path string
	Line int

	// Basename is the field the key was searched in
	Basename string

	// Matches are the distinct matches that were found
	Matches []string
}

func (e *KeyMatchError) Error() string {
	return fmt.Sprintf("%s:%d: %d matches to 'D<digit>' found in basename %q, expected one",
		e.Path, e.Line, len(e.Matches), e.Basename)
}

// PositionError indicates a dither-position row whose x and y shift
// counts cannot match.
type PositionError struct {
	// ID is the row identifier
	ID string

	// Count is the odd number of shift values found
	Count int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("the dither position row %q has a miss-matching number of x and y entries (%d values)",
		e.ID, e.Count)
}

// CountError indicates basename or modelbase lists whose length does not
// match the number of dithers.
type CountError struct {
	// What names the offending list
	What string

	// Got and Want are the actual and expected lengths
	Got  int
	Want int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("the number of elements in %q (%d) doesn't agree with the expected number of dithers (%d)",
		e.What, e.Got, e.Want)
}

// UnknownPositionError indicates an IFU slot with no stored dither
// positions.
type UnknownPositionError struct {
	// Key is the IFU slot that was looked up
	Key string
}

func (e *UnknownPositionError) Error() string {
	return fmt.Sprintf("no dither positions stored for IFU slot %q", e.Key)
}
