package ifucenter

import "fmt"

// ParseError indicates a structurally malformed IFU center file.
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

// ThroughputError indicates a live fiber with a negative throughput,
// which the parser cannot decide whether to keep or drop.
type ThroughputError struct {
	// Path and Line locate the offending row
	Path string
	Line int

	// Fiber and Channel identify the fiber
	Fiber   int
	Channel string

	// Value is the offending throughput
	Value float64
}

func (e *ThroughputError) Error() string {
	return fmt.Sprintf("%s:%d: fiber %d in channel %s has a positive fiber number and a negative throughput (%g)",
		e.Path, e.Line, e.Fiber, e.Channel, e.Value)
}
