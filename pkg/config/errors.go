package config

import "fmt"

// NoSectionError indicates a lookup into a section that does not exist.
type NoSectionError struct {
	// Section is the missing section name
	Section string
}

func (e *NoSectionError) Error() string {
	return fmt.Sprintf("no section %q in configuration", e.Section)
}

// NoOptionError indicates a lookup of an option that does not exist in an
// existing section.
type NoOptionError struct {
	// Section is the section that was searched
	Section string

	// Option is the missing option name
	Option string
}

func (e *NoOptionError) Error() string {
	return fmt.Sprintf("no option %q in section %q", e.Option, e.Section)
}

// CastError indicates a token that could not be converted to the
// requested type.
type CastError struct {
	// Token is the offending raw token
	Token string

	// Kind names the target type
	Kind string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast %q to %s", e.Token, e.Kind)
}

// PairError indicates a pair-list group that did not split into exactly
// two tokens.
type PairError struct {
	// Section and Option locate the offending value
	Section string
	Option  string

	// Group is the raw group text
	Group string

	// Count is the number of tokens the group split into
	Count int
}

func (e *PairError) Error() string {
	return fmt.Sprintf("option %q in section %q: group %q splits into %d tokens, expected 2",
		e.Option, e.Section, e.Group, e.Count)
}
