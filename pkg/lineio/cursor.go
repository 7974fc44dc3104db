/*
Package lineio provides line-oriented access to small ASCII instrument
files. Its cursor supports skipping leading comment blocks while keeping
the underlying reader positioned at the start of the first retained line,
so callers can alternate between line scanning and fixed-field parsing on
the same handle.
*/
package lineio

import (
	"bufio"
	"io"
	"strings"
)

// Cursor reads a seekable source line by line, tracking the byte offset
// and line number of the read position.
type Cursor struct {
	rs     io.ReadSeeker
	br     *bufio.Reader
	offset int64
	line   int
}

// NewCursor creates a cursor starting at the source's current position.
func NewCursor(rs io.ReadSeeker) *Cursor {
	offset, _ := rs.Seek(0, io.SeekCurrent)

	return &Cursor{
		rs:     rs,
		br:     bufio.NewReader(rs),
		offset: offset,
	}
}

// ReadLine returns the next line with the trailing newline (and any
// carriage return) removed. It returns io.EOF only when no bytes remain;
// a final line without a newline is returned like any other.
func (c *Cursor) ReadLine() (string, error) {
	raw, err := c.br.ReadString('\n')
	if len(raw) == 0 {
		if err == nil {
			err = io.EOF
		}
		return "", err
	}

	c.offset += int64(len(raw))
	c.line++

	return strings.TrimRight(raw, "\r\n"), nil
}

// Line returns the 1-based number of the most recently read line, or 0 if
// nothing has been read yet.
func (c *Cursor) Line() int {
	return c.line
}

// SkipComments consumes lines whose first character is '#' and restores
// the cursor to the start of the first line that is not a comment. Blank
// lines are not comments. Calling it when already positioned at a
// non-comment line is a no-op, and reaching end of input while skipping
// is not an error.
func (c *Cursor) SkipComments() error {
	for {
		offset, line := c.offset, c.line

		l, err := c.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if !strings.HasPrefix(l, "#") {
			return c.rewind(offset, line)
		}
	}
}

// rewind repositions the underlying reader and resets the buffered state.
func (c *Cursor) rewind(offset int64, line int) error {
	if _, err := c.rs.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	c.br.Reset(c.rs)
	c.offset = offset
	c.line = line

	return nil
}
