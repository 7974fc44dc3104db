/*
Package ifucenter parses IFU center files: the fixed-format description
of the fiber layout of one IFU bundle. The file carries a comment header
with the bundle ID, two geometry lines and one row per fiber

	# HETDEX IFU description file
	# IFU 00001
	#
	# FIBERD   FIBERSEP
	1.55      2.20
	# NFIBX NFIBY
	20 23
	#
	0001  -19.8000  -19.6876 L 0001    1.000
	0002  -17.6000  -19.6876 L 0002    1.000

Fibers whose target number does not parse as an integer are dead and
dropped, as are fibers with a non-positive target number. A live fiber
with negative throughput fails the parse.
*/
package ifucenter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/mxhf/pyhetdex/pkg/lineio"
)

// Map holds the fiber geometry of one IFU bundle, grouped by channel
// ("L"/"R"). The per-channel slices are parallel: index i of X, Y,
// FiberNumber and Throughput describes the same fiber.
type Map struct {
	// Filename is the path the map was parsed from
	Filename string

	// IFUID is the bundle ID from the file header
	IFUID int

	// FiberD and FiberSep are the fiber diameter and separation
	FiberD   float64
	FiberSep float64

	// NFibX, NFibY are the fiber counts along the two axes
	NFibX int
	NFibY int

	// NFibers counts the live fibers per channel
	NFibers map[string]int

	// X, Y are the fiber positions per channel
	X map[string][]float64
	Y map[string][]float64

	// FiberNumber is the target fiber number per channel
	FiberNumber map[string][]int

	// Throughput is the relative fiber throughput per channel
	Throughput map[string][]float64
}

func newMap(path string) *Map {
	return &Map{
		Filename:    path,
		NFibers:     make(map[string]int),
		X:           make(map[string][]float64),
		Y:           make(map[string][]float64),
		FiberNumber: make(map[string][]int),
		Throughput:  make(map[string][]float64),
	}
}

// Channels returns the channel codes in sorted order.
func (m *Map) Channels() []string {
	keys := make([]string, 0, len(m.NFibers))
	for k := range m.NFibers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Parse reads an IFU center file.
func Parse(fs afero.Fs, path string) (*Map, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open IFU center file: %w", err)
	}
	defer f.Close()

	m := newMap(path)

	cur := lineio.NewCursor(f)
	if err := m.readHeader(path, cur); err != nil {
		return nil, err
	}
	if err := m.readFibers(path, cur); err != nil {
		return nil, err
	}

	return m, nil
}

// readHeader consumes the comment header and the two geometry lines,
// leaving the cursor on the first fiber row.
func (m *Map) readHeader(path string, cur *lineio.Cursor) error {
	if err := m.readBundleID(path, cur); err != nil {
		return err
	}
	if err := cur.SkipComments(); err != nil {
		return fmt.Errorf("failed to read IFU center file: %w", err)
	}

	fields, err := headerLine(path, cur, 2)
	if err != nil {
		return err
	}
	if m.FiberD, err = floatField(path, cur, "fiber diameter", fields[0]); err != nil {
		return err
	}
	if m.FiberSep, err = floatField(path, cur, "fiber separation", fields[1]); err != nil {
		return err
	}

	if err := cur.SkipComments(); err != nil {
		return fmt.Errorf("failed to read IFU center file: %w", err)
	}

	fields, err = headerLine(path, cur, 2)
	if err != nil {
		return err
	}
	if m.NFibX, err = intField(path, cur, "x fiber count", fields[0]); err != nil {
		return err
	}
	if m.NFibY, err = intField(path, cur, "y fiber count", fields[1]); err != nil {
		return err
	}

	if err := cur.SkipComments(); err != nil {
		return fmt.Errorf("failed to read IFU center file: %w", err)
	}

	return nil
}

// readBundleID scans the leading comment block for the "IFU <id>" or
// "VIFU<id>" marker. Hitting a non-comment line or the end of the file
// first means the header carries no bundle ID.
func (m *Map) readBundleID(path string, cur *lineio.Cursor) error {
	for {
		line, err := cur.ReadLine()
		if err == io.EOF {
			return &ParseError{Path: path, Line: cur.Line(),
				Reason: "failed to find IFU bundle ID in file header"}
		}
		if err != nil {
			return fmt.Errorf("failed to read IFU center file: %w", err)
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			return &ParseError{Path: path, Line: cur.Line(),
				Reason: "failed to find IFU bundle ID in file header"}
		}

		line = strings.TrimSpace(line[1:])
		if !strings.HasPrefix(line, "IFU ") && !strings.HasPrefix(line, "VIFU") {
			continue
		}

		token := strings.TrimSpace(line[4:])
		id, err := strconv.Atoi(token)
		if err != nil {
			return &ParseError{Path: path, Line: cur.Line(),
				Reason: fmt.Sprintf("invalid IFU bundle ID %q", token)}
		}

		m.IFUID = id

		return nil
	}
}

// readFibers parses the fiber table. Rows are skipped when they are
// comments, blank, or describe a dead fiber (non-integer or
// non-positive target number).
func (m *Map) readFibers(path string, cur *lineio.Cursor) error {
	for {
		line, err := cur.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read IFU center file: %w", err)
		}

		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 6 {
			return &ParseError{Path: path, Line: cur.Line(),
				Reason: fmt.Sprintf("expected 6 fiber fields, got %d", len(fields))}
		}

		// fields[0] is the running fiber ID, unused
		fiber, err := strconv.Atoi(fields[4])
		if err != nil || fiber <= 0 {
			continue
		}

		throughput, err := floatField(path, cur, "throughput", fields[5])
		if err != nil {
			return err
		}
		if throughput < 0 {
			return &ThroughputError{Path: path, Line: cur.Line(),
				Fiber: fiber, Channel: fields[3], Value: throughput}
		}

		x, err := floatField(path, cur, "x position", fields[1])
		if err != nil {
			return err
		}
		y, err := floatField(path, cur, "y position", fields[2])
		if err != nil {
			return err
		}

		channel := fields[3]
		m.NFibers[channel]++
		m.X[channel] = append(m.X[channel], x)
		m.Y[channel] = append(m.Y[channel], y)
		m.FiberNumber[channel] = append(m.FiberNumber[channel], fiber)
		m.Throughput[channel] = append(m.Throughput[channel], throughput)
	}

	return nil
}

// headerLine reads the next line and splits it into exactly want
// fields.
func headerLine(path string, cur *lineio.Cursor, want int) ([]string, error) {
	line, err := cur.ReadLine()
	if err == io.EOF {
		return nil, &ParseError{Path: path, Line: cur.Line(),
			Reason: "unexpected end of header"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read IFU center file: %w", err)
	}

	fields := strings.Fields(line)
	if len(fields) != want {
		return nil, &ParseError{Path: path, Line: cur.Line(),
			Reason: fmt.Sprintf("expected %d header fields, got %d", want, len(fields))}
	}

	return fields, nil
}

func floatField(path string, cur *lineio.Cursor, what, token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &ParseError{Path: path, Line: cur.Line(),
			Reason: fmt.Sprintf("invalid %s %q", what, token)}
	}

	return v, nil
}

func intField(path string, cur *lineio.Cursor, what, token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Path: path, Line: cur.Line(),
			Reason: fmt.Sprintf("invalid %s %q", what, token)}
	}

	return v, nil
}
