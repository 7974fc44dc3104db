/*
Package fplane reads the focal-plane description file of the instrument:
one row per IFU giving its mounting slot, focal-plane position and the
identifiers of the spectrograph it feeds. IFUs can be looked up in any of
the three identifier spaces (mounting slot, IFU serial, spectrograph
serial).
*/
package fplane

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/mxhf/pyhetdex/pkg/lineio"
)

// IDSpace selects which identifier an IFU is looked up by.
type IDSpace string

const (
	// IFUSlot is the mounting-slot identifier (canonical key)
	IFUSlot IDSpace = "ifuslot"

	// IFUID is the IFU serial number
	IFUID IDSpace = "ifuid"

	// SpecID is the spectrograph serial number
	SpecID IDSpace = "specid"
)

// IFU is one entry of the focal plane.
type IFU struct {
	// IFUSlot is the mounting slot, e.g. "075"
	IFUSlot string

	// X, Y is the position in the focal plane, arcseconds
	X float64
	Y float64

	// SpecID is the serial of the spectrograph the IFU feeds
	SpecID string

	// SpecSlot is the slot the spectrograph is mounted in
	SpecSlot int

	// IFUID is the serial of the IFU itself
	IFUID string
}

// FPlane holds the parsed focal plane, indexed by all three identifier
// spaces.
type FPlane struct {
	// Filename is the path the focal plane was parsed from
	Filename string

	byIFUSlot map[string]*IFU
	byIFUID   map[string]*IFU
	bySpecID  map[string]*IFU
}

// Parse reads a focal-plane file. Lines starting with '#' are comments;
// data rows carry six whitespace-separated fields: ifuslot, x, y,
// specid, specslot, ifuid. A duplicated IFU slot keeps the last row.
func Parse(fs afero.Fs, path string) (*FPlane, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fplane file: %w", err)
	}
	defer f.Close()

	fp := &FPlane{
		Filename:  path,
		byIFUSlot: make(map[string]*IFU),
		byIFUID:   make(map[string]*IFU),
		bySpecID:  make(map[string]*IFU),
	}

	cur := lineio.NewCursor(f)
	for {
		line, err := cur.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read fplane file: %w", err)
		}

		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		ifu, err := parseRow(path, cur.Line(), strings.Fields(line))
		if err != nil {
			return nil, err
		}
		fp.add(ifu)
	}

	return fp, nil
}

func parseRow(path string, line int, fields []string) (*IFU, error) {
	if len(fields) != 6 {
		return nil, &ParseError{
			Path:   path,
			Line:   line,
			Reason: fmt.Sprintf("expected 6 fields, got %d", len(fields)),
		}
	}

	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, &ParseError{Path: path, Line: line,
			Reason: fmt.Sprintf("invalid x position %q", fields[1])}
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, &ParseError{Path: path, Line: line,
			Reason: fmt.Sprintf("invalid y position %q", fields[2])}
	}
	specSlot, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, &ParseError{Path: path, Line: line,
			Reason: fmt.Sprintf("invalid spectrograph slot %q", fields[4])}
	}

	return &IFU{
		IFUSlot:  fields[0],
		X:        x,
		Y:        y,
		SpecID:   fields[3],
		SpecSlot: specSlot,
		IFUID:    fields[5],
	}, nil
}

func (fp *FPlane) add(ifu *IFU) {
	fp.byIFUSlot[ifu.IFUSlot] = ifu
	fp.byIFUID[ifu.IFUID] = ifu
	fp.bySpecID[ifu.SpecID] = ifu
}

// ByID returns the IFU matching id in the given identifier space.
func (fp *FPlane) ByID(id string, space IDSpace) (*IFU, error) {
	var index map[string]*IFU

	switch space {
	case IFUSlot:
		index = fp.byIFUSlot
	case IFUID:
		index = fp.byIFUID
	case SpecID:
		index = fp.bySpecID
	default:
		return nil, &UnknownIDSpaceError{Space: space}
	}

	ifu, ok := index[id]
	if !ok {
		return nil, &UnknownIDError{ID: id, Space: space}
	}

	return ifu, nil
}

// IFUs returns all entries ordered by IFU slot.
func (fp *FPlane) IFUs() []*IFU {
	out := make([]*IFU, 0, len(fp.byIFUSlot))
	for _, ifu := range fp.byIFUSlot {
		out = append(out, ifu)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].IFUSlot < out[j].IFUSlot
	})

	return out
}
