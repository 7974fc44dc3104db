/*
Package dither parses and creates dither files: small ASCII tables
describing the relative positions and observing conditions of the offset
exposures of a shot. A dither file looks like

	# basename          modelbase           ditherx dithery seeing norm airmass
	SIMDEX-obs-1_D1_046 SIMDEX-obs-1_D1_046   0.00   0.00    1.60  1.00  1.22
	SIMDEX-obs-1_D2_046 SIMDEX-obs-1_D2_046   0.61   1.07    1.60  1.00  1.22
	SIMDEX-obs-1_D3_046 SIMDEX-obs-1_D3_046   1.23   0.00    1.60  1.00  1.22

where the dither key (D1, D2, ...) is carried in the basename.
*/
package dither

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/mxhf/pyhetdex/pkg/lineio"
)

// Set holds the per-dither metadata of one shot, keyed by the dither
// name ("D1", "D2", ...). All maps share the same key set. A set is
// built once by Parse or Empty and not modified afterwards.
type Set struct {
	// Filename is the path the set was parsed from, empty for
	// synthetic sets
	Filename string

	// Basename is the common prefix of the data files of each dither
	Basename map[string]string

	// Dx, Dy are the relative dither offsets
	Dx map[string]float64
	Dy map[string]float64

	// Seeing is the image quality of each dither
	Seeing map[string]float64

	// Norm is the relative flux normalisation between dithers
	Norm map[string]float64

	// Airmass is the airmass of each dither
	Airmass map[string]float64
}

func newSet() *Set {
	return &Set{
		Basename: make(map[string]string),
		Dx:       make(map[string]float64),
		Dy:       make(map[string]float64),
		Seeing:   make(map[string]float64),
		Norm:     make(map[string]float64),
		Airmass:  make(map[string]float64),
	}
}

// Dithers returns the dither keys in sorted order.
func (s *Set) Dithers() []string {
	keys := make([]string, 0, len(s.Basename))
	for k := range s.Basename {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Empty returns a single-dither stub set, for use when no real dither
// file exists: key "D1", empty basename, zero offsets and unit seeing,
// normalisation and airmass. Every call builds a fresh value.
func Empty() *Set {
	s := newSet()

	s.Basename["D1"] = ""
	s.Dx["D1"] = 0
	s.Dy["D1"] = 0
	s.Seeing["D1"] = 1
	s.Norm["D1"] = 1
	s.Airmass["D1"] = 1

	return s
}

var ditherKeyPattern = regexp.MustCompile(`D\d`)

// Parse reads a dither file. Comment and blank lines are skipped, as are
// rows that do not split into exactly seven fields. Rows sharing a
// dither key overwrite each other, last one wins.
func Parse(fs afero.Fs, path string) (*Set, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dither file: %w", err)
	}
	defer f.Close()

	s := newSet()
	s.Filename = path

	cur := lineio.NewCursor(f)
	if err := cur.SkipComments(); err != nil {
		return nil, fmt.Errorf("failed to read dither file: %w", err)
	}

	for {
		line, err := cur.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dither file: %w", err)
		}

		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 7 {
			// incomplete row
			continue
		}

		if err := s.addRow(path, cur.Line(), fields); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// addRow stores one 7-field data row: basename, modelbase, dx, dy,
// seeing, norm, airmass.
func (s *Set) addRow(path string, line int, fields []string) error {
	key, err := ditherKey(path, line, fields[0])
	if err != nil {
		return err
	}

	names := [5]string{"ditherx", "dithery", "seeing", "norm", "airmass"}
	var values [5]float64
	for i, tok := range fields[2:7] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return &ParseError{
				Path:   path,
				Line:   line,
				Reason: fmt.Sprintf("invalid %s value %q", names[i], tok),
			}
		}
		values[i] = v
	}

	s.Basename[key] = fields[0]
	s.Dx[key] = values[0]
	s.Dy[key] = values[1]
	s.Seeing[key] = values[2]
	s.Norm[key] = values[3]
	s.Airmass[key] = values[4]

	return nil
}

// ditherKey extracts the dither key from a basename. The distinct
// matches of D followed by one digit must identify exactly one dither.
func ditherKey(path string, line int, basename string) (string, error) {
	var distinct []string
	seen := make(map[string]bool)

	for _, m := range ditherKeyPattern.FindAllString(basename, -1) {
		if !seen[m] {
			seen[m] = true
			distinct = append(distinct, m)
		}
	}

	if len(distinct) != 1 {
		return "", &KeyMatchError{
			Path:     path,
			Line:     line,
			Basename: basename,
			Matches:  distinct,
		}
	}

	return distinct[0], nil
}
