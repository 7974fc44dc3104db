package dither

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/mxhf/pyhetdex/pkg/fplane"
	"github.com/mxhf/pyhetdex/pkg/lineio"
	"github.com/mxhf/pyhetdex/pkg/telescope"
)

// DefaultOffsets returns the standard three-dither shift pattern,
// x shifts first, then y shifts. A fresh slice is returned on every
// call.
func DefaultOffsets() []float64 {
	return []float64{0.000, -1.270, -1.270, 0.000, 0.730, -0.730}
}

// PositionRow is one entry of a dither-position table: an identifier
// followed by the n x shifts and the n y shifts of its dithers.
type PositionRow struct {
	ID      string
	Offsets []float64
}

// Creator writes dither files for the IFUs of a focal plane, combining
// stored dither positions with the observing conditions of a shot.
type Creator struct {
	fplane *fplane.FPlane
	shot   *telescope.Shot

	dxs map[string][]float64
	dys map[string][]float64
}

// NewCreator builds a creator from an in-memory position table.
func NewCreator(fp *fplane.FPlane, shot *telescope.Shot, rows []PositionRow) (*Creator, error) {
	c := &Creator{
		fplane: fp,
		shot:   shot,
		dxs:    make(map[string][]float64),
		dys:    make(map[string][]float64),
	}

	for _, row := range rows {
		if err := c.addPositions(row); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewCreatorFromFile builds a creator reading the position table from a
// dither-position file.
func NewCreatorFromFile(fs afero.Fs, fp *fplane.FPlane, shot *telescope.Shot, path string) (*Creator, error) {
	rows, err := ParsePositions(fs, path)
	if err != nil {
		return nil, err
	}

	return NewCreator(fp, shot, rows)
}

// addPositions splits a row's shift values in half and stores the two
// sequences under the row identifier.
func (c *Creator) addPositions(row PositionRow) error {
	if len(row.Offsets)%2 == 1 {
		return &PositionError{ID: row.ID, Count: len(row.Offsets)}
	}

	n := len(row.Offsets) / 2
	c.dxs[row.ID] = append([]float64(nil), row.Offsets[:n]...)
	c.dys[row.ID] = append([]float64(nil), row.Offsets[n:]...)

	return nil
}

// ParsePositions reads a dither-position file: whitespace-separated rows
// of the form "id x1 .. xn y1 .. yn". Rows whose first token contains a
// '#' anywhere are comments; blank lines are skipped.
func ParsePositions(fs afero.Fs, path string) ([]PositionRow, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dither position file: %w", err)
	}
	defer f.Close()

	var rows []PositionRow

	cur := lineio.NewCursor(f)
	for {
		line, err := cur.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dither position file: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.Contains(fields[0], "#") {
			continue
		}

		offsets := make([]float64, 0, len(fields)-1)
		for _, tok := range fields[1:] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &ParseError{
					Path:   path,
					Line:   cur.Line(),
					Reason: fmt.Sprintf("invalid shift value %q", tok),
				}
			}
			offsets = append(offsets, v)
		}

		rows = append(rows, PositionRow{ID: fields[0], Offsets: offsets})
	}

	return rows, nil
}

// Dxs returns the x shifts of the IFU matching id in the given
// identifier space.
func (c *Creator) Dxs(id string, space fplane.IDSpace) ([]float64, error) {
	ifu, err := c.fplane.ByID(id, space)
	if err != nil {
		return nil, err
	}

	dxs, ok := c.dxs[ifu.IFUSlot]
	if !ok {
		return nil, &UnknownPositionError{Key: ifu.IFUSlot}
	}

	return dxs, nil
}

// Dys returns the y shifts of the IFU matching id in the given
// identifier space.
func (c *Creator) Dys(id string, space fplane.IDSpace) ([]float64, error) {
	ifu, err := c.fplane.ByID(id, space)
	if err != nil {
		return nil, err
	}

	dys, ok := c.dys[ifu.IFUSlot]
	if !ok {
		return nil, &UnknownPositionError{Key: ifu.IFUSlot}
	}

	return dys, nil
}

const fileHeader = "# basename          modelbase           ditherx dithery\n" +
	"# seeing norm airmass\n"

const rowFormat = "%s %s %f %f %4.3f %5.4f %5.4f\n"

// Write writes a dither file for one IFU. The basenames and modelbases
// must both have exactly one entry per dither. Seeing and normalisation
// come from the shot, evaluated at the IFU focal-plane position for each
// 1-based dither number.
func (c *Creator) Write(w io.Writer, id string, basenames, modelbases []string, space fplane.IDSpace) error {
	ifu, err := c.fplane.ByID(id, space)
	if err != nil {
		return err
	}

	dxs, err := c.Dxs(id, space)
	if err != nil {
		return err
	}
	dys, err := c.Dys(id, space)
	if err != nil {
		return err
	}

	if len(basenames) != len(dxs) {
		return &CountError{What: "basenames", Got: len(basenames), Want: len(dxs)}
	}
	if len(modelbases) != len(dxs) {
		return &CountError{What: "modelbases", Got: len(modelbases), Want: len(dxs)}
	}

	var b strings.Builder
	b.WriteString(fileHeader)

	for i := range dxs {
		dither := i + 1
		seeing := c.shot.FWHM(ifu.X, ifu.Y, dither)
		norm := c.shot.Normalization(ifu.X, ifu.Y, dither)
		// TODO derive the airmass from the shot instead of a placeholder
		airmass := 1.22

		fmt.Fprintf(&b, rowFormat, basenames[i], modelbases[i],
			dxs[i], dys[i], seeing, norm, airmass)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write dither file: %w", err)
	}

	return nil
}

// CreateFile writes a dither file to outPath, replacing any existing
// file.
func (c *Creator) CreateFile(fs afero.Fs, id string, basenames, modelbases []string, outPath string, space fplane.IDSpace) error {
	f, err := fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create dither file: %w", err)
	}

	if err := c.Write(f, id, basenames, modelbases, space); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
