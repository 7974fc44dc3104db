package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mxhf/pyhetdex/pkg/dither"
	"github.com/mxhf/pyhetdex/pkg/fplane"
	"github.com/mxhf/pyhetdex/pkg/ifucenter"
	"github.com/mxhf/pyhetdex/pkg/logger"
	"github.com/mxhf/pyhetdex/pkg/output"
)

// File kinds understood by Inspect
const (
	KindDither    = "dither"
	KindFPlane    = "fplane"
	KindIFUCenter = "ifucenter"
	KindPositions = "positions"
)

// InspectOptions defines the options for an inspect operation
type InspectOptions struct {
	// Path of the file to inspect
	Path string

	// Kind of the file, empty to guess from the file name
	Kind string

	// Output format (table, json, yaml)
	Format output.Format

	// Output file path (empty for stdout)
	OutputPath string
}

// Inspect parses a survey file and writes a rendering of its content
func (a *App) Inspect(opts *InspectOptions) error {
	kind := opts.Kind
	if kind == "" {
		kind = guessKind(opts.Path)
	}

	a.log.WithFields(logger.Fields{
		"path": opts.Path,
		"kind": kind,
	}).Info("Inspecting file")

	var view output.View
	var err error

	switch kind {
	case KindDither:
		view, err = a.ditherView(opts.Path)
	case KindFPlane:
		view, err = a.fplaneView(opts.Path)
	case KindIFUCenter:
		view, err = a.ifuCenterView(opts.Path)
	case KindPositions:
		view, err = a.positionsView(opts.Path)
	default:
		return fmt.Errorf("unknown file kind: %s", kind)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s file: %w", kind, err)
	}

	formatter := output.NewFormatter(output.Config{
		Format:     opts.Format,
		WithColors: !a.config.NoColor,
	}, a.log)

	rendered, err := formatter.Format(view)
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}

	return a.writeOutput(rendered, opts.OutputPath)
}

// guessKind infers the file kind from the file name. Position files are
// matched before dither files, their names usually contain "dither" too.
func guessKind(path string) string {
	name := strings.ToLower(filepath.Base(path))

	switch {
	case strings.Contains(name, "fplane"):
		return KindFPlane
	case strings.Contains(name, "ifucen"):
		return KindIFUCenter
	case strings.Contains(name, "ditherpos"), strings.Contains(name, "positions"):
		return KindPositions
	default:
		return KindDither
	}
}

type ditherRow struct {
	Key      string  `json:"key" yaml:"key"`
	Basename string  `json:"basename" yaml:"basename"`
	Dx       float64 `json:"dx" yaml:"dx"`
	Dy       float64 `json:"dy" yaml:"dy"`
	Seeing   float64 `json:"seeing" yaml:"seeing"`
	Norm     float64 `json:"norm" yaml:"norm"`
	Airmass  float64 `json:"airmass" yaml:"airmass"`
}

func (a *App) ditherView(path string) (output.View, error) {
	set, err := dither.Parse(a.fs, path)
	if err != nil {
		return output.View{}, err
	}

	keys := set.Dithers()
	rows := make([][]string, 0, len(keys))
	raw := make([]ditherRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{
			key,
			set.Basename[key],
			formatFloat(set.Dx[key]),
			formatFloat(set.Dy[key]),
			formatFloat(set.Seeing[key]),
			formatFloat(set.Norm[key]),
			formatFloat(set.Airmass[key]),
		})
		raw = append(raw, ditherRow{
			Key:      key,
			Basename: set.Basename[key],
			Dx:       set.Dx[key],
			Dy:       set.Dy[key],
			Seeing:   set.Seeing[key],
			Norm:     set.Norm[key],
			Airmass:  set.Airmass[key],
		})
	}

	return output.View{
		Title:   fmt.Sprintf("Dither file %s (%d dithers)", path, len(keys)),
		Columns: []string{"KEY", "BASENAME", "DX", "DY", "SEEING", "NORM", "AIRMASS"},
		Rows:    rows,
		Raw:     raw,
	}, nil
}

type fplaneRow struct {
	IFUSlot  string  `json:"ifuslot" yaml:"ifuslot"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	SpecID   string  `json:"specid" yaml:"specid"`
	SpecSlot int     `json:"specslot" yaml:"specslot"`
	IFUID    string  `json:"ifuid" yaml:"ifuid"`
}

func (a *App) fplaneView(path string) (output.View, error) {
	fp, err := fplane.Parse(a.fs, path)
	if err != nil {
		return output.View{}, err
	}

	ifus := fp.IFUs()
	rows := make([][]string, 0, len(ifus))
	raw := make([]fplaneRow, 0, len(ifus))
	for _, ifu := range ifus {
		rows = append(rows, []string{
			ifu.IFUSlot,
			formatFloat(ifu.X),
			formatFloat(ifu.Y),
			ifu.SpecID,
			strconv.Itoa(ifu.SpecSlot),
			ifu.IFUID,
		})
		raw = append(raw, fplaneRow{
			IFUSlot:  ifu.IFUSlot,
			X:        ifu.X,
			Y:        ifu.Y,
			SpecID:   ifu.SpecID,
			SpecSlot: ifu.SpecSlot,
			IFUID:    ifu.IFUID,
		})
	}

	return output.View{
		Title:   fmt.Sprintf("Focal plane %s (%d IFUs)", path, len(ifus)),
		Columns: []string{"IFUSLOT", "X", "Y", "SPECID", "SPECSLOT", "IFUID"},
		Rows:    rows,
		Raw:     raw,
	}, nil
}

type ifuCenterSummary struct {
	IFUID    int            `json:"ifuid" yaml:"ifuid"`
	FiberD   float64        `json:"fiber_d" yaml:"fiber_d"`
	FiberSep float64        `json:"fiber_sep" yaml:"fiber_sep"`
	NFibX    int            `json:"nfib_x" yaml:"nfib_x"`
	NFibY    int            `json:"nfib_y" yaml:"nfib_y"`
	Fibers   map[string]int `json:"fibers" yaml:"fibers"`
}

func (a *App) ifuCenterView(path string) (output.View, error) {
	m, err := ifucenter.Parse(a.fs, path)
	if err != nil {
		return output.View{}, err
	}

	rows := [][]string{
		{"IFU ID", strconv.Itoa(m.IFUID)},
		{"FIBER DIAMETER", formatFloat(m.FiberD)},
		{"FIBER SEPARATION", formatFloat(m.FiberSep)},
		{"GRID", fmt.Sprintf("%dx%d", m.NFibX, m.NFibY)},
	}
	for _, ch := range m.Channels() {
		rows = append(rows, []string{"FIBERS " + ch, strconv.Itoa(m.NFibers[ch])})
	}

	return output.View{
		Title:   fmt.Sprintf("IFU center file %s (bundle %d)", path, m.IFUID),
		Columns: []string{"FIELD", "VALUE"},
		Rows:    rows,
		Raw: ifuCenterSummary{
			IFUID:    m.IFUID,
			FiberD:   m.FiberD,
			FiberSep: m.FiberSep,
			NFibX:    m.NFibX,
			NFibY:    m.NFibY,
			Fibers:   m.NFibers,
		},
	}, nil
}

type positionsRow struct {
	ID  string    `json:"id" yaml:"id"`
	Dxs []float64 `json:"dxs" yaml:"dxs"`
	Dys []float64 `json:"dys" yaml:"dys"`
}

func (a *App) positionsView(path string) (output.View, error) {
	entries, err := dither.ParsePositions(a.fs, path)
	if err != nil {
		return output.View{}, err
	}

	rows := make([][]string, 0, len(entries))
	raw := make([]positionsRow, 0, len(entries))
	for _, entry := range entries {
		n := len(entry.Offsets) / 2
		dxs := entry.Offsets[:n]
		dys := entry.Offsets[n:]

		rows = append(rows, []string{
			entry.ID,
			strconv.Itoa(n),
			joinFloats(dxs),
			joinFloats(dys),
		})
		raw = append(raw, positionsRow{
			ID:  entry.ID,
			Dxs: dxs,
			Dys: dys,
		})
	}

	return output.View{
		Title:   fmt.Sprintf("Dither positions %s (%d IFUs)", path, len(entries)),
		Columns: []string{"ID", "DITHERS", "DXS", "DYS"},
		Rows:    rows,
		Raw:     raw,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}

	return strings.Join(parts, ",")
}
