/*
Package fits reads primary-HDU headers of FITS files and derives the
few quantities the pipeline needs from them: raw keyword values for
ordering exposures and the wavelength to pixel-index mapping of the
spectral axis.
*/
package fits

import (
	"fmt"
	"math"

	"github.com/astrogo/fitsio"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

// Header holds the keyword/value pairs of a primary HDU.
type Header map[string]any

// ReadHeader reads the primary header of the FITS file at path. The
// returned header is a plain copy and stays valid after the file is
// closed.
func ReadHeader(fs afero.Fs, path string) (Header, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FITS file: %w", err)
	}
	defer f.Close()

	fit, err := fitsio.Open(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read FITS file %s: %w", path, err)
	}
	defer fit.Close()

	hdr := fit.HDU(0).Header()

	h := Header{}
	for _, key := range hdr.Keys() {
		h[key] = hdr.Get(key).Value
	}

	return h, nil
}

// Value returns the raw value of a header keyword.
func (h Header) Value(key string) (any, error) {
	v, ok := h[key]
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}

	return v, nil
}

// Float returns a header keyword as float64.
func (h Header) Float(key string) (float64, error) {
	v, err := h.Value(key)
	if err != nil {
		return 0, err
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &ValueError{Key: key, Value: v}
	}

	return f, nil
}

// HeaderValue returns a lookup function reading single keywords from
// FITS files on fs. Every call opens and parses the file again.
func HeaderValue(fs afero.Fs) func(path, key string) (any, error) {
	return func(path, key string) (any, error) {
		h, err := ReadHeader(fs, path)
		if err != nil {
			return nil, err
		}

		return h.Value(key)
	}
}

// WavelengthIndex maps a wavelength to the nearest pixel index along
// the first axis, using the CRVAL1 and CDELT1 keywords.
func WavelengthIndex(h Header, wavelength float64) (int, error) {
	wmin, err := h.Float("CRVAL1")
	if err != nil {
		return 0, err
	}

	delta, err := h.Float("CDELT1")
	if err != nil {
		return 0, err
	}

	return int(math.Round((wavelength - wmin) / delta)), nil
}
