/*
Package telescope models per-shot observing conditions: the image quality
(FWHM) and the relative illumination and transparency used to normalise
fluxes between dithers. All models answer for a focal-plane position and
a 1-based dither number, so more detailed implementations can vary across
the field and between exposures.
*/
package telescope

import "fmt"

// Model evaluates an observing-condition quantity at a focal-plane
// position for a 1-based dither number.
type Model interface {
	Value(x, y float64, dither int) float64
}

type constantModel struct {
	value float64
}

func (m constantModel) Value(x, y float64, dither int) float64 {
	return m.value
}

// Constant returns a model that evaluates to value everywhere.
func Constant(value float64) Model {
	return constantModel{value: value}
}

type perDitherModel struct {
	values []float64
}

func (m perDitherModel) Value(x, y float64, dither int) float64 {
	if dither < 1 || dither > len(m.values) {
		return 1.0
	}

	return m.values[dither-1]
}

// PerDither returns a model with one value per dither, independent of
// position. Dither numbers outside the stored range evaluate to 1.
func PerDither(values []float64) Model {
	return perDitherModel{values: append([]float64(nil), values...)}
}

// RelativeIllumination builds a per-dither illumination model from raw
// measurements, normalised to the first dither.
func RelativeIllumination(values []float64) (Model, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("relative illumination needs at least one value")
	}
	if values[0] == 0 {
		return nil, fmt.Errorf("cannot normalise illumination to a zero first value")
	}

	normalised := make([]float64, len(values))
	for i, v := range values {
		normalised[i] = v / values[0]
	}

	return PerDither(normalised), nil
}

// Shot bundles the observing-condition models of a single exposure set.
// The fields can be swapped for more detailed models when measurements
// are available.
type Shot struct {
	FWHMModel         Model
	IlluminationModel Model
	TransparencyModel Model
}

// NewShot returns a shot with a constant image quality of fwhmFallback
// and unit illumination and transparency.
func NewShot(fwhmFallback float64) *Shot {
	return &Shot{
		FWHMModel:         Constant(fwhmFallback),
		IlluminationModel: Constant(1.0),
		TransparencyModel: Constant(1.0),
	}
}

// FWHM returns the image quality at a focal-plane position for a dither.
func (s *Shot) FWHM(x, y float64, dither int) float64 {
	return s.FWHMModel.Value(x, y, dither)
}

// Normalization returns the relative flux normalisation for a dither:
// illumination scaled by transparency.
func (s *Shot) Normalization(x, y float64, dither int) float64 {
	return s.IlluminationModel.Value(x, y, dither) * s.TransparencyModel.Value(x, y, dither)
}
