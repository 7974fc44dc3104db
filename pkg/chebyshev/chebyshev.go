/*
Package chebyshev evaluates the two-dimensional Chebyshev series used by
the cure distortion solutions. The 36-column design matrix follows the
coefficient ordering of the cure output files, so solutions can be
applied without reshuffling.
*/
package chebyshev

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vander returns the Chebyshev Vandermonde matrix of the points: column
// j holds the Chebyshev polynomial of degree j evaluated at each point,
// for j up to degree.
func Vander(points []float64, degree int) *mat.Dense {
	v := mat.NewDense(len(points), degree+1, nil)

	for i, x := range points {
		v.Set(i, 0, 1)
		if degree >= 1 {
			v.Set(i, 1, x)
		}
		for j := 2; j <= degree; j++ {
			v.Set(i, j, 2*x*v.At(i, j-1)-v.At(i, j-2))
		}
	}

	return v
}

// Matrix2D7 builds the design matrix of the 2D order-7 Chebyshev
// series at the given points, one row per point and 36 columns ordered
// as in the cure distortion solutions.
func Matrix2D7(x, y []float64) (*mat.Dense, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("mismatched point counts: %d x values, %d y values",
			len(x), len(y))
	}

	vx := Vander(x, 7)
	vy := Vander(y, 7)

	m := mat.NewDense(len(x), 36, nil)
	for i := range x {
		tx := vx.RawRowView(i)
		ty := vy.RawRowView(i)

		m.SetRow(i, []float64{
			tx[7], tx[6], tx[5], tx[4], tx[3], tx[2], tx[1],
			ty[7], ty[6], ty[5], ty[4], ty[3], ty[2], ty[1],
			tx[6] * ty[1], tx[1] * ty[6], tx[5] * ty[2], tx[2] * ty[5],
			tx[4] * ty[3], tx[3] * ty[4], tx[5] * ty[1], tx[1] * ty[5],
			tx[4] * ty[2], tx[2] * ty[4], tx[3] * ty[3], tx[4] * ty[1],
			tx[1] * ty[4], tx[3] * ty[2], tx[2] * ty[3], tx[3] * ty[1],
			tx[1] * ty[3], tx[2] * ty[2], tx[2] * ty[1], tx[1] * ty[2],
			tx[1] * ty[1], tx[0],
		})
	}

	return m, nil
}

// Interp2D7 evaluates the 2D order-7 Chebyshev series with the given 36
// cure-ordered coefficients at the points.
func Interp2D7(x, y, coeffs []float64) ([]float64, error) {
	if len(coeffs) != 36 {
		return nil, fmt.Errorf("expected 36 coefficients, got %d", len(coeffs))
	}

	m, err := Matrix2D7(x, y)
	if err != nil {
		return nil, err
	}

	var prod mat.VecDense
	prod.MulVec(m, mat.NewVecDense(len(coeffs), coeffs))

	out := make([]float64, prod.Len())
	for i := range out {
		out[i] = prod.AtVec(i)
	}

	return out, nil
}
