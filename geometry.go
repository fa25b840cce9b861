package triface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/esimov/triface/utils"
)

// AffineTransform maps a 2-D point through a*x + b*y + tx, c*x + d*y + ty.
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Apply maps (x, y) through the transform.
func (t AffineTransform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.TX, t.C*x + t.D*y + t.TY
}

// affineFromCorrespondences solves for the unique affine map taking each
// from[i] to to[i], for exactly three non-collinear point pairs. Each axis
// is an independent 3x3 linear solve: [x y 1][a b tx]^T = x', so rather than
// unrolling Cramer's rule by hand the two systems are solved with gonum,
// the linear-algebra library the rest of the pack reaches for.
func affineFromCorrespondences(fromX, fromY, toX, toY [3]float64) AffineTransform {
	coef := mat.NewDense(3, 3, []float64{
		fromX[0], fromY[0], 1,
		fromX[1], fromY[1], 1,
		fromX[2], fromY[2], 1,
	})

	var xSol, ySol mat.VecDense
	rhsX := mat.NewVecDense(3, toX[:])
	rhsY := mat.NewVecDense(3, toY[:])

	if err := xSol.SolveVec(coef, rhsX); err != nil {
		panic(fmt.Sprintf("triface: degenerate rectangle correspondence: %v", err))
	}
	if err := ySol.SolveVec(coef, rhsY); err != nil {
		panic(fmt.Sprintf("triface: degenerate rectangle correspondence: %v", err))
	}

	return AffineTransform{
		A: xSol.AtVec(0), B: xSol.AtVec(1), TX: xSol.AtVec(2),
		C: ySol.AtVec(0), D: ySol.AtVec(1), TY: ySol.AtVec(2),
	}
}

// normalising returns the transform sending rect's top-left, top-right and
// bottom-right corners to (0,0), (1,0) and (1,1) respectively.
func normalising(rect Rectangle) AffineTransform {
	tlx, tly := rect.TopLeft()
	trx, try := rect.TopRight()
	brx, bry := rect.BottomRight()

	return affineFromCorrespondences(
		[3]float64{tlx, trx, brx}, [3]float64{tly, try, bry},
		[3]float64{0, 1, 1}, [3]float64{0, 0, 1},
	)
}

// unnormalising is the inverse of normalising: it maps (0,0), (1,0), (1,1)
// back onto rect's top-left, top-right and bottom-right corners.
func unnormalising(rect Rectangle) AffineTransform {
	tlx, tly := rect.TopLeft()
	trx, try := rect.TopRight()
	brx, bry := rect.BottomRight()

	return affineFromCorrespondences(
		[3]float64{0, 1, 1}, [3]float64{0, 0, 1},
		[3]float64{tlx, trx, brx}, [3]float64{tly, try, bry},
	)
}

// FindSimilarity fits the least-squares similarity transform (uniform
// scale, rotation and translation) that best maps `from` onto `to`, using
// the standard closed-form (Umeyama/Procrustes) solution. It plays no part
// in TIF training or inference -- the rectangle-relative transforms above
// already account for pose -- but is exercised by the CLI's debug "align"
// subcommand to overlay two predictions in a common frame.
func FindSimilarity(from, to Shape) AffineTransform {
	if len(from) != len(to) {
		panic(fmt.Sprintf("%v: %d != %d", ErrShapeMismatch, len(from), len(to)))
	}
	n := from.NumParts()
	if n == 0 {
		return AffineTransform{A: 1, D: 1}
	}

	var meanFromX, meanFromY, meanToX, meanToY float64
	for i := 0; i < n; i++ {
		fx, fy := from.Point(i)
		tx, ty := to.Point(i)
		meanFromX += float64(fx)
		meanFromY += float64(fy)
		meanToX += float64(tx)
		meanToY += float64(ty)
	}
	fn := float64(n)
	meanFromX /= fn
	meanFromY /= fn
	meanToX /= fn
	meanToY /= fn

	var sxx, sxy, syx, syy, varFrom float64
	for i := 0; i < n; i++ {
		fx, fy := from.Point(i)
		tx, ty := to.Point(i)
		dfx, dfy := float64(fx)-meanFromX, float64(fy)-meanFromY
		dtx, dty := float64(tx)-meanToX, float64(ty)-meanToY

		sxx += dfx * dtx
		sxy += dfx * dty
		syx += dfy * dtx
		syy += dfy * dty
		varFrom += dfx*dfx + dfy*dfy
	}
	// a vanishingly small spread means every from-point coincides, so no
	// rotation/scale is recoverable -- fall back to a pure translation.
	if utils.Abs(varFrom) < 1e-12 {
		return AffineTransform{A: 1, D: 1, TX: meanToX - meanFromX, TY: meanToY - meanFromY}
	}

	// Closed-form rotation+scale minimising sum ||R*s*from_c + t - to_c||^2
	// for a 2-D similarity: derived from the real part of the optimal
	// complex scalar z = (sum conj(from_c)*to_c) / (sum |from_c|^2).
	num1 := sxx + syy
	num2 := sxy - syx
	scale := 1.0
	cosT, sinT := 1.0, 0.0
	if num1 != 0 || num2 != 0 {
		theta := math.Atan2(num2, num1)
		cosT, sinT = math.Cos(theta), math.Sin(theta)
		scale = (num1*cosT + num2*sinT) / varFrom
	}

	a := scale * cosT
	b := -scale * sinT
	c := scale * sinT
	d := scale * cosT

	return AffineTransform{
		A: a, B: b, TX: meanToX - (a*meanFromX + b*meanFromY),
		C: c, D: d, TY: meanToY - (c*meanFromX + d*meanFromY),
	}
}
