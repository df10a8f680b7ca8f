// Package fixed implements the 16.16 and 32.32 signed fixed-point
// arithmetic that the rasterization core uses for all interior geometry.
//
// Client-facing APIs speak float64; values are converted to Fixed at the
// boundary and never leave the core as floats again until a pixel is
// written. Conversion from float rounds to nearest; conversion to int
// truncates toward negative infinity, matching the teacher's (gogpu/gg)
// convention of truncating rasterizer math toward the pixel grid.
package fixed

import "math"

// Shift is the number of fractional bits in a Fixed value.
const Shift = 16

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

// One is the fixed-point representation of 1.0.
const One Fixed = 1 << Shift

// Half is the fixed-point representation of 0.5, useful for pixel-center
// sampling and round-to-nearest conversions.
const Half Fixed = One / 2

// FromFloat64 converts a float64 to Fixed, rounding to nearest.
func FromFloat64(f float64) Fixed {
	return Fixed(math.Floor(f*float64(One) + 0.5))
}

// ToFloat64 converts a Fixed back to float64 exactly (up to the 16-bit
// fractional precision).
func (f Fixed) ToFloat64() float64 {
	return float64(f) / float64(One)
}

// Floor truncates toward negative infinity, returning a plain int.
func (f Fixed) Floor() int {
	return int(f >> Shift)
}

// Ceil rounds toward positive infinity.
func (f Fixed) Ceil() int {
	return int((f + One - 1) >> Shift)
}

// Round rounds to the nearest integer, ties toward +inf (so -0.5 rounds to 0)
// (matches the reference implementation's XDoubleToFixed-then-round idiom).
func (f Fixed) Round() int {
	return int((f + Half) >> Shift)
}

// Frac returns the fractional part in [0, One).
func (f Fixed) Frac() Fixed {
	return f & (One - 1)
}

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Fixed32 is a signed 32.32 fixed-point number, used as the intermediate
// precision for Fixed multiplication and division so that products of two
// 16.16 values never overflow before rescaling.
type Fixed32 int64

// Mul multiplies two Fixed values, promoting through Fixed32 so that the
// 32-bit product of the two 16-bit fractions doesn't overflow.
func Mul(a, b Fixed) Fixed {
	return Fixed((Fixed32(a) * Fixed32(b)) >> Shift)
}

// Div divides a by b, promoting the numerator to 32.32 first so the
// result keeps full 16.16 precision.
func Div(a, b Fixed) Fixed {
	if b == 0 {
		return 0
	}
	return Fixed((Fixed32(a) << Shift) / Fixed32(b))
}

// Point is a pair of Fixed coordinates.
type Point struct {
	X, Y Fixed
}

// Pt constructs a Point.
func Pt(x, y Fixed) Point { return Point{X: x, Y: y} }

// FromFloat64Point converts a float64 (x, y) pair to a fixed Point.
func FromFloat64Point(x, y float64) Point {
	return Point{X: FromFloat64(x), Y: FromFloat64(y)}
}

// ToFloat64 converts back to a float64 pair.
func (p Point) ToFloat64() (x, y float64) {
	return p.X.ToFloat64(), p.Y.ToFloat64()
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Equal reports whether two points are exactly identical.
func (p Point) Equal(q Point) bool { return p.X == q.X && p.Y == q.Y }

// Slope is a direction vector, not normalized. Two slopes compare by the
// sign of their 2D cross product, which gives a strict clockwise /
// counter-clockwise ordering without ever needing a square root.
type Slope struct {
	DX, DY Fixed
}

// SlopeBetween returns the slope from a to b.
func SlopeBetween(a, b Point) Slope {
	return Slope{DX: b.X - a.X, DY: b.Y - a.Y}
}

// Cross returns the 2D cross product of two slopes as a Fixed32, which is
// wide enough to hold the full-precision product of two 16.16 deltas
// without overflow. Only the sign is ever significant.
func (s Slope) Cross(o Slope) Fixed32 {
	return Fixed32(s.DX)*Fixed32(o.DY) - Fixed32(s.DY)*Fixed32(o.DX)
}

// CompareClockwise compares two slopes by angle: it returns a negative
// number if s comes before o in clockwise order (starting from the
// positive-X axis, Y increasing downward), zero if they're parallel and
// same-facing, positive otherwise.
func (s Slope) CompareClockwise(o Slope) int {
	c := s.Cross(o)
	switch {
	case c > 0:
		return -1
	case c < 0:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the slope has zero length (degenerate segment).
func (s Slope) IsZero() bool { return s.DX == 0 && s.DY == 0 }

// Dot returns the dot product of two slopes, promoted to Fixed32.
func (s Slope) Dot(o Slope) Fixed32 {
	return Fixed32(s.DX)*Fixed32(o.DX) + Fixed32(s.DY)*Fixed32(o.DY)
}
