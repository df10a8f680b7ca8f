// Package flatten converts cubic Bézier segments into polylines whose
// chord-height deviation from the true curve is bounded by a caller
// supplied device-space tolerance, via recursive de Casteljau
// subdivision.
package flatten

import "github.com/rasterkit/gg2d/internal/fixed"

// Sink receives flattened line endpoints in order. LineTo is never
// called for the curve's starting point — callers are assumed to
// already be positioned there.
type Sink interface {
	LineTo(p fixed.Point)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(p fixed.Point)

// LineTo implements Sink.
func (f SinkFunc) LineTo(p fixed.Point) { f(p) }

// maxDepth bounds recursive subdivision so a pathological (NaN-derived
// or degenerate-but-not-exactly-coincident) curve can't recurse forever;
// 32 halvings is far beyond any tolerance a real device would request.
const maxDepth = 32

// Cubic flattens the cubic Bézier with control points a, b, c, d into
// line segments emitted to sink, such that the maximum perpendicular
// distance between the control polygon and the flattened chord at each
// subdivision step is below tolerance (in the same fixed-point units as
// the control points — i.e. already in device space).
//
// A curve whose four control points are all coincident within
// fixed-point epsilon is degenerate: it is reported via degenerate and
// no segments are emitted.
func Cubic(a, b, c, d fixed.Point, tolerance fixed.Fixed, sink Sink) (degenerate bool) {
	if isDegenerate(a, b, c, d) {
		return true
	}
	subdivide(a, b, c, d, tolerance, sink, 0)
	return false
}

func isDegenerate(a, b, c, d fixed.Point) bool {
	return a.Equal(b) && b.Equal(c) && c.Equal(d)
}

// flatEnough measures how far the interior control points deviate from
// the chord a-d, via the standard "distance of b and c from line a-d"
// test scaled by the chord's own length so the comparison is an actual
// perpendicular distance rather than a raw cross product.
func flatEnough(a, b, c, d fixed.Point, tolerance fixed.Fixed) bool {
	ux := fixed.Mul(b.X-a.X, d.Y-a.Y) - fixed.Mul(b.Y-a.Y, d.X-a.X)
	vx := fixed.Mul(c.X-a.X, d.Y-a.Y) - fixed.Mul(c.Y-a.Y, d.X-a.X)

	ux = ux.Abs()
	vx = vx.Abs()
	if ux < vx {
		ux = vx
	}

	dx := (d.X - a.X).Abs()
	dy := (d.Y - a.Y).Abs()
	chord := dx + dy
	if chord == 0 {
		// a == d: the curve is a loop; treat any nonzero bulge as unflat,
		// forcing one more subdivision rather than dividing by zero.
		return ux == 0
	}
	// ux is already a cross product (length * length-ish); normalize by
	// the chord length approximation so units compare as a true distance.
	return fixed.Div(ux, chord) <= tolerance
}

func subdivide(a, b, c, d fixed.Point, tolerance fixed.Fixed, sink Sink, depth int) {
	if depth >= maxDepth || flatEnough(a, b, c, d, tolerance) {
		sink.LineTo(d)
		return
	}

	ab := midpoint(a, b)
	bc := midpoint(b, c)
	cd := midpoint(c, d)
	abc := midpoint(ab, bc)
	bcd := midpoint(bc, cd)
	abcd := midpoint(abc, bcd)

	subdivide(a, ab, abc, abcd, tolerance, sink, depth+1)
	subdivide(abcd, bcd, cd, d, tolerance, sink, depth+1)
}

func midpoint(p, q fixed.Point) fixed.Point {
	return fixed.Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Quadratic flattens a quadratic Bézier by first elevating it to an
// equivalent cubic, reusing the cubic subdivision path.
func Quadratic(a, b, c fixed.Point, tolerance fixed.Fixed, sink Sink) (degenerate bool) {
	c1 := fixed.Point{
		X: a.X + fixed.Mul(fixed.FromFloat64(2.0/3.0), b.X-a.X),
		Y: a.Y + fixed.Mul(fixed.FromFloat64(2.0/3.0), b.Y-a.Y),
	}
	c2 := fixed.Point{
		X: c.X + fixed.Mul(fixed.FromFloat64(2.0/3.0), b.X-c.X),
		Y: c.Y + fixed.Mul(fixed.FromFloat64(2.0/3.0), b.Y-c.Y),
	}
	return Cubic(a, c1, c2, c, tolerance, sink)
}
