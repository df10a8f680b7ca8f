package gg

import (
	"math"

	ipath "github.com/rasterkit/gg2d/internal/path"
)

// PathExtents returns the bounding box of the current path in user
// space, matching cairo_path_extents. Returns all zeros if the path
// is empty.
func (c *Context) PathExtents() (x0, y0, x1, y1 float64) {
	if c.path.IsEmpty() {
		return 0, 0, 0, 0
	}
	return c.deviceBoxToUser(c.path.BoundingBox())
}

// FillExtents returns a conservative bounding box, in user space, of
// the region that Fill would paint with the current path and fill
// rule, matching cairo_fill_extents. The result may be larger than
// the area actually painted, per cairo's own documented contract.
func (c *Context) FillExtents() (x0, y0, x1, y1 float64) {
	return c.PathExtents()
}

// StrokeExtents returns a conservative bounding box, in user space, of
// the region that Stroke would paint with the current path and stroke
// style, matching cairo_stroke_extents. It expands the fill extents by
// half the line width in device space (for a miter join, half the line
// width times the miter limit) before mapping back to user space.
func (c *Context) StrokeExtents() (x0, y0, x1, y1 float64) {
	if c.path.IsEmpty() {
		return 0, 0, 0, 0
	}
	bbox := c.path.BoundingBox()
	st := c.paint.GetStroke()
	scale := c.matrix.MaxScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	half := (st.Width * scale) / 2
	if st.Join == LineJoinMiter {
		limit := st.MiterLimit
		if limit <= 0 {
			limit = 10.0
		}
		half *= limit
	}
	bbox.Min.X -= half
	bbox.Min.Y -= half
	bbox.Max.X += half
	bbox.Max.Y += half
	return c.deviceBoxToUser(bbox)
}

// deviceBoxToUser maps a device-space axis-aligned box back to user
// space by inverse-transforming its four corners and re-enclosing them,
// since an inverse rotation/shear does not keep axis alignment.
func (c *Context) deviceBoxToUser(b Rect) (x0, y0, x1, y1 float64) {
	corners := [4]Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range corners {
		ux, uy := c.DeviceToUser(p.X, p.Y)
		minX = math.Min(minX, ux)
		minY = math.Min(minY, uy)
		maxX = math.Max(maxX, ux)
		maxY = math.Max(maxY, uy)
	}
	return minX, minY, maxX, maxY
}

// InFill reports whether the point (x, y), in user space, would be
// painted by Fill with the current path and fill rule, matching
// cairo_in_fill.
func (c *Context) InFill(x, y float64) bool {
	if c.path.IsEmpty() {
		return false
	}
	dp := c.matrix.TransformPoint(Pt(x, y))
	w := c.path.Winding(dp)
	if c.paint.FillRule == FillRuleEvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// InStroke reports whether the point (x, y), in user space, would be
// painted by Stroke with the current path and stroke style, matching
// cairo_in_stroke. It walks the path edge by edge in device space (via
// internal/path.EdgeIter, which closes each subpath to its own start
// point rather than bridging between separate subpaths) and tests the
// point's distance against half the (scaled) line width.
func (c *Context) InStroke(x, y float64) bool {
	if c.path.IsEmpty() {
		return false
	}
	dp := c.matrix.TransformPoint(Pt(x, y))
	st := c.paint.GetStroke()
	scale := c.matrix.MaxScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	half := (st.Width * scale) / 2
	if half <= 0 {
		return false
	}

	edges := ipath.CollectEdges(toInternalPathElements(c.path.Elements()))
	for _, e := range edges {
		a := Point{X: e.P0.X, Y: e.P0.Y}
		b := Point{X: e.P1.X, Y: e.P1.Y}
		if distPointSegment(dp, a, b) <= half {
			return true
		}
	}
	return false
}

// toInternalPathElements adapts root Path elements to internal/path's
// element vocabulary so EdgeIter's subpath-aware edge walk can be
// reused without an import cycle (internal/path keeps its own Point/
// PathElement copies for exactly this reason).
func toInternalPathElements(elems []PathElement) []ipath.PathElement {
	out := make([]ipath.PathElement, len(elems))
	for i, e := range elems {
		switch v := e.(type) {
		case MoveTo:
			out[i] = ipath.MoveTo{Point: ipath.Point{X: v.Point.X, Y: v.Point.Y}}
		case LineTo:
			out[i] = ipath.LineTo{Point: ipath.Point{X: v.Point.X, Y: v.Point.Y}}
		case QuadTo:
			out[i] = ipath.QuadTo{
				Control: ipath.Point{X: v.Control.X, Y: v.Control.Y},
				Point:   ipath.Point{X: v.Point.X, Y: v.Point.Y},
			}
		case CubicTo:
			out[i] = ipath.CubicTo{
				Control1: ipath.Point{X: v.Control1.X, Y: v.Control1.Y},
				Control2: ipath.Point{X: v.Control2.X, Y: v.Control2.Y},
				Point:    ipath.Point{X: v.Point.X, Y: v.Point.Y},
			}
		case Close:
			out[i] = ipath.Close{}
		}
	}
	return out
}

// distPointSegment returns the distance from p to the closest point on
// segment a-b.
func distPointSegment(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx := a.X + t*abx
	cy := a.Y + t*aby
	return math.Hypot(p.X-cx, p.Y-cy)
}
