// Package trap implements the scan-line trapezoid tessellator: the
// polygon-to-trapezoids decomposition that sits between the
// Stroker/Filler and the compositor. It is grounded on the active-edge
// table sweep in the teacher's internal/raster package, generalized from
// a direct-to-pixel scanline filler into a trapezoid emitter reusable by
// any compositor backend (including the clip rasterizer).
package trap

import (
	"sort"

	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/polygon"
)

// FillRule selects how the sweep's per-interval counter decides
// interior vs exterior.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// Trapezoid is a horizontal band bounded above by Top, below by Bottom,
// and on the sides by two non-horizontal lines (Left, Right), each given
// as the two endpoints of the edge it came from so the compositor can
// interpolate the x coordinate at any y within [Top, Bottom].
type Trapezoid struct {
	Top, Bottom        fixed.Fixed
	Left1, Left2       fixed.Point
	Right1, Right2     fixed.Point
}

// LeftX returns the trapezoid's left edge x coordinate at y, via linear
// interpolation between Left1 and Left2.
func (t Trapezoid) LeftX(y fixed.Fixed) fixed.Fixed {
	return lerpX(t.Left1, t.Left2, y)
}

// RightX returns the trapezoid's right edge x coordinate at y.
func (t Trapezoid) RightX(y fixed.Fixed) fixed.Fixed {
	return lerpX(t.Right1, t.Right2, y)
}

func lerpX(p1, p2 fixed.Point, y fixed.Fixed) fixed.Fixed {
	if p1.Y == p2.Y {
		return p1.X
	}
	t := fixed.Div(y-p1.Y, p2.Y-p1.Y)
	return p1.X + fixed.Mul(t, p2.X-p1.X)
}

type activeEdge struct {
	edge polygon.Edge
}

func (a activeEdge) xAt(y fixed.Fixed) fixed.Fixed {
	return lerpX(a.edge.P1, a.edge.P2, y)
}

// Tessellate decomposes p into non-overlapping trapezoids under rule.
// It dispatches to the box-tessellator fast path when p is rectilinear,
// and to the general active-edge-list sweep otherwise.
func Tessellate(p *polygon.Polygon, rule FillRule) []Trapezoid {
	if p.Empty() {
		return nil
	}
	if p.IsRectilinear() {
		return tessellateBox(p, rule)
	}
	return tessellateSweep(p, rule)
}

// tessellateSweep is the general Bentley-Ottmann-flavored sweep from
// spec §4.5: sort edges by top y, maintain an AEL sorted by current x,
// and at each step advance to the next "event" y (an edge activating, an
// edge retiring, or an intersection between AEL neighbors), emitting
// trapezoids for every interval whose fill counter is non-zero /
// odd-parity across the band.
func tessellateSweep(p *polygon.Polygon, rule FillRule) []Trapezoid {
	edges := make([]polygon.Edge, len(p.Edges))
	copy(edges, p.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].P1.Y != edges[j].P1.Y {
			return edges[i].P1.Y < edges[j].P1.Y
		}
		return edges[i].P1.X < edges[j].P1.X
	})

	var out []Trapezoid
	var active []activeEdge
	nextPending := 0
	y := edges[0].P1.Y

	for nextPending < len(edges) || len(active) > 0 {
		// Activate all edges whose top has been reached.
		for nextPending < len(edges) && edges[nextPending].P1.Y <= y {
			active = append(active, activeEdge{edge: edges[nextPending]})
			nextPending++
		}
		// Retire edges that have already ended.
		active = retireEnded(active, y)
		if len(active) == 0 {
			if nextPending < len(edges) {
				y = edges[nextPending].P1.Y
				continue
			}
			break
		}

		sortActiveByX(active, y)

		nextY := nextEventY(active, edges, nextPending, y)
		if nextY <= y {
			// Guard against a degenerate zero-height step; nudge forward
			// by one fixed-point unit so the sweep always makes progress.
			nextY = y + 1
		}

		emitBand(&out, active, y, nextY, rule)

		y = nextY
		active = retireEnded(active, y)
	}
	return out
}

func retireEnded(active []activeEdge, y fixed.Fixed) []activeEdge {
	kept := active[:0]
	for _, a := range active {
		if a.edge.P2.Y > y {
			kept = append(kept, a)
		}
	}
	return kept
}

func sortActiveByX(active []activeEdge, y fixed.Fixed) {
	sort.Slice(active, func(i, j int) bool {
		xi, xj := active[i].xAt(y), active[j].xAt(y)
		if xi != xj {
			return xi < xj
		}
		si := fixed.SlopeBetween(active[i].edge.P1, active[i].edge.P2)
		sj := fixed.SlopeBetween(active[j].edge.P1, active[j].edge.P2)
		return si.CompareClockwise(sj) > 0
	})
}

// nextEventY finds the smallest y strictly greater than the current
// sweep line at which something changes: an edge outside the active set
// activates, an active edge retires, or two adjacent active edges cross.
func nextEventY(active []activeEdge, edges []polygon.Edge, nextPending int, y fixed.Fixed) fixed.Fixed {
	best := fixed.Fixed(1<<31 - 1)
	if nextPending < len(edges) {
		if edges[nextPending].P1.Y > y && edges[nextPending].P1.Y < best {
			best = edges[nextPending].P1.Y
		}
	}
	for _, a := range active {
		if a.edge.P2.Y < best {
			best = a.edge.P2.Y
		}
	}
	for i := 0; i+1 < len(active); i++ {
		if iy, ok := intersectY(active[i].edge, active[i+1].edge, y); ok && iy < best {
			// Nudge the intersection one fixed-point unit below the true
			// crossing so that once the sweep passes it, the AEL re-sorts
			// to the post-intersection order on the very next step.
			iy++
			if iy < best {
				best = iy
			}
		}
	}
	return best
}

// intersectY returns the y at which two non-parallel segments' infinite
// lines cross, if that crossing lies strictly below the current sweep
// line and within both segments' y ranges.
func intersectY(e1, e2 polygon.Edge, y fixed.Fixed) (fixed.Fixed, bool) {
	s1 := fixed.SlopeBetween(e1.P1, e1.P2)
	s2 := fixed.SlopeBetween(e2.P1, e2.P2)
	cross := s1.Cross(s2)
	if cross == 0 {
		return 0, false // parallel (or equal) slopes: no intersection event
	}

	// Solve for t along e1 where e1(t) lies on the infinite line of e2,
	// using the standard 2D segment-intersection determinant form,
	// computed in float64 to keep the denominator comfortably in range.
	x1, y1 := e1.P1.ToFloat64()
	x2, y2 := e1.P2.ToFloat64()
	x3, y3 := e2.P1.ToFloat64()
	x4, y4 := e2.P2.ToFloat64()

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom == 0 {
		return 0, false
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	iy := y1 + t*(y2-y1)

	fy := fixed.FromFloat64(iy)
	if fy <= y {
		return 0, false
	}
	lo1, hi1 := e1.P1.Y, e1.P2.Y
	lo2, hi2 := e2.P1.Y, e2.P2.Y
	if fy < lo1 || fy > hi1 || fy < lo2 || fy > hi2 {
		return 0, false
	}
	return fy, true
}

func emitBand(out *[]Trapezoid, active []activeEdge, y, nextY fixed.Fixed, rule FillRule) {
	winding := 0
	inside := false
	var spanStart *activeEdge

	for i := range active {
		a := active[i]
		switch rule {
		case EvenOdd:
			wasInside := inside
			inside = !inside
			if !wasInside && inside {
				spanStart = &active[i]
			} else if wasInside && !inside && spanStart != nil {
				appendTrapezoid(out, *spanStart, a, y, nextY)
				spanStart = nil
			}
		default: // NonZero
			prevWinding := winding
			winding += int(a.edge.Dir)
			wasInside := prevWinding != 0
			nowInside := winding != 0
			if !wasInside && nowInside {
				spanStart = &active[i]
			} else if wasInside && !nowInside && spanStart != nil {
				appendTrapezoid(out, *spanStart, a, y, nextY)
				spanStart = nil
			}
		}
	}
}

func appendTrapezoid(out *[]Trapezoid, left, right activeEdge, y, nextY fixed.Fixed) {
	if y >= nextY {
		return // zero-height: discarded per spec's boundary policy
	}
	lx0, rx0 := left.xAt(y), right.xAt(y)
	lx1, rx1 := left.xAt(nextY), right.xAt(nextY)
	if lx0 >= rx0 && lx1 >= rx1 {
		return // left >= right at both ends: discarded
	}
	*out = append(*out, Trapezoid{
		Top: y, Bottom: nextY,
		Left1: left.edge.P1, Left2: left.edge.P2,
		Right1: right.edge.P1, Right2: right.edge.P2,
	})
}

// tessellateBox is the specialized fast path for all-vertical-edge
// (rectilinear) polygons: sort the vertical edges, sweep by y without
// any intersection handling, and emit a trapezoid per (edge-pair, band).
func tessellateBox(p *polygon.Polygon, rule FillRule) []Trapezoid {
	edges := make([]polygon.Edge, len(p.Edges))
	copy(edges, p.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].P1.Y != edges[j].P1.Y {
			return edges[i].P1.Y < edges[j].P1.Y
		}
		return edges[i].P1.X < edges[j].P1.X
	})

	ys := map[fixed.Fixed]struct{}{}
	for _, e := range edges {
		ys[e.P1.Y] = struct{}{}
		ys[e.P2.Y] = struct{}{}
	}
	sortedYs := make([]fixed.Fixed, 0, len(ys))
	for y := range ys {
		sortedYs = append(sortedYs, y)
	}
	sort.Slice(sortedYs, func(i, j int) bool { return sortedYs[i] < sortedYs[j] })

	var out []Trapezoid
	for i := 0; i+1 < len(sortedYs); i++ {
		y, nextY := sortedYs[i], sortedYs[i+1]
		mid := y + (nextY-y)/2

		var active []activeEdge
		for _, e := range edges {
			if e.P1.Y <= mid && e.P2.Y > mid {
				active = append(active, activeEdge{edge: e})
			}
		}
		sortActiveByX(active, mid)
		emitBand(&out, active, y, nextY, rule)
	}
	return out
}

// Bounds returns the overall bounding box of a set of trapezoids.
func Bounds(traps []Trapezoid) (minX, minY, maxX, maxY fixed.Fixed, ok bool) {
	if len(traps) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, maxX = traps[0].LeftX(traps[0].Top), traps[0].RightX(traps[0].Top)
	minY, maxY = traps[0].Top, traps[0].Bottom
	for _, t := range traps {
		for _, y := range []fixed.Fixed{t.Top, t.Bottom} {
			lx, rx := t.LeftX(y), t.RightX(y)
			if lx < minX {
				minX = lx
			}
			if rx > maxX {
				maxX = rx
			}
		}
		if t.Top < minY {
			minY = t.Top
		}
		if t.Bottom > maxY {
			maxY = t.Bottom
		}
	}
	return minX, minY, maxX, maxY, true
}
