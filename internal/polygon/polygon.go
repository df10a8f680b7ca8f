// Package polygon implements the unordered edge-list representation that
// sits between the Stroker/Filler and the trapezoid tessellator. A
// Polygon tolerates self-intersection; it's an edge soup, not a
// structured boundary.
package polygon

import "github.com/rasterkit/gg2d/internal/fixed"

// Direction records whether an edge, normalized so its first point is
// above its second, advances the winding counter or retires it. Down
// edges contribute +1; up edges (before normalization) contribute -1.
type Direction int8

const (
	Up   Direction = -1
	Down Direction = 1
)

// Edge is a single non-horizontal segment, normalized so P1.Y < P2.Y.
// Dir records the original traversal direction for winding-rule
// accumulation: Down if the un-normalized edge went top-to-bottom,
// Up if it had to be flipped.
type Edge struct {
	P1, P2 fixed.Point
	Dir    Direction
}

// Polygon accumulates edges from one or more closed contours. Edges are
// not required to form a single simple boundary; self-intersection and
// multiple disjoint contours are both fine, since the tessellator
// resolves interior/exterior purely from the fill rule.
type Polygon struct {
	Edges  []Edge
	MinX   fixed.Fixed
	MaxX   fixed.Fixed
	MinY   fixed.Fixed
	MaxY   fixed.Fixed
	hasAny bool
}

// New returns an empty Polygon.
func New() *Polygon {
	return &Polygon{}
}

// AddEdge appends the segment p1->p2 to the polygon. Horizontal edges
// (equal Y) are discarded at insertion per the tessellator's preprocess
// step, since they contribute no winding crossings.
func (p *Polygon) AddEdge(p1, p2 fixed.Point) {
	if p1.Y == p2.Y {
		return
	}
	dir := Down
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
		dir = Up
	}
	p.Edges = append(p.Edges, Edge{P1: p1, P2: p2, Dir: dir})
	p.growBounds(p1)
	p.growBounds(p2)
}

// AddContour appends the closed polygonal contour formed by pts, wrapping
// from the last point back to the first. Contours with fewer than two
// points contribute no edges.
func (p *Polygon) AddContour(pts []fixed.Point) {
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		p.AddEdge(pts[i], pts[(i+1)%n])
	}
}

func (p *Polygon) growBounds(pt fixed.Point) {
	if !p.hasAny {
		p.MinX, p.MaxX = pt.X, pt.X
		p.MinY, p.MaxY = pt.Y, pt.Y
		p.hasAny = true
		return
	}
	if pt.X < p.MinX {
		p.MinX = pt.X
	}
	if pt.X > p.MaxX {
		p.MaxX = pt.X
	}
	if pt.Y < p.MinY {
		p.MinY = pt.Y
	}
	if pt.Y > p.MaxY {
		p.MaxY = pt.Y
	}
}

// Empty reports whether the polygon has no edges.
func (p *Polygon) Empty() bool {
	return len(p.Edges) == 0
}

// IsRectilinear reports whether every edge in the polygon is either
// purely vertical or purely horizontal. Horizontal edges never reach
// p.Edges (discarded at AddEdge time), so this in practice checks that
// every edge is vertical — the box-tessellator fast path's precondition.
func (p *Polygon) IsRectilinear() bool {
	for _, e := range p.Edges {
		if e.P1.X != e.P2.X {
			return false
		}
	}
	return true
}
