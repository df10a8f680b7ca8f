// Package region implements rectilinear pixel-region algebra: ordered
// lists of non-overlapping rectangles kept in canonical band form, with
// union/intersect/subtract. This is the representation the Clip
// component falls back to whenever it can prove the current clip is
// exactly a union of axis-aligned boxes (the fast path that avoids
// rasterizing a mask surface).
package region

import "sort"

// Rect is an axis-aligned integer rectangle, half-open
// ([X, X+W) x [Y, Y+H)), matching device pixel addressing.
type Rect struct {
	X, Y, W, H int
}

// Right returns X+W.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns Y+H.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers zero pixels.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

func intersectRect(a, b Rect) Rect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.Right(), b.Right()), min(a.Bottom(), b.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Region is an ordered, non-overlapping set of rectangles. The zero
// value is the empty region.
type Region struct {
	rects []Rect
}

// New builds a Region from the given rectangles, normalizing them into
// canonical non-overlapping band form via repeated Union.
func New(rects ...Rect) *Region {
	r := &Region{}
	for _, rc := range rects {
		r.UnionRect(rc)
	}
	return r
}

// Rects returns the region's rectangles. The caller must not mutate the
// returned slice.
func (r *Region) Rects() []Rect {
	return r.rects
}

// IsEmpty reports whether the region covers no pixels.
func (r *Region) IsEmpty() bool {
	return len(r.rects) == 0
}

// Extents returns the bounding box of the whole region.
func (r *Region) Extents() Rect {
	if len(r.rects) == 0 {
		return Rect{}
	}
	x0, y0 := r.rects[0].X, r.rects[0].Y
	x1, y1 := r.rects[0].Right(), r.rects[0].Bottom()
	for _, rc := range r.rects[1:] {
		x0, y0 = min(x0, rc.X), min(y0, rc.Y)
		x1, y1 = max(x1, rc.Right()), max(y1, rc.Bottom())
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether the region fully contains r (every pixel of
// r falls in the union of the region's rectangles).
func (r *Region) Contains(q Rect) bool {
	remaining := []Rect{q}
	for _, rc := range r.rects {
		var next []Rect
		for _, piece := range remaining {
			next = append(next, subtractRect(piece, rc)...)
		}
		remaining = next
		if len(remaining) == 0 {
			return true
		}
	}
	return false
}

// UnionRect adds q to the region in place.
func (r *Region) UnionRect(q Rect) {
	if q.Empty() {
		return
	}
	r.rects = bandNormalize(append(r.rects, q))
}

// Union returns a new region covering the union of r and o.
func Union(r, o *Region) *Region {
	out := append([]Rect{}, r.rects...)
	out = append(out, o.rects...)
	return &Region{rects: bandNormalize(out)}
}

// Intersect returns a new region covering the intersection of r and o.
func Intersect(r, o *Region) *Region {
	var out []Rect
	for _, a := range r.rects {
		for _, b := range o.rects {
			if a.intersects(b) {
				ib := intersectRect(a, b)
				if !ib.Empty() {
					out = append(out, ib)
				}
			}
		}
	}
	return &Region{rects: bandNormalize(out)}
}

// Subtract returns a new region covering r with every rectangle of o
// removed.
func Subtract(r, o *Region) *Region {
	remaining := append([]Rect{}, r.rects...)
	for _, b := range o.rects {
		var next []Rect
		for _, a := range remaining {
			next = append(next, subtractRect(a, b)...)
		}
		remaining = next
	}
	return &Region{rects: bandNormalize(remaining)}
}

func subtractRect(a, b Rect) []Rect {
	if !a.intersects(b) {
		return []Rect{a}
	}
	var out []Rect
	// Top strip
	if b.Y > a.Y {
		out = append(out, Rect{X: a.X, Y: a.Y, W: a.W, H: b.Y - a.Y})
	}
	// Bottom strip
	if b.Bottom() < a.Bottom() {
		out = append(out, Rect{X: a.X, Y: b.Bottom(), W: a.W, H: a.Bottom() - b.Bottom()})
	}
	midTop := max(a.Y, b.Y)
	midBottom := min(a.Bottom(), b.Bottom())
	if midBottom > midTop {
		// Left strip
		if b.X > a.X {
			out = append(out, Rect{X: a.X, Y: midTop, W: b.X - a.X, H: midBottom - midTop})
		}
		// Right strip
		if b.Right() < a.Right() {
			out = append(out, Rect{X: b.Right(), Y: midTop, W: a.Right() - b.Right(), H: midBottom - midTop})
		}
	}
	return out
}

// bandNormalize takes an arbitrary (possibly overlapping) set of
// rectangles and rebuilds a canonical non-overlapping band
// representation: horizontal bands at each distinct Y boundary, within
// each band a sorted run of merged, non-touching spans.
func bandNormalize(rects []Rect) []Rect {
	rects = dropEmpty(rects)
	if len(rects) == 0 {
		return nil
	}

	yset := map[int]struct{}{}
	for _, r := range rects {
		yset[r.Y] = struct{}{}
		yset[r.Bottom()] = struct{}{}
	}
	ys := make([]int, 0, len(yset))
	for y := range yset {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	var out []Rect
	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		mid := y0 + (y1-y0)/2
		var spans []Rect
		for _, r := range rects {
			if r.Y <= mid && r.Bottom() > mid {
				spans = append(spans, Rect{X: r.X, W: r.W})
			}
		}
		if len(spans) == 0 {
			continue
		}
		merged := mergeSpans(spans)
		for _, s := range merged {
			out = append(out, Rect{X: s.X, Y: y0, W: s.W, H: y1 - y0})
		}
	}
	return mergeVerticalRuns(out)
}

func mergeSpans(spans []Rect) []Rect {
	sort.Slice(spans, func(i, j int) bool { return spans[i].X < spans[j].X })
	var out []Rect
	for _, s := range spans {
		if len(out) > 0 && s.X <= out[len(out)-1].Right() {
			last := &out[len(out)-1]
			if r := s.X + s.W; r > last.Right() {
				last.W = r - last.X
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// mergeVerticalRuns merges adjacent bands whose spans are pixel-identical,
// keeping the region's rectangle count from growing unboundedly for a
// region that's really just one tall box cut into many bands.
func mergeVerticalRuns(rects []Rect) []Rect {
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].X != rects[j].X {
			return rects[i].X < rects[j].X
		}
		return rects[i].Y < rects[j].Y
	})
	var out []Rect
	for _, r := range rects {
		merged := false
		for i := range out {
			if out[i].X == r.X && out[i].W == r.W && out[i].Bottom() == r.Y {
				out[i].H += r.H
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, r)
		}
	}
	return out
}

func dropEmpty(rects []Rect) []Rect {
	out := rects[:0]
	for _, r := range rects {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
