// Package stroker converts a path plus stroke style (width, caps, joins,
// miter limit, dash pattern) into the outline Polygon of the "inked"
// stroke, sweeping a Pen along curved joins and caps per spec §4.4.
package stroker

import (
	"math"

	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/flatten"
	"github.com/rasterkit/gg2d/internal/pathseg"
	"github.com/rasterkit/gg2d/internal/pen"
	"github.com/rasterkit/gg2d/internal/polygon"
	"github.com/rasterkit/gg2d/internal/pool"
)

// pointPool recycles the left/right offset-contour buffers strokeRun
// builds once per run; a path with many short dash runs would otherwise
// reallocate these on every run.
var pointPool = pool.New[fixed.Point](pool.DefaultMaxCap)

// Cap selects the terminal treatment of an open sub-path's endpoints.
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join selects the treatment of a vertex between two segments.
type Join int

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style bundles everything the stroker needs besides the path itself.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
	Dash       []float64
	DashOffset float64
	Tolerance  float64
	CTM        pen.CTM
}

// Stroke walks it, flattens curves, sweeps the stroke outline at the
// given style, and returns the resulting Polygon (one closed contour per
// stroked run, already in device-fixed-point coordinates since the
// caller is expected to have pre-transformed the path through the CTM
// before handing it to the stroker, matching the rest of the core).
func Stroke(it pathseg.Iterator, style Style) *polygon.Polygon {
	poly := polygon.New()
	tol := fixed.FromFloat64(style.Tolerance)
	halfWidth := style.Width / 2
	p := pen.New(halfWidth, style.Tolerance, style.CTM)

	for _, sub := range flattenSubpaths(it, tol) {
		if len(sub.points) < 2 {
			if len(sub.points) == 1 && style.Cap == CapRound {
				emitDot(poly, sub.points[0], halfWidth)
			}
			continue
		}
		runs := applyDash(sub, style.Dash, style.DashOffset)
		for _, run := range runs {
			strokeRun(poly, run, style, p)
		}
	}
	return poly
}

type subpath struct {
	points []fixed.Point
	closed bool
}

func flattenSubpaths(it pathseg.Iterator, tol fixed.Fixed) []subpath {
	var subs []subpath
	var cur []fixed.Point
	var start, current fixed.Point
	have := false
	closed := false

	flush := func() {
		if len(cur) > 0 {
			subs = append(subs, subpath{points: cur, closed: closed})
		}
		cur = nil
		closed = false
	}

	for {
		seg, ok := it.Next()
		if !ok {
			break
		}
		switch seg.Verb {
		case pathseg.MoveTo:
			flush()
			start = seg.Points[0]
			current = start
			have = true
			cur = append(cur[:0:0], start)
		case pathseg.LineTo:
			if !have {
				continue
			}
			current = seg.Points[0]
			cur = append(cur, current)
		case pathseg.CurveTo:
			if !have {
				continue
			}
			c1, c2, end := seg.Points[0], seg.Points[1], seg.Points[2]
			flatten.Cubic(current, c1, c2, end, tol, flatten.SinkFunc(func(pt fixed.Point) {
				cur = append(cur, pt)
			}))
			current = end
		case pathseg.Close:
			closed = true
			if have && !current.Equal(start) {
				cur = append(cur, start)
			}
			flush()
			current = start
		}
	}
	flush()
	return subs
}

// run is a (possibly open) polyline to actually stroke: the result of
// cutting a sub-path into dash "on" intervals.
type run struct {
	points []fixed.Point
	closed bool
}

func applyDash(sub subpath, dash []float64, offset float64) []run {
	if len(dash) == 0 {
		return []run{{points: sub.points, closed: sub.closed}}
	}

	pattern := dash
	sum := 0.0
	for _, d := range pattern {
		sum += d
	}
	if sum <= 0 {
		return []run{{points: sub.points, closed: sub.closed}}
	}

	// Normalize the starting offset into [0, sum) and find the starting
	// dash index / remaining length in that dash, per the dash state
	// machine described in spec §4.4.
	off := math.Mod(offset, sum)
	if off < 0 {
		off += sum
	}
	idx := 0
	for off >= pattern[idx] {
		off -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	remaining := pattern[idx] - off
	on := idx%2 == 0

	var runs []run
	var cur []fixed.Point
	if on {
		cur = append(cur, sub.points[0])
	}

	for i := 0; i+1 < len(sub.points); i++ {
		a, b := sub.points[i], sub.points[i+1]
		ax, ay := a.ToFloat64()
		bx, by := b.ToFloat64()
		segLen := math.Hypot(bx-ax, by-ay)
		walked := 0.0

		for walked < segLen {
			step := math.Min(remaining, segLen-walked)
			walked += step
			remaining -= step

			t := walked / segLen
			pt := fixed.FromFloat64Point(ax+(bx-ax)*t, ay+(by-ay)*t)

			if on {
				cur = append(cur, pt)
			}
			if remaining <= 1e-9 {
				if on && len(cur) >= 2 {
					runs = append(runs, run{points: cur})
				}
				cur = nil
				idx = (idx + 1) % len(pattern)
				remaining = pattern[idx]
				on = !on
				if on {
					cur = append(cur, pt)
				}
			}
		}
	}
	if on && len(cur) >= 2 {
		runs = append(runs, run{points: cur})
	}
	return runs
}

func emitDot(poly *polygon.Polygon, center fixed.Point, radius float64) {
	if radius <= 0 {
		return
	}
	const n = 16
	pts := make([]fixed.Point, n)
	cx, cy := center.ToFloat64()
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / n
		pts[k] = fixed.FromFloat64Point(cx+math.Cos(theta)*radius, cy+math.Sin(theta)*radius)
	}
	poly.AddContour(pts)
}

func strokeRun(poly *polygon.Polygon, r run, style Style, p *pen.Pen) {
	pts := r.points
	n := len(pts)
	if n < 2 {
		return
	}
	halfWidth := style.Width / 2

	left := pointPool.Get()  // CCW offset side
	right := pointPool.Get() // CW offset side
	defer func() { pointPool.Put(left); pointPool.Put(right) }()

	segCount := n - 1
	if r.closed {
		segCount = n // wrap last->first as a segment too
	}

	for i := 0; i < segCount; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		nx, ny, ok := unitNormal(a, b)
		if !ok {
			continue
		}
		offX, offY := fixed.FromFloat64(nx*halfWidth), fixed.FromFloat64(ny*halfWidth)

		aLeft := fixed.Point{X: a.X + offX, Y: a.Y + offY}
		bLeft := fixed.Point{X: b.X + offX, Y: b.Y + offY}
		aRight := fixed.Point{X: a.X - offX, Y: a.Y - offY}
		bRight := fixed.Point{X: b.X - offX, Y: b.Y - offY}

		if i > 0 || r.closed {
			addJoin(&left, &right, pts, i, n, style, p, halfWidth)
		}
		left = append(left, aLeft, bLeft)
		right = append(right, aRight, bRight)
	}

	if r.closed {
		addJoin(&left, &right, pts, 0, n, style, p, halfWidth)
		poly.AddContour(left)
		// Right side forms the hole contour of the stroked band; reverse
		// it so its winding opposes the left contour (annulus fill).
		reverse(right)
		poly.AddContour(right)
		return
	}

	// Open run: butt/round/square cap at the end, then walk back along
	// the right (CW) side to the start, then the start cap, closing the
	// contour into one outline.
	outline := make([]fixed.Point, 0, len(left)+len(right)+8)
	outline = append(outline, left...)
	etx, ety := tangentAt(pts, n-1, n, false)
	outline = append(outline, capPoints(pts[n-1], etx, ety, style, halfWidth)...)
	reverse(right)
	outline = append(outline, right...)
	stx, sty := tangentAt(pts, 0, n, true)
	outline = append(outline, capPoints(pts[0], -stx, -sty, style, halfWidth)...)

	poly.AddContour(outline)
}

func tangentAt(pts []fixed.Point, idx, n int, start bool) (fixed.Fixed, fixed.Fixed) {
	var a, b fixed.Point
	if start {
		a, b = pts[0], pts[1]
	} else {
		a, b = pts[n-2], pts[n-1]
	}
	return b.X - a.X, b.Y - a.Y
}

func capPoints(center fixed.Point, tx, ty fixed.Fixed, style Style, halfWidth float64) []fixed.Point {
	txf, tyf := tx.ToFloat64(), ty.ToFloat64()
	length := math.Hypot(txf, tyf)
	if length == 0 {
		return nil
	}
	txf, tyf = txf/length, tyf/length
	nxf, nyf := -tyf, txf

	switch style.Cap {
	case CapSquare:
		cx, cy := center.ToFloat64()
		ext := halfWidth
		p1 := fixed.FromFloat64Point(cx+nxf*halfWidth+txf*ext, cy+nyf*halfWidth+tyf*ext)
		p2 := fixed.FromFloat64Point(cx-nxf*halfWidth+txf*ext, cy-nyf*halfWidth+tyf*ext)
		return []fixed.Point{p1, p2}
	case CapRound:
		const arcSteps = 8
		cx, cy := center.ToFloat64()
		out := make([]fixed.Point, 0, arcSteps+1)
		startAngle := math.Atan2(nyf, nxf)
		for k := 0; k <= arcSteps; k++ {
			theta := startAngle - math.Pi*float64(k)/arcSteps
			out = append(out, fixed.FromFloat64Point(cx+math.Cos(theta)*halfWidth, cy+math.Sin(theta)*halfWidth))
		}
		return out
	default: // CapButt
		return nil
	}
}

func addJoin(left, right *[]fixed.Point, pts []fixed.Point, i, n int, style Style, p *pen.Pen, halfWidth float64) {
	prevIdx := (i - 1 + n) % n
	if i == 0 && !wraps(pts, n) {
		prevIdx = 0
	}
	a := pts[prevIdx]
	b := pts[i%n]
	c := pts[(i+1)%n]

	s1 := fixed.SlopeBetween(a, b)
	s2 := fixed.SlopeBetween(b, c)
	if s1.IsZero() || s2.IsZero() {
		return
	}

	switch style.Join {
	case JoinRound:
		n1x, n1y, ok1 := unitNormal(a, b)
		n2x, n2y, ok2 := unitNormal(b, c)
		if !ok1 || !ok2 {
			return
		}
		bx, by := b.ToFloat64()
		cross := n1x*n2y - n1y*n2x
		side := left
		sx, sy := n1x, n1y
		ex, ey := n2x, n2y
		if cross > 0 {
			side = right
			sx, sy = -n1x, -n1y
			ex, ey = -n2x, -n2y
		}
		startAngle := math.Atan2(sy, sx)
		endAngle := math.Atan2(ey, ex)
		for endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
		const steps = 6
		for k := 1; k < steps; k++ {
			theta := startAngle + (endAngle-startAngle)*float64(k)/steps
			*side = append(*side, fixed.FromFloat64Point(bx+math.Cos(theta)*halfWidth, by+math.Sin(theta)*halfWidth))
		}
	case JoinMiter:
		n1x, n1y, ok1 := unitNormal(a, b)
		n2x, n2y, ok2 := unitNormal(b, c)
		if !ok1 || !ok2 {
			return
		}
		bx, by := b.ToFloat64()
		mx, my := n1x+n2x, n1y+n2y
		mlen := math.Hypot(mx, my)
		if mlen < 1e-9 {
			return // near-180-degree turn: bevel is already what the two segment quads produce
		}
		mx, my = mx/mlen, my/mlen
		cosHalf := (n1x*mx + n1y*my)
		if cosHalf <= 1e-6 {
			return
		}
		miterLen := halfWidth / cosHalf
		if miterLen/halfWidth > style.MiterLimit {
			return // exceeds miter limit: fall back to bevel (no extra point)
		}
		cross := n1x*n2y - n1y*n2x
		side := left
		if cross > 0 {
			side = right
			mx, my = -mx, -my
		}
		*side = append(*side, fixed.FromFloat64Point(bx+mx*miterLen, by+my*miterLen))
	default: // JoinBevel: no extra vertex needed, the two segment quads already form the bevel triangle
	}
}

func wraps(pts []fixed.Point, n int) bool {
	return n > 0 && pts[0].Equal(pts[n-1])
}

func unitNormal(a, b fixed.Point) (nx, ny float64, ok bool) {
	ax, ay := a.ToFloat64()
	bx, by := b.ToFloat64()
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0, false
	}
	return -dy / length, dx / length, true
}

func reverse(pts []fixed.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
