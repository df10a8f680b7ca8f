// Package pen builds the convex polygonal approximation of a
// device-space circle that the Stroker sweeps along a path to produce
// round joins and caps.
package pen

import (
	"math"

	"github.com/rasterkit/gg2d/internal/fixed"
)

// Vertex is one point on the pen's convex polygon, together with the
// slopes to its clockwise and counter-clockwise neighbors.
type Vertex struct {
	Point    fixed.Point
	SlopeCW  fixed.Slope
	SlopeCCW fixed.Slope
}

// Pen is a convex polygon approximating a circle of a given radius in
// device space, transformed through the CTM's linear part (translation
// never applies to a pen — it's swept, not placed).
type Pen struct {
	Vertices []Vertex
	Radius   fixed.Fixed
}

// CTM is the minimal view of the current transform the pen needs: just
// the four entries of its 2x2 linear part (no translation).
type CTM struct {
	A, B, C, D float64
}

// maxEigenvalue returns the larger eigenvalue magnitude of the CTM's 2x2
// linear submatrix, used to convert a user-space tolerance into an
// effective device-space one for the vertex-count formula.
func (m CTM) maxEigenvalue() float64 {
	// Eigenvalues of [[a,b],[c,d]] via the standard 2x2 characteristic
	// polynomial: lambda^2 - (a+d)lambda + (ad-bc) = 0.
	tr := m.A + m.D
	det := m.A*m.D - m.B*m.C
	disc := tr*tr/4 - det
	if disc < 0 {
		disc = 0
	}
	root := math.Sqrt(disc)
	half := tr / 2
	l1 := math.Abs(half + root)
	l2 := math.Abs(half - root)
	if l1 > l2 {
		return l1
	}
	return l2
}

func (m CTM) apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y, m.C*x + m.D*y
}

// New constructs a Pen of the given radius (user-space units) for the
// given tolerance and CTM, per the vertex-count formula
// N = ceil(pi / arccos(1 - tolerance/(radius*lambda_max))), clamped to a
// minimum of 4 vertices so even a hairline gets a usable polygon.
func New(radius, tolerance float64, ctm CTM) *Pen {
	if radius <= 0 {
		radius = 0
	}
	lambdaMax := ctm.maxEigenvalue()
	if lambdaMax <= 0 {
		lambdaMax = 1
	}

	n := 4
	if radius > 0 && tolerance > 0 {
		ratio := tolerance / (radius * lambdaMax)
		if ratio > 0 && ratio < 2 {
			cosArg := 1 - ratio
			if cosArg > 1 {
				cosArg = 1
			}
			if cosArg < -1 {
				cosArg = -1
			}
			theta := math.Acos(cosArg)
			if theta > 0 {
				n = int(math.Ceil(math.Pi / theta))
			}
		}
	}
	if n < 4 {
		n = 4
	}
	// Keep the vertex count even so the pen has antipodal pairs, matching
	// the reference pen's construction.
	if n%2 != 0 {
		n++
	}

	p := &Pen{Radius: fixed.FromFloat64(radius)}
	pts := make([]fixed.Point, n)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		ux, uy := math.Cos(theta)*radius, math.Sin(theta)*radius
		dx, dy := ctm.apply(ux, uy)
		pts[k] = fixed.FromFloat64Point(dx, dy)
	}

	p.Vertices = make([]Vertex, n)
	for k := 0; k < n; k++ {
		prev := pts[(k-1+n)%n]
		next := pts[(k+1)%n]
		p.Vertices[k] = Vertex{
			Point:    pts[k],
			SlopeCW:  fixed.SlopeBetween(prev, pts[k]),
			SlopeCCW: fixed.SlopeBetween(pts[k], next),
		}
	}
	return p
}

// FindActiveCW returns the index of the vertex i such that
// SlopeCW[i] <= slope <= SlopeCCW[i] under clockwise cross-product
// ordering, searching forward from start.
func (p *Pen) FindActiveCW(slope fixed.Slope, start int) int {
	n := len(p.Vertices)
	i := start
	for k := 0; k < n; k++ {
		v := p.Vertices[i]
		if v.SlopeCW.CompareClockwise(slope) <= 0 && slope.CompareClockwise(v.SlopeCCW) <= 0 {
			return i
		}
		i = (i + 1) % n
	}
	return start
}

// FindActiveCCW is the counter-clockwise-searching counterpart of
// FindActiveCW, used when sweeping the pen the other way around a join.
func (p *Pen) FindActiveCCW(slope fixed.Slope, start int) int {
	n := len(p.Vertices)
	i := start
	for k := 0; k < n; k++ {
		v := p.Vertices[i]
		if v.SlopeCW.CompareClockwise(slope) <= 0 && slope.CompareClockwise(v.SlopeCCW) <= 0 {
			return i
		}
		i = (i - 1 + n) % n
	}
	return start
}

// VerticesBetweenCW returns the pen's vertex points walking clockwise
// from the vertex nearest slope `from` to the vertex nearest slope `to`,
// inclusive of both ends — the fan used to round a join or cap.
func (p *Pen) VerticesBetweenCW(from, to fixed.Slope) []fixed.Point {
	n := len(p.Vertices)
	if n == 0 {
		return nil
	}
	start := p.FindActiveCW(from, 0)
	end := p.FindActiveCW(to, start)

	out := []fixed.Point{p.Vertices[start].Point}
	i := start
	for i != end {
		i = (i + 1) % n
		out = append(out, p.Vertices[i].Point)
	}
	return out
}
