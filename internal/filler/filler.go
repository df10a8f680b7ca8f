// Package filler converts a path into a Polygon suitable for the
// trapezoid tessellator, flattening curves through internal/flatten and
// closing every sub-path implicitly (fills always treat open sub-paths
// as closed, per the imaging model's convention of filling the
// straight-line closure of unclosed contours).
package filler

import (
	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/flatten"
	"github.com/rasterkit/gg2d/internal/pathseg"
	"github.com/rasterkit/gg2d/internal/polygon"
)

// Fill walks it, flattening curves at tolerance, and returns the
// resulting Polygon. Every sub-path is closed implicitly: if the last
// point of a sub-path doesn't coincide with its first, a closing edge is
// added automatically, matching the fill imaging model where open
// contours are filled as if closed.
func Fill(it pathseg.Iterator, tolerance fixed.Fixed) *polygon.Polygon {
	poly := polygon.New()

	var subpath []fixed.Point
	var start, current fixed.Point
	haveStart := false

	flush := func() {
		if len(subpath) >= 2 {
			poly.AddContour(subpath)
		}
		subpath = nil
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
			haveStart = true
			subpath = append(subpath[:0:0], start)
		case pathseg.LineTo:
			if !haveStart {
				continue
			}
			current = seg.Points[0]
			subpath = append(subpath, current)
		case pathseg.CurveTo:
			if !haveStart {
				continue
			}
			c1, c2, end := seg.Points[0], seg.Points[1], seg.Points[2]
			flatten.Cubic(current, c1, c2, end, tolerance, flatten.SinkFunc(func(p fixed.Point) {
				subpath = append(subpath, p)
			}))
			current = end
		case pathseg.Close:
			if haveStart && !current.Equal(start) {
				subpath = append(subpath, start)
			}
			flush()
			current = start
		}
	}
	flush()

	return poly
}
