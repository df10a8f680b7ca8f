package clip

import (
	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/image"
	"github.com/rasterkit/gg2d/internal/pathseg"
	"github.com/rasterkit/gg2d/internal/polygon"
	"github.com/rasterkit/gg2d/internal/trap"
)

// MaskClipper performs alpha mask-based clipping for anti-aliased complex
// clips. It rasterizes a path into a grayscale mask where each pixel's value
// represents coverage (0 = outside, 255 = fully inside), using the same
// trapezoid tessellator the fill/stroke pipeline uses so clip edges
// anti-alias consistently with drawn geometry.
type MaskClipper struct {
	mask   *image.ImageBuf
	bounds Rect
}

// NewMaskClipper creates a mask clipper by rasterizing segs (already in
// device space) into an alpha mask covering bounds, honoring rule.
//
// antiAlias selects between a single coverage sample per pixel (off) and
// 4x vertical supersampling (on); both always resolve partial horizontal
// coverage exactly via each trapezoid's analytic span width.
func NewMaskClipper(segs []pathseg.Segment, bounds Rect, rule trap.FillRule, antiAlias bool) (*MaskClipper, error) {
	if bounds.IsEmpty() {
		return nil, image.ErrInvalidDimensions
	}

	width := int(bounds.W + 0.5)
	height := int(bounds.H + 0.5)
	if width <= 0 || height <= 0 {
		return nil, image.ErrInvalidDimensions
	}

	mask, err := image.NewImageBuf(width, height, image.FormatGray8)
	if err != nil {
		return nil, err
	}

	mc := &MaskClipper{mask: mask, bounds: bounds}
	mc.rasterize(segs, rule, antiAlias)
	return mc, nil
}

// Coverage returns the coverage value (0-255) at the given point, using
// nearest-pixel lookup in mask space.
func (mc *MaskClipper) Coverage(x, y float64) byte {
	mx := x - mc.bounds.X
	my := y - mc.bounds.Y

	if mx < 0 || my < 0 || mx >= float64(mc.mask.Width()) || my >= float64(mc.mask.Height()) {
		return 0
	}

	ix, iy := int(mx), int(my)
	if ix >= mc.mask.Width() {
		ix = mc.mask.Width() - 1
	}
	if iy >= mc.mask.Height() {
		iy = mc.mask.Height() - 1
	}

	gray, _, _, _ := mc.mask.GetRGBA(ix, iy)
	return gray
}

// ApplyCoverage modulates the source alpha by the mask coverage at the given
// point, returning the modulated alpha value (0-255).
func (mc *MaskClipper) ApplyCoverage(x, y float64, srcAlpha byte) byte {
	coverage := mc.Coverage(x, y)
	if coverage == 0 {
		return 0
	}
	if coverage == 255 {
		return srcAlpha
	}
	return byte((uint16(srcAlpha) * uint16(coverage)) / 255)
}

// Bounds returns the bounding rectangle of the mask.
func (mc *MaskClipper) Bounds() Rect {
	return mc.bounds
}

// Mask returns the underlying grayscale image buffer, for debugging or for
// handing the coverage buffer directly to a surface's mask operation.
func (mc *MaskClipper) Mask() *image.ImageBuf {
	return mc.mask
}

const maskSupersample = 4

// rasterize fills mc.mask by tessellating segs into trapezoids and sampling
// each pixel row's coverage from them. Bounds are in device space; segs are
// shifted into mask-local space before tessellation.
func (mc *MaskClipper) rasterize(segs []pathseg.Segment, rule trap.FillRule, antiAlias bool) {
	if len(segs) == 0 {
		return
	}

	ox := fixed.FromFloat64(mc.bounds.X)
	oy := fixed.FromFloat64(mc.bounds.Y)

	poly := polygon.New()
	var start, cur fixed.Point
	have := false
	shift := func(p fixed.Point) fixed.Point {
		return fixed.Point{X: p.X - ox, Y: p.Y - oy}
	}
	for _, s := range segs {
		switch s.Verb {
		case pathseg.MoveTo:
			if have && cur != start {
				poly.AddEdge(shift(cur), shift(start))
			}
			start = s.Points[0]
			cur = start
			have = true
		case pathseg.LineTo:
			poly.AddEdge(shift(cur), shift(s.Points[0]))
			cur = s.Points[0]
		case pathseg.CurveTo:
			flattenCurveInto(poly, cur, s.Points[0], s.Points[1], s.Points[2], shift)
			cur = s.Points[2]
		case pathseg.Close:
			if have && cur != start {
				poly.AddEdge(shift(cur), shift(start))
			}
			cur = start
		}
	}
	if have && cur != start {
		poly.AddEdge(shift(cur), shift(start))
	}
	if poly.Empty() {
		return
	}

	traps := trap.Tessellate(poly, rule)

	samples := 1
	if antiAlias {
		samples = maskSupersample
	}

	for y := 0; y < mc.mask.Height(); y++ {
		mc.rasterizeRow(traps, y, samples)
	}
}

// rasterizeRow accumulates per-subsample coverage of every trapezoid
// spanning row y, then writes the averaged byte coverage across the row.
func (mc *MaskClipper) rasterizeRow(traps []trap.Trapezoid, y, samples int) {
	width := mc.mask.Width()
	if width == 0 {
		return
	}
	acc := make([]uint16, width)

	for s := 0; s < samples; s++ {
		sampleY := fixed.FromFloat64(float64(y) + (float64(s)+0.5)/float64(samples))
		for _, t := range traps {
			if sampleY < t.Top || sampleY >= t.Bottom {
				continue
			}
			lx := t.LeftX(sampleY).ToFloat64()
			rx := t.RightX(sampleY).ToFloat64()
			if rx <= lx {
				continue
			}
			addSpanCoverage(acc, lx, rx, width)
		}
	}

	maxVal := uint16(samples) * 256
	for x := 0; x < width; x++ {
		v := acc[x]
		if v == 0 {
			continue
		}
		if v >= maxVal {
			_ = mc.mask.SetRGBA(x, y, 255, 255, 255, 255)
			continue
		}
		level := byte((uint32(v) * 255) / uint32(maxVal))
		_ = mc.mask.SetRGBA(x, y, level, level, level, level)
	}
}

// addSpanCoverage adds fractional pixel coverage (scaled to 0..256) for the
// half-open span [lx, rx) into acc, splitting partial coverage at the span's
// leading and trailing pixel.
func addSpanCoverage(acc []uint16, lx, rx float64, width int) {
	if lx < 0 {
		lx = 0
	}
	if rx > float64(width) {
		rx = float64(width)
	}
	if rx <= lx {
		return
	}

	x0 := int(lx)
	x1 := int(rx)
	if x0 == x1 {
		acc[x0] += uint16((rx - lx) * 256)
		return
	}
	acc[x0] += uint16((float64(x0+1) - lx) * 256)
	for x := x0 + 1; x < x1 && x < width; x++ {
		acc[x] += 256
	}
	if x1 < width {
		acc[x1] += uint16((rx - float64(x1)) * 256)
	}
}

// flattenCurveInto flattens a device-space cubic into line edges added to
// poly, applying shift to every generated point.
func flattenCurveInto(poly *polygon.Polygon, p0, c1, c2, p3 fixed.Point, shift func(fixed.Point) fixed.Point) {
	const steps = 16
	prev := p0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pt := evalCubicFixed(p0, c1, c2, p3, t)
		poly.AddEdge(shift(prev), shift(pt))
		prev = pt
	}
}

func evalCubicFixed(p0, p1, p2, p3 fixed.Point, t float64) fixed.Point {
	x0, y0 := p0.ToFloat64()
	x1, y1 := p1.ToFloat64()
	x2, y2 := p2.ToFloat64()
	x3, y3 := p3.ToFloat64()
	s := 1 - t
	s2, s3 := s*s, s*s*s
	t2, t3 := t*t, t*t*t
	x := s3*x0 + 3*s2*t*x1 + 3*s*t2*x2 + t3*x3
	y := s3*y0 + 3*s2*t*y1 + 3*s*t2*y2 + t3*y3
	return fixed.FromFloat64Point(x, y)
}
