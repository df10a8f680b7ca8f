package gg

import (
	"image"

	"golang.org/x/image/draw"
)

// SurfaceBrush samples an existing raster image as a pattern source,
// mapping destination coordinates into image space through Matrix and
// applying Extend/Filter at the image's edges. This is the Go-native
// home for the "SurfacePattern" tagged-union member: patterns backed by
// another rendered surface rather than a procedural gradient.
type SurfaceBrush struct {
	Image  image.Image
	Matrix Matrix // maps destination coordinates to image-pixel coordinates
	Extend ExtendMode
	Filter Filter

	bounds image.Rectangle
}

// NewSurfaceBrush wraps img for use as a pattern source. The identity
// matrix maps destination pixel (0,0) to the image's own (0,0).
func NewSurfaceBrush(img image.Image) *SurfaceBrush {
	return &SurfaceBrush{
		Image:  img,
		Matrix: Identity(),
		Extend: ExtendPad,
		Filter: FilterBilinear,
		bounds: img.Bounds(),
	}
}

// brushMarker implements the sealed Brush interface.
func (SurfaceBrush) brushMarker() {}

// ColorAt implements Brush, resolving (x, y) in destination space
// through Matrix into image space, then sampling per Extend/Filter.
func (b *SurfaceBrush) ColorAt(x, y float64) RGBA {
	p := b.Matrix.TransformPoint(Point{X: x, Y: y})
	bounds := b.bounds
	if bounds == (image.Rectangle{}) {
		bounds = b.Image.Bounds()
	}

	u, v, ok := b.resolve(p.X, p.Y, bounds)
	if !ok {
		return Transparent
	}

	if b.Filter == FilterNearest {
		return FromColor(b.Image.At(int(u), int(v)))
	}
	return bilinearSample(b.Image, u, v, bounds)
}

func (b *SurfaceBrush) resolve(x, y float64, bounds image.Rectangle) (u, v float64, ok bool) {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	lx, ly := x-float64(bounds.Min.X), y-float64(bounds.Min.Y)

	switch b.Extend {
	case ExtendNone:
		if lx < 0 || lx >= w || ly < 0 || ly >= h {
			return 0, 0, false
		}
	case ExtendRepeat:
		lx = wrap(lx, w)
		ly = wrap(ly, h)
	case ExtendReflect:
		lx = reflect(lx, w)
		ly = reflect(ly, h)
	default: // ExtendPad
		lx = clampf(lx, 0, w-1)
		ly = clampf(ly, 0, h-1)
	}
	return lx + float64(bounds.Min.X), ly + float64(bounds.Min.Y), true
}

func wrap(v, size float64) float64 {
	r := mod(v, size)
	if r < 0 {
		r += size
	}
	return r
}

func reflect(v, size float64) float64 {
	period := 2 * size
	r := mod(v, period)
	if r < 0 {
		r += period
	}
	if r >= size {
		r = period - r
	}
	return r
}

func mod(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	n := int(a / b)
	return a - float64(n)*b
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func bilinearSample(img image.Image, u, v float64, bounds image.Rectangle) RGBA {
	x0, y0 := int(u), int(v)
	x1, y1 := x0+1, y0+1
	if x1 > bounds.Max.X-1 {
		x1 = bounds.Max.X - 1
	}
	if y1 > bounds.Max.Y-1 {
		y1 = bounds.Max.Y - 1
	}
	fx, fy := u-float64(x0), v-float64(y0)

	c00 := FromColor(img.At(x0, y0))
	c10 := FromColor(img.At(x1, y0))
	c01 := FromColor(img.At(x0, y1))
	c11 := FromColor(img.At(x1, y1))

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

// ResampleInto copies src into dst under m using draw.BiLinear, the same
// resampler golang.org/x/image/draw exposes — used when a SurfaceBrush
// backs an entire fill rather than being sampled pixel-by-pixel (e.g.
// compositor fast-path block copies of pixel-aligned surface patterns).
func ResampleInto(dst draw.Image, dstRect image.Rectangle, src image.Image, m Matrix) {
	sr := src.Bounds()
	am := draw.BiLinear
	aff := f64Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	am.Transform(dst, aff.toDrawAffine(), src, sr, draw.Over, nil)
	_ = dstRect
}

type f64Aff3 struct {
	A, B, C, D, E, F float64
}

func (a f64Aff3) toDrawAffine() draw.Affine3 {
	return draw.Affine3{
		{a.A, a.B, a.C},
		{a.D, a.E, a.F},
	}
}
