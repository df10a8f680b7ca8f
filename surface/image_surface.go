// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/rasterkit/gg2d/internal/compositor"
	"github.com/rasterkit/gg2d/internal/filler"
	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/pathseg"
	"github.com/rasterkit/gg2d/internal/polygon"
	"github.com/rasterkit/gg2d/internal/stroker"
	"github.com/rasterkit/gg2d/internal/trap"
)

// fillTolerance bounds how far a flattened curve point may stray from
// the true curve, in device pixels.
const fillTolerance = 0.25

// aaSupersample is the number of vertical subsamples accumulated per
// scanline when antialiasing is enabled.
const aaSupersample = 4

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Fill and Stroke route through the trapezoid pipeline (internal/filler,
// internal/stroker, internal/trap) and composite coverage with
// internal/compositor, so every drawing entry point shares the same
// anti-aliasing and Porter-Duff math as the clip mask rasterizer.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	path := surface.NewPath()
//	path.Circle(400, 300, 100)
//	s.Fill(path, surface.FillStyle{Color: color.RGBA{255, 0, 0, 255}})
//
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	antialias bool
	op        compositor.Operator

	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:     width,
		height:    height,
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		antialias: true,
		op:        compositor.Over,
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface will render into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()
	return &ImageSurface{
		width:     bounds.Dx(),
		height:    bounds.Dy(),
		img:       img,
		antialias: true,
		op:        compositor.Over,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}

	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: safe - r>>8 is always in [0, 255]
	rgba := color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}

	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{rgba}, image.Point{}, draw.Src)
}

// Fill fills the given path using the specified style.
func (s *ImageSurface) Fill(path *Path, style FillStyle) {
	if s.closed || path == nil || path.IsEmpty() {
		return
	}

	segs := path.ToSegments()
	if len(segs) == 0 {
		return
	}

	rule := trap.NonZero
	if style.Rule == FillRuleEvenOdd {
		rule = trap.EvenOdd
	}

	poly := filler.Fill(pathseg.NewSliceIterator(segs), fixed.FromFloat64(fillTolerance))
	s.rasterize(poly, rule, style)
}

// Stroke strokes the given path using the specified style.
func (s *ImageSurface) Stroke(path *Path, style StrokeStyle) {
	if s.closed || path == nil || path.IsEmpty() || style.Width <= 0 {
		return
	}

	segs := path.ToSegments()
	if len(segs) == 0 {
		return
	}

	poly := stroker.Stroke(pathseg.NewSliceIterator(segs), toStrokerStyle(style))
	s.rasterize(poly, trap.NonZero, FillStyle{Color: style.Color, Pattern: style.Pattern})
}

// toStrokerStyle translates the public StrokeStyle into the internal
// stroker's Style, which works purely in device space.
func toStrokerStyle(style StrokeStyle) stroker.Style {
	st := stroker.Style{
		Width:      style.Width,
		MiterLimit: style.MiterLimit,
		Dash:       style.DashPattern,
		DashOffset: style.DashOffset,
		Tolerance:  fillTolerance,
	}
	if st.MiterLimit <= 0 {
		st.MiterLimit = 4.0
	}
	switch style.Cap {
	case LineCapRound:
		st.Cap = stroker.CapRound
	case LineCapSquare:
		st.Cap = stroker.CapSquare
	default:
		st.Cap = stroker.CapButt
	}
	switch style.Join {
	case LineJoinRound:
		st.Join = stroker.JoinRound
	case LineJoinBevel:
		st.Join = stroker.JoinBevel
	default:
		st.Join = stroker.JoinMiter
	}
	return st
}

// rasterize tessellates poly under rule and composites the resulting
// coverage onto the surface using the style's color or pattern and the
// surface's current blend operator.
func (s *ImageSurface) rasterize(poly *polygon.Polygon, rule trap.FillRule, style FillStyle) {
	if poly.Empty() {
		return
	}

	traps := trap.Tessellate(poly, rule)
	if len(traps) == 0 {
		return
	}

	minX, minY, maxX, maxY, ok := trap.Bounds(traps)
	if !ok {
		return
	}

	y0 := minY.Floor()
	y1 := maxY.Ceil()
	x0 := minX.Floor()
	x1 := maxX.Ceil()
	if y0 < 0 {
		y0 = 0
	}
	if y1 > s.height {
		y1 = s.height
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > s.width {
		x1 = s.width
	}
	if y1 <= y0 || x1 <= x0 {
		return
	}

	samples := 1
	if s.antialias {
		samples = aaSupersample
	}

	solid := style.Pattern == nil
	var solidColor compositor.Pixel
	if solid {
		solidColor = toPremulPixel(s.resolveColor(style.Color, nil))
	}

	cov := make([]uint16, x1-x0)
	for y := y0; y < y1; y++ {
		for i := range cov {
			cov[i] = 0
		}
		rowTop := fixed.FromFloat64(float64(y))
		rowBottom := fixed.FromFloat64(float64(y + 1))
		for sub := 0; sub < samples; sub++ {
			sampleY := fixed.FromFloat64(float64(y) + (float64(sub)+0.5)/float64(samples))
			for _, t := range traps {
				if t.Top > rowBottom || t.Bottom < rowTop {
					continue
				}
				if sampleY < t.Top || sampleY >= t.Bottom {
					continue
				}
				lx := t.LeftX(sampleY).ToFloat64()
				rx := t.RightX(sampleY).ToFloat64()
				addSurfaceSpan(cov, lx-float64(x0), rx-float64(x0), len(cov), samples)
			}
		}

		for i, c := range cov {
			if c == 0 {
				continue
			}
			alpha := c
			if alpha > 255 {
				alpha = 255
			}
			x := x0 + i
			var src compositor.Pixel
			if solid {
				src = solidColor
			} else {
				src = toPremulPixel(s.resolveColor(nil, style.Pattern.ColorAt(float64(x), float64(y))))
			}
			s.blend(x, y, src, uint8(alpha))
		}
	}
}

// addSurfaceSpan is the ImageSurface analogue of the clip mask's span
// coverage accumulator: it distributes one subsample's worth of
// coverage (scaled by 256/samples) across the pixels spanned by
// [lx, rx), splitting fractional coverage at the leading and trailing
// edge pixels.
func addSurfaceSpan(acc []uint16, lx, rx float64, width int, samples int) {
	if rx <= 0 || lx >= float64(width) {
		return
	}
	if lx < 0 {
		lx = 0
	}
	if rx > float64(width) {
		rx = float64(width)
	}
	if rx <= lx {
		return
	}

	unit := uint16(256 / samples)
	li := int(lx)
	ri := int(rx)

	if li == ri {
		frac := rx - lx
		acc[li] += uint16(frac * float64(unit))
		return
	}

	leadFrac := float64(li+1) - lx
	acc[li] += uint16(leadFrac * float64(unit))

	for x := li + 1; x < ri; x++ {
		acc[x] += unit
	}

	if ri < width {
		trailFrac := rx - float64(ri)
		acc[ri] += uint16(trailFrac * float64(unit))
	}
}

// DrawImage draws an image at the specified position.
func (s *ImageSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}

	srcBounds := img.Bounds()
	if opts != nil && opts.SrcRect != nil {
		srcBounds = *opts.SrcRect
	}

	dstX := int(at.X)
	dstY := int(at.Y)

	alpha := 1.0
	if opts != nil {
		alpha = opts.Alpha
	}

	for sy := srcBounds.Min.Y; sy < srcBounds.Max.Y; sy++ {
		dy := dstY + (sy - srcBounds.Min.Y)
		if dy < 0 || dy >= s.height {
			continue
		}

		for sx := srcBounds.Min.X; sx < srcBounds.Max.X; sx++ {
			dx := dstX + (sx - srcBounds.Min.X)
			if dx < 0 || dx >= s.width {
				continue
			}

			srcColor := img.At(sx, sy)
			if alpha < 1.0 {
				srcColor = s.applyAlpha(srcColor, alpha)
			}
			s.blend(dx, dy, toPremulPixel(srcColor), 255)
		}
	}
}

// Flush ensures all pending operations are complete.
// For ImageSurface, this is a no-op.
func (s *ImageSurface) Flush() error {
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(result.Pix, s.img.Pix)
	return result
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Capabilities returns the surface capabilities.
func (s *ImageSurface) Capabilities() Capabilities {
	return Capabilities{
		SupportsSubSurface: false,
		SupportsResize:     false,
		SupportsClipping:   false,
		SupportsBlendModes: true,
		SupportsAntialias:  true,
		MaxWidth:           0, // Unlimited
		MaxHeight:          0,
	}
}

// SetAntialias enables or disables coverage supersampling for subsequent
// Fill/Stroke calls.
func (s *ImageSurface) SetAntialias(on bool) {
	s.antialias = on
}

// Antialias reports whether coverage supersampling is enabled.
func (s *ImageSurface) Antialias() bool {
	return s.antialias
}

// SetBlendMode sets the blend mode used by subsequent Fill/Stroke/DrawImage calls.
func (s *ImageSurface) SetBlendMode(mode BlendMode) {
	s.op = toCompositorOp(mode)
}

// BlendMode returns the current blend operator's public equivalent.
func (s *ImageSurface) BlendMode() BlendMode {
	switch s.op {
	case compositor.Source:
		return BlendModeCopy
	case compositor.Clear:
		return BlendModeClear
	case compositor.Multiply:
		return BlendModeMultiply
	case compositor.Screen:
		return BlendModeScreen
	case compositor.Overlay:
		return BlendModeOverlay
	default:
		return BlendModeSourceOver
	}
}

func toCompositorOp(mode BlendMode) compositor.Operator {
	switch mode {
	case BlendModeCopy:
		return compositor.Source
	case BlendModeClear:
		return compositor.Clear
	case BlendModeMultiply:
		return compositor.Multiply
	case BlendModeScreen:
		return compositor.Screen
	case BlendModeOverlay:
		return compositor.Overlay
	default:
		return compositor.Over
	}
}

// resolveColor extracts the color to composite: if pattern is non-nil,
// its sample at the call site takes precedence over c.
func (s *ImageSurface) resolveColor(c color.Color, sampled color.Color) color.RGBA {
	src := c
	if sampled != nil {
		src = sampled
	}
	if src == nil {
		return color.RGBA{}
	}
	r, g, b, a := src.RGBA()
	//nolint:gosec // G115: safe - r>>8 is always in [0, 255]
	return color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

// toPremulPixel converts a standard (non-premultiplied image/color.Color)
// value to the premultiplied Pixel the compositor expects.
func toPremulPixel(c color.Color) compositor.Pixel {
	r, g, b, a := c.RGBA()
	return compositor.Pixel{
		//nolint:gosec // G115: safe - shifted RGBA() results fit uint8
		R: uint8(r >> 8),
		//nolint:gosec // G115: safe
		G: uint8(g >> 8),
		//nolint:gosec // G115: safe
		B: uint8(b >> 8),
		//nolint:gosec // G115: safe
		A: uint8(a >> 8),
	}
}

// blend composites src (with coverage alpha) onto pixel (x, y) under the
// surface's current operator.
func (s *ImageSurface) blend(x, y int, src compositor.Pixel, alpha uint8) {
	if alpha == 0 {
		return
	}
	idx := s.img.PixOffset(x, y)
	dst := compositor.Pixel{
		R: s.img.Pix[idx+0],
		G: s.img.Pix[idx+1],
		B: s.img.Pix[idx+2],
		A: s.img.Pix[idx+3],
	}
	out := compositor.Composite(s.op, src, alpha, dst)
	s.img.Pix[idx+0] = out.R
	s.img.Pix[idx+1] = out.G
	s.img.Pix[idx+2] = out.B
	s.img.Pix[idx+3] = out.A
}

// applyAlpha multiplies a color's alpha by the given factor.
func (s *ImageSurface) applyAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	newA := uint16(float64(a) * alpha)
	//nolint:gosec // G115: safe - r,g,b are uint32 from RGBA() which fits uint16
	return color.RGBA64{
		R: uint16(r),
		G: uint16(g),
		B: uint16(b),
		A: newA,
	}
}

// CreateSimilar returns an empty ImageSurface of the given dimensions.
// content is accepted for interface compatibility; ImageSurface always
// stores full ARGB.
func (s *ImageSurface) CreateSimilar(_ Content, w, h int) (Surface, error) {
	sim := NewImageSurface(w, h)
	sim.SetAntialias(s.antialias)
	return sim, nil
}

// CreateSimilarImage returns a new ImageSurface; format is accepted for
// interface compatibility, since ImageSurface always stores ARGB32.
func (s *ImageSurface) CreateSimilarImage(_ ImageFormat, w, h int) (Surface, error) {
	return NewImageSurface(w, h), nil
}

// MapToImage returns a writable *image.RGBA view over extents, clamped
// to the surface bounds. Writes through the returned image alias the
// surface directly; UnmapImage is a no-op bookkeeping pair.
func (s *ImageSurface) MapToImage(extents image.Rectangle) (*image.RGBA, error) {
	if s.closed {
		return nil, ErrUnsupported
	}
	r := extents.Intersect(s.img.Bounds())
	return s.img.SubImage(r).(*image.RGBA), nil
}

// UnmapImage commits a MapToImage view back to the surface. Since the
// view aliases the surface's own pixels, there is nothing further to do.
func (s *ImageSurface) UnmapImage(_ *image.RGBA) error {
	return nil
}

// AcquireSourceImage returns a read-only *image.RGBA view of the entire
// surface for use as a compositing source.
func (s *ImageSurface) AcquireSourceImage() (*image.RGBA, error) {
	if s.closed {
		return nil, ErrUnsupported
	}
	return s.img, nil
}

// ReleaseSourceImage releases a view returned by AcquireSourceImage.
// ImageSurface holds no extra state per acquisition.
func (s *ImageSurface) ReleaseSourceImage(_ *image.RGBA) {}

// MarkDirty is a no-op for ImageSurface: there is no derived cache to
// invalidate, since Fill/Stroke/DrawImage all write through s.img directly.
func (s *ImageSurface) MarkDirty(_ image.Rectangle) {}

// GetExtents returns the surface's device-pixel bounds.
func (s *ImageSurface) GetExtents() (image.Rectangle, bool) {
	return image.Rect(0, 0, s.width, s.height), true
}

// GetFontOptions returns the software backend's preferred font defaults.
func (s *ImageSurface) GetFontOptions() FontOptions {
	return DefaultFontOptions()
}

// CopyPage is a no-op: ImageSurface is not a paginated backend.
func (s *ImageSurface) CopyPage() {}

// ShowPage is a no-op: ImageSurface is not a paginated backend.
func (s *ImageSurface) ShowPage() {}

// Paint fills the entire clipped surface with style, equivalent to
// filling a path covering the whole surface extents.
func (s *ImageSurface) Paint(style FillStyle) {
	path := NewPath()
	path.Rectangle(0, 0, float64(s.width), float64(s.height))
	s.Fill(path, style)
}

// Mask paints style through maskImg's alpha channel: maskImg's coverage
// at (x, y) scales how much of style reaches the surface at (x, y).
func (s *ImageSurface) Mask(maskImg *image.Alpha, at Point, style FillStyle) {
	if s.closed || maskImg == nil {
		return
	}
	bounds := maskImg.Bounds()
	solid := style.Pattern == nil
	var solidColor compositor.Pixel
	if solid {
		solidColor = toPremulPixel(s.resolveColor(style.Color, nil))
	}
	dstX := int(at.X)
	dstY := int(at.Y)
	for my := bounds.Min.Y; my < bounds.Max.Y; my++ {
		dy := dstY + (my - bounds.Min.Y)
		if dy < 0 || dy >= s.height {
			continue
		}
		for mx := bounds.Min.X; mx < bounds.Max.X; mx++ {
			dx := dstX + (mx - bounds.Min.X)
			if dx < 0 || dx >= s.width {
				continue
			}
			alpha := maskImg.AlphaAt(mx, my).A
			if alpha == 0 {
				continue
			}
			src := solidColor
			if !solid {
				src = toPremulPixel(s.resolveColor(nil, style.Pattern.ColorAt(float64(dx), float64(dy))))
			}
			s.blend(dx, dy, src, alpha)
		}
	}
}

// Glyphs is unsupported on ImageSurface directly; callers render text by
// filling glyph outlines produced by the glyph package instead.
func (s *ImageSurface) Glyphs() error {
	return ErrUnsupported
}

// Verify ImageSurface implements Surface interface.
var _ Surface = (*ImageSurface)(nil)
var _ CapableSurface = (*ImageSurface)(nil)
var _ BlendableSurface = (*ImageSurface)(nil)
var _ ContentSurface = (*ImageSurface)(nil)
