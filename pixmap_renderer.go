package gg

import (
	"github.com/rasterkit/gg2d/internal/clip"
	"github.com/rasterkit/gg2d/internal/compositor"
	"github.com/rasterkit/gg2d/internal/filler"
	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/pathseg"
	"github.com/rasterkit/gg2d/internal/polygon"
	"github.com/rasterkit/gg2d/internal/stroker"
	"github.com/rasterkit/gg2d/internal/trap"
)

// fillTolerance bounds how far a flattened curve point may stray from
// the true curve, in device pixels, when no Context.SetTolerance call
// has overridden it.
const fillTolerance = 0.25

// aaSupersample is the number of vertical subsamples accumulated per
// scanline when antialiasing is enabled.
const aaSupersample = 4

// PixmapRenderer is the trapezoid-pipeline Renderer: it tessellates
// fills and strokes through internal/filler, internal/stroker, and
// internal/trap and composites the resulting coverage onto a *Pixmap
// with internal/compositor, the same pipeline surface.ImageSurface
// uses for its own Fill/Stroke. It is the default Renderer a Context
// constructs; WithRenderer overrides it for custom backends.
//
// PixmapRenderer additionally implements ClipAwareRenderer: when a
// Context has an active clip region, it calls FillClipped/StrokeClipped
// instead of Fill/Stroke so that coverage is multiplied by the clip
// stack's combined mask before compositing.
type PixmapRenderer struct {
	Antialias bool
	Operator  Operator
}

// NewPixmapRenderer creates a PixmapRenderer with antialiasing enabled
// and the source-over compositing operator.
func NewPixmapRenderer() *PixmapRenderer {
	return &PixmapRenderer{Antialias: true, Operator: OperatorOver}
}

var (
	_ Renderer          = (*PixmapRenderer)(nil)
	_ ClipAwareRenderer = (*PixmapRenderer)(nil)
)

// ClipAwareRenderer is implemented by renderers that can multiply fill
// and stroke coverage by a clip stack's combined mask. Context type-
// asserts for this capability so custom DI'd renderers that don't
// support clipping still work for unclipped drawing.
type ClipAwareRenderer interface {
	FillClipped(pixmap *Pixmap, path *Path, paint *Paint, clipStack *clip.ClipStack) error
	StrokeClipped(pixmap *Pixmap, path *Path, paint *Paint, clipStack *clip.ClipStack) error
}

// SetOperator changes the compositing operator used by subsequent Fill/
// Stroke calls. Context calls this before drawing when the renderer
// implements it, so per-Context SetOperator calls reach the pipeline.
func (r *PixmapRenderer) SetOperator(op Operator) {
	r.Operator = op
}

// Fill implements Renderer.
func (r *PixmapRenderer) Fill(pixmap *Pixmap, path *Path, paint *Paint) error {
	return r.FillClipped(pixmap, path, paint, nil)
}

// Stroke implements Renderer.
func (r *PixmapRenderer) Stroke(pixmap *Pixmap, path *Path, paint *Paint) error {
	return r.StrokeClipped(pixmap, path, paint, nil)
}

// FillClipped fills path (already in device space) onto pixmap, clamped
// by clipStack's combined coverage when non-nil.
func (r *PixmapRenderer) FillClipped(pixmap *Pixmap, path *Path, paint *Paint, clipStack *clip.ClipStack) error {
	if path == nil || path.IsEmpty() {
		return nil
	}
	segs := path.ToSegments(Identity())
	if len(segs) == 0 {
		return nil
	}
	rule := toTrapFillRule(paint.FillRule)
	poly := filler.Fill(pathseg.NewSliceIterator(segs), fixed.FromFloat64(fillTolerance))
	r.rasterize(pixmap, poly, rule, paint, clipStack)
	return nil
}

// StrokeClipped strokes path (already in device space) onto pixmap,
// clamped by clipStack's combined coverage when non-nil.
func (r *PixmapRenderer) StrokeClipped(pixmap *Pixmap, path *Path, paint *Paint, clipStack *clip.ClipStack) error {
	if path == nil || path.IsEmpty() {
		return nil
	}
	segs := path.ToSegments(Identity())
	if len(segs) == 0 {
		return nil
	}
	poly := stroker.Stroke(pathseg.NewSliceIterator(segs), toStrokerPipelineStyle(paint))
	r.rasterize(pixmap, poly, trap.NonZero, paint, clipStack)
	return nil
}

// toStrokerPipelineStyle translates a Paint's stroke fields into the
// internal stroker's Style, scaling the line width by the average CTM
// scale so hairlines and dash lengths stay visually consistent under
// non-uniform transforms (TransformScale is recorded by Context.doStroke).
func toStrokerPipelineStyle(paint *Paint) stroker.Style {
	st := paint.GetStroke()
	scale := paint.TransformScale
	if scale <= 0 {
		scale = 1
	}
	style := stroker.Style{
		Width:      st.Width * scale,
		MiterLimit: st.MiterLimit,
		Tolerance:  fillTolerance,
	}
	if style.MiterLimit <= 0 {
		style.MiterLimit = 10.0
	}
	if st.Dash != nil {
		style.Dash = st.Dash.Array
		style.DashOffset = st.Dash.Offset
	}
	switch st.Cap {
	case LineCapRound:
		style.Cap = stroker.CapRound
	case LineCapSquare:
		style.Cap = stroker.CapSquare
	default:
		style.Cap = stroker.CapButt
	}
	switch st.Join {
	case LineJoinRound:
		style.Join = stroker.JoinRound
	case LineJoinBevel:
		style.Join = stroker.JoinBevel
	default:
		style.Join = stroker.JoinMiter
	}
	return style
}

// rasterize tessellates poly under rule and composites the resulting
// coverage onto pixmap using paint's brush and the renderer's current
// operator, multiplying by clipStack's combined coverage at each pixel
// when clipStack is non-nil.
func (r *PixmapRenderer) rasterize(pixmap *Pixmap, poly *polygon.Polygon, rule trap.FillRule, paint *Paint, clipStack *clip.ClipStack) {
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

	width, height := pixmap.Width(), pixmap.Height()
	y0, y1 := minY.Floor(), maxY.Ceil()
	x0, x1 := minX.Floor(), maxX.Ceil()
	if y0 < 0 {
		y0 = 0
	}
	if y1 > height {
		y1 = height
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 <= y0 || x1 <= x0 {
		return
	}

	samples := 1
	if r.Antialias {
		samples = aaSupersample
	}

	brush := paint.GetBrush()
	_, solid := brush.(SolidBrush)
	var solidPixel compositor.Pixel
	if solid {
		solidPixel = toPremulPixel(brush.ColorAt(0, 0))
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
				addPixmapSpan(cov, lx-float64(x0), rx-float64(x0), len(cov), samples)
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
			if clipStack != nil {
				clipCov := clipStack.Coverage(float64(x)+0.5, float64(y)+0.5)
				if clipCov == 0 {
					continue
				}
				alpha = uint16((uint32(alpha) * uint32(clipCov)) / 255)
				if alpha == 0 {
					continue
				}
			}
			var src compositor.Pixel
			if solid {
				src = solidPixel
			} else {
				src = toPremulPixel(brush.ColorAt(float64(x), float64(y)))
			}
			blendPixmap(pixmap, x, y, r.Operator, src, uint8(alpha))
		}
	}
}

// addPixmapSpan distributes one subsample's worth of coverage (scaled
// by 256/samples) across the pixels spanned by [lx, rx), splitting
// fractional coverage at the leading and trailing edge pixels. It is
// the Pixmap analogue of the clip mask's and ImageSurface's span
// accumulators.
func addPixmapSpan(acc []uint16, lx, rx float64, width int, samples int) {
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

// toPremulPixel converts a straight-alpha RGBA sample to the
// premultiplied Pixel the compositor expects.
func toPremulPixel(c RGBA) compositor.Pixel {
	a := clamp255(c.A * 255)
	return compositor.Pixel{
		R: uint8(clamp255(c.R * a)),
		G: uint8(clamp255(c.G * a)),
		B: uint8(clamp255(c.B * a)),
		A: uint8(clamp255(a)),
	}
}

// blendPixmap composites src (with coverage alpha) onto pixmap at
// (x, y) under op, converting pixmap's straight-alpha storage to and
// from the compositor's premultiplied representation.
func blendPixmap(pixmap *Pixmap, x, y int, op Operator, src compositor.Pixel, alpha uint8) {
	if alpha == 0 {
		return
	}
	i := (y*pixmap.Width() + x) * 4
	data := pixmap.Data()
	dst := straightToPremul(data[i+0], data[i+1], data[i+2], data[i+3])
	out := compositor.Composite(op, src, alpha, dst)
	r, g, b, a := premulToStraight(out)
	data[i+0] = r
	data[i+1] = g
	data[i+2] = b
	data[i+3] = a
}

func straightToPremul(r, g, b, a uint8) compositor.Pixel {
	return compositor.Pixel{
		R: uint8((uint32(r) * uint32(a)) / 255),
		G: uint8((uint32(g) * uint32(a)) / 255),
		B: uint8((uint32(b) * uint32(a)) / 255),
		A: a,
	}
}

func premulToStraight(p compositor.Pixel) (r, g, b, a uint8) {
	if p.A == 0 {
		return 0, 0, 0, 0
	}
	r = uint8((uint32(p.R) * 255) / uint32(p.A))
	g = uint8((uint32(p.G) * 255) / uint32(p.A))
	b = uint8((uint32(p.B) * 255) / uint32(p.A))
	a = p.A
	return
}
