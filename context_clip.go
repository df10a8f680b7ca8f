package gg

import (
	"math"

	"github.com/rasterkit/gg2d/internal/clip"
	"github.com/rasterkit/gg2d/internal/trap"
)

// Clip sets the current path as the clipping region and clears the path.
// Subsequent drawing operations will be clipped to this region.
// The clip region is intersected with any existing clip regions.
func (c *Context) Clip() {
	if c.clipStack == nil {
		c.initClipStack()
	}

	// c.path is already in device space: MoveTo/LineTo/CurveTo pre-
	// transform every point through c.matrix as it's appended.
	segs := c.path.ToSegments(Identity())
	_ = c.clipStack.PushPath(segs, toTrapFillRule(c.paint.FillRule), true)

	// Clear the path
	c.path.Clear()
}

// ClipPreserve sets the current path as the clipping region but keeps the path.
// This is like Clip() but doesn't clear the path, allowing you to both clip
// and then fill/stroke the same path.
func (c *Context) ClipPreserve() {
	if c.clipStack == nil {
		c.initClipStack()
	}

	segs := c.path.ToSegments(Identity())
	_ = c.clipStack.PushPath(segs, toTrapFillRule(c.paint.FillRule), true)
	// Path is preserved
}

// ClipRect sets a rectangular clipping region.
// This is a faster alternative to creating a rectangular path and calling Clip().
// The clip region is intersected with any existing clip regions.
func (c *Context) ClipRect(x, y, w, h float64) {
	if c.clipStack == nil {
		c.initClipStack()
	}

	// Transform the rectangle corners
	p1 := c.matrix.TransformPoint(Pt(x, y))
	p2 := c.matrix.TransformPoint(Pt(x+w, y+h))

	// Create clip rectangle in device coordinates
	rect := clip.NewRect(
		math.Min(p1.X, p2.X),
		math.Min(p1.Y, p2.Y),
		math.Abs(p2.X-p1.X),
		math.Abs(p2.Y-p1.Y),
	)

	c.clipStack.PushRect(rect)
}

// ResetClip removes all clipping regions, restoring the full canvas as drawable.
func (c *Context) ResetClip() {
	if c.clipStack == nil {
		return
	}

	// Reset to canvas bounds
	bounds := clip.NewRect(0, 0, float64(c.width), float64(c.height))
	c.clipStack.Reset(bounds)
}

// initClipStack initializes the clip stack with canvas bounds.
func (c *Context) initClipStack() {
	bounds := clip.NewRect(0, 0, float64(c.width), float64(c.height))
	c.clipStack = clip.NewClipStack(bounds)
}

// toTrapFillRule translates the public FillRule into the internal
// trapezoid tessellator's rule.
func toTrapFillRule(rule FillRule) trap.FillRule {
	if rule == FillRuleEvenOdd {
		return trap.EvenOdd
	}
	return trap.NonZero
}

// ClipExtents returns the bounding box of the current clip region in
// device space, matching cairo_clip_extents. Returns a zero Rect and
// false if there is no active clip.
func (c *Context) ClipExtents() (Rect, bool) {
	if c.clipStack == nil {
		return Rect{}, false
	}
	b := c.clipStack.Bounds()
	if b.IsEmpty() {
		return Rect{}, false
	}
	return Rect{Min: Pt(b.X, b.Y), Max: Pt(b.Right(), b.Bottom())}, true
}

// CopyClipRectangleList returns the current clip region as a list of
// non-overlapping device-space rectangles, matching
// cairo_copy_clip_rectangle_list. ok is false if the clip is not
// rectilinear (a path-based clip has been pushed) or there is no clip.
func (c *Context) CopyClipRectangleList() (rects []Rect, ok bool) {
	if c.clipStack == nil {
		return nil, false
	}
	reg, ok := c.clipStack.Region()
	if !ok || reg.IsEmpty() {
		return nil, false
	}
	for _, r := range reg.Rects() {
		rects = append(rects, Rect{
			Min: Pt(float64(r.X), float64(r.Y)),
			Max: Pt(float64(r.Right()), float64(r.Bottom())),
		})
	}
	return rects, true
}
