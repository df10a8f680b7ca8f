package gg

import (
	"github.com/rasterkit/gg2d/glyph"
	"github.com/rasterkit/gg2d/internal/compositor"
)

// Operator selects the Porter-Duff/blend function used to composite
// fills, strokes, and image paints onto the destination.
type Operator = compositor.Operator

// Compositing operators re-exported from internal/compositor so callers
// never need to import it directly.
const (
	OperatorClear    = compositor.Clear
	OperatorSource   = compositor.Source
	OperatorOver     = compositor.Over
	OperatorIn       = compositor.In
	OperatorOut      = compositor.Out
	OperatorAtop     = compositor.Atop
	OperatorDestOver = compositor.DestOver
	OperatorDestIn   = compositor.DestIn
	OperatorDestOut  = compositor.DestOut
	OperatorDestAtop = compositor.DestAtop
	OperatorDest     = compositor.Dest
	OperatorXor      = compositor.Xor
	OperatorAdd      = compositor.Add
	OperatorSaturate = compositor.Saturate
)

// defaultTolerance is the flattening tolerance (device pixels) new
// graphics states start with; it matches cairo's default.
const defaultTolerance = 0.1

// GState is one frame of the graphics-state stack: every piece of
// drawing state a Save/Restore pair must snapshot and restore (operator,
// tolerance, source paint, clip depth, mask, font, CTM+inverse) besides
// the path itself, which is never part of the saved state. Context.Push
// takes a clone of the live state (deep-copying paint and mask, the two
// fields a nested scope might mutate through a pointer) so nothing the
// nested scope does can leak back out on Pop — Restore is the exact
// inverse of Save.
type GState struct {
	matrix    Matrix
	invMatrix Matrix
	invOK     bool
	operator  Operator
	tolerance float64
	paint     *Paint
	clipDepth int
	mask      *Mask
	font      glyph.ScaledFont
}

// clone deep-copies the fields a nested Save scope might mutate in place
// (paint, mask), so restoring the parent frame can never observe the
// child's edits to them.
func (gs *GState) clone() *GState {
	cp := *gs
	cp.paint = gs.paint.Clone()
	if gs.mask != nil {
		cp.mask = gs.mask.Clone()
	}
	return &cp
}

// Operator returns the current compositing operator.
func (c *Context) Operator() Operator {
	return c.operator
}

// SetOperator sets the compositing operator used by subsequent fills,
// strokes, and image paints.
func (c *Context) SetOperator(op Operator) {
	c.operator = op
}

// Tolerance returns the curve-flattening tolerance, in device pixels.
func (c *Context) Tolerance() float64 {
	return c.tolerance
}

// SetTolerance sets the curve-flattening tolerance used when converting
// curves to line segments. Smaller values produce smoother curves at
// higher cost; cairo's default of 0.1 device pixels is used if v <= 0.
func (c *Context) SetTolerance(v float64) {
	if v <= 0 {
		v = defaultTolerance
	}
	c.tolerance = v
}

// UserToDevice transforms a point from user space to device space using
// the current CTM.
func (c *Context) UserToDevice(x, y float64) (float64, float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// DeviceToUser transforms a point from device space to user space using
// the inverse of the current CTM. Returns the input unchanged if the
// CTM is singular.
func (c *Context) DeviceToUser(x, y float64) (float64, float64) {
	if !c.invOK {
		return x, y
	}
	p := c.invMatrix.TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// IdentityMatrix resets the CTM to identity, matching cairo's
// cairo_identity_matrix.
func (c *Context) IdentityMatrix() {
	c.setCTM(Identity())
}

// setCTM updates the CTM and its cached inverse together, so
// UserToDevice/DeviceToUser never observe a stale inverse.
func (c *Context) setCTM(m Matrix) {
	c.matrix = m
	c.invMatrix, c.invOK = m.TryInvert()
}

// Font returns the scaled font currently selected for glyph operations,
// or nil if none has been set.
func (c *Context) Font() glyph.ScaledFont {
	return c.font
}

// SetFont selects the scaled font used by glyph-drawing operations.
func (c *Context) SetFont(f glyph.ScaledFont) {
	c.font = f
}
