package gg

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Paint represents the styling information for drawing.
type Paint struct {
	// Pattern is the fill or stroke pattern. Kept alongside Brush for
	// callers that still source colors through the Pattern interface;
	// SetBrush keeps the two in sync.
	Pattern Pattern

	// Brush is the preferred color source (solid, gradient, custom).
	Brush Brush

	// Stroke collects the stroke-specific style (cap, join, dash, ...).
	// Nil means the legacy LineWidth/LineCap/LineJoin/MiterLimit fields
	// below are authoritative; GetStroke lazily builds one from them.
	Stroke *Stroke

	// LineWidth is the width of strokes
	LineWidth float64

	// LineCap is the shape of line endpoints
	LineCap LineCap

	// LineJoin is the shape of line joins
	LineJoin LineJoin

	// MiterLimit is the miter limit for sharp joins
	MiterLimit float64

	// FillRule is the fill rule for paths
	FillRule FillRule

	// Antialias enables anti-aliasing
	Antialias bool

	// TransformScale is the average scale factor of the CTM in effect
	// when a stroke is issued, used to keep hairline widths and dash
	// lengths visually consistent under non-uniform transforms.
	TransformScale float64
}

// NewPaint creates a new Paint with default values.
func NewPaint() *Paint {
	return &Paint{
		Pattern:        NewSolidPattern(Black),
		Brush:          Solid(Black),
		LineWidth:      1.0,
		LineCap:        LineCapButt,
		LineJoin:       LineJoinMiter,
		MiterLimit:     10.0,
		FillRule:       FillRuleNonZero,
		Antialias:      true,
		TransformScale: 1.0,
	}
}

// Clone creates a copy of the Paint.
func (p *Paint) Clone() *Paint {
	clone := &Paint{
		Pattern:        p.Pattern,
		Brush:          p.Brush,
		LineWidth:      p.LineWidth,
		LineCap:        p.LineCap,
		LineJoin:       p.LineJoin,
		MiterLimit:     p.MiterLimit,
		FillRule:       p.FillRule,
		Antialias:      p.Antialias,
		TransformScale: p.TransformScale,
	}
	if p.Stroke != nil {
		s := *p.Stroke
		clone.Stroke = &s
	}
	return clone
}

// SetBrush sets the brush used for drawing and updates Pattern for
// callers that still read color through the Pattern interface.
func (p *Paint) SetBrush(b Brush) {
	p.Brush = b
	if sb, ok := b.(SolidBrush); ok {
		p.Pattern = NewSolidPattern(sb.Color)
	} else if pat, ok := b.(Pattern); ok {
		p.Pattern = pat
	}
}

// GetBrush returns the current brush, falling back to Pattern, then to
// solid black when neither is set.
func (p *Paint) GetBrush() Brush {
	if p.Brush != nil {
		return p.Brush
	}
	if p.Pattern != nil {
		return patternBrush{p.Pattern}
	}
	return Solid(Black)
}

// ColorAt samples the current brush (or pattern) at the given point.
func (p *Paint) ColorAt(x, y float64) RGBA {
	if p.Brush != nil {
		return p.Brush.ColorAt(x, y)
	}
	if p.Pattern != nil {
		return p.Pattern.ColorAt(x, y)
	}
	return Black
}

// GetStroke returns the current stroke style, synthesizing one from the
// legacy LineWidth/LineCap/LineJoin/MiterLimit fields if Stroke is nil.
func (p *Paint) GetStroke() Stroke {
	if p.Stroke != nil {
		return *p.Stroke
	}
	return Stroke{
		Width:      p.LineWidth,
		Cap:        p.LineCap,
		Join:       p.LineJoin,
		MiterLimit: p.MiterLimit,
	}
}

// SetStroke replaces the stroke style wholesale.
func (p *Paint) SetStroke(s Stroke) {
	p.Stroke = &s
	p.LineWidth = s.Width
	p.LineCap = s.Cap
	p.LineJoin = s.Join
	p.MiterLimit = s.MiterLimit
}

// IsDashed reports whether the current stroke uses a dash pattern.
func (p *Paint) IsDashed() bool {
	return p.Stroke != nil && p.Stroke.Dash != nil
}

// patternBrush adapts a Pattern (image/color.Color based) to the Brush
// interface (RGBA based) so GetBrush always returns a usable Brush.
type patternBrush struct{ pattern Pattern }

func (patternBrush) brushMarker() {}

func (b patternBrush) ColorAt(x, y float64) RGBA {
	return b.pattern.ColorAt(x, y)
}
