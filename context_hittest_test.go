package gg

import "testing"

func TestInFillRectangle(t *testing.T) {
	dc := NewContext(100, 100)
	dc.DrawRectangle(10, 10, 40, 40)

	if !dc.InFill(30, 30) {
		t.Error("expected point inside rectangle to be in fill")
	}
	if dc.InFill(5, 5) {
		t.Error("expected point outside rectangle to not be in fill")
	}
	if !dc.InFill(10.5, 10.5) {
		t.Error("expected a point just inside the rectangle's corner to be in fill")
	}
}

func TestInFillEmptyPath(t *testing.T) {
	dc := NewContext(100, 100)

	if dc.InFill(50, 50) {
		t.Error("expected InFill to be false with no path")
	}
}

func TestInFillEvenOddVsWinding(t *testing.T) {
	dc := NewContext(100, 100)

	// Two nested rectangles wound the same direction: the inner region is
	// covered twice under nonzero but is a hole under even-odd.
	dc.DrawRectangle(10, 10, 80, 80)
	dc.NewSubPath()
	dc.DrawRectangle(30, 30, 40, 40)

	dc.SetFillRule(FillRuleNonZero)
	if !dc.InFill(50, 50) {
		t.Error("expected nonzero winding to cover the inner rectangle")
	}

	dc.SetFillRule(FillRuleEvenOdd)
	if dc.InFill(50, 50) {
		t.Error("expected even-odd rule to treat the inner rectangle as a hole")
	}
}

func TestInStrokeLine(t *testing.T) {
	dc := NewContext(100, 100)
	dc.SetLineWidth(4)
	dc.MoveTo(10, 50)
	dc.LineTo(90, 50)

	if !dc.InStroke(50, 50) {
		t.Error("expected point on the line to be in stroke")
	}
	if !dc.InStroke(50, 51.5) {
		t.Error("expected point within half the line width to be in stroke")
	}
	if dc.InStroke(50, 60) {
		t.Error("expected point far from the line to not be in stroke")
	}
}

func TestInStrokeDoesNotBridgeSubpaths(t *testing.T) {
	dc := NewContext(100, 100)
	dc.SetLineWidth(2)
	dc.MoveTo(10, 10)
	dc.LineTo(20, 10)
	dc.NewSubPath()
	dc.MoveTo(80, 80)
	dc.LineTo(90, 80)

	// The midpoint between the two disjoint subpaths must not register as
	// "in stroke" even though it would sit on a naive line joining their
	// endpoints.
	if dc.InStroke(50, 45) {
		t.Error("expected no phantom segment bridging separate subpaths")
	}
}

func TestInStrokeEmptyPath(t *testing.T) {
	dc := NewContext(100, 100)

	if dc.InStroke(50, 50) {
		t.Error("expected InStroke to be false with no path")
	}
}

func TestPathExtents(t *testing.T) {
	dc := NewContext(100, 100)
	dc.DrawRectangle(10, 20, 30, 40)

	x0, y0, x1, y1 := dc.PathExtents()
	if x0 != 10 || y0 != 20 || x1 != 40 || y1 != 60 {
		t.Errorf("PathExtents() = (%v, %v, %v, %v), want (10, 20, 40, 60)", x0, y0, x1, y1)
	}
}

func TestPathExtentsEmptyPath(t *testing.T) {
	dc := NewContext(100, 100)

	x0, y0, x1, y1 := dc.PathExtents()
	if x0 != 0 || y0 != 0 || x1 != 0 || y1 != 0 {
		t.Errorf("PathExtents() on empty path = (%v, %v, %v, %v), want all zero", x0, y0, x1, y1)
	}
}

func TestPathExtentsUnderTransform(t *testing.T) {
	dc := NewContext(100, 100)
	dc.Translate(5, 5)
	dc.DrawRectangle(10, 10, 20, 20)

	x0, y0, x1, y1 := dc.PathExtents()
	if x0 != 10 || y0 != 10 || x1 != 30 || y1 != 30 {
		t.Errorf("PathExtents() under translation = (%v, %v, %v, %v), want (10, 10, 30, 30)", x0, y0, x1, y1)
	}
}

func TestStrokeExtentsExpandsByHalfLineWidth(t *testing.T) {
	dc := NewContext(100, 100)
	dc.SetLineWidth(10)
	// A round join adds nothing beyond half the width; the default miter
	// join would also multiply by the miter limit.
	dc.SetLineJoin(LineJoinRound)
	dc.DrawRectangle(20, 20, 40, 40)

	x0, y0, x1, y1 := dc.StrokeExtents()
	if x0 != 15 || y0 != 15 || x1 != 65 || y1 != 65 {
		t.Errorf("StrokeExtents() = (%v, %v, %v, %v), want (15, 15, 65, 65)", x0, y0, x1, y1)
	}
}

func TestFillExtentsMatchesPathExtents(t *testing.T) {
	dc := NewContext(100, 100)
	dc.DrawCircle(50, 50, 20)

	px0, py0, px1, py1 := dc.PathExtents()
	fx0, fy0, fx1, fy1 := dc.FillExtents()
	if px0 != fx0 || py0 != fy0 || px1 != fx1 || py1 != fy1 {
		t.Error("expected FillExtents to match PathExtents")
	}
}
