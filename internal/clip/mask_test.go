package clip

import (
	"testing"

	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/pathseg"
	"github.com/rasterkit/gg2d/internal/trap"
)

func fpt(x, y float64) fixed.Point {
	return fixed.FromFloat64Point(x, y)
}

func rectSegs(x0, y0, x1, y1 float64) []pathseg.Segment {
	return []pathseg.Segment{
		{Verb: pathseg.MoveTo, Points: [3]fixed.Point{fpt(x0, y0)}},
		{Verb: pathseg.LineTo, Points: [3]fixed.Point{fpt(x1, y0)}},
		{Verb: pathseg.LineTo, Points: [3]fixed.Point{fpt(x1, y1)}},
		{Verb: pathseg.LineTo, Points: [3]fixed.Point{fpt(x0, y1)}},
		{Verb: pathseg.Close},
	}
}

func TestNewMaskClipper(t *testing.T) {
	tests := []struct {
		name    string
		segs    []pathseg.Segment
		bounds  Rect
		wantErr bool
	}{
		{
			name:   "simple rectangle",
			segs:   rectSegs(10, 10, 20, 20),
			bounds: NewRect(0, 0, 30, 30),
		},
		{
			name:    "empty bounds",
			segs:    nil,
			bounds:  NewRect(0, 0, 0, 0),
			wantErr: true,
		},
		{
			name:    "negative dimensions",
			segs:    nil,
			bounds:  NewRect(0, 0, -10, -10),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc, err := NewMaskClipper(tt.segs, tt.bounds, trap.NonZero, true)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewMaskClipper() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMaskClipper() error = %v", err)
			}
			if mc == nil {
				t.Fatal("NewMaskClipper() returned nil unexpectedly")
			}
		})
	}
}

func TestMaskClipperCoverageInsideOutside(t *testing.T) {
	bounds := NewRect(0, 0, 20, 20)
	mc, err := NewMaskClipper(rectSegs(5, 5, 15, 15), bounds, trap.NonZero, true)
	if err != nil {
		t.Fatalf("NewMaskClipper() error = %v", err)
	}

	if cov := mc.Coverage(10, 10); cov != 255 {
		t.Errorf("interior coverage = %d, want 255", cov)
	}
	if cov := mc.Coverage(1, 1); cov != 0 {
		t.Errorf("exterior coverage = %d, want 0", cov)
	}
	if cov := mc.Coverage(100, 100); cov != 0 {
		t.Errorf("out-of-bounds coverage = %d, want 0", cov)
	}
}

func TestMaskClipperEvenOddRule(t *testing.T) {
	// Outer 0..20 box, inner 5..15 box: EvenOdd makes the inner box a
	// hole, NonZero fills it (both contours wind the same direction).
	bounds := NewRect(0, 0, 20, 20)
	var segs []pathseg.Segment
	segs = append(segs, rectSegs(0, 0, 20, 20)...)
	segs = append(segs, rectSegs(5, 5, 15, 15)...)

	evenOdd, err := NewMaskClipper(segs, bounds, trap.EvenOdd, false)
	if err != nil {
		t.Fatalf("NewMaskClipper() error = %v", err)
	}
	if cov := evenOdd.Coverage(10, 10); cov != 0 {
		t.Errorf("EvenOdd hole coverage = %d, want 0", cov)
	}

	nonZero, err := NewMaskClipper(segs, bounds, trap.NonZero, false)
	if err != nil {
		t.Fatalf("NewMaskClipper() error = %v", err)
	}
	if cov := nonZero.Coverage(10, 10); cov != 255 {
		t.Errorf("NonZero filled coverage = %d, want 255", cov)
	}
}

func TestMaskClipperApplyCoverage(t *testing.T) {
	bounds := NewRect(0, 0, 20, 20)
	mc, err := NewMaskClipper(rectSegs(5, 5, 15, 15), bounds, trap.NonZero, true)
	if err != nil {
		t.Fatalf("NewMaskClipper() error = %v", err)
	}

	if a := mc.ApplyCoverage(10, 10, 200); a != 200 {
		t.Errorf("ApplyCoverage inside = %d, want 200", a)
	}
	if a := mc.ApplyCoverage(1, 1, 200); a != 0 {
		t.Errorf("ApplyCoverage outside = %d, want 0", a)
	}
}

func TestMaskClipperBounds(t *testing.T) {
	bounds := NewRect(3, 4, 20, 25)
	mc, err := NewMaskClipper(rectSegs(3, 4, 23, 29), bounds, trap.NonZero, true)
	if err != nil {
		t.Fatalf("NewMaskClipper() error = %v", err)
	}
	if got := mc.Bounds(); got != bounds {
		t.Errorf("Bounds() = %v, want %v", got, bounds)
	}
}

func TestMaskClipperEmptyPath(t *testing.T) {
	bounds := NewRect(0, 0, 10, 10)
	mc, err := NewMaskClipper(nil, bounds, trap.NonZero, true)
	if err != nil {
		t.Fatalf("NewMaskClipper() error = %v", err)
	}
	if cov := mc.Coverage(5, 5); cov != 0 {
		t.Errorf("empty path coverage = %d, want 0", cov)
	}
}

func TestMaskClipperCurvedPath(t *testing.T) {
	bounds := NewRect(0, 0, 20, 20)
	segs := []pathseg.Segment{
		{Verb: pathseg.MoveTo, Points: [3]fixed.Point{fpt(0, 10)}},
		{Verb: pathseg.CurveTo, Points: [3]fixed.Point{fpt(5, 0), fpt(15, 0), fpt(20, 10)}},
		{Verb: pathseg.LineTo, Points: [3]fixed.Point{fpt(20, 20)}},
		{Verb: pathseg.LineTo, Points: [3]fixed.Point{fpt(0, 20)}},
		{Verb: pathseg.Close},
	}

	mc, err := NewMaskClipper(segs, bounds, trap.NonZero, true)
	if err != nil {
		t.Fatalf("NewMaskClipper() error = %v", err)
	}
	if cov := mc.Coverage(10, 15); cov != 255 {
		t.Errorf("interior coverage = %d, want 255", cov)
	}
}
