// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import (
	"github.com/rasterkit/gg2d/internal/fixed"
	"github.com/rasterkit/gg2d/internal/pathseg"
)

// Path assembles a positioned glyph run into one combined outline,
// translating each glyph's outline (cached when c is non-nil, extracted
// directly from font otherwise) from its own origin to its device-space
// position in the run. The result is ready to hand to internal/filler,
// exactly as any other fill path would be. Glyphs with an undefined
// index are silently skipped, matching cairo_show_glyphs' treatment of
// .notdef gaps in a shaped run.
func Path(font ScaledFont, glyphs []Glyph, c *Cache) []pathseg.Segment {
	var out []pathseg.Segment
	for _, g := range glyphs {
		var segs []pathseg.Segment
		var ok bool
		if c != nil {
			segs, ok = c.Outline(font, g.Index, g.X, g.Y)
		} else {
			segs, ok = font.Outline(g.Index)
		}
		if !ok {
			continue
		}
		offset := fixed.FromFloat64Point(g.X, g.Y)
		for _, s := range segs {
			translated := s
			for i := 0; i < s.Verb.Arity(); i++ {
				translated.Points[i] = s.Points[i].Add(offset)
			}
			out = append(out, translated)
		}
	}
	return out
}

// Advance returns the total horizontal advance of a glyph run, the sum
// of each glyph's own advance width.
func Advance(font ScaledFont, glyphs []Glyph) float64 {
	var total float64
	for _, g := range glyphs {
		total += font.Advance(g.Index)
	}
	return total
}
