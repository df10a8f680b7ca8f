// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import "github.com/rasterkit/gg2d/internal/pathseg"

// ScaledFont is the contract a font backend must satisfy to supply
// glyph outlines for text rendering: a font face combined with a
// concrete device-space scale/transform, analogous to cairo's
// cairo_scaled_font_t. Implementations live outside this package (a
// glyf/CFF parser, a system font-shaping library, a test stub); glyph
// only consumes the interface.
type ScaledFont interface {
	// Outline returns the outline of glyph index gid, centered on its
	// own origin in device-space units, as pathseg segments ready for
	// the fill pipeline. ok is false for an undefined glyph index.
	Outline(gid uint32) (segs []pathseg.Segment, ok bool)

	// Advance returns the horizontal advance of glyph index gid, in
	// device-space units.
	Advance(gid uint32) float64

	// FontID identifies the underlying font resource. Together with
	// Scale it forms the cache key, so two ScaledFonts backed by the
	// same face at different sizes never collide.
	FontID() uint64

	// Scale returns the font matrix's scale factor, used as part of
	// the cache key.
	Scale() float64
}

// Glyph is one positioned glyph in a run, analogous to cairo_glyph_t:
// a glyph index plus the device-space point its origin sits at.
type Glyph struct {
	Index uint32
	X, Y  float64
}
