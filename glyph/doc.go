// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glyph bridges scaled fonts into the trapezoid fill pipeline.
//
// A ScaledFont supplies glyph outlines already in device space (a font
// face combined with a concrete size/transform, matching cairo's
// cairo_scaled_font_t). Path assembles a positioned run of glyphs into
// one combined outline, translating each glyph's cached (or freshly
// extracted) contour to its device-space origin, ready to hand to
// internal/filler the same way any other fill path is.
//
// Outlines are expressed in the pathseg vocabulary rather than the root
// package's Path type to avoid an import cycle: glyph sits below gg and
// above the internal geometry packages, exactly where internal/pathseg
// itself sits.
package glyph
