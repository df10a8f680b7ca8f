// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import (
	"math"

	"github.com/rasterkit/gg2d/internal/cache"
	"github.com/rasterkit/gg2d/internal/pathseg"
)

// subpixelBuckets is the number of fractional-position buckets a glyph
// origin is quantized into along each axis before it is used as a cache
// key; a cached outline is reused for any origin that rounds to the
// same bucket, trading a small amount of positional accuracy for a much
// higher hit rate on runs of repeated characters.
const subpixelBuckets = 4

// cacheKey identifies one cached outline: a font, a glyph index within
// it, and the quantized subpixel phase of the glyph's device-space
// origin.
type cacheKey struct {
	font   uint64
	scale  int32
	gid    uint32
	phaseX uint8
	phaseY uint8
}

// Cache memoizes glyph outlines keyed by (ScaledFont, glyph index,
// subpixel phase), grounded on internal/cache's generic LRU. A Context
// keeps one Cache per lifetime; repeated glyphs (spaces, common
// letters) are extracted once per distinct phase bucket rather than on
// every Glyphs call.
type Cache struct {
	entries *cache.Cache[cacheKey, []pathseg.Segment]
}

// NewCache creates a glyph outline cache holding up to capacity entries.
func NewCache(capacity int) *Cache {
	return &Cache{entries: cache.New[cacheKey, []pathseg.Segment](capacity)}
}

func quantizePhase(v float64) uint8 {
	frac := v - math.Floor(v)
	b := int(frac * subpixelBuckets)
	if b >= subpixelBuckets {
		b = subpixelBuckets - 1
	}
	if b < 0 {
		b = 0
	}
	return uint8(b)
}

// Outline returns the outline of glyph gid under font, reusing a cached
// copy when the font, glyph index, and subpixel phase of (x, y) match a
// previous call.
func (c *Cache) Outline(font ScaledFont, gid uint32, x, y float64) ([]pathseg.Segment, bool) {
	key := cacheKey{
		font:   font.FontID(),
		scale:  int32(font.Scale() * 256),
		gid:    gid,
		phaseX: quantizePhase(x),
		phaseY: quantizePhase(y),
	}
	if segs, ok := c.entries.Get(key); ok {
		return segs, true
	}
	segs, ok := font.Outline(gid)
	if !ok {
		return nil, false
	}
	c.entries.Set(key, segs)
	return segs, true
}

// Len returns the number of cached outlines.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Clear empties the cache, e.g. after a font is discarded.
func (c *Cache) Clear() {
	c.entries.Clear()
}
