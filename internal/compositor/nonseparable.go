package compositor

import "math"

// nonSeparableBlend implements the PDF 1.4 HSL blend modes (Hue,
// Saturation, Color, Luminosity), which unlike the separable modes mix
// all three channels together via the Lum/Clip/SetLum/SetSat helpers
// from the PDF spec. The teacher's internal/blend/advanced.go carries
// these as explicit TODO stubs that fall back to source-over; this is
// the real implementation that was never written there.
func nonSeparableBlend(op Operator, src, dst Pixel) Pixel {
	sa, da := src.A, dst.A
	if sa == 0 {
		return dst
	}

	sr, sg, sb := unpremul(src.R, sa), unpremul(src.G, sa), unpremul(src.B, sa)
	dr, dg, db := unpremul(dst.R, da), unpremul(dst.G, da), unpremul(dst.B, da)

	var br, bg, bb float64
	switch op {
	case Hue:
		br, bg, bb = setLum3(setSat3(sr, sg, sb, sat(dr, dg, db)), lum(dr, dg, db))
	case Saturation:
		br, bg, bb = setLum3(setSat3(dr, dg, db, sat(sr, sg, sb)), lum(dr, dg, db))
	case Color:
		br, bg, bb = setLum(sr, sg, sb, lum(dr, dg, db))
	case Luminosity:
		br, bg, bb = setLum(dr, dg, db, lum(sr, sg, sb))
	default:
		br, bg, bb = sr, sg, sb
	}

	effA := sa
	effR := premul(clamp01(br), effA)
	effG := premul(clamp01(bg), effA)
	effB := premul(clamp01(bb), effA)

	invSa := 255 - sa
	return Pixel{
		R: clampAdd(effR, mulDiv255(dst.R, invSa)),
		G: clampAdd(effG, mulDiv255(dst.G, invSa)),
		B: clampAdd(effB, mulDiv255(dst.B, invSa)),
		A: clampAdd(sa, mulDiv255(da, invSa)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lum(r, g, b float64) float64 {
	return 0.3*r + 0.59*g + 0.11*b
}

func setLum(r, g, b, l float64) (float64, float64, float64) {
	d := l - lum(r, g, b)
	r, g, b = r+d, g+d, b+d
	return clipColor(r, g, b)
}

func setLum3(rgb [3]float64, l float64) (float64, float64, float64) {
	return setLum(rgb[0], rgb[1], rgb[2], l)
}

func clipColor(r, g, b float64) (float64, float64, float64) {
	l := lum(r, g, b)
	n := math.Min(r, math.Min(g, b))
	x := math.Max(r, math.Max(g, b))
	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

func sat(r, g, b float64) float64 {
	return math.Max(r, math.Max(g, b)) - math.Min(r, math.Min(g, b))
}

// setSat3 sets the saturation of (r,g,b) to s while preserving hue and
// the relative ordering of channels, per the PDF SetSat algorithm:
// the max channel becomes s, the min becomes 0, the mid is scaled
// proportionally between them.
func setSat3(r, g, b, s float64) [3]float64 {
	c := [3]float64{r, g, b}
	lo, mid, hi := 0, 1, 2
	// Sort indices by value.
	idx := [3]int{0, 1, 2}
	if c[idx[lo]] > c[idx[mid]] {
		idx[lo], idx[mid] = idx[mid], idx[lo]
	}
	if c[idx[mid]] > c[idx[hi]] {
		idx[mid], idx[hi] = idx[hi], idx[mid]
	}
	if c[idx[lo]] > c[idx[mid]] {
		idx[lo], idx[mid] = idx[mid], idx[lo]
	}

	out := [3]float64{}
	if c[idx[hi]] > c[idx[lo]] {
		out[idx[mid]] = (c[idx[mid]] - c[idx[lo]]) * s / (c[idx[hi]] - c[idx[lo]])
		out[idx[hi]] = s
	}
	out[idx[lo]] = 0
	return out
}
