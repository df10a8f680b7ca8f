package compositor

import "math"

// separableBlend implements the standard PDF 1.4 separable blend modes.
// Each per-channel blend function Bl(Cb, Cs) operates on unpremultiplied
// colors; the result is then composited with the source-over formula
// using the blended color as the effective source, per the PDF
// compositing formula:
//
//	Cs' = (1 - ab) * Cs + ab * B(Cb, Cs)
//
// We work directly in premultiplied space by unpremultiplying each input
// channel, applying the blend function, and re-premultiplying, then
// running the Over formula on the blended source. This mirrors the
// teacher's advanced.go structure while replacing its channel math with
// the exact unpremultiplied formulas (the teacher's byte-approximated
// variants are close but not bit-exact; since this compositor is the
// reference implementation, exactness is worth the extra divide).
func separableBlend(op Operator, src, dst Pixel) Pixel {
	sa, da := src.A, dst.A
	if sa == 0 {
		return dst
	}

	sr, sg, sb := unpremul(src.R, sa), unpremul(src.G, sa), unpremul(src.B, sa)
	dr, dg, db := unpremul(dst.R, da), unpremul(dst.G, da), unpremul(dst.B, da)

	var fn func(cb, cs float64) float64
	switch op {
	case Multiply:
		fn = func(cb, cs float64) float64 { return cb * cs }
	case Screen:
		fn = func(cb, cs float64) float64 { return cb + cs - cb*cs }
	case Overlay:
		fn = func(cb, cs float64) float64 { return hardLight(cs, cb) }
	case Darken:
		fn = func(cb, cs float64) float64 { return min64(cb, cs) }
	case Lighten:
		fn = func(cb, cs float64) float64 { return max64(cb, cs) }
	case ColorDodge:
		fn = colorDodge
	case ColorBurn:
		fn = colorBurn
	case HardLight:
		fn = func(cb, cs float64) float64 { return hardLight(cb, cs) }
	case SoftLight:
		fn = softLight
	case Difference:
		fn = func(cb, cs float64) float64 { return abs64(cb - cs) }
	case Exclusion:
		fn = func(cb, cs float64) float64 { return cb + cs - 2*cb*cs }
	default:
		fn = func(_, cs float64) float64 { return cs }
	}

	abF := float64(da) / 255
	br := (1-abF)*sr + abF*blendChannel(fn, dr, sr)
	bg := (1-abF)*sg + abF*blendChannel(fn, dg, sg)
	bb := (1-abF)*sb + abF*blendChannel(fn, db, sb)

	// Effective premultiplied blended source, then composite Over.
	effA := sa
	effR := premul(br, effA)
	effG := premul(bg, effA)
	effB := premul(bb, effA)

	invSa := 255 - sa
	return Pixel{
		R: clampAdd(effR, mulDiv255(dst.R, invSa)),
		G: clampAdd(effG, mulDiv255(dst.G, invSa)),
		B: clampAdd(effB, mulDiv255(dst.B, invSa)),
		A: clampAdd(sa, mulDiv255(da, invSa)),
	}
}

func blendChannel(fn func(cb, cs float64) float64, cb, cs float64) float64 {
	v := fn(cb, cs)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

func unpremul(c, a uint8) float64 {
	if a == 0 {
		return 0
	}
	return float64(c) / float64(a)
}

func premul(c float64, a uint8) uint8 {
	v := c * float64(a)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return 2 * cb * cs
	}
	return 1 - 2*(1-cb)*(1-cs)
}

func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func colorDodge(cb, cs float64) float64 {
	if cb == 0 {
		return 0
	}
	if cs >= 1 {
		return 1
	}
	v := cb / (1 - cs)
	if v > 1 {
		return 1
	}
	return v
}

func colorBurn(cb, cs float64) float64 {
	if cb >= 1 {
		return 1
	}
	if cs <= 0 {
		return 0
	}
	v := 1 - (1-cb)/cs
	if v < 0 {
		return 0
	}
	return v
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func abs64(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}

