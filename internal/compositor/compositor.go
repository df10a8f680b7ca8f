// Package compositor implements the Porter-Duff and PDF 1.4 blend-mode
// pixel math used by the traps backend (spec §4.6), operating on
// premultiplied 8-bit RGBA. It is grounded on the teacher's
// internal/blend package (math.go's fast div255 approximations,
// porter_duff.go's operator table, advanced.go's separable blend
// formulas) generalized with the Saturate operator and real
// (non-placeholder) HSL blend modes that the teacher left as TODOs.
package compositor

// Operator selects the compositing function applied per pixel:
// dst' = Operator(src*mask, dst).
type Operator uint8

const (
	Clear Operator = iota
	Source
	Over
	In
	Out
	Atop
	DestOver
	DestIn
	DestOut
	DestAtop
	Dest
	Xor
	Add
	Saturate

	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion

	Hue
	Saturation
	Color
	Luminosity
)

// Bounded reports whether the operator's effect is zero outside the
// intersection of source and mask coverage. Unbounded operators (the
// Dest* family and plain Dest) require the compositor's unbounded
// fix-up pass over the rest of the clip extents.
func (op Operator) Bounded() bool {
	switch op {
	case DestOver, DestIn, DestOut, DestAtop, Dest:
		return false
	default:
		return true
	}
}

// Pixel is a premultiplied 8-bit RGBA sample.
type Pixel struct {
	R, G, B, A uint8
}

func div255(x uint32) uint8 {
	return uint8((x + 1 + (x >> 8)) >> 8) //nolint:gosec // x bounded to <=255*255
}

func mulDiv255(a, b uint8) uint8 {
	return div255(uint32(a) * uint32(b))
}

func clampAdd(a, b uint8) uint8 {
	s := uint32(a) + uint32(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// Composite blends src over dst under op, with mask scaling the
// effective source coverage (255 = fully present). Both src and dst are
// premultiplied; the result is premultiplied.
func Composite(op Operator, src Pixel, mask uint8, dst Pixel) Pixel {
	if mask != 255 {
		src = Pixel{
			R: mulDiv255(src.R, mask),
			G: mulDiv255(src.G, mask),
			B: mulDiv255(src.B, mask),
			A: mulDiv255(src.A, mask),
		}
	}

	if op >= Multiply && op <= Exclusion {
		return separableBlend(op, src, dst)
	}
	if op >= Hue && op <= Luminosity {
		return nonSeparableBlend(op, src, dst)
	}

	sa, da := src.A, dst.A
	invSa := 255 - sa
	invDa := 255 - da

	switch op {
	case Clear:
		return Pixel{}
	case Source:
		return src
	case Over:
		return Pixel{
			R: clampAdd(src.R, mulDiv255(dst.R, invSa)),
			G: clampAdd(src.G, mulDiv255(dst.G, invSa)),
			B: clampAdd(src.B, mulDiv255(dst.B, invSa)),
			A: clampAdd(sa, mulDiv255(da, invSa)),
		}
	case In:
		return Pixel{
			R: mulDiv255(src.R, da), G: mulDiv255(src.G, da),
			B: mulDiv255(src.B, da), A: mulDiv255(sa, da),
		}
	case Out:
		return Pixel{
			R: mulDiv255(src.R, invDa), G: mulDiv255(src.G, invDa),
			B: mulDiv255(src.B, invDa), A: mulDiv255(sa, invDa),
		}
	case Atop:
		return Pixel{
			R: clampAdd(mulDiv255(src.R, da), mulDiv255(dst.R, invSa)),
			G: clampAdd(mulDiv255(src.G, da), mulDiv255(dst.G, invSa)),
			B: clampAdd(mulDiv255(src.B, da), mulDiv255(dst.B, invSa)),
			A: clampAdd(mulDiv255(sa, da), mulDiv255(da, invSa)),
		}
	case DestOver:
		return Pixel{
			R: clampAdd(dst.R, mulDiv255(src.R, invDa)),
			G: clampAdd(dst.G, mulDiv255(src.G, invDa)),
			B: clampAdd(dst.B, mulDiv255(src.B, invDa)),
			A: clampAdd(da, mulDiv255(sa, invDa)),
		}
	case DestIn:
		return Pixel{
			R: mulDiv255(dst.R, sa), G: mulDiv255(dst.G, sa),
			B: mulDiv255(dst.B, sa), A: mulDiv255(da, sa),
		}
	case DestOut:
		return Pixel{
			R: mulDiv255(dst.R, invSa), G: mulDiv255(dst.G, invSa),
			B: mulDiv255(dst.B, invSa), A: mulDiv255(da, invSa),
		}
	case DestAtop:
		return Pixel{
			R: clampAdd(mulDiv255(dst.R, sa), mulDiv255(src.R, invDa)),
			G: clampAdd(mulDiv255(dst.G, sa), mulDiv255(src.G, invDa)),
			B: clampAdd(mulDiv255(dst.B, sa), mulDiv255(src.B, invDa)),
			A: clampAdd(mulDiv255(da, sa), mulDiv255(sa, invDa)),
		}
	case Dest:
		return dst
	case Xor:
		return Pixel{
			R: clampAdd(mulDiv255(src.R, invDa), mulDiv255(dst.R, invSa)),
			G: clampAdd(mulDiv255(src.G, invDa), mulDiv255(dst.G, invSa)),
			B: clampAdd(mulDiv255(src.B, invDa), mulDiv255(dst.B, invSa)),
			A: clampAdd(mulDiv255(sa, invDa), mulDiv255(da, invSa)),
		}
	case Add:
		return Pixel{
			R: clampAdd(src.R, dst.R), G: clampAdd(src.G, dst.G),
			B: clampAdd(src.B, dst.B), A: clampAdd(sa, da),
		}
	case Saturate:
		// min(Sa, 1-Da) scaling per the PDF/Porter-Duff "saturate"
		// operator, then plain-add composite — the unpremultiplied
		// channels never exceed full coverage even when Sa+Da > 1.
		scaledR, scaledG, scaledB, scaledA := src.R, src.G, src.B, sa
		if invDa < sa {
			scaledR = uint8(uint32(src.R) * uint32(invDa) / uint32(sa))
			scaledG = uint8(uint32(src.G) * uint32(invDa) / uint32(sa))
			scaledB = uint8(uint32(src.B) * uint32(invDa) / uint32(sa))
			scaledA = invDa
		}
		return Pixel{
			R: clampAdd(scaledR, dst.R), G: clampAdd(scaledG, dst.G),
			B: clampAdd(scaledB, dst.B), A: clampAdd(scaledA, da),
		}
	default:
		return dst
	}
}
