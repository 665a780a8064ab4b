package paint

import "math"

// Composite blends src over dst using mode, per-channel, in straight alpha,
// returning the resulting premultiplied-then-unpremultiplied CGColor. This
// is the primitive the paint-stack compositing rule (§4.2) and the filter
// graph's Blend/Merge primitives (§4.4) both build on.
func Composite(src, dst CGColor, mode BlendMode) CGColor {
	sr, sg, sb, sa := src.RGBAF()
	dr, dg, db, da := dst.RGBAF()

	// Premultiply.
	sr, sg, sb = sr*sa, sg*sa, sb*sa
	dr, dg, db = dr*da, dg*da, db*da

	var or, og, ob, oa float64
	switch mode {
	case BlendModeClear:
		or, og, ob, oa = 0, 0, 0, 0
	case BlendModeSrc:
		or, og, ob, oa = sr, sg, sb, sa
	case BlendModeDst:
		or, og, ob, oa = dr, dg, db, da
	case BlendModeDstOver:
		or, og, ob, oa = porterDuff(dr, sr, da, sa), porterDuff(dg, sg, da, sa), porterDuff(db, sb, da, sa), da+sa*(1-da)
	case BlendModeSrcIn:
		or, og, ob, oa = sr*da, sg*da, sb*da, sa*da
	case BlendModeDstIn:
		or, og, ob, oa = dr*sa, dg*sa, db*sa, da*sa
	case BlendModeSrcOut:
		or, og, ob, oa = sr*(1-da), sg*(1-da), sb*(1-da), sa*(1-da)
	case BlendModeDstOut:
		or, og, ob, oa = dr*(1-sa), dg*(1-sa), db*(1-sa), da*(1-sa)
	case BlendModeSrcATop:
		or, og, ob, oa = sr*da+dr*(1-sa), sg*da+dg*(1-sa), sb*da+db*(1-sa), da
	case BlendModeDstATop:
		or, og, ob, oa = dr*sa+sr*(1-da), dg*sa+sg*(1-da), db*sa+sb*(1-da), sa
	case BlendModeXor:
		or, og, ob, oa = sr*(1-da)+dr*(1-sa), sg*(1-da)+dg*(1-sa), sb*(1-da)+db*(1-sa), sa*(1-da)+da*(1-sa)
	case BlendModePlus:
		or, og, ob, oa = clamp01(sr+dr), clamp01(sg+dg), clamp01(sb+db), clamp01(sa+da)
	case BlendModeModulate:
		or, og, ob, oa = sr*dr, sg*dg, sb*db, sa*da
	case BlendModeScreen, BlendModeOverlay, BlendModeDarken, BlendModeLighten,
		BlendModeColorDodge, BlendModeColorBurn, BlendModeHardLight, BlendModeSoftLight,
		BlendModeDifference, BlendModeExclusion, BlendModeMultiply:
		or = separableBlend(mode, sr, dr, sa, da)
		og = separableBlend(mode, sg, dg, sa, da)
		ob = separableBlend(mode, sb, db, sa, da)
		oa = sa + da*(1-sa)
	case BlendModeHue, BlendModeSaturation, BlendModeColor, BlendModeLuminosity:
		or, og, ob = nonSeparableBlend(mode, sr, sg, sb, sa, dr, dg, db, da)
		oa = sa + da*(1-sa)
	default: // BlendModeSrcOver
		or, og, ob, oa = porterDuff(sr, dr, sa, da), porterDuff(sg, dg, sa, da), porterDuff(sb, db, sa, da), sa+da*(1-sa)
	}

	if oa <= 0 {
		return ColorTransparent
	}
	return RGBA(
		toByte(or/oa),
		toByte(og/oa),
		toByte(ob/oa),
		uint8(math.Round(oa*255)),
	)
}

// porterDuff computes src-over for a single premultiplied channel.
func porterDuff(cSrc, cDst, aSrc, aDst float64) float64 {
	return cSrc + cDst*(1-aSrc)
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

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// separableBlend applies a standard-separable blend function per channel
// on unpremultiplied inputs, then composites with the SrcOver alpha rule
// (W3C compositing-and-blending formula: Cs = (1-αb)Cs + αb·B(Cb, Cs)).
func separableBlend(mode BlendMode, s, dPremult, sa, da float64) float64 {
	var sc, dc float64
	if sa > 0 {
		sc = s / sa
	}
	if da > 0 {
		dc = dPremult / da
	}
	var b float64
	switch mode {
	case BlendModeMultiply:
		b = sc * dc
	case BlendModeScreen:
		b = sc + dc - sc*dc
	case BlendModeDarken:
		b = math.Min(sc, dc)
	case BlendModeLighten:
		b = math.Max(sc, dc)
	case BlendModeOverlay:
		b = hardLight(dc, sc)
	case BlendModeHardLight:
		b = hardLight(sc, dc)
	case BlendModeColorDodge:
		b = colorDodge(sc, dc)
	case BlendModeColorBurn:
		b = colorBurn(sc, dc)
	case BlendModeSoftLight:
		b = softLight(sc, dc)
	case BlendModeDifference:
		b = math.Abs(sc - dc)
	case BlendModeExclusion:
		b = sc + dc - 2*sc*dc
	}
	// Standard compositing: Co = (1-alpha_s)*Cb + alpha_s*((1-alpha_b)*Cs + alpha_b*B(Cb,Cs))
	mix := (1-da)*sc + da*b
	return (1-sa)*dPremult + sa*mix
}

func hardLight(a, b float64) float64 {
	if a <= 0.5 {
		return 2 * a * b
	}
	return 1 - 2*(1-a)*(1-b)
}

func colorDodge(s, d float64) float64 {
	if d == 0 {
		return 0
	}
	if s == 1 {
		return 1
	}
	return math.Min(1, d/(1-s))
}

func colorBurn(s, d float64) float64 {
	if d == 1 {
		return 1
	}
	if s == 0 {
		return 0
	}
	return 1 - math.Min(1, (1-d)/s)
}

func softLight(s, d float64) float64 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var g float64
	if d <= 0.25 {
		g = ((16*d-12)*d + 4) * d
	} else {
		g = math.Sqrt(d)
	}
	return d + (2*s-1)*(g-d)
}

// nonSeparableBlend applies the W3C non-separable HSL blend modes.
func nonSeparableBlend(mode BlendMode, sr, sg, sb, sa, dr, dg, db, da float64) (r, g, b float64) {
	var ucr, ucg, ucb float64
	if sa > 0 {
		ucr, ucg, ucb = sr/sa, sg/sa, sb/sa
	}
	var ucdr, ucdg, ucdb float64
	if da > 0 {
		ucdr, ucdg, ucdb = dr/da, dg/da, db/da
	}

	var br, bg, bb float64
	switch mode {
	case BlendModeHue:
		br, bg, bb = setLum3(setSat3(ucr, ucg, ucb, sat(ucdr, ucdg, ucdb)), lum(ucdr, ucdg, ucdb))
	case BlendModeSaturation:
		br, bg, bb = setLum3(setSat3(ucdr, ucdg, ucdb, sat(ucr, ucg, ucb)), lum(ucdr, ucdg, ucdb))
	case BlendModeColor:
		br, bg, bb = setLum(ucr, ucg, ucb, lum(ucdr, ucdg, ucdb))
	case BlendModeLuminosity:
		br, bg, bb = setLum(ucdr, ucdg, ucdb, lum(ucr, ucg, ucb))
	}

	mixR := (1-da)*ucr + da*br
	mixG := (1-da)*ucg + da*bg
	mixB := (1-da)*ucb + da*bb
	r = (1-sa)*dr + sa*mixR
	g = (1-sa)*dg + sa*mixG
	b = (1-sa)*db + sa*mixB
	return
}

func lum(r, g, b float64) float64 { return 0.3*r + 0.59*g + 0.11*b }

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

func setSat3(r, g, b, s float64) [3]float64 {
	vals := [3]float64{r, g, b}
	minI, maxI := 0, 0
	for i := 1; i < 3; i++ {
		if vals[i] < vals[minI] {
			minI = i
		}
		if vals[i] > vals[maxI] {
			maxI = i
		}
	}
	midI := 3 - minI - maxI
	if minI == maxI {
		return [3]float64{0, 0, 0}
	}
	out := [3]float64{}
	out[maxI] = s
	out[minI] = 0
	if vals[maxI] != vals[minI] {
		out[midI] = (vals[midI] - vals[minI]) * s / (vals[maxI] - vals[minI])
	}
	return out
}
