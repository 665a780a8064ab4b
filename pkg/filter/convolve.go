package filter

import "image"

// convolveMatrix applies an orderX x orderY kernel as a true convolution
// (flipped relative to correlation), gain = 1/divisor, with the configured
// edge-sampling mode.
func convolveMatrix(src Image, p Primitive) Image {
	if src == nil || len(p.Kernel) == 0 || p.OrderX <= 0 || p.OrderY <= 0 {
		return src
	}
	divisor := p.Divisor
	if divisor == 0 {
		divisor = 1
		for _, k := range p.Kernel {
			divisor += k
		}
		if divisor == 0 {
			divisor = 1
		}
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	targetX, targetY := p.TargetX, p.TargetY

	sample := func(x, y int) (float64, float64, float64, float64) {
		switch p.EdgeMode {
		case EdgeDuplicate:
			x = clampInt(x, b.Min.X, b.Max.X-1)
			y = clampInt(y, b.Min.Y, b.Max.Y-1)
			return pixelAt(src, x, y)
		case EdgeWrap:
			w, h := b.Dx(), b.Dy()
			x = b.Min.X + ((x-b.Min.X)%w+w)%w
			y = b.Min.Y + ((y-b.Min.Y)%h+h)%h
			return pixelAt(src, x, y)
		default:
			return pixelAt(src, x, y)
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var sr, sg, sb, sa float64
			for j := 0; j < p.OrderY; j++ {
				for i := 0; i < p.OrderX; i++ {
					// Flipped kernel: convolution, not correlation.
					kx := x - (i - targetX)
					ky := y - (j - targetY)
					weight := p.Kernel[(p.OrderY-1-j)*p.OrderX+(p.OrderX-1-i)]
					r, g, bl, a := sample(kx, ky)
					if p.PreserveAlpha {
						sr += r * weight
						sg += g * weight
						sb += bl * weight
					} else {
						sr += r * weight
						sg += g * weight
						sb += bl * weight
						sa += a * weight
					}
				}
			}
			_, _, _, origA := pixelAt(src, x, y)
			outA := origA
			if !p.PreserveAlpha {
				outA = clamp01f((sa/divisor+p.Bias*255)/255) * 255
			}
			dst.SetNRGBA(x, y, rgbaOf(
				clampByte(sr/divisor+p.Bias*255),
				clampByte(sg/divisor+p.Bias*255),
				clampByte(sb/divisor+p.Bias*255),
				clampByte(outA),
			))
		}
	}
	return dst
}
