package filter

import (
	"image"
	"math"
)

// buildLUT builds a 256-entry lookup table for a single channel's transfer
// function, with an identity shortcut when the function is a no-op.
func buildLUT(f TransferFunction) [256]uint8 {
	var lut [256]uint8
	switch f.Kind {
	case TransferTable:
		n := len(f.TableVals)
		for i := 0; i < 256; i++ {
			if n == 0 {
				lut[i] = uint8(i)
				continue
			}
			if n == 1 {
				lut[i] = clampByte(f.TableVals[0] * 255)
				continue
			}
			c := float64(i) / 255
			k := int(c * float64(n-1))
			if k >= n-1 {
				lut[i] = clampByte(f.TableVals[n-1] * 255)
				continue
			}
			frac := c*float64(n-1) - float64(k)
			v := f.TableVals[k] + frac*(f.TableVals[k+1]-f.TableVals[k])
			lut[i] = clampByte(v * 255)
		}
	case TransferDiscrete:
		n := len(f.TableVals)
		for i := 0; i < 256; i++ {
			if n == 0 {
				lut[i] = uint8(i)
				continue
			}
			c := float64(i) / 255
			k := int(c * float64(n))
			if k >= n {
				k = n - 1
			}
			lut[i] = clampByte(f.TableVals[k] * 255)
		}
	case TransferLinear:
		for i := 0; i < 256; i++ {
			c := float64(i) / 255
			lut[i] = clampByte((f.Slope*c + f.Intercept) * 255)
		}
	case TransferGamma:
		for i := 0; i < 256; i++ {
			c := float64(i) / 255
			v := f.Amplitude*math.Pow(c, f.Exponent) + f.Offset
			lut[i] = clampByte(v * 255)
		}
	default: // Identity
		for i := 0; i < 256; i++ {
			lut[i] = uint8(i)
		}
	}
	return lut
}

// componentTransfer applies a per-channel LUT built from each of
// FuncR/FuncG/FuncB/FuncA.
func componentTransfer(src Image, p Primitive) Image {
	if src == nil {
		return nil
	}
	rLUT := buildLUT(p.FuncR)
	gLUT := buildLUT(p.FuncG)
	bLUT := buildLUT(p.FuncB)
	aLUT := buildLUT(p.FuncA)
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := pixelAt(src, x, y)
			dst.SetNRGBA(x, y, rgbaOf(rLUT[clampByte(r)], gLUT[clampByte(g)], bLUT[clampByte(bl)], aLUT[clampByte(a)]))
		}
	}
	return dst
}
