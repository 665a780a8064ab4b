package filter

import (
	"image"
	"math"
)

// surfaceNormal estimates the Sobel-filtered surface normal of the alpha
// channel at (x,y), scaled by SurfaceScale, per the SVG lighting model.
func surfaceNormal(alpha Image, x, y int, surfaceScale float64) (nx, ny, nz float64) {
	a := func(dx, dy int) float64 {
		_, _, _, av := pixelAt(alpha, x+dx, y+dy)
		return av / 255
	}
	// Sobel 3x3 gradients.
	gx := (a(1, -1) + 2*a(1, 0) + a(1, 1)) - (a(-1, -1) + 2*a(-1, 0) + a(-1, 1))
	gy := (a(-1, 1) + 2*a(0, 1) + a(1, 1)) - (a(-1, -1) + 2*a(0, -1) + a(1, -1))
	nx = -surfaceScale * gx / 4
	ny = -surfaceScale * gy / 4
	nz = 1
	length := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if length == 0 {
		return 0, 0, 1
	}
	return nx / length, ny / length, nz / length
}

// lightVector returns the normalized direction toward the light at surface
// point (x,y,z), and the light's color intensity scale (1.0 for distant and
// point lights, falling off with the limiting cone for spot lights).
func lightVector(light Light, x, y, z float64) (lx, ly, lz float64, atten float64) {
	switch light.Kind {
	case LightDistant:
		az := light.Azimuth * math.Pi / 180
		el := light.Elevation * math.Pi / 180
		lx = math.Cos(az) * math.Cos(el)
		ly = math.Sin(az) * math.Cos(el)
		lz = math.Sin(el)
		return lx, ly, lz, 1
	default: // Point / Spot
		dx, dy, dz := light.X-x, light.Y-y, light.Z-z
		length := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if length == 0 {
			return 0, 0, 1, 1
		}
		lx, ly, lz = dx/length, dy/length, dz/length
		atten = 1
		if light.Kind == LightSpot {
			sx, sy, sz := light.PointsAtX-light.X, light.PointsAtY-light.Y, light.PointsAtZ-light.Z
			slen := math.Sqrt(sx*sx + sy*sy + sz*sz)
			if slen > 0 {
				sx, sy, sz = sx/slen, sy/slen, sz/slen
				cosAngle := -lx*sx - ly*sy - lz*sz
				limit := math.Cos(light.LimitingConeAngle * math.Pi / 180)
				if cosAngle < limit {
					atten = 0
				} else if light.SpecularExponent > 0 {
					atten = math.Pow(cosAngle, light.SpecularExponent)
				}
			}
		}
		return lx, ly, lz, atten
	}
}

// diffuseLighting implements feDiffuseLighting: out = kd * N.L * lightColor.
func diffuseLighting(src Image, p Primitive) Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	lr, lg, lb, _ := p.LightColor.RGBAF()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nx, ny, nz := surfaceNormal(src, x, y, p.SurfaceScale)
			lx, ly, lz, atten := lightVector(p.LightSource, float64(x), float64(y), p.SurfaceScale)
			ndotl := math.Max(0, nx*lx+ny*ly+nz*lz) * atten
			r := clamp01f(p.DiffuseConstant * ndotl * lr)
			g := clamp01f(p.DiffuseConstant * ndotl * lg)
			bch := clamp01f(p.DiffuseConstant * ndotl * lb)
			dst.SetNRGBA(x, y, rgbaOf(clampByte(r*255), clampByte(g*255), clampByte(bch*255), 255))
		}
	}
	return dst
}

// specularLighting implements feSpecularLighting using the Blinn-Phong
// halfway vector approximation.
func specularLighting(src Image, p Primitive) Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	lr, lg, lb, _ := p.LightColor.RGBAF()
	exp := p.SpecularExponent
	if exp <= 0 {
		exp = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			nx, ny, nz := surfaceNormal(src, x, y, p.SurfaceScale)
			lx, ly, lz, atten := lightVector(p.LightSource, float64(x), float64(y), p.SurfaceScale)
			// Halfway vector between light and viewer (viewer along +Z).
			hx, hy, hz := lx, ly, lz+1
			hl := math.Sqrt(hx*hx + hy*hy + hz*hz)
			if hl > 0 {
				hx, hy, hz = hx/hl, hy/hl, hz/hl
			}
			ndoth := math.Max(0, nx*hx+ny*hy+nz*hz) * atten
			spec := p.SpecularConstant * math.Pow(ndoth, exp)
			r := clamp01f(spec * lr)
			g := clamp01f(spec * lg)
			bch := clamp01f(spec * lb)
			a := clampByte(math.Max(r, math.Max(g, bch)) * 255)
			dst.SetNRGBA(x, y, rgbaOf(clampByte(r*255), clampByte(g*255), clampByte(bch*255), a))
		}
	}
	return dst
}
