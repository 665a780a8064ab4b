package renderer

import "github.com/grida-canvas/canvas-core/pkg/geometry"

// Camera controls the view transform a Renderer applies before drawing: pan
// by Translate, scale by Zoom, both in logical (pre-DPI) pixels.
type Camera struct {
	Translate geometry.Offset
	Zoom      float64
}

// Matrix returns the camera's affine view transform: scale by Zoom about
// the origin, then translate.
func (c Camera) Matrix() geometry.AffineTransform {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return geometry.AffineTransform{SX: zoom, SY: zoom, TX: c.Translate.X, TY: c.Translate.Y}
}
