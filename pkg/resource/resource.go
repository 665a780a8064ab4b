// Package resource provides the ResourceRef-keyed repositories the
// rasterizer and text layout consult for decoded images and parsed font
// faces: both support dynamic insertion after a scene already references
// an id, and report "not ready" rather than blocking the caller, the way
// the platform channel registry resolves named channels that may not
// exist yet.
package resource

import (
	"image"
	"sync"

	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/text"
)

// ImageRepository is the ResourceRef -> decoded image.Image store a host
// populates as assets finish downloading/decoding.
type ImageRepository struct {
	mu     sync.RWMutex
	images map[paint.ResourceRef]image.Image
}

// NewImageRepository constructs an empty repository.
func NewImageRepository() *ImageRepository {
	return &ImageRepository{images: make(map[paint.ResourceRef]image.Image)}
}

// Put registers or replaces the decoded image for ref.
func (r *ImageRepository) Put(ref paint.ResourceRef, img image.Image) {
	r.mu.Lock()
	r.images[ref] = img
	r.mu.Unlock()
}

// Get returns the image for ref and whether it is present. A missing ref
// is not an error: callers (the rasterizer) skip drawing until it arrives.
func (r *ImageRepository) Get(ref paint.ResourceRef) (image.Image, bool) {
	r.mu.RLock()
	img, ok := r.images[ref]
	r.mu.RUnlock()
	return img, ok
}

// Delete evicts ref, e.g. when a host frees a texture no longer
// referenced by any scene.
func (r *ImageRepository) Delete(ref paint.ResourceRef) {
	r.mu.Lock()
	delete(r.images, ref)
	r.mu.Unlock()
}

// Snapshot copies the current ref -> image mapping, suitable for handing to
// pkg/raster.Env.Images without holding the repository's lock during a
// render pass.
func (r *ImageRepository) Snapshot() map[paint.ResourceRef]image.Image {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[paint.ResourceRef]image.Image, len(r.images))
	for k, v := range r.images {
		out[k] = v
	}
	return out
}

// FontRepository is the ResourceRef -> text.FaceSource store; a FaceSource is
// shared across every size a style requests, since FaceSource.Face is the
// per-size factory.
type FontRepository struct {
	mu    sync.RWMutex
	faces map[paint.ResourceRef]*text.FaceSource
}

// NewFontRepository constructs an empty repository.
func NewFontRepository() *FontRepository {
	return &FontRepository{faces: make(map[paint.ResourceRef]*text.FaceSource)}
}

// Put registers or replaces the parsed font for ref.
func (r *FontRepository) Put(ref paint.ResourceRef, face *text.FaceSource) {
	r.mu.Lock()
	r.faces[ref] = face
	r.mu.Unlock()
}

// Get returns the font for ref and whether it is present.
func (r *FontRepository) Get(ref paint.ResourceRef) (*text.FaceSource, bool) {
	r.mu.RLock()
	f, ok := r.faces[ref]
	r.mu.RUnlock()
	return f, ok
}

// Delete evicts ref.
func (r *FontRepository) Delete(ref paint.ResourceRef) {
	r.mu.Lock()
	delete(r.faces, ref)
	r.mu.Unlock()
}
