package resource

import (
	"image"

	"testing"

	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/text"
)

func TestImageRepositoryPutGetNotReadyUntilPut(t *testing.T) {
	repo := NewImageRepository()
	ref := paint.ResourceRef{Kind: paint.RefRID, Value: "logo"}

	if _, ok := repo.Get(ref); ok {
		t.Fatal("expected missing ref to report not ready")
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	repo.Put(ref, img)

	got, ok := repo.Get(ref)
	if !ok || got != image.Image(img) {
		t.Errorf("expected the put image back, ok=%v", ok)
	}
}

func TestImageRepositorySnapshotIsIndependentCopy(t *testing.T) {
	repo := NewImageRepository()
	ref := paint.ResourceRef{Kind: paint.RefHash, Value: "abc"}
	repo.Put(ref, image.NewNRGBA(image.Rect(0, 0, 1, 1)))

	snap := repo.Snapshot()
	repo.Delete(ref)

	if _, ok := snap[ref]; !ok {
		t.Error("snapshot should retain entries removed from the live repository afterward")
	}
	if _, ok := repo.Get(ref); ok {
		t.Error("expected ref to be gone from the live repository after Delete")
	}
}

func TestFontRepositoryPutGet(t *testing.T) {
	repo := NewFontRepository()
	ref := paint.ResourceRef{Kind: paint.RefRID, Value: "inter"}
	if _, ok := repo.Get(ref); ok {
		t.Fatal("expected missing font ref to report not ready")
	}

	face := &text.FaceSource{}
	repo.Put(ref, face)

	got, ok := repo.Get(ref)
	if !ok || got != face {
		t.Errorf("expected the put font back, ok=%v", ok)
	}
}
