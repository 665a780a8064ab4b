package filter

import (
	"image"
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/paint"
)

func solidSquare(size int, c paint.CGColor) Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, rgbaOf(c.R(), c.G(), c.B(), c.A()))
		}
	}
	return img
}

// TestChainingFixedPoint verifies property #7: a linear chain
// [A -> a, B:in=a -> b, C:in=b -> out] equals C(B(A(SourceGraphic))).
func TestChainingFixedPoint(t *testing.T) {
	src := solidSquare(8, paint.RGBA(255, 0, 0, 255))

	chained := Evaluate(Graph{
		Primitives: []Primitive{
			{Kind: PrimOffset, In: SourceGraphic, DX: 1, DY: 0, Result: "a"},
			{Kind: PrimOffset, In: "a", DX: 0, DY: 1, Result: "b"},
			{Kind: PrimColorMatrix, In: "b", MatrixKind: ColorMatrixSaturate, SaturateValue: 0, Result: "out"},
		},
	}, src)

	a := offsetImage(src, 1, 0)
	b := offsetImage(a, 0, 1)
	want := applyColorMatrix(b, Primitive{MatrixKind: ColorMatrixSaturate, SaturateValue: 0})

	if !imagesEqual(chained, want) {
		t.Errorf("chained evaluation did not match direct composition")
	}
}

func imagesEqual(a, b Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	bnd := a.Bounds()
	for y := bnd.Min.Y; y < bnd.Max.Y; y++ {
		for x := bnd.Min.X; x < bnd.Max.X; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}

// TestS4MergeOffsetBlur is the S4 scenario: offset SourceAlpha, blur it,
// merge behind SourceGraphic, producing a shadowed square.
func TestS4MergeOffsetBlur(t *testing.T) {
	// A 20x20 black square on a 32x32 canvas, leaving room for the shadow
	// (every primitive here keeps the source image's bounds).
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			src.SetNRGBA(x, y, rgbaOf(0, 0, 0, 255))
		}
	}

	out := Evaluate(Graph{
		Primitives: []Primitive{
			{Kind: PrimOffset, In: SourceAlpha, DX: 4, DY: 4, Result: "a"},
			{Kind: PrimGaussianBlur, In: "a", StdDeviationX: 2, StdDeviationY: 2, Result: "b"},
			{Kind: PrimMerge, Inputs: []string{"b", SourceGraphic}, Result: "out"},
		},
	}, src)

	if out == nil {
		t.Fatal("expected non-nil merged output")
	}
	// A pixel beyond the original square but within the shadow offset
	// should now have nonzero alpha (the blurred, offset shadow).
	_, _, _, a := pixelAt(out, 21, 21)
	if a == 0 {
		t.Errorf("expected shadow bleed at (21,21), got alpha 0")
	}
}

func TestUnsupportedPrimitiveSkipped(t *testing.T) {
	src := solidSquare(4, paint.RGBA(10, 20, 30, 255))
	out := Evaluate(Graph{
		Primitives: []Primitive{
			{Kind: PrimitiveKind(999), Result: "x"},
		},
	}, src)
	if !imagesEqual(out, src) {
		t.Errorf("unsupported primitive should leave PreviousResult unchanged")
	}
}

func TestComponentTransferIdentity(t *testing.T) {
	src := solidSquare(2, paint.RGBA(100, 150, 200, 255))
	out := componentTransfer(src, Primitive{})
	if !imagesEqual(out, src) {
		t.Errorf("identity component transfer should not change the image")
	}
}
