package ingest

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
)

func ptr(v float64) *float64 { return &v }

func TestMergePaintsPrefersNonEmptyFills(t *testing.T) {
	fill := &JSONPaint{Type: "solid", Color: "#ff0000"}
	fills := []JSONPaint{{Type: "solid", Color: "#00ff00"}, {Type: "solid", Color: "#0000ff"}}

	got := mergePaints(fill, fills)
	if len(got) != 2 {
		t.Fatalf("expected fills to win with 2 entries, got %d", len(got))
	}
	if got[0].Color != paint.RGB(0, 255, 0) {
		t.Errorf("expected first fill color green, got %v", got[0].Color)
	}
}

func TestMergePaintsFallsBackToSingularFill(t *testing.T) {
	fill := &JSONPaint{Type: "solid", Color: "#ff0000"}

	got := mergePaints(fill, nil)
	if len(got) != 1 || got[0].Color != paint.RGB(255, 0, 0) {
		t.Fatalf("expected single fallback fill, got %v", got)
	}
}

func TestMergePaintsEmptyFillsStillFallsBack(t *testing.T) {
	fill := &JSONPaint{Type: "solid", Color: "#123456"}

	got := mergePaints(fill, []JSONPaint{})
	if len(got) != 1 {
		t.Fatalf("expected empty fills list to fall back to singular fill, got %d entries", len(got))
	}
}

func TestMergeCornerRadiusUniformShorthand(t *testing.T) {
	got := mergeCornerRadius(ptr(8), nil, nil, nil, nil)
	want := geometry.Uniform(geometry.CircularRadius(8))
	if got != want {
		t.Errorf("expected uniform 8 radius, got %+v", got)
	}
}

func TestMergeCornerRadiusPerCornerOverride(t *testing.T) {
	got := mergeCornerRadius(ptr(8), ptr(2), nil, nil, nil)
	if got.TopLeft != geometry.CircularRadius(2) {
		t.Errorf("expected top-left override to win, got %+v", got.TopLeft)
	}
	if got.TopRight != geometry.CircularRadius(8) {
		t.Errorf("expected unset corners to keep the shorthand value, got %+v", got.TopRight)
	}
}

func TestMergeCornerRadiusNoShorthandNoOverride(t *testing.T) {
	got := mergeCornerRadius(nil, nil, nil, nil, nil)
	if !got.IsZero() {
		t.Errorf("expected zero corner radius, got %+v", got)
	}
}

func TestParseHexColorRGBAndRGBA(t *testing.T) {
	c, err := parseHexColor("#112233")
	if err != nil || c.R() != 0x11 || c.G() != 0x22 || c.B() != 0x33 || c.A() != 0xff {
		t.Fatalf("unexpected rgb decode: %v %v", c, err)
	}
	c2, err := parseHexColor("#11223380")
	if err != nil || c2.A() != 0x80 {
		t.Fatalf("unexpected rgba decode: %v %v", c2, err)
	}
	if _, err := parseHexColor("not-a-color"); err == nil {
		t.Error("expected error for malformed color")
	}
}

func TestDecodeDocumentBuildsContainerWithChild(t *testing.T) {
	data := []byte(`{
		"version": "1.0",
		"scene": {
			"id": "s",
			"name": "root",
			"children": ["root-container"],
			"nodes": {
				"root-container": {
					"type": "container",
					"name": "Frame",
					"children": ["rect"]
				},
				"rect": {
					"type": "rectangle",
					"name": "Rect",
					"width": 100,
					"height": 50,
					"corner_radius": 4,
					"fills": [{"type": "solid", "color": "#ff0000", "opacity": 1}]
				}
			}
		}
	}`)

	sc, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(sc.Children) != 1 {
		t.Fatalf("expected one root child, got %d", len(sc.Children))
	}
	container, ok := sc.Repo.Get(sc.Children[0])
	if !ok || container.Type != scene.NodeContainer {
		t.Fatalf("expected container node, got %+v ok=%v", container, ok)
	}
	if len(container.Container.Children) != 1 {
		t.Fatalf("expected container to have one child, got %d", len(container.Container.Children))
	}
	rect, ok := sc.Repo.Get(container.Container.Children[0])
	if !ok || rect.Type != scene.NodeRectangle {
		t.Fatalf("expected rectangle node, got %+v ok=%v", rect, ok)
	}
	if rect.Geometry.Size.Width != 100 || rect.Geometry.Size.Height != 50 {
		t.Errorf("unexpected rectangle size: %+v", rect.Geometry.Size)
	}
	if len(rect.Style.Fills) != 1 || rect.Style.Fills[0].Color != paint.RGB(255, 0, 0) {
		t.Errorf("unexpected rectangle fill: %+v", rect.Style.Fills)
	}
}

func TestNodeTypeOfAcceptsFigmaVocabulary(t *testing.T) {
	nt, ok := nodeTypeOf("FRAME")
	if !ok || nt != scene.NodeContainer {
		t.Fatalf("expected Figma FRAME to map to NodeContainer, got %v ok=%v", nt, ok)
	}
	if _, ok := nodeTypeOf("COMPONENT"); ok {
		t.Error("expected unmapped Figma node kind COMPONENT to report unsupported")
	}
}

func TestDecodeDocumentUnknownTypeBecomesErrorNode(t *testing.T) {
	data := []byte(`{
		"version": "1.0",
		"scene": {
			"id": "s",
			"name": "root",
			"children": ["mystery"],
			"nodes": {
				"mystery": {"type": "some_future_node", "name": "Mystery"}
			}
		}
	}`)

	sc, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	n, ok := sc.Repo.Get(sc.Children[0])
	if !ok || n.Type != scene.NodeError {
		t.Fatalf("expected error node fallback, got %+v ok=%v", n, ok)
	}
	if n.Error.Message == "" {
		t.Error("expected a non-empty error message")
	}
}
