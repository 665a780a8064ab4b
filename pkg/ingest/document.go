// Package ingest decodes a Grida-format JSON document into a pkg/scene
// Scene. It is intentionally permissive on the way in: a node of a type
// this core does not understand decodes as an Error node carrying a
// message, rather than failing the whole document.
package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/grida-canvas/canvas-core/pkg/canvaserr"
	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
)

// JSONDocument is the top-level Grida document shape: a single root scene.
type JSONDocument struct {
	Version string      `json:"version"`
	Scene   JSONScene   `json:"scene"`
}

// JSONScene mirrors io_grida.rs's scene envelope: an id, name, optional
// background color, and a flat node table keyed by id plus a children
// order list for the root.
type JSONScene struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Background *string                   `json:"background_color,omitempty"`
	Children   []string                  `json:"children"`
	Nodes      map[string]JSONSceneNode `json:"nodes"`
}

// DecodeDocument parses a Grida JSON document and builds the equivalent
// scene.Scene. Unknown node types and malformed per-node fields degrade to
// an Error node rather than aborting decode of the rest of the document.
func DecodeDocument(data []byte) (*scene.Scene, error) {
	var doc JSONDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, canvaserr.New("ingest.DecodeDocument", canvaserr.KindInvalidInput, err)
	}
	return buildScene(doc.Scene)
}

func buildScene(js JSONScene) (*scene.Scene, error) {
	repo := scene.NewNodeRepository()
	idmap := make(map[string]scene.NodeID, len(js.Nodes))

	// First pass: mint every node id so forward child references resolve
	// regardless of JSON object key order.
	for key := range js.Nodes {
		idmap[key] = scene.NewNodeID()
	}

	for key, jn := range js.Nodes {
		n := decodeNode(jn, idmap)
		n.ID = idmap[key]
		repo.Insert(n)
	}

	children := make([]scene.NodeID, 0, len(js.Children))
	for _, key := range js.Children {
		if id, ok := idmap[key]; ok {
			children = append(children, id)
		}
	}

	var bg *paint.CGColor
	if js.Background != nil {
		if c, err := parseHexColor(*js.Background); err == nil {
			bg = &c
		}
	}

	return scene.NewScene(js.ID, js.Name, bg, children, repo), nil
}

// decodeNode converts a single JSON node into its scene.Node equivalent,
// falling back to an Error node on any field it cannot interpret.
func decodeNode(jn JSONSceneNode, idmap map[string]scene.NodeID) scene.Node {
	nt, ok := nodeTypeOf(jn.Type)
	if !ok {
		return errorNode(jn.Name, fmt.Sprintf("unsupported node type %q", jn.Type))
	}

	style := decodeStyle(jn)

	n := scene.Node{
		Name:  jn.Name,
		Type:  nt,
		Style: style,
	}

	switch nt {
	case scene.NodeGroup, scene.NodeContainer, scene.NodeBooleanOperation:
		kids := make([]scene.NodeID, 0, len(jn.Children))
		for _, key := range jn.Children {
			if id, ok := idmap[key]; ok {
				kids = append(kids, id)
			}
		}
		n.Container = scene.ContainerData{
			Clip:     jn.Clip,
			Children: kids,
		}
		n.Geometry = scene.Geometry{BoolOp: decodeBoolOp(jn.BooleanOperation)}
	case scene.NodeRectangle, scene.NodeEllipse:
		n.Geometry = scene.Geometry{
			Size:            sizeOf(jn),
			CornerRadius:    mergeCornerRadius(jn.CornerRadius, jn.CornerRadiusTopLeft, jn.CornerRadiusTopRight, jn.CornerRadiusBottomRight, jn.CornerRadiusBottomLeft),
			CornerSmoothing: geometry.CornerSmoothing(jn.CornerSmoothing).Clamp(),
		}
	case scene.NodeLine:
		n.Geometry = scene.Geometry{Size: sizeOf(jn)}
	case scene.NodeVector, scene.NodeSVGPath:
		n.Geometry = scene.Geometry{PathData: jn.PathData}
	case scene.NodeRegularPolygon, scene.NodeRegularStarPolygon:
		n.Geometry = scene.Geometry{
			Size:        sizeOf(jn),
			PointCount:  jn.PointCount,
			InnerRadius: jn.InnerRadius,
		}
	case scene.NodeImage:
		n.Image = scene.ImageData{
			Image: resourceRefOf(jn.Image),
			Fit:   imageFitOf(),
		}
		n.Geometry = scene.Geometry{Size: sizeOf(jn)}
	case scene.NodeTextSpan:
		n.Text = decodeTextSpan(jn)
	case scene.NodeError:
		n.Error = scene.ErrorData{Message: jn.Message}
	}

	return n
}

func errorNode(name, message string) scene.Node {
	return scene.Node{
		Name:  name,
		Type:  scene.NodeError,
		Style: scene.DefaultStyle(),
		Error: scene.ErrorData{Message: message},
	}
}

func sizeOf(jn JSONSceneNode) geometry.Size {
	return geometry.Size{Width: jn.Width, Height: jn.Height}
}

// nodeTypeOf maps both this core's own Grida-style lowercase type strings
// and Figma's public REST API node.type vocabulary onto a scene.NodeType.
// Figma node kinds this core has no equivalent for (COMPONENT, INSTANCE,
// COMPONENT_SET, SLICE, STICKY, ...) intentionally fall through to the
// unsupported-type Error node built by decodeNode.
func nodeTypeOf(t string) (scene.NodeType, bool) {
	switch t {
	case "group", "GROUP":
		return scene.NodeGroup, true
	case "container", "frame", "FRAME":
		return scene.NodeContainer, true
	case "rectangle", "RECTANGLE":
		return scene.NodeRectangle, true
	case "ellipse", "ELLIPSE":
		return scene.NodeEllipse, true
	case "line", "LINE":
		return scene.NodeLine, true
	case "vector", "VECTOR":
		return scene.NodeVector, true
	case "svgpath", "path":
		return scene.NodeSVGPath, true
	case "regular_polygon", "REGULAR_POLYGON":
		return scene.NodeRegularPolygon, true
	case "regular_star_polygon", "star", "STAR":
		return scene.NodeRegularStarPolygon, true
	case "boolean_operation", "boolean", "BOOLEAN_OPERATION":
		return scene.NodeBooleanOperation, true
	case "image":
		return scene.NodeImage, true
	case "text", "TEXT":
		return scene.NodeTextSpan, true
	case "error":
		return scene.NodeError, true
	default:
		return 0, false
	}
}

func decodeBoolOp(op string) scene.BooleanOp {
	switch op {
	case "intersection":
		return scene.BoolIntersection
	case "difference":
		return scene.BoolDifference
	case "xor":
		return scene.BoolXor
	default:
		return scene.BoolUnion
	}
}

func resourceRefOf(ref string) paint.ResourceRef {
	return paint.ResourceRef{Kind: paint.RefRID, Value: ref}
}

func imageFitOf() paint.ImagePaintFit {
	return paint.ImagePaintFit{Kind: paint.FitBoxFit, BoxFit: geometry.BoxFitCover}
}
