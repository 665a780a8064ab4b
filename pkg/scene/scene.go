package scene

import (
	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
)

// Scene is a named collection of top-level nodes drawn over an optional
// background color, backed by a NodeRepository.
type Scene struct {
	ID         string
	Name       string
	Background *paint.CGColor
	Children   []NodeID
	Repo       *NodeRepository
}

// NewScene constructs a Scene over an existing repository.
func NewScene(id, name string, background *paint.CGColor, children []NodeID, repo *NodeRepository) *Scene {
	return &Scene{ID: id, Name: name, Background: background, Children: children, Repo: repo}
}

// VisitFunc is called once per node during DFS traversal, receiving the
// node, its id, and its accumulated world transform (parent transform
// composed with the node's own local transform).
type VisitFunc func(id NodeID, n Node, world geometry.AffineTransform)

// TraverseDFS walks the scene top-down depth-first, in draw order: within
// a container, children are visited in ContainerData.Children order.
// Missing node ids are skipped silently (spec §4.1 failure semantics).
func (s *Scene) TraverseDFS(visit VisitFunc) {
	var walk func(id NodeID, parentWorld geometry.AffineTransform)
	walk = func(id NodeID, parentWorld geometry.AffineTransform) {
		n, ok := s.Repo.Get(id)
		if !ok {
			return
		}
		world := parentWorld.Mul(n.Style.Transform)
		visit(id, n, world)
		if n.IsContainer() {
			for _, child := range n.Container.Children {
				walk(child, world)
			}
		}
	}
	for _, id := range s.Children {
		walk(id, geometry.Identity())
	}
}

// Bounds returns the union of the world-space bounding boxes of every node
// reachable from the scene's top-level nodes (descendants included); callers that need a world-space bound for an arbitrary node should
// use the Renderer's geometry cache instead (spec §4.7).
func (s *Scene) Bounds(boundsOf func(Node) geometry.Rect) geometry.Rect {
	var out geometry.Rect
	first := true
	s.TraverseDFS(func(id NodeID, n Node, world geometry.AffineTransform) {
		r := world.TransformRect(boundsOf(n))
		if first {
			out = r
			first = false
			return
		}
		out = out.Union(r)
	})
	return out
}
