package scene

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
)

func buildSimpleScene() *Scene {
	repo := NewNodeRepository()
	leafA := repo.Insert(Node{ID: "a", Type: NodeRectangle, Style: DefaultStyle()})
	leafB := repo.Insert(Node{ID: "b", Type: NodeRectangle, Style: DefaultStyle()})
	group := repo.Insert(Node{
		ID: "g", Type: NodeGroup, Style: DefaultStyle(),
		Container: ContainerData{Children: []NodeID{leafA, leafB}},
	})
	return NewScene("s", "Scene", nil, []NodeID{group}, repo)
}

func TestTraverseDFSOrder(t *testing.T) {
	s := buildSimpleScene()
	var order []NodeID
	s.TraverseDFS(func(id NodeID, n Node, world geometry.AffineTransform) {
		order = append(order, id)
	})
	want := []NodeID{"g", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestTraverseDFSSkipsMissingNode(t *testing.T) {
	repo := NewNodeRepository()
	group := repo.Insert(Node{ID: "g", Type: NodeGroup, Style: DefaultStyle(),
		Container: ContainerData{Children: []NodeID{"missing"}}})
	s := NewScene("s", "Scene", nil, []NodeID{group}, repo)
	count := 0
	s.TraverseDFS(func(id NodeID, n Node, world geometry.AffineTransform) { count++ })
	if count != 1 {
		t.Errorf("expected only the group to be visited, got %d visits", count)
	}
}

func TestAllDescendantsOrder(t *testing.T) {
	s := buildSimpleScene()
	desc := s.Repo.AllDescendants("g", false)
	if len(desc) != 2 || desc[0] != "a" || desc[1] != "b" {
		t.Errorf("AllDescendants = %v, want [a b]", desc)
	}
}

func TestRepositoryUpdateNoopOnMissing(t *testing.T) {
	repo := NewNodeRepository()
	repo.Update("missing", Node{Type: NodeRectangle})
	if repo.Len() != 0 {
		t.Errorf("Update should not insert a missing id")
	}
}
