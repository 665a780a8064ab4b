package scene

import (
	"sync/atomic"
)

var idCounter uint64

// NewNodeID mints a process-unique NodeID. Hosts that deserialize a
// document use the document's own ids instead; this is for programmatic
// construction (tests, the ingestion adapters).
func NewNodeID() NodeID {
	n := atomic.AddUint64(&idCounter, 1)
	return NodeID(itoa(n))
}

func itoa(n uint64) string {
	if n == 0 {
		return "n0"
	}
	buf := [24]byte{}
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return "n" + string(buf[i:])
}

// NodeRepository is the NodeId -> Node store. Lookup is O(1); it does not
// own parent/child relationships beyond what each Node's ContainerData
// stores directly, avoiding the indirection a separate links map would add
// during draw (spec §4.1).
type NodeRepository struct {
	nodes map[NodeID]Node
	order []NodeID // insertion order, used for deterministic iteration
}

// NewNodeRepository constructs an empty repository.
func NewNodeRepository() *NodeRepository {
	return &NodeRepository{nodes: make(map[NodeID]Node)}
}

// Insert stores node under its own ID (minting one if empty) and returns
// the ID used.
func (r *NodeRepository) Insert(n Node) NodeID {
	if n.ID == "" {
		n.ID = NewNodeID()
	}
	if _, exists := r.nodes[n.ID]; !exists {
		r.order = append(r.order, n.ID)
	}
	r.nodes[n.ID] = n
	return n.ID
}

// Get returns the node for id and whether it was found. A missing id is not
// an error at this layer; callers (the renderer) draw nothing for it.
func (r *NodeRepository) Get(id NodeID) (Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Update replaces the node stored at id. It is a no-op if id has not been
// inserted, to keep the repository append-only with respect to identity.
func (r *NodeRepository) Update(id NodeID, n Node) {
	if _, exists := r.nodes[id]; !exists {
		return
	}
	n.ID = id
	r.nodes[id] = n
}

// Len returns the number of nodes stored.
func (r *NodeRepository) Len() int { return len(r.nodes) }

// AllDescendants returns every node reachable from root (root itself
// excluded, unless includeSelf is true) in deterministic DFS order
// consistent with draw order: for each container, children are visited in
// ContainerData.Children order before moving to the next sibling.
func (r *NodeRepository) AllDescendants(root NodeID, includeSelf bool) []NodeID {
	var out []NodeID
	var walk func(id NodeID)
	first := true
	walk = func(id NodeID) {
		n, ok := r.nodes[id]
		if !ok {
			return
		}
		if !first || includeSelf {
			out = append(out, id)
		}
		first = false
		if n.IsContainer() {
			for _, child := range n.Container.Children {
				walk(child)
			}
		}
	}
	walk(root)
	return out
}
