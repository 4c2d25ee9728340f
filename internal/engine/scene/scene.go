// Package scene holds the renderable nodes of the viewer and their materials.
// It owns no GPU state; the renderer mirrors it by node ID.
package scene

import (
	"sort"

	"github.com/Faultbox/veinview/internal/engine/lighting"
	"github.com/Faultbox/veinview/internal/engine/mesh"
)

// Node is one drawable mesh. Entity is the catalog code of the tube it
// belongs to, or empty for decorative geometry that is never picked.
type Node struct {
	ID       uint64
	Entity   string
	Part     int // sub-mesh index within the entity
	Mesh     *mesh.Mesh
	Material *Material
}

// EntityMeshSet is the ordered list of nodes built for one entity.
// Single-part entities hold one node.
type EntityMeshSet []*Node

// Meshes returns the meshes of the set in part order.
func (s EntityMeshSet) Meshes() []*mesh.Mesh {
	out := make([]*mesh.Mesh, len(s))
	for i, n := range s {
		out[i] = n.Mesh
	}
	return out
}

// Scene is an ordered registry of nodes.
type Scene struct {
	Lighting lighting.Rig

	nodes   []*Node
	nextID  uint64
	version uint64
}

// New creates an empty scene with the default light rig.
func New() *Scene {
	return &Scene{Lighting: lighting.Default()}
}

// Add assigns the node a fresh ID and appends it.
func (s *Scene) Add(n *Node) *Node {
	s.nextID++
	n.ID = s.nextID
	s.nodes = append(s.nodes, n)
	s.version++
	return n
}

// Remove drops the node. Returns false if it was not in the scene.
func (s *Scene) Remove(n *Node) bool {
	for i, existing := range s.nodes {
		if existing == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			s.version++
			return true
		}
	}
	return false
}

// RemoveEntity drops every node of the entity and returns how many were removed.
func (s *Scene) RemoveEntity(code string) int {
	kept := s.nodes[:0]
	removed := 0
	for _, n := range s.nodes {
		if n.Entity == code {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	for i := len(kept); i < len(s.nodes); i++ {
		s.nodes[i] = nil
	}
	s.nodes = kept
	if removed > 0 {
		s.version++
	}
	return removed
}

// SetMaterial swaps the material of a node in place.
func (s *Scene) SetMaterial(n *Node, m *Material) {
	if n.Material == m {
		return
	}
	n.Material = m
	s.version++
}

// Nodes returns a snapshot of all nodes in insertion order.
func (s *Scene) Nodes() []*Node {
	return append([]*Node(nil), s.nodes...)
}

// EntityNodes returns the nodes of one entity ordered by part index.
func (s *Scene) EntityNodes(code string) EntityMeshSet {
	var set EntityMeshSet
	for _, n := range s.nodes {
		if n.Entity == code {
			set = append(set, n)
		}
	}
	sort.SliceStable(set, func(i, j int) bool { return set[i].Part < set[j].Part })
	return set
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Version increases on every structural or material change.
func (s *Scene) Version() uint64 {
	return s.version
}
