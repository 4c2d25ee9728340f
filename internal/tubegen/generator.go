package tubegen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/engine/curve"
	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/internal/engine/scene"
	"github.com/Faultbox/veinview/internal/engine/tube"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/internal/vessel"
)

// ParamSource supplies the current parameters of an entity.
type ParamSource interface {
	Params(code string) vessel.Params
}

// Generator rebuilds entity tubes inside a scene.
type Generator struct {
	scene     *scene.Scene
	materials map[string]*scene.Material
}

// NewGenerator creates a generator that writes into s.
func NewGenerator(s *scene.Scene) *Generator {
	g := &Generator{
		scene:     s,
		materials: make(map[string]*scene.Material),
	}
	for _, c := range vessel.All() {
		g.materials[c.Code] = scene.Opaque(c.Code, c.Color)
	}
	return g
}

// Material returns the normal material shared by every node of the entity.
func (g *Generator) Material(code string) *scene.Material {
	return g.materials[code]
}

// Build computes the tube meshes of an entity, one per part, without touching the scene.
func Build(code string, p vessel.Params) ([]*mesh.Mesh, error) {
	c, err := vessel.Get(code)
	if err != nil {
		return nil, err
	}

	parts := c.Translated(p.DepthOffset)
	meshes := make([]*mesh.Mesh, len(parts))
	for i, pts := range parts {
		dense := curve.New(pts).Points(Samples)
		path := curve.Refit(PartialPoints(dense, p.CoverageHeight))
		meshes[i] = tube.Build(path, TubularSegments, p.Radius, RadialSegments, false)
	}
	return meshes, nil
}

// Rebuild replaces the entity's nodes with freshly built ones carrying the
// entity's normal material. Old nodes are removed before new ones are added.
func (g *Generator) Rebuild(code string, p vessel.Params) (scene.EntityMeshSet, error) {
	meshes, err := Build(code, p)
	if err != nil {
		logger.Error("rebuild failed", logger.Entity(code), zap.Error(err))
		return nil, fmt.Errorf("rebuild: %w", err)
	}

	removed := g.scene.RemoveEntity(code)
	set := make(scene.EntityMeshSet, len(meshes))
	for i, m := range meshes {
		set[i] = g.scene.Add(&scene.Node{
			Entity:   code,
			Part:     i,
			Mesh:     m,
			Material: g.materials[code],
		})
	}

	logger.Debug("tube rebuilt",
		logger.Entity(code),
		zap.Int("parts", len(set)),
		zap.Int("replaced", removed),
		zap.Int("samples", SampleCount(p.CoverageHeight)),
		zap.Float32("radius", p.Radius),
		zap.Float32("depth", p.DepthOffset))
	return set, nil
}

// RebuildAll builds every catalog entity from the given parameters.
func (g *Generator) RebuildAll(src ParamSource) error {
	for _, code := range vessel.Codes() {
		if _, err := g.Rebuild(code, src.Params(code)); err != nil {
			return err
		}
	}
	return nil
}

// Meshes returns the entity's current nodes in part order.
func (g *Generator) Meshes(code string) scene.EntityMeshSet {
	return g.scene.EntityNodes(code)
}
