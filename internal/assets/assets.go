// Package assets loads decorative meshes from STL files.
package assets

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/internal/engine/scene"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/pkg/math"
)

// Options control how a loaded mesh is placed and shaded.
type Options struct {
	Position math.Vec3
	Scale    float32
	Opacity  float32
}

// DefaultOptions places the face mesh five units behind the origin at five times its size.
func DefaultOptions() Options {
	return Options{
		Position: math.V3(0, 0, -5),
		Scale:    5,
		Opacity:  0.5,
	}
}

// Transform returns the placement matrix: translate, then scale.
func (o Options) Transform() math.Mat4 {
	s := o.Scale
	if s == 0 {
		s = 1
	}
	return math.Translate(o.Position.X, o.Position.Y, o.Position.Z).Mul(math.Scale(s, s, s))
}

// Result is the outcome of a background load. Exactly one of Node and Err is set.
type Result struct {
	Path string
	Node *scene.Node
	Err  error
}

// Loader parses STL files and caches the parsed meshes by path.
type Loader struct {
	cache *Cache
}

// NewLoader creates a loader with an empty cache.
func NewLoader() *Loader {
	return &Loader{cache: NewCache()}
}

// Load parses path in the background and delivers a single Result on the
// returned channel, which is then closed. Cancelling ctx makes the result
// carry ctx.Err() instead of a node.
func (l *Loader) Load(ctx context.Context, path string, opts Options) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		node, err := l.load(ctx, path, opts)
		if err != nil {
			out <- Result{Path: path, Err: err}
			return
		}
		out <- Result{Path: path, Node: node}
	}()
	return out
}

func (l *Loader) load(ctx context.Context, path string, opts Options) (*scene.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := l.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	placed := m.Transform(opts.Transform())
	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("triangles", placed.TriangleCount()))
	return &scene.Node{Mesh: placed, Material: scene.Face(opts.Opacity)}, nil
}

// LoadMesh parses path synchronously, in file coordinates.
func (l *Loader) LoadMesh(path string) (*mesh.Mesh, error) {
	if m, ok := l.cache.Get(path); ok {
		return m, nil
	}
	m, err := ReadSTL(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	l.cache.Set(path, m)
	return m, nil
}

// Cache returns the loader's mesh cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Cache is an in-memory cache of parsed meshes, safe for concurrent use.
type Cache struct {
	data map[string]*mesh.Mesh
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string]*mesh.Mesh)}
}

// Get retrieves a mesh from the cache.
func (c *Cache) Get(key string) (*mesh.Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return m, ok
}

// Set stores a mesh in the cache.
func (c *Cache) Set(key string, m *mesh.Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = m
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*mesh.Mesh)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
