// Package renderer draws scene nodes with OpenGL.
package renderer

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/internal/engine/scene"
	"github.com/Faultbox/veinview/internal/engine/shader"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// gpuMesh is the uploaded form of one node's mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer mirrors scene nodes into GPU buffers and draws them.
type Renderer struct {
	config Config

	program *shader.Program

	meshes      map[uint64]*gpuMesh // keyed by node ID
	syncedAt    uint64
	initialized bool
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[uint64]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	var err error
	r.program, err = shader.Compile(meshVertexShader, meshFragmentShader,
		"uViewProj", "uColor", "uOpacity", "uAmbient", "uLightDir", "uLightColor", "uEye")
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases every GPU resource.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for id := range r.meshes {
		r.release(id)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Render draws the scene. Opaque nodes go first; translucent nodes are
// blended afterwards without writing depth.
func (r *Renderer) Render(s *scene.Scene, viewProj math.Mat4, eye math.Vec3) {
	nodes := s.Nodes()
	if !r.initialized || s.Version() != r.syncedAt {
		r.sync(nodes)
		r.syncedAt = s.Version()
		r.initialized = true
	}

	bg := s.Lighting.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.program
	p.Use()
	p.SetMat4("uViewProj", viewProj.Ptr())
	amb := s.Lighting.Ambient
	p.SetVec3("uAmbient", amb[0], amb[1], amb[2])
	dir := s.Lighting.Sun.Direction()
	p.SetVec3("uLightDir", dir.X, dir.Y, dir.Z)
	rad := s.Lighting.Sun.Radiance()
	p.SetVec3("uLightColor", rad[0], rad[1], rad[2])
	p.SetVec3("uEye", eye.X, eye.Y, eye.Z)

	sort.SliceStable(nodes, func(i, j int) bool {
		return !transparent(nodes[i]) && transparent(nodes[j])
	})
	for _, n := range nodes {
		r.draw(n)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (r *Renderer) draw(n *scene.Node) {
	g, ok := r.meshes[n.ID]
	if !ok || g.count == 0 || n.Material == nil {
		return
	}
	m := n.Material

	if m.Transparent() {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	gl.DepthMask(m.DepthWrite)
	if m.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	r.program.SetVec3("uColor", m.Color[0], m.Color[1], m.Color[2])
	r.program.SetFloat("uOpacity", m.Opacity)

	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
}

func transparent(n *scene.Node) bool {
	return n.Material != nil && n.Material.Transparent()
}

// sync uploads new nodes and frees the buffers of removed ones.
func (r *Renderer) sync(nodes []*scene.Node) {
	live := make(map[uint64]bool, len(nodes))
	for _, n := range nodes {
		live[n.ID] = true
		if _, ok := r.meshes[n.ID]; !ok && n.Mesh != nil {
			r.meshes[n.ID] = upload(n.Mesh)
		}
	}
	for id := range r.meshes {
		if !live[id] {
			r.release(id)
		}
	}
}

func (r *Renderer) release(id uint64) {
	g := r.meshes[id]
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	delete(r.meshes, id)
}

func upload(m *mesh.Mesh) *gpuMesh {
	g := &gpuMesh{count: int32(len(m.Indices))}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		g.count = 0
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	stride := int32(unsafe.Sizeof(mesh.Vertex{}))
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return g
}
