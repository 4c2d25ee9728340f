// Package selection tracks which entity is selected, resolves pointer
// presses to entities and applies parameter edits.
package selection

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/internal/engine/picking"
	"github.com/Faultbox/veinview/internal/engine/scene"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/internal/tubegen"
	"github.com/Faultbox/veinview/internal/vessel"
	"github.com/Faultbox/veinview/pkg/math"
)

var (
	ErrNoSelection  = errors.New("no entity selected")
	ErrInvalidValue = errors.New("invalid parameter value")
	ErrUnknownField = errors.New("unknown parameter field")
)

// DefaultForgivenessPx is the retry radius around a missed press.
const DefaultForgivenessPx = 6

// Projector supplies the camera matrices used for ray casting.
type Projector interface {
	InverseViewProjection(aspect float32) math.Mat4
}

// Selection is delivered to listeners whenever the selected entity or its
// parameters change.
type Selection struct {
	Code   string
	Label  string
	Params vessel.Params
}

// Listener receives selection notifications.
type Listener func(Selection)

// Config wires a Controller to its collaborators.
type Config struct {
	Scene         *scene.Scene
	Generator     *tubegen.Generator
	Cache         *ParamCache
	Camera        Projector
	Limits        Limits
	ForgivenessPx float32
}

// Controller is a single-selection state machine. Idle means no entity is selected.
type Controller struct {
	scene     *scene.Scene
	gen       *tubegen.Generator
	cache     *ParamCache
	camera    Projector
	limits    Limits
	radius    float32
	highlight *scene.Material

	width, height float32

	selected string
	saved    map[int]*scene.Material // pre-highlight material per part

	listeners []Listener
}

// New creates an idle controller.
func New(cfg Config) *Controller {
	return &Controller{
		scene:     cfg.Scene,
		gen:       cfg.Generator,
		cache:     cfg.Cache,
		camera:    cfg.Camera,
		limits:    cfg.Limits,
		radius:    cfg.ForgivenessPx,
		highlight: scene.Highlight(),
		saved:     make(map[int]*scene.Material),
	}
}

// SetViewport sets the size of the screen that press coordinates refer to.
func (c *Controller) SetViewport(width, height int) {
	c.width, c.height = float32(width), float32(height)
}

// OnChange registers a listener.
func (c *Controller) OnChange(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Highlight returns the material carried by the selected entity.
func (c *Controller) Highlight() *scene.Material {
	return c.highlight
}

// Selected returns the selected entity code, if any.
func (c *Controller) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// Current returns the selection as listeners see it.
func (c *Controller) Current() (Selection, bool) {
	if c.selected == "" {
		return Selection{}, false
	}
	return c.describe(c.selected), true
}

// Params returns the cached parameters of code.
func (c *Controller) Params(code string) vessel.Params {
	return c.cache.Params(code)
}

// Resolve returns the entity under the screen point. A miss is retried at
// eight points around it; the first retry that hits wins.
func (c *Controller) Resolve(x, y float32) (string, bool) {
	if c.width <= 0 || c.height <= 0 {
		return "", false
	}

	var (
		meshes []*mesh.Mesh
		owners []string
	)
	for _, code := range vessel.Codes() {
		for _, n := range c.scene.EntityNodes(code) {
			meshes = append(meshes, n.Mesh)
			owners = append(owners, code)
		}
	}
	if len(meshes) == 0 {
		return "", false
	}

	inv := c.camera.InverseViewProjection(c.width / c.height)
	cast := func(px, py float32) (string, bool) {
		r := picking.ScreenToRay(px, py, c.width, c.height, inv)
		hits := picking.IntersectMeshes(r, meshes)
		if len(hits) == 0 {
			return "", false
		}
		return owners[hits[0].Index], true
	}

	if code, ok := cast(x, y); ok {
		return code, true
	}
	if c.radius <= 0 {
		return "", false
	}
	for _, off := range picking.Offsets(c.radius) {
		if code, ok := cast(x+off[0], y+off[1]); ok {
			logger.Debug("pick accepted after retry", logger.Entity(code), zap.Float32s("offset", off[:]))
			return code, true
		}
	}
	return "", false
}

// Press resolves the screen point and selects the entity found there.
// It reports whether the selection changed. Pressing empty space or the
// selected entity changes nothing.
func (c *Controller) Press(x, y float32) (string, bool) {
	code, ok := c.Resolve(x, y)
	if !ok || code == c.selected {
		return c.selected, false
	}
	c.transition(code)
	return code, true
}

// Select selects code as if it had been pressed.
func (c *Controller) Select(code string) error {
	if _, err := vessel.Get(code); err != nil {
		logger.Error("select failed", logger.Entity(code), zap.Error(err))
		return err
	}
	if code != c.selected {
		c.transition(code)
	}
	return nil
}

func (c *Controller) transition(code string) {
	prev := c.selected
	if prev != "" {
		for _, n := range c.scene.EntityNodes(prev) {
			if m, ok := c.saved[n.Part]; ok {
				c.scene.SetMaterial(n, m)
			}
		}
	}

	c.selected = code
	c.applyHighlight(c.scene.EntityNodes(code))

	logger.Info("entity selected", logger.Entity(code), zap.String("previous", prev))
	c.notify()
}

// applyHighlight saves the current material of every node and replaces it.
func (c *Controller) applyHighlight(set scene.EntityMeshSet) {
	c.saved = make(map[int]*scene.Material, len(set))
	for _, n := range set {
		c.saved[n.Part] = n.Material
		c.scene.SetMaterial(n, c.highlight)
	}
}

// Edit sets one parameter of the selected entity and rebuilds it.
// The value is clamped to the field's range.
func (c *Controller) Edit(f Field, value float32) error {
	if c.selected == "" {
		return ErrNoSelection
	}
	if math32.IsNaN(value) || math32.IsInf(value, 0) {
		return fmt.Errorf("%v = %v: %w", f, value, ErrInvalidValue)
	}
	r, err := c.limits.Range(f)
	if err != nil {
		return err
	}

	code := c.selected
	p := c.cache.Params(code)
	set(&p, f, r.Clamp(value))
	c.cache.Set(code, p)

	nodes, err := c.gen.Rebuild(code, p)
	if err != nil {
		return err
	}
	c.applyHighlight(nodes)
	c.notify()
	return nil
}

// Step moves one parameter of the selected entity by steps increments of its range step.
func (c *Controller) Step(f Field, steps int) error {
	if c.selected == "" {
		return ErrNoSelection
	}
	r, err := c.limits.Range(f)
	if err != nil {
		return err
	}
	v, err := Get(c.cache.Params(c.selected), f)
	if err != nil {
		return err
	}
	return c.Edit(f, v+float32(steps)*r.Step)
}

func (c *Controller) describe(code string) Selection {
	s := Selection{Code: code, Params: c.cache.Params(code)}
	if nc, err := vessel.Get(code); err == nil {
		s.Label = nc.Label
	}
	return s
}

func (c *Controller) notify() {
	s := c.describe(c.selected)
	for _, l := range c.listeners {
		l(s)
	}
}
