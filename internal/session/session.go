// Package session owns the interactive state of one viewer: the scene, the
// tubes, the selection, the camera and background asset loads.
//
// A Session is not safe for concurrent use. Every method runs on the
// goroutine that drives the frame loop; only asset parsing happens elsewhere
// and its results are collected by Poll.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/assets"
	"github.com/Faultbox/veinview/internal/config"
	"github.com/Faultbox/veinview/internal/engine/camera"
	"github.com/Faultbox/veinview/internal/engine/scene"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/internal/selection"
	"github.com/Faultbox/veinview/internal/tubegen"
	"github.com/Faultbox/veinview/internal/vessel"
	"github.com/Faultbox/veinview/pkg/math"
)

// Options configure a new Session.
type Options struct {
	Defaults      vessel.Params
	Limits        selection.Limits
	Camera        camera.Settings
	ForgivenessPx float32
	Width, Height int
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps a loaded configuration onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	rng := func(r config.RangeConfig) selection.Range {
		return selection.Range{Min: r.Min, Max: r.Max, Step: r.Step}
	}
	return Options{
		Defaults: vessel.Params{
			Radius:         cfg.Tubes.Radius,
			CoverageHeight: cfg.Tubes.Height,
			DepthOffset:    cfg.Tubes.Depth,
		},
		Limits: selection.Limits{
			Radius: rng(cfg.Tubes.RadiusRange),
			Height: rng(cfg.Tubes.HeightRange),
			Depth:  rng(cfg.Tubes.DepthRange),
		},
		Camera: camera.Settings{
			FOV:             cfg.Camera.FOV,
			Near:            cfg.Camera.Near,
			Far:             cfg.Camera.Far,
			Distance:        cfg.Camera.Distance,
			MinDistance:     cfg.Camera.MinDistance,
			MaxDistance:     cfg.Camera.MaxDistance,
			DragSensitivity: cfg.Camera.DragSensitivity,
			ZoomSensitivity: cfg.Camera.ZoomSensitivity,
		},
		ForgivenessPx: cfg.Picking.ForgivenessPx,
		Width:         cfg.Graphics.Width,
		Height:        cfg.Graphics.Height,
	}
}

// FaceOptions maps the assets section of a configuration onto load options.
func FaceOptions(cfg *config.Config) assets.Options {
	return assets.Options{
		Position: math.Vec3FromArray(cfg.Assets.Position),
		Scale:    cfg.Assets.Scale,
		Opacity:  cfg.Assets.Opacity,
	}
}

// Session is the explicit context of one interactive viewer.
type Session struct {
	scene  *scene.Scene
	camera *camera.OrbitCamera
	gen    *tubegen.Generator
	cache  *selection.ParamCache
	sel    *selection.Controller
	loader *assets.Loader

	ctx     context.Context
	cancel  context.CancelFunc
	pending []<-chan assets.Result

	width, height int
}

// New builds a session with every catalog tube in place and nothing selected.
func New(opts Options) (*Session, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		scene:  scene.New(),
		camera: camera.NewOrbitCamera(opts.Camera),
		cache:  selection.NewParamCache(opts.Defaults),
		loader: assets.NewLoader(),
		ctx:    ctx,
		cancel: cancel,
	}
	s.gen = tubegen.NewGenerator(s.scene)
	s.sel = selection.New(selection.Config{
		Scene:         s.scene,
		Generator:     s.gen,
		Cache:         s.cache,
		Camera:        s.camera,
		Limits:        opts.Limits,
		ForgivenessPx: opts.ForgivenessPx,
	})

	if err := s.gen.RebuildAll(s.cache); err != nil {
		cancel()
		return nil, fmt.Errorf("building tubes: %w", err)
	}
	s.Resize(opts.Width, opts.Height)

	logger.Info("session ready",
		zap.Int("entities", len(vessel.Codes())),
		zap.Int("nodes", s.scene.Len()))
	return s, nil
}

// Scene returns the scene the session renders.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Camera returns the session camera.
func (s *Session) Camera() *camera.OrbitCamera { return s.camera }

// Selection returns the current selection, if any.
func (s *Session) Selection() (selection.Selection, bool) { return s.sel.Current() }

// Params returns the cached parameters of an entity.
func (s *Session) Params(code string) vessel.Params { return s.sel.Params(code) }

// OnSelectionChanged registers a listener for selection and parameter changes.
func (s *Session) OnSelectionChanged(l selection.Listener) {
	s.sel.OnChange(l)
}

// Press selects the entity under a screen point.
func (s *Session) Press(x, y float32) (string, bool) {
	return s.sel.Press(x, y)
}

// Select selects an entity by code.
func (s *Session) Select(code string) error {
	return s.sel.Select(code)
}

// Edit sets one parameter of the selected entity.
func (s *Session) Edit(f selection.Field, value float32) error {
	return s.sel.Edit(f, value)
}

// Step nudges one parameter of the selected entity by whole steps.
func (s *Session) Step(f selection.Field, steps int) error {
	return s.sel.Step(f, steps)
}

// ResetView puts the camera back in its initial position.
func (s *Session) ResetView() {
	s.camera.Reset()
	logger.Debug("view reset")
}

// Resize updates the viewport used for projection and picking.
func (s *Session) Resize(width, height int) {
	s.width, s.height = width, height
	s.sel.SetViewport(width, height)
}

// Size returns the viewport size.
func (s *Session) Size() (int, int) { return s.width, s.height }

// Aspect returns the viewport aspect ratio.
func (s *Session) Aspect() float32 {
	if s.height <= 0 {
		return 1
	}
	return float32(s.width) / float32(s.height)
}

// ViewProjection returns the camera matrix for the current viewport.
func (s *Session) ViewProjection() math.Mat4 {
	return s.camera.ViewProjection(s.Aspect())
}

// Drag orbits the camera by a pointer delta in pixels.
func (s *Session) Drag(dx, dy float32) {
	s.camera.HandleDrag(dx, dy)
}

// Zoom moves the camera towards or away from the center.
func (s *Session) Zoom(delta float32) {
	s.camera.HandleZoom(delta)
}

// LoadMesh starts loading a decorative STL mesh in the background.
// The node is added to the scene by a later Poll.
func (s *Session) LoadMesh(path string, opts assets.Options) {
	if path == "" {
		return
	}
	logger.Info("loading mesh", zap.String("path", path))
	s.pending = append(s.pending, s.loader.Load(s.ctx, path, opts))
}

// Pending returns the number of loads not yet collected.
func (s *Session) Pending() int { return len(s.pending) }

// Poll collects finished loads without blocking and returns how many finished.
// Failed loads are logged and dropped.
func (s *Session) Poll() int {
	done := 0
	kept := s.pending[:0]
	for _, ch := range s.pending {
		select {
		case r, ok := <-ch:
			done++
			if !ok {
				continue
			}
			s.apply(r)
		default:
			kept = append(kept, ch)
		}
	}
	for i := len(kept); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = kept
	return done
}

func (s *Session) apply(r assets.Result) {
	if r.Err != nil {
		logger.Warn("mesh load failed", zap.String("path", r.Path), zap.Error(r.Err))
		return
	}
	s.scene.Add(r.Node)
}

// Close cancels outstanding loads.
func (s *Session) Close() {
	s.cancel()
}
