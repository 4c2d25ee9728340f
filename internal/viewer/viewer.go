// Package viewer runs the interactive window around a session.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/config"
	"github.com/Faultbox/veinview/internal/engine/input"
	"github.com/Faultbox/veinview/internal/engine/renderer"
	"github.com/Faultbox/veinview/internal/engine/screenshot"
	"github.com/Faultbox/veinview/internal/engine/window"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/internal/selection"
	"github.com/Faultbox/veinview/internal/session"
)

// Viewer is the main viewer instance.
type Viewer struct {
	running  bool
	dirty    bool // title needs a refresh
	field    selection.Field
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	controls *Controls
	shots    *screenshot.Capture
	session  *session.Session
}

// New opens a window for the session.
func New(cfg *config.Config, sess *session.Session) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	v := &Viewer{
		session:  sess,
		controls: NewControls(),
		shots:    screenshot.New(cfg.Graphics.ScreenshotDir, "veinview"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      "VeinView",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the OpenGL context
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := v.window.Size()
	v.input = input.New(w, h)
	sess.Resize(w, h)

	v.dirty = true
	sess.OnSelectionChanged(func(selection.Selection) { v.dirty = true })

	logger.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		for _, ev := range v.input.Events() {
			if ev.Type == input.EventWindowResize {
				v.resize()
				continue
			}
			if v.controls.Handle(ev, v.session) {
				v.running = false
			}
		}

		// 2. Collect background loads
		if n := v.session.Poll(); n > 0 {
			logger.Debug("loads finished", zap.Int("count", n))
		}
		v.updateTitle()

		// 3. Render
		cam := v.session.Camera()
		v.renderer.Render(v.session.Scene(), v.session.ViewProjection(), cam.Position())
		if v.controls.TakeScreenshot() {
			v.saveScreenshot()
		}

		// 4. Present
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// resize syncs the viewport with the window. Picking works in window
// coordinates while GL works in drawable pixels, which differ on high-DPI
// displays.
func (v *Viewer) resize() {
	w, h := v.window.Size()
	dw, dh := v.window.DrawableSize()
	v.session.Resize(w, h)
	v.renderer.Resize(dw, dh)
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) updateTitle() {
	if f := v.controls.Field(); f != v.field {
		v.field = f
		v.dirty = true
	}
	if !v.dirty {
		return
	}
	v.dirty = false
	sel, ok := v.session.Selection()
	v.window.SetTitle(Title(sel, ok, v.field))
}

// Close releases GPU and window resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
