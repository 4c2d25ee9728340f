package viewer

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/engine/input"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/internal/selection"
	"github.com/Faultbox/veinview/internal/vessel"
)

// Action is what a key press asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResetView
	ActionFieldRadius
	ActionFieldHeight
	ActionFieldDepth
	ActionIncrease
	ActionDecrease
	ActionNextEntity
	ActionScreenshot
)

// KeyAction maps a scancode to its action.
func KeyAction(key sdl.Scancode) Action {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	case sdl.SCANCODE_R:
		return ActionResetView
	case sdl.SCANCODE_1:
		return ActionFieldRadius
	case sdl.SCANCODE_2:
		return ActionFieldHeight
	case sdl.SCANCODE_3:
		return ActionFieldDepth
	case sdl.SCANCODE_UP, sdl.SCANCODE_RIGHT, sdl.SCANCODE_KP_PLUS, sdl.SCANCODE_EQUALS:
		return ActionIncrease
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_LEFT, sdl.SCANCODE_KP_MINUS, sdl.SCANCODE_MINUS:
		return ActionDecrease
	case sdl.SCANCODE_TAB:
		return ActionNextEntity
	case sdl.SCANCODE_P, sdl.SCANCODE_F12:
		return ActionScreenshot
	}
	return ActionNone
}

// Target receives the commands produced by Controls.
type Target interface {
	Press(x, y float32) (string, bool)
	Select(code string) error
	Selection() (selection.Selection, bool)
	Step(f selection.Field, steps int) error
	ResetView()
	Drag(dx, dy float32)
	Zoom(delta float32)
}

// Controls turns input events into session commands.
type Controls struct {
	field      selection.Field
	pressed    bool
	screenshot bool
}

// NewControls returns controls editing the radius first.
func NewControls() *Controls {
	return &Controls{field: selection.FieldRadius}
}

// Field returns the parameter the step keys edit.
func (c *Controls) Field() selection.Field { return c.field }

// TakeScreenshot reports and clears a pending screenshot request.
func (c *Controls) TakeScreenshot() bool {
	req := c.screenshot
	c.screenshot = false
	return req
}

// Handle applies one event to the target. Returns true when the viewer
// should quit.
func (c *Controls) Handle(ev input.Event, t Target) bool {
	switch ev.Type {
	case input.EventQuit:
		return true

	case input.EventKeyDown:
		return c.key(KeyAction(ev.Key), t)

	case input.EventPointerDown:
		c.pressed = true
		if ev.Button == input.ButtonLeft {
			t.Press(ev.X, ev.Y)
		}

	case input.EventPointerUp:
		c.pressed = false

	case input.EventPointerMove:
		if c.pressed {
			t.Drag(ev.DX, ev.DY)
		}

	case input.EventWheel:
		t.Zoom(ev.Wheel)
	}
	return false
}

func (c *Controls) key(a Action, t Target) bool {
	switch a {
	case ActionQuit:
		return true
	case ActionResetView:
		t.ResetView()
	case ActionFieldRadius:
		c.field = selection.FieldRadius
	case ActionFieldHeight:
		c.field = selection.FieldHeight
	case ActionFieldDepth:
		c.field = selection.FieldDepth
	case ActionIncrease:
		c.step(t, 1)
	case ActionDecrease:
		c.step(t, -1)
	case ActionScreenshot:
		c.screenshot = true
	case ActionNextEntity:
		if err := t.Select(nextCode(t)); err != nil {
			logger.Warn("select failed", zap.Error(err))
		}
	}
	return false
}

func (c *Controls) step(t Target, steps int) {
	err := t.Step(c.field, steps)
	switch {
	case errors.Is(err, selection.ErrNoSelection):
		logger.Debug("nothing selected to edit")
	case err != nil:
		logger.Warn("edit failed", zap.Stringer("field", c.field), zap.Error(err))
	}
}

// nextCode returns the catalog entry after the current selection.
func nextCode(t Target) string {
	codes := vessel.Codes()
	cur, ok := t.Selection()
	if !ok {
		return codes[0]
	}
	for i, code := range codes {
		if code == cur.Code {
			return codes[(i+1)%len(codes)]
		}
	}
	return codes[0]
}

// Title formats the window title for the current selection.
func Title(sel selection.Selection, ok bool, field selection.Field) string {
	if !ok {
		return "VeinView - click a vessel to select it"
	}
	p := sel.Params
	return fmt.Sprintf("VeinView - %s | radius %.2f  height %.1f  depth %.1f | editing %s",
		sel.Label, p.Radius, p.CoverageHeight, p.DepthOffset, field)
}
