// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Tubes    TubesConfig    `yaml:"tubes"`
	Picking  PickingConfig  `yaml:"picking"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// CameraConfig holds the orbit camera settings.
type CameraConfig struct {
	FOV             float32 `yaml:"fov"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	Distance        float32 `yaml:"distance"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
}

// RangeConfig bounds one editable tube parameter.
type RangeConfig struct {
	Min  float32 `yaml:"min"`
	Max  float32 `yaml:"max"`
	Step float32 `yaml:"step"`
}

// TubesConfig holds the initial tube parameters and their editable ranges.
type TubesConfig struct {
	Radius float32 `yaml:"radius"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`

	RadiusRange RangeConfig `yaml:"radius_range"`
	HeightRange RangeConfig `yaml:"height_range"`
	DepthRange  RangeConfig `yaml:"depth_range"`
}

// PickingConfig holds pointer hit-testing settings.
type PickingConfig struct {
	ForgivenessPx float32 `yaml:"forgiveness_px"`
}

// AssetsConfig holds the decorative face mesh settings.
type AssetsConfig struct {
	FaceMesh string     `yaml:"face_mesh"` // empty disables the face
	Position [3]float32 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
	Opacity  float32    `yaml:"opacity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,

			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			FOV:             75,
			Near:            0.1,
			Far:             1000,
			Distance:        14,
			MinDistance:     5,
			MaxDistance:     20,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
		},
		Tubes: TubesConfig{
			Radius:      0.1,
			Height:      6,
			Depth:       -1,
			RadiusRange: RangeConfig{Min: 0.01, Max: 0.5, Step: 0.01},
			HeightRange: RangeConfig{Min: 0.1, Max: 6, Step: 0.1},
			DepthRange:  RangeConfig{Min: -5, Max: 5, Step: 0.1},
		},
		Picking: PickingConfig{
			ForgivenessPx: 6,
		},
		Assets: AssetsConfig{
			FaceMesh: "face.stl",
			Position: [3]float32{0, 0, -5},
			Scale:    5,
			Opacity:  0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %v out of (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: clip planes %v..%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.MaxDistance < c.Camera.MinDistance {
		errs = append(errs, fmt.Errorf("camera: distance range %v..%v", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	for name, r := range map[string]RangeConfig{
		"radius_range": c.Tubes.RadiusRange,
		"height_range": c.Tubes.HeightRange,
		"depth_range":  c.Tubes.DepthRange,
	} {
		if r.Max < r.Min || r.Step < 0 {
			errs = append(errs, fmt.Errorf("tubes: %s %v..%v step %v", name, r.Min, r.Max, r.Step))
		}
	}
	if c.Tubes.Radius <= 0 {
		errs = append(errs, fmt.Errorf("tubes: radius %v must be positive", c.Tubes.Radius))
	}
	if c.Picking.ForgivenessPx < 0 {
		errs = append(errs, fmt.Errorf("picking: forgiveness_px %v is negative", c.Picking.ForgivenessPx))
	}
	if c.Assets.Opacity < 0 || c.Assets.Opacity > 1 {
		errs = append(errs, fmt.Errorf("assets: opacity %v out of [0, 1]", c.Assets.Opacity))
	}
	return errors.Join(errs...)
}
