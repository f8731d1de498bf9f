// Package config reads the YAML configuration of the softengine viewer.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"softengine/geometry"
	"softengine/raster"
	"softengine/render"
	"softengine/scene"
)

// Color is a CSS color name ("black", "cornflowerblue") or a #rrggbb /
// #rrggbbaa hex string.
type Color struct {
	raster.Color
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}

	c.Color = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	r, g, b, a := c.Bytes()
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)), nil
}

func ParseColor(text string) (raster.Color, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	if named, ok := colornames.Map[text]; ok {
		return raster.RGBA8(named.R, named.G, named.B, named.A), nil
	}

	if !strings.HasPrefix(text, "#") || (len(text) != 7 && len(text) != 9) {
		return raster.Color{}, fmt.Errorf("unknown color %q", text)
	}

	value, err := strconv.ParseUint(text[1:], 16, 32)
	if err != nil {
		return raster.Color{}, fmt.Errorf("bad color %q: %w", text, err)
	}

	var rgba color.RGBA
	if len(text) == 7 {
		rgba = color.RGBA{uint8(value >> 16), uint8(value >> 8), uint8(value), 0xFF}
	} else {
		rgba = color.RGBA{uint8(value >> 24), uint8(value >> 16), uint8(value >> 8), uint8(value)}
	}

	return raster.RGBA8(rgba.R, rgba.G, rgba.B, rgba.A), nil
}

// Vector is written as a three element sequence.
type Vector [3]float32

func (v Vector) Vector3() geometry.Vector3 {
	return geometry.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

type CameraConfig struct {
	Position Vector `yaml:"position"`
	Target   Vector `yaml:"target"`
}

type ProjectionConfig struct {
	FieldOfView float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
}

type SceneConfig struct {
	Dir   string      `yaml:"dir"`
	Files []string    `yaml:"files"`
	YAxis scene.YAxis `yaml:"y_axis"`
}

// AnimationConfig drives the viewer between frames: every frame each mesh
// yaws by RotationStep radians and the camera target bobs vertically by
// BobHeight, advancing the bob phase by BobSpeed.
type AnimationConfig struct {
	RotationStep float32 `yaml:"rotation_step"`
	BobHeight    float32 `yaml:"bob_height"`
	BobSpeed     float32 `yaml:"bob_speed"`
}

type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`

	Mode render.Mode          `yaml:"mode"`
	Line raster.LineAlgorithm `yaml:"line"`

	ClearColor Color `yaml:"clear_color"`
	WireColor  Color `yaml:"wire_color"`

	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Scene      SceneConfig      `yaml:"scene"`
	Animation  AnimationConfig  `yaml:"animation"`

	LogLevel slog.Level `yaml:"log_level"`
}

// Default mirrors the demo: a 640x480 filled render of monkey.babylon seen
// from (0, 0, 10).
func Default() Config {
	var options render.Options = render.DefaultOptions()

	return Config{
		Width:  640,
		Height: 480,
		Scale:  1,

		Mode: options.Mode,
		Line: options.Line,

		ClearColor: Color{options.ClearColor},
		WireColor:  Color{options.WireColor},

		Camera: CameraConfig{Position: Vector{0, 0, 10}},
		Projection: ProjectionConfig{
			FieldOfView: options.FieldOfView,
			Near:        options.Near,
			Far:         options.Far,
		},
		Scene:     SceneConfig{Dir: ".", Files: []string{"monkey.babylon"}},
		Animation: AnimationConfig{RotationStep: 0.01, BobHeight: 0.01, BobSpeed: 0.05},

		LogLevel: slog.LevelInfo,
	}
}

// Parse overlays YAML data on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	var config Config = Default()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Load reads the config file at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

func (config Config) Validate() error {
	var errs []error

	if config.Width <= 0 || config.Height <= 0 {
		errs = append(errs, fmt.Errorf("resolution %dx%d must be positive", config.Width, config.Height))
	}

	if config.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window scale %d must be positive", config.Scale))
	}

	if len(config.Scene.Files) == 0 {
		errs = append(errs, errors.New("scene needs at least one file"))
	}

	if config.Camera.Position == config.Camera.Target {
		errs = append(errs, errors.New("camera position and target coincide"))
	}

	if err := config.RenderOptions().Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) RenderOptions() render.Options {
	var options render.Options = render.DefaultOptions()

	options.Mode = config.Mode
	options.Line = config.Line
	options.FieldOfView = config.Projection.FieldOfView
	options.Near = config.Projection.Near
	options.Far = config.Projection.Far
	options.ClearColor = config.ClearColor.Color
	options.WireColor = config.WireColor.Color

	return options
}

// ViewCamera returns the initial camera.
func (config Config) ViewCamera() geometry.Camera {
	return geometry.Camera{Position: config.Camera.Position.Vector3(), Target: config.Camera.Target.Vector3()}
}

func (config Config) SceneOptions() scene.Options {
	return scene.Options{YAxis: config.Scene.YAxis}
}
