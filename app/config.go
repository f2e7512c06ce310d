package app

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"j4k.co/noisegl/scenes"
)

var ErrConfig = errors.New("app: invalid config")

type Config struct {
	LogLevel string         `toml:"log_level"`
	Window   WindowConfig   `toml:"window"`
	Controls ControlsConfig `toml:"controls"`
	Camera   CameraConfig   `toml:"camera"`
	Renderer RendererConfig `toml:"renderer"`
	Scene    SceneConfig    `toml:"scene"`
	Shaders  ShadersConfig  `toml:"shaders"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type ControlsConfig struct {
	Tessellations int     `toml:"tessellations"`
	Color         []int   `toml:"color"`
	Alpha         float64 `toml:"alpha"`
	VertShader    string  `toml:"vert_shader"`
	FragShader    string  `toml:"frag_shader"`
}

type CameraConfig struct {
	Position []float32 `toml:"position"`
	Target   []float32 `toml:"target"`
	FovY     float32   `toml:"fov_y"` // degrees
	Near     float32   `toml:"near"`
	Far      float32   `toml:"far"`
}

type RendererConfig struct {
	ClearColor []float32 `toml:"clear_color"`
}

type SceneConfig struct {
	Shapes []string `toml:"shapes"`
}

type ShadersConfig struct {
	// Dir overrides the embedded shaders with <stem>-vert.glsl and
	// <stem>-frag.glsl files from this directory.
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "noisegl",
			VSync:  true,
		},
		Controls: ControlsConfig{
			Tessellations: 5,
			Color:         []int{255, 255, 255},
			Alpha:         1,
			VertShader:    Perlin.String(),
			FragShader:    Perlin.String(),
		},
		Camera: CameraConfig{
			Position: []float32{0, 0, 5},
			Target:   []float32{0, 0, 0},
			FovY:     45,
			Near:     0.1,
			Far:      1000,
		},
		Renderer: RendererConfig{
			ClearColor: []float32{0.2, 0.2, 0.2, 1},
		},
		Scene: SceneConfig{
			Shapes: []string{scenes.Cube.String()},
		},
	}
}

// ParseConfig decodes TOML over the defaults and validates the result.
// Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(len(c.Controls.Color) == 3, "controls.color needs 3 channels, got %d", len(c.Controls.Color))
	check(len(c.Camera.Position) == 3, "camera.position needs 3 components")
	check(len(c.Camera.Target) == 3, "camera.target needs 3 components")
	check(c.Camera.FovY > 0 && c.Camera.FovY < 180, "camera.fov_y %v out of (0,180)", c.Camera.FovY)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	check(len(c.Renderer.ClearColor) == 4, "renderer.clear_color needs 4 components")
	if _, err := c.InitialControls(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ShapeKinds(); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
	}
	return nil
}

// InitialControls converts the controls section, clamping every value
// through its slider.
func (c Config) InitialControls() (Controls, error) {
	ctl := DefaultControls()
	ctl.SetTessellations(c.Controls.Tessellations)
	for i := 0; i < len(c.Controls.Color) && i < 3; i++ {
		ctl.SetChannel(i, c.Controls.Color[i])
	}
	ctl.SetAlpha(c.Controls.Alpha)
	var err error
	if ctl.VertShader, err = ParseShaderKind(c.Controls.VertShader); err != nil {
		return Controls{}, err
	}
	if ctl.FragShader, err = ParseShaderKind(c.Controls.FragShader); err != nil {
		return Controls{}, err
	}
	return ctl, nil
}

func (c Config) ShapeKinds() ([]scenes.ShapeKind, error) {
	kinds := make([]scenes.ShapeKind, 0, len(c.Scene.Shapes))
	for _, name := range c.Scene.Shapes {
		k, err := scenes.ParseShapeKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func vec3(v []float32) mgl32.Vec3 {
	var out mgl32.Vec3
	copy(out[:], v)
	return out
}

// Level is the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
