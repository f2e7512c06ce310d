package app_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/noisegl/app"
	"j4k.co/noisegl/scenes"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := app.DefaultConfig()
	require.NoError(t, cfg.Validate())
	ctl, err := cfg.InitialControls()
	require.NoError(t, err)
	assert.Equal(t, app.DefaultControls(), ctl)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := app.ParseConfig([]byte(`
log_level = "debug"

[window]
width = 640

[controls]
tessellations = 3
color = [10, 20, 30]
frag_shader = "Worley Noise"

[scene]
shapes = ["icosphere", "cube"]
`))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep their default")
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	ctl, err := cfg.InitialControls()
	require.NoError(t, err)
	assert.Equal(t, 3, ctl.Tessellations)
	assert.Equal(t, [3]uint8{10, 20, 30}, ctl.Color)
	assert.Equal(t, app.Worley, ctl.FragShader)
	assert.Equal(t, app.Perlin, ctl.VertShader)

	kinds, err := cfg.ShapeKinds()
	require.NoError(t, err)
	assert.Equal(t, []scenes.ShapeKind{scenes.Icosphere, scenes.Cube}, kinds)
}

func TestInitialControlsClamp(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Controls.Tessellations = 42
	cfg.Controls.Alpha = 3
	cfg.Controls.Color = []int{-5, 300, 128}
	ctl, err := cfg.InitialControls()
	require.NoError(t, err)
	assert.Equal(t, 8, ctl.Tessellations)
	assert.Equal(t, float32(1), ctl.Alpha)
	assert.Equal(t, [3]uint8{0, 255, 128}, ctl.Color)
}

func TestParseConfigRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":    "colour = 1",
		"bad shader":     "[controls]\nvert_shader = \"phong\"",
		"bad shape":      "[scene]\nshapes = [\"teapot\"]",
		"short color":    "[controls]\ncolor = [1, 2]",
		"bad level":      "log_level = \"loud\"",
		"zero width":     "[window]\nwidth = 0",
		"inverted clip":  "[camera]\nnear = 10.0\nfar = 1.0",
		"not toml":       "[[[",
		"short position": "[camera]\nposition = [1.0]",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := app.ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, app.ErrConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noisegl.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\n"), 0o644))
	cfg, err := app.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)

	_, err = app.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Renderer.ClearColor = nil
	_, err := newApp(cfg)
	assert.ErrorIs(t, err, app.ErrConfig)
}
