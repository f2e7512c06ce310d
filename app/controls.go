package app

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Slider is the range and step of one adjustable control. Values pass
// through Clamp on every change, so a control can never hold a value its
// slider wouldn't offer.
type Slider struct {
	Min, Max, Step float64
}

var (
	TessellationSlider = Slider{Min: 0, Max: 8, Step: 1}
	AlphaSlider        = Slider{Min: 0, Max: 1, Step: 0.1}
	ChannelSlider      = Slider{Min: 0, Max: 255, Step: 1}
)

// Clamp snaps v to the nearest step and limits it to [Min, Max].
func (s Slider) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Min(math.Max(v, s.Min), s.Max)
}

// Controls is the user-adjustable state read once per frame.
type Controls struct {
	Tessellations int
	Color         [3]uint8
	Alpha         float32
	VertShader    ShaderKind
	FragShader    ShaderKind
}

func DefaultControls() Controls {
	return Controls{
		Tessellations: 5,
		Color:         [3]uint8{255, 255, 255},
		Alpha:         1,
		VertShader:    Perlin,
		FragShader:    Perlin,
	}
}

func (c *Controls) SetTessellations(n int) {
	c.Tessellations = int(TessellationSlider.Clamp(float64(n)))
}

func (c *Controls) SetAlpha(a float64) {
	c.Alpha = float32(AlphaSlider.Clamp(a))
}

// SetChannel sets color channel i (0 red, 1 green, 2 blue).
func (c *Controls) SetChannel(i int, v int) {
	if i < 0 || i >= len(c.Color) {
		return
	}
	c.Color[i] = uint8(ChannelSlider.Clamp(float64(v)))
}

// OverlayColor is the u_Color value: channels scaled to [0,1], alpha as is.
func (c Controls) OverlayColor() mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c.Color[0]) / 255,
		float32(c.Color[1]) / 255,
		float32(c.Color[2]) / 255,
		c.Alpha,
	}
}
