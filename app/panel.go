package app

import "fmt"

// Action is one step on the control panel.
type Action uint8

const (
	TessellationUp Action = iota
	TessellationDown
	LoadScene
	RedUp
	RedDown
	GreenUp
	GreenDown
	BlueUp
	BlueDown
	AlphaUp
	AlphaDown
	NextFragShader
	NextVertShader
	ToggleIcosphere
	ToggleSquare
	ToggleCube
	numActions
)

// channelStep is how far one key press moves a color channel.
const channelStep = 15

var actionNames = [numActions]string{
	TessellationUp:   "tessellation+",
	TessellationDown: "tessellation-",
	LoadScene:        "load scene",
	RedUp:            "red+",
	RedDown:          "red-",
	GreenUp:          "green+",
	GreenDown:        "green-",
	BlueUp:           "blue+",
	BlueDown:         "blue-",
	AlphaUp:          "alpha+",
	AlphaDown:        "alpha-",
	NextFragShader:   "next fragment shader",
	NextVertShader:   "next vertex shader",
	ToggleIcosphere:  "toggle icosphere",
	ToggleSquare:     "toggle square",
	ToggleCube:       "toggle cube",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Apply performs a control action and reports whether it was one. Scene
// actions (LoadScene, toggles) are left to the App.
func (c *Controls) Apply(a Action) bool {
	switch a {
	case TessellationUp:
		c.SetTessellations(c.Tessellations + 1)
	case TessellationDown:
		c.SetTessellations(c.Tessellations - 1)
	case RedUp, GreenUp, BlueUp:
		i := int(a-RedUp) / 2
		c.SetChannel(i, int(c.Color[i])+channelStep)
	case RedDown, GreenDown, BlueDown:
		i := int(a-RedDown) / 2
		c.SetChannel(i, int(c.Color[i])-channelStep)
	case AlphaUp:
		c.SetAlpha(float64(c.Alpha) + AlphaSlider.Step)
	case AlphaDown:
		c.SetAlpha(float64(c.Alpha) - AlphaSlider.Step)
	case NextFragShader:
		c.FragShader = c.FragShader.Next()
	case NextVertShader:
		c.VertShader = c.VertShader.Next()
	default:
		return false
	}
	return true
}
