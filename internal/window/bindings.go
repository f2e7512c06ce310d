package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"j4k.co/noisegl/app"
)

type binding struct {
	key   glfw.Key
	shift bool
}

// Keys for the control panel. Shift lowers what the bare key raises.
var bindings = map[binding]app.Action{
	{glfw.KeyUp, false}:    app.TessellationUp,
	{glfw.KeyDown, false}:  app.TessellationDown,
	{glfw.KeyEqual, false}: app.TessellationUp,
	{glfw.KeyMinus, false}: app.TessellationDown,
	{glfw.KeyL, false}:     app.LoadScene,
	{glfw.KeyR, false}:     app.RedUp,
	{glfw.KeyR, true}:      app.RedDown,
	{glfw.KeyG, false}:     app.GreenUp,
	{glfw.KeyG, true}:      app.GreenDown,
	{glfw.KeyB, false}:     app.BlueUp,
	{glfw.KeyB, true}:      app.BlueDown,
	{glfw.KeyA, false}:     app.AlphaUp,
	{glfw.KeyA, true}:      app.AlphaDown,
	{glfw.KeyF, false}:     app.NextFragShader,
	{glfw.KeyV, false}:     app.NextVertShader,
	{glfw.Key1, false}:     app.ToggleIcosphere,
	{glfw.Key2, false}:     app.ToggleSquare,
	{glfw.Key3, false}:     app.ToggleCube,
}

func lookup(key glfw.Key, shift bool) (app.Action, bool) {
	act, ok := bindings[binding{key, shift}]
	return act, ok
}
