// Package window hosts the demo in a glfw window with an OpenGL 4.1 core
// context. Every method must be called from the main OS thread.
package window

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"j4k.co/noisegl/app"
	"j4k.co/noisegl/gfx"
	"j4k.co/noisegl/internal/glcore"
)

type Config struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Handler receives the window's callbacks. *app.App implements it.
type Handler interface {
	Tick()
	Resize(width, height int)
	Apply(act app.Action)
	Orbit(dx, dy float64)
	Zoom(steps float64)
}

// Window implements app.Platform.
type Window struct {
	cfg   Config
	log   *slog.Logger
	win   *glfw.Window
	ctx   *glcore.Context
	start time.Time

	handler  Handler
	dragging bool
	lastX    float64
	lastY    float64
}

func New(cfg Config, log *slog.Logger) *Window {
	if log == nil {
		log = slog.Default()
	}
	return &Window{cfg: cfg, log: log, start: time.Now()}
}

// Context opens the window and makes its GL context current. Later calls
// return the same context.
func (w *Window) Context() (gfx.Context, error) {
	if w.ctx != nil {
		return w.ctx, nil
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: init glfw: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(w.cfg.Width, w.cfg.Height, w.cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create: %w", err)
	}
	win.MakeContextCurrent()
	if w.cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	ctx, err := glcore.New()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	w.win = win
	w.ctx = ctx
	w.log.Info("gl context", "version", ctx.Version(), "renderer", ctx.Renderer())
	return ctx, nil
}

func (w *Window) Size() (int, int) {
	if w.win == nil {
		return w.cfg.Width, w.cfg.Height
	}
	return w.win.GetFramebufferSize()
}

func (w *Window) Now() time.Duration {
	return time.Since(w.start)
}

// Alert reports a fatal problem. There is no portable modal dialog, so it
// goes to the log at error level.
func (w *Window) Alert(msg string) {
	w.log.Error(msg)
}

func (w *Window) ShowStats(fps float64, frame time.Duration) {
	if w.win == nil {
		return
	}
	w.win.SetTitle(fmt.Sprintf("%s | %.1f fps | %.2f ms", w.cfg.Title, fps,
		float64(frame)/float64(time.Millisecond)))
}

// Run drives h until the window is closed. beforeFrame, if set, runs at the
// top of every frame.
func (w *Window) Run(h Handler, beforeFrame func()) {
	w.handler = h
	w.win.SetFramebufferSizeCallback(w.onResize)
	w.win.SetKeyCallback(w.onKey)
	w.win.SetMouseButtonCallback(w.onMouseButton)
	w.win.SetCursorPosCallback(w.onCursor)
	w.win.SetScrollCallback(w.onScroll)

	for !w.win.ShouldClose() {
		if beforeFrame != nil {
			beforeFrame()
		}
		h.Tick()
		w.win.SwapBuffers()
		glfw.PollEvents()
	}
}

func (w *Window) Close() {
	if w.ctx != nil {
		w.ctx.Close()
		w.ctx = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
		glfw.Terminate()
	}
}

func (w *Window) onResize(_ *glfw.Window, width, height int) {
	w.handler.Resize(width, height)
}

func (w *Window) onKey(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	if key == glfw.KeyEscape {
		win.SetShouldClose(true)
		return
	}
	if act, ok := lookup(key, mods&glfw.ModShift != 0); ok {
		w.handler.Apply(act)
	}
}

func (w *Window) onMouseButton(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	w.dragging = action == glfw.Press
	if w.dragging {
		w.lastX, w.lastY = win.GetCursorPos()
	}
}

func (w *Window) onCursor(_ *glfw.Window, x, y float64) {
	if !w.dragging {
		return
	}
	w.handler.Orbit(x-w.lastX, y-w.lastY)
	w.lastX, w.lastY = x, y
}

func (w *Window) onScroll(_ *glfw.Window, _, yoff float64) {
	w.handler.Zoom(yoff)
}

var _ app.Platform = (*Window)(nil)
