// Package app drives the demo: it owns the control state, the scene, the
// shader library and the per-frame loop body. The host calls Start once,
// then Tick for every frame and Resize whenever the framebuffer changes,
// all from the same thread.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/noisegl/gfx"
	"j4k.co/noisegl/scenes"
)

var ErrNoContext = errors.New("app: no 3D rendering context available")

// Platform is the host environment: it owns the window and the graphics
// context and schedules callbacks.
type Platform interface {
	// Context returns the graphics context, or an error when the platform
	// can't provide one.
	Context() (gfx.Context, error)
	// Size is the framebuffer size in pixels.
	Size() (width, height int)
	// Now is the time since the platform started.
	Now() time.Duration
	// Alert shows msg to the user.
	Alert(msg string)
	// ShowStats displays the frame rate overlay.
	ShowStats(fps float64, frame time.Duration)
}

type Phase uint8

const (
	Uninitialized Phase = iota
	SceneLoaded
	Running
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case SceneLoaded:
		return "scene loaded"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// App is the whole mutable state of the demo.
type App struct {
	cfg     Config
	log     *slog.Logger
	sources Sources

	phase    Phase
	platform Platform
	ctx      gfx.Context

	controls Controls
	// applied is what the current frame state was built from; a mismatch
	// with controls triggers the corresponding update in Tick.
	applied Controls

	camera   *gfx.Camera
	renderer *gfx.Renderer
	scene    *scenes.Scene
	library  *Library
	timer    FrameTimer

	width, height int
}

func New(cfg Config, sources Sources, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctl, err := cfg.InitialControls()
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:      cfg,
		log:      log,
		sources:  sources,
		controls: ctl,
	}, nil
}

func (a *App) Phase() Phase { return a.phase }

// Start acquires the graphics context, compiles every shader variant and
// loads the scene. Any failure is alerted through the platform and leaves
// the App uninitialized.
func (a *App) Start(p Platform) error {
	if a.phase != Uninitialized {
		return fmt.Errorf("app: start in phase %v", a.phase)
	}
	ctx, err := p.Context()
	if err != nil || ctx == nil {
		if err == nil {
			err = ErrNoContext
		} else if !errors.Is(err, ErrNoContext) {
			err = fmt.Errorf("%w: %v", ErrNoContext, err)
		}
		p.Alert("3D rendering is not supported: " + err.Error())
		return err
	}
	a.platform = p
	a.ctx = ctx

	lib, err := NewLibrary(ctx, a.sources)
	if err != nil {
		err = fmt.Errorf("load shaders: %w", err)
		p.Alert(err.Error())
		return err
	}

	a.renderer = gfx.NewRenderer(ctx)
	cc := a.cfg.Renderer.ClearColor
	a.renderer.SetClearColor(cc[0], cc[1], cc[2], cc[3])
	a.renderer.EnableDepthTest()
	a.renderer.EnableBlend()

	kinds, err := a.cfg.ShapeKinds()
	if err != nil {
		lib.Release()
		p.Alert(err.Error())
		return err
	}
	a.scene = scenes.New(ctx, a.renderer, a.log)
	a.scene.SetActive(kinds...)
	if err := a.scene.Load(a.controls.Tessellations); err != nil {
		lib.Release()
		err = fmt.Errorf("load scene: %w", err)
		p.Alert(err.Error())
		return err
	}
	a.library = lib
	a.applied = a.controls
	a.phase = SceneLoaded

	cam := a.cfg.Camera
	a.camera = gfx.NewCamera(vec3(cam.Position), vec3(cam.Target))
	a.camera.FovY = mgl32.DegToRad(cam.FovY)
	a.camera.Near = cam.Near
	a.camera.Far = cam.Far
	a.Resize(p.Size())

	a.phase = Running
	a.log.Info("started",
		"tessellations", a.controls.Tessellations,
		"vert_shader", a.controls.VertShader,
		"frag_shader", a.controls.FragShader,
		"shapes", a.cfg.Scene.Shapes)
	return nil
}

// Resize applies a new framebuffer size to the viewport and the camera
// projection. A zero height keeps the previous aspect ratio.
func (a *App) Resize(width, height int) {
	a.width, a.height = width, height
	if a.renderer == nil {
		return
	}
	a.renderer.SetSize(width, height)
	if height > 0 && width > 0 {
		a.camera.SetAspectRatio(float32(width) / float32(height))
		a.camera.UpdateProjectionMatrix()
	}
}

// Tick renders one frame. It is a no-op until Start has succeeded.
func (a *App) Tick() {
	if a.phase != Running {
		return
	}
	now := a.platform.Now()
	a.camera.Update()
	a.timer.Begin(now)
	a.renderer.SetSize(a.width, a.height)
	a.renderer.Clear()

	if a.controls.Tessellations != a.applied.Tessellations {
		a.applyTessellations()
	}
	if a.controls.VertShader != a.applied.VertShader || a.controls.FragShader != a.applied.FragShader {
		a.applied.VertShader = a.controls.VertShader
		a.applied.FragShader = a.controls.FragShader
		a.log.Info("shader selected", "vert", a.applied.VertShader, "frag", a.applied.FragShader)
	}

	a.renderer.SetTime(float32(now.Seconds()))
	prog := a.library.Program(a.applied.VertShader, a.applied.FragShader)
	a.renderer.Render(a.camera, prog, a.scene.Drawables(), a.controls.OverlayColor())

	if a.timer.End(a.platform.Now()) {
		a.platform.ShowStats(a.timer.FPS(), a.timer.FrameTime())
	}
}

func (a *App) applyTessellations() {
	n := a.controls.Tessellations
	a.applied.Tessellations = n
	if _, err := a.scene.SetTessellations(n); err != nil {
		a.log.Error("rebuild icosphere", "tessellations", n, "err", err)
	}
}

// LoadScene rebuilds every shape from the current controls.
func (a *App) LoadScene() error {
	if a.scene == nil {
		return fmt.Errorf("app: load scene in phase %v", a.phase)
	}
	if err := a.scene.Load(a.controls.Tessellations); err != nil {
		return err
	}
	a.applied.Tessellations = a.controls.Tessellations
	return nil
}

// Apply handles one control panel action.
func (a *App) Apply(act Action) {
	if a.controls.Apply(act) {
		a.log.Debug("control", "action", act, "controls", a.controls)
		return
	}
	switch act {
	case LoadScene:
		if err := a.LoadScene(); err != nil {
			a.log.Error("load scene", "err", err)
		}
	case ToggleIcosphere:
		a.toggle(scenes.Icosphere)
	case ToggleSquare:
		a.toggle(scenes.Square)
	case ToggleCube:
		a.toggle(scenes.Cube)
	}
}

func (a *App) toggle(k scenes.ShapeKind) {
	if a.scene == nil {
		return
	}
	a.scene.Toggle(k)
	a.log.Debug("shapes", "active", a.scene.Active())
}

// Controls returns a copy of the current control state.
func (a *App) Controls() Controls { return a.controls }

// SetControls replaces the control state; values are clamped to their
// sliders. Changes are picked up by the next Tick.
func (a *App) SetControls(c Controls) {
	a.controls.SetTessellations(c.Tessellations)
	for i, v := range c.Color {
		a.controls.SetChannel(i, int(v))
	}
	a.controls.SetAlpha(float64(c.Alpha))
	if c.VertShader < numShaderKinds {
		a.controls.VertShader = c.VertShader
	}
	if c.FragShader < numShaderKinds {
		a.controls.FragShader = c.FragShader
	}
}

// ReloadShaders rebuilds the library from src. On failure the running
// library is kept and the error returned.
func (a *App) ReloadShaders(src Sources) error {
	if a.phase != Running || a.library == nil {
		return fmt.Errorf("app: reload shaders in phase %v", a.phase)
	}
	lib, err := NewLibrary(a.ctx, src)
	if err != nil {
		a.log.Error("reload shaders", "err", err)
		return err
	}
	a.library.Release()
	a.library = lib
	a.sources = src
	a.log.Info("shaders reloaded")
	return nil
}

// Orbit rotates the camera by a drag of dx, dy pixels.
func (a *App) Orbit(dx, dy float64) {
	if a.camera == nil {
		return
	}
	const radiansPerPixel = 0.005
	a.camera.Orbit(float32(-dx*radiansPerPixel), float32(dy*radiansPerPixel))
}

// Zoom moves the camera in for positive steps and out for negative ones.
func (a *App) Zoom(steps float64) {
	if a.camera == nil {
		return
	}
	a.camera.Zoom(float32(1 - 0.1*steps))
}

func (a *App) Camera() *gfx.Camera     { return a.camera }
func (a *App) Renderer() *gfx.Renderer { return a.renderer }
func (a *App) Scene() *scenes.Scene    { return a.scene }

// Close frees every GPU resource. The App can't be restarted.
func (a *App) Close() {
	if a.library != nil {
		a.library.Release()
		a.library = nil
	}
	if a.scene != nil {
		a.scene.Release()
	}
	if a.renderer != nil {
		a.renderer.Flush()
	}
	a.ctx = nil
	a.phase = Uninitialized
}
