package scenes

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/noisegl/gfx"
)

// Discarder takes ownership of geometry that is no longer drawn.
// *gfx.Renderer implements it.
type Discarder interface {
	Discard(g *gfx.Geometry)
}

// Scene holds exactly one geometry per shape kind. Replaced geometry is
// handed to the Discarder, never reused.
type Scene struct {
	ctx     gfx.Context
	trash   Discarder
	log     *slog.Logger
	center  mgl32.Vec3
	radius  float32
	tess    int
	loaded  bool
	shapes  [numShapes]*gfx.Geometry
	active  []ShapeKind
	rebuilt int
}

func New(ctx gfx.Context, trash Discarder, log *slog.Logger) *Scene {
	if log == nil {
		log = slog.Default()
	}
	return &Scene{
		ctx:    ctx,
		trash:  trash,
		log:    log,
		radius: 1,
		active: []ShapeKind{Cube},
	}
}

// Load builds every shape, replacing whatever was loaded before. On error
// the previous shapes stay in place.
func (s *Scene) Load(tessellations int) error {
	var fresh [numShapes]*gfx.Geometry
	for _, k := range Kinds() {
		g, err := upload(s.ctx, k, s.center, s.radius, tessellations)
		if err != nil {
			for _, done := range fresh {
				if done != nil {
					done.Release()
				}
			}
			return err
		}
		fresh[k] = g
	}
	for k := range s.shapes {
		s.replace(ShapeKind(k), fresh[k])
	}
	s.tess = tessellations
	s.loaded = true
	s.log.Info("scene loaded", "tessellations", tessellations,
		"icosphere_vertices", fresh[Icosphere].Vertices().Count())
	return nil
}

// SetTessellations rebuilds the icosphere at level n. It does nothing and
// reports false when n is the level already applied.
func (s *Scene) SetTessellations(n int) (bool, error) {
	if s.loaded && n == s.tess {
		return false, nil
	}
	if !s.loaded {
		return true, s.Load(n)
	}
	g, err := upload(s.ctx, Icosphere, s.center, s.radius, n)
	if err != nil {
		return false, err
	}
	s.replace(Icosphere, g)
	s.tess = n
	s.log.Debug("icosphere rebuilt", "tessellations", n, "vertices", g.Vertices().Count())
	return true, nil
}

func (s *Scene) replace(k ShapeKind, g *gfx.Geometry) {
	if old := s.shapes[k]; old != nil {
		s.trash.Discard(old)
		s.rebuilt++
	}
	s.shapes[k] = g
}

// Tessellations is the level the icosphere was last built at.
func (s *Scene) Tessellations() int { return s.tess }

// Loaded reports whether Load has succeeded at least once.
func (s *Scene) Loaded() bool { return s.loaded }

// Replaced counts geometries discarded so far.
func (s *Scene) Replaced() int { return s.rebuilt }

// Geometry returns the current geometry for k, nil before Load.
func (s *Scene) Geometry(k ShapeKind) *gfx.Geometry {
	if k >= numShapes {
		return nil
	}
	return s.shapes[k]
}

// SetActive chooses which shapes are drawn; draw order follows Kinds.
func (s *Scene) SetActive(kinds ...ShapeKind) {
	var on [numShapes]bool
	for _, k := range kinds {
		if k < numShapes {
			on[k] = true
		}
	}
	s.active = s.active[:0]
	for _, k := range Kinds() {
		if on[k] {
			s.active = append(s.active, k)
		}
	}
}

// Toggle flips whether k is drawn.
func (s *Scene) Toggle(k ShapeKind) {
	kinds := make([]ShapeKind, 0, numShapes)
	found := false
	for _, a := range s.active {
		if a == k {
			found = true
			continue
		}
		kinds = append(kinds, a)
	}
	if !found {
		kinds = append(kinds, k)
	}
	s.SetActive(kinds...)
}

func (s *Scene) Active() []ShapeKind {
	return append([]ShapeKind(nil), s.active...)
}

// Drawables returns the active shapes' geometry in draw order.
func (s *Scene) Drawables() []gfx.Drawable {
	ds := make([]gfx.Drawable, 0, len(s.active))
	for _, k := range s.active {
		if g := s.shapes[k]; g != nil {
			ds = append(ds, g)
		}
	}
	return ds
}

// Release frees every shape immediately.
func (s *Scene) Release() {
	for k, g := range s.shapes {
		if g != nil {
			g.Release()
			s.shapes[k] = nil
		}
	}
	s.loaded = false
}
