package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"j4k.co/noisegl/gfx"
)

var ErrNoSource = errors.New("app: missing shader source")

// ShaderKind selects one of the bundled shader variants.
type ShaderKind uint8

const (
	Perlin ShaderKind = iota
	Lambert
	FBM
	Worley
	numShaderKinds
)

var shaderNames = [numShaderKinds]string{
	Perlin:  "Perlin Noise",
	Lambert: "Lambert",
	FBM:     "FBM",
	Worley:  "Worley Noise",
}

// shaderFiles is the file stem each kind's sources are stored under.
var shaderFiles = [numShaderKinds]string{
	Perlin:  "perlin-noise",
	Lambert: "lambert",
	FBM:     "fbm",
	Worley:  "worley-noise",
}

func (k ShaderKind) String() string {
	if k < numShaderKinds {
		return shaderNames[k]
	}
	return fmt.Sprintf("ShaderKind(%d)", uint8(k))
}

// Next cycles through the kinds in declaration order.
func (k ShaderKind) Next() ShaderKind {
	return (k + 1) % numShaderKinds
}

// ParseShaderKind accepts a display name ("Worley Noise") or a file stem
// ("worley-noise"), case-insensitively.
func ParseShaderKind(s string) (ShaderKind, error) {
	for k := ShaderKind(0); k < numShaderKinds; k++ {
		if strings.EqualFold(s, shaderNames[k]) || strings.EqualFold(s, shaderFiles[k]) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("app: unknown shader %q", s)
}

// ShaderKinds lists every kind.
func ShaderKinds() []ShaderKind {
	return []ShaderKind{Perlin, Lambert, FBM, Worley}
}

// Sources holds GLSL text for every kind and stage.
type Sources struct {
	Vertex   [numShaderKinds]gfx.VertexShader
	Fragment [numShaderKinds]gfx.FragmentShader
}

// LoadSources reads <stem>-vert.glsl and <stem>-frag.glsl for every kind
// from fsys.
func LoadSources(fsys fs.FS) (Sources, error) {
	var src Sources
	for _, k := range ShaderKinds() {
		v, err := fs.ReadFile(fsys, shaderFiles[k]+"-vert.glsl")
		if err != nil {
			return Sources{}, fmt.Errorf("%w: %v vertex: %v", ErrNoSource, k, err)
		}
		f, err := fs.ReadFile(fsys, shaderFiles[k]+"-frag.glsl")
		if err != nil {
			return Sources{}, fmt.Errorf("%w: %v fragment: %v", ErrNoSource, k, err)
		}
		src.Vertex[k] = gfx.VertexShader(v)
		src.Fragment[k] = gfx.FragmentShader(f)
	}
	return src, nil
}

// Library is every (vertex, fragment) combination linked up front. Picking
// a program is a table lookup.
type Library struct {
	programs [numShaderKinds][numShaderKinds]*gfx.Program
}

// NewLibrary compiles each stage once and links every pair. Any compile or
// link failure is returned and nothing is kept.
func NewLibrary(ctx gfx.Context, src Sources) (*Library, error) {
	var verts, frags [numShaderKinds]*gfx.Shader
	defer func() {
		for k := range verts {
			if verts[k] != nil {
				verts[k].Release()
			}
			if frags[k] != nil {
				frags[k].Release()
			}
		}
	}()

	var err error
	for _, k := range ShaderKinds() {
		if src.Vertex[k] == "" || src.Fragment[k] == "" {
			return nil, fmt.Errorf("%w: %v", ErrNoSource, k)
		}
		if verts[k], err = gfx.CompileShader(ctx, src.Vertex[k]); err != nil {
			return nil, fmt.Errorf("%v: %w", k, err)
		}
		if frags[k], err = gfx.CompileShader(ctx, src.Fragment[k]); err != nil {
			return nil, fmt.Errorf("%v: %w", k, err)
		}
	}
	lib := &Library{}
	for _, v := range ShaderKinds() {
		for _, f := range ShaderKinds() {
			p, err := gfx.LinkProgram(ctx, gfx.DefaultVertexAttributes, verts[v], frags[f])
			if err != nil {
				lib.Release()
				return nil, fmt.Errorf("%v vertex + %v fragment: %w", v, f, err)
			}
			lib.programs[v][f] = p
		}
	}
	return lib, nil
}

// Program returns the linked program for the pair.
func (l *Library) Program(vert, frag ShaderKind) *gfx.Program {
	if vert >= numShaderKinds || frag >= numShaderKinds {
		return nil
	}
	return l.programs[vert][frag]
}

func (l *Library) Release() {
	if l == nil {
		return
	}
	for v := range l.programs {
		for f, p := range l.programs[v] {
			if p != nil {
				p.Release()
				l.programs[v][f] = nil
			}
		}
	}
}
