package app_test

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"j4k.co/noisegl/app"
	"j4k.co/noisegl/gfx"
	"j4k.co/noisegl/testgfx"
)

type fakePlatform struct {
	ctx    *testgfx.Context
	err    error
	width  int
	height int
	now    time.Duration
	alerts []string
	stats  []float64
}

func newPlatform() *fakePlatform {
	return &fakePlatform{ctx: testgfx.New(), width: 800, height: 600}
}

func (p *fakePlatform) Context() (gfx.Context, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.ctx, nil
}

func (p *fakePlatform) Size() (int, int) { return p.width, p.height }

func (p *fakePlatform) Now() time.Duration {
	p.now += 4 * time.Millisecond
	return p.now
}

func (p *fakePlatform) Alert(msg string) { p.alerts = append(p.alerts, msg) }

func (p *fakePlatform) ShowStats(fps float64, frame time.Duration) {
	p.stats = append(p.stats, fps)
}

var errNoWebGL = errors.New("webgl2 unavailable")

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func vertSource(k app.ShaderKind) gfx.VertexShader {
	return gfx.VertexShader("// vertex " + k.String())
}

func fragSource(k app.ShaderKind) gfx.FragmentShader {
	return gfx.FragmentShader("// fragment " + k.String())
}

func testSources() app.Sources {
	var src app.Sources
	for _, k := range app.ShaderKinds() {
		src.Vertex[k] = vertSource(k)
		src.Fragment[k] = fragSource(k)
	}
	return src
}

func newApp(cfg app.Config) (*app.App, error) {
	return app.New(cfg, testSources(), quietLog())
}
